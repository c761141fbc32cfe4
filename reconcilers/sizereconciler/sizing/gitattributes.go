/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizing

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitattributes"
)

const generatedAttr = "linguist-generated"

// GitAttributes answers linguist-generated queries using the matching rules
// of a repository's root .gitattributes. A nil *GitAttributes specifies
// nothing for any path.
type GitAttributes struct {
	matcher gitattributes.Matcher
}

// ParseGitAttributes reads the content of a root .gitattributes file.
func ParseGitAttributes(content []byte) (*GitAttributes, error) {
	attrs, err := gitattributes.ReadAttributes(bytes.NewReader(content), nil, true)
	if err != nil {
		return nil, fmt.Errorf("parsing .gitattributes: %w", err)
	}
	return &GitAttributes{matcher: gitattributes.NewMatcher(attrs)}, nil
}

// Generated reports whether path is marked linguist-generated, and whether
// the attribute is specified for path at all. Later lines take precedence,
// so "-linguist-generated" or "linguist-generated=false" unmark a path.
func (g *GitAttributes) Generated(path string) (generated, specified bool) {
	if g == nil || g.matcher == nil {
		return false, false
	}
	results, _ := g.matcher.Match(strings.Split(path, "/"), []string{generatedAttr})
	attr, ok := results[generatedAttr]
	if !ok {
		return false, false
	}
	switch {
	case attr.IsSet():
		return true, true
	case attr.IsUnset():
		return false, true
	case attr.IsValueSet():
		v, err := strconv.ParseBool(attr.Value())
		if err != nil {
			return false, false
		}
		return v, true
	}
	return false, false
}
