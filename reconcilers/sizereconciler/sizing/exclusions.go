/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizing

import (
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Exclusions is an ordered set of gitignore-style patterns. Later patterns
// take precedence, so a negated pattern ("!path") re-includes paths excluded
// by an earlier one. The zero value and nil both exclude nothing.
type Exclusions struct {
	patterns []string
	matcher  *ignore.GitIgnore
}

// NewExclusions compiles the given patterns. Blank entries are dropped.
func NewExclusions(patterns ...string) *Exclusions {
	e := &Exclusions{}
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			e.patterns = append(e.patterns, p)
		}
	}
	if len(e.patterns) > 0 {
		e.matcher = ignore.CompileIgnoreLines(e.patterns...)
	}
	return e
}

// Merge returns a new set with the given patterns appended after the
// receiver's patterns.
func (e *Exclusions) Merge(patterns ...string) *Exclusions {
	return NewExclusions(append(e.Patterns(), patterns...)...)
}

// Patterns returns a copy of the patterns in precedence order.
func (e *Exclusions) Patterns() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.patterns)
}

// Matches reports whether path is excluded.
func (e *Exclusions) Matches(path string) bool {
	if e == nil || e.matcher == nil {
		return false
	}
	return e.matcher.MatchesPath(path)
}
