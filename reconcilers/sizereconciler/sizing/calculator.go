/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizing

// Option customizes ComputeSize.
type Option func(*options)

type options struct {
	ignoreDeletions bool
	attributes      *GitAttributes
}

// WithIgnoreDeletions makes files that only delete lines contribute zero.
func WithIgnoreDeletions() Option {
	return func(o *options) { o.ignoreDeletions = true }
}

// WithGitAttributes applies a repository's linguist-generated attributes.
// Where the attribute is specified for a path it overrides exclusion patterns.
func WithGitAttributes(attrs *GitAttributes) Option {
	return func(o *options) { o.attributes = attrs }
}

// ComputeSize returns the sum of added and deleted lines over every file that
// is not generated. A file is generated when .gitattributes marks it so, when
// its patch shows a generated-code header, or when exclusions match it.
// It fails with an *InvalidInputError if any file has negative counts,
// whether or not that file is excluded.
func ComputeSize(files []FileChange, exclusions *Exclusions, opts ...Option) (int, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	for _, f := range files {
		switch {
		case f.LinesAdded < 0:
			return 0, &InvalidInputError{Path: f.Path, Reason: "negative added line count"}
		case f.LinesDeleted < 0:
			return 0, &InvalidInputError{Path: f.Path, Reason: "negative deleted line count"}
		}
	}

	total := 0
	for _, f := range files {
		if o.generated(f, exclusions) {
			continue
		}
		if o.ignoreDeletions && f.DeletionsOnly() {
			continue
		}
		total += f.Lines()
	}
	return total, nil
}

func (o *options) generated(f FileChange, exclusions *Exclusions) bool {
	if generated, ok := o.attributes.Generated(f.Path); ok {
		return generated
	}
	return HasGeneratedHeader(f.Patch) || exclusions.Matches(f.Path)
}
