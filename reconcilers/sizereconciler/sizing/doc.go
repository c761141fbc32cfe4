/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package sizing reduces the per-file change counts of a pull request into a
// single line delta.
//
// Generated files contribute nothing to the total. A file is generated when
// the repository's .gitattributes marks it linguist-generated, when its patch
// opens with a "Code generated ... DO NOT EDIT" header, or when it matches one
// of the gitignore-style exclusion patterns:
//
//	excl := sizing.NewExclusions(sizing.DefaultGeneratedPatterns()...).Merge("vendor/")
//	attrs, err := sizing.ParseGitAttributes(content)
//	if err != nil {
//	    return err
//	}
//
//	total, err := sizing.ComputeSize(files, excl,
//	    sizing.WithGitAttributes(attrs),
//	    sizing.WithIgnoreDeletions())
//	if err != nil {
//	    // err is an *InvalidInputError
//	}
//
// Everything in this package is a pure function of its inputs.
package sizing
