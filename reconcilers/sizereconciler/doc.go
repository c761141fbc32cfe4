/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package sizereconciler labels pull requests with their size tier.
//
// Each reconciliation pass is independent and recomputes everything from
// GitHub:
//
//  1. Fetch the pull request (state and current labels)
//  2. List its changed files, read the label configuration and .gitattributes
//  3. Compute the changed line count, excluding generated files (lockfiles and
//     build output by default, linguist-generated paths, and files carrying a
//     "Code generated ... DO NOT EDIT" header)
//  4. Resolve the tier and plan the label mutations
//  5. Create the tier label if the repository lacks it, attach it, and
//     detach stale size labels
//
// The label configuration is looked up in the repository, then in the
// owner's .github repository, then falls back to built-in defaults:
//
//	r := sizereconciler.New(
//	    sizereconciler.WithExcludePatterns("vendor/", "*.lock"),
//	    sizereconciler.WithIgnoreDeletions(true),
//	)
//	err := r.Reconcile(ctx, res, gh)
//
// # Error Handling
//
// Any failing GitHub call aborts the pass with a *CollaboratorLookupError.
// A failure while reading leaves the pull request labels as they were. A
// failure while mutating stops at that step, so a label may already have been
// created or attached; the next pass converges from there. No call is retried
// here; the next qualifying event runs a fresh pass.
package sizereconciler
