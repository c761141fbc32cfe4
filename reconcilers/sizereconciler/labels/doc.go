/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package labels defines the six pull request size tiers and the label
// configuration that maps each tier to a label name, a line threshold and a
// color.
//
// A Config always holds exactly one Tier per TierID, ordered XS through XXL.
// Thresholds are inclusive ceilings: a pull request of exactly MaxLines
// changed lines belongs to that tier. XXL has no ceiling.
//
// Repositories may override any subset of tiers and fields with a YAML file:
//
//	M:
//	  name: custommedium
//	  lines: 60
//	XXL:
//	  color: "#000000"
//
// Resolve merges such an override field-by-field onto the defaults and falls
// back to the defaults when the override cannot be used.
package labels
