/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labels

import "fmt"

// InvalidConfigError is returned when a label configuration cannot be parsed
// or violates the tier invariants.
type InvalidConfigError struct {
	// Tier is the offending tier, if the problem is tier specific.
	Tier   TierID
	Reason string
	Err    error
}

func (e *InvalidConfigError) Error() string {
	msg := "invalid label config"
	if e.Tier != "" {
		msg += fmt.Sprintf(" for tier %s", e.Tier)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}
