/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizereconciler

import "fmt"

// CollaboratorLookupError wraps a failed GitHub call.
type CollaboratorLookupError struct {
	Op  string
	Err error
}

func (e *CollaboratorLookupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorLookupError) Unwrap() error {
	return e.Err
}

func lookupError(op string, err error) error {
	return &CollaboratorLookupError{Op: op, Err: err}
}
