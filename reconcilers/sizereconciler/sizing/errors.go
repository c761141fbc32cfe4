/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizing

import "fmt"

// InvalidInputError is returned when a FileChange is malformed.
type InvalidInputError struct {
	Path   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid file change %q: %s", e.Path, e.Reason)
}
