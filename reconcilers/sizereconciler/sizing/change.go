/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizing

// Status is the state of a file within a pull request diff.
type Status string

const (
	StatusAdded    Status = "added"
	StatusModified Status = "modified"
	StatusRemoved  Status = "removed"
	StatusRenamed  Status = "renamed"
)

// FileChange is the line delta of a single file in a pull request.
type FileChange struct {
	Path         string
	LinesAdded   int
	LinesDeleted int
	Status       Status
	// Patch is the unified diff of the file, when the API returned one.
	Patch string
}

// Lines returns the number of changed lines in the file.
func (f FileChange) Lines() int {
	return f.LinesAdded + f.LinesDeleted
}

// DeletionsOnly reports whether the file only removes lines.
func (f FileChange) DeletionsOnly() bool {
	return f.LinesAdded == 0 && f.LinesDeleted > 0
}
