/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizing

import (
	"bufio"
	"regexp"
	"strings"
)

// DefaultGeneratedPatterns returns the patterns of files that are generated
// by package managers and build tools in most repositories.
func DefaultGeneratedPatterns() []string {
	return []string{
		// Lockfiles.
		"package-lock.json",
		"npm-shrinkwrap.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		"go.sum",
		"Cargo.lock",
		"Gemfile.lock",
		"Pipfile.lock",
		"poetry.lock",
		"composer.lock",
		// Build output.
		"*.min.js",
		"*.min.css",
		"*.pb.go",
	}
}

var (
	// A hunk that starts at the first line of the new file.
	firstHunk       = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+1(?:,\d+)? @@`)
	generatedHeader = regexp.MustCompile(`Code generated .* DO NOT EDIT`)
)

// headerLines is how far into a file a generated header is looked for.
const headerLines = 10

// HasGeneratedHeader reports whether a file's patch shows a
// "Code generated ... DO NOT EDIT" header near the top of the new file.
// Patches whose first hunk does not start at line one cannot show it.
func HasGeneratedHeader(patch string) bool {
	sc := bufio.NewScanner(strings.NewReader(patch))
	if !sc.Scan() || !firstHunk.MatchString(sc.Text()) {
		return false
	}
	for n := 0; n < headerLines && sc.Scan(); {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "@@"):
			return false
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, " "):
			if generatedHeader.MatchString(line[1:]) {
				return true
			}
			n++
		}
	}
	return false
}
