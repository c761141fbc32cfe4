/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package plan decides which label mutations bring a pull request's size
// label into agreement with its desired tier. It performs no I/O: the caller
// supplies the current labels and a lookup for repository labels, and applies
// the returned Plan in order: create, add, then remove each.
package plan

import (
	"fmt"
	"slices"

	"chainguard.dev/prsize/reconcilers/sizereconciler/labels"
)

// Plan is the ordered set of label mutations for one pull request.
type Plan struct {
	// Create is set when the desired label does not exist in the repository
	// and must be created with its tier color before it is attached.
	Create *labels.Tier
	// Add is the label to attach, or empty if it is already attached.
	Add string
	// Remove lists stale size labels to detach, sorted by name.
	Remove []string
}

// Empty reports whether the plan has no mutations.
func (p *Plan) Empty() bool {
	return p.Create == nil && p.Add == "" && len(p.Remove) == 0
}

// Apply returns the label set that results from applying the plan to current.
func (p *Plan) Apply(current []string) []string {
	out := make([]string, 0, len(current)+1)
	for _, l := range current {
		if !slices.Contains(p.Remove, l) {
			out = append(out, l)
		}
	}
	if p.Add != "" && !slices.Contains(out, p.Add) {
		out = append(out, p.Add)
	}
	return out
}

// LabelLookup reports whether a label exists in the repository.
type LabelLookup func(name string) (bool, error)

// Compute returns the plan that leaves exactly one size label, desired.Name,
// on a pull request currently labeled with current. repoHasLabel is consulted
// only when the desired label is not already attached; if it fails no plan
// is returned.
func Compute(current []string, desired labels.Tier, cfg labels.Config, repoHasLabel LabelLookup) (*Plan, error) {
	p := &Plan{}

	attached := false
	for _, l := range current {
		switch {
		case l == desired.Name:
			attached = true
		case cfg.IsSizeLabel(l) && !slices.Contains(p.Remove, l):
			p.Remove = append(p.Remove, l)
		}
	}
	slices.Sort(p.Remove)

	if attached {
		return p, nil
	}

	exists, err := repoHasLabel(desired.Name)
	if err != nil {
		return nil, fmt.Errorf("looking up label %q: %w", desired.Name, err)
	}
	if !exists {
		tier := desired
		p.Create = &tier
	}
	p.Add = desired.Name
	return p, nil
}
