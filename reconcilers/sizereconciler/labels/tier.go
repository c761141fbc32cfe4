/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labels

import (
	"fmt"
	"slices"
	"strings"
)

// TierID identifies one of the ordered size tiers.
type TierID string

const (
	XS  TierID = "XS"
	S   TierID = "S"
	M   TierID = "M"
	L   TierID = "L"
	XL  TierID = "XL"
	XXL TierID = "XXL"
)

// TierIDs lists every tier in ascending order.
var TierIDs = []TierID{XS, S, M, L, XL, XXL}

// Index returns the position of the tier in ascending order, or -1 if the id
// is unknown.
func (id TierID) Index() int {
	return slices.Index(TierIDs, id)
}

// Tier is the label specification for a single size tier.
type Tier struct {
	ID TierID
	// Name is the label name attached to pull requests of this tier.
	Name string
	// MaxLines is the inclusive ceiling for this tier. Ignored for XXL.
	MaxLines int
	// Color is six hex digits without a leading '#'.
	Color string
}

// Unbounded reports whether the tier has no ceiling.
func (t Tier) Unbounded() bool {
	return t.ID == XXL
}

// LabelPrefix is the naming convention shared by the default size labels.
const LabelPrefix = "size/"

// Config is the resolved tier table.
type Config struct {
	tiers []Tier
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{tiers: []Tier{
		{ID: XS, Name: LabelPrefix + "XS", MaxLines: 10, Color: "3CBF00"},
		{ID: S, Name: LabelPrefix + "S", MaxLines: 30, Color: "5D9801"},
		{ID: M, Name: LabelPrefix + "M", MaxLines: 100, Color: "7F7203"},
		{ID: L, Name: LabelPrefix + "L", MaxLines: 500, Color: "A14C05"},
		{ID: XL, Name: LabelPrefix + "XL", MaxLines: 1000, Color: "C32607"},
		{ID: XXL, Name: LabelPrefix + "XXL", Color: "E50009"},
	}}
}

// New builds a Config from a full set of tiers, in any order.
func New(tiers ...Tier) (Config, error) {
	byID := make(map[TierID]Tier, len(tiers))
	for _, t := range tiers {
		if t.ID.Index() < 0 {
			return Config{}, &InvalidConfigError{Reason: fmt.Sprintf("unknown tier %q", t.ID)}
		}
		if _, dup := byID[t.ID]; dup {
			return Config{}, &InvalidConfigError{Reason: fmt.Sprintf("duplicate tier %q", t.ID)}
		}
		byID[t.ID] = t
	}
	cfg := Config{tiers: make([]Tier, 0, len(TierIDs))}
	for _, id := range TierIDs {
		t, ok := byID[id]
		if !ok {
			return Config{}, &InvalidConfigError{Reason: fmt.Sprintf("missing tier %q", id)}
		}
		cfg.tiers = append(cfg.tiers, t)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Tiers returns a copy of the tiers in ascending order.
func (c Config) Tiers() []Tier {
	return slices.Clone(c.tiers)
}

// Tier returns the tier with the given id.
func (c Config) Tier(id TierID) (Tier, bool) {
	for _, t := range c.tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// ResolveTier returns the smallest tier whose ceiling is at least totalLines,
// or the top tier when totalLines exceeds every ceiling. The zero Config
// resolves against the defaults.
func (c Config) ResolveTier(totalLines int) Tier {
	if len(c.tiers) == 0 {
		return Default().ResolveTier(totalLines)
	}
	for _, t := range c.tiers {
		if t.Unbounded() || totalLines <= t.MaxLines {
			return t
		}
	}
	return c.tiers[len(c.tiers)-1]
}

// IsSizeLabel reports whether name follows the size label convention: it
// carries the size/ prefix or is the name of one of the configured tiers.
func (c Config) IsSizeLabel(name string) bool {
	if strings.HasPrefix(name, LabelPrefix) {
		return true
	}
	return slices.ContainsFunc(c.tiers, func(t Tier) bool { return t.Name == name })
}

// Validate checks the invariants of a resolved configuration.
func (c Config) Validate() error {
	if len(c.tiers) != len(TierIDs) {
		return &InvalidConfigError{Reason: fmt.Sprintf("expected %d tiers, got %d", len(TierIDs), len(c.tiers))}
	}
	names := make(map[string]TierID, len(c.tiers))
	for i, t := range c.tiers {
		if t.ID != TierIDs[i] {
			return &InvalidConfigError{Reason: fmt.Sprintf("tier %d is %q, want %q", i, t.ID, TierIDs[i])}
		}
		if strings.TrimSpace(t.Name) == "" {
			return &InvalidConfigError{Tier: t.ID, Reason: "empty label name"}
		}
		if other, dup := names[t.Name]; dup {
			return &InvalidConfigError{Tier: t.ID, Reason: fmt.Sprintf("label name %q already used by %s", t.Name, other)}
		}
		names[t.Name] = t.ID
		if !isHexColor(t.Color) {
			return &InvalidConfigError{Tier: t.ID, Reason: fmt.Sprintf("color %q is not six hex digits", t.Color)}
		}
		if t.Unbounded() {
			continue
		}
		if t.MaxLines < 0 {
			return &InvalidConfigError{Tier: t.ID, Reason: fmt.Sprintf("negative threshold %d", t.MaxLines)}
		}
		if i > 0 && t.MaxLines <= c.tiers[i-1].MaxLines {
			return &InvalidConfigError{Tier: t.ID, Reason: fmt.Sprintf("threshold %d does not exceed %s threshold %d", t.MaxLines, c.tiers[i-1].ID, c.tiers[i-1].MaxLines)}
		}
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
