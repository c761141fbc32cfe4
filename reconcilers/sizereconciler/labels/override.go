/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labels

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// TierOverride carries the optional per-tier fields of a user configuration.
// Nil fields keep the default value.
type TierOverride struct {
	Name  *string `yaml:"name"`
	Lines *int    `yaml:"lines"`
	Color *string `yaml:"color"`
}

// Overrides maps tier ids to their overrides.
type Overrides map[TierID]TierOverride

// Parse decodes raw YAML (or JSON) into Overrides. Unknown tiers and unknown
// fields are rejected rather than ignored. Empty content yields no overrides.
func Parse(raw []byte) (Overrides, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc map[string]TierOverride
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Overrides{}, nil
		}
		return nil, &InvalidConfigError{Reason: "malformed document", Err: err}
	}

	out := make(Overrides, len(doc))
	for key, o := range doc {
		id := TierID(key)
		if id.Index() < 0 {
			return nil, &InvalidConfigError{Reason: fmt.Sprintf("unknown tier %q", key)}
		}
		if o.Color != nil {
			c := strings.TrimPrefix(*o.Color, "#")
			o.Color = &c
		}
		out[id] = o
	}
	return out, nil
}

// Apply merges the overrides onto cfg field-by-field and validates the result.
func (o Overrides) Apply(cfg Config) (Config, error) {
	merged := cfg.Tiers()
	for i, t := range merged {
		ov, ok := o[t.ID]
		if !ok {
			continue
		}
		if ov.Name != nil {
			t.Name = *ov.Name
		}
		if ov.Lines != nil && !t.Unbounded() {
			t.MaxLines = *ov.Lines
		}
		if ov.Color != nil {
			t.Color = *ov.Color
		}
		merged[i] = t
	}
	out := Config{tiers: merged}
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

// Resolve returns the effective configuration for raw user content. A nil raw
// means no configuration was found and yields defaults with no error. When raw
// cannot be parsed or the merged result is invalid, Resolve returns defaults
// together with an *InvalidConfigError describing why the override was
// discarded; callers log it and carry on with the returned Config.
func Resolve(defaults Config, raw []byte) (Config, error) {
	if raw == nil {
		return defaults, nil
	}
	overrides, err := Parse(raw)
	if err != nil {
		return defaults, err
	}
	cfg, err := overrides.Apply(defaults)
	if err != nil {
		return defaults, err
	}
	return cfg, nil
}
