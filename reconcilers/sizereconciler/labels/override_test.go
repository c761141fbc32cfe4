/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labels

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// customNames overrides every tier with its own name and thresholds.
const customNames = `
XS:
  name: customxsmall
  lines: 5
  color: 3CBF00
S:
  name: customsmall
  lines: 10
  color: 5D9801
M:
  name: custommedium
  lines: 30
  color: 7F7203
L:
  name: customlarge
  lines: 100
  color: A14C05
XL:
  name: customxlarge
  lines: 500
  color: C32607
XXL:
  name: customxxlarge
  lines: 1000
  color: E50009
`

func TestResolveAbsent(t *testing.T) {
	cfg, err := Resolve(Default(), nil)
	require.NoError(t, err)
	if diff := cmp.Diff(Default().Tiers(), cfg.Tiers()); diff != "" {
		t.Errorf("Resolve(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEmptyDocument(t *testing.T) {
	cfg, err := Resolve(Default(), []byte("# nothing to see\n"))
	require.NoError(t, err)
	if diff := cmp.Diff(Default().Tiers(), cfg.Tiers()); diff != "" {
		t.Errorf("Resolve(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCustomNames(t *testing.T) {
	cfg, err := Resolve(Default(), []byte(customNames))
	require.NoError(t, err)

	got := cfg.ResolveTier(28)
	want := Tier{ID: M, Name: "custommedium", MaxLines: 30, Color: "7F7203"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveTier(28) mismatch (-want +got):\n%s", diff)
	}

	// XXL lines are accepted but XXL stays unbounded.
	if got := cfg.ResolveTier(5000); got.Name != "customxxlarge" {
		t.Errorf("ResolveTier(5000) = %q, want %q", got.Name, "customxxlarge")
	}
}

func TestResolveFieldByField(t *testing.T) {
	raw := []byte(`
M:
  name: custommedium
S:
  color: "#ABCDEF"
`)
	cfg, err := Resolve(Default(), raw)
	require.NoError(t, err)

	want := Default().Tiers()
	want[M.Index()].Name = "custommedium"
	want[S.Index()].Color = "ABCDEF"
	if diff := cmp.Diff(want, cfg.Tiers()); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	if got := cfg.ResolveTier(45); got.Name != "custommedium" {
		t.Errorf("ResolveTier(45) = %q, want %q", got.Name, "custommedium")
	}
	if got := cfg.ResolveTier(20); got.Name != "size/S" {
		t.Errorf("ResolveTier(20) = %q, want %q", got.Name, "size/S")
	}
}

func TestResolveJSON(t *testing.T) {
	cfg, err := Resolve(Default(), []byte(`{"XS": {"lines": 3}, "S": {"name": "small"}}`))
	require.NoError(t, err)
	if got := cfg.ResolveTier(4); got.Name != "small" {
		t.Errorf("ResolveTier(4) = %q, want %q", got.Name, "small")
	}
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{{
		// An M ceiling of 30 collides with the default S ceiling.
		name: "only M lowered onto S",
		raw:  "M:\n  name: custommedium\n  lines: 30\n",
	}, {
		name: "thresholds decreasing",
		raw:  "S:\n  lines: 5\n",
	}, {
		name: "unknown tier",
		raw:  "XXXL:\n  lines: 5000\n",
	}, {
		name: "unknown field",
		raw:  "M:\n  size: 40\n",
	}, {
		name: "lines not an integer",
		raw:  "M:\n  lines: lots\n",
	}, {
		name: "not a mapping",
		raw:  "- XS\n- S\n",
	}, {
		name: "malformed yaml",
		raw:  "M: [unterminated\n",
	}, {
		name: "bad color",
		raw:  "L:\n  color: orange\n",
	}, {
		name: "duplicate names",
		raw:  "XS:\n  name: tiny\nS:\n  name: tiny\n",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(Default(), []byte(tt.raw))
			var ice *InvalidConfigError
			if !errors.As(err, &ice) {
				t.Fatalf("Resolve() error = %v, want *InvalidConfigError", err)
			}
			if diff := cmp.Diff(Default().Tiers(), cfg.Tiers()); diff != "" {
				t.Errorf("Resolve() did not fall back to defaults (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseNormalizesColor(t *testing.T) {
	o, err := Parse([]byte("XS:\n  color: \"#00ff00\"\n"))
	require.NoError(t, err)
	require.NotNil(t, o[XS].Color)
	if got := *o[XS].Color; got != "00ff00" {
		t.Errorf("color = %q, want %q", got, "00ff00")
	}
	if o[XS].Name != nil || o[XS].Lines != nil {
		t.Errorf("unset fields should stay nil: %+v", o[XS])
	}
}
