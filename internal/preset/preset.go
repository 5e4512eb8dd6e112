// Package preset holds the read-only catalog of streaming platforms used to
// prefill the RTMP url. Presets carry no protocol behavior.
package preset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultID is the preset selected when none is given
const DefaultID = "youtube"

// Preset is one catalog entry
type Preset struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	RTMPURL string `yaml:"rtmp_url"`
	Note    string `yaml:"note,omitempty"`
}

//go:embed presets.yaml
var catalogYAML []byte

// catalog is parsed once at startup and never modified
var catalog []Preset

func init() {
	presets, err := parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("preset: embedded catalog: %v", err))
	}
	catalog = presets
}

func parse(data []byte) ([]Preset, error) {
	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse preset catalog: %w", err)
	}

	seen := make(map[string]bool, len(presets))
	for i, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset %d has no id", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate preset id %q", p.ID)
		}
		seen[p.ID] = true
	}

	return presets, nil
}

// All returns a copy of the catalog in display order
func All() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a preset by id
func Lookup(id string) (Preset, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Default returns the preset selected when none is given
func Default() Preset {
	p, _ := Lookup(DefaultID)
	return p
}

// HasURL reports whether the preset can prefill the RTMP url on its own
func (p Preset) HasURL() bool {
	return p.RTMPURL != ""
}
