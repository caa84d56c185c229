// Package presets holds named parameter sets offered by the form and the CLI.
package presets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"boltgen/internal/calc/bolt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var builtin []byte

type Preset struct {
	Name            string `yaml:"name" json:"name"`
	Label           string `yaml:"label" json:"label"`
	bolt.Parameters `yaml:",inline"`
}

type Catalog struct {
	Default string   `yaml:"default" json:"default"`
	Presets []Preset `yaml:"presets" json:"presets"`
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog file; an empty path means the builtin catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading presets file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog. Every preset must build.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}
	if len(c.Presets) == 0 {
		return nil, fmt.Errorf("catalog has no presets")
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset without a name")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	if c.Default == "" {
		c.Default = c.Presets[0].Name
	}
	if !seen[c.Default] {
		return nil, fmt.Errorf("default preset %q not found", c.Default)
	}
	return &c, nil
}

func (c *Catalog) Get(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultPreset returns the preset the form starts with.
func (c *Catalog) DefaultPreset() Preset {
	p, _ := c.Get(c.Default)
	return p
}

type Handler struct {
	Catalog *Catalog
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Catalog)
}
