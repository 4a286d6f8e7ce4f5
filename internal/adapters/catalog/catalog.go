package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"group-trip-planner/internal/domain"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed destinations.yaml
var builtin []byte

type file struct {
	Destinations map[string][]domain.Activity `yaml:"destinations"`
}

// Catalog serves curated activities for a fixed set of destinations. Lookups
// match the whole destination name, case-insensitively.
type Catalog struct {
	byDestination map[string][]domain.Activity
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog from a YAML file on disk.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byDestination: make(map[string][]domain.Activity, len(f.Destinations))}
	for dest, acts := range f.Destinations {
		key := normalize(dest)
		for i, a := range acts {
			if strings.TrimSpace(a.Name) == "" {
				return nil, fmt.Errorf("parse catalog: %s[%d]: name is required", dest, i)
			}
			a.Category = domain.NormalizeCategory(string(a.Category))
			if !a.Coordinates().Valid() {
				return nil, fmt.Errorf("parse catalog: %s: %q has invalid coordinates", dest, a.Name)
			}
			c.byDestination[key] = append(c.byDestination[key], a)
		}
	}
	return c, nil
}

// FetchActivities returns a copy of the destination's activities, or nothing
// for an unknown destination.
func (c *Catalog) FetchActivities(_ context.Context, destination string, _, _ float64) ([]domain.Activity, error) {
	return slices.Clone(c.byDestination[normalize(destination)]), nil
}

// Destinations lists the known destination keys, sorted.
func (c *Catalog) Destinations() []string {
	out := make([]string, 0, len(c.byDestination))
	for k := range c.byDestination {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
