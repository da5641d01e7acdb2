package fish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// DepthRange is the interval, in feet, where a species lives.
type DepthRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// SpeciesDef is a read-only catalog entry.
type SpeciesDef struct {
	Name      string     `json:"name" yaml:"name"`
	Rarity    Rarity     `json:"rarity" yaml:"rarity"`
	Category  Category   `json:"category" yaml:"category"`
	Size      Attribute  `json:"size_range" yaml:"size_range"`     // inches
	Weight    Attribute  `json:"weight_range" yaml:"weight_range"` // lbs
	Depth     DepthRange `json:"depth_range" yaml:"depth_range"`
	BaseValue Money      `json:"base_value" yaml:"base_value"`
}

// Validate checks the catalog invariants of a single entry.
func (sp SpeciesDef) Validate() error {
	if strings.TrimSpace(sp.Name) == "" {
		return fmt.Errorf("species has no name")
	}
	if err := sp.Size.Validate(); err != nil {
		return fmt.Errorf("%s size: %w", sp.Name, err)
	}
	if err := sp.Weight.Validate(); err != nil {
		return fmt.Errorf("%s weight: %w", sp.Name, err)
	}
	if sp.Depth.Min > sp.Depth.Max {
		return fmt.Errorf("%s depth: min %.0f > max %.0f", sp.Name, sp.Depth.Min, sp.Depth.Max)
	}
	if sp.BaseValue < 0 {
		return fmt.Errorf("%s base value is negative", sp.Name)
	}
	return nil
}

// Registry indexes the species catalog by name.
type Registry struct {
	species []SpeciesDef
	byKey   map[string]int
}

func speciesKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewRegistry validates the species list and rejects duplicate names.
func NewRegistry(species []SpeciesDef) (*Registry, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("species list is empty")
	}

	r := &Registry{
		species: make([]SpeciesDef, 0, len(species)),
		byKey:   make(map[string]int, len(species)),
	}
	for i, sp := range species {
		if err := sp.Validate(); err != nil {
			return nil, fmt.Errorf("species %d: %w", i, err)
		}
		key := speciesKey(sp.Name)
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate species %q", sp.Name)
		}
		r.byKey[key] = len(r.species)
		r.species = append(r.species, sp)
	}
	return r, nil
}

// LoadRegistry reads a species list from a .json, .yaml or .yml file.
func LoadRegistry(path string) (*Registry, error) {
	var species []SpeciesDef
	if err := DecodeFile(path, &species); err != nil {
		return nil, err
	}
	return NewRegistry(species)
}

// DecodeFile parses a catalog file as JSON or YAML, chosen by extension.
func DecodeFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	return nil
}

func (r *Registry) Get(name string) (SpeciesDef, bool) {
	idx, ok := r.byKey[speciesKey(name)]
	if !ok {
		return SpeciesDef{}, false
	}
	return r.species[idx], true
}

func (r *Registry) All() []SpeciesDef {
	out := make([]SpeciesDef, len(r.species))
	copy(out, r.species)
	return out
}

func (r *Registry) Count() int { return len(r.species) }

// Suggest returns up to max species names within a small edit distance of
// name, closest first.
func (r *Registry) Suggest(name string, max int) []string {
	query := speciesKey(name)
	if query == "" || max <= 0 {
		return nil
	}

	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, sp := range r.species {
		cand := speciesKey(sp.Name)
		if strings.HasPrefix(cand, query) {
			hits = append(hits, scored{sp.Name, 0})
			continue
		}
		dist := levenshtein.ComputeDistance(query, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		hits = append(hits, scored{sp.Name, dist})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })
	if len(hits) > max {
		hits = hits[:max]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
