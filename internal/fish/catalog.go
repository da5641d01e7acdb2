package fish

import (
	"context"
	"fmt"
	"sync"
)

// BaitCatalog is the static bait data: hand-authored baits and the base
// names used when generating new ones.
type BaitCatalog struct {
	BaseNames []string  `json:"base_names" yaml:"base_names"`
	Baits     []BaitDef `json:"baits" yaml:"baits"`
}

// FileCatalog loads the species and bait catalogs from disk on first use and
// serves the parsed copies afterwards. A failed load is not cached.
type FileCatalog struct {
	speciesPath string
	baitPath    string

	mu      sync.Mutex
	species *Registry
	bait    *BaitCatalog
}

func NewFileCatalog(speciesPath, baitPath string) *FileCatalog {
	return &FileCatalog{speciesPath: speciesPath, baitPath: baitPath}
}

// Registry returns the species registry, loading it if needed.
func (c *FileCatalog) Registry(ctx context.Context) (*Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.species != nil {
		return c.species, nil
	}
	reg, err := LoadRegistry(c.speciesPath)
	if err != nil {
		return nil, fmt.Errorf("loading species catalog: %w", err)
	}
	c.species = reg
	return reg, nil
}

func (c *FileCatalog) LoadSpecies(ctx context.Context) ([]SpeciesDef, error) {
	reg, err := c.Registry(ctx)
	if err != nil {
		return nil, err
	}
	return reg.All(), nil
}

// LoadBaitCatalog returns the bait catalog. Without a configured file the
// catalog holds a single base name.
func (c *FileCatalog) LoadBaitCatalog(ctx context.Context) (BaitCatalog, error) {
	if err := ctx.Err(); err != nil {
		return BaitCatalog{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bait != nil {
		return *c.bait, nil
	}
	if c.baitPath == "" {
		c.bait = &BaitCatalog{BaseNames: []string{"Worm"}}
		return *c.bait, nil
	}

	var bc BaitCatalog
	if err := DecodeFile(c.baitPath, &bc); err != nil {
		return BaitCatalog{}, fmt.Errorf("loading bait catalog: %w", err)
	}
	for i, b := range bc.Baits {
		if b.Name == "" {
			return BaitCatalog{}, fmt.Errorf("loading bait catalog: bait %d has no name", i)
		}
		if b.UseChance < 0 || b.UseChance > 1 {
			return BaitCatalog{}, fmt.Errorf("loading bait catalog: %s use_chance %.2f outside [0, 1]", b.Name, b.UseChance)
		}
	}
	if len(bc.BaseNames) == 0 {
		bc.BaseNames = []string{"Worm"}
	}
	c.bait = &bc
	return bc, nil
}

// Reload drops the cached catalogs so the next call reads the files again.
func (c *FileCatalog) Reload() {
	c.mu.Lock()
	c.species = nil
	c.bait = nil
	c.mu.Unlock()
}
