package fish

import "math"

// GeneratorConfig holds the tuning knobs of fish generation.
type GeneratorConfig struct {
	Tuning  BaitTuning
	Formula ValueFormula
	// LegacyDepthOverlap keeps the permissive depth test; see DepthBand.Overlaps.
	LegacyDepthOverlap bool
}

// Generator turns a sampled depth and an optional bait into a catch.
// It is safe for concurrent use as long as its Source is.
type Generator struct {
	species []SpeciesDef
	cfg     GeneratorConfig
	src     Source
}

// NewGenerator builds a generator over a catalog snapshot. If src is nil a
// freshly seeded Source is used.
func NewGenerator(species []SpeciesDef, cfg GeneratorConfig, src Source) *Generator {
	if src == nil {
		src = NewSource()
	}
	return &Generator{species: species, cfg: cfg, src: src}
}

// Eligible narrows the catalog to species that live in depth's band and
// whose rarity is at or below the ceiling.
func (g *Generator) Eligible(depth float64, ceiling Rarity) []SpeciesDef {
	band := BandFor(depth)
	var out []SpeciesDef
	for _, sp := range g.species {
		if !band.Overlaps(sp.Depth.Min, sp.Depth.Max, g.cfg.LegacyDepthOverlap) {
			continue
		}
		if !ceiling.Includes(sp.Rarity) {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// SpeciesWeights returns the selection weight of each eligible species.
// Category and specific-species attractions stack multiplicatively.
func (g *Generator) SpeciesWeights(eligible []SpeciesDef, bait *BaitDef) []float64 {
	cat, catMult, hasCat := bait.CategoryModifier(g.cfg.Tuning)
	name, nameMult, hasName := bait.SpecificFishModifier(g.cfg.Tuning)

	weights := make([]float64, len(eligible))
	for i, sp := range eligible {
		w := 1.0
		if hasCat && sp.Category == cat {
			w *= catMult
		}
		if hasName && speciesKey(sp.Name) == speciesKey(name) {
			w *= nameMult
		}
		weights[i] = w
	}
	return weights
}

// Generate rolls a rarity, filters the catalog and samples one fish. It
// returns (nil, nil) when nothing in the pond qualifies.
func (g *Generator) Generate(depth float64, bait *BaitDef) (*Fish, error) {
	ceiling := SelectRarity(bait, g.cfg.Tuning, g.src)

	eligible := g.Eligible(depth, ceiling)
	if len(eligible) == 0 {
		return nil, nil
	}

	idx := weightedIndex(g.SpeciesWeights(eligible, bait), g.src)
	if idx < 0 {
		return nil, nil
	}
	return g.Spawn(eligible[idx], depth, bait)
}

// Spawn samples size, weight and value for a specific species.
func (g *Generator) Spawn(sp SpeciesDef, depth float64, bait *BaitDef) (*Fish, error) {
	size, err := sp.Size.SampleBiased(bait.SizeBias(g.cfg.Tuning), g.src)
	if err != nil {
		return nil, err
	}
	weight, err := sp.Weight.SampleBiased(bait.WeightBias(g.cfg.Tuning), g.src)
	if err != nil {
		return nil, err
	}

	// Priced on the recorded measurements so the value matches what is shown.
	size, weight = round2(size), round2(weight)
	return &Fish{
		Species: sp,
		Size:    size,
		Weight:  weight,
		Depth:   depth,
		Value:   g.cfg.Formula.Value(sp, size, weight),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
