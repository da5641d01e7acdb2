package fish

import (
	"fmt"
	"strings"
)

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityElusive
	RarityLegendary
	RarityMythical
)

// Rarities lists the ladder from most to least common.
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityElusive,
	RarityLegendary,
	RarityMythical,
}

func (r Rarity) String() string {
	switch r {
	case RarityMythical:
		return "Mythical"
	case RarityLegendary:
		return "Legendary"
	case RarityElusive:
		return "Elusive"
	case RarityRare:
		return "Rare"
	case RarityUncommon:
		return "Uncommon"
	default:
		return "Common"
	}
}

// Weight is the base selection weight of the tier. The ladder sums to 1000.
func (r Rarity) Weight() float64 {
	switch r {
	case RarityMythical:
		return 1
	case RarityLegendary:
		return 10
	case RarityElusive:
		return 89
	case RarityRare:
		return 200
	case RarityUncommon:
		return 300
	default:
		return 400
	}
}

// Possible returns every tier at or below r.
func (r Rarity) Possible() []Rarity {
	out := make([]Rarity, 0, len(Rarities))
	for _, t := range Rarities {
		if t <= r {
			out = append(out, t)
		}
	}
	return out
}

// Includes reports whether other is at or below the ceiling r.
func (r Rarity) Includes(other Rarity) bool {
	return other >= RarityCommon && other <= r
}

func ParseRarity(s string) (Rarity, error) {
	for _, r := range Rarities {
		if strings.EqualFold(r.String(), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return RarityCommon, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(b []byte) error {
	v, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ColorForRarity is the embed color used when announcing a catch.
func ColorForRarity(r Rarity) int {
	switch r {
	case RarityMythical:
		return 0xE74C3C // red
	case RarityLegendary:
		return 0xF1C40F // gold
	case RarityElusive:
		return 0x9B59B6 // purple
	case RarityRare:
		return 0x3498DB // blue
	case RarityUncommon:
		return 0x2ECC71 // green
	default:
		return 0x95A5A6 // gray
	}
}

// RarityWeights returns the per-tier weight vector after applying the bait's
// rarity attraction, indexed like Rarities.
func RarityWeights(bait *BaitDef, tuning BaitTuning) []float64 {
	weights := make([]float64, len(Rarities))
	target, mult, ok := bait.RarityModifier(tuning)
	for i, r := range Rarities {
		weights[i] = r.Weight()
		if ok && r == target {
			weights[i] *= mult
		}
	}
	return weights
}

// SelectRarity draws one rarity tier, biased by the bait if it has a rarity
// attraction. bait may be nil.
func SelectRarity(bait *BaitDef, tuning BaitTuning, src Source) Rarity {
	idx := weightedIndex(RarityWeights(bait, tuning), src)
	if idx < 0 {
		return RarityCommon
	}
	return Rarities[idx]
}
