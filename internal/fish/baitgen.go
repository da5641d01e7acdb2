package fish

import (
	"fmt"
	"strings"
)

// Potency is the strength tier used when generating shop bait.
type Potency int

const (
	PotencyLow Potency = iota
	PotencyMedium
	PotencyHigh
)

func (p Potency) String() string {
	switch p {
	case PotencyHigh:
		return "high"
	case PotencyMedium:
		return "medium"
	default:
		return "low"
	}
}

func ParsePotency(s string) (Potency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PotencyLow, nil
	case "medium":
		return PotencyMedium, nil
	case "high":
		return PotencyHigh, nil
	}
	return PotencyLow, fmt.Errorf("unknown potency %q", s)
}

// generated rarity attractions never target Mythical.
var generatedRarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityElusive, RarityLegendary}

// GenerateBait builds a single-use bait for the given potency:
//
//	low:    1-2 Low attractions
//	medium: 1 Medium, 50% chance of an extra Low
//	high:   1-2 High, 1 Medium, 1-2 Low
func GenerateBait(p Potency, baseNames []string, src Source) BaitDef {
	base := "Bait"
	if len(baseNames) > 0 {
		base = baseNames[src.Intn(len(baseNames))]
	}

	var attractions Attractions
	add := func(n int, bias BiasStrength) {
		for i := 0; i < n; i++ {
			attractions = append(attractions, randomAttraction(bias, src))
		}
	}

	var price float64
	switch p {
	case PotencyHigh:
		add(1+src.Intn(2), BiasHigh)
		add(1, BiasMedium)
		add(1+src.Intn(2), BiasLow)
		price = 300 + src.Float64()*500
	case PotencyMedium:
		add(1, BiasMedium)
		if src.Float64() < 0.5 {
			add(1, BiasLow)
		}
		price = 50 + src.Float64()*100
	default:
		add(1+src.Intn(2), BiasLow)
		price = 5 + src.Float64()*15
	}

	b := BaitDef{
		Name:        baitName(base, attractions),
		Price:       NewMoney(price),
		UseChance:   1,
		Attractions: attractions,
	}
	b.Description = b.Describe()
	return b
}

func randomAttraction(bias BiasStrength, src Source) Attraction {
	roll := src.Intn(100)
	switch {
	case roll < 30:
		if src.Intn(2) == 0 {
			return LargeAttraction{Bias: bias}
		}
		return SmallAttraction{Bias: bias}
	case roll < 60:
		if src.Intn(2) == 0 {
			return HeavyAttraction{Bias: bias}
		}
		return LightAttraction{Bias: bias}
	case roll < 85:
		return CategoryAttraction{Category: Categories[src.Intn(len(Categories))], Bias: bias}
	default:
		return RarityAttraction{Rarity: generatedRarities[src.Intn(len(generatedRarities))], Bias: bias}
	}
}

// baitName prefixes the base name after the most telling attraction:
// category first, then rarity, then size or weight.
func baitName(base string, as Attractions) string {
	for _, a := range as {
		if ca, ok := a.(CategoryAttraction); ok {
			return categoryPrefix(ca.Category) + " " + base
		}
	}
	for _, a := range as {
		if ra, ok := a.(RarityAttraction); ok {
			return rarityPrefix(ra.Rarity) + " " + base
		}
	}
	for _, a := range as {
		switch a.(type) {
		case LargeAttraction:
			return "Big " + base
		case SmallAttraction:
			return "Tiny " + base
		case HeavyAttraction:
			return "Heavy " + base
		case LightAttraction:
			return "Light " + base
		}
	}
	return "Standard " + base
}

func categoryPrefix(c Category) string {
	switch c {
	case CategoryBaitFish:
		return "Feeder"
	case CategorySchooling:
		return "Swarming"
	case CategoryPredatory:
		return "Hunter's"
	case CategoryBottomFeeder:
		return "Muddy"
	case CategoryOrnamental:
		return "Shiny"
	case CategoryApex:
		return "Apex"
	case CategoryAbyssal:
		return "Abyssal"
	case CategoryMythological:
		return "Mystic"
	default:
		return "Forager's"
	}
}

func rarityPrefix(r Rarity) string {
	if r == RarityMythical {
		return "Godly"
	}
	return r.String()
}
