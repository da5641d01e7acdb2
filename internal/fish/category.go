package fish

import (
	"fmt"
	"strings"
)

// Category groups species by behavior. It drives the hook-chance fight
// multiplier and category baits.
type Category int

const (
	CategoryForager Category = iota
	CategoryBaitFish
	CategorySchooling
	CategoryPredatory
	CategoryBottomFeeder
	CategoryOrnamental
	CategoryApex
	CategoryAbyssal
	CategoryMythological
)

var Categories = []Category{
	CategoryForager,
	CategoryBaitFish,
	CategorySchooling,
	CategoryPredatory,
	CategoryBottomFeeder,
	CategoryOrnamental,
	CategoryApex,
	CategoryAbyssal,
	CategoryMythological,
}

func (c Category) String() string {
	switch c {
	case CategoryBaitFish:
		return "BaitFish"
	case CategorySchooling:
		return "Schooling"
	case CategoryPredatory:
		return "Predatory"
	case CategoryBottomFeeder:
		return "BottomFeeder"
	case CategoryOrnamental:
		return "Ornamental"
	case CategoryApex:
		return "Apex"
	case CategoryAbyssal:
		return "Abyssal"
	case CategoryMythological:
		return "Mythological"
	default:
		return "Forager"
	}
}

// FightMultiplier divides the hook chance. Higher means harder to hook.
func (c Category) FightMultiplier() float64 {
	switch c {
	case CategoryApex:
		return 2.5
	case CategoryPredatory, CategoryAbyssal:
		return 1.5
	case CategoryBottomFeeder:
		return 1.2
	case CategorySchooling:
		return 0.8
	case CategoryOrnamental:
		return 0.2
	case CategoryBaitFish:
		return 0.1
	default:
		return 1.0
	}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(c.String(), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return CategoryForager, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
