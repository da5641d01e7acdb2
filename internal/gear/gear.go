// Package gear holds the equipment a player fishes with and derives the
// loadout stats a cast uses.
package gear

import (
	"math"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
)

// Rod multiplies the line's strength and the reel's speed.
type Rod struct {
	Name          string     `json:"name" yaml:"name"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Price         fish.Money `json:"price" yaml:"price"`
	StrengthBonus float64    `json:"strength_bonus" yaml:"strength_bonus"`
	Efficiency    float64    `json:"efficiency" yaml:"efficiency"`
	// Sensitivity is added to the base hook chance.
	Sensitivity float64 `json:"sensitivity" yaml:"sensitivity"`
}

// Line strength is the load, in lbs, it holds before the overload challenge.
type Line struct {
	Name     string     `json:"name" yaml:"name"`
	Price    fish.Money `json:"price" yaml:"price"`
	Strength float64    `json:"strength" yaml:"strength"`
}

// Reel speed divides the base cast wait. 2.0 is twice as fast.
type Reel struct {
	Name  string     `json:"name" yaml:"name"`
	Price fish.Money `json:"price" yaml:"price"`
	Speed float64    `json:"speed" yaml:"speed"`
}

// Sinker decides how deep a cast lands. Its weight adds to the line load.
type Sinker struct {
	Name   string         `json:"name" yaml:"name"`
	Price  fish.Money     `json:"price" yaml:"price"`
	Weight float64        `json:"weight" yaml:"weight"`
	Depth  fish.Attribute `json:"depth_range" yaml:"depth_range"`
}

// EffectiveBands lists the depth bands the sinker's range reaches.
func (s Sinker) EffectiveBands() []fish.DepthBand {
	var out []fish.DepthBand
	for _, b := range fish.DepthBands {
		if b.Overlaps(s.Depth.Min, s.Depth.Max, false) {
			out = append(out, b)
		}
	}
	return out
}

// SampleDepth draws a cast depth in feet, rounded to hundredths.
func (s Sinker) SampleDepth(src fish.Source) (float64, error) {
	d, err := s.Depth.Sample(src)
	if err != nil {
		return 0, err
	}
	return math.Round(d*100) / 100, nil
}

func DefaultRod() Rod {
	return Rod{
		Name:          "Driftwood Rod",
		Description:   "It bends. Mostly in the right places.",
		StrengthBonus: 1.0,
		Efficiency:    1.0,
		Sensitivity:   0,
	}
}

func DefaultLine() Line { return Line{Name: "Frayed Line", Strength: 10} }

func DefaultReel() Reel { return Reel{Name: "Rusty Reel", Speed: 1.0} }

func DefaultSinker() Sinker {
	return Sinker{
		Name:   "Split Shot",
		Weight: 0.1,
		Depth:  fish.Attribute{Min: 0, Max: 60, Average: 20},
	}
}
