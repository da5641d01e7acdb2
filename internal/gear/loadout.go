package gear

import "github.com/Sk3pz/angler-bot-v2/internal/fish"

// Loadout is the equipped gear for one cast. It is derived from an
// Inventory and never stored on its own.
type Loadout struct {
	Rod    Rod
	Line   Line
	Reel   Reel
	Sinker Sinker
	// Bait is nil when fishing without bait.
	Bait *fish.BaitDef

	DepthFinder      bool
	UnderwaterCamera bool
}

// MaxStrength is the heaviest load the line holds without a challenge.
func (l Loadout) MaxStrength() float64 {
	return l.Line.Strength * l.Rod.StrengthBonus
}

func (l Loadout) SpeedMultiplier() float64 {
	return l.Reel.Speed * l.Rod.Efficiency
}

func (l Loadout) HookSensitivity() float64 {
	return l.Rod.Sensitivity
}

// DepthRange is the distribution a cast depth is drawn from.
func (l Loadout) DepthRange() fish.Attribute {
	return l.Sinker.Depth
}

func (l Loadout) SampleDepth(src fish.Source) (float64, error) {
	return l.Sinker.SampleDepth(src)
}

// Load is the weight pulling on the line once f is hooked.
func (l Loadout) Load(f *fish.Fish) float64 {
	if f == nil {
		return l.Sinker.Weight
	}
	return f.Weight + l.Sinker.Weight
}

func DefaultLoadout() Loadout {
	return DefaultInventory().Loadout()
}
