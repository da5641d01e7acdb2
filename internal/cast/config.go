package cast

import (
	"math"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
)

// Config tunes cast timing and catch odds.
type Config struct {
	// BaseChance is the hook chance before rod sensitivity and fight.
	BaseChance float64
	BaseWait   time.Duration
	MinWait    time.Duration
	// WeightTimeFactor adds this many seconds per lb above the species
	// average, and removes them below it.
	WeightTimeFactor float64

	BaseChallengeTime time.Duration
	MinChallengeTime  time.Duration
	CodeLength        int

	// MissedClearsBait removes the equipped bait when a fish slips the hook.
	MissedClearsBait bool
	// LogCastData logs every cast's fish and delay.
	LogCastData bool

	Generator fish.GeneratorConfig
}

func DefaultConfig() Config {
	return Config{
		BaseChance:        0.5,
		BaseWait:          30 * time.Second,
		MinWait:           5 * time.Second,
		WeightTimeFactor:  0.5,
		BaseChallengeTime: 15 * time.Second,
		MinChallengeTime:  4 * time.Second,
		CodeLength:        5,
		Generator: fish.GeneratorConfig{
			Tuning:  fish.DefaultBaitTuning(),
			Formula: fish.ValueMultiplicative,
		},
	}
}

func seconds(d time.Duration) float64 { return d.Seconds() }

func fromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Delay is how long a cast waits before it resolves. It is fixed once the
// fish has been generated.
func (c Config) Delay(l gear.Loadout, f *fish.Fish) time.Duration {
	wait := seconds(c.BaseWait)
	if speed := l.SpeedMultiplier(); speed > 0 {
		wait /= speed
	}
	wait = math.Max(wait, seconds(c.MinWait))

	if f != nil {
		wait += (f.Weight - f.Species.Weight.Average) * c.WeightTimeFactor
	}
	return fromSeconds(math.Max(wait, 0))
}

// HookChance is (base + sensitivity) / fight, clamped to [0, 1].
func (c Config) HookChance(l gear.Loadout, f *fish.Fish) float64 {
	return c.CategoryHookChance(l, f.Species.Category)
}

// CategoryHookChance is the hook chance against any fish of category cat.
func (c Config) CategoryHookChance(l gear.Loadout, cat fish.Category) float64 {
	fight := cat.FightMultiplier()
	if fight <= 0 {
		fight = 1
	}
	return math.Min(math.Max((c.BaseChance+l.HookSensitivity())/fight, 0), 1)
}

// ChallengeTimeLimit shrinks the reply window as the load grows past the
// line's strength, down to MinChallengeTime.
func (c Config) ChallengeTimeLimit(load, maxStrength float64) time.Duration {
	if maxStrength <= 0 || load <= 0 {
		return c.MinChallengeTime
	}
	limit := seconds(c.BaseChallengeTime) / (load / maxStrength)
	return fromSeconds(math.Max(limit, seconds(c.MinChallengeTime)))
}
