package cast

import "github.com/Sk3pz/angler-bot-v2/internal/fish"

type OutcomeKind int

const (
	OutcomeNothing OutcomeKind = iota
	OutcomeMissed
	OutcomeCaught
	OutcomeSnapped
	OutcomeCanceled
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMissed:
		return "missed"
	case OutcomeCaught:
		return "caught"
	case OutcomeSnapped:
		return "snapped"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "nothing"
	}
}

// Outcome is the terminal result of a cast. Losing a fish is an outcome,
// not an error.
type Outcome struct {
	Kind OutcomeKind
	// Fish is nil for OutcomeNothing and when a cast is canceled before
	// anything bit.
	Fish *fish.Fish

	HookChance  float64
	Load        float64
	MaxStrength float64

	// Challenge is set when the catch went through the overload challenge.
	Challenge *Challenge
	Reply     string
	TimedOut  bool

	Credited fish.Money
	Balance  fish.Money
	// NewSpecies is set when the catch added a species to the collection.
	NewSpecies bool

	// RevealLoss lets the player see what got away (underwater camera).
	RevealLoss bool
	Flavor     string
}

// Lost reports whether a fish was on the line and got away.
func (o Outcome) Lost() bool {
	return o.Kind == OutcomeMissed || o.Kind == OutcomeSnapped
}
