package cast

import (
	"context"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

// CatalogStore serves the read-only species and bait catalogs.
type CatalogStore interface {
	LoadSpecies(ctx context.Context) ([]fish.SpeciesDef, error)
	LoadBaitCatalog(ctx context.Context) (fish.BaitCatalog, error)
}

// LoadoutProvider reads and mutates a player's equipped gear. Mutations for
// one player must be serialized by the implementation.
type LoadoutProvider interface {
	GetLoadout(ctx context.Context, id player.ID) (gear.Loadout, error)
	// ConsumeActiveBait uses up the equipped bait after a catch.
	ConsumeActiveBait(ctx context.Context, id player.ID) error
	// ClearActiveBait destroys the equipped bait after it was lost, whether
	// or not it is single use.
	ClearActiveBait(ctx context.Context, id player.ID) error
}

type WalletLedger interface {
	// Credit adds amount to the player's balance and returns the new balance.
	Credit(ctx context.Context, id player.ID, amount fish.Money) (fish.Money, error)
	// RecordCatch adds f to the player's history and reports whether its
	// species is new to their collection.
	RecordCatch(ctx context.Context, id player.ID, f *fish.Fish) (bool, error)
}

// Recipient is where cast messages go.
type Recipient struct {
	Player  player.ID
	Channel string
	// Display is the name used in log lines and messages.
	Display string
	// Origin is transport state for the command that started the cast, for
	// example the chat interaction to reply to. The engine never reads it.
	Origin any
}

// Handle refers to the announcement of one cast.
type Handle struct {
	SessionID string
	Ref       any
}

type Announcement struct {
	SessionID string
	Recipient Recipient
	Rod       string
	// Depth is the cast depth as shown to the player, "??? ft" without a
	// depth finder.
	Depth  string
	Flavor string
	Delay  time.Duration
}

// Status is a change to a cast announcement.
type Status int

const (
	// StatusResolving means the cancel window is closed.
	StatusResolving Status = iota
	StatusCanceled
)

func (s Status) String() string {
	if s == StatusCanceled {
		return "canceled"
	}
	return "resolving"
}

type Notifier interface {
	AnnounceCast(ctx context.Context, a Announcement) (Handle, error)
	// OfferCancel waits up to timeout for the player to cancel the cast and
	// reports whether they did. It returns early when ctx is done.
	OfferCancel(ctx context.Context, h Handle, timeout time.Duration) (bool, error)
	UpdateStatus(ctx context.Context, h Handle, s Status) error
	SendResolution(ctx context.Context, r Recipient, o Outcome) error
	// PromptChallenge shows the code and waits for the player's reply. ok is
	// false when no reply arrived before ctx was done.
	PromptChallenge(ctx context.Context, r Recipient, c Challenge) (reply string, ok bool, err error)
}
