// Package store persists player profiles and catch history.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrClosed            = errors.New("store closed")
)

const defaultLimit = 10

// Store is what the bot needs from persistence. Every mutation of one
// player's profile is applied atomically.
type Store interface {
	cast.LoadoutProvider
	cast.WalletLedger

	// Profile returns ErrNotFound for players who have never played.
	Profile(ctx context.Context, id player.ID) (player.Profile, error)
	// UpdateInventory applies fn to the player's inventory. Nothing is saved
	// when fn returns an error.
	UpdateInventory(ctx context.Context, id player.ID, fn func(inv *gear.Inventory) error) (player.Profile, error)
	Debit(ctx context.Context, id player.ID, amount fish.Money) (fish.Money, error)
	// Purchase debits price and applies fn in one transaction.
	Purchase(ctx context.Context, id player.ID, price fish.Money, fn func(inv *gear.Inventory) error) (player.Profile, error)

	TopBySize(ctx context.Context, guild string, limit int) ([]fish.Catch, error)
	TopBySizeSpecies(ctx context.Context, guild, species string, limit int) ([]fish.Catch, error)

	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// The profile mutations below are shared by every backend. Each runs inside
// the backend's per-player transaction.

func consumeBait(p *player.Profile) error {
	p.Inventory.RemoveActiveBait()
	return nil
}

// clearBait destroys the equipped bait after it was lost with the line.
// Reusable lures go too.
func clearBait(p *player.Profile) error {
	p.Inventory.RemoveActiveBait()
	return nil
}

func credit(amount fish.Money) func(p *player.Profile) error {
	return func(p *player.Profile) error {
		if amount < 0 {
			return fmt.Errorf("credit of negative amount %s", amount)
		}
		p.Balance += amount
		return nil
	}
}

func debit(amount fish.Money) func(p *player.Profile) error {
	return func(p *player.Profile) error {
		if amount < 0 {
			return fmt.Errorf("debit of negative amount %s", amount)
		}
		if p.Balance < amount {
			return fmt.Errorf("%w: balance %s, need %s", ErrInsufficientFunds, p.Balance, amount)
		}
		p.Balance -= amount
		return nil
	}
}

func purchase(price fish.Money, fn func(inv *gear.Inventory) error) func(p *player.Profile) error {
	return func(p *player.Profile) error {
		if err := debit(price)(p); err != nil {
			return err
		}
		return fn(&p.Inventory)
	}
}

func newCatch(id player.ID, f *fish.Fish, now time.Time) fish.Catch {
	return fish.Catch{
		GuildId:  id.Guild,
		UserId:   id.User,
		Species:  f.Name(),
		Size:     f.Size,
		Weight:   f.Weight,
		Value:    f.Value,
		CaughtAt: now,
	}
}

func hundredths(v float64) int64 { return int64(math.Round(v * 100)) }

func normLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
