package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

// MemoryStore keeps everything in process. Profiles are deep copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[player.ID]player.Profile
	catches  []fish.Catch
	nextID   int64
	closed   bool
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[player.ID]player.Profile),
		now:      time.Now,
	}
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func cloneProfile(p player.Profile) (player.Profile, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return player.Profile{}, err
	}
	var out player.Profile
	if err := json.Unmarshal(b, &out); err != nil {
		return player.Profile{}, err
	}
	out.ID = p.ID
	return out, nil
}

// update runs fn against a copy of the player's profile and stores the copy
// only if fn succeeds. Callers must hold m.mu.
func (m *MemoryStore) update(ctx context.Context, id player.ID, fn func(p *player.Profile) error) (player.Profile, error) {
	if err := ctx.Err(); err != nil {
		return player.Profile{}, err
	}
	if m.closed {
		return player.Profile{}, ErrClosed
	}
	p, ok := m.profiles[id]
	if !ok {
		p = player.NewProfile(id)
	}
	p, err := cloneProfile(p)
	if err != nil {
		return player.Profile{}, err
	}
	if err := fn(&p); err != nil {
		return player.Profile{}, err
	}
	m.profiles[id] = p
	return cloneProfile(p)
}

func (m *MemoryStore) mutate(ctx context.Context, id player.ID, fn func(p *player.Profile) error) (player.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.update(ctx, id, fn)
}

func (m *MemoryStore) Profile(ctx context.Context, id player.ID) (player.Profile, error) {
	if err := ctx.Err(); err != nil {
		return player.Profile{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return player.Profile{}, ErrClosed
	}
	p, ok := m.profiles[id]
	if !ok {
		return player.Profile{}, ErrNotFound
	}
	return cloneProfile(p)
}

func (m *MemoryStore) GetLoadout(ctx context.Context, id player.ID) (gear.Loadout, error) {
	p, err := m.Profile(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return gear.DefaultLoadout(), nil
	case err != nil:
		return gear.Loadout{}, err
	}
	return p.Inventory.Loadout(), nil
}

func (m *MemoryStore) ConsumeActiveBait(ctx context.Context, id player.ID) error {
	_, err := m.mutate(ctx, id, consumeBait)
	return err
}

func (m *MemoryStore) ClearActiveBait(ctx context.Context, id player.ID) error {
	_, err := m.mutate(ctx, id, clearBait)
	return err
}

func (m *MemoryStore) UpdateInventory(ctx context.Context, id player.ID, fn func(inv *gear.Inventory) error) (player.Profile, error) {
	return m.mutate(ctx, id, func(p *player.Profile) error { return fn(&p.Inventory) })
}

func (m *MemoryStore) Credit(ctx context.Context, id player.ID, amount fish.Money) (fish.Money, error) {
	p, err := m.mutate(ctx, id, credit(amount))
	return p.Balance, err
}

func (m *MemoryStore) Debit(ctx context.Context, id player.ID, amount fish.Money) (fish.Money, error) {
	p, err := m.mutate(ctx, id, debit(amount))
	return p.Balance, err
}

func (m *MemoryStore) Purchase(ctx context.Context, id player.ID, price fish.Money, fn func(inv *gear.Inventory) error) (player.Profile, error) {
	return m.mutate(ctx, id, purchase(price, fn))
}

func (m *MemoryStore) RecordCatch(ctx context.Context, id player.ID, f *fish.Fish) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var fresh bool
	if _, err := m.update(ctx, id, func(p *player.Profile) error {
		fresh = p.RecordCatch(f.Name())
		return nil
	}); err != nil {
		return false, err
	}
	m.nextID++
	c := newCatch(id, f, m.now())
	c.Id = m.nextID
	m.catches = append(m.catches, c)
	return fresh, nil
}

func (m *MemoryStore) TopBySize(ctx context.Context, guild string, limit int) ([]fish.Catch, error) {
	return m.top(ctx, limit, func(c fish.Catch) bool { return c.GuildId == guild })
}

func (m *MemoryStore) TopBySizeSpecies(ctx context.Context, guild, species string, limit int) ([]fish.Catch, error) {
	return m.top(ctx, limit, func(c fish.Catch) bool {
		return c.GuildId == guild && strings.EqualFold(c.Species, species)
	})
}

func (m *MemoryStore) top(ctx context.Context, limit int, keep func(fish.Catch) bool) ([]fish.Catch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	var out []fish.Catch
	for _, c := range m.catches {
		if keep(c) {
			out = append(out, c)
		}
	}
	// Same order as the SQL index: biggest first, newest first on ties.
	sort.Slice(out, func(i, j int) bool {
		si, sj := hundredths(out[i].Size), hundredths(out[j].Size)
		if si != sj {
			return si > sj
		}
		return out[i].Id > out[j].Id
	})
	if limit = normLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
