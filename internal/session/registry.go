// Package session tracks which players have a cast in flight and provides
// the clock casts are timed against.
package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

var ErrAlreadyFishing = errors.New("already fishing")

// Registry is the set of players with a live, unresolved cast. The mutex
// only guards the map and is never held while waiting on anything.
type Registry struct {
	mu     sync.Mutex
	active map[player.ID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{active: make(map[player.ID]struct{})}
}

// TryBegin marks id as fishing, or returns ErrAlreadyFishing if it already is.
func (r *Registry) TryBegin(id player.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.active[id]; ok {
		return ErrAlreadyFishing
	}
	r.active[id] = struct{}{}
	return nil
}

// End removes id. Ending a player that is not fishing is a no-op.
func (r *Registry) End(id player.ID) {
	r.mu.Lock()
	delete(r.active, id)
	r.mu.Unlock()
}

func (r *Registry) Active(id player.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[id]
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Players returns the active players ordered by guild then user.
func (r *Registry) Players() []player.ID {
	r.mu.Lock()
	out := make([]player.ID, 0, len(r.active))
	for id := range r.active {
		out = append(out, id)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Guild != out[j].Guild {
			return out[i].Guild < out[j].Guild
		}
		return out[i].User < out[j].User
	})
	return out
}
