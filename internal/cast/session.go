package cast

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
)

// State of a cast. Casting moves to Canceled or Resolving exactly once; the
// first side to swap the state owns the session from then on.
type State int32

const (
	StateCasting State = iota
	StateCanceled
	StateResolving
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateCanceled:
		return "canceled"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	default:
		return "casting"
	}
}

// Session is one cast in flight.
type Session struct {
	ID        string
	Recipient Recipient
	// Fish is what bit, decided when the line went in. nil means nothing will.
	Fish      *fish.Fish
	Loadout   gear.Loadout
	Depth     float64
	Delay     time.Duration
	StartedAt time.Time

	mu        sync.Mutex
	handle    Handle
	announced bool

	state atomic.Int32
	done  chan Outcome

	ctx  context.Context
	stop context.CancelFunc
}

func (s *Session) State() State { return State(s.state.Load()) }

// Done yields the terminal Outcome once and is then closed.
func (s *Session) Done() <-chan Outcome { return s.done }

func (s *Session) ResolvesAt() time.Time { return s.StartedAt.Add(s.Delay) }

func (s *Session) claim(next State) bool {
	return s.state.CompareAndSwap(int32(StateCasting), int32(next))
}

// announce records the cast's announcement. It reports false if the cast
// was canceled while the announcement was in flight; the caller then owns
// the canceled status update.
func (s *Session) announce(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handle = h
	s.announced = true
	return s.State() == StateCasting
}

// claimCancel claims the session for cancellation and returns the
// announcement, if one has landed, for the status update.
func (s *Session) claimCancel() (Handle, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.claim(StateCanceled) {
		return Handle{}, false, false
	}
	return s.handle, s.announced, true
}

func (s *Session) finish(o Outcome) {
	if s.State() == StateResolving {
		s.state.Store(int32(StateResolved))
	}
	s.stop()
	s.done <- o
	close(s.done)
}

// Snapshot is a read-only view of a live cast.
type Snapshot struct {
	ID         string    `json:"id"`
	Player     string    `json:"player"`
	State      string    `json:"state"`
	DepthFt    float64   `json:"depth_ft"`
	HasFish    bool      `json:"has_fish"`
	StartedAt  time.Time `json:"started_at"`
	ResolvesAt time.Time `json:"resolves_at"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:         s.ID,
		Player:     s.Recipient.Player.String(),
		State:      s.State().String(),
		DepthFt:    s.Depth,
		HasFish:    s.Fish != nil,
		StartedAt:  s.StartedAt,
		ResolvesAt: s.ResolvesAt(),
	}
}
