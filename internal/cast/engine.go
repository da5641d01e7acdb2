// Package cast runs the cast lifecycle: it starts casts, times them, lets the
// player cancel, and resolves each one into an Outcome.
package cast

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
	"github.com/Sk3pz/angler-bot-v2/internal/session"
)

// Deps are the collaborators of an Engine. Registry, Clock, Source and
// Logger are optional.
type Deps struct {
	Catalog  CatalogStore
	Loadouts LoadoutProvider
	Wallet   WalletLedger
	Notifier Notifier

	Registry *session.Registry
	Clock    session.Clock
	Source   fish.Source
	Logger   *zap.Logger
}

type Engine struct {
	cfg      Config
	catalog  CatalogStore
	loadouts LoadoutProvider
	wallet   WalletLedger
	notifier Notifier
	registry *session.Registry
	clock    session.Clock
	src      fish.Source
	log      *zap.Logger

	// ctx outlives the commands that start casts; Close cancels it.
	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu   sync.Mutex
	live map[player.ID]*Session
}

func NewEngine(cfg Config, d Deps) *Engine {
	if d.Registry == nil {
		d.Registry = session.NewRegistry()
	}
	if d.Clock == nil {
		d.Clock = session.RealClock{}
	}
	if d.Source == nil {
		d.Source = fish.NewSource()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	ctx, stop := context.WithCancel(context.Background())
	return &Engine{
		cfg:      cfg,
		catalog:  d.Catalog,
		loadouts: d.Loadouts,
		wallet:   d.Wallet,
		notifier: d.Notifier,
		registry: d.Registry,
		clock:    d.Clock,
		src:      d.Source,
		log:      d.Logger,
		ctx:      ctx,
		stop:     stop,
		live:     make(map[player.ID]*Session),
	}
}

func (e *Engine) Config() Config { return e.cfg }

// Cast starts a cast for r.Player. On success the resolution timer is
// already armed when Cast returns, unless the player reeled in while the
// cast was being announced, in which case the returned session is already
// canceled. On error no session exists and the player is free to cast
// again.
func (e *Engine) Cast(ctx context.Context, r Recipient) (*Session, error) {
	if err := e.registry.TryBegin(r.Player); err != nil {
		return nil, err
	}

	s, err := e.prepare(ctx, r)
	if err != nil {
		e.registry.End(r.Player)
		return nil, err
	}

	depth := "??? ft"
	if s.Loadout.DepthFinder {
		depth = fmt.Sprintf("%.2f ft", s.Depth)
	}

	// The cast is live, and cancelable, while the announcement is in flight.
	e.track(s)
	h, err := e.notifier.AnnounceCast(ctx, Announcement{
		SessionID: s.ID,
		Recipient: r,
		Rod:       s.Loadout.Rod.Name,
		Depth:     depth,
		Flavor:    pickLine(castLines, e.src),
		Delay:     s.Delay,
	})
	if err != nil {
		if s.claim(StateCanceled) {
			e.untrack(s)
			e.registry.End(r.Player)
			s.stop()
		}
		return nil, fmt.Errorf("announcing cast: %w", err)
	}
	if !s.announce(h) {
		// Reeled in before the announcement landed. The cancel window still
		// runs so the notifier can release it; the session ctx is already done.
		if err := e.notifier.UpdateStatus(e.ctx, h, StatusCanceled); err != nil {
			e.log.Warn("updating canceled cast", zap.String("session", s.ID), zap.Error(err))
		}
		e.wg.Add(1)
		go e.offerCancel(s)
		return s, nil
	}

	timer := e.clock.After(s.Delay)

	e.wg.Add(2)
	go e.awaitResolution(s, timer)
	go e.offerCancel(s)

	return s, nil
}

func (e *Engine) prepare(ctx context.Context, r Recipient) (*Session, error) {
	species, err := e.catalog.LoadSpecies(ctx)
	if err != nil {
		e.log.Error("loading species catalog", zap.String("player", r.Player.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	loadout, err := e.loadouts.GetLoadout(ctx, r.Player)
	if err != nil {
		e.log.Error("loading loadout", zap.String("player", r.Player.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	depth, err := loadout.SampleDepth(e.src)
	if err != nil {
		return nil, e.generationFailed(r, StageSinker, err)
	}

	f, err := fish.NewGenerator(species, e.cfg.Generator, e.src).Generate(depth, loadout.Bait)
	if err != nil {
		return nil, e.generationFailed(r, StageFish, err)
	}

	sessCtx, stop := context.WithCancel(e.ctx)
	s := &Session{
		ID:        uuid.NewString(),
		Recipient: r,
		Fish:      f,
		Loadout:   loadout,
		Depth:     depth,
		Delay:     e.cfg.Delay(loadout, f),
		StartedAt: e.clock.Now(),
		done:      make(chan Outcome, 1),
		ctx:       sessCtx,
		stop:      stop,
	}
	e.logCast(s)
	return s, nil
}

func (e *Engine) generationFailed(r Recipient, stage string, err error) error {
	gerr := newGenerationError(stage, err)
	e.log.Error("cast generation failed",
		zap.String("code", gerr.Code),
		zap.String("player", r.Player.String()),
		zap.Error(err),
	)
	return gerr
}

func (e *Engine) logCast(s *Session) {
	if !e.cfg.LogCastData {
		return
	}
	fields := []zap.Field{
		zap.String("player", s.Recipient.Player.String()),
		zap.String("session", s.ID),
		zap.Float64("depth_ft", s.Depth),
		zap.Duration("delay", s.Delay),
	}
	if s.Fish == nil {
		e.log.Info("casting for nothing", fields...)
		return
	}

	fields = append(fields,
		zap.String("species", s.Fish.Name()),
		zap.Stringer("rarity", s.Fish.Species.Rarity),
		zap.Float64("size_in", s.Fish.Size),
		zap.Float64("weight_lb", s.Fish.Weight),
		zap.Stringer("value", s.Fish.Value),
	)
	if s.Fish.Species.Rarity >= fish.RarityLegendary {
		e.log.Warn("casting for a rare catch", fields...)
		return
	}
	e.log.Info("casting", fields...)
}

func (e *Engine) track(s *Session) {
	e.mu.Lock()
	e.live[s.Recipient.Player] = s
	e.mu.Unlock()
}

func (e *Engine) untrack(s *Session) {
	e.mu.Lock()
	if e.live[s.Recipient.Player] == s {
		delete(e.live, s.Recipient.Player)
	}
	e.mu.Unlock()
}

// Cancel reels in the player's line. It reports false without an error when
// the cast is already resolving.
func (e *Engine) Cancel(id player.ID) (bool, error) {
	e.mu.Lock()
	s := e.live[id]
	e.mu.Unlock()

	if s == nil {
		return false, ErrNotFishing
	}
	return e.cancel(s), nil
}

// Session returns the player's live cast.
func (e *Engine) Session(id player.ID) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.live[id]
	return s, ok
}

// Snapshots lists live casts, oldest first.
func (e *Engine) Snapshots() []Snapshot {
	e.mu.Lock()
	out := make([]Snapshot, 0, len(e.live))
	for _, s := range e.live {
		out = append(out, s.Snapshot())
	}
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Wait blocks until every cast started so far has finished.
func (e *Engine) Wait() { e.wg.Wait() }

// Close abandons pending casts and waits for their goroutines to exit.
func (e *Engine) Close() {
	e.stop()
	e.wg.Wait()
}
