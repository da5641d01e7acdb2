package cast

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

// awaitResolution wakes when the cast delay elapses, whether or not the cast
// was canceled in the meantime.
func (e *Engine) awaitResolution(s *Session, timer <-chan time.Time) {
	defer e.wg.Done()

	select {
	case <-timer:
		e.resolve(s)
	case <-e.ctx.Done():
		if s.claim(StateCanceled) {
			e.registry.End(s.Recipient.Player)
			e.untrack(s)
			s.finish(Outcome{Kind: OutcomeCanceled, Fish: s.Fish})
		}
	}
}

func (e *Engine) offerCancel(s *Session) {
	defer e.wg.Done()

	canceled, err := e.notifier.OfferCancel(s.ctx, s.handle, s.Delay)
	if err != nil && s.ctx.Err() == nil {
		e.log.Warn("cancel window failed", zap.String("session", s.ID), zap.Error(err))
	}
	if canceled {
		e.cancel(s)
	}
}

func (e *Engine) cancel(s *Session) bool {
	h, announced, ok := s.claimCancel()
	if !ok {
		return false
	}

	e.registry.End(s.Recipient.Player)
	e.untrack(s)
	if announced {
		if err := e.notifier.UpdateStatus(e.ctx, h, StatusCanceled); err != nil {
			e.log.Warn("updating canceled cast", zap.String("session", s.ID), zap.Error(err))
		}
	}
	e.log.Debug("cast canceled", zap.String("player", s.Recipient.Player.String()), zap.String("session", s.ID))
	s.finish(Outcome{Kind: OutcomeCanceled, Fish: s.Fish})
	return true
}

// resolve runs once per session. A canceled session is left untouched.
func (e *Engine) resolve(s *Session) {
	if !s.claim(StateResolving) {
		return
	}
	s.stop()

	ctx := e.ctx
	id := s.Recipient.Player
	if err := e.notifier.UpdateStatus(ctx, s.handle, StatusResolving); err != nil {
		e.log.Warn("closing cancel window", zap.String("session", s.ID), zap.Error(err))
	}

	// Gear may have changed while the line was out.
	loadout := s.Loadout
	if cur, err := e.loadouts.GetLoadout(ctx, id); err != nil {
		e.log.Warn("reloading loadout, using cast snapshot", zap.String("player", id.String()), zap.Error(err))
	} else {
		loadout = cur
	}

	if b := loadout.Bait; b != nil && !b.Reusable() && e.src.Float64() < b.UseChance {
		if err := e.loadouts.ConsumeActiveBait(ctx, id); err != nil {
			e.log.Error("consuming bait", zap.String("player", id.String()), zap.Error(err))
		}
	}

	e.registry.End(id)
	e.untrack(s)

	o := e.outcome(ctx, s, loadout)
	e.log.Debug("cast resolved",
		zap.String("player", id.String()),
		zap.String("session", s.ID),
		zap.Stringer("outcome", o.Kind),
		zap.Float64("hook_chance", o.HookChance),
	)

	if o.Kind == OutcomeCanceled {
		s.finish(o)
		return
	}
	if err := e.notifier.SendResolution(ctx, s.Recipient, o); err != nil {
		e.log.Error("sending resolution", zap.String("player", id.String()), zap.Error(err))
	}
	s.finish(o)
}

func (e *Engine) outcome(ctx context.Context, s *Session, l gear.Loadout) Outcome {
	f := s.Fish
	if f == nil {
		return Outcome{Kind: OutcomeNothing}
	}
	id := s.Recipient.Player

	o := Outcome{
		Fish:        f,
		HookChance:  e.cfg.HookChance(l, f),
		Load:        l.Load(f),
		MaxStrength: l.MaxStrength(),
		RevealLoss:  l.UnderwaterCamera,
	}

	if e.src.Float64() >= o.HookChance {
		o.Kind = OutcomeMissed
		o.Flavor = pickLine(missedLines, e.src)
		if e.cfg.MissedClearsBait {
			e.clearBait(ctx, id)
		}
		return o
	}

	if o.Load > o.MaxStrength {
		ch := Challenge{
			Code:        newCode(e.cfg.CodeLength, e.src),
			TimeLimit:   e.cfg.ChallengeTimeLimit(o.Load, o.MaxStrength),
			Load:        o.Load,
			MaxStrength: o.MaxStrength,
		}
		o.Challenge = &ch

		reply, ok := e.awaitReply(ctx, s.Recipient, ch)
		if ctx.Err() != nil {
			// Shut down mid-fight: the cast is abandoned, not lost.
			return Outcome{Kind: OutcomeCanceled, Fish: f, Challenge: &ch}
		}
		o.Reply = reply
		o.TimedOut = !ok
		if !ok || !MatchesCode(reply, ch.Code) {
			o.Kind = OutcomeSnapped
			o.Flavor = pickLine(snappedLines, e.src)
			e.clearBait(ctx, id)
			return o
		}
	}

	return e.land(ctx, id, o)
}

// awaitReply bounds the challenge prompt by the engine clock.
func (e *Engine) awaitReply(ctx context.Context, r Recipient, ch Challenge) (string, bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type reply struct {
		text string
		ok   bool
	}
	replies := make(chan reply, 1)
	timeout := e.clock.After(ch.TimeLimit)

	go func() {
		text, ok, err := e.notifier.PromptChallenge(ctx, r, ch)
		if err != nil && ctx.Err() == nil {
			e.log.Warn("prompting challenge", zap.String("player", r.Player.String()), zap.Error(err))
		}
		replies <- reply{text, ok && err == nil}
	}()

	select {
	case rep := <-replies:
		return rep.text, rep.ok
	case <-timeout:
		return "", false
	case <-ctx.Done():
		return "", false
	}
}

func (e *Engine) land(ctx context.Context, id player.ID, o Outcome) Outcome {
	o.Kind = OutcomeCaught

	balance, err := e.wallet.Credit(ctx, id, o.Fish.Value)
	if err != nil {
		e.log.Error("crediting catch",
			zap.String("player", id.String()),
			zap.Stringer("value", o.Fish.Value),
			zap.Error(err),
		)
	} else {
		o.Credited = o.Fish.Value
		o.Balance = balance
	}

	fresh, err := e.wallet.RecordCatch(ctx, id, o.Fish)
	if err != nil {
		e.log.Error("recording catch", zap.String("player", id.String()), zap.String("species", o.Fish.Name()), zap.Error(err))
	}
	o.NewSpecies = fresh
	return o
}

func (e *Engine) clearBait(ctx context.Context, id player.ID) {
	if err := e.loadouts.ClearActiveBait(ctx, id); err != nil {
		e.log.Error("clearing bait", zap.String("player", id.String()), zap.Error(err))
	}
}
