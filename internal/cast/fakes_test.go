package cast_test

import (
	"context"
	"sync"
	"time"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

type memCatalog struct {
	species []fish.SpeciesDef
	err     error
}

func (c *memCatalog) LoadSpecies(context.Context) ([]fish.SpeciesDef, error) {
	return c.species, c.err
}

func (c *memCatalog) LoadBaitCatalog(context.Context) (fish.BaitCatalog, error) {
	return fish.BaitCatalog{BaseNames: []string{"Worm"}}, c.err
}

// world stands in for the player store.
type world struct {
	mu         sync.Mutex
	loadout    gear.Loadout
	loadoutErr error
	consumed   int
	cleared    int
	bucket     int
	balance    fish.Money
	credits    []fish.Money
	caught     []string
}

func newWorld(l gear.Loadout) *world {
	w := &world{loadout: l}
	if l.Bait != nil {
		w.bucket = 1
	}
	return w
}

func (w *world) GetLoadout(context.Context, player.ID) (gear.Loadout, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loadout, w.loadoutErr
}

func (w *world) ConsumeActiveBait(context.Context, player.ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.consumed++
	if w.loadout.Bait != nil {
		w.bucket--
	}
	w.loadout.Bait = nil
	return nil
}

func (w *world) ClearActiveBait(context.Context, player.ID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cleared++
	if w.loadout.Bait != nil {
		w.bucket--
	}
	w.loadout.Bait = nil
	return nil
}

func (w *world) Credit(_ context.Context, _ player.ID, amount fish.Money) (fish.Money, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balance += amount
	w.credits = append(w.credits, amount)
	return w.balance, nil
}

func (w *world) RecordCatch(_ context.Context, _ player.ID, f *fish.Fish) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, name := range w.caught {
		if name == f.Name() {
			w.caught = append(w.caught, f.Name())
			return false, nil
		}
	}
	w.caught = append(w.caught, f.Name())
	return true, nil
}

func (w *world) update(fn func(l *gear.Loadout)) {
	w.mu.Lock()
	fn(&w.loadout)
	w.mu.Unlock()
}

func (w *world) snapshot() world {
	w.mu.Lock()
	defer w.mu.Unlock()
	return world{
		consumed: w.consumed,
		cleared:  w.cleared,
		bucket:   w.bucket,
		balance:  w.balance,
		credits:  append([]fish.Money(nil), w.credits...),
		caught:   append([]string(nil), w.caught...),
	}
}

type notifier struct {
	mu          sync.Mutex
	announced   []cast.Announcement
	statuses    []cast.Status
	resolutions []cast.Outcome

	announceErr error
	// onAnnounce runs while the announcement is in flight.
	onAnnounce func(cast.Announcement)
	// cancel, when closed, makes OfferCancel report a cancel click.
	cancel chan struct{}
	// reply answers a challenge. nil means the player never replies.
	reply    func(cast.Challenge) string
	prompted chan cast.Challenge
}

func newNotifier() *notifier {
	return &notifier{prompted: make(chan cast.Challenge, 4)}
}

func (n *notifier) AnnounceCast(_ context.Context, a cast.Announcement) (cast.Handle, error) {
	n.mu.Lock()
	hook := n.onAnnounce
	n.mu.Unlock()
	if hook != nil {
		hook(a)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.announceErr != nil {
		return cast.Handle{}, n.announceErr
	}
	n.announced = append(n.announced, a)
	return cast.Handle{SessionID: a.SessionID}, nil
}

func (n *notifier) setCancel(ch chan struct{}) {
	n.mu.Lock()
	n.cancel = ch
	n.mu.Unlock()
}

func (n *notifier) OfferCancel(ctx context.Context, _ cast.Handle, _ time.Duration) (bool, error) {
	n.mu.Lock()
	clicked := n.cancel
	n.mu.Unlock()
	select {
	case <-clicked:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (n *notifier) UpdateStatus(_ context.Context, _ cast.Handle, s cast.Status) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, s)
	return nil
}

func (n *notifier) SendResolution(_ context.Context, _ cast.Recipient, o cast.Outcome) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolutions = append(n.resolutions, o)
	return nil
}

func (n *notifier) PromptChallenge(ctx context.Context, _ cast.Recipient, c cast.Challenge) (string, bool, error) {
	n.prompted <- c
	if n.reply != nil {
		return n.reply(c), true, nil
	}
	<-ctx.Done()
	return "", false, nil
}

func (n *notifier) counts() (announced, statuses, resolutions int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.announced), len(n.statuses), len(n.resolutions)
}

func (n *notifier) statusList() []cast.Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]cast.Status(nil), n.statuses...)
}
