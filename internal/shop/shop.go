// Package shop sells gear, a daily stock of bait and one-off upgrades.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
	"github.com/Sk3pz/angler-bot-v2/internal/session"
)

var (
	ErrNoSuchItem   = errors.New("no such item")
	ErrAlreadyOwned = errors.New("already owned")
)

type Category int

const (
	CategoryRods Category = iota
	CategoryReels
	CategoryLines
	CategorySinkers
	CategoryBait
	CategoryUnique
)

var Categories = []Category{CategoryRods, CategoryReels, CategoryLines, CategorySinkers, CategoryBait, CategoryUnique}

func (c Category) String() string {
	switch c {
	case CategoryReels:
		return "reels"
	case CategoryLines:
		return "lines"
	case CategorySinkers:
		return "sinkers"
	case CategoryBait:
		return "bait"
	case CategoryUnique:
		return "unique"
	default:
		return "rods"
	}
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(c.String(), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return CategoryRods, fmt.Errorf("unknown shop category %q", s)
}

func (c Category) Description() string {
	switch c {
	case CategoryReels:
		return "Faster reels shorten the wait for a bite."
	case CategoryLines:
		return "Stronger lines hold heavier fish without a fight."
	case CategorySinkers:
		return "Sinkers decide how deep your line goes."
	case CategoryBait:
		return "Daily stock. Bait draws in specific fish, sizes or rarities."
	case CategoryUnique:
		return "Permanent upgrades."
	default:
		return "Better rods hold heavier loads and hook more often."
	}
}

// Item is one row of a shop listing.
type Item struct {
	Name        string
	Description string
	Price       fish.Money
}

type unique struct {
	Item
	owned func(inv gear.Inventory) bool
	grant func(inv *gear.Inventory)
}

var uniques = []unique{
	{
		Item:  Item{Name: "Underwater Camera", Description: "See which fish got away.", Price: fish.NewMoney(2500)},
		owned: func(inv gear.Inventory) bool { return inv.UnderwaterCamera },
		grant: func(inv *gear.Inventory) { inv.UnderwaterCamera = true },
	},
	{
		Item:  Item{Name: "Depth Finder", Description: "Shows how deep each cast lands.", Price: fish.NewMoney(5000)},
		owned: func(inv gear.Inventory) bool { return inv.DepthFinder },
		grant: func(inv *gear.Inventory) { inv.DepthFinder = true },
	},
}

// Purchaser charges a player and changes their inventory atomically.
type Purchaser interface {
	Purchase(ctx context.Context, id player.ID, price fish.Money, fn func(inv *gear.Inventory) error) (player.Profile, error)
}

type BaitSource interface {
	LoadBaitCatalog(ctx context.Context) (fish.BaitCatalog, error)
}

// Config sizes the daily bait stock. A lure is always added on top.
type Config struct {
	LowStock    int
	MediumStock int
	HighStock   int
	// RestockHour is the UTC hour the stock rolls over.
	RestockHour int
}

func DefaultConfig() Config {
	return Config{LowStock: 4, MediumStock: 3, HighStock: 1}
}

type Deps struct {
	Gear   gear.Catalog
	Baits  BaitSource
	Buyer  Purchaser
	Clock  session.Clock
	Source fish.Source
	Logger *zap.Logger
}

type Shop struct {
	cfg   Config
	gear  gear.Catalog
	baits BaitSource
	buyer Purchaser
	clock session.Clock
	src   fish.Source
	log   *zap.Logger

	mu    sync.Mutex
	day   string
	stock []fish.BaitDef
}

func New(cfg Config, d Deps) *Shop {
	if d.Clock == nil {
		d.Clock = session.RealClock{}
	}
	if d.Source == nil {
		d.Source = fish.NewSource()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Shop{
		cfg:   cfg,
		gear:  d.Gear,
		baits: d.Baits,
		buyer: d.Buyer,
		clock: d.Clock,
		src:   d.Source,
		log:   d.Logger,
	}
}

func (s *Shop) stockDay() string {
	return s.clock.Now().UTC().Add(-time.Duration(s.cfg.RestockHour) * time.Hour).Format(time.DateOnly)
}

// DailyBaits returns today's bait stock, generating it on the first call of
// each day.
func (s *Shop) DailyBaits(ctx context.Context) ([]fish.BaitDef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.stockDay()
	if day == s.day {
		return append([]fish.BaitDef(nil), s.stock...), nil
	}

	bc, err := s.baits.LoadBaitCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading bait catalog: %w", err)
	}

	var stock []fish.BaitDef
	add := func(n int, p fish.Potency) {
		for i := 0; i < n; i++ {
			stock = append(stock, fish.GenerateBait(p, bc.BaseNames, s.src))
		}
	}
	add(s.cfg.LowStock, fish.PotencyLow)
	add(s.cfg.MediumStock, fish.PotencyMedium)
	add(s.cfg.HighStock, fish.PotencyHigh)
	stock = append(stock, s.lure())
	stock = append(stock, bc.Baits...)

	s.day, s.stock = day, stock
	s.log.Info("shop restocked", zap.String("day", day), zap.Int("baits", len(stock)))
	return append([]fish.BaitDef(nil), stock...), nil
}

// lure is a high potency bait that is never used up, priced accordingly.
func (s *Shop) lure() fish.BaitDef {
	b := fish.GenerateBait(fish.PotencyHigh, []string{"Lure"}, s.src)
	b.UseChance = 0
	b.Price *= 3
	return b
}

// Items lists what category c sells right now.
func (s *Shop) Items(ctx context.Context, c Category) ([]Item, error) {
	var out []Item
	switch c {
	case CategoryRods:
		for _, r := range s.gear.Rods {
			out = append(out, Item{r.Name, fmt.Sprintf("strength x%.2g, efficiency x%.2g, sensitivity %+.2f", r.StrengthBonus, r.Efficiency, r.Sensitivity), r.Price})
		}
	case CategoryReels:
		for _, r := range s.gear.Reels {
			out = append(out, Item{r.Name, fmt.Sprintf("speed x%.2g", r.Speed), r.Price})
		}
	case CategoryLines:
		for _, l := range s.gear.Lines {
			out = append(out, Item{l.Name, fmt.Sprintf("holds %.1f lbs", l.Strength), l.Price})
		}
	case CategorySinkers:
		for _, sk := range s.gear.Sinkers {
			out = append(out, Item{sk.Name, fmt.Sprintf("%.0f-%.0f ft, %.2f lbs", sk.Depth.Min, sk.Depth.Max, sk.Weight), sk.Price})
		}
	case CategoryBait:
		baits, err := s.DailyBaits(ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range baits {
			out = append(out, Item{b.Name, b.Description, b.Price})
		}
	case CategoryUnique:
		for _, u := range uniques {
			out = append(out, u.Item)
		}
	}
	return out, nil
}

// Receipt describes a completed purchase.
type Receipt struct {
	Item    Item
	Balance fish.Money
}

// Buy sells item index of category c to the player. New gear is equipped
// right away; bait goes into the bucket. Gear and upgrades the player
// already owns are refused with ErrAlreadyOwned.
func (s *Shop) Buy(ctx context.Context, id player.ID, c Category, index int) (Receipt, error) {
	items, err := s.Items(ctx, c)
	if err != nil {
		return Receipt{}, err
	}
	if index < 0 || index >= len(items) {
		return Receipt{}, fmt.Errorf("%w: %s #%d", ErrNoSuchItem, c, index+1)
	}
	item := items[index]

	var grant func(inv *gear.Inventory) error
	switch c {
	case CategoryRods:
		rod := s.gear.Rods[index]
		grant = func(inv *gear.Inventory) error {
			return addGear(&inv.Rods, &inv.SelectedRod, rod, func(g gear.Rod) string { return g.Name })
		}
	case CategoryReels:
		reel := s.gear.Reels[index]
		grant = func(inv *gear.Inventory) error {
			return addGear(&inv.Reels, &inv.SelectedReel, reel, func(g gear.Reel) string { return g.Name })
		}
	case CategoryLines:
		line := s.gear.Lines[index]
		grant = func(inv *gear.Inventory) error {
			return addGear(&inv.Lines, &inv.SelectedLine, line, func(g gear.Line) string { return g.Name })
		}
	case CategorySinkers:
		sinker := s.gear.Sinkers[index]
		grant = func(inv *gear.Inventory) error {
			return addGear(&inv.Sinkers, &inv.SelectedSinker, sinker, func(g gear.Sinker) string { return g.Name })
		}
	case CategoryBait:
		baits, err := s.DailyBaits(ctx)
		if err != nil {
			return Receipt{}, err
		}
		if index >= len(baits) {
			return Receipt{}, fmt.Errorf("%w: stock changed, look again", ErrNoSuchItem)
		}
		bait := baits[index]
		grant = func(inv *gear.Inventory) error {
			inv.AddBait(bait)
			return nil
		}
	case CategoryUnique:
		u := uniques[index]
		grant = func(inv *gear.Inventory) error {
			if u.owned(*inv) {
				return fmt.Errorf("%w: %s", ErrAlreadyOwned, u.Name)
			}
			u.grant(inv)
			return nil
		}
	}

	p, err := s.buyer.Purchase(ctx, id, item.Price, grant)
	if err != nil {
		return Receipt{}, err
	}
	s.log.Info("purchase",
		zap.String("player", id.String()),
		zap.Stringer("category", c),
		zap.String("item", item.Name),
		zap.Stringer("price", item.Price),
	)
	return Receipt{Item: item, Balance: p.Balance}, nil
}

// addGear adds g to a gear slot and equips it. Owning two of the same piece
// is pointless, so a name already in the slot is refused.
func addGear[T any](slot *[]T, selected *int, g T, name func(T) string) error {
	for _, have := range *slot {
		if strings.EqualFold(name(have), name(g)) {
			return fmt.Errorf("%w: %s", ErrAlreadyOwned, name(g))
		}
	}
	*slot = append(*slot, g)
	*selected = len(*slot) - 1
	return nil
}
