package gear

import (
	"errors"
	"fmt"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
)

// NoBait is the SelectedBait value when nothing is equipped.
const NoBait = -1

var ErrNoSuchItem = errors.New("no such item")

// Inventory is everything a player owns. Selection fields index into the
// matching slice.
type Inventory struct {
	Rods           []Rod    `json:"rods"`
	SelectedRod    int      `json:"selected_rod"`
	Lines          []Line   `json:"lines"`
	SelectedLine   int      `json:"selected_line"`
	Reels          []Reel   `json:"reels"`
	SelectedReel   int      `json:"selected_reel"`
	Sinkers        []Sinker `json:"sinkers"`
	SelectedSinker int      `json:"selected_sinker"`

	BaitBucket   []fish.BaitDef `json:"bait_bucket"`
	SelectedBait int            `json:"selected_bait"`

	DepthFinder      bool `json:"depth_finder"`
	UnderwaterCamera bool `json:"underwater_camera"`
}

func DefaultInventory() Inventory {
	return Inventory{
		Rods:         []Rod{DefaultRod()},
		Lines:        []Line{DefaultLine()},
		Reels:        []Reel{DefaultReel()},
		Sinkers:      []Sinker{DefaultSinker()},
		SelectedBait: NoBait,
	}
}

func pick[T any](items []T, idx int, fallback func() T) T {
	if idx < 0 || idx >= len(items) {
		if len(items) == 0 {
			return fallback()
		}
		return items[0]
	}
	return items[idx]
}

// Loadout resolves the selections. Out of range selections fall back to the
// first owned item, or the starter item when the slot is empty.
func (inv Inventory) Loadout() Loadout {
	l := Loadout{
		Rod:              pick(inv.Rods, inv.SelectedRod, DefaultRod),
		Line:             pick(inv.Lines, inv.SelectedLine, DefaultLine),
		Reel:             pick(inv.Reels, inv.SelectedReel, DefaultReel),
		Sinker:           pick(inv.Sinkers, inv.SelectedSinker, DefaultSinker),
		DepthFinder:      inv.DepthFinder,
		UnderwaterCamera: inv.UnderwaterCamera,
	}
	if b, ok := inv.ActiveBait(); ok {
		l.Bait = &b
	}
	return l
}

// ActiveBait returns a copy of the equipped bait.
func (inv Inventory) ActiveBait() (fish.BaitDef, bool) {
	if inv.SelectedBait < 0 || inv.SelectedBait >= len(inv.BaitBucket) {
		return fish.BaitDef{}, false
	}
	return inv.BaitBucket[inv.SelectedBait], true
}

// AddBait puts b in the bucket and returns its index.
func (inv *Inventory) AddBait(b fish.BaitDef) int {
	inv.BaitBucket = append(inv.BaitBucket, b)
	return len(inv.BaitBucket) - 1
}

func (inv *Inventory) EquipBait(idx int) error {
	if idx < 0 || idx >= len(inv.BaitBucket) {
		return fmt.Errorf("bait %d: %w", idx+1, ErrNoSuchItem)
	}
	inv.SelectedBait = idx
	return nil
}

func (inv *Inventory) UnequipBait() { inv.SelectedBait = NoBait }

// RemoveActiveBait takes the equipped bait out of the bucket. It reports
// false if nothing was equipped.
func (inv *Inventory) RemoveActiveBait() (fish.BaitDef, bool) {
	b, ok := inv.ActiveBait()
	if !ok {
		inv.SelectedBait = NoBait
		return fish.BaitDef{}, false
	}
	idx := inv.SelectedBait
	rest := make([]fish.BaitDef, 0, len(inv.BaitBucket)-1)
	rest = append(rest, inv.BaitBucket[:idx]...)
	inv.BaitBucket = append(rest, inv.BaitBucket[idx+1:]...)
	inv.SelectedBait = NoBait
	return b, true
}

func equip[T any](items []T, selected *int, idx int, slot string) error {
	if idx < 0 || idx >= len(items) {
		return fmt.Errorf("%s %d: %w", slot, idx+1, ErrNoSuchItem)
	}
	*selected = idx
	return nil
}

func (inv *Inventory) EquipRod(idx int) error {
	return equip(inv.Rods, &inv.SelectedRod, idx, "rod")
}

func (inv *Inventory) EquipLine(idx int) error {
	return equip(inv.Lines, &inv.SelectedLine, idx, "line")
}

func (inv *Inventory) EquipReel(idx int) error {
	return equip(inv.Reels, &inv.SelectedReel, idx, "reel")
}

func (inv *Inventory) EquipSinker(idx int) error {
	return equip(inv.Sinkers, &inv.SelectedSinker, idx, "sinker")
}
