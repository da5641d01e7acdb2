package fish

import (
	"fmt"
	"time"
)

// Fish is a generated catch. It belongs to nobody until a cast resolves as
// caught, at which point it is recorded against the player.
type Fish struct {
	Species SpeciesDef
	Size    float64 // inches
	Weight  float64 // lbs
	Depth   float64 // ft
	Value   Money
}

func (f *Fish) Name() string { return f.Species.Name }

func (f *Fish) String() string {
	return fmt.Sprintf("%.2fin %.2flb %s (%s) worth %s", f.Size, f.Weight, f.Species.Name, f.Species.Rarity, f.Value)
}

// Catch is the canonical record used by handlers and stores.
// Storage backends persist size in hundredths for precision and ordering.
type Catch struct {
	Id       int64
	GuildId  string
	UserId   string
	Species  string
	Size     float64
	Weight   float64
	Value    Money
	CaughtAt time.Time
}
