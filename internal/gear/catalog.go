package gear

import (
	"errors"
	"fmt"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
)

// Catalog is the gear for sale, loaded from a static file.
type Catalog struct {
	Rods    []Rod    `json:"rods" yaml:"rods"`
	Lines   []Line   `json:"lines" yaml:"lines"`
	Reels   []Reel   `json:"reels" yaml:"reels"`
	Sinkers []Sinker `json:"sinkers" yaml:"sinkers"`
}

func LoadCatalog(path string) (Catalog, error) {
	var c Catalog
	if err := fish.DecodeFile(path, &c); err != nil {
		return Catalog{}, err
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate rejects gear that would break a cast.
func (c Catalog) Validate() error {
	var errs []error
	for _, r := range c.Rods {
		if r.StrengthBonus <= 0 || r.Efficiency <= 0 {
			errs = append(errs, fmt.Errorf("rod %q: strength_bonus and efficiency must be positive", r.Name))
		}
	}
	for _, l := range c.Lines {
		if l.Strength <= 0 {
			errs = append(errs, fmt.Errorf("line %q: strength must be positive", l.Name))
		}
	}
	for _, r := range c.Reels {
		if r.Speed <= 0 {
			errs = append(errs, fmt.Errorf("reel %q: speed must be positive", r.Name))
		}
	}
	for _, s := range c.Sinkers {
		if err := s.Depth.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("sinker %q: %w", s.Name, err))
		}
		if s.Depth.Min < 0 || s.Depth.Max > fish.MaxDepth {
			errs = append(errs, fmt.Errorf("sinker %q: depth_range must lie within [0, %.0f]", s.Name, fish.MaxDepth))
		}
	}
	return errors.Join(errs...)
}
