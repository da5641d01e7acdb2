package fish

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// BiasStrength scales how strongly a bait attraction pulls.
type BiasStrength int

const (
	BiasLow BiasStrength = iota
	BiasMedium
	BiasHigh
)

func (b BiasStrength) String() string {
	switch b {
	case BiasHigh:
		return "High"
	case BiasMedium:
		return "Medium"
	default:
		return "Low"
	}
}

func ParseBiasStrength(s string) (BiasStrength, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return BiasLow, nil
	case "medium":
		return BiasMedium, nil
	case "high":
		return BiasHigh, nil
	}
	return BiasLow, fmt.Errorf("unknown bias strength %q", s)
}

func (b BiasStrength) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BiasStrength) UnmarshalText(text []byte) error {
	v, err := ParseBiasStrength(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// BaitTuning maps bias strengths to selection multipliers.
type BaitTuning struct {
	Low    float64 `mapstructure:"low_bait_weight"`
	Medium float64 `mapstructure:"medium_bait_weight"`
	High   float64 `mapstructure:"high_bait_weight"`
}

func DefaultBaitTuning() BaitTuning {
	return BaitTuning{Low: 1.5, Medium: 3.5, High: 5.0}
}

// Multiplier is the raw weight multiplier for b.
func (t BaitTuning) Multiplier(b BiasStrength) float64 {
	switch b {
	case BiasHigh:
		return t.High
	case BiasMedium:
		return t.Medium
	default:
		return t.Low
	}
}

// Normalized expresses b as a fraction of the High multiplier so that High
// always shifts size or weight by 100%.
func (t BaitTuning) Normalized(b BiasStrength) float64 {
	max := t.High
	if max < 1 {
		max = 1
	}
	return clamp(t.Multiplier(b)/max, 0, 1)
}

// Attraction is one effect of a bait. The set of implementations is closed:
// HeavyAttraction, LightAttraction, LargeAttraction, SmallAttraction,
// SpecificFishAttraction, RarityAttraction and CategoryAttraction.
type Attraction interface {
	Strength() BiasStrength
	// Describe names what the attraction draws in, e.g. "heavier fish".
	Describe() string
	attraction()
}

type HeavyAttraction struct{ Bias BiasStrength }
type LightAttraction struct{ Bias BiasStrength }
type LargeAttraction struct{ Bias BiasStrength }
type SmallAttraction struct{ Bias BiasStrength }

// SpecificFishAttraction targets one species by name.
type SpecificFishAttraction struct {
	Name string
	Bias BiasStrength
}

type RarityAttraction struct {
	Rarity Rarity
	Bias   BiasStrength
}

type CategoryAttraction struct {
	Category Category
	Bias     BiasStrength
}

func (a HeavyAttraction) Strength() BiasStrength        { return a.Bias }
func (a LightAttraction) Strength() BiasStrength        { return a.Bias }
func (a LargeAttraction) Strength() BiasStrength        { return a.Bias }
func (a SmallAttraction) Strength() BiasStrength        { return a.Bias }
func (a SpecificFishAttraction) Strength() BiasStrength { return a.Bias }
func (a RarityAttraction) Strength() BiasStrength       { return a.Bias }
func (a CategoryAttraction) Strength() BiasStrength     { return a.Bias }

func (HeavyAttraction) Describe() string          { return "heavier fish" }
func (LightAttraction) Describe() string          { return "lighter fish" }
func (LargeAttraction) Describe() string          { return "larger fish" }
func (SmallAttraction) Describe() string          { return "smaller fish" }
func (a SpecificFishAttraction) Describe() string { return a.Name }
func (a RarityAttraction) Describe() string       { return a.Rarity.String() + " fish" }
func (a CategoryAttraction) Describe() string     { return a.Category.String() + " fish" }

func (HeavyAttraction) attraction()        {}
func (LightAttraction) attraction()        {}
func (LargeAttraction) attraction()        {}
func (SmallAttraction) attraction()        {}
func (SpecificFishAttraction) attraction() {}
func (RarityAttraction) attraction()       {}
func (CategoryAttraction) attraction()     {}

// BaitDef is a consumable. UseChance is the probability the bait is used up
// when a cast resolves; 0 means reusable (lures), 1 means always consumed.
type BaitDef struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Price       Money       `json:"price" yaml:"price"`
	UseChance   float64     `json:"use_chance" yaml:"use_chance"`
	Attractions Attractions `json:"attractions" yaml:"attractions"`
}

// Reusable reports whether the bait survives every cast.
func (b *BaitDef) Reusable() bool {
	return b != nil && b.UseChance <= 0
}

// RarityModifier returns the first rarity attraction and its multiplier.
func (b *BaitDef) RarityModifier(t BaitTuning) (Rarity, float64, bool) {
	if b == nil {
		return RarityCommon, 1, false
	}
	for _, a := range b.Attractions {
		if ra, ok := a.(RarityAttraction); ok {
			return ra.Rarity, t.Multiplier(ra.Bias), true
		}
	}
	return RarityCommon, 1, false
}

// CategoryModifier returns the first category attraction and its multiplier.
func (b *BaitDef) CategoryModifier(t BaitTuning) (Category, float64, bool) {
	if b == nil {
		return CategoryForager, 1, false
	}
	for _, a := range b.Attractions {
		if ca, ok := a.(CategoryAttraction); ok {
			return ca.Category, t.Multiplier(ca.Bias), true
		}
	}
	return CategoryForager, 1, false
}

// SpecificFishModifier returns the first species attraction and its multiplier.
func (b *BaitDef) SpecificFishModifier(t BaitTuning) (string, float64, bool) {
	if b == nil {
		return "", 1, false
	}
	for _, a := range b.Attractions {
		if sa, ok := a.(SpecificFishAttraction); ok {
			return sa.Name, t.Multiplier(sa.Bias), true
		}
	}
	return "", 1, false
}

// SizeBias is the net Large/Small pull in [-1, 1].
func (b *BaitDef) SizeBias(t BaitTuning) float64 {
	if b == nil {
		return 0
	}
	total := 0.0
	for _, a := range b.Attractions {
		switch v := a.(type) {
		case LargeAttraction:
			total += t.Normalized(v.Bias)
		case SmallAttraction:
			total -= t.Normalized(v.Bias)
		}
	}
	return clamp(total, -1, 1)
}

// WeightBias is the net Heavy/Light pull in [-1, 1].
func (b *BaitDef) WeightBias(t BaitTuning) float64 {
	if b == nil {
		return 0
	}
	total := 0.0
	for _, a := range b.Attractions {
		switch v := a.(type) {
		case HeavyAttraction:
			total += t.Normalized(v.Bias)
		case LightAttraction:
			total -= t.Normalized(v.Bias)
		}
	}
	return clamp(total, -1, 1)
}

// Attractions is a list of bait effects with a tagged wire format:
//
//	{kind: specific_fish, name: Salmon, bias: High}
type Attractions []Attraction

type attractionDoc struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Bias     BiasStrength `json:"bias" yaml:"bias"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Rarity   *Rarity      `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Category *Category    `json:"category,omitempty" yaml:"category,omitempty"`
}

func toDoc(a Attraction) (attractionDoc, error) {
	switch v := a.(type) {
	case HeavyAttraction:
		return attractionDoc{Kind: "heavy", Bias: v.Bias}, nil
	case LightAttraction:
		return attractionDoc{Kind: "light", Bias: v.Bias}, nil
	case LargeAttraction:
		return attractionDoc{Kind: "large", Bias: v.Bias}, nil
	case SmallAttraction:
		return attractionDoc{Kind: "small", Bias: v.Bias}, nil
	case SpecificFishAttraction:
		return attractionDoc{Kind: "specific_fish", Bias: v.Bias, Name: v.Name}, nil
	case RarityAttraction:
		r := v.Rarity
		return attractionDoc{Kind: "rarity", Bias: v.Bias, Rarity: &r}, nil
	case CategoryAttraction:
		c := v.Category
		return attractionDoc{Kind: "category", Bias: v.Bias, Category: &c}, nil
	}
	return attractionDoc{}, fmt.Errorf("unsupported attraction %T", a)
}

func fromDoc(d attractionDoc) (Attraction, error) {
	switch strings.ToLower(d.Kind) {
	case "heavy":
		return HeavyAttraction{Bias: d.Bias}, nil
	case "light":
		return LightAttraction{Bias: d.Bias}, nil
	case "large":
		return LargeAttraction{Bias: d.Bias}, nil
	case "small":
		return SmallAttraction{Bias: d.Bias}, nil
	case "specific_fish":
		if d.Name == "" {
			return nil, fmt.Errorf("specific_fish attraction needs a name")
		}
		return SpecificFishAttraction{Name: d.Name, Bias: d.Bias}, nil
	case "rarity":
		if d.Rarity == nil {
			return nil, fmt.Errorf("rarity attraction needs a rarity")
		}
		return RarityAttraction{Rarity: *d.Rarity, Bias: d.Bias}, nil
	case "category":
		if d.Category == nil {
			return nil, fmt.Errorf("category attraction needs a category")
		}
		return CategoryAttraction{Category: *d.Category, Bias: d.Bias}, nil
	}
	return nil, fmt.Errorf("unknown attraction kind %q", d.Kind)
}

func (as Attractions) docs() ([]attractionDoc, error) {
	out := make([]attractionDoc, 0, len(as))
	for _, a := range as {
		d, err := toDoc(a)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func fromDocs(docs []attractionDoc) (Attractions, error) {
	out := make(Attractions, 0, len(docs))
	for i, d := range docs {
		a, err := fromDoc(d)
		if err != nil {
			return nil, fmt.Errorf("attraction %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (as Attractions) MarshalJSON() ([]byte, error) {
	docs, err := as.docs()
	if err != nil {
		return nil, err
	}
	return json.Marshal(docs)
}

func (as *Attractions) UnmarshalJSON(b []byte) error {
	var docs []attractionDoc
	if err := json.Unmarshal(b, &docs); err != nil {
		return err
	}
	out, err := fromDocs(docs)
	if err != nil {
		return err
	}
	*as = out
	return nil
}

func (as Attractions) MarshalYAML() (interface{}, error) {
	return as.docs()
}

func (as *Attractions) UnmarshalYAML(node *yaml.Node) error {
	var docs []attractionDoc
	if err := node.Decode(&docs); err != nil {
		return err
	}
	out, err := fromDocs(docs)
	if err != nil {
		return err
	}
	*as = out
	return nil
}

// Describe summarizes what the bait attracts.
func (b *BaitDef) Describe() string {
	if b == nil || len(b.Attractions) == 0 {
		return "A plain bait."
	}
	parts := make([]string, 0, len(b.Attractions))
	for _, a := range b.Attractions {
		parts = append(parts, a.Describe())
	}
	return "A bait that attracts " + strings.Join(parts, ", ") + "."
}
