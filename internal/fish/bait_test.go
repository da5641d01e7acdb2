package fish_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
)

func TestBaitTuning_Normalized(t *testing.T) {
	tuning := fish.BaitTuning{Low: 1.5, Medium: 3.5, High: 5}
	assert.Equal(t, 1.0, tuning.Normalized(fish.BiasHigh))
	assert.InDelta(t, 0.3, tuning.Normalized(fish.BiasLow), 1e-9)

	broken := fish.BaitTuning{Low: 2, Medium: 2, High: 0}
	assert.Equal(t, 1.0, broken.Normalized(fish.BiasLow))
}

func TestBaitDef_Biases(t *testing.T) {
	tuning := fish.DefaultBaitTuning()
	bait := &fish.BaitDef{
		Attractions: fish.Attractions{
			fish.HeavyAttraction{Bias: fish.BiasHigh},
			fish.HeavyAttraction{Bias: fish.BiasHigh},
			fish.SmallAttraction{Bias: fish.BiasHigh},
			fish.LargeAttraction{Bias: fish.BiasLow},
		},
	}

	assert.Equal(t, 1.0, bait.WeightBias(tuning), "weight bias is clamped")
	assert.InDelta(t, -0.7, bait.SizeBias(tuning), 1e-9)

	var none *fish.BaitDef
	assert.Equal(t, 0.0, none.SizeBias(tuning))
	_, _, ok := none.RarityModifier(tuning)
	assert.False(t, ok)
}

func TestBaitDef_Modifiers(t *testing.T) {
	tuning := fish.DefaultBaitTuning()
	bait := &fish.BaitDef{
		Attractions: fish.Attractions{
			fish.SpecificFishAttraction{Name: "Salmon", Bias: fish.BiasHigh},
			fish.CategoryAttraction{Category: fish.CategoryPredatory, Bias: fish.BiasMedium},
			fish.RarityAttraction{Rarity: fish.RarityElusive, Bias: fish.BiasLow},
		},
	}

	name, mult, ok := bait.SpecificFishModifier(tuning)
	require.True(t, ok)
	assert.Equal(t, "Salmon", name)
	assert.Equal(t, tuning.High, mult)

	cat, mult, ok := bait.CategoryModifier(tuning)
	require.True(t, ok)
	assert.Equal(t, fish.CategoryPredatory, cat)
	assert.Equal(t, tuning.Medium, mult)

	r, mult, ok := bait.RarityModifier(tuning)
	require.True(t, ok)
	assert.Equal(t, fish.RarityElusive, r)
	assert.Equal(t, tuning.Low, mult)
}

func TestBaitDef_Reusable(t *testing.T) {
	assert.True(t, (&fish.BaitDef{UseChance: 0}).Reusable())
	assert.False(t, (&fish.BaitDef{UseChance: 1}).Reusable())
	var none *fish.BaitDef
	assert.False(t, none.Reusable())
}

func TestBaitDef_JSON(t *testing.T) {
	raw := `{
		"name": "Salmon Roe",
		"price": 12.5,
		"use_chance": 1,
		"attractions": [
			{"kind": "specific_fish", "name": "Salmon", "bias": "High"},
			{"kind": "rarity", "rarity": "Rare", "bias": "Low"},
			{"kind": "heavy", "bias": "Medium"}
		]
	}`

	var b fish.BaitDef
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, fish.NewMoney(12.5), b.Price)
	require.Len(t, b.Attractions, 3)
	assert.Equal(t, fish.SpecificFishAttraction{Name: "Salmon", Bias: fish.BiasHigh}, b.Attractions[0])
	assert.Equal(t, fish.RarityAttraction{Rarity: fish.RarityRare, Bias: fish.BiasLow}, b.Attractions[1])
	assert.Equal(t, fish.HeavyAttraction{Bias: fish.BiasMedium}, b.Attractions[2])

	out, err := json.Marshal(b)
	require.NoError(t, err)
	var again fish.BaitDef
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, b, again)
}

func TestBaitDef_YAML(t *testing.T) {
	raw := `
name: Muddy Worm
price: 4
use_chance: 0.5
attractions:
  - kind: category
    category: BottomFeeder
    bias: Medium
  - kind: small
    bias: Low
`
	var b fish.BaitDef
	require.NoError(t, yaml.Unmarshal([]byte(raw), &b))
	assert.Equal(t, fish.Dollar*4, b.Price)
	assert.Equal(t, 0.5, b.UseChance)
	assert.Equal(t, fish.Attractions{
		fish.CategoryAttraction{Category: fish.CategoryBottomFeeder, Bias: fish.BiasMedium},
		fish.SmallAttraction{Bias: fish.BiasLow},
	}, b.Attractions)
}

func TestAttractions_RejectsUnknownKind(t *testing.T) {
	var as fish.Attractions
	err := json.Unmarshal([]byte(`[{"kind": "glowing", "bias": "High"}]`), &as)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`[{"kind": "rarity", "bias": "High"}]`), &as)
	assert.Error(t, err)
}

func TestGenerateBait(t *testing.T) {
	src := fish.NewSeededSource(99)
	for _, p := range []fish.Potency{fish.PotencyLow, fish.PotencyMedium, fish.PotencyHigh} {
		for i := 0; i < 50; i++ {
			b := fish.GenerateBait(p, []string{"Worm", "Grub"}, src)
			assert.NotEmpty(t, b.Name)
			assert.Equal(t, 1.0, b.UseChance)
			assert.NotEmpty(t, b.Description)

			switch p {
			case fish.PotencyLow:
				assert.True(t, len(b.Attractions) >= 1 && len(b.Attractions) <= 2)
				assert.True(t, b.Price >= fish.NewMoney(5) && b.Price <= fish.NewMoney(20))
			case fish.PotencyMedium:
				assert.True(t, len(b.Attractions) >= 1 && len(b.Attractions) <= 2)
				assert.Equal(t, fish.BiasMedium, b.Attractions[0].Strength())
			case fish.PotencyHigh:
				assert.True(t, len(b.Attractions) >= 3 && len(b.Attractions) <= 5)
				assert.Equal(t, fish.BiasHigh, b.Attractions[0].Strength())
			}
			for _, a := range b.Attractions {
				if ra, ok := a.(fish.RarityAttraction); ok {
					assert.NotEqual(t, fish.RarityMythical, ra.Rarity)
				}
			}
		}
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "$10.05", fish.NewMoney(10.05).String())
	assert.Equal(t, "$0.00", fish.Money(0).String())
	assert.Equal(t, "-$1.50", fish.NewMoney(-1.5).String())
}
