package gear_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
)

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gear.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rods:
  - name: Carbon Rod
    price: 120.5
    strength_bonus: 1.5
    efficiency: 1.25
    sensitivity: 0.1
lines:
  - name: Braided Line
    price: 40
    strength: 25
reels:
  - name: Spin Reel
    price: 60
    speed: 1.5
sinkers:
  - name: Bell Sinker
    price: 30
    weight: 0.5
    depth_range: {min: 40, max: 250, average: 120}
`), 0o644))

	c, err := gear.LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.Rods, 1)
	assert.Equal(t, fish.NewMoney(120.5), c.Rods[0].Price)
	assert.Equal(t, 1.25, c.Rods[0].Efficiency)
	assert.Equal(t, 25.0, c.Lines[0].Strength)
	assert.Equal(t, 1.5, c.Reels[0].Speed)
	assert.Equal(t, fish.Attribute{Min: 40, Max: 250, Average: 120}, c.Sinkers[0].Depth)
}

func TestCatalogValidate(t *testing.T) {
	c := gear.Catalog{
		Rods:    []gear.Rod{{Name: "Bent", StrengthBonus: 0, Efficiency: 1}},
		Lines:   []gear.Line{{Name: "Thread", Strength: -1}},
		Reels:   []gear.Reel{{Name: "Stuck", Speed: 0}},
		Sinkers: []gear.Sinker{{Name: "Anvil", Depth: fish.Attribute{Min: 0, Max: 20000, Average: 100}}},
	}
	err := c.Validate()
	require.Error(t, err)
	for _, name := range []string{"Bent", "Thread", "Stuck", "Anvil"} {
		assert.Contains(t, err.Error(), name)
	}

	assert.NoError(t, gear.Catalog{Rods: []gear.Rod{gear.DefaultRod()}, Sinkers: []gear.Sinker{gear.DefaultSinker()}}.Validate())
}
