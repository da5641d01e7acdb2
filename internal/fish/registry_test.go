package fish_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
)

const speciesYAML = `
- name: Bluegill
  rarity: Common
  category: Forager
  size_range: {min: 4, max: 10, average: 6}
  weight_range: {min: 0.1, max: 1.5, average: 0.4}
  depth_range: {min: 0, max: 30}
  base_value: 2.5
- name: Bluefin Tuna
  rarity: Elusive
  category: Apex
  size_range: {min: 60, max: 120, average: 80}
  weight_range: {min: 200, max: 1500, average: 550}
  depth_range: {min: 0, max: 900}
  base_value: 800
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRegistry_YAML(t *testing.T) {
	reg, err := fish.LoadRegistry(writeFile(t, "species.yaml", speciesYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Count())

	sp, ok := reg.Get("bluefin tuna")
	require.True(t, ok)
	assert.Equal(t, fish.RarityElusive, sp.Rarity)
	assert.Equal(t, fish.CategoryApex, sp.Category)
	assert.Equal(t, fish.NewMoney(800), sp.BaseValue)
	assert.Equal(t, 900.0, sp.Depth.Max)
}

func TestLoadRegistry_JSON(t *testing.T) {
	raw := `[{"name": "Carp", "rarity": "Common", "category": "BottomFeeder",
		"size_range": {"min": 10, "max": 40, "average": 20},
		"weight_range": {"min": 2, "max": 40, "average": 8},
		"depth_range": {"min": 0, "max": 50}, "base_value": 4}]`

	reg, err := fish.LoadRegistry(writeFile(t, "species.json", raw))
	require.NoError(t, err)
	_, ok := reg.Get("Carp")
	assert.True(t, ok)
}

func TestNewRegistry_RejectsBadEntries(t *testing.T) {
	good := testPond()

	_, err := fish.NewRegistry(nil)
	assert.Error(t, err)

	dup := append(append([]fish.SpeciesDef{}, good...), good[0])
	dup[len(dup)-1].Name = "MINNOW"
	_, err = fish.NewRegistry(dup)
	assert.ErrorContains(t, err, "duplicate")

	bad := append([]fish.SpeciesDef{}, good...)
	bad[1].Size = fish.Attribute{Min: 10, Max: 5, Average: 7}
	_, err = fish.NewRegistry(bad)
	assert.ErrorIs(t, err, fish.ErrMalformedAttribute)

	bad = append([]fish.SpeciesDef{}, good...)
	bad[0].Depth = fish.DepthRange{Min: 100, Max: 10}
	_, err = fish.NewRegistry(bad)
	assert.Error(t, err)
}

func TestLoadRegistry_UnknownExtension(t *testing.T) {
	_, err := fish.LoadRegistry(writeFile(t, "species.toml", "x = 1"))
	assert.Error(t, err)
}

func TestRegistry_Suggest(t *testing.T) {
	reg, err := fish.NewRegistry(testPond())
	require.NoError(t, err)

	assert.Equal(t, []string{"Salmon"}, reg.Suggest("samlon", 3))
	assert.Equal(t, []string{"Trout"}, reg.Suggest("tr", 3))
	assert.Empty(t, reg.Suggest("xyzzyq", 3))
	assert.Nil(t, reg.Suggest("", 3))
}

func TestFileCatalog_CachesAndReloads(t *testing.T) {
	path := writeFile(t, "species.yaml", speciesYAML)
	cat := fish.NewFileCatalog(path, "")
	ctx := context.Background()

	species, err := cat.LoadSpecies(ctx)
	require.NoError(t, err)
	assert.Len(t, species, 2)

	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))
	species, err = cat.LoadSpecies(ctx)
	require.NoError(t, err, "cached copy is served")
	assert.Len(t, species, 2)

	cat.Reload()
	_, err = cat.LoadSpecies(ctx)
	assert.Error(t, err)

	bc, err := cat.LoadBaitCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Worm"}, bc.BaseNames)
}

func TestFileCatalog_MissingFile(t *testing.T) {
	cat := fish.NewFileCatalog(filepath.Join(t.TempDir(), "nope.yaml"), "")
	_, err := cat.LoadSpecies(context.Background())
	assert.Error(t, err)
}

func TestFileCatalog_BaitFile(t *testing.T) {
	raw := `
base_names: [Worm, Cricket]
baits:
  - name: Spinner Lure
    price: 40
    use_chance: 0
    attractions:
      - kind: large
        bias: Medium
`
	cat := fish.NewFileCatalog("", writeFile(t, "bait.yaml", raw))
	bc, err := cat.LoadBaitCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Worm", "Cricket"}, bc.BaseNames)
	require.Len(t, bc.Baits, 1)
	assert.True(t, bc.Baits[0].Reusable())
}

func TestFileCatalog_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fish.NewFileCatalog("x.yaml", "").LoadSpecies(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
