package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
)

func eel() *fish.Fish {
	return &fish.Fish{
		Species: fish.SpeciesDef{
			Name:   "Eel",
			Rarity: fish.RarityRare,
			Size:   fish.Attribute{Min: 10, Max: 50, Average: 30},
		},
		Size:   49,
		Weight: 8.5,
		Value:  fish.NewMoney(40),
	}
}

func TestArticle(t *testing.T) {
	assert.Equal(t, "an", article("Eel"))
	assert.Equal(t, "an", article("enormous"))
	assert.Equal(t, "a", article("Carp"))
	assert.Equal(t, "a", article(""))
}

func TestOutcomeEmbed(t *testing.T) {
	r := cast.Recipient{Player: player.NewID("g", "u"), Display: "Angler"}

	caught := outcomeEmbed(r, cast.Outcome{
		Kind:       cast.OutcomeCaught,
		Fish:       eel(),
		Credited:   fish.NewMoney(40),
		Balance:    fish.NewMoney(140),
		NewSpecies: true,
	})
	assert.Equal(t, "Angler caught an Eel!", caught.Title)
	assert.Equal(t, fish.ColorForRarity(fish.RarityRare), caught.Color)
	assert.Contains(t, caught.Description, "49.00 in")
	assert.Contains(t, caught.Description, "New species")
	assert.Equal(t, "Balance: $140.00", caught.Footer.Text)

	hidden := outcomeEmbed(r, cast.Outcome{Kind: cast.OutcomeMissed, Fish: eel(), Flavor: "Gone."})
	assert.Equal(t, "Angler's fish got away!", hidden.Title)
	assert.NotContains(t, hidden.Description, "Eel")

	revealed := outcomeEmbed(r, cast.Outcome{Kind: cast.OutcomeSnapped, Fish: eel(), TimedOut: true, RevealLoss: true})
	assert.Contains(t, revealed.Description, "Too slow.")
	assert.Contains(t, revealed.Description, "Eel")

	nothing := outcomeEmbed(r, cast.Outcome{Kind: cast.OutcomeNothing})
	assert.Equal(t, "Nothing bit Angler's line.", nothing.Title)
}

func TestChallengeMessage(t *testing.T) {
	r := cast.Recipient{Player: player.NewID("g", "u")}
	msg := challengeMessage(r, cast.Challenge{Code: "Xy9", TimeLimit: 4500 * time.Millisecond, Load: 30, MaxStrength: 20})
	assert.Contains(t, msg, "<@u>")
	assert.Contains(t, msg, "`X y 9`")
	assert.Contains(t, msg, "4.5s")
	assert.Contains(t, msg, "30.00 lbs on a 20.00 lbs line")
}

func TestBaitEmbedMarksEquipped(t *testing.T) {
	inv := gear.DefaultInventory()
	inv.AddBait(fish.BaitDef{Name: "Worm", UseChance: 1})
	inv.AddBait(fish.BaitDef{Name: "Spinner"})
	assert.NoError(t, inv.EquipBait(1))

	e := baitEmbed("Angler", inv)
	assert.Contains(t, e.Description, "▪️ **1. Worm** (single use)")
	assert.Contains(t, e.Description, "🔷 **2. Spinner** (reusable)")

	empty := baitEmbed("Angler", gear.DefaultInventory())
	assert.Contains(t, empty.Description, "empty")
}

func embedField(e *discordgo.MessageEmbed, name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestGearEmbedShowsWhatGearDoes(t *testing.T) {
	inv := gear.DefaultInventory()
	inv.Rods = append(inv.Rods, gear.Rod{Name: "Carbon Rod", StrengthBonus: 1.2, Efficiency: 1.5, Sensitivity: 0.1})
	inv.Reels = append(inv.Reels, gear.Reel{Name: "Baitcaster", Speed: 2})
	inv.Sinkers = append(inv.Sinkers, gear.Sinker{Name: "Bank Weight", Depth: fish.Attribute{Min: 100, Max: 500, Average: 250}})
	assert.NoError(t, inv.EquipRod(1))
	assert.NoError(t, inv.EquipReel(1))
	assert.NoError(t, inv.EquipSinker(1))

	e := gearEmbed("Angler", inv, cast.DefaultConfig())
	assert.Equal(t, "Mid-Water, Deep", embedField(e, "Depth bands"))
	assert.Equal(t, "x3.00", embedField(e, "Cast speed"))
	assert.Equal(t, "+0.10", embedField(e, "Hook sensitivity"))
	assert.Equal(t, "60% typical, 24% vs Apex", embedField(e, "Hook chance"))
	assert.Contains(t, e.Description, "Rods: 1. Driftwood Rod · **2. Carbon Rod**")
	assert.Contains(t, e.Description, "Sinkers: 1. Split Shot · **2. Bank Weight**")

	starter := gearEmbed("Angler", gear.DefaultInventory(), cast.DefaultConfig())
	assert.Equal(t, "Shallow, Mid-Water", embedField(starter, "Depth bands"))
	assert.Equal(t, "x1.00", embedField(starter, "Cast speed"))
	assert.Equal(t, "+0.00", embedField(starter, "Hook sensitivity"))
	assert.Equal(t, "50% typical, 20% vs Apex", embedField(starter, "Hook chance"))
}

func TestLeaderboardEmbed(t *testing.T) {
	rows := []fish.Catch{
		{UserId: "u1", Species: "Eel", Size: 49},
		{UserId: "u2", Species: "Ghost Fish", Size: 3},
	}
	lookup := func(name string) (fish.SpeciesDef, bool) {
		if name == "Eel" {
			return eel().Species, true
		}
		return fish.SpeciesDef{}, false
	}

	e := leaderboardEmbed(rows, "Top", lookup)
	assert.Contains(t, e.Description, "**#1** **49.00 in (")
	assert.Contains(t, e.Description, "<@u1> · Eel")
	assert.Contains(t, e.Description, "**#2** **3.00 in** · <@u2> · Ghost Fish")
}

func TestPretty(t *testing.T) {
	assert.Equal(t, "0:00", pretty(-time.Second))
	assert.Equal(t, "1:05", pretty(65*time.Second))
}
