package cast

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
)

func hooked(category fish.Category, weight, average float64) *fish.Fish {
	return &fish.Fish{
		Species: fish.SpeciesDef{
			Name:     "Test",
			Category: category,
			Weight:   fish.Attribute{Min: 0, Max: 100, Average: average},
		},
		Weight: weight,
	}
}

func TestDelay(t *testing.T) {
	cfg := DefaultConfig()
	l := gear.DefaultLoadout()

	tests := []struct {
		name  string
		speed float64
		f     *fish.Fish
		want  time.Duration
	}{
		{name: "nothing biting", speed: 1, want: 30 * time.Second},
		{name: "average fish", speed: 1, f: hooked(fish.CategoryForager, 10, 10), want: 30 * time.Second},
		{name: "heavy fish waits longer", speed: 1, f: hooked(fish.CategoryForager, 14, 10), want: 32 * time.Second},
		{name: "fast reel", speed: 3, f: hooked(fish.CategoryForager, 10, 10), want: 10 * time.Second},
		{name: "floored at min wait", speed: 100, f: hooked(fish.CategoryForager, 10, 10), want: 5 * time.Second},
		{name: "light fish after floor", speed: 100, f: hooked(fish.CategoryForager, 6, 10), want: 3 * time.Second},
		{name: "never negative", speed: 100, f: hooked(fish.CategoryForager, 0, 90), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.Reel.Speed = tt.speed
			assert.Equal(t, tt.want, cfg.Delay(l, tt.f))
		})
	}
}

func TestHookChance(t *testing.T) {
	cfg := DefaultConfig()
	l := gear.DefaultLoadout()

	assert.InDelta(t, 0.5, cfg.HookChance(l, hooked(fish.CategoryForager, 1, 1)), 1e-9)
	assert.InDelta(t, 0.2, cfg.HookChance(l, hooked(fish.CategoryApex, 1, 1)), 1e-9)
	assert.Equal(t, 1.0, cfg.HookChance(l, hooked(fish.CategoryBaitFish, 1, 1)))

	l.Rod.Sensitivity = 0.25
	assert.InDelta(t, 0.5, cfg.HookChance(l, hooked(fish.CategoryPredatory, 1, 1)), 1e-9)

	l.Rod.Sensitivity = -2
	assert.Equal(t, 0.0, cfg.HookChance(l, hooked(fish.CategoryForager, 1, 1)))
}

func TestCategoryHookChance_MatchesHookChance(t *testing.T) {
	cfg := DefaultConfig()
	l := gear.DefaultLoadout()
	l.Rod.Sensitivity = 0.1
	for _, c := range fish.Categories {
		assert.Equal(t, cfg.HookChance(l, hooked(c, 1, 1)), cfg.CategoryHookChance(l, c), c.String())
	}
}

func TestHookChance_AlwaysAProbability(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := DefaultConfig()
		cfg.BaseChance = rapid.Float64Range(-1, 2).Draw(t, "base")
		l := gear.DefaultLoadout()
		l.Rod.Sensitivity = rapid.Float64Range(-1, 1).Draw(t, "sensitivity")
		c := fish.Categories[rapid.IntRange(0, len(fish.Categories)-1).Draw(t, "category")]

		p := cfg.HookChance(l, hooked(c, 1, 1))
		if p < 0 || p > 1 {
			t.Fatalf("hook chance %v outside [0, 1]", p)
		}
	})
}

func TestChallengeTimeLimit(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.ChallengeTimeLimit(15, 10))
	assert.Equal(t, 7500*time.Millisecond, cfg.ChallengeTimeLimit(20, 10))
	assert.Equal(t, 4*time.Second, cfg.ChallengeTimeLimit(1000, 10))
	assert.Equal(t, 4*time.Second, cfg.ChallengeTimeLimit(10, 0))
}

func TestMatchesCode(t *testing.T) {
	tests := []struct {
		reply, code string
		want        bool
	}{
		{"aB3xZ", "aB3xZ", true},
		{"ab3xz", "aB3xZ", true},
		{"a B 3 x Z", "aB3xZ", true},
		{"  AB3XZ\n", "aB3xZ", true},
		{"aB3x", "aB3xZ", false},
		{"aB3xZZ", "aB3xZ", false},
		{"", "aB3xZ", false},
		{"", "", false},
		{"   ", " ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesCode(tt.reply, tt.code), "reply %q code %q", tt.reply, tt.code)
	}
}

func TestChallengeDisplay(t *testing.T) {
	assert.Equal(t, "a B 3 x Z", Challenge{Code: "aB3xZ"}.Display())
	assert.Equal(t, "", Challenge{}.Display())
}

func TestNewCode(t *testing.T) {
	src := fish.NewSeededSource(7)
	for i := 0; i < 100; i++ {
		code := newCode(5, src)
		assert.Len(t, code, 5)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected %q in %q", r, code)
		}
	}
	assert.Len(t, newCode(0, src), 5)
	assert.True(t, MatchesCode(Challenge{Code: "Qz9"}.Display(), "Qz9"))
}
