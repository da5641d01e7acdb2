package cast

import (
	"strings"
	"time"
	"unicode"

	"github.com/Sk3pz/angler-bot-v2/internal/fish"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Challenge is the overload mini game: type Code back within TimeLimit or the
// line snaps.
type Challenge struct {
	Code        string
	TimeLimit   time.Duration
	Load        float64
	MaxStrength float64
}

// Display spaces the code out so it cannot be copied and pasted whole.
func (c Challenge) Display() string {
	return strings.Join(strings.Split(c.Code, ""), " ")
}

func newCode(n int, src fish.Source) string {
	if n <= 0 {
		n = 5
	}
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(codeAlphabet[src.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// MatchesCode compares a reply to a code ignoring case and all whitespace.
func MatchesCode(reply, code string) bool {
	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}
	want := strip(code)
	return want != "" && strings.EqualFold(strip(reply), want)
}
