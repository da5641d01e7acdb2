package cast

import "github.com/Sk3pz/angler-bot-v2/internal/fish"

var castLines = []string{
	"...",
	"The water is very still today.",
	"Something just brushed past your line.",
	"Was that a ripple, or did the pond blink?",
	"The birds went quiet a minute ago.",
	"This pond feels deeper than yesterday.",
	"If something asks for a toll, give it your sandwich.",
	"Keep your hands inside the boat. Just in case.",
	"I think I left the stove on.",
	"Do fish sleep? Should we be whispering?",
	"The fog is rolling in again.",
	"My fish finder just beeped and died.",
}

var missedLines = []string{
	"That one felt big!",
	"Probably just a boot.",
	"Slippery little thing.",
	"It spat the hook right back at you.",
	"The one that got away. Great story though.",
	"Your line went slack. So did your pride.",
	"It looked at the hook and decided no.",
	"A swing and a miss!",
}

var snappedLines = []string{
	"SNAP! The line gave out.",
	"Your line twanged like a guitar string and went limp.",
	"Whatever that was, it kept your tackle.",
	"Maybe a stronger line next time.",
}

func pickLine(lines []string, src fish.Source) string {
	return lines[src.Intn(len(lines))]
}
