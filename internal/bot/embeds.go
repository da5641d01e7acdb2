package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
	"github.com/Sk3pz/angler-bot-v2/internal/shop"
)

const (
	colorCast    = 0x00A8FF
	colorLost    = 0xE67E22
	colorNothing = 0x7F8C8D
	colorGold    = 0xF1C40F
)

const reelPrefix = "reel:"

func reelButtonID(sessionID string) string { return reelPrefix + sessionID }

func article(name string) string {
	if name == "" {
		return "a"
	}
	switch name[0] {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

func mention(id player.ID) string { return "<@" + id.User + ">" }

func castEmbed(a cast.Announcement) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎣 %s cast their line!", a.Recipient.Display),
		Description: fmt.Sprintf("*%s*", a.Flavor),
		Color:       colorCast,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rod", Value: a.Rod, Inline: true},
			{Name: "Depth", Value: a.Depth, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Waiting for a bite..."},
	}
}

func reelButton(sessionID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Reel in",
				Style:    discordgo.SecondaryButton,
				CustomID: reelButtonID(sessionID),
				Disabled: disabled,
			},
		}},
	}
}

func statusFooter(s cast.Status) string {
	if s == cast.StatusCanceled {
		return "You reeled in your line."
	}
	return "Something's on the line!"
}

func fishLine(f *fish.Fish) string {
	return fmt.Sprintf("%s %s (%.2f in · %.2f lbs)", fish.SizeClassFor(f), f.Name(), f.Size, f.Weight)
}

func outcomeEmbed(r cast.Recipient, o cast.Outcome) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{}
	switch o.Kind {
	case cast.OutcomeCaught:
		f := o.Fish
		e.Title = fmt.Sprintf("%s caught %s %s!", r.Display, article(f.Name()), f.Name())
		var b strings.Builder
		fmt.Fprintf(&b, "Size: **%.2f in** · **%s**\n", f.Size, fish.SizeClassFor(f))
		fmt.Fprintf(&b, "Weight: **%.2f lbs**\n", f.Weight)
		fmt.Fprintf(&b, "Rarity: **%s**\n", f.Species.Rarity)
		fmt.Fprintf(&b, "Value: **%s**", f.Value)
		if o.Challenge != nil {
			b.WriteString("\n\nYou fought it in against the strain!")
		}
		if o.NewSpecies {
			b.WriteString("\n\n✨ New species for your collection!")
		}
		e.Description = b.String()
		e.Color = fish.ColorForRarity(f.Species.Rarity)
		if o.Credited > 0 {
			e.Footer = &discordgo.MessageEmbedFooter{Text: "Balance: " + o.Balance.String()}
		}
	case cast.OutcomeMissed:
		e.Title = fmt.Sprintf("%s's fish got away!", r.Display)
		e.Description = lossText(o)
		e.Color = colorLost
	case cast.OutcomeSnapped:
		e.Title = fmt.Sprintf("%s's line snapped!", r.Display)
		reason := "Wrong code."
		if o.TimedOut {
			reason = "Too slow."
		}
		e.Description = reason + " " + lossText(o)
		e.Color = colorLost
	case cast.OutcomeCanceled:
		e.Title = fmt.Sprintf("%s reeled in early.", r.Display)
		e.Color = colorNothing
	default:
		e.Title = fmt.Sprintf("Nothing bit %s's line.", r.Display)
		e.Description = "*Maybe try a different depth.*"
		e.Color = colorNothing
	}
	return e
}

func lossText(o cast.Outcome) string {
	text := "*" + o.Flavor + "*"
	if o.RevealLoss && o.Fish != nil {
		text += fmt.Sprintf("\n📷 Your camera caught a glimpse: %s %s.", article(fish.SizeClassFor(o.Fish).String()), fishLine(o.Fish))
	}
	return text
}

func challengeMessage(r cast.Recipient, c cast.Challenge) string {
	return fmt.Sprintf("⚠️ %s your line is straining! (%.2f lbs on a %.2f lbs line)\nType `%s` within **%s** to land it!",
		mention(r.Player), c.Load, c.MaxStrength, c.Display(), seconds(c.TimeLimit))
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func balanceEmbed(display string, p player.Profile) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("💰 %s's wallet", display),
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: p.Balance.String(), Inline: true},
			{Name: "Catches", Value: fmt.Sprintf("%d", p.TotalCatches), Inline: true},
			{Name: "Species", Value: fmt.Sprintf("%d", len(p.Species)), Inline: true},
		},
	}
}

// hookOdds summarizes the loadout's hook chance against an ordinary fish and
// against the hardest fighter.
func hookOdds(cfg cast.Config, l gear.Loadout) string {
	hardest := fish.CategoryForager
	for _, c := range fish.Categories {
		if c.FightMultiplier() > hardest.FightMultiplier() {
			hardest = c
		}
	}
	return fmt.Sprintf("%.0f%% typical, %.0f%% vs %s",
		cfg.CategoryHookChance(l, fish.CategoryForager)*100,
		cfg.CategoryHookChance(l, hardest)*100,
		hardest,
	)
}

func depthBands(s gear.Sinker) string {
	bands := s.EffectiveBands()
	if len(bands) == 0 {
		return "None"
	}
	names := make([]string, len(bands))
	for i, b := range bands {
		names[i] = b.String()
	}
	return strings.Join(names, ", ")
}

func owned[T any](items []T, selected int, name func(T) string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%d. %s", i+1, name(it))
		if i == selected {
			parts[i] = "**" + parts[i] + "**"
		}
	}
	return strings.Join(parts, " · ")
}

// ownedGear numbers every piece the player owns, for /gear equip.
func ownedGear(inv gear.Inventory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rods: %s\n", owned(inv.Rods, inv.SelectedRod, func(r gear.Rod) string { return r.Name }))
	fmt.Fprintf(&b, "Lines: %s\n", owned(inv.Lines, inv.SelectedLine, func(l gear.Line) string { return l.Name }))
	fmt.Fprintf(&b, "Reels: %s\n", owned(inv.Reels, inv.SelectedReel, func(r gear.Reel) string { return r.Name }))
	fmt.Fprintf(&b, "Sinkers: %s", owned(inv.Sinkers, inv.SelectedSinker, func(s gear.Sinker) string { return s.Name }))
	return b.String()
}

func gearEmbed(display string, inv gear.Inventory, cfg cast.Config) *discordgo.MessageEmbed {
	l := inv.Loadout()
	bait := "None"
	if l.Bait != nil {
		bait = l.Bait.Name
	}
	var upgrades []string
	if inv.DepthFinder {
		upgrades = append(upgrades, "Depth Finder")
	}
	if inv.UnderwaterCamera {
		upgrades = append(upgrades, "Underwater Camera")
	}
	if len(upgrades) == 0 {
		upgrades = append(upgrades, "None")
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🧰 %s's gear", display),
		Description: ownedGear(inv),
		Color:       colorCast,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rod", Value: fmt.Sprintf("%s (x%.2g strength, x%.2g efficiency)", l.Rod.Name, l.Rod.StrengthBonus, l.Rod.Efficiency)},
			{Name: "Line", Value: fmt.Sprintf("%s (%.1f lbs)", l.Line.Name, l.Line.Strength), Inline: true},
			{Name: "Reel", Value: fmt.Sprintf("%s (x%.2g)", l.Reel.Name, l.Reel.Speed), Inline: true},
			{Name: "Sinker", Value: fmt.Sprintf("%s (%.0f-%.0f ft)", l.Sinker.Name, l.Sinker.Depth.Min, l.Sinker.Depth.Max), Inline: true},
			{Name: "Depth bands", Value: depthBands(l.Sinker), Inline: true},
			{Name: "Bait", Value: bait, Inline: true},
			{Name: "Max load", Value: fmt.Sprintf("%.2f lbs", l.MaxStrength()), Inline: true},
			{Name: "Cast speed", Value: fmt.Sprintf("x%.2f", l.SpeedMultiplier()), Inline: true},
			{Name: "Hook sensitivity", Value: fmt.Sprintf("%+.2f", l.HookSensitivity()), Inline: true},
			{Name: "Hook chance", Value: hookOdds(cfg, l), Inline: true},
			{Name: "Upgrades", Value: strings.Join(upgrades, ", ")},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Swap gear with /gear equip"},
	}
}

func baitEmbed(display string, inv gear.Inventory) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🪱 %s's bait bucket", display),
		Color: colorCast,
	}
	if len(inv.BaitBucket) == 0 {
		e.Description = "Your bucket is empty. Buy bait with `/shop category:bait`."
		return e
	}
	var b strings.Builder
	for i, bait := range inv.BaitBucket {
		marker := "▪️"
		if i == inv.SelectedBait {
			marker = "🔷"
		}
		kind := "single use"
		if bait.Reusable() {
			kind = "reusable"
		}
		fmt.Fprintf(&b, "%s **%d. %s** (%s)\n╰ *%s*\n", marker, i+1, bait.Name, kind, bait.Describe())
	}
	e.Description = b.String()
	return e
}

func leaderboardEmbed(rows []fish.Catch, title string, lookup func(string) (fish.SpeciesDef, bool)) *discordgo.MessageEmbed {
	var b strings.Builder
	for idx, c := range rows {
		class := ""
		if sp, ok := lookup(c.Species); ok {
			class = " (" + fish.SizeClassFor(&fish.Fish{Species: sp, Size: c.Size}).String() + ")"
		}
		fmt.Fprintf(&b, "**#%d** **%.2f in%s** · <@%s> · %s\n", idx+1, c.Size, class, c.UserId, c.Species)
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: b.String(),
		Color:       colorGold,
	}
}

func shopEmbed(c shop.Category, items []shop.Item, balance fish.Money) *discordgo.MessageEmbed {
	var b strings.Builder
	fmt.Fprintf(&b, "ℹ️ *%s*\n💳 **Balance:** %s\n\n", c.Description(), balance)
	if len(items) == 0 {
		b.WriteString("Nothing for sale here today.")
	}
	for i, it := range items {
		fmt.Fprintf(&b, "**%d. %s** · %s\n╰ *%s*\n", i+1, it.Name, it.Price, it.Description)
	}
	return &discordgo.MessageEmbed{
		Title:       "🛒 Angler Shop · " + strings.ToUpper(c.String()[:1]) + c.String()[1:],
		Description: b.String(),
		Color:       colorCast,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Buy with /shop category:<category> buy:<number>"},
	}
}

func pretty(d time.Duration) string {
	// mm:ss
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}
