package bot

import "github.com/bwmarrin/discordgo"

func shopCategoryChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := []string{"rods", "reels", "lines", "sinkers", "bait", "unique"}
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, n := range names {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
	}
	return out
}

func gearSlotChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := []string{"rod", "line", "reel", "sinker"}
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, n := range names {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
	}
	return out
}

func commandDefs() []*discordgo.ApplicationCommand {
	minIndex := 1.0
	return []*discordgo.ApplicationCommand{
		{Name: "cast", Description: "Cast your line"},
		{Name: "reel", Description: "Reel your line back in before anything bites"},
		{Name: "balance", Description: "Show your wallet"},
		{
			Name:        "gear",
			Description: "Show or change your gear",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show your gear and what it does",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "equip",
					Description: "Equip a rod, line, reel or sinker you own",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "slot",
							Description: "Which piece of gear",
							Required:    true,
							Choices:     gearSlotChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "number",
							Description: "Item number from /gear show",
							Required:    true,
							MinValue:    &minIndex,
						},
					},
				},
			},
		},
		{
			Name:        "bait",
			Description: "Manage your bait bucket",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the bait you own",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "equip",
					Description: "Put a bait on your hook",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "number",
							Description: "Bait number from /bait list",
							Required:    true,
							MinValue:    &minIndex,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "unequip",
					Description: "Fish without bait",
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the biggest catches",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "species",
					Description: "Filter by species name",
					Required:    false,
				},
			},
		},
		{
			Name:        "shop",
			Description: "Browse and buy gear",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category",
					Description: "What to browse",
					Required:    true,
					Choices:     shopCategoryChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "buy",
					Description: "Item number to buy",
					Required:    false,
					MinValue:    &minIndex,
				},
			},
		},
	}
}
