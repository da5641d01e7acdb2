// Package bot connects the fishing engine, shop and store to Discord slash
// commands, buttons and chat messages.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/player"
	"github.com/Sk3pz/angler-bot-v2/internal/session"
	"github.com/Sk3pz/angler-bot-v2/internal/shop"
	"github.com/Sk3pz/angler-bot-v2/internal/store"
)

const (
	requestTimeout   = 5 * time.Second
	leaderboardLimit = 10
	maxSuggestions   = 3
)

// Caster starts and cancels casts.
type Caster interface {
	Cast(ctx context.Context, r cast.Recipient) (*cast.Session, error)
	Cancel(id player.ID) (bool, error)
}

type SpeciesCatalog interface {
	Registry(ctx context.Context) (*fish.Registry, error)
}

type Shop interface {
	Items(ctx context.Context, c shop.Category) ([]shop.Item, error)
	Buy(ctx context.Context, id player.ID, c shop.Category, index int) (shop.Receipt, error)
}

// Options are the collaborators of the bot. The cooldowns are optional.
// Fishing is only read to show hook odds in /gear.
type Options struct {
	AppID      string
	ScopeGuild string

	Engine   Caster
	Notifier *Notifier
	Store    store.Store
	Species  SpeciesCatalog
	Shop     Shop
	Fishing  cast.Config

	CastLimit  *session.Cooldown
	BoardLimit *session.Cooldown
	Logger     *zap.Logger
}

type module struct {
	api      discordAPI
	engine   Caster
	notifier *Notifier
	store    store.Store
	species  SpeciesCatalog
	shop     Shop
	fishing  cast.Config
	castLim  *session.Cooldown
	boardLim *session.Cooldown
	log      *zap.Logger
}

func newModule(api discordAPI, o Options) *module {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.CastLimit == nil {
		o.CastLimit = session.NewCooldown(0, 0, nil, nil)
	}
	if o.BoardLimit == nil {
		o.BoardLimit = session.NewCooldown(0, 0, nil, nil)
	}
	return &module{
		api:      api,
		engine:   o.Engine,
		notifier: o.Notifier,
		store:    o.Store,
		species:  o.Species,
		shop:     o.Shop,
		fishing:  o.Fishing,
		castLim:  o.CastLimit,
		boardLim: o.BoardLimit,
		log:      o.Logger,
	}
}

// Setup registers the slash commands and event handlers. The returned func
// removes the handlers.
func Setup(s *discordgo.Session, o Options) (func(), error) {
	m := newModule(s, o)

	created, err := s.ApplicationCommandBulkOverwrite(o.AppID, o.ScopeGuild, commandDefs())
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	for _, c := range created {
		m.log.Info("command active", zap.String("name", c.Name), zap.String("description", c.Description))
	}

	removeInteraction := s.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		m.onInteraction(i)
	})
	removeMessage := s.AddHandler(func(_ *discordgo.Session, msg *discordgo.MessageCreate) {
		m.onMessage(msg)
	})

	return func() {
		removeInteraction()
		removeMessage()
	}, nil
}

func (m *module) onInteraction(i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "cast":
			m.handleCast(i)
		case "reel":
			m.handleReel(i)
		case "bait":
			m.handleBait(i)
		case "gear":
			m.handleGear(i)
		case "balance":
			m.handleBalance(i)
		case "leaderboard":
			m.handleLeaderboard(i)
		case "shop":
			m.handleShop(i)
		}
	case discordgo.InteractionMessageComponent:
		if id := i.MessageComponentData().CustomID; strings.HasPrefix(id, reelPrefix) {
			m.handleReelButton(i, strings.TrimPrefix(id, reelPrefix))
		}
	}
}

// onMessage feeds chat messages to pending overload challenges.
func (m *module) onMessage(msg *discordgo.MessageCreate) {
	if msg.Author == nil || msg.Author.Bot {
		return
	}
	if m.notifier.Reply(msg.ChannelID, msg.Author.ID, msg.Content) {
		m.log.Debug("challenge reply", zap.String("channel", msg.ChannelID), zap.String("user", msg.Author.ID))
	}
}

func userID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			if i.Member.User.GlobalName != "" {
				return i.Member.User.GlobalName
			}
			return i.Member.User.Username
		}
	}
	if i.User != nil {
		return i.User.Username
	}
	return "Someone"
}

// playerFor returns false, after telling the user, when the command was not
// run in a server.
func (m *module) playerFor(i *discordgo.InteractionCreate) (player.ID, bool) {
	if i.GuildID == "" {
		m.respondEphemeral(i, "Use this command in a server!")
		return player.ID{}, false
	}
	return player.NewID(i.GuildID, userID(i)), true
}

func (m *module) profile(ctx context.Context, id player.ID) (player.Profile, error) {
	p, err := m.store.Profile(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return player.NewProfile(id), nil
	}
	return p, err
}

func (m *module) handleCast(i *discordgo.InteractionCreate) {
	id, ok := m.playerFor(i)
	if !ok {
		return
	}

	key := id.String()
	if ok, rem := m.castLim.Try(key); !ok {
		m.respondEphemeral(i, fmt.Sprintf("⏳ You're still untangling your line… try again in %s.", pretty(rem)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	_, err := m.engine.Cast(ctx, cast.Recipient{
		Player:  id,
		Channel: i.ChannelID,
		Display: displayName(i),
		Origin:  i.Interaction,
	})
	if err == nil {
		return
	}
	m.castLim.Reset(key)

	var gen *cast.GenerationError
	switch {
	case errors.Is(err, cast.ErrAlreadyFishing):
		m.respondEphemeral(i, "🎣 You already have a line in the water!")
	case errors.As(err, &gen):
		m.respondEphemeral(i, fmt.Sprintf("⚠️ Your cast got tangled. Please report this code: `%s`", gen.Code))
	case errors.Is(err, cast.ErrServiceUnavailable):
		m.respondEphemeral(i, "🌊 The waters are closed right now. Try again later.")
	default:
		m.log.Error("cast failed", zap.String("player", key), zap.Error(err))
		m.respondEphemeral(i, "Something went wrong casting your line.")
	}
}

func (m *module) handleReel(i *discordgo.InteractionCreate) {
	id, ok := m.playerFor(i)
	if !ok {
		return
	}

	canceled, err := m.engine.Cancel(id)
	switch {
	case errors.Is(err, cast.ErrNotFishing):
		m.respondEphemeral(i, "You don't have a line in the water.")
	case err != nil:
		m.log.Error("reel failed", zap.String("player", id.String()), zap.Error(err))
		m.respondEphemeral(i, "Something went wrong reeling in.")
	case !canceled:
		m.respondEphemeral(i, "Too late, something's already on the line!")
	default:
		m.respondEphemeral(i, "You reeled in your line.")
	}
}

func (m *module) handleReelButton(i *discordgo.InteractionCreate, sessionID string) {
	user := userID(i)
	owner, ok := m.notifier.CastOwner(sessionID)
	switch {
	case !ok:
		m.respondEphemeral(i, "Too late, that line is already out of reach.")
		return
	case owner != user:
		m.respondEphemeral(i, "That's not your line!")
		return
	}

	if !m.notifier.Cancel(sessionID, user) {
		m.respondEphemeral(i, "Too late, something's already on the line!")
		return
	}
	if err := m.api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		m.logREST("ack reel button failed", err)
	}
}

func (m *module) handleBait(i *discordgo.InteractionCreate) {
	id, ok := m.playerFor(i)
	if !ok {
		return
	}
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch sub.Name {
	case "equip":
		n := 0
		for _, opt := range sub.Options {
			if opt.Name == "number" {
				n = int(opt.IntValue())
			}
		}
		p, err := m.store.UpdateInventory(ctx, id, func(inv *gear.Inventory) error {
			return inv.EquipBait(n - 1)
		})
		if errors.Is(err, gear.ErrNoSuchItem) {
			m.respondEphemeral(i, fmt.Sprintf("You don't have bait #%d. Check `/bait list`.", n))
			return
		}
		if err != nil {
			m.storeFailed(i, "equip bait", err)
			return
		}
		b, _ := p.Inventory.ActiveBait()
		m.respondEphemeral(i, fmt.Sprintf("🪱 Hooked on **%s**.", b.Name))
	case "unequip":
		_, err := m.store.UpdateInventory(ctx, id, func(inv *gear.Inventory) error {
			inv.UnequipBait()
			return nil
		})
		if err != nil {
			m.storeFailed(i, "unequip bait", err)
			return
		}
		m.respondEphemeral(i, "You took the bait off your hook.")
	default:
		p, err := m.profile(ctx, id)
		if err != nil {
			m.storeFailed(i, "list bait", err)
			return
		}
		m.respondEmbed(i, baitEmbed(displayName(i), p.Inventory), true)
	}
}

// gearSlots maps the /gear equip slot choices to the inventory setters.
var gearSlots = map[string]func(inv *gear.Inventory, idx int) error{
	"rod":    (*gear.Inventory).EquipRod,
	"line":   (*gear.Inventory).EquipLine,
	"reel":   (*gear.Inventory).EquipReel,
	"sinker": (*gear.Inventory).EquipSinker,
}

func (m *module) handleGear(i *discordgo.InteractionCreate) {
	id, ok := m.playerFor(i)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	if len(data.Options) > 0 && data.Options[0].Name == "equip" {
		m.equipGear(ctx, i, id, data.Options[0].Options)
		return
	}

	p, err := m.profile(ctx, id)
	if err != nil {
		m.storeFailed(i, "load gear", err)
		return
	}
	m.respondEmbed(i, gearEmbed(displayName(i), p.Inventory, m.fishing), true)
}

func (m *module) equipGear(ctx context.Context, i *discordgo.InteractionCreate, id player.ID, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var slot string
	n := 0
	for _, opt := range opts {
		switch opt.Name {
		case "slot":
			slot = opt.StringValue()
		case "number":
			n = int(opt.IntValue())
		}
	}
	equip, ok := gearSlots[slot]
	if !ok {
		m.respondEphemeral(i, fmt.Sprintf("There's no %q slot. Pick a rod, line, reel or sinker.", slot))
		return
	}

	p, err := m.store.UpdateInventory(ctx, id, func(inv *gear.Inventory) error {
		return equip(inv, n-1)
	})
	if errors.Is(err, gear.ErrNoSuchItem) {
		m.respondEphemeral(i, fmt.Sprintf("You don't have %s #%d. Check `/gear show`.", slot, n))
		return
	}
	if err != nil {
		m.storeFailed(i, "equip gear", err)
		return
	}

	name := equippedName(p.Inventory.Loadout(), slot)
	m.log.Debug("gear equipped", zap.String("player", id.String()), zap.String("slot", slot), zap.String("item", name))
	m.respondEphemeral(i, fmt.Sprintf("🎣 Equipped **%s**.", name))
}

func equippedName(l gear.Loadout, slot string) string {
	switch slot {
	case "rod":
		return l.Rod.Name
	case "line":
		return l.Line.Name
	case "reel":
		return l.Reel.Name
	default:
		return l.Sinker.Name
	}
}

func (m *module) handleBalance(i *discordgo.InteractionCreate) {
	id, ok := m.playerFor(i)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	p, err := m.profile(ctx, id)
	if err != nil {
		m.storeFailed(i, "load balance", err)
		return
	}
	m.respondEmbed(i, balanceEmbed(displayName(i), p), true)
}

func (m *module) handleLeaderboard(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		m.respondEphemeral(i, "Use this command in a server!")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	reg, err := m.species.Registry(ctx)
	if err != nil {
		m.log.Warn("species catalog unavailable", zap.Error(err))
	}
	lookup := func(name string) (fish.SpeciesDef, bool) {
		if reg == nil {
			return fish.SpeciesDef{}, false
		}
		return reg.Get(name)
	}

	species := ""
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "species" {
			species = strings.TrimSpace(opt.StringValue())
		}
	}
	if species != "" {
		sp, ok := lookup(species)
		if !ok {
			msg := fmt.Sprintf("Unknown fish '%s'.", species)
			if reg != nil {
				if s := reg.Suggest(species, maxSuggestions); len(s) > 0 {
					msg += " Did you mean: " + strings.Join(s, ", ") + "?"
				}
			}
			m.respondEphemeral(i, msg)
			return
		}
		species = sp.Name
	}

	if ok, rem := m.boardLim.Try(i.GuildID); !ok {
		m.respondEphemeral(i, fmt.Sprintf("⏳ Leaderboard refreshing... try again in %s.", pretty(rem)))
		return
	}

	if err := m.api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		m.logREST("defer response failed", err)
		return
	}

	var rows []fish.Catch
	title := "🏆 Leaderboard · Biggest Catches"
	if species != "" {
		rows, err = m.store.TopBySizeSpecies(ctx, i.GuildID, species, leaderboardLimit)
		title = "🏆 Leaderboard · " + species
	} else {
		rows, err = m.store.TopBySize(ctx, i.GuildID, leaderboardLimit)
	}
	if err != nil {
		m.log.Error("loading leaderboard", zap.String("guild", i.GuildID), zap.Error(err))
		m.editResponseText(i, "Error loading leaderboard.")
		return
	}
	if len(rows) == 0 {
		m.editResponseText(i, "No catches yet - type `/cast` to make the first!")
		return
	}

	if _, err := m.api.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{leaderboardEmbed(rows, title, lookup)},
	}); err != nil {
		m.logREST("edit failed", err)
	}
}

func (m *module) handleShop(i *discordgo.InteractionCreate) {
	id, ok := m.playerFor(i)
	if !ok {
		return
	}

	var (
		category shop.Category
		buy      int
	)
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "category":
			c, err := shop.ParseCategory(opt.StringValue())
			if err != nil {
				m.respondEphemeral(i, "Unknown shop category.")
				return
			}
			category = c
		case "buy":
			buy = int(opt.IntValue())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if buy > 0 {
		r, err := m.shop.Buy(ctx, id, category, buy-1)
		switch {
		case errors.Is(err, store.ErrInsufficientFunds):
			m.respondEphemeral(i, "💸 You can't afford that.")
		case errors.Is(err, shop.ErrAlreadyOwned) && category == shop.CategoryUnique:
			m.respondEphemeral(i, "You already own that!")
		case errors.Is(err, shop.ErrAlreadyOwned):
			m.respondEphemeral(i, "You already own that! Switch to it with `/gear equip`.")
		case errors.Is(err, shop.ErrNoSuchItem):
			m.respondEphemeral(i, fmt.Sprintf("There's no item #%d in %s. Check the listing again.", buy, category))
		case err != nil:
			m.storeFailed(i, "purchase", err)
		default:
			m.respondEphemeral(i, fmt.Sprintf("🛒 You bought **%s** for %s. Balance: %s", r.Item.Name, r.Item.Price, r.Balance))
		}
		return
	}

	items, err := m.shop.Items(ctx, category)
	if err != nil {
		m.storeFailed(i, "shop listing", err)
		return
	}
	p, err := m.profile(ctx, id)
	if err != nil {
		m.storeFailed(i, "shop balance", err)
		return
	}
	m.respondEmbed(i, shopEmbed(category, items, p.Balance), true)
}

func (m *module) storeFailed(i *discordgo.InteractionCreate, op string, err error) {
	m.log.Error(op+" failed", zap.String("guild", i.GuildID), zap.String("user", userID(i)), zap.Error(err))
	m.respondEphemeral(i, "Something went wrong. Try again in a moment.")
}

func (m *module) respondEphemeral(i *discordgo.InteractionCreate, msg string) {
	err := m.api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		m.logREST("respond failed", err)
	}
}

func (m *module) respondEmbed(i *discordgo.InteractionCreate, e *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{e}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := m.api.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		m.logREST("respond failed", err)
	}
}

func (m *module) editResponseText(i *discordgo.InteractionCreate, content string) {
	if _, err := m.api.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		m.logREST("edit failed", err)
	}
}

func (m *module) logREST(msg string, err error) {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Message != nil {
		m.log.Warn(msg, zap.Int("code", rerr.Message.Code), zap.String("message", rerr.Message.Message))
		return
	}
	m.log.Warn(msg, zap.Error(err))
}
