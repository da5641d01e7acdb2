package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Sk3pz/angler-bot-v2/internal/bot"
	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/config"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/gear"
	"github.com/Sk3pz/angler-bot-v2/internal/observability"
	"github.com/Sk3pz/angler-bot-v2/internal/session"
	"github.com/Sk3pz/angler-bot-v2/internal/shop"
	"github.com/Sk3pz/angler-bot-v2/internal/status"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML, JSON or TOML config file")
	envPath := flag.String("env", ".env", "optional dotenv file with ANGLER_* overrides")
	flag.Parse()

	if err := run(*configPath, *envPath); err != nil {
		fmt.Fprintln(os.Stderr, "anglerbot:", err)
		os.Exit(1)
	}
}

func run(configPath, envPath string) error {
	if err := loadDotEnv(envPath); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	observability.RouteDiscordLogs(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := fish.NewFileCatalog(cfg.Catalog.Species, cfg.Catalog.Bait)
	reg, err := catalog.Registry(ctx)
	if err != nil {
		return fmt.Errorf("failed to load species: %w", err)
	}
	log.Info("species loaded", zap.Int("count", reg.Count()))

	gearCatalog, err := gear.LoadCatalog(cfg.Catalog.Gear)
	if err != nil {
		return fmt.Errorf("failed to load gear: %w", err)
	}

	st, err := openStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	dg.ShardCount = cfg.Discord.ShardCount
	dg.ShardID = cfg.Discord.ShardID
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	notifier := bot.NewNotifier(dg, log.Named("notifier"))
	anglers := session.NewRegistry()
	engine := cast.NewEngine(cfg.Cast(), cast.Deps{
		Catalog:  catalog,
		Loadouts: st,
		Wallet:   st,
		Notifier: notifier,
		Registry: anglers,
		Logger:   log.Named("cast"),
	})

	market := shop.New(cfg.ShopStock(), shop.Deps{
		Gear:   gearCatalog,
		Baits:  catalog,
		Buyer:  st,
		Logger: log.Named("shop"),
	})

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open session connection: %w", err)
	}
	defer dg.Close()
	// Pending casts still reply over the gateway, so they stop first.
	defer engine.Close()

	teardown, err := bot.Setup(dg, bot.Options{
		AppID:      dg.State.User.ID,
		ScopeGuild: cfg.Discord.DevGuild,
		Engine:     engine,
		Notifier:   notifier,
		Store:      st,
		Species:    catalog,
		Shop:       market,
		Fishing:    engine.Config(),
		CastLimit:  session.NewCooldown(cfg.Cooldown.CastMin, cfg.Cooldown.CastMax, nil, nil),
		BoardLimit: session.NewCooldown(cfg.Cooldown.LeaderboardMin, cfg.Cooldown.LeaderboardMax, nil, nil),
		Logger:     log.Named("bot"),
	})
	if err != nil {
		return fmt.Errorf("failed to setup bot: %w", err)
	}
	defer teardown()

	httpErr := make(chan error, 1)
	if cfg.HTTP.Enabled {
		h := status.NewHandler(engine, anglers, catalog, engine.Config().Generator, log.Named("status"))
		go func() { httpErr <- status.Serve(ctx, status.New(h), cfg.HTTP.Addr(), log.Named("status")) }()
	}

	log.Info("bot is running",
		zap.Int("shard", cfg.Discord.ShardID),
		zap.Int("shards", cfg.Discord.ShardCount),
		zap.String("store", cfg.Database.Driver),
	)

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-httpErr:
		if err != nil {
			return fmt.Errorf("status api: %w", err)
		}
	}
	return nil
}
