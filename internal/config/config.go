// Package config provides Viper-based configuration loading for the bot.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sk3pz/angler-bot-v2/internal/cast"
	"github.com/Sk3pz/angler-bot-v2/internal/fish"
	"github.com/Sk3pz/angler-bot-v2/internal/shop"
)

// EnvPrefix prefixes every environment override, e.g. ANGLER_DISCORD_TOKEN.
const EnvPrefix = "ANGLER"

// DiscordConfig holds the gateway connection settings.
type DiscordConfig struct {
	Token string `mapstructure:"token"`
	// DevGuild registers commands in one guild only, for fast iteration.
	// Empty registers them globally.
	DevGuild   string `mapstructure:"dev_guild"`
	ShardCount int    `mapstructure:"shard_count"`
	ShardID    int    `mapstructure:"shard_id"`
}

// DatabaseConfig selects where player data lives.
type DatabaseConfig struct {
	// Driver is "sqlite" or "memory".
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// CatalogConfig points at the static data files. JSON or YAML is chosen by
// extension.
type CatalogConfig struct {
	Species string `mapstructure:"species"`
	Bait    string `mapstructure:"bait"`
	Gear    string `mapstructure:"gear"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// HTTPConfig configures the status API.
type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// FishingConfig tunes casts and catches.
type FishingConfig struct {
	BaseChance        float64       `mapstructure:"base_chance"`
	BaseWait          time.Duration `mapstructure:"base_wait"`
	MinWait           time.Duration `mapstructure:"min_wait"`
	WeightTimeFactor  float64       `mapstructure:"weight_time_factor"`
	BaseChallengeTime time.Duration `mapstructure:"base_challenge_time"`
	MinChallengeTime  time.Duration `mapstructure:"min_challenge_time"`
	CodeLength        int           `mapstructure:"code_length"`
	// ValueFormula is "multiplicative" or "averaged".
	ValueFormula       string `mapstructure:"value_formula"`
	LegacyDepthOverlap bool   `mapstructure:"legacy_depth_overlap"`
	MissedClearsBait   bool   `mapstructure:"missed_clears_bait"`
	LogCastData        bool   `mapstructure:"log_cast_data"`
}

// CooldownConfig bounds the jittered per-player command cooldowns. A zero
// range disables the cooldown.
type CooldownConfig struct {
	CastMin        time.Duration `mapstructure:"cast_min"`
	CastMax        time.Duration `mapstructure:"cast_max"`
	LeaderboardMin time.Duration `mapstructure:"leaderboard_min"`
	LeaderboardMax time.Duration `mapstructure:"leaderboard_max"`
}

// ShopConfig sizes the daily bait stock.
type ShopConfig struct {
	LowStock    int `mapstructure:"low_stock"`
	MediumStock int `mapstructure:"medium_stock"`
	HighStock   int `mapstructure:"high_stock"`
	// RestockHour is the UTC hour the stock rolls over.
	RestockHour int `mapstructure:"restock_hour"`
}

// Config is the top-level application configuration.
type Config struct {
	Discord  DiscordConfig   `mapstructure:"discord"`
	Database DatabaseConfig  `mapstructure:"database"`
	Catalog  CatalogConfig   `mapstructure:"catalog"`
	Logging  LoggingConfig   `mapstructure:"logging"`
	HTTP     HTTPConfig      `mapstructure:"http"`
	Fishing  FishingConfig   `mapstructure:"fishing"`
	Bait     fish.BaitTuning `mapstructure:"bait"`
	Cooldown CooldownConfig  `mapstructure:"cooldown"`
	Shop     ShopConfig      `mapstructure:"shop"`
}

// ShopStock converts the shop section into stock settings.
func (c Config) ShopStock() shop.Config {
	return shop.Config{
		LowStock:    c.Shop.LowStock,
		MediumStock: c.Shop.MediumStock,
		HighStock:   c.Shop.HighStock,
		RestockHour: c.Shop.RestockHour,
	}
}

// Cast converts the fishing and bait sections into engine settings. Call it
// on a validated Config.
func (c Config) Cast() cast.Config {
	formula, _ := fish.ParseValueFormula(c.Fishing.ValueFormula)
	return cast.Config{
		BaseChance:        c.Fishing.BaseChance,
		BaseWait:          c.Fishing.BaseWait,
		MinWait:           c.Fishing.MinWait,
		WeightTimeFactor:  c.Fishing.WeightTimeFactor,
		BaseChallengeTime: c.Fishing.BaseChallengeTime,
		MinChallengeTime:  c.Fishing.MinChallengeTime,
		CodeLength:        c.Fishing.CodeLength,
		MissedClearsBait:  c.Fishing.MissedClearsBait,
		LogCastData:       c.Fishing.LogCastData,
		Generator: fish.GeneratorConfig{
			Tuning:             c.Bait,
			Formula:            formula,
			LegacyDepthOverlap: c.Fishing.LegacyDepthOverlap,
		},
	}
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string
	for _, check := range []func() error{
		func() error { return validateDiscord(c.Discord) },
		func() error { return validateDatabase(c.Database) },
		func() error { return validateCatalog(c.Catalog) },
		func() error { return validateLogging(c.Logging) },
		func() error { return validateHTTP(c.HTTP) },
		func() error { return validateFishing(c.Fishing) },
		func() error { return validateBait(c.Bait) },
		func() error { return validateCooldown(c.Cooldown) },
		func() error { return validateShop(c.Shop) },
	} {
		if err := check(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func joined(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, "; "))
}

func validateDiscord(d DiscordConfig) error {
	var errs []string
	if d.Token == "" {
		errs = append(errs, "discord.token must not be empty (set ANGLER_DISCORD_TOKEN)")
	}
	if d.ShardCount < 1 {
		errs = append(errs, fmt.Sprintf("discord.shard_count must be >= 1, got %d", d.ShardCount))
	}
	if d.ShardID < 0 || d.ShardID >= d.ShardCount {
		errs = append(errs, fmt.Sprintf("discord.shard_id must be in [0, shard_count), got %d", d.ShardID))
	}
	return joined(errs)
}

func validateDatabase(d DatabaseConfig) error {
	switch d.Driver {
	case "memory":
		return nil
	case "sqlite":
		if d.Path == "" {
			return errors.New("database.path must not be empty for the sqlite driver")
		}
		return nil
	}
	return fmt.Errorf("database.driver must be one of [sqlite, memory], got %q", d.Driver)
}

func validateCatalog(c CatalogConfig) error {
	var errs []string
	if c.Species == "" {
		errs = append(errs, "catalog.species must not be empty")
	}
	if c.Bait == "" {
		errs = append(errs, "catalog.bait must not be empty")
	}
	if c.Gear == "" {
		errs = append(errs, "catalog.gear must not be empty")
	}
	return joined(errs)
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateHTTP(h HTTPConfig) error {
	if !h.Enabled {
		return nil
	}
	if h.Port < 1 || h.Port > 65535 {
		return fmt.Errorf("http.port must be 1-65535, got %d", h.Port)
	}
	return nil
}

func validateFishing(f FishingConfig) error {
	var errs []string
	if f.BaseChance < 0 || f.BaseChance > 1 {
		errs = append(errs, fmt.Sprintf("fishing.base_chance must be in [0, 1], got %v", f.BaseChance))
	}
	if f.BaseWait <= 0 {
		errs = append(errs, "fishing.base_wait must be positive")
	}
	if f.MinWait < 0 {
		errs = append(errs, "fishing.min_wait must not be negative")
	}
	if f.WeightTimeFactor < 0 {
		errs = append(errs, "fishing.weight_time_factor must not be negative")
	}
	if f.BaseChallengeTime <= 0 {
		errs = append(errs, "fishing.base_challenge_time must be positive")
	}
	if f.MinChallengeTime <= 0 || f.MinChallengeTime > f.BaseChallengeTime {
		errs = append(errs, "fishing.min_challenge_time must be positive and at most base_challenge_time")
	}
	if f.CodeLength < 1 || f.CodeLength > 32 {
		errs = append(errs, fmt.Sprintf("fishing.code_length must be 1-32, got %d", f.CodeLength))
	}
	if _, err := fish.ParseValueFormula(f.ValueFormula); err != nil {
		errs = append(errs, "fishing.value_formula must be one of [multiplicative, averaged]")
	}
	return joined(errs)
}

func validateBait(b fish.BaitTuning) error {
	if b.Low < 1 || b.Medium < 1 || b.High < 1 {
		return fmt.Errorf("bait weights must be >= 1, got low=%v medium=%v high=%v", b.Low, b.Medium, b.High)
	}
	if b.Low > b.Medium || b.Medium > b.High {
		return errors.New("bait weights must satisfy low <= medium <= high")
	}
	return nil
}

func validateCooldown(c CooldownConfig) error {
	var errs []string
	if c.CastMin < 0 || c.CastMax < c.CastMin {
		errs = append(errs, "cooldown.cast_min must be >= 0 and <= cooldown.cast_max")
	}
	if c.LeaderboardMin < 0 || c.LeaderboardMax < c.LeaderboardMin {
		errs = append(errs, "cooldown.leaderboard_min must be >= 0 and <= cooldown.leaderboard_max")
	}
	return joined(errs)
}

func validateShop(s ShopConfig) error {
	var errs []string
	if s.LowStock < 0 || s.MediumStock < 0 || s.HighStock < 0 {
		errs = append(errs, "shop stock counts must not be negative")
	}
	if s.RestockHour < 0 || s.RestockHour > 23 {
		errs = append(errs, fmt.Sprintf("shop.restock_hour must be 0-23, got %d", s.RestockHour))
	}
	return joined(errs)
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path reads
// defaults and environment only.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	// AutomaticEnv only sees keys viper already knows about.
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.dev_guild", "")
	v.SetDefault("discord.shard_count", 1)
	v.SetDefault("discord.shard_id", 0)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/angler.db")

	v.SetDefault("catalog.species", "data/species.yaml")
	v.SetDefault("catalog.bait", "data/bait.yaml")
	v.SetDefault("catalog.gear", "data/gear.yaml")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("http.enabled", false)
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 8080)

	d := cast.DefaultConfig()
	v.SetDefault("fishing.base_chance", d.BaseChance)
	v.SetDefault("fishing.base_wait", d.BaseWait)
	v.SetDefault("fishing.min_wait", d.MinWait)
	v.SetDefault("fishing.weight_time_factor", d.WeightTimeFactor)
	v.SetDefault("fishing.base_challenge_time", d.BaseChallengeTime)
	v.SetDefault("fishing.min_challenge_time", d.MinChallengeTime)
	v.SetDefault("fishing.code_length", d.CodeLength)
	v.SetDefault("fishing.value_formula", "multiplicative")
	v.SetDefault("fishing.legacy_depth_overlap", false)
	v.SetDefault("fishing.missed_clears_bait", false)
	v.SetDefault("fishing.log_cast_data", false)

	t := fish.DefaultBaitTuning()
	v.SetDefault("bait.low_bait_weight", t.Low)
	v.SetDefault("bait.medium_bait_weight", t.Medium)
	v.SetDefault("bait.high_bait_weight", t.High)

	v.SetDefault("cooldown.cast_min", "0s")
	v.SetDefault("cooldown.cast_max", "0s")
	v.SetDefault("cooldown.leaderboard_min", "30s")
	v.SetDefault("cooldown.leaderboard_max", "30s")

	v.SetDefault("shop.low_stock", 4)
	v.SetDefault("shop.medium_stock", 3)
	v.SetDefault("shop.high_stock", 1)
	v.SetDefault("shop.restock_hour", 0)
}
