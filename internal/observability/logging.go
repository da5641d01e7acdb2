// Package observability builds the process logger.
package observability

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Sk3pz/angler-bot-v2/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
// "json" selects the production encoder, "console" the development one.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// DiscordLevel maps a discordgo log level onto zap.
func DiscordLevel(msgL int) zapcore.Level {
	switch msgL {
	case discordgo.LogError:
		return zapcore.ErrorLevel
	case discordgo.LogWarning:
		return zapcore.WarnLevel
	case discordgo.LogInformational:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// RouteDiscordLogs sends discordgo's internal logging through log. The hook
// is package global in discordgo, so call it once at startup.
func RouteDiscordLogs(log *zap.Logger) {
	log = log.Named("discordgo").WithOptions(zap.AddCallerSkip(2))
	discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
		if ce := log.Check(DiscordLevel(msgL), fmt.Sprintf(format, a...)); ce != nil {
			ce.Write()
		}
	}
}
