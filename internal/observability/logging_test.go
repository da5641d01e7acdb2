package observability

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Sk3pz/angler-bot-v2/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestDiscordLevel(t *testing.T) {
	assert.Equal(t, zapcore.ErrorLevel, DiscordLevel(discordgo.LogError))
	assert.Equal(t, zapcore.WarnLevel, DiscordLevel(discordgo.LogWarning))
	assert.Equal(t, zapcore.InfoLevel, DiscordLevel(discordgo.LogInformational))
	assert.Equal(t, zapcore.DebugLevel, DiscordLevel(discordgo.LogDebug))
}

func TestRouteDiscordLogs(t *testing.T) {
	prev := discordgo.Logger
	t.Cleanup(func() { discordgo.Logger = prev })

	core, logs := observer.New(zapcore.InfoLevel)
	RouteDiscordLogs(zap.New(core))

	discordgo.Logger(discordgo.LogWarning, 0, "heartbeat %d missed", 3)
	discordgo.Logger(discordgo.LogDebug, 0, "dropped")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "heartbeat 3 missed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "discordgo", entries[0].LoggerName)
}
