package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"clanwatch/internal/constants"
	"clanwatch/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	BotToken   string
	ClashToken string

	// normalized: uppercase, no '#'
	ClanTag string

	APITimeout    time.Duration
	FreshAttempts int
	StartupChatID int64
	Timezone      *time.Location
	OpsPort       string
	LogLevel      string

	Version VersionInfo
}

// VersionInfo is injected by CI; defaults identify a local build.
type VersionInfo struct {
	SHA    string
	Ref    string
	Time   string
	Author string
	Msg    string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		BotToken:      getEnv("BOT_TOKEN", ""),
		ClashToken:    getEnv("CLASH_TOKEN", ""),
		ClanTag:       domain.NormalizeTag(getEnv("CLAN_TAG", "")),
		APITimeout:    time.Duration(getEnvInt("API_TIMEOUT", 15)) * time.Second,
		FreshAttempts: getEnvInt("OPEN_ATTACKS_ATTEMPTS_DEFAULT", constants.DefaultFreshAttempts),
		StartupChatID: getEnvInt64("STARTUP_CHAT_ID", 0),
		OpsPort:       getEnv("OPS_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Version: VersionInfo{
			SHA:    getEnv("BOT_VERSION_SHA", "dev"),
			Ref:    getEnv("BOT_VERSION_REF", "local"),
			Time:   getEnv("BOT_VERSION_TIME", "unknown"),
			Author: getEnv("BOT_VERSION_AUTHOR", "unknown"),
			Msg:    getEnv("BOT_VERSION_MSG", ""),
		},
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.ClashToken == "" {
		return nil, fmt.Errorf("CLASH_TOKEN is required")
	}
	if cfg.ClanTag == "" {
		return nil, fmt.Errorf("CLAN_TAG is required")
	}

	tz := getEnv("BOT_TZ", "Europe/Zurich")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Warn().Str("tz", tz).Msg("unknown timezone, falling back to UTC")
		loc = time.UTC
	}
	cfg.Timezone = loc

	logger.Info().
		Str("clan_tag", cfg.ClanTag).
		Str("tz", loc.String()).
		Dur("api_timeout", cfg.APITimeout).
		Int("fresh_attempts", cfg.FreshAttempts).
		Str("ops_port", cfg.OpsPort).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
