package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	StatsAPIKey     string
	StatsAPIBaseURL string
	DBPath          string
	ServerPort      string
	LogLevel        string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		StatsAPIKey:     getEnv("STATS_API_KEY", ""),
		StatsAPIBaseURL: getEnv("STATS_API_BASE_URL", "https://api.bwstats.gg"),
		DBPath:          getEnv("DB_PATH", "bedwars.db"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.StatsAPIKey == "" {
		return nil, fmt.Errorf("STATS_API_KEY is required")
	}

	logger.Info().
		Str("base_url", cfg.StatsAPIBaseURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
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

var Module = fx.Provide(Load)
