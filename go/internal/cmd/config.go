package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mcdev12/matchclock/go/internal/dbconfig"
	"github.com/mcdev12/matchclock/go/internal/orchestrator"
	"github.com/mcdev12/matchclock/go/internal/sqlutil"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// version is reported in the startup announcement and the build_info metric.
var version = "2.0.1"

type Config struct {
	Port       string
	LogLevel   zerolog.Level
	ConfigPath string
	NATSURL    string
	TickSource orchestrator.TickSource
	StaleAfter time.Duration
	Database   dbconfig.Config
	// PlayersDSN points at the Postgres database holding the players table.
	// Empty disables nickname lookups.
	PlayersDSN string
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig() (*Config, error) {
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse LOG_LEVEL: %w", err)
	}

	tickSource, err := orchestrator.ParseTickSource(getEnv("TICK_SOURCE", string(orchestrator.TickHost)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse TICK_SOURCE: %w", err)
	}

	dbCfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	playersDSN := os.Getenv("PLAYERS_DB")
	if playersDSN == "" && dbCfg.Driver == sqlutil.DialectPostgres {
		playersDSN = dbCfg.PostgresDSN()
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   level,
		ConfigPath: getEnv("MATCHCLOCK_CONFIG", "matchclock.yaml"),
		NATSURL:    getEnv("NATS_URL", nats.DefaultURL),
		TickSource: tickSource,
		StaleAfter: time.Duration(getEnvAsInt("STALE_TICK_SEC", 5)) * time.Second,
		Database:   dbCfg,
		PlayersDSN: playersDSN,
	}, nil
}
