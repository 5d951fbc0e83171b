package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/mcdev12/matchclock/go/internal/customtime"
	"github.com/mcdev12/matchclock/go/internal/dbconfig"
	"github.com/mcdev12/matchclock/go/internal/players"
	"github.com/mcdev12/matchclock/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

func setupDatabase(ctx context.Context, cfg dbconfig.Config) (*sql.DB, error) {
	database, err := sql.Open(cfg.Driver.DriverName(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := customtime.InitSchema(ctx, database); err != nil {
		database.Close()
		return nil, err
	}

	logEvent := log.Info().Str("driver", string(cfg.Driver))
	if cfg.Driver == sqlutil.DialectSQLite {
		logEvent = logEvent.Str("path", cfg.SQLitePath)
	} else {
		logEvent = logEvent.Str("host", cfg.Host).Int("port", cfg.Port).Str("database", cfg.Database)
	}
	logEvent.Msg("connected to custom time database")
	return database, nil
}

// setupPlayers opens the players directory. It returns nil when no DSN is
// configured.
func setupPlayers(ctx context.Context, dsn string) (*pgxpool.Pool, *players.Directory, error) {
	if dsn == "" {
		log.Warn().Msg("PLAYERS_DB not set, nicknames will fall back to logins")
		return nil, nil, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create players pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping players database: %w", err)
	}

	dir := players.NewDirectory(pool)
	if err := dir.InitSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Info().Msg("connected to players database")
	return pool, dir, nil
}
