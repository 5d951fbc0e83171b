package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/matchclock/go/internal/health"
	"github.com/mcdev12/matchclock/go/internal/hostbus"
	"github.com/mcdev12/matchclock/go/internal/metrics"
	"github.com/mcdev12/matchclock/go/internal/orchestrator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	shutdownTimeout = 10 * time.Second
	probeTimeout    = 2 * time.Second
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := metrics.Init(prometheus.DefaultRegisterer, version); err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	database, err := setupDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup database")
	}
	defer database.Close()

	pool, directory, err := setupPlayers(ctx, cfg.PlayersDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup players directory")
	}
	if pool != nil {
		defer pool.Close()
	}

	nc, js, err := hostbus.Connect(cfg.NATSURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup NATS")
	}
	defer nc.Close()

	if _, err := hostbus.EnsureStream(ctx, js); err != nil {
		log.Fatal().Err(err).Msg("failed to setup host event stream")
	}

	publisher := hostbus.NewPublisher(nc, clockwork.NewRealClock())
	services := setupServices(ctx, cfg, database, directory, publisher)
	orch := services.Orchestrator

	consumer, err := orchestrator.NewEventConsumer(ctx, js, orch)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup event consumer")
	}

	log.Info().
		Str("version", version).
		Str("nats_url", cfg.NATSURL).
		Str("port", cfg.Port).
		Msg("starting matchclock")

	go services.Connections.Start(ctx)

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := orch.Run(ctx); err != nil {
			log.Error().Err(err).Msg("orchestrator failed")
		}
	}()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("host event consumer failed")
		}
	}()

	checker := health.NewChecker(database, nc, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		_, err := orch.Status(ctx)
		return err
	}, nil)

	server := setupServer(cfg, services, checker)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for a shutdown signal, reloading on SIGHUP
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			if _, err := orch.Reload(ctx); err != nil {
				log.Error().Err(err).Msg("failed to reload configuration")
			}
			continue
		}
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		break
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	cancel()

	select {
	case <-runDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("orchestrator did not stop before the shutdown deadline")
	}

	log.Info().Msg("matchclock shutdown complete")
}
