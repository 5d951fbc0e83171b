package main

import (
	"context"
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/matchclock/go/internal/allowlist"
	"github.com/mcdev12/matchclock/go/internal/commands"
	"github.com/mcdev12/matchclock/go/internal/customtime"
	"github.com/mcdev12/matchclock/go/internal/gateway"
	"github.com/mcdev12/matchclock/go/internal/hostbus"
	"github.com/mcdev12/matchclock/go/internal/notify"
	"github.com/mcdev12/matchclock/go/internal/orchestrator"
	"github.com/mcdev12/matchclock/go/internal/players"
	"github.com/mcdev12/matchclock/go/internal/settings"
	"github.com/mcdev12/matchclock/go/internal/timer"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Orchestrator *orchestrator.Orchestrator
	Connections  *gateway.ConnectionManager
}

func setupServices(ctx context.Context, cfg *Config, database *sql.DB, directory *players.Directory, publisher *hostbus.Publisher) *Services {
	clock := clockwork.NewRealClock()

	// Configuration document → snapshot + allowlist
	store := settings.NewFileStore(cfg.ConfigPath)
	snap, warnings := settings.Load(ctx, store)
	for _, w := range warnings {
		log.Warn().Str("warning", w).Msg("config warning")
	}

	list := allowlist.New(store, snap.Whitelist)

	// Outbound: host bus, overlay websocket and the log
	connections := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	notifier := notify.Fanout{
		publisher,
		gateway.NewPanelNotifier(connections, clock),
		notify.LogNotifier{},
	}

	customTimes := customtime.NewRepository(database, cfg.Database.Driver)
	engine := timer.NewEngine(snap, customTimes, notifier, publisher)

	params := orchestrator.Params{
		Engine:     engine,
		Notifier:   notifier,
		Allowlist:  list,
		Matches:    publisher,
		LoadConfig: func(ctx context.Context) (settings.Snapshot, []string, error) {
			return settings.Read(ctx, store)
		},
		Clock:      clock,
		TickSource: cfg.TickSource,
		Version:    version,
		StaleAfter: cfg.StaleAfter,
	}
	if directory != nil {
		params.Processor = commands.NewProcessor(engine, list, customTimes, directory, notifier)
		params.Players = directory
	} else {
		params.Processor = commands.NewProcessor(engine, list, customTimes, nil, notifier)
	}

	log.Info().
		Str("config", cfg.ConfigPath).
		Int("whitelist", len(snap.Whitelist)).
		Str("tick_source", string(cfg.TickSource)).
		Msg("services wired")

	return &Services{
		Orchestrator: orchestrator.New(params),
		Connections:  connections,
	}
}
