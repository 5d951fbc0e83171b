package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/matchclock/go/internal/commands"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/notify"
	"github.com/mcdev12/matchclock/go/internal/settings"
	"github.com/mcdev12/matchclock/go/internal/timer"
	"github.com/rs/zerolog/log"
)

// Clock is the interface we use for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) clockwork.Ticker
}

// TickSource selects where the once-per-second tick comes from.
type TickSource string

const (
	TickHost     TickSource = "host"
	TickInternal TickSource = "internal"
)

func ParseTickSource(s string) (TickSource, error) {
	switch ts := TickSource(strings.ToLower(strings.TrimSpace(s))); ts {
	case "", TickHost:
		return TickHost, nil
	case TickInternal:
		return TickInternal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTickSource, s)
	}
}

const (
	inboxSize         = 64
	tickInterval      = time.Second
	defaultStaleAfter = 5 * time.Second
)

// AllowlistReloader re-reads the allowlist from storage.
type AllowlistReloader interface {
	Reload(ctx context.Context) error
}

// PlayerRecorder remembers the nickname a player connected with.
type PlayerRecorder interface {
	Upsert(ctx context.Context, login, nickname string) (bool, error)
}

// MatchTracker is told which match is current, so outbound messages can be
// stamped with it.
type MatchTracker interface {
	SetMatch(id string)
}

// ConfigLoader produces a fresh snapshot and its warnings. An error means
// the document could not be read and the running snapshot should be kept.
type ConfigLoader func(ctx context.Context) (settings.Snapshot, []string, error)

// Params wires an Orchestrator. Players, Matches and LoadConfig are optional.
type Params struct {
	Engine     *timer.Engine
	Processor  *commands.Processor
	Notifier   notify.Notifier
	Allowlist  AllowlistReloader
	Players    PlayerRecorder
	Matches    MatchTracker
	LoadConfig ConfigLoader
	Clock      Clock
	TickSource TickSource
	Version    string
	StaleAfter time.Duration // host ticks older than this are dropped
}

type request struct {
	name string
	fn   func(ctx context.Context) error
	done chan error
}

// Orchestrator owns the timer engine and the command processor and applies
// host events, internal ticks and RPC requests to them one at a time.
type Orchestrator struct {
	engine     *timer.Engine
	processor  *commands.Processor
	notifier   notify.Notifier
	allowlist  AllowlistReloader
	players    PlayerRecorder
	matches    MatchTracker
	loadConfig ConfigLoader
	clock      Clock
	tickSource TickSource
	version    string
	staleAfter time.Duration
	instanceID string

	inbox   chan request
	stopped chan struct{}
}

func New(p Params) *Orchestrator {
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}
	if p.TickSource == "" {
		p.TickSource = TickHost
	}
	if p.StaleAfter <= 0 {
		p.StaleAfter = defaultStaleAfter
	}
	return &Orchestrator{
		engine:     p.Engine,
		processor:  p.Processor,
		notifier:   p.Notifier,
		allowlist:  p.Allowlist,
		players:    p.Players,
		matches:    p.Matches,
		loadConfig: p.LoadConfig,
		clock:      p.Clock,
		tickSource: p.TickSource,
		version:    p.Version,
		staleAfter: p.StaleAfter,
		instanceID: uuid.New().String()[:8],
		inbox:      make(chan request, inboxSize),
		stopped:    make(chan struct{}),
	}
}

// Run processes requests until ctx is cancelled. It must be called once.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer close(o.stopped)

	log.Info().
		Str("instance", o.instanceID).
		Str("tick_source", string(o.tickSource)).
		Str("version", o.version).
		Msg("orchestrator started")

	if o.notifier != nil && o.version != "" {
		o.notifier.Announce(ctx, "Started matchclock v"+o.version)
	}

	var ticks <-chan time.Time
	if o.tickSource == TickInternal {
		ticker := o.clock.NewTicker(tickInterval)
		defer ticker.Stop()
		ticks = ticker.Chan()
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("instance", o.instanceID).Msg("orchestrator shutdown requested")
			return nil
		case <-ticks:
			o.engine.Tick(ctx)
		case req := <-o.inbox:
			req.done <- req.fn(ctx)
		}
	}
}

// do queues fn for the run loop and waits for its result. fn runs with the
// loop's context so storage writes are not cut short by an impatient caller.
func (o *Orchestrator) do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	req := request{name: name, fn: fn, done: make(chan error, 1)}
	select {
	case o.inbox <- req:
	case <-o.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-o.stopped:
		// the loop may have answered just before stopping
		select {
		case err := <-req.done:
			return err
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the timer.
func (o *Orchestrator) Status(ctx context.Context) (timer.Status, error) {
	var st timer.Status
	err := o.do(ctx, "status", func(context.Context) error {
		st = o.engine.Status()
		return nil
	})
	return st, err
}

// RunCommand parses and runs a chat-style command line on behalf of caller.
func (o *Orchestrator) RunCommand(ctx context.Context, line string, caller models.Caller) error {
	cmd, err := commands.ParseLine(line)
	if err != nil {
		return err
	}
	return o.do(ctx, "command", func(ctx context.Context) error {
		return o.processor.Handle(ctx, cmd, caller)
	})
}

// Reload re-reads the configuration document and the allowlist, then swaps
// the snapshot. On any failure the running snapshot is kept. It returns the
// loader's warnings.
func (o *Orchestrator) Reload(ctx context.Context) ([]string, error) {
	var warnings []string
	err := o.do(ctx, "reload", func(ctx context.Context) error {
		var snap *settings.Snapshot
		if o.loadConfig != nil {
			loaded, warns, err := o.loadConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to reload configuration: %w", err)
			}
			for _, w := range warns {
				log.Warn().Str("warning", w).Msg("config warning")
			}
			warnings = warns
			snap = &loaded
		}
		if o.allowlist != nil {
			if err := o.allowlist.Reload(ctx); err != nil {
				return err
			}
		}
		if snap != nil {
			o.engine.SetConfig(*snap)
		}
		log.Info().Int("warnings", len(warnings)).Msg("reloaded configuration")
		return nil
	})
	return warnings, err
}
