package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcdev12/matchclock/go/internal/allowlist"
	"github.com/mcdev12/matchclock/go/internal/customtime"
	"github.com/mcdev12/matchclock/go/internal/metrics"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/mcdev12/matchclock/go/internal/notify"
	"github.com/mcdev12/matchclock/go/internal/settings"
	"github.com/mcdev12/matchclock/go/internal/timer"
	"github.com/rs/zerolog/log"
)

// Timer is what the processor needs from the timer engine.
type Timer interface {
	Adjust(ctx context.Context, kind timer.Kind, minutes int, caller models.Caller) (timer.Outcome, error)
	SetPaused(ctx context.Context, paused bool, caller models.Caller)
	Emergency(ctx context.Context, caller models.Caller) (timer.Outcome, error)
	TimeLeftText() string
	Match() models.MatchInfo
	Config() settings.Snapshot
}

// Allowlist is what the processor needs from the emergency allowlist.
type Allowlist interface {
	Contains(id string) bool
	Members() []string
	Add(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	Reload(ctx context.Context) error
}

// CustomTimeStore persists per-match custom times.
type CustomTimeStore interface {
	Set(ctx context.Context, matchID, value string) error
}

// Directory resolves logins to nicknames.
type Directory interface {
	Nickname(ctx context.Context, login string) (string, bool, error)
}

// Processor authorizes decoded commands and applies them to the timer.
// Every caller-facing outcome is delivered through the notifier.
type Processor struct {
	timer       Timer
	allowlist   Allowlist
	customTimes CustomTimeStore
	players     Directory
	notifier    notify.Notifier
}

// NewProcessor wires a processor. customTimes and players may be nil.
func NewProcessor(t Timer, a Allowlist, customTimes CustomTimeStore, players Directory, n notify.Notifier) *Processor {
	return &Processor{
		timer:       t,
		allowlist:   a,
		customTimes: customTimes,
		players:     players,
		notifier:    n,
	}
}

// Handle runs cmd for caller. The returned error classifies the outcome
// (ErrPermissionDenied, ErrInvalidParameter, timer.ErrNegativeResult, ...)
// after the caller has already been told about it.
func (p *Processor) Handle(ctx context.Context, cmd Command, caller models.Caller) error {
	log.Info().
		Str("command", cmd.Kind.String()).
		Str("params", cmd.Params).
		Str("login", caller.Login).
		Str("privilege", caller.Privilege.String()).
		Msg("handling command")

	var err error
	switch cmd.Kind {
	case KindTimeLeft:
		err = p.timeLeft(ctx, cmd.Params, caller)
	case KindEmergency:
		err = p.emergency(ctx, cmd.Params, caller)
	case KindTimeSet:
		err = p.timeSet(ctx, cmd.Params, caller)
	case KindWhitelist:
		err = p.whitelist(ctx, cmd.Params, caller)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownCommand, cmd.Kind)
	}

	metrics.RecordCommand(cmd.Kind.String(), resultLabel(err))
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPermissionDenied):
		return "denied"
	case errors.Is(err, ErrInvalidParameter):
		return "invalid"
	case errors.Is(err, timer.ErrNegativeResult),
		errors.Is(err, timer.ErrEmergencyThreshold),
		errors.Is(err, allowlist.ErrAlreadyPresent),
		errors.Is(err, allowlist.ErrNotPresent):
		return "rejected"
	default:
		return "error"
	}
}

func (p *Processor) authorizeAdjust(ctx context.Context, caller models.Caller) error {
	if CanAdjust(p.timer.Config().AdminLevel, caller.Privilege) {
		return nil
	}
	p.notifier.Tell(ctx, caller.Login, msgNoPermission)
	return ErrPermissionDenied
}

func (p *Processor) timeLeft(ctx context.Context, params string, caller models.Caller) error {
	if strings.TrimSpace(params) == "" {
		p.notifier.Tell(ctx, caller.Login, p.timer.TimeLeftText())
		return nil
	}
	if err := p.authorizeAdjust(ctx, caller); err != nil {
		return err
	}

	adj, err := ParseAdjustment(params)
	if err != nil {
		p.notifier.Tell(ctx, caller.Login, msgInvalidTimeLeft)
		return err
	}

	switch adj.Action {
	case ActionPause:
		p.timer.SetPaused(ctx, true, caller)
		return nil
	case ActionResume:
		p.timer.SetPaused(ctx, false, caller)
		return nil
	case ActionAdd:
		return p.adjust(ctx, timer.AddRelative, adj.Minutes, caller)
	case ActionSubtract:
		return p.adjust(ctx, timer.SubtractRelative, adj.Minutes, caller)
	default:
		return p.adjust(ctx, timer.SetAbsolute, adj.Minutes, caller)
	}
}

func (p *Processor) adjust(ctx context.Context, kind timer.Kind, minutes int, caller models.Caller) error {
	out, err := p.timer.Adjust(ctx, kind, minutes, caller)
	switch {
	case errors.Is(err, timer.ErrNegativeResult):
		p.notifier.Tell(ctx, caller.Login, msgNegative)
		return err
	case errors.Is(err, timer.ErrNoRound):
		p.notifier.Tell(ctx, caller.Login, msgNoRound)
		return err
	case err != nil:
		return err
	}
	if out.Clamped {
		p.notifier.Tell(ctx, caller.Login, msgOverMax(p.timer.Config().MaxTime))
	}
	return nil
}

// emergency uses the allowlist path when the caller is a member and falls
// back to a regular authorized add of the emergency amount otherwise.
// emergency serves /tl. Allowlisted callers get the threshold-gated
// extension. Anyone else needs adjust rights; pause and resume then work as
// in /timeleft and every other parameter means a clamped emergency add.
func (p *Processor) emergency(ctx context.Context, params string, caller models.Caller) error {
	cfg := p.timer.Config()
	if !p.allowlist.Contains(caller.Login) {
		if err := p.authorizeAdjust(ctx, caller); err != nil {
			return err
		}
		switch param := strings.TrimSpace(params); {
		case strings.EqualFold(param, "pause"):
			p.timer.SetPaused(ctx, true, caller)
			return nil
		case strings.EqualFold(param, "resume"):
			p.timer.SetPaused(ctx, false, caller)
			return nil
		}
		return p.adjust(ctx, timer.AddRelative, cfg.EmergencyTime, caller)
	}

	_, err := p.timer.Emergency(ctx, caller)
	switch {
	case errors.Is(err, timer.ErrEmergencyThreshold):
		p.notifier.Tell(ctx, caller.Login, msgEmergencyBlocked(cfg.EmergencyMin))
	case errors.Is(err, timer.ErrNoRound):
		p.notifier.Tell(ctx, caller.Login, msgNoRound)
	}
	return err
}

func (p *Processor) timeSet(ctx context.Context, params string, caller models.Caller) error {
	if !p.timer.Config().CustomTime || p.customTimes == nil {
		p.notifier.Tell(ctx, caller.Login, msgTimeSetDisabled)
		return ErrDisabled
	}
	if err := p.authorizeAdjust(ctx, caller); err != nil {
		return err
	}

	mins, err := strconv.Atoi(strings.TrimSpace(params))
	if err != nil || mins <= 0 {
		p.notifier.Tell(ctx, caller.Login, msgTimeSetUsage)
		return fmt.Errorf("%w: %q", ErrInvalidParameter, params)
	}

	match := p.timer.Match()
	if match.ID == "" {
		p.notifier.Tell(ctx, caller.Login, msgNoRound)
		return timer.ErrNoRound
	}
	if err := p.customTimes.Set(ctx, match.ID, customtime.FormatMinutes(mins)); err != nil {
		log.Error().Err(err).Str("match_id", match.ID).Msg("failed to store custom time")
		p.notifier.Tell(ctx, caller.Login, msgTimeSetFailed)
		return err
	}

	log.Info().Str("match_id", match.ID).Int("minutes", mins).Str("login", caller.Login).Msg("stored custom time")
	p.notifier.Announce(ctx, msgTimeSet(caller.DisplayName(), mins))
	return nil
}
