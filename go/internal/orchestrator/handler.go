package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcdev12/matchclock/go/internal/commands"
	"github.com/mcdev12/matchclock/go/internal/events"
	"github.com/rs/zerolog/log"
)

// HandleDomainEvent decodes a host event and applies it on the run loop.
// Only failures worth redelivering are returned.
func (o *Orchestrator) HandleDomainEvent(ctx context.Context, eventType, matchID string, payload []byte) error {
	switch eventType {
	case events.TypeRoundStarted:
		var p events.RoundStartedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return malformedPayload("RoundStarted", err)
		}
		if p.Match.ID == "" {
			p.Match.ID = matchID
		}
		return o.do(ctx, eventType, func(ctx context.Context) error {
			return o.handleRoundStarted(ctx, p)
		})

	case events.TypeRoundEnded:
		return o.do(ctx, eventType, func(ctx context.Context) error {
			o.engine.HideForRoundEnd(ctx)
			return nil
		})

	case events.TypeTick:
		var p events.TickPayload
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				return malformedPayload("Tick", err)
			}
		}
		return o.handleTick(ctx, p)

	case events.TypeChatCommand:
		var p events.ChatCommandPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return malformedPayload("ChatCommand", err)
		}
		return o.handleChatCommand(ctx, p)

	case events.TypePlayerConnected:
		var p events.PlayerConnectedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return malformedPayload("PlayerConnected", err)
		}
		return o.handlePlayerConnected(ctx, p)

	default:
		log.Warn().
			Str("event_type", eventType).
			Str("match_id", matchID).
			Msg("unknown event type - ignoring")
		return nil
	}
}

func (o *Orchestrator) handleRoundStarted(ctx context.Context, p events.RoundStartedPayload) error {
	log.Info().
		Str("match_id", p.Match.ID).
		Str("match_name", p.Match.Name).
		Int64("author_time_ms", p.Match.AuthorTimeMsec).
		Msg("handling RoundStarted event")

	if o.matches != nil {
		o.matches.SetMatch(p.Match.ID)
	}
	o.engine.InitializeForRound(ctx, p.Match)
	return nil
}

func (o *Orchestrator) handleTick(ctx context.Context, p events.TickPayload) error {
	if o.tickSource != TickHost {
		log.Debug().Msg("ignoring host tick, ticking internally")
		return nil
	}
	if !p.At.IsZero() {
		if age := o.clock.Now().Sub(p.At); age > o.staleAfter {
			log.Debug().Dur("age", age).Msg("dropping stale host tick")
			return nil
		}
	}
	return o.do(ctx, events.TypeTick, func(ctx context.Context) error {
		o.engine.Tick(ctx)
		return nil
	})
}

// handleChatCommand runs a chat command. Outcomes have already been
// reported to the caller, so none of them is worth a redelivery.
func (o *Orchestrator) handleChatCommand(ctx context.Context, p events.ChatCommandPayload) error {
	cmd, err := commands.Parse(p.Command, p.Params)
	if errors.Is(err, commands.ErrUnknownCommand) {
		log.Debug().Str("command", p.Command).Msg("not a matchclock command")
		return nil
	}

	return o.do(ctx, events.TypeChatCommand, func(ctx context.Context) error {
		if err := o.processor.Handle(ctx, cmd, p.Caller); err != nil {
			log.Info().
				Err(err).
				Str("command", cmd.Kind.String()).
				Str("login", p.Caller.Login).
				Msg("command did not take effect")
		}
		return nil
	})
}

func (o *Orchestrator) handlePlayerConnected(ctx context.Context, p events.PlayerConnectedPayload) error {
	if o.players == nil {
		return nil
	}
	written, err := o.players.Upsert(ctx, p.Login, p.Nickname)
	if err != nil {
		return err
	}
	if written {
		log.Debug().Str("login", p.Login).Msg("recorded player nickname")
	}
	return nil
}

// malformedPayload marks a payload that can never decode so the consumer
// terminates it instead of redelivering.
func malformedPayload(eventType string, err error) error {
	return fmt.Errorf("%w: %s payload: %v", events.ErrMalformedEnvelope, eventType, err)
}
