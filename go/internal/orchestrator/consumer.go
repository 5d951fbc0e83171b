package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/matchclock/go/internal/events"
	"github.com/mcdev12/matchclock/go/internal/metrics"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

const (
	consumerName          = "matchclock"
	consumerMaxDeliver    = 5
	consumerAckWait       = 30 * time.Second
	consumerMaxAckPending = 100
	messageBufferSize     = 100
)

// EventHandler applies a decoded host event.
type EventHandler interface {
	HandleDomainEvent(ctx context.Context, eventType, matchID string, payload []byte) error
}

// EventConsumer feeds host events from JetStream into an EventHandler.
type EventConsumer struct {
	consumer jetstream.Consumer
	handler  EventHandler
}

// NewEventConsumer gets or creates the durable consumer on the host stream.
func NewEventConsumer(ctx context.Context, js jetstream.JetStream, handler EventHandler) (*EventConsumer, error) {
	stream, err := js.Stream(ctx, events.StreamName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream: %w", err)
	}

	consumer, err := stream.Consumer(ctx, consumerName)
	if err != nil {
		consumer, err = stream.CreateConsumer(ctx, jetstream.ConsumerConfig{
			Name:          consumerName,
			Durable:       consumerName,
			Description:   "matchclock host event consumer",
			FilterSubject: events.HostSubjectPrefix + ".>",
			DeliverPolicy: jetstream.DeliverNewPolicy,
			AckPolicy:     jetstream.AckExplicitPolicy,
			MaxDeliver:    consumerMaxDeliver,
			AckWait:       consumerAckWait,
			MaxAckPending: consumerMaxAckPending,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create consumer: %w", err)
		}
		log.Info().Str("consumer", consumerName).Msg("created JetStream consumer")
	} else {
		log.Info().Str("consumer", consumerName).Msg("using existing JetStream consumer")
	}

	return &EventConsumer{consumer: consumer, handler: handler}, nil
}

// Start consumes until ctx is cancelled.
func (c *EventConsumer) Start(ctx context.Context) error {
	log.Info().Msg("starting host event consumer")

	messageCh := make(chan jetstream.Msg, messageBufferSize)
	consumeCtx, err := c.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			_ = msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("host event consumer shutting down")
			return nil
		case msg := <-messageCh:
			c.handle(ctx, msg)
		}
	}
}

// handle processes one message and settles it: Ack on success, Term for
// bodies that can never be decoded, Nak otherwise.
func (c *EventConsumer) handle(ctx context.Context, msg jetstream.Msg) {
	eventType, err := c.processMessage(ctx, msg)
	switch {
	case err == nil:
		metrics.RecordHostEvent(eventType, "ok")
		if ackErr := msg.Ack(); ackErr != nil {
			log.Error().Err(ackErr).Msg("failed to ACK message")
		}
	case errors.Is(err, events.ErrMalformedEnvelope):
		metrics.RecordHostEvent("malformed", "dropped")
		log.Error().Err(err).Str("subject", msg.Subject()).Msg("dropping malformed message")
		if termErr := msg.Term(); termErr != nil {
			log.Error().Err(termErr).Msg("failed to TERM message")
		}
	default:
		metrics.RecordHostEvent(eventType, "error")
		log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
		if nakErr := msg.Nak(); nakErr != nil {
			log.Error().Err(nakErr).Msg("failed to NAK message")
		}
	}
}

func (c *EventConsumer) processMessage(ctx context.Context, msg jetstream.Msg) (string, error) {
	env, err := events.DecodeEnvelope(msg.Data())
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("event_id", env.EventID).
		Str("event_type", env.EventType).
		Str("match_id", env.MatchID).
		Str("subject", msg.Subject()).
		Msg("processing host event")

	if err := c.handler.HandleDomainEvent(ctx, env.EventType, env.MatchID, env.Payload); err != nil {
		return env.EventType, fmt.Errorf("failed to handle %s: %w", env.EventType, err)
	}
	return env.EventType, nil
}
