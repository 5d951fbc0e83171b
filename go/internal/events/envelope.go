package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// StreamName is the JetStream stream carrying host events.
	StreamName = "MATCHCLOCK_EVENTS"

	HostSubjectPrefix = "matchclock.host"
	OutSubjectPrefix  = "matchclock.out"
)

var ErrMalformedEnvelope = errors.New("malformed event envelope")

// Envelope wraps every message exchanged with the host.
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	MatchID   string          `json:"matchId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload into a fresh envelope with a random event id.
func NewEnvelope(eventType, matchID string, payload any, at time.Time) (Envelope, error) {
	env := Envelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		MatchID:   matchID,
		Timestamp: at.UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		env.Payload = data
	}
	return env, nil
}

// DecodeEnvelope parses a message body. The event type is required; the
// payload is left raw for the handler to decode.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if strings.TrimSpace(env.EventType) == "" {
		return Envelope{}, fmt.Errorf("%w: missing eventType", ErrMalformedEnvelope)
	}
	return env, nil
}

// HostSubject is the subject the host publishes eventType on.
func HostSubject(eventType string) string {
	return HostSubjectPrefix + "." + eventType
}

// OutSubject is the subject matchclock publishes eventType on.
func OutSubject(eventType string) string {
	return OutSubjectPrefix + "." + eventType
}
