package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	env, err := NewEnvelope(TypeChatMessage, "m1", ChatMessagePayload{Message: "hi"}, at)
	require.NoError(t, err)

	_, err = uuid.Parse(env.EventID)
	assert.NoError(t, err)
	assert.Equal(t, TypeChatMessage, env.EventType)
	assert.Equal(t, "m1", env.MatchID)
	assert.Equal(t, time.UTC, env.Timestamp.Location())
	assert.JSONEq(t, `{"message":"hi"}`, string(env.Payload))
}

func TestNewEnvelope_NilPayload(t *testing.T) {
	env, err := NewEnvelope(TypePanelHidden, "", nil, time.Now())
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "payload")
	assert.NotContains(t, string(data), "matchId")
}

func TestDecodeEnvelope(t *testing.T) {
	raw := `{
		"eventId": "e1",
		"eventType": "ChatCommand",
		"matchId": "m1",
		"timestamp": "2026-03-01T12:00:00Z",
		"payload": {"command": "/timeleft", "params": "+5",
			"caller": {"login": "bob", "nickname": "Bobby", "privilege": "admin"}}
	}`

	env, err := DecodeEnvelope([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, TypeChatCommand, env.EventType)

	var p ChatCommandPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Equal(t, "/timeleft", p.Command)
	assert.Equal(t, models.Caller{Login: "bob", Nickname: "Bobby", Privilege: models.PrivilegeAdmin}, p.Caller)
}

func TestDecodeEnvelope_Rejects(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     `{"eventType":`,
		"missing type": `{"eventId":"e1","payload":{}}`,
		"blank type":   `{"eventType":"  "}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "matchclock.host.Tick", HostSubject(TypeTick))
	assert.Equal(t, "matchclock.out.NextChallenge", OutSubject(TypeNextChallenge))
}
