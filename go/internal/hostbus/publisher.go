package hostbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/matchclock/go/internal/events"
	"github.com/mcdev12/matchclock/go/internal/notify"
	"github.com/rs/zerolog/log"
)

// Conn is the publishing half of *nats.Conn.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends panel updates, chat output and round advance requests to
// the host as JSON envelopes on matchclock.out.<EventType>.
type Publisher struct {
	conn  Conn
	clock clockwork.Clock

	mu      sync.Mutex
	matchID string
}

func NewPublisher(conn Conn, clock clockwork.Clock) *Publisher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Publisher{conn: conn, clock: clock}
}

// SetMatch sets the match id stamped on subsequent envelopes.
func (p *Publisher) SetMatch(id string) {
	p.mu.Lock()
	p.matchID = id
	p.mu.Unlock()
}

func (p *Publisher) match() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matchID
}

func (p *Publisher) publish(eventType string, payload any) error {
	env, err := events.NewEnvelope(eventType, p.match(), payload, p.clock.Now())
	if err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", eventType, err)
	}
	if err := p.conn.Publish(events.OutSubject(eventType), data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

func (p *Publisher) deliver(eventType string, payload any) {
	if err := p.publish(eventType, payload); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to deliver to host")
	}
}

func (p *Publisher) RenderPanel(_ context.Context, panel notify.Panel) {
	p.deliver(events.TypePanelUpdated, events.PanelPayload{
		Text:      panel.Text,
		Colour:    panel.Colour,
		Paused:    panel.Paused,
		Remaining: panel.Remaining,
	})
}

func (p *Publisher) HidePanel(context.Context) {
	p.deliver(events.TypePanelHidden, nil)
}

func (p *Publisher) Announce(_ context.Context, message string) {
	p.deliver(events.TypeChatMessage, events.ChatMessagePayload{Message: message})
}

func (p *Publisher) Tell(_ context.Context, login, message string) {
	p.deliver(events.TypePrivateMessage, events.PrivateMessagePayload{Login: login, Message: message})
}

// ShowList publishes one ListShown message per page.
func (p *Publisher) ShowList(_ context.Context, login, title string, rows []string) {
	pages := notify.Paginate(rows, notify.ListPageSize)
	for i, page := range pages {
		p.deliver(events.TypeListShown, events.ListPagePayload{
			Login: login,
			Title: title,
			Page:  i + 1,
			Pages: len(pages),
			Rows:  page,
		})
	}
}

// Advance asks the host to move on to the next challenge.
func (p *Publisher) Advance(context.Context) error {
	return p.publish(events.TypeNextChallenge, events.NextChallengePayload{
		MatchID: p.match(),
		Reason:  "time limit reached",
	})
}
