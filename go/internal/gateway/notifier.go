package gateway

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/matchclock/go/internal/notify"
)

// PanelNotifier mirrors timer output onto the overlay clients.
type PanelNotifier struct {
	cm    *ConnectionManager
	clock clockwork.Clock
}

func NewPanelNotifier(cm *ConnectionManager, clock clockwork.Clock) *PanelNotifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PanelNotifier{cm: cm, clock: clock}
}

func (n *PanelNotifier) event(t OverlayEventType, data any) *OverlayEvent {
	return &OverlayEvent{Type: t, Timestamp: n.clock.Now().UTC().Truncate(time.Millisecond), Data: data}
}

func (n *PanelNotifier) RenderPanel(_ context.Context, panel notify.Panel) {
	n.cm.Broadcast(n.event(EventPanel, panel))
}

func (n *PanelNotifier) HidePanel(context.Context) {
	n.cm.Broadcast(n.event(EventPanelHidden, nil))
}

func (n *PanelNotifier) Announce(_ context.Context, message string) {
	n.cm.Broadcast(n.event(EventChat, chatData{Message: message}))
}

func (n *PanelNotifier) Tell(_ context.Context, login, message string) {
	n.cm.SendToLogin(login, n.event(EventPrivate, chatData{Message: message}))
}

func (n *PanelNotifier) ShowList(_ context.Context, login, title string, rows []string) {
	pages := notify.Paginate(rows, notify.ListPageSize)
	for i, page := range pages {
		n.cm.SendToLogin(login, n.event(EventList, listData{Title: title, Page: i + 1, Pages: len(pages), Rows: page}))
	}
}
