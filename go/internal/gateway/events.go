package gateway

import "time"

// OverlayEventType names a message pushed to overlay clients.
type OverlayEventType string

const (
	EventPanel       OverlayEventType = "panel"
	EventPanelHidden OverlayEventType = "panel_hidden"
	EventChat        OverlayEventType = "chat"
	EventPrivate     OverlayEventType = "private"
	EventList        OverlayEventType = "list"
)

// OverlayEvent is the JSON frame written to websocket clients.
type OverlayEvent struct {
	Type      OverlayEventType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Data      any              `json:"data,omitempty"`
}

type chatData struct {
	Message string `json:"message"`
}

type listData struct {
	Title string   `json:"title"`
	Page  int      `json:"page"`
	Pages int      `json:"pages"`
	Rows  []string `json:"rows"`
}
