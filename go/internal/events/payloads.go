package events

import (
	"time"

	"github.com/mcdev12/matchclock/go/internal/models"
)

// Host to matchclock.
const (
	TypeRoundStarted    = "RoundStarted"
	TypeRoundEnded      = "RoundEnded"
	TypeTick            = "Tick"
	TypeChatCommand     = "ChatCommand"
	TypePlayerConnected = "PlayerConnected"
)

// Matchclock to host.
const (
	TypePanelUpdated   = "PanelUpdated"
	TypePanelHidden    = "PanelHidden"
	TypeChatMessage    = "ChatMessage"
	TypePrivateMessage = "PrivateMessage"
	TypeListShown      = "ListShown"
	TypeNextChallenge  = "NextChallenge"
)

// RoundStartedPayload is sent by the host when a new match begins.
type RoundStartedPayload struct {
	Match     models.MatchInfo `json:"match"`
	StartedAt time.Time        `json:"started_at"`
}

type RoundEndedPayload struct {
	MatchID string    `json:"match_id"`
	EndedAt time.Time `json:"ended_at"`
}

type TickPayload struct {
	At time.Time `json:"at"`
}

// ChatCommandPayload carries a chat command and the caller's privilege as
// classified by the host.
type ChatCommandPayload struct {
	Command string        `json:"command"`
	Params  string        `json:"params"`
	Caller  models.Caller `json:"caller"`
}

type PlayerConnectedPayload struct {
	Login    string `json:"login"`
	Nickname string `json:"nickname"`
}

type PanelPayload struct {
	Text      string `json:"text"`
	Colour    string `json:"colour"`
	Paused    bool   `json:"paused"`
	Remaining int    `json:"remaining_sec"`
}

type ChatMessagePayload struct {
	Message string `json:"message"`
}

type PrivateMessagePayload struct {
	Login   string `json:"login"`
	Message string `json:"message"`
}

// ListPagePayload is one page of a list window shown to a single player.
type ListPagePayload struct {
	Login string   `json:"login"`
	Title string   `json:"title"`
	Page  int      `json:"page"`
	Pages int      `json:"pages"`
	Rows  []string `json:"rows"`
}

type NextChallengePayload struct {
	MatchID string `json:"match_id"`
	Reason  string `json:"reason"`
}
