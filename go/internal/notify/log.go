package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogNotifier writes notifications to the log. It stands in for the host
// when no message bus is configured.
type LogNotifier struct{}

func (LogNotifier) RenderPanel(_ context.Context, panel Panel) {
	log.Debug().
		Str("text", panel.Text).
		Str("colour", panel.Colour).
		Bool("paused", panel.Paused).
		Msg("panel")
}

func (LogNotifier) HidePanel(context.Context) {
	log.Debug().Msg("panel hidden")
}

func (LogNotifier) Announce(_ context.Context, message string) {
	log.Info().Str("message", message).Msg("announce")
}

func (LogNotifier) Tell(_ context.Context, login, message string) {
	log.Info().Str("login", login).Str("message", message).Msg("tell")
}

func (LogNotifier) ShowList(_ context.Context, login, title string, rows []string) {
	log.Info().Str("login", login).Str("title", title).Strs("rows", rows).Msg("list")
}
