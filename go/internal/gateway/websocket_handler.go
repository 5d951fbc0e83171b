package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler serves the overlay endpoints.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandlePanelConnection upgrades to an overlay connection. The optional
// login query parameter subscribes the client to that player's private
// messages.
func (h *WebSocketHandler) HandlePanelConnection(w http.ResponseWriter, r *http.Request) {
	login := r.URL.Query().Get("login")

	// Upgrade has already written an error response when it fails.
	if err := h.connectionManager.UpgradeConnection(w, r, login); err != nil {
		log.Error().Err(err).Str("login", login).Msg("failed to upgrade WebSocket connection")
	}
}

func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// RegisterRoutes registers the overlay routes with mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/panel", h.HandlePanelConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
