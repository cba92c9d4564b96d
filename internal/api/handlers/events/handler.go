package events

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      Hub
	upgrader *websocket.Upgrader
	logger   Logger
}

func NewHandler(hub Hub, upgrader *websocket.Upgrader, logger Logger) *Handler {
	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		logger:   logger,
	}
}

// Handle GET /api/v1/events (websocket)
// Подписчик получает vehicle_parked и vehicle_exited, чтобы обновить сетку слотов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader уже ответил клиенту
		h.logger.Warn("GET /events - Upgrade failed: %v", err)
		return
	}

	h.logger.Info("GET /events - Subscriber connected: %s", r.RemoteAddr)
	h.hub.Serve(conn)
	h.logger.Info("GET /events - Subscriber disconnected: %s", r.RemoteAddr)
}
