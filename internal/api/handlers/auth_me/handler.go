package auth_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	client ProfileClient
	logger Logger
}

func NewHandler(client ProfileClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Handle GET /api/v1/auth/me
// Профиль оператора отдается как есть, без интерпретации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	profile, err := h.client.Me(r.Context())
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			h.logger.Warn("GET /auth/me - Backend rejected token: %v", err)
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		h.logger.Error("GET /auth/me - Failed to get profile: %v", err)
		handlers.RespondBadGateway(w, backend.UserMessage(err, backend.MsgUnexpectedError))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}
