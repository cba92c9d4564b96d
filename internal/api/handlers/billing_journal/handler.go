package billing_journal

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/billing"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/billing/models"
)

const (
	msgInvalidLimit    = "некорректный параметр limit"
	msgJournalDisabled = "журнал выездов отключен"
)

type Handler struct {
	service JournalService
	logger  Logger
}

func NewHandler(service JournalService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/billing/journal?registration=...&limit=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := &models.JournalQuery{
		Registration: r.URL.Query().Get("registration"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /billing/journal - Invalid limit %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		query.Limit = limit
	}

	entries, err := h.service.Journal(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrJournalDisabled):
			handlers.RespondServiceUnavailable(w, msgJournalDisabled)

		case errors.Is(err, billing.ErrInvalidInput):
			h.logger.Warn("GET /billing/journal - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)

		default:
			h.logger.Error("GET /billing/journal - Failed to list journal: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, fromDomain(e))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
