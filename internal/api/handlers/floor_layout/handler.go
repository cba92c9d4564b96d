package floor_layout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	getFloorLayout "github.com/m04kA/SMC-ParkingDesk/internal/usecase/get_floor_layout"
)

const (
	msgInvalidID     = "некорректный идентификатор"
	msgFloorNotFound = "этаж не найден"
)

type Handler struct {
	useCase FloorLayoutUseCase
	logger  Logger
}

func NewHandler(useCase FloorLayoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Layout GET /api/v1/floors/{floorId}/layout
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	floorID := mux.Vars(r)["floorId"]

	layout, err := h.useCase.Execute(r.Context(), floorID)
	if err != nil {
		switch {
		case errors.Is(err, getFloorLayout.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidID)

		case errors.Is(err, getFloorLayout.ErrFloorNotFound):
			h.logger.Warn("GET /floors/{id}/layout - Floor not found: floor_id=%s", floorID)
			handlers.RespondNotFound(w, msgFloorNotFound)

		case errors.Is(err, getFloorLayout.ErrBackendUnavailable):
			h.logger.Error("GET /floors/{id}/layout - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, backend.UserMessage(err, backend.MsgUnexpectedError))

		default:
			h.logger.Error("GET /floors/{id}/layout - Failed to build layout: floor_id=%s, error=%v", floorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, layoutFromDomain(layout))
}

// SlotLabel GET /api/v1/slots/{slotId}/label
// Если слот не найден, в label возвращаются первые 8 символов идентификатора
func (h *Handler) SlotLabel(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	location, err := h.useCase.Locate(r.Context(), slotID)
	if err != nil {
		if errors.Is(err, getFloorLayout.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidID)
			return
		}
		h.logger.Error("GET /slots/{id}/label - Failed to locate slot: slot_id=%s, error=%v", slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, locationFromUseCase(location))
}
