package park_vehicle

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	parkVehicle "github.com/m04kA/SMC-ParkingDesk/internal/usecase/park_vehicle"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите тип транспорта (TWO_WHEELER, FOUR_WHEELER, HEAVY_VEHICLE) и госномер"
	msgVehicleParked      = "автомобиль поставлен на парковку"
)

type Handler struct {
	useCase ParkVehicleUseCase
	logger  Logger
}

func NewHandler(useCase ParkVehicleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/parking/entry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ParkVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking/entry - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.useCase.Execute(r.Context(), &parkVehicle.Request{
		VehicleType:  req.VehicleType,
		Registration: req.VehicleRegistration,
	})
	if err != nil {
		switch {
		case errors.Is(err, parkVehicle.ErrInvalidInput):
			h.logger.Warn("POST /parking/entry - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, parkVehicle.ErrRejected):
			h.logger.Warn("POST /parking/entry - Entry rejected: %v", err)
			handlers.RespondConflict(w, backend.UserMessage(err, backend.MsgUnexpectedError))

		case errors.Is(err, parkVehicle.ErrBackendUnavailable):
			h.logger.Error("POST /parking/entry - Backend unavailable: %v", err)
			handlers.RespondBadGateway(w, backend.UserMessage(err, backend.MsgUnexpectedError))

		default:
			h.logger.Error("POST /parking/entry - Failed to park vehicle: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parking/entry - Vehicle parked: vehicle=%s slot=%s", session.VehicleID, session.AssignedSlotID)
	handlers.RespondJSONWithMessage(w, http.StatusCreated, handlers.NewSessionView(session), msgVehicleParked)
}
