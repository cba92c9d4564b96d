package parking_lots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgLotNotFound        = "парковка не найдена"
	msgLotCreated         = "парковка создана"
	msgFloorAdded         = "этаж добавлен"
)

type Handler struct {
	service ParkingLotService
	logger  Logger
}

func NewHandler(service ParkingLotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/parking-lots
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lots, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /parking-lots", err)
		return
	}

	resp := make([]*LotResponse, 0, len(lots))
	for _, l := range lots {
		resp = append(resp, lotFromDomain(l))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Get GET /api/v1/parking-lots/{lotId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	lot, err := h.service.Get(r.Context(), mux.Vars(r)["lotId"])
	if err != nil {
		h.respondError(w, "GET /parking-lots/{id}", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, lotFromDomain(lot))
}

// Create POST /api/v1/parking-lots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking-lots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lot, err := h.service.Create(r.Context(), &models.CreateLotRequest{
		Name:        req.Name,
		Address:     req.Address,
		TotalFloors: req.TotalFloors,
	})
	if err != nil {
		h.respondError(w, "POST /parking-lots", err)
		return
	}

	h.logger.Info("POST /parking-lots - Parking lot created: id=%s", lot.ID)
	handlers.RespondJSONWithMessage(w, http.StatusCreated, lotFromDomain(lot), msgLotCreated)
}

// Floors GET /api/v1/parking-lots/{lotId}/floors
func (h *Handler) Floors(w http.ResponseWriter, r *http.Request) {
	floors, err := h.service.Floors(r.Context(), mux.Vars(r)["lotId"])
	if err != nil {
		h.respondError(w, "GET /parking-lots/{id}/floors", err)
		return
	}

	resp := make([]*FloorResponse, 0, len(floors))
	for _, f := range floors {
		resp = append(resp, floorFromDomain(f))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// AddFloor POST /api/v1/parking-lots/floors
func (h *Handler) AddFloor(w http.ResponseWriter, r *http.Request) {
	var req AddFloorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking-lots/floors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	floor, err := h.service.AddFloor(r.Context(), &models.AddFloorRequest{
		ParkingLotID:      req.ParkingLotID,
		FloorNo:           req.FloorNo,
		SlotConfiguration: req.SlotConfiguration,
	})
	if err != nil {
		h.respondError(w, "POST /parking-lots/floors", err)
		return
	}

	h.logger.Info("POST /parking-lots/floors - Floor added: id=%s lot=%s floor=%d", floor.ID, floor.ParkingLotID, floor.FloorNo)
	handlers.RespondJSONWithMessage(w, http.StatusCreated, floorFromDomain(floor), msgFloorAdded)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, parkinglots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, parkinglots.ErrLotNotFound):
		h.logger.Warn("%s - Not found: %v", op, err)
		handlers.RespondNotFound(w, backend.UserMessage(err, msgLotNotFound))

	case errors.Is(err, parkinglots.ErrRejected):
		h.logger.Warn("%s - Rejected: %v", op, err)
		handlers.RespondConflict(w, backend.UserMessage(err, backend.MsgUnexpectedError))

	case errors.Is(err, parkinglots.ErrBackendUnavailable):
		h.logger.Error("%s - Backend unavailable: %v", op, err)
		handlers.RespondBadGateway(w, backend.UserMessage(err, backend.MsgUnexpectedError))

	default:
		h.logger.Error("%s - Unexpected error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
