package exit_transaction

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	exitVehicle "github.com/m04kA/SMC-ParkingDesk/internal/usecase/exit_vehicle"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidRegistration  = "некорректный госномер"
	msgTransactionNotFound  = "транзакция выезда не найдена или истекла"
	msgInvalidTransition    = "операция недоступна в текущем состоянии транзакции"
	msgBackendUnavailable   = "сервер парковки недоступен"
	msgTransactionExited    = "выезд оформлен"
	msgTransactionRetrieved = "транзакция выезда получена"
)

type Handler struct {
	useCase ExitUseCase
	logger  Logger
}

func NewHandler(useCase ExitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Search POST /api/v1/exit/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /exit/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tx, err := h.useCase.Search(r.Context(), &exitVehicle.SearchRequest{
		TransactionID: req.TransactionID,
		Registration:  req.Registration,
	})
	if err != nil {
		h.respondFlowError(w, "POST /exit/search", tx, err)
		return
	}

	h.logger.Info("POST /exit/search - Vehicle found: transaction=%s vehicle=%s", tx.ID, tx.Session.VehicleID)
	handlers.RespondJSONWithMessage(w, http.StatusOK, FromDomain(tx), tx.Quote.Message)
}

// Get GET /api/v1/exit/{transactionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]

	tx, err := h.useCase.Get(r.Context(), transactionID)
	if err != nil {
		h.respondFlowError(w, "GET /exit/{id}", nil, err)
		return
	}

	handlers.RespondJSONWithMessage(w, http.StatusOK, FromDomain(tx), msgTransactionRetrieved)
}

// Confirm POST /api/v1/exit/{transactionId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]

	tx, err := h.useCase.Confirm(r.Context(), transactionID)
	if err != nil {
		h.respondFlowError(w, "POST /exit/{id}/confirm", tx, err)
		return
	}

	h.logger.Info("POST /exit/{id}/confirm - Vehicle exited: transaction=%s total=%s",
		tx.ID, domain.FormatAmount(tx.Bill.TotalAmount))
	handlers.RespondJSONWithMessage(w, http.StatusOK, FromDomain(tx), msgTransactionExited)
}

// Reset POST /api/v1/exit/{transactionId}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	transactionID := mux.Vars(r)["transactionId"]

	tx, err := h.useCase.Reset(r.Context(), transactionID)
	if err != nil {
		h.respondFlowError(w, "POST /exit/{id}/reset", nil, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(tx))
}

// respondFlowError отвечает ошибкой. Если транзакция перешла в ERROR, ее снимок отдается в data
func (h *Handler) respondFlowError(w http.ResponseWriter, op string, tx *domain.ExitTransaction, err error) {
	switch {
	case errors.Is(err, exitVehicle.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRegistration)

	case errors.Is(err, exitVehicle.ErrTransactionNotFound):
		h.logger.Warn("%s - Transaction not found", op)
		handlers.RespondNotFound(w, msgTransactionNotFound)

	case errors.Is(err, exitVehicle.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", op, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, exitVehicle.ErrVehicleNotFound):
		h.logger.Warn("%s - Vehicle not found: %v", op, err)
		handlers.RespondErrorWithData(w, http.StatusNotFound, flowMessage(tx), FromDomain(tx))

	case errors.Is(err, exitVehicle.ErrSessionNotActive):
		h.logger.Warn("%s - Session not active: %v", op, err)
		handlers.RespondErrorWithData(w, http.StatusConflict, flowMessage(tx), FromDomain(tx))

	case errors.Is(err, exitVehicle.ErrLookupFailed), errors.Is(err, exitVehicle.ErrExitFailed):
		h.logger.Error("%s - Backend step failed: %v", op, err)
		handlers.RespondErrorWithData(w, http.StatusBadGateway, flowMessage(tx), FromDomain(tx))

	default:
		h.logger.Error("%s - Unexpected error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}

func flowMessage(tx *domain.ExitTransaction) string {
	if tx != nil && tx.Error != "" {
		return tx.Error
	}
	return msgBackendUnavailable
}
