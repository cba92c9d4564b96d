package pricing_quote

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidVehicleType = "неизвестный тип транспорта"
	msgInvalidTimeIn      = "некорректное время въезда"
	msgInvalidTimeOut     = "некорректное время выезда"
)

type Handler struct {
	calculator PricingCalculator
	logger     Logger
}

func NewHandler(calculator PricingCalculator, logger Logger) *Handler {
	return &Handler{
		calculator: calculator,
		logger:     logger,
	}
}

// Handle POST /api/v1/pricing/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vehicleType, ok := domain.ParseVehicleType(req.VehicleType)
	if !ok {
		h.logger.Warn("POST /pricing/quote - Unknown vehicle type %q", req.VehicleType)
		handlers.RespondBadRequest(w, msgInvalidVehicleType)
		return
	}

	timeIn, err := backend.ParseTime(req.TimeIn)
	if err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid timeIn %q: %v", req.TimeIn, err)
		handlers.RespondBadRequest(w, msgInvalidTimeIn)
		return
	}

	var (
		quote   *domain.PricingQuote
		timeOut time.Time
	)
	if req.TimeOut != nil && *req.TimeOut != "" {
		timeOut, err = backend.ParseTime(*req.TimeOut)
		if err != nil {
			h.logger.Warn("POST /pricing/quote - Invalid timeOut %q: %v", *req.TimeOut, err)
			handlers.RespondBadRequest(w, msgInvalidTimeOut)
			return
		}
		quote = h.calculator.Quote(r.Context(), vehicleType, timeIn, timeOut)
	} else {
		quote, timeOut = h.calculator.QuoteNow(r.Context(), vehicleType, timeIn)
	}

	handlers.RespondJSONWithMessage(w, http.StatusOK, &QuoteResponse{
		QuoteView: handlers.NewQuoteView(quote),
		TimeIn:    handlers.FormatTime(timeIn),
		TimeOut:   handlers.FormatTime(timeOut),
	}, quote.Message)
}
