package pricing_quote

import "github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"

// QuoteRequest HTTP request model. Без timeOut цена считается на текущий момент
type QuoteRequest struct {
	VehicleType string  `json:"vehicleType"`
	TimeIn      string  `json:"timeIn"`
	TimeOut     *string `json:"timeOut,omitempty"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	*handlers.QuoteView
	TimeIn  string `json:"timeIn"`
	TimeOut string `json:"timeOut"`
}
