package pricing_quote

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

type PricingCalculator interface {
	Quote(ctx context.Context, vehicleType domain.VehicleType, entry, exit time.Time) *domain.PricingQuote
	QuoteNow(ctx context.Context, vehicleType domain.VehicleType, entry time.Time) (*domain.PricingQuote, time.Time)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
