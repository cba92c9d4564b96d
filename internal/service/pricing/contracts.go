package pricing

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/pricingmodel"
)

// ModelClient интерфейс клиента модели ценообразования
type ModelClient interface {
	Predict(ctx context.Context, in pricingmodel.PredictRequest) (*pricingmodel.Prediction, error)
	Health(ctx context.Context) (*pricingmodel.HealthStatus, error)
}

// Metrics интерфейс метрик котировок
type Metrics interface {
	IncPricingQuote(source string)
	SetPricingModelUp(up bool)
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
