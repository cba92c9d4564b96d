package park_vehicle

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

// BackendClient интерфейс клиента бэкенда парковки
type BackendClient interface {
	ParkVehicle(ctx context.Context, vehicleType, registration string) (*backend.VehicleResponse, error)
}

// EventPublisher интерфейс рассылки событий
type EventPublisher interface {
	Publish(eventType string, data interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
