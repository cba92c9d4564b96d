package get_floor_layout

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

// BackendClient интерфейс клиента бэкенда парковки
type BackendClient interface {
	GetFloor(ctx context.Context, floorID string) (*backend.FloorResponse, error)
	GetParkingLots(ctx context.Context) ([]backend.ParkingLotResponse, error)
	GetFloorsByParkingLot(ctx context.Context, lotID string) ([]backend.FloorResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
