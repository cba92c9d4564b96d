package parkinglots

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

// BackendClient интерфейс клиента бэкенда парковки
type BackendClient interface {
	GetParkingLots(ctx context.Context) ([]backend.ParkingLotResponse, error)
	GetParkingLot(ctx context.Context, lotID string) (*backend.ParkingLotResponse, error)
	CreateParkingLot(ctx context.Context, req backend.CreateParkingLotRequest) (*backend.ParkingLotResponse, error)
	AddFloor(ctx context.Context, req backend.AddFloorRequest) (*backend.FloorResponse, error)
	GetFloorsByParkingLot(ctx context.Context, lotID string) ([]backend.FloorResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
