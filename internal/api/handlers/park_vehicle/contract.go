package park_vehicle

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	parkVehicle "github.com/m04kA/SMC-ParkingDesk/internal/usecase/park_vehicle"
)

type ParkVehicleUseCase interface {
	Execute(ctx context.Context, req *parkVehicle.Request) (*domain.ParkingSession, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
