package floor_layout

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	getFloorLayout "github.com/m04kA/SMC-ParkingDesk/internal/usecase/get_floor_layout"
)

type FloorLayoutUseCase interface {
	Execute(ctx context.Context, floorID string) (*domain.FloorLayout, error)
	Locate(ctx context.Context, slotID string) (*getFloorLayout.SlotLocation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
