package parking_lots

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots/models"
)

type ParkingLotService interface {
	List(ctx context.Context) ([]*domain.ParkingLot, error)
	Get(ctx context.Context, lotID string) (*domain.ParkingLot, error)
	Create(ctx context.Context, req *models.CreateLotRequest) (*domain.ParkingLot, error)
	Floors(ctx context.Context, lotID string) ([]*domain.Floor, error)
	AddFloor(ctx context.Context, req *models.AddFloorRequest) (*domain.Floor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
