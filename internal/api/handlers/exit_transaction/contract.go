package exit_transaction

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	exitVehicle "github.com/m04kA/SMC-ParkingDesk/internal/usecase/exit_vehicle"
)

type ExitUseCase interface {
	Get(ctx context.Context, transactionID string) (*domain.ExitTransaction, error)
	Search(ctx context.Context, req *exitVehicle.SearchRequest) (*domain.ExitTransaction, error)
	Confirm(ctx context.Context, transactionID string) (*domain.ExitTransaction, error)
	Reset(ctx context.Context, transactionID string) (*domain.ExitTransaction, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
