package recognize_plate

import (
	"context"

	recognizePlate "github.com/m04kA/SMC-ParkingDesk/internal/usecase/recognize_plate"
)

type RecognizePlateUseCase interface {
	Execute(ctx context.Context, req *recognizePlate.Request) (*recognizePlate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
