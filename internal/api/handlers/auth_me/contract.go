package auth_me

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

type ProfileClient interface {
	Me(ctx context.Context) (backend.UserProfile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
