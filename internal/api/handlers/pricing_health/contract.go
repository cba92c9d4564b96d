package pricing_health

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/service/pricing/models"
)

// StatusCache последний результат периодической проверки (nil, если проверок еще не было)
type StatusCache interface {
	Status() *models.HealthStatus
}

// HealthChecker проверка модели по требованию
type HealthChecker interface {
	Health(ctx context.Context) (*models.HealthStatus, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
