package worker

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/service/pricing/models"
)

// HealthChecker интерфейс проверки модели ценообразования
type HealthChecker interface {
	Health(ctx context.Context) (*models.HealthStatus, error)
}

// TransactionStore интерфейс хранилища транзакций выезда
type TransactionStore interface {
	Sweep() int
	Len() int
}

// Metrics интерфейс метрик воркеров
type Metrics interface {
	SetActiveTransactions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
