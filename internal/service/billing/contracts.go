package billing

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// JournalRepository интерфейс репозитория журнала выездов
type JournalRepository interface {
	List(ctx context.Context, limit uint64) ([]*domain.BillingJournalEntry, error)
	ListByRegistration(ctx context.Context, registration string, limit uint64) ([]*domain.BillingJournalEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
