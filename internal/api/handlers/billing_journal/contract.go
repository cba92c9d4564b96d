package billing_journal

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/billing/models"
)

type JournalService interface {
	Journal(ctx context.Context, q *models.JournalQuery) ([]*domain.BillingJournalEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
