package billing

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/billing/models"
)

const (
	DefaultJournalLimit = 50
	MaxJournalLimit     = 500
)

// Service сервис чтения журнала выездов
type Service struct {
	journal JournalRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса. journal может быть nil, тогда журнал выключен
func NewService(journal JournalRepository, logger Logger) *Service {
	return &Service{
		journal: journal,
		logger:  logger,
	}
}

// Enabled сообщает, подключен ли журнал
func (s *Service) Enabled() bool {
	return s.journal != nil
}

// Journal возвращает записи журнала, новые первыми
func (s *Service) Journal(ctx context.Context, q *models.JournalQuery) ([]*domain.BillingJournalEntry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}

	limit := DefaultJournalLimit
	registration := ""
	if q != nil {
		if q.Limit < 0 || q.Limit > MaxJournalLimit {
			return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxJournalLimit)
		}
		if q.Limit > 0 {
			limit = q.Limit
		}
		registration = domain.NormalizeRegistration(q.Registration)
	}

	var (
		entries []*domain.BillingJournalEntry
		err     error
	)
	if registration != "" {
		entries, err = s.journal.ListByRegistration(ctx, registration, uint64(limit))
	} else {
		entries, err = s.journal.List(ctx, uint64(limit))
	}
	if err != nil {
		s.logger.Error("Journal: failed to list entries registration=%q: %v", registration, err)
		return nil, fmt.Errorf("%w: Journal - list entries: %v", ErrInternal, err)
	}

	return entries, nil
}
