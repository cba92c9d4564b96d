package worker

import (
	"context"

	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
)

// TransactionSweeper удаляет просроченные транзакции выезда
type TransactionSweeper struct {
	store   TransactionStore
	metrics Metrics
	logger  Logger
}

// NewTransactionSweeper создает задачу очистки. m может быть nil
func NewTransactionSweeper(store TransactionStore, m Metrics, logger Logger) *TransactionSweeper {
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	return &TransactionSweeper{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

func (s *TransactionSweeper) Name() string {
	return "exit_transaction_sweeper"
}

// Run выполняет одну очистку
func (s *TransactionSweeper) Run(_ context.Context) {
	if removed := s.store.Sweep(); removed > 0 {
		s.logger.Info("TransactionSweeper: removed %d expired exit transactions", removed)
	}
	s.metrics.SetActiveTransactions(s.store.Len())
}
