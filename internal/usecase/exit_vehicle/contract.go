package exit_vehicle

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

// BackendClient интерфейс клиента бэкенда парковки
type BackendClient interface {
	GetVehicleStatus(ctx context.Context, registration string) (*backend.VehicleResponse, error)
	ExitVehicle(ctx context.Context, registration string) (*backend.VehicleResponse, error)
	UpdateBill(ctx context.Context, vehicleID string, amount float64, details *backend.PricingDetails) (*backend.VehicleResponse, error)
}

// PricingCalculator интерфейс калькулятора цены
type PricingCalculator interface {
	Quote(ctx context.Context, vehicleType domain.VehicleType, entry, exit time.Time) *domain.PricingQuote
}

// TransactionStore интерфейс хранилища транзакций выезда
type TransactionStore interface {
	Create() *domain.ExitTransaction
	Get(id string) (*domain.ExitTransaction, error)
	Update(ctx context.Context, id string, fn func(tx *domain.ExitTransaction) error) (*domain.ExitTransaction, error)
}

// JournalRepository интерфейс журнала выездов
type JournalRepository interface {
	Create(ctx context.Context, entry *domain.BillingJournalEntry) (*domain.BillingJournalEntry, error)
}

// EventPublisher интерфейс рассылки событий
type EventPublisher interface {
	Publish(eventType string, data interface{})
}

// Metrics интерфейс метрик выезда
type Metrics interface {
	IncExitTransition(state string)
	IncBillUpdate(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
