package exit_vehicle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/events"
	"github.com/m04kA/SMC-ParkingDesk/internal/infra/storage/exittx"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	pkgmetrics "github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
	"github.com/m04kA/SMC-ParkingDesk/pkg/ptr"
)

// Сообщения для оператора, если бэкенд не прислал своего
const (
	msgVehicleNotFound  = "Vehicle not found"
	msgExitFailed       = "Failed to process vehicle exit"
	msgSessionNotActive = "Vehicle is not currently parked"
)

// settleTimeout ограничивает дозапись счета и журнала после выезда в бэкенде
const settleTimeout = 30 * time.Second

// UseCase сценарий выезда: поиск сессии, котировка, подтверждение выезда, обновление счета.
// Состояние каждой попытки хранится в транзакции SEARCHING -> VIEWING -> EXITED (ERROR - с возвратом)
type UseCase struct {
	backend      BackendClient
	pricing      PricingCalculator
	store        TransactionStore
	journal      JournalRepository
	events       EventPublisher
	metrics      Metrics
	options      Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. journal и events могут быть nil
func NewUseCase(
	backendClient BackendClient,
	pricing PricingCalculator,
	store TransactionStore,
	journal JournalRepository,
	publisher EventPublisher,
	metrics Metrics,
	options Options,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = (*pkgmetrics.Metrics)(nil)
	}
	return &UseCase{
		backend:      backendClient,
		pricing:      pricing,
		store:        store,
		journal:      journal,
		events:       publisher,
		metrics:      metrics,
		options:      options,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает снимок транзакции
func (uc *UseCase) Get(ctx context.Context, transactionID string) (*domain.ExitTransaction, error) {
	tx, err := uc.store.Get(transactionID)
	if err != nil {
		return nil, uc.storeError(err)
	}
	return tx, nil
}

// Search ищет активную сессию по госномеру и считает предварительную цену.
// Без TransactionID создается новая транзакция. Из EXITED поиск запрещен.
// При ошибке поиска транзакция переходит в ERROR и возвращается вместе с ошибкой
func (uc *UseCase) Search(ctx context.Context, req *SearchRequest) (*domain.ExitTransaction, error) {
	registration, err := validateRegistration(req.Registration)
	if err != nil {
		uc.logger.Warn("ExitSearch: validation failed: %v", err)
		return nil, err
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = uc.store.Create().ID
		uc.logger.Info("ExitSearch: created transaction id=%s", transactionID)
	}

	uc.logger.Info("ExitSearch: transaction=%s registration=%s", transactionID, registration)

	var flowErr error
	tx, err := uc.store.Update(ctx, transactionID, func(tx *domain.ExitTransaction) error {
		if tx.State == domain.ExitExited {
			return fmt.Errorf("%w: transaction %s is already %s", ErrInvalidTransition, tx.ID, tx.State)
		}

		tx.ClearResults()
		tx.Registration = registration

		vehicle, err := uc.backend.GetVehicleStatus(ctx, registration)
		if err != nil {
			flowErr = uc.lookupError(tx, err)
			return nil
		}

		session := vehicle.ToDomain()
		if session.Registration == "" {
			session.Registration = registration
		}
		tx.Session = session

		if !session.IsActive() {
			tx.State = domain.ExitError
			tx.FailedStep = domain.StepSearch
			tx.Error = msgSessionNotActive
			flowErr = fmt.Errorf("%w: registration=%s status=%s", ErrSessionNotActive, registration, session.Status)
			return nil
		}

		now := uc.timeProvider.Now()
		tx.Quote = uc.pricing.Quote(ctx, session.VehicleType, session.TimeIn, now)
		tx.QuotedAt = &now
		tx.State = domain.ExitViewing
		return nil
	})
	if err != nil {
		uc.logger.Warn("ExitSearch: transaction=%s rejected: %v", transactionID, err)
		return nil, uc.storeError(err)
	}

	uc.metrics.IncExitTransition(string(tx.State))
	if flowErr != nil {
		uc.logger.Warn("ExitSearch: transaction=%s moved to %s: %v", tx.ID, tx.State, flowErr)
		return tx, flowErr
	}

	uc.logger.Info("ExitSearch: transaction=%s vehicle=%s quoted %s (fallback=%t)",
		tx.ID, tx.Session.VehicleID, domain.FormatAmount(tx.Quote.AdjustedCharge), tx.Quote.Fallback)
	return tx, nil
}

// Confirm выполняет выезд в бэкенде и фиксирует итоговую сумму.
// Допустим из VIEWING или из ERROR после неудачного шага выезда.
// Неудачное обновление счета не делает выезд неуспешным
func (uc *UseCase) Confirm(ctx context.Context, transactionID string) (*domain.ExitTransaction, error) {
	uc.logger.Info("ExitConfirm: transaction=%s", transactionID)

	// Выезд в бэкенде уже зафиксирован: счет и журнал не зависят от отмены запроса оператора.
	// Значения контекста (токен сессии) сохраняются
	postCtx, cancelPost := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancelPost()

	var flowErr error
	tx, err := uc.store.Update(ctx, transactionID, func(tx *domain.ExitTransaction) error {
		if !canConfirm(tx) {
			return fmt.Errorf("%w: cannot confirm exit from %s", ErrInvalidTransition, tx.State)
		}

		vehicle, err := uc.backend.ExitVehicle(ctx, tx.Registration)
		if err != nil {
			tx.State = domain.ExitError
			tx.FailedStep = domain.StepExit
			tx.Error = backend.UserMessage(err, msgExitFailed)
			flowErr = fmt.Errorf("%w: registration=%s: %v", ErrExitFailed, tx.Registration, err)
			return nil
		}

		tx.Bill = uc.settle(postCtx, tx, vehicle.ToDomain())
		tx.Session.Status = domain.SessionExited
		tx.Session.TimeOut = ptr.Of(tx.Bill.TimeOut)
		tx.Session.BillAmt = ptr.Of(tx.Bill.TotalAmount)
		tx.State = domain.ExitExited
		tx.Error = ""
		tx.FailedStep = ""
		return nil
	})
	if err != nil {
		uc.logger.Warn("ExitConfirm: transaction=%s rejected: %v", transactionID, err)
		return nil, uc.storeError(err)
	}

	uc.metrics.IncExitTransition(string(tx.State))
	if flowErr != nil {
		uc.logger.Warn("ExitConfirm: transaction=%s moved to %s: %v", tx.ID, tx.State, flowErr)
		return tx, flowErr
	}

	uc.record(postCtx, tx)

	uc.logger.Info("ExitConfirm: transaction=%s vehicle=%s exited, total=%s bill_update=%s",
		tx.ID, tx.Bill.VehicleID, domain.FormatAmount(tx.Bill.TotalAmount), tx.Bill.BillUpdate)
	return tx, nil
}

// Reset возвращает транзакцию в SEARCHING и очищает результаты
func (uc *UseCase) Reset(ctx context.Context, transactionID string) (*domain.ExitTransaction, error) {
	tx, err := uc.store.Update(ctx, transactionID, func(tx *domain.ExitTransaction) error {
		tx.ClearResults()
		tx.Registration = ""
		tx.State = domain.ExitSearching
		return nil
	})
	if err != nil {
		return nil, uc.storeError(err)
	}

	uc.metrics.IncExitTransition(string(tx.State))
	uc.logger.Info("ExitReset: transaction=%s reset to %s", tx.ID, tx.State)
	return tx, nil
}

// settle выбирает итоговую котировку и пытается записать сумму в бэкенд
func (uc *UseCase) settle(ctx context.Context, tx *domain.ExitTransaction, exited *domain.ParkingSession) *domain.ExitBill {
	session := tx.Session

	bill := &domain.ExitBill{
		VehicleID:      firstNonEmpty(exited.VehicleID, session.VehicleID),
		Registration:   tx.Registration,
		VehicleType:    session.VehicleType,
		AssignedSlotID: firstNonEmpty(exited.AssignedSlotID, session.AssignedSlotID),
		TimeIn:         session.TimeIn,
		TimeOut:        uc.timeProvider.Now(),
		Quote:          tx.Quote,
	}
	if exited.VehicleType.IsValid() {
		bill.VehicleType = exited.VehicleType
	}
	if !exited.TimeIn.IsZero() {
		bill.TimeIn = exited.TimeIn
	}
	if exited.TimeOut != nil {
		bill.TimeOut = *exited.TimeOut
	} else if tx.QuotedAt != nil {
		bill.TimeOut = *tx.QuotedAt
	}
	if exited.BillAmt != nil {
		bill.BackendBillAmt = *exited.BillAmt
	}

	if uc.options.RequoteOnExit && exited.TimeOut != nil {
		requote := uc.pricing.Quote(ctx, bill.VehicleType, bill.TimeIn, bill.TimeOut)
		if requote.IsModelPriced() || !tx.Quote.IsModelPriced() {
			bill.Quote = requote
			bill.Requoted = true
		} else {
			uc.logger.Warn("ExitConfirm: transaction=%s re-quote fell back, keeping provisional model quote", tx.ID)
		}
	}

	if !bill.Quote.IsModelPriced() {
		// Резервная цена в бэкенд не пишется, но оператор видит ту же сумму, что и при просмотре
		bill.BillUpdate = domain.BillUpdateSkipped
		bill.TotalAmount = bill.BackendBillAmt
		if bill.Quote != nil {
			bill.TotalAmount = bill.Quote.AdjustedCharge
		}
		uc.metrics.IncBillUpdate(string(bill.BillUpdate))
		return bill
	}

	// Сумма для оператора - всегда локальная, даже если бэкенд не принял обновление
	bill.TotalAmount = bill.Quote.AdjustedCharge
	details := backend.NewPricingDetails(bill.Quote)
	if _, err := uc.backend.UpdateBill(ctx, bill.VehicleID, bill.TotalAmount, details); err != nil {
		uc.logger.Warn("ExitConfirm: bill update failed for vehicle=%s, keeping dynamic price %s: %v",
			bill.VehicleID, domain.FormatAmount(bill.TotalAmount), err)
		bill.BillUpdate = domain.BillUpdateFailed
		bill.BillUpdateError = ptr.Of(backend.UserMessage(err, err.Error()))
	} else {
		bill.BillUpdate = domain.BillUpdateUpdated
	}
	uc.metrics.IncBillUpdate(string(bill.BillUpdate))
	return bill
}

// record пишет журнал и рассылает событие. Ошибки только логируются
func (uc *UseCase) record(ctx context.Context, tx *domain.ExitTransaction) {
	if uc.journal != nil {
		if _, err := uc.journal.Create(ctx, newJournalEntry(tx)); err != nil {
			uc.logger.Error("ExitConfirm: failed to write billing journal for transaction=%s: %v", tx.ID, err)
		}
	}
	if uc.events != nil {
		uc.events.Publish(events.TypeVehicleExited, newExitedEvent(tx))
	}
}

func (uc *UseCase) lookupError(tx *domain.ExitTransaction, err error) error {
	tx.State = domain.ExitError
	tx.FailedStep = domain.StepSearch
	tx.Error = backend.UserMessage(err, msgVehicleNotFound)

	if errors.Is(err, backend.ErrNotFound) {
		return fmt.Errorf("%w: registration=%s: %v", ErrVehicleNotFound, tx.Registration, err)
	}
	return fmt.Errorf("%w: registration=%s: %v", ErrLookupFailed, tx.Registration, err)
}

func (uc *UseCase) storeError(err error) error {
	switch {
	case errors.Is(err, exittx.ErrNotFound):
		return ErrTransactionNotFound
	case errors.Is(err, ErrInvalidTransition):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func canConfirm(tx *domain.ExitTransaction) bool {
	if tx.Session == nil || tx.Registration == "" {
		return false
	}
	switch tx.State {
	case domain.ExitViewing:
		return true
	case domain.ExitError:
		return tx.FailedStep == domain.StepExit
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
