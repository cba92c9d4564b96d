package exit_vehicle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/events"
	"github.com/m04kA/SMC-ParkingDesk/internal/infra/storage/exittx"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
	"github.com/m04kA/SMC-ParkingDesk/pkg/ptr"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) GetVehicleStatus(ctx context.Context, registration string) (*backend.VehicleResponse, error) {
	args := m.Called(ctx, registration)
	return vehicleOrNil(args.Get(0)), args.Error(1)
}

func (m *mockBackend) ExitVehicle(ctx context.Context, registration string) (*backend.VehicleResponse, error) {
	args := m.Called(ctx, registration)
	return vehicleOrNil(args.Get(0)), args.Error(1)
}

func (m *mockBackend) UpdateBill(ctx context.Context, vehicleID string, amount float64, details *backend.PricingDetails) (*backend.VehicleResponse, error) {
	args := m.Called(ctx, vehicleID, amount, details)
	return vehicleOrNil(args.Get(0)), args.Error(1)
}

func vehicleOrNil(v interface{}) *backend.VehicleResponse {
	if v == nil {
		return nil
	}
	return v.(*backend.VehicleResponse)
}

type mockPricing struct {
	mock.Mock
}

func (m *mockPricing) Quote(ctx context.Context, vt domain.VehicleType, entry, exit time.Time) *domain.PricingQuote {
	args := m.Called(ctx, vt, entry, exit)
	return args.Get(0).(*domain.PricingQuote)
}

type mockJournal struct {
	mock.Mock
}

func (m *mockJournal) Create(ctx context.Context, entry *domain.BillingJournalEntry) (*domain.BillingJournalEntry, error) {
	args := m.Called(ctx, entry)
	return entry, args.Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	data   []interface{}
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	p.data = append(p.data, data)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

var (
	entryTime   = time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	searchTime  = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	backendExit = time.Date(2024, 5, 10, 12, 2, 0, 0, time.UTC)
)

type fixture struct {
	uc        *UseCase
	backend   *mockBackend
	pricing   *mockPricing
	journal   *mockJournal
	publisher *recordingPublisher
	store     *exittx.Store
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		backend:   &mockBackend{},
		pricing:   &mockPricing{},
		journal:   &mockJournal{},
		publisher: &recordingPublisher{},
		store:     exittx.NewStore(time.Hour),
		metrics:   metrics.New("test", prometheus.NewRegistry()),
	}
	f.uc = NewUseCase(f.backend, f.pricing, f.store, f.journal, f.publisher, f.metrics, opts, logger.Nop())
	f.uc.timeProvider = &fixedTime{now: searchTime}
	return f
}

func parkedVehicle() *backend.VehicleResponse {
	return &backend.VehicleResponse{
		VehicleID:           "v-1",
		VehicleRegistration: "KA01AB1234",
		VehicleType:         "FOUR_WHEELER",
		TimeIn:              backend.Timestamp{Time: entryTime},
		AssignedSlotID:      "slot-1",
		Status:              "PARKED",
	}
}

func exitedVehicle(billAmt float64) *backend.VehicleResponse {
	v := parkedVehicle()
	v.Status = "EXITED"
	v.TimeOut = &backend.Timestamp{Time: backendExit}
	v.BillAmt = ptr.Of(billAmt)
	return v
}

func modelQuote(multiplier, minutes float64) *domain.PricingQuote {
	base := 50 * minutes / 60
	return &domain.PricingQuote{
		VehicleType:     domain.VehicleFourWheeler,
		Multiplier:      multiplier,
		BaseCharge:      base,
		AdjustedCharge:  base * multiplier,
		DurationMinutes: minutes,
		BillableMinutes: minutes,
	}
}

func fallbackQuote(minutes float64) *domain.PricingQuote {
	base := 50 * minutes / 60
	return &domain.PricingQuote{
		VehicleType:     domain.VehicleFourWheeler,
		Multiplier:      1,
		BaseCharge:      base,
		AdjustedCharge:  base,
		DurationMinutes: minutes,
		BillableMinutes: minutes,
		Fallback:        true,
	}
}

func TestSearch_EmptyRegistration(t *testing.T) {
	f := newFixture(t, Options{})

	tx, err := f.uc.Search(context.Background(), &SearchRequest{Registration: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, tx)
	assert.Equal(t, 0, f.store.Len())
}

func TestSearch_ToViewing(t *testing.T) {
	f := newFixture(t, Options{})
	quote := modelQuote(1.2, 120)

	f.backend.On("GetVehicleStatus", mock.Anything, "KA01AB1234").Return(parkedVehicle(), nil)
	f.pricing.On("Quote", mock.Anything, domain.VehicleFourWheeler, entryTime, searchTime).Return(quote)

	tx, err := f.uc.Search(context.Background(), &SearchRequest{Registration: " ka01 ab1234 "})
	require.NoError(t, err)

	assert.Equal(t, domain.ExitViewing, tx.State)
	assert.Equal(t, "KA01AB1234", tx.Registration)
	assert.Equal(t, "v-1", tx.Session.VehicleID)
	assert.Equal(t, 120.0, tx.Quote.AdjustedCharge)
	require.NotNil(t, tx.QuotedAt)
	assert.Equal(t, searchTime, *tx.QuotedAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ExitTransitions(string(domain.ExitViewing))))
}

func TestSearch_IsRepeatable(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.On("GetVehicleStatus", mock.Anything, "KA01AB1234").Return(parkedVehicle(), nil)
	f.pricing.On("Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(modelQuote(1, 120))

	first, err := f.uc.Search(context.Background(), &SearchRequest{Registration: "KA01AB1234"})
	require.NoError(t, err)

	second, err := f.uc.Search(context.Background(), &SearchRequest{TransactionID: first.ID, Registration: "KA01AB1234"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.ExitViewing, second.State)
	f.backend.AssertNotCalled(t, "ExitVehicle", mock.Anything, mock.Anything)
}

func TestSearch_NotFound(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.On("GetVehicleStatus", mock.Anything, "KA01AB1234").Return(nil, &backend.APIError{
		Kind:       backend.ErrNotFound,
		StatusCode: 404,
		Message:    "Vehicle not found with registration: KA01AB1234",
	})

	tx, err := f.uc.Search(context.Background(), &SearchRequest{Registration: "KA01AB1234"})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	require.NotNil(t, tx)
	assert.Equal(t, domain.ExitError, tx.State)
	assert.Equal(t, domain.StepSearch, tx.FailedStep)
	assert.Equal(t, "Vehicle not found with registration: KA01AB1234", tx.Error)
	f.pricing.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_BackendDown(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.On("GetVehicleStatus", mock.Anything, "KA01AB1234").Return(nil, &backend.APIError{
		Kind:    backend.ErrTimeout,
		Message: backend.MsgRequestTimeout,
	})

	tx, err := f.uc.Search(context.Background(), &SearchRequest{Registration: "KA01AB1234"})
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.Equal(t, backend.MsgRequestTimeout, tx.Error)
}

func TestSearch_AlreadyExitedSession(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.On("GetVehicleStatus", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil)

	tx, err := f.uc.Search(context.Background(), &SearchRequest{Registration: "KA01AB1234"})
	assert.ErrorIs(t, err, ErrSessionNotActive)
	assert.Equal(t, domain.ExitError, tx.State)
	assert.Equal(t, msgSessionNotActive, tx.Error)
}

func TestSearch_UnknownTransaction(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.uc.Search(context.Background(), &SearchRequest{TransactionID: "nope", Registration: "KA01AB1234"})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func viewing(t *testing.T, f *fixture, quote *domain.PricingQuote) *domain.ExitTransaction {
	t.Helper()
	f.backend.On("GetVehicleStatus", mock.Anything, "KA01AB1234").Return(parkedVehicle(), nil).Once()
	f.pricing.On("Quote", mock.Anything, domain.VehicleFourWheeler, entryTime, searchTime).Return(quote).Once()

	tx, err := f.uc.Search(context.Background(), &SearchRequest{Registration: "KA01AB1234"})
	require.NoError(t, err)
	require.Equal(t, domain.ExitViewing, tx.State)
	return tx
}

func TestConfirm_BillUpdated(t *testing.T) {
	f := newFixture(t, Options{})
	tx := viewing(t, f, modelQuote(1.2, 120))

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil)
	f.backend.On("UpdateBill", mock.Anything, "v-1", 120.0, mock.MatchedBy(func(d *backend.PricingDetails) bool {
		return d.Multiplier == 1.2 && d.VehicleType == "FOUR_WHEELER"
	})).Return(exitedVehicle(120), nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil)

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ExitExited, done.State)
	require.NotNil(t, done.Bill)
	assert.Equal(t, 120.0, done.Bill.TotalAmount)
	assert.Equal(t, 100.0, done.Bill.BackendBillAmt)
	assert.Equal(t, domain.BillUpdateUpdated, done.Bill.BillUpdate)
	assert.Equal(t, backendExit, done.Bill.TimeOut)
	assert.False(t, done.Bill.Requoted)
	assert.Equal(t, domain.SessionExited, done.Session.Status)
	assert.Equal(t, 120.0, *done.Session.BillAmt)

	f.journal.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(e *domain.BillingJournalEntry) bool {
		return e.TransactionID == tx.ID && e.TotalAmount == 120 && e.Multiplier == 1.2 && !e.Fallback
	}))
	assert.Equal(t, []string{events.TypeVehicleExited}, f.publisher.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BillUpdates(string(domain.BillUpdateUpdated))))
}

func TestConfirm_BillUpdateFailureKeepsLocalCharge(t *testing.T) {
	f := newFixture(t, Options{})
	tx := viewing(t, f, modelQuote(1.5, 120))

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil)
	f.backend.On("UpdateBill", mock.Anything, "v-1", 150.0, mock.Anything).Return(nil, &backend.APIError{
		Kind:    backend.ErrUnavailable,
		Message: "connection refused",
	})
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil)

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ExitExited, done.State)
	assert.Equal(t, 150.0, done.Bill.TotalAmount)
	assert.NotEqual(t, done.Bill.BackendBillAmt, done.Bill.TotalAmount)
	assert.Equal(t, domain.BillUpdateFailed, done.Bill.BillUpdate)
	require.NotNil(t, done.Bill.BillUpdateError)
	assert.Equal(t, "connection refused", *done.Bill.BillUpdateError)
	assert.Empty(t, done.Error)
}

func TestConfirm_FallbackSkipsBillUpdate(t *testing.T) {
	f := newFixture(t, Options{})
	tx := viewing(t, f, fallbackQuote(120))

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(90), nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil)

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.BillUpdateSkipped, done.Bill.BillUpdate)
	assert.Equal(t, 100.0, done.Bill.TotalAmount)
	assert.Equal(t, 90.0, done.Bill.BackendBillAmt)
	assert.Equal(t, 100.0, *done.Session.BillAmt)
	assert.True(t, done.Bill.Quote.Fallback)
	f.backend.AssertNotCalled(t, "UpdateBill", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_CallerCancelAfterBackendExit(t *testing.T) {
	f := newFixture(t, Options{})
	tx := viewing(t, f, modelQuote(1.2, 120))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alive := mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").
		Run(func(mock.Arguments) { cancel() }).
		Return(exitedVehicle(100), nil)
	f.backend.On("UpdateBill", alive, "v-1", 120.0, mock.Anything).Return(exitedVehicle(120), nil)
	f.journal.On("Create", alive, mock.Anything).Return(nil)

	done, err := f.uc.Confirm(ctx, tx.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ExitExited, done.State)
	assert.Equal(t, domain.BillUpdateUpdated, done.Bill.BillUpdate)
	f.backend.AssertCalled(t, "UpdateBill", alive, "v-1", 120.0, mock.Anything)
	f.journal.AssertNumberOfCalls(t, "Create", 1)
}

func TestConfirm_RequoteUsesBackendExitTime(t *testing.T) {
	f := newFixture(t, Options{RequoteOnExit: true})
	tx := viewing(t, f, modelQuote(1.2, 120))

	requote := modelQuote(1.2, 122)
	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil)
	f.pricing.On("Quote", mock.Anything, domain.VehicleFourWheeler, entryTime, backendExit).Return(requote).Once()
	f.backend.On("UpdateBill", mock.Anything, "v-1", requote.AdjustedCharge, mock.Anything).Return(exitedVehicle(requote.AdjustedCharge), nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil)

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.True(t, done.Bill.Requoted)
	assert.Equal(t, 122.0, done.Bill.Quote.DurationMinutes)
	assert.Equal(t, requote.AdjustedCharge, done.Bill.TotalAmount)
}

func TestConfirm_RequoteFallbackKeepsProvisionalModelQuote(t *testing.T) {
	f := newFixture(t, Options{RequoteOnExit: true})
	provisional := modelQuote(1.2, 120)
	tx := viewing(t, f, provisional)

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil)
	f.pricing.On("Quote", mock.Anything, domain.VehicleFourWheeler, entryTime, backendExit).Return(fallbackQuote(122)).Once()
	f.backend.On("UpdateBill", mock.Anything, "v-1", provisional.AdjustedCharge, mock.Anything).Return(nil, nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil)

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.False(t, done.Bill.Requoted)
	assert.False(t, done.Bill.Quote.Fallback)
	assert.Equal(t, provisional.AdjustedCharge, done.Bill.TotalAmount)
}

func TestConfirm_ExitFailureThenRetry(t *testing.T) {
	f := newFixture(t, Options{})
	tx := viewing(t, f, modelQuote(1.0, 120))

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(nil, &backend.APIError{
		Kind:    backend.ErrTimeout,
		Message: backend.MsgRequestTimeout,
	}).Once()

	failed, err := f.uc.Confirm(context.Background(), tx.ID)
	assert.ErrorIs(t, err, ErrExitFailed)
	require.NotNil(t, failed)
	assert.Equal(t, domain.ExitError, failed.State)
	assert.Equal(t, domain.StepExit, failed.FailedStep)
	assert.Equal(t, backend.MsgRequestTimeout, failed.Error)
	assert.Nil(t, failed.Bill)
	f.journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil).Once()
	f.backend.On("UpdateBill", mock.Anything, "v-1", 100.0, mock.Anything).Return(exitedVehicle(100), nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil)

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExitExited, done.State)
	assert.Empty(t, done.Error)
}

func TestConfirm_AlreadyExitedIsRejected(t *testing.T) {
	f := newFixture(t, Options{})
	tx := viewing(t, f, fallbackQuote(120))

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil).Once()
	f.journal.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), tx.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.uc.Search(context.Background(), &SearchRequest{TransactionID: tx.ID, Registration: "KA01AB1234"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	f.backend.AssertNumberOfCalls(t, "ExitVehicle", 1)
}

func TestConfirm_FromSearchingIsRejected(t *testing.T) {
	f := newFixture(t, Options{})
	tx := f.store.Create()

	_, err := f.uc.Confirm(context.Background(), tx.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirm_JournalFailureDoesNotFailExit(t *testing.T) {
	f := newFixture(t, Options{})
	tx := viewing(t, f, fallbackQuote(120))

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil)
	f.journal.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExitExited, done.State)
}

func TestConfirm_WithoutJournalAndEvents(t *testing.T) {
	f := newFixture(t, Options{})
	f.uc = NewUseCase(f.backend, f.pricing, f.store, nil, nil, nil, Options{}, logger.Nop())
	f.uc.timeProvider = &fixedTime{now: searchTime}
	tx := viewing(t, f, fallbackQuote(120))

	f.backend.On("ExitVehicle", mock.Anything, "KA01AB1234").Return(exitedVehicle(100), nil)

	done, err := f.uc.Confirm(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExitExited, done.State)
}

func TestReset(t *testing.T) {
	f := newFixture(t, Options{})
	f.backend.On("GetVehicleStatus", mock.Anything, "KA01AB1234").Return(nil, &backend.APIError{Kind: backend.ErrNotFound, Message: "nope"})

	tx, _ := f.uc.Search(context.Background(), &SearchRequest{Registration: "KA01AB1234"})
	require.Equal(t, domain.ExitError, tx.State)

	reset, err := f.uc.Reset(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExitSearching, reset.State)
	assert.Empty(t, reset.Registration)
	assert.Empty(t, reset.Error)
	assert.Nil(t, reset.Session)

	got, err := f.uc.Get(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ExitSearching, got.State)

	_, err = f.uc.Reset(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
