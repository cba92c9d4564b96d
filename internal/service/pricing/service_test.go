package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/pricingmodel"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
)

type mockModel struct {
	mock.Mock
}

func (m *mockModel) Predict(ctx context.Context, in pricingmodel.PredictRequest) (*pricingmodel.Prediction, error) {
	args := m.Called(ctx, in)
	if p := args.Get(0); p != nil {
		return p.(*pricingmodel.Prediction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockModel) Health(ctx context.Context) (*pricingmodel.HealthStatus, error) {
	args := m.Called(ctx)
	if h := args.Get(0); h != nil {
		return h.(*pricingmodel.HealthStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func at(hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2024-05-10 "+hhmm, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func newService(model ModelClient) (*Service, *metrics.Metrics) {
	m := metrics.New("test", prometheus.NewRegistry())
	return NewService(model, time.UTC, m, logger.Nop()), m
}

func TestQuote_ShortStayFallback(t *testing.T) {
	model := &mockModel{}
	model.On("Predict", mock.Anything, mock.Anything).Return(nil, pricingmodel.ErrUnavailable)

	svc, m := newService(model)
	q := svc.Quote(context.Background(), domain.VehicleFourWheeler, at("10:00"), at("10:05"))

	assert.True(t, q.Fallback)
	assert.Equal(t, 1.0, q.Multiplier)
	assert.Equal(t, 5.0, q.DurationMinutes)
	assert.Equal(t, 60.0, q.BillableMinutes)
	assert.Equal(t, 50.0, q.BaseCharge)
	assert.Equal(t, 50.0, q.AdjustedCharge)
	assert.Contains(t, q.Message, "ML model unavailable")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PricingQuotes(metrics.QuoteFallback)))
}

func TestQuote_LongStayFallback(t *testing.T) {
	model := &mockModel{}
	model.On("Predict", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	svc, _ := newService(model)
	q := svc.Quote(context.Background(), domain.VehicleTwoWheeler, at("10:00"), at("12:30"))

	assert.Equal(t, 150.0, q.BillableMinutes)
	assert.Equal(t, "50.00", domain.FormatAmount(q.AdjustedCharge))
}

func TestQuote_ModelSuccess_UsesModelDuration(t *testing.T) {
	hour := 10
	day := "Friday"

	model := &mockModel{}
	model.On("Predict", mock.Anything, pricingmodel.PredictRequest{
		VehicleType: "heavyVehicle",
		TimeIn:      "10-05-2024 10:00",
		TimeOut:     "10-05-2024 12:00",
		PaidAmt:     140,
	}).Return(&pricingmodel.Prediction{
		Multiplier:      1.5,
		DurationMinutes: 90,
		HourOfEntry:     &hour,
		DayOfWeek:       &day,
	}, nil)

	svc, m := newService(model)
	q := svc.Quote(context.Background(), domain.VehicleHeavyVehicle, at("10:00"), at("12:00"))

	model.AssertExpectations(t)
	assert.False(t, q.Fallback)
	assert.Equal(t, 90.0, q.DurationMinutes)
	assert.Equal(t, 90.0, q.BillableMinutes)
	assert.Equal(t, 105.0, q.BaseCharge)
	assert.Equal(t, 157.5, q.AdjustedCharge)
	assert.Equal(t, domain.DemandHigh, q.DemandLevel())
	assert.Equal(t, &hour, q.HourOfEntry)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PricingQuotes(metrics.QuoteModel)))
}

func TestQuote_ModelShortDuration_AppliesMinimum(t *testing.T) {
	model := &mockModel{}
	model.On("Predict", mock.Anything, mock.Anything).Return(&pricingmodel.Prediction{
		Multiplier:      0.8,
		DurationMinutes: 20,
	}, nil)

	svc, _ := newService(model)
	q := svc.Quote(context.Background(), domain.VehicleFourWheeler, at("10:00"), at("10:20"))

	assert.Equal(t, 60.0, q.BillableMinutes)
	assert.Equal(t, 50.0, q.BaseCharge)
	assert.InDelta(t, 40.0, q.AdjustedCharge, 1e-9)
	assert.True(t, q.IsMinimumApplied())
}

func TestQuote_UnknownTypeUsesFourWheelerRate(t *testing.T) {
	model := &mockModel{}
	model.On("Predict", mock.Anything, mock.MatchedBy(func(r pricingmodel.PredictRequest) bool {
		return r.VehicleType == "fourWheeler"
	})).Return(nil, errors.New("down"))

	svc, _ := newService(model)
	q := svc.Quote(context.Background(), domain.VehicleType("BUS"), at("10:00"), at("11:00"))

	model.AssertExpectations(t)
	assert.Equal(t, 50.0, q.BaseCharge)
}

func TestQuote_ExitBeforeEntryIsClamped(t *testing.T) {
	model := &mockModel{}
	model.On("Predict", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	svc, _ := newService(model)
	q := svc.Quote(context.Background(), domain.VehicleTwoWheeler, at("12:00"), at("11:00"))

	assert.Equal(t, 0.0, q.DurationMinutes)
	assert.Equal(t, 60.0, q.BillableMinutes)
	assert.Equal(t, 20.0, q.AdjustedCharge)
}

func TestQuote_OneHourMinimumRules(t *testing.T) {
	model := &mockModel{}
	model.On("Predict", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	svc, _ := newService(model)

	for _, vt := range domain.VehicleTypes {
		for minutes := 0; minutes <= 600; minutes += 7 {
			entry := at("08:00")
			q := svc.Quote(context.Background(), vt, entry, entry.Add(time.Duration(minutes)*time.Minute))

			require.GreaterOrEqual(t, q.BillableMinutes, q.DurationMinutes)
			require.GreaterOrEqual(t, q.BillableMinutes, 60.0)
			if minutes <= 60 {
				require.Equal(t, vt.HourlyRate(), q.BaseCharge)
			} else {
				require.InDelta(t, vt.HourlyRate()*float64(minutes)/60, q.BaseCharge, 1e-9)
			}
			require.Equal(t, q.BaseCharge, q.AdjustedCharge)
		}
	}
}

func TestFormatModelTime(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)

	assert.Equal(t, "02-01-2024 08:34", FormatModelTime(ts, loc))
	assert.Equal(t, "02-01-2024 03:04", FormatModelTime(ts, nil))
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		model := &mockModel{}
		model.On("Health", mock.Anything).Return(&pricingmodel.HealthStatus{Status: "ok", ModelLoaded: true}, nil)

		svc, m := newService(model)
		status, err := svc.Health(context.Background())
		require.NoError(t, err)
		assert.True(t, status.Healthy)
		assert.True(t, status.ModelLoaded)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.PricingModelUp()))
	})

	t.Run("degraded", func(t *testing.T) {
		model := &mockModel{}
		model.On("Health", mock.Anything).Return(&pricingmodel.HealthStatus{Status: "loading"}, nil)

		svc, m := newService(model)
		status, err := svc.Health(context.Background())
		assert.ErrorIs(t, err, ErrModelUnhealthy)
		assert.False(t, status.Healthy)
		assert.Equal(t, 0.0, testutil.ToFloat64(m.PricingModelUp()))
	})

	t.Run("unreachable", func(t *testing.T) {
		model := &mockModel{}
		model.On("Health", mock.Anything).Return(nil, pricingmodel.ErrUnavailable)

		svc, _ := newService(model)
		status, err := svc.Health(context.Background())
		assert.ErrorIs(t, err, pricingmodel.ErrUnavailable)
		assert.NotEmpty(t, status.Error)
	})
}

func TestNewService_NilMetrics(t *testing.T) {
	model := &mockModel{}
	model.On("Predict", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	svc := NewService(model, nil, nil, logger.Nop())
	assert.NotPanics(t, func() {
		svc.Quote(context.Background(), domain.VehicleTwoWheeler, at("10:00"), at("10:30"))
	})
}
