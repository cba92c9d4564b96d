package pricing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/pricingmodel"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/pricing/models"
	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
)

const msgModelPriced = "Pricing calculated successfully"

// Service калькулятор цены стоянки с динамическим множителем
type Service struct {
	model    ModelClient
	location *time.Location
	metrics  Metrics
	logger   Logger
	now      func() time.Time
}

// NewService создает новый экземпляр калькулятора.
// location - зона, в которой модель ожидает время (nil - локальная)
func NewService(model ModelClient, location *time.Location, m Metrics, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	return &Service{
		model:    model,
		location: location,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Quote считает цену стоянки. Никогда не возвращает ошибку:
// при любой проблеме с моделью отдается локальная котировка с множителем 1.0
func (s *Service) Quote(ctx context.Context, vehicleType domain.VehicleType, entry, exit time.Time) *domain.PricingQuote {
	duration := DurationMinutes(entry, exit)

	req := pricingmodel.PredictRequest{
		VehicleType: vehicleType.PricingLabel(),
		TimeIn:      FormatModelTime(entry, s.location),
		TimeOut:     FormatModelTime(exit, s.location),
		PaidAmt:     int64(math.Round(BaseCharge(vehicleType, duration))),
	}

	prediction, err := s.model.Predict(ctx, req)
	if err != nil {
		s.logger.Warn("Quote: pricing model failed for type=%s, using base pricing: %v", vehicleType, err)
		s.metrics.IncPricingQuote(metrics.QuoteFallback)
		return FallbackQuote(vehicleType, entry, exit, err.Error())
	}

	base := BaseCharge(vehicleType, prediction.DurationMinutes)
	quote := &domain.PricingQuote{
		VehicleType:     vehicleType,
		Multiplier:      prediction.Multiplier,
		BaseCharge:      base,
		AdjustedCharge:  base * prediction.Multiplier,
		DurationMinutes: prediction.DurationMinutes,
		BillableMinutes: BillableMinutes(prediction.DurationMinutes),
		HourOfEntry:     prediction.HourOfEntry,
		DayOfWeek:       prediction.DayOfWeek,
		Message:         msgModelPriced,
	}

	s.metrics.IncPricingQuote(metrics.QuoteModel)
	s.logger.Info("Quote: type=%s duration=%.1fmin multiplier=%.3f adjusted=%s",
		vehicleType, quote.DurationMinutes, quote.Multiplier, domain.FormatAmount(quote.AdjustedCharge))
	return quote
}

// QuoteNow считает цену для стоянки, которая заканчивается сейчас
func (s *Service) QuoteNow(ctx context.Context, vehicleType domain.VehicleType, entry time.Time) (*domain.PricingQuote, time.Time) {
	exit := s.now()
	return s.Quote(ctx, vehicleType, entry, exit), exit
}

// Health опрашивает модель и обновляет метрику доступности
func (s *Service) Health(ctx context.Context) (*models.HealthStatus, error) {
	status := &models.HealthStatus{CheckedAt: s.now()}

	resp, err := s.model.Health(ctx)
	if err != nil {
		s.metrics.SetPricingModelUp(false)
		status.Error = err.Error()
		s.logger.Warn("Health: pricing model unreachable: %v", err)
		return status, err
	}

	status.Healthy = resp.Healthy()
	status.ModelLoaded = resp.ModelLoaded
	s.metrics.SetPricingModelUp(status.Healthy)

	if !status.Healthy {
		status.Error = fmt.Sprintf("status=%q", resp.Status)
		s.logger.Warn("Health: pricing model reported status=%q model_loaded=%t", resp.Status, resp.ModelLoaded)
		return status, fmt.Errorf("%w: status=%q", ErrModelUnhealthy, resp.Status)
	}
	return status, nil
}
