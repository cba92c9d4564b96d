package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/service/pricing/models"
)

// PricingHealthProbe периодически опрашивает модель ценообразования и хранит последний результат
type PricingHealthProbe struct {
	checker HealthChecker
	timeout time.Duration
	logger  Logger

	mu   sync.RWMutex
	last *models.HealthStatus
}

// NewPricingHealthProbe создает пробу. timeout ограничивает один опрос
func NewPricingHealthProbe(checker HealthChecker, timeout time.Duration, logger Logger) *PricingHealthProbe {
	return &PricingHealthProbe{
		checker: checker,
		timeout: timeout,
		logger:  logger,
	}
}

func (p *PricingHealthProbe) Name() string {
	return "pricing_health"
}

// Run выполняет один опрос
func (p *PricingHealthProbe) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.checker.Health(ctx)
	if status == nil {
		status = &models.HealthStatus{CheckedAt: time.Now()}
		if err != nil {
			status.Error = err.Error()
		}
	}

	p.mu.Lock()
	prev := p.last
	p.last = status
	p.mu.Unlock()

	if prev == nil || prev.Healthy != status.Healthy {
		p.logger.Info("PricingHealthProbe: pricing model healthy=%t", status.Healthy)
	}
}

// Status возвращает копию последнего результата или nil, если опросов еще не было
func (p *PricingHealthProbe) Status() *models.HealthStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return nil
	}
	status := *p.last
	return &status
}
