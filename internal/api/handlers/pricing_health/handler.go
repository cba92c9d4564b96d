package pricing_health

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
)

const (
	msgModelHealthy   = "модель ценообразования доступна"
	msgModelUnhealthy = "модель ценообразования недоступна, применяются базовые тарифы"
)

type Handler struct {
	cache   StatusCache
	checker HealthChecker
	logger  Logger
}

func NewHandler(cache StatusCache, checker HealthChecker, logger Logger) *Handler {
	return &Handler{
		cache:   cache,
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/pricing/health
// Отдает результат последней фоновой проверки; до первой проверки опрашивает модель сам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := h.cache.Status()
	if status == nil {
		status, _ = h.checker.Health(r.Context())
	}

	resp := fromStatus(status)
	if !status.Healthy {
		h.logger.Warn("GET /pricing/health - Pricing model unhealthy: %s", status.Error)
		handlers.RespondErrorWithData(w, http.StatusServiceUnavailable, msgModelUnhealthy, resp)
		return
	}

	handlers.RespondJSONWithMessage(w, http.StatusOK, resp, msgModelHealthy)
}
