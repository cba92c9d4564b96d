package pricing_health

import (
	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/pricing/models"
)

// HealthResponse HTTP response model
type HealthResponse struct {
	Healthy     bool   `json:"healthy"`
	ModelLoaded bool   `json:"modelLoaded"`
	CheckedAt   string `json:"checkedAt"`
	Error       string `json:"error,omitempty"`
}

func fromStatus(s *models.HealthStatus) *HealthResponse {
	return &HealthResponse{
		Healthy:     s.Healthy,
		ModelLoaded: s.ModelLoaded,
		CheckedAt:   handlers.FormatTime(s.CheckedAt),
		Error:       s.Error,
	}
}
