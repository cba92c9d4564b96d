package models

import "time"

// HealthStatus состояние модели ценообразования
type HealthStatus struct {
	Healthy     bool
	ModelLoaded bool
	CheckedAt   time.Time
	Error       string
}
