package pricingmodel

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// PredictRequest тело POST /predict
type PredictRequest struct {
	VehicleType string `json:"vehicleType"` // twoWheeler, fourWheeler, heavyVehicle
	TimeIn      string `json:"timeIn"`      // DD-MM-YYYY HH:MM
	TimeOut     string `json:"timeOut"`     // DD-MM-YYYY HH:MM
	PaidAmt     int64  `json:"paidAmt"`     // Округленная базовая сумма
}

// Prediction ответ модели
type Prediction struct {
	Multiplier      float64 `json:"multiplier"`
	DurationMinutes float64 `json:"duration_minutes"`
	HourOfEntry     *int    `json:"hour_of_entry,omitempty"`
	DayOfWeek       *string `json:"day_of_week,omitempty"`
}

// predictionPayload сырой ответ: поля могут отсутствовать, день недели бывает числом
type predictionPayload struct {
	Multiplier      *float64        `json:"multiplier"`
	DurationMinutes *float64        `json:"duration_minutes"`
	HourOfEntry     *float64        `json:"hour_of_entry"`
	DayOfWeek       json.RawMessage `json:"day_of_week"`
}

func (p *predictionPayload) dayOfWeek() *string {
	raw := bytes.TrimSpace(p.DayOfWeek)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		s = n.String()
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return &s
		}
	}
	return nil
}

// HealthStatus ответ GET /health
type HealthStatus struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Healthy сообщает, что модель готова отвечать
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "ok"
}

// errorResponse тело ошибки модели
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func (e errorResponse) message() string {
	raw := bytes.TrimSpace(e.Detail)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
