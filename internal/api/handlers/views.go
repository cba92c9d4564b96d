package handlers

import (
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// QuoteView котировка в ответах API. Суммы дублируются строкой с двумя знаками
type QuoteView struct {
	VehicleType             string  `json:"vehicleType"`
	Multiplier              float64 `json:"multiplier"`
	BaseCharge              float64 `json:"baseCharge"`
	BaseChargeFormatted     string  `json:"baseChargeFormatted"`
	AdjustedCharge          float64 `json:"adjustedCharge"`
	AdjustedChargeFormatted string  `json:"adjustedChargeFormatted"`
	DurationMinutes         float64 `json:"durationMinutes"`
	BillableMinutes         float64 `json:"billableMinutes"`
	MinimumApplied          bool    `json:"minimumApplied"`
	DemandLevel             string  `json:"demandLevel"`
	HourOfEntry             *int    `json:"hourOfEntry,omitempty"`
	DayOfWeek               *string `json:"dayOfWeek,omitempty"`
	Fallback                bool    `json:"fallback"`
	Message                 string  `json:"message,omitempty"`
}

// NewQuoteView возвращает nil для nil котировки
func NewQuoteView(q *domain.PricingQuote) *QuoteView {
	if q == nil {
		return nil
	}
	return &QuoteView{
		VehicleType:             string(q.VehicleType),
		Multiplier:              q.Multiplier,
		BaseCharge:              q.BaseCharge,
		BaseChargeFormatted:     domain.FormatAmount(q.BaseCharge),
		AdjustedCharge:          q.AdjustedCharge,
		AdjustedChargeFormatted: domain.FormatAmount(q.AdjustedCharge),
		DurationMinutes:         q.DurationMinutes,
		BillableMinutes:         q.BillableMinutes,
		MinimumApplied:          q.IsMinimumApplied(),
		DemandLevel:             string(q.DemandLevel()),
		HourOfEntry:             q.HourOfEntry,
		DayOfWeek:               q.DayOfWeek,
		Fallback:                q.Fallback,
		Message:                 q.Message,
	}
}

// SessionView стоянка в ответах API
type SessionView struct {
	VehicleID      string   `json:"vehicleId"`
	Registration   string   `json:"registration"`
	VehicleType    string   `json:"vehicleType"`
	TimeIn         string   `json:"timeIn"`
	TimeOut        *string  `json:"timeOut,omitempty"`
	AssignedSlotID string   `json:"assignedSlotId"`
	Status         string   `json:"status"`
	BillAmt        *float64 `json:"billAmt,omitempty"`
}

// NewSessionView возвращает nil для nil сессии
func NewSessionView(s *domain.ParkingSession) *SessionView {
	if s == nil {
		return nil
	}
	return &SessionView{
		VehicleID:      s.VehicleID,
		Registration:   s.Registration,
		VehicleType:    string(s.VehicleType),
		TimeIn:         FormatTime(s.TimeIn),
		TimeOut:        FormatTimePtr(s.TimeOut),
		AssignedSlotID: s.AssignedSlotID,
		Status:         string(s.Status),
		BillAmt:        s.BillAmt,
	}
}

// FormatTime форматирует время в RFC3339
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
