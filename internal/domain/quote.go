package domain

import "fmt"

// DemandLevel уровень спроса, выводимый из surge-множителя
type DemandLevel string

const (
	DemandNormal   DemandLevel = "normal"
	DemandModerate DemandLevel = "moderate"
	DemandHigh     DemandLevel = "high"
)

// PricingQuote represents a derived (never persisted) pricing result for one exit attempt
type PricingQuote struct {
	VehicleType     VehicleType
	Multiplier      float64
	BaseCharge      float64
	AdjustedCharge  float64
	DurationMinutes float64
	BillableMinutes float64

	// Заполняются только при ответе модели
	HourOfEntry *int
	DayOfWeek   *string

	Fallback bool   // true, если модель недоступна и цена посчитана локально
	Message  string // Пояснение для оператора
}

// IsModelPriced returns true if the quote was priced by the external model
func (q *PricingQuote) IsModelPriced() bool {
	return q != nil && !q.Fallback
}

// IsMinimumApplied returns true if the one-hour minimum raised the billed duration
func (q *PricingQuote) IsMinimumApplied() bool {
	return q.BillableMinutes > q.DurationMinutes
}

// DemandLevel возвращает уровень спроса по множителю
func (q *PricingQuote) DemandLevel() DemandLevel {
	switch {
	case q.Multiplier > HighDemandMultiplier:
		return DemandHigh
	case q.Multiplier > ModerateDemandMultiplier:
		return DemandModerate
	default:
		return DemandNormal
	}
}

// FormatAmount форматирует денежную сумму с двумя знаками после запятой
func FormatAmount(amount float64) string {
	return fmt.Sprintf(AmountFormat, amount)
}
