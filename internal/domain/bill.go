package domain

import "time"

// BillUpdateStatus результат попытки записать итоговую сумму в бэкенд
type BillUpdateStatus string

const (
	BillUpdateUpdated BillUpdateStatus = "updated"
	BillUpdateFailed  BillUpdateStatus = "failed"
	BillUpdateSkipped BillUpdateStatus = "skipped"
)

// ExitBill represents the outcome of a completed exit
type ExitBill struct {
	VehicleID      string
	Registration   string
	VehicleType    VehicleType
	AssignedSlotID string
	TimeIn         time.Time
	TimeOut        time.Time

	BackendBillAmt float64       // Сумма, которую вернул бэкенд при выезде
	TotalAmount    float64       // Сумма, показанная оператору
	Quote          *PricingQuote // Котировка, на основе которой посчитан TotalAmount (может быть nil)
	Requoted       bool          // Котировка пересчитана по авторитетному времени выезда

	BillUpdate      BillUpdateStatus
	BillUpdateError *string
}

// IsDynamicallyPriced returns true if the total comes from a model-priced quote
func (b *ExitBill) IsDynamicallyPriced() bool {
	return b.Quote.IsModelPriced()
}

// BillingJournalEntry запись журнала выездов
type BillingJournalEntry struct {
	ID              int64
	TransactionID   string
	VehicleID       string
	Registration    string
	VehicleType     VehicleType
	TimeIn          time.Time
	TimeOut         time.Time
	BackendBillAmt  float64
	TotalAmount     float64
	Multiplier      float64
	BaseCharge      float64
	AdjustedCharge  float64
	BillableMinutes float64
	Fallback        bool
	Requoted        bool
	BillUpdate      BillUpdateStatus
	BillUpdateError *string
	CreatedAt       time.Time
}
