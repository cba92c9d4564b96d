package exit_vehicle

import "github.com/m04kA/SMC-ParkingDesk/internal/domain"

// SearchRequest модель запроса поиска автомобиля на выезд
type SearchRequest struct {
	TransactionID string // Пусто - создать новую транзакцию
	Registration  string // Госномер в любом регистре
}

// Options настройки сценария выезда
type Options struct {
	RequoteOnExit bool // Пересчитывать цену по времени выезда из бэкенда
}

// VehicleExitedEvent событие о выезде автомобиля
type VehicleExitedEvent struct {
	TransactionID  string  `json:"transactionId"`
	VehicleID      string  `json:"vehicleId"`
	Registration   string  `json:"registration"`
	VehicleType    string  `json:"vehicleType"`
	AssignedSlotID string  `json:"assignedSlotId"`
	TotalAmount    float64 `json:"totalAmount"`
}

func newExitedEvent(tx *domain.ExitTransaction) VehicleExitedEvent {
	bill := tx.Bill
	return VehicleExitedEvent{
		TransactionID:  tx.ID,
		VehicleID:      bill.VehicleID,
		Registration:   bill.Registration,
		VehicleType:    string(bill.VehicleType),
		AssignedSlotID: bill.AssignedSlotID,
		TotalAmount:    bill.TotalAmount,
	}
}

func newJournalEntry(tx *domain.ExitTransaction) *domain.BillingJournalEntry {
	bill := tx.Bill
	entry := &domain.BillingJournalEntry{
		TransactionID:   tx.ID,
		VehicleID:       bill.VehicleID,
		Registration:    bill.Registration,
		VehicleType:     bill.VehicleType,
		TimeIn:          bill.TimeIn,
		TimeOut:         bill.TimeOut,
		BackendBillAmt:  bill.BackendBillAmt,
		TotalAmount:     bill.TotalAmount,
		Requoted:        bill.Requoted,
		BillUpdate:      bill.BillUpdate,
		BillUpdateError: bill.BillUpdateError,
		Multiplier:      domain.FallbackMultiplier,
		Fallback:        true,
	}
	if q := bill.Quote; q != nil {
		entry.Multiplier = q.Multiplier
		entry.BaseCharge = q.BaseCharge
		entry.AdjustedCharge = q.AdjustedCharge
		entry.BillableMinutes = q.BillableMinutes
		entry.Fallback = q.Fallback
	}
	return entry
}
