package billing_journal

import (
	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// EntryResponse HTTP response model
type EntryResponse struct {
	ID                   int64   `json:"id"`
	TransactionID        string  `json:"transactionId"`
	VehicleID            string  `json:"vehicleId"`
	Registration         string  `json:"registration"`
	VehicleType          string  `json:"vehicleType"`
	TimeIn               string  `json:"timeIn"`
	TimeOut              string  `json:"timeOut"`
	BackendBillAmt       float64 `json:"backendBillAmt"`
	TotalAmount          float64 `json:"totalAmount"`
	TotalAmountFormatted string  `json:"totalAmountFormatted"`
	Multiplier           float64 `json:"multiplier"`
	BaseCharge           float64 `json:"baseCharge"`
	AdjustedCharge       float64 `json:"adjustedCharge"`
	BillableMinutes      float64 `json:"billableMinutes"`
	Fallback             bool    `json:"fallback"`
	Requoted             bool    `json:"requoted"`
	BillUpdate           string  `json:"billUpdate"`
	BillUpdateError      *string `json:"billUpdateError,omitempty"`
	CreatedAt            string  `json:"createdAt"`
}

func fromDomain(e *domain.BillingJournalEntry) EntryResponse {
	return EntryResponse{
		ID:                   e.ID,
		TransactionID:        e.TransactionID,
		VehicleID:            e.VehicleID,
		Registration:         e.Registration,
		VehicleType:          string(e.VehicleType),
		TimeIn:               handlers.FormatTime(e.TimeIn),
		TimeOut:              handlers.FormatTime(e.TimeOut),
		BackendBillAmt:       e.BackendBillAmt,
		TotalAmount:          e.TotalAmount,
		TotalAmountFormatted: domain.FormatAmount(e.TotalAmount),
		Multiplier:           e.Multiplier,
		BaseCharge:           e.BaseCharge,
		AdjustedCharge:       e.AdjustedCharge,
		BillableMinutes:      e.BillableMinutes,
		Fallback:             e.Fallback,
		Requoted:             e.Requoted,
		BillUpdate:           string(e.BillUpdate),
		BillUpdateError:      e.BillUpdateError,
		CreatedAt:            handlers.FormatTime(e.CreatedAt),
	}
}
