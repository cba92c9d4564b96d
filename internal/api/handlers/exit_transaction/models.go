package exit_transaction

import (
	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// SearchRequest HTTP request model
type SearchRequest struct {
	TransactionID string `json:"transactionId,omitempty"`
	Registration  string `json:"registration"`
}

// TransactionResponse HTTP response model
type TransactionResponse struct {
	TransactionID string                `json:"transactionId"`
	State         string                `json:"state"`
	Registration  string                `json:"registration,omitempty"`
	Session       *handlers.SessionView `json:"session,omitempty"`
	Quote         *handlers.QuoteView   `json:"quote,omitempty"`
	QuotedAt      *string               `json:"quotedAt,omitempty"`
	Bill          *BillResponse         `json:"bill,omitempty"`
	Error         string                `json:"error,omitempty"`
	FailedStep    string                `json:"failedStep,omitempty"`
	CreatedAt     string                `json:"createdAt"`
	UpdatedAt     string                `json:"updatedAt"`
}

// BillResponse итог выезда
type BillResponse struct {
	VehicleID            string              `json:"vehicleId"`
	Registration         string              `json:"registration"`
	VehicleType          string              `json:"vehicleType"`
	AssignedSlotID       string              `json:"assignedSlotId"`
	TimeIn               string              `json:"timeIn"`
	TimeOut              string              `json:"timeOut"`
	BackendBillAmt       float64             `json:"backendBillAmt"`
	TotalAmount          float64             `json:"totalAmount"`
	TotalAmountFormatted string              `json:"totalAmountFormatted"`
	DynamicPricing       bool                `json:"dynamicPricing"`
	Requoted             bool                `json:"requoted"`
	Quote                *handlers.QuoteView `json:"quote,omitempty"`
	BillUpdate           string              `json:"billUpdate"`
	BillUpdateError      *string             `json:"billUpdateError,omitempty"`
}

// FromDomain конвертирует транзакцию в HTTP response
func FromDomain(tx *domain.ExitTransaction) *TransactionResponse {
	if tx == nil {
		return nil
	}
	resp := &TransactionResponse{
		TransactionID: tx.ID,
		State:         string(tx.State),
		Registration:  tx.Registration,
		Session:       handlers.NewSessionView(tx.Session),
		Quote:         handlers.NewQuoteView(tx.Quote),
		QuotedAt:      handlers.FormatTimePtr(tx.QuotedAt),
		Error:         tx.Error,
		FailedStep:    string(tx.FailedStep),
		CreatedAt:     handlers.FormatTime(tx.CreatedAt),
		UpdatedAt:     handlers.FormatTime(tx.UpdatedAt),
	}
	if b := tx.Bill; b != nil {
		resp.Bill = &BillResponse{
			VehicleID:            b.VehicleID,
			Registration:         b.Registration,
			VehicleType:          string(b.VehicleType),
			AssignedSlotID:       b.AssignedSlotID,
			TimeIn:               handlers.FormatTime(b.TimeIn),
			TimeOut:              handlers.FormatTime(b.TimeOut),
			BackendBillAmt:       b.BackendBillAmt,
			TotalAmount:          b.TotalAmount,
			TotalAmountFormatted: domain.FormatAmount(b.TotalAmount),
			DynamicPricing:       b.IsDynamicallyPriced(),
			Requoted:             b.Requoted,
			Quote:                handlers.NewQuoteView(b.Quote),
			BillUpdate:           string(b.BillUpdate),
			BillUpdateError:      b.BillUpdateError,
		}
	}
	return resp
}
