package health

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
)

// StatusResponse HTTP response model
type StatusResponse struct {
	Status             string `json:"status"`
	Uptime             string `json:"uptime"`
	ActiveTransactions int    `json:"activeTransactions"`
}

type Handler struct {
	transactions TransactionCounter
	startedAt    time.Time
}

func NewHandler(transactions TransactionCounter) *Handler {
	return &Handler{
		transactions: transactions,
		startedAt:    time.Now(),
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, &StatusResponse{
		Status:             "ok",
		Uptime:             time.Since(h.startedAt).Truncate(time.Second).String(),
		ActiveTransactions: h.transactions.Len(),
	})
}
