package billing_journal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/billing"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/billing/models"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Journal(ctx context.Context, q *models.JournalQuery) ([]*domain.BillingJournalEntry, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]*domain.BillingJournalEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	s := &mockService{}
	s.On("Journal", mock.Anything, &models.JournalQuery{Registration: "KA01AB1234", Limit: 5}).
		Return([]*domain.BillingJournalEntry{{
			ID:           7,
			Registration: "KA01AB1234",
			TotalAmount:  44,
			BillUpdate:   domain.BillUpdateUpdated,
			CreatedAt:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		}}, nil)

	rec := get(NewHandler(s, logger.Nop()), "/api/v1/billing/journal?registration=KA01AB1234&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []EntryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "44.00", env.Data[0].TotalAmountFormatted)
	assert.Equal(t, "updated", env.Data[0].BillUpdate)
}

func TestHandle_Errors(t *testing.T) {
	rec := get(NewHandler(&mockService{}, logger.Nop()), "/api/v1/billing/journal?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s := &mockService{}
	s.On("Journal", mock.Anything, mock.Anything).Return(nil, billing.ErrJournalDisabled)
	rec = get(NewHandler(s, logger.Nop()), "/api/v1/billing/journal")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
