package parking_lots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots/models"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context) ([]*domain.ParkingLot, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Get(ctx context.Context, lotID string) (*domain.ParkingLot, error) {
	args := m.Called(ctx, lotID)
	if v := args.Get(0); v != nil {
		return v.(*domain.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req *models.CreateLotRequest) (*domain.ParkingLot, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.ParkingLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Floors(ctx context.Context, lotID string) ([]*domain.Floor, error) {
	args := m.Called(ctx, lotID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Floor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) AddFloor(ctx context.Context, req *models.AddFloorRequest) (*domain.Floor, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*domain.Floor), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(s ParkingLotService) *mux.Router {
	h := NewHandler(s, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/parking-lots", h.List).Methods(http.MethodGet)
	r.HandleFunc("/parking-lots", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/parking-lots/floors", h.AddFloor).Methods(http.MethodPost)
	r.HandleFunc("/parking-lots/{lotId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/parking-lots/{lotId}/floors", h.Floors).Methods(http.MethodGet)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestList(t *testing.T) {
	s := &mockService{}
	s.On("List", mock.Anything).Return([]*domain.ParkingLot{{ID: "lot-1", Name: "Central", TotalFloors: 2}}, nil)

	rec := serve(newRouter(s), http.MethodGet, "/parking-lots", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []LotResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "lot-1", env.Data[0].ParkingLotID)
}

func TestFloors_SlotCounts(t *testing.T) {
	s := &mockService{}
	s.On("Floors", mock.Anything, "lot-1").Return([]*domain.Floor{{
		ID:      "f-0",
		FloorNo: 0,
		Slots: []domain.Slot{
			{ID: "a", Type: domain.VehicleTwoWheeler},
			{ID: "b", Type: domain.VehicleTwoWheeler},
			{ID: "c", Type: domain.VehicleHeavyVehicle},
		},
	}}, nil)

	rec := serve(newRouter(s), http.MethodGet, "/parking-lots/lot-1/floors", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data []FloorResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 3, env.Data[0].TotalSlots)
	assert.Equal(t, 2, env.Data[0].SlotCounts["TWO_WHEELER"])
}

func TestCreateAndAddFloor(t *testing.T) {
	s := &mockService{}
	s.On("Create", mock.Anything, &models.CreateLotRequest{Name: "Central", Address: "MG Road", TotalFloors: 2}).
		Return(&domain.ParkingLot{ID: "lot-1", Name: "Central", TotalFloors: 2}, nil)
	s.On("AddFloor", mock.Anything, &models.AddFloorRequest{
		ParkingLotID:      "lot-1",
		FloorNo:           1,
		SlotConfiguration: map[string]int{"FOUR_WHEELER": 20},
	}).Return(&domain.Floor{ID: "f-1", FloorNo: 1, ParkingLotID: "lot-1"}, nil)

	r := newRouter(s)

	rec := serve(r, http.MethodPost, "/parking-lots", `{"name":"Central","address":"MG Road","totalFloors":2}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(r, http.MethodPost, "/parking-lots/floors", `{"floorNo":1,"parkingLotId":"lot-1","slotConfiguration":{"FOUR_WHEELER":20}}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestErrors(t *testing.T) {
	notFound := fmt.Errorf("%w: %w", parkinglots.ErrLotNotFound,
		&backend.APIError{Kind: backend.ErrNotFound, Message: "Parking lot not found"})

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", notFound, http.StatusNotFound},
		{"invalid", parkinglots.ErrInvalidInput, http.StatusBadRequest},
		{"rejected", parkinglots.ErrRejected, http.StatusConflict},
		{"unavailable", parkinglots.ErrBackendUnavailable, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockService{}
			s.On("Get", mock.Anything, "lot-9").Return(nil, tt.err)

			rec := serve(newRouter(s), http.MethodGet, "/parking-lots/lot-9", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
