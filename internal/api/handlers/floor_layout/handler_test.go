package floor_layout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	getFloorLayout "github.com/m04kA/SMC-ParkingDesk/internal/usecase/get_floor_layout"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, floorID string) (*domain.FloorLayout, error) {
	args := m.Called(ctx, floorID)
	if v := args.Get(0); v != nil {
		return v.(*domain.FloorLayout), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUseCase) Locate(ctx context.Context, slotID string) (*getFloorLayout.SlotLocation, error) {
	args := m.Called(ctx, slotID)
	if v := args.Get(0); v != nil {
		return v.(*getFloorLayout.SlotLocation), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(uc FloorLayoutUseCase) *mux.Router {
	h := NewHandler(uc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/floors/{floorId}/layout", h.Layout).Methods(http.MethodGet)
	r.HandleFunc("/slots/{slotId}/label", h.SlotLabel).Methods(http.MethodGet)
	return r
}

func TestLayout(t *testing.T) {
	layout := domain.BuildFloorLayout(&domain.Floor{
		ID:      "f-1",
		FloorNo: 1,
		Slots: []domain.Slot{
			{ID: "a", Type: domain.VehicleFourWheeler, Status: domain.SlotOccupied},
			{ID: "b", Type: domain.VehicleTwoWheeler, Status: domain.SlotAvailable},
		},
	})
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, "f-1").Return(layout, nil)

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/floors/f-1/layout", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data LayoutResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data.Groups, 2)
	assert.Equal(t, "TW", env.Data.Groups[0].Code)
	assert.Equal(t, "SLOT-F1-FW-001", env.Data.Groups[1].Slots[0].Label)
	assert.Equal(t, 1, env.Data.Occupied)
}

func TestLayout_NotFound(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, "f-9").Return(nil, getFloorLayout.ErrFloorNotFound)

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/floors/f-9/layout", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSlotLabel(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Locate", mock.Anything, "3f2a9c1d-7b4e").Return(&getFloorLayout.SlotLocation{
		SlotID: "3f2a9c1d-7b4e",
		Label:  "3f2a9c1d",
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slots/3f2a9c1d-7b4e/label", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"slotId":"3f2a9c1d-7b4e","label":"3f2a9c1d","found":false}}`, rec.Body.String())
}
