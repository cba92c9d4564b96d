package floor_layout

import (
	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	getFloorLayout "github.com/m04kA/SMC-ParkingDesk/internal/usecase/get_floor_layout"
)

// LayoutResponse HTTP response model
type LayoutResponse struct {
	FloorID      string          `json:"floorId"`
	FloorNo      int             `json:"floorNo"`
	ParkingLotID string          `json:"parkingLotId"`
	Total        int             `json:"total"`
	Occupied     int             `json:"occupied"`
	Available    int             `json:"available"`
	Groups       []GroupResponse `json:"groups"`
}

// GroupResponse слоты одного типа
type GroupResponse struct {
	SlotType  string         `json:"slotType"`
	Code      string         `json:"code"`
	Occupied  int            `json:"occupied"`
	Available int            `json:"available"`
	Slots     []SlotResponse `json:"slots"`
}

// SlotResponse слот с номером
type SlotResponse struct {
	SlotID           string  `json:"slotId"`
	Label            string  `json:"label"`
	SlotType         string  `json:"slotType"`
	SlotStatus       string  `json:"slotStatus"`
	CurrentVehicleID *string `json:"currentVehicleId,omitempty"`
}

// LocationResponse HTTP response model
type LocationResponse struct {
	SlotID       string `json:"slotId"`
	Label        string `json:"label"`
	Found        bool   `json:"found"`
	ParkingLotID string `json:"parkingLotId,omitempty"`
	FloorID      string `json:"floorId,omitempty"`
	FloorNo      *int   `json:"floorNo,omitempty"`
}

func layoutFromDomain(l *domain.FloorLayout) *LayoutResponse {
	resp := &LayoutResponse{
		FloorID:      l.FloorID,
		FloorNo:      l.FloorNo,
		ParkingLotID: l.ParkingLotID,
		Total:        l.Total,
		Occupied:     l.Occupied,
		Available:    l.Available,
		Groups:       make([]GroupResponse, 0, len(l.Groups)),
	}
	for _, g := range l.Groups {
		group := GroupResponse{
			SlotType:  string(g.Type),
			Code:      g.Code,
			Occupied:  g.Occupied,
			Available: g.Available,
			Slots:     make([]SlotResponse, 0, len(g.Slots)),
		}
		for _, s := range g.Slots {
			group.Slots = append(group.Slots, SlotResponse{
				SlotID:           s.ID,
				Label:            s.Label,
				SlotType:         string(s.Type),
				SlotStatus:       string(s.Status),
				CurrentVehicleID: s.VehicleID,
			})
		}
		resp.Groups = append(resp.Groups, group)
	}
	return resp
}

func locationFromUseCase(l *getFloorLayout.SlotLocation) *LocationResponse {
	resp := &LocationResponse{
		SlotID:       l.SlotID,
		Label:        l.Label,
		Found:        l.Found,
		ParkingLotID: l.ParkingLotID,
		FloorID:      l.FloorID,
	}
	if l.Found {
		floorNo := l.FloorNo
		resp.FloorNo = &floorNo
	}
	return resp
}
