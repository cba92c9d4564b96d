package parking_lots

import "github.com/m04kA/SMC-ParkingDesk/internal/domain"

// CreateLotRequest HTTP request model
type CreateLotRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	TotalFloors int    `json:"totalFloors"`
}

// AddFloorRequest HTTP request model
type AddFloorRequest struct {
	FloorNo           int            `json:"floorNo"`
	ParkingLotID      string         `json:"parkingLotId"`
	SlotConfiguration map[string]int `json:"slotConfiguration"`
}

// LotResponse HTTP response model
type LotResponse struct {
	ParkingLotID string `json:"parkingLotId"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	TotalFloors  int    `json:"totalFloors"`
}

// FloorResponse HTTP response model
type FloorResponse struct {
	FloorID      string         `json:"floorId"`
	FloorNo      int            `json:"floorNo"`
	ParkingLotID string         `json:"parkingLotId"`
	TotalSlots   int            `json:"totalSlots"`
	SlotCounts   map[string]int `json:"slotCounts"`
}

func lotFromDomain(l *domain.ParkingLot) *LotResponse {
	return &LotResponse{
		ParkingLotID: l.ID,
		Name:         l.Name,
		Address:      l.Address,
		TotalFloors:  l.TotalFloors,
	}
}

func floorFromDomain(f *domain.Floor) *FloorResponse {
	counts := make(map[string]int)
	for _, s := range f.Slots {
		counts[string(s.Type)]++
	}
	return &FloorResponse{
		FloorID:      f.ID,
		FloorNo:      f.FloorNo,
		ParkingLotID: f.ParkingLotID,
		TotalSlots:   len(f.Slots),
		SlotCounts:   counts,
	}
}
