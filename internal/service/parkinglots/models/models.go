package models

// CreateLotRequest запрос на создание парковки
type CreateLotRequest struct {
	Name        string
	Address     string
	TotalFloors int
}

// AddFloorRequest запрос на добавление этажа.
// SlotConfiguration - количество слотов по типу транспорта (TWO_WHEELER, FOUR_WHEELER, HEAVY_VEHICLE)
type AddFloorRequest struct {
	ParkingLotID      string
	FloorNo           int
	SlotConfiguration map[string]int
}
