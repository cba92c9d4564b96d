package domain

// ParkingLot represents a parking lot managed by the backend
type ParkingLot struct {
	ID          string
	Name        string
	Address     string
	TotalFloors int
}

// Floor represents one floor of a parking lot with its slot snapshot
type Floor struct {
	ID           string
	FloorNo      int
	ParkingLotID string
	Slots        []Slot
}

// SlotConfiguration количество слотов каждого типа при добавлении этажа
type SlotConfiguration map[VehicleType]int

// Total возвращает общее количество слотов
func (c SlotConfiguration) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
