package domain

import "fmt"

// SlotStatus represents the occupancy status of a parking slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotOccupied  SlotStatus = "OCCUPIED"
)

// UnknownSlotTypeCode код для типа слота, который не удалось распознать
const UnknownSlotTypeCode = "XX"

// Slot represents a backend-provided snapshot of one parking slot.
// Тип слота использует то же перечисление, что и тип транспорта
type Slot struct {
	ID        string
	Type      VehicleType
	Status    SlotStatus
	VehicleID *string
}

// IsOccupied returns true if a vehicle occupies the slot
func (s *Slot) IsOccupied() bool {
	return s.Status == SlotOccupied
}

// SlotTypeCode возвращает двухбуквенный код типа слота
func SlotTypeCode(t VehicleType) string {
	switch t {
	case VehicleTwoWheeler:
		return "TW"
	case VehicleFourWheeler:
		return "FW"
	case VehicleHeavyVehicle:
		return "HV"
	default:
		return UnknownSlotTypeCode
	}
}

// SlotLabel строит человекочитаемый номер слота вида SLOT-F{этаж}-{код}-{NNN}.
// indexWithinType - позиция слота среди слотов того же типа на этаже (с нуля),
// в порядке, в котором их вернул бэкенд
func SlotLabel(t VehicleType, indexWithinType int, floorNo int) string {
	return fmt.Sprintf("SLOT-F%d-%s-%03d", floorNo, SlotTypeCode(t), indexWithinType+1)
}
