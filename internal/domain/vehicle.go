package domain

import (
	"strings"
	"unicode"
)

// VehicleType represents the class of a vehicle (and of a slot that fits it)
type VehicleType string

const (
	VehicleTwoWheeler   VehicleType = "TWO_WHEELER"
	VehicleFourWheeler  VehicleType = "FOUR_WHEELER"
	VehicleHeavyVehicle VehicleType = "HEAVY_VEHICLE"
)

// VehicleTypes список поддерживаемых типов в порядке отображения
var VehicleTypes = []VehicleType{
	VehicleTwoWheeler,
	VehicleFourWheeler,
	VehicleHeavyVehicle,
}

// IsValid returns true if the vehicle type is one of the known types
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTwoWheeler, VehicleFourWheeler, VehicleHeavyVehicle:
		return true
	default:
		return false
	}
}

// HourlyRate возвращает базовый тариф за час
// Неизвестный тип тарифицируется как легковой автомобиль
func (t VehicleType) HourlyRate() float64 {
	switch t {
	case VehicleTwoWheeler:
		return HourlyRateTwoWheeler
	case VehicleHeavyVehicle:
		return HourlyRateHeavyVehicle
	default:
		return HourlyRateFourWheeler
	}
}

// PricingLabel возвращает название типа в формате модели ценообразования
func (t VehicleType) PricingLabel() string {
	switch t {
	case VehicleTwoWheeler:
		return "twoWheeler"
	case VehicleHeavyVehicle:
		return "heavyVehicle"
	default:
		return "fourWheeler"
	}
}

// ParseVehicleType приводит строку к VehicleType (регистр и пробелы по краям не важны)
func ParseVehicleType(s string) (VehicleType, bool) {
	t := VehicleType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// NormalizeRegistration приводит госномер к каноническому виду:
// верхний регистр, без пробельных символов
func NormalizeRegistration(registration string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, registration)
}
