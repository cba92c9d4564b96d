package domain

// Базовые тарифы за час стоянки (в денежных единицах)
const (
	HourlyRateTwoWheeler   = 20.0
	HourlyRateFourWheeler  = 50.0
	HourlyRateHeavyVehicle = 70.0
)

// Правила тарификации
const (
	MinBillableMinutes = 60.0 // Минимум один час, даже если машина простояла минуту
	MinutesPerHour     = 60.0
	FallbackMultiplier = 1.0
)

// Пороги уровня спроса для отображения surge-множителя
const (
	HighDemandMultiplier     = 1.2
	ModerateDemandMultiplier = 1.0
)

// Ограничения на входные данные
const (
	MinPlateLength        = 8
	MaxPlateLength        = 10
	MaxRegistrationLength = 20
)

// Time format constants
const (
	ModelTimeFormat   = "02-01-2006 15:04"    // DD-MM-YYYY HH:MM для модели ценообразования
	BackendTimeFormat = "2006-01-02T15:04:05" // LocalDateTime бэкенда без зоны
	AmountFormat      = "%.2f"
)
