package park_vehicle

// Request модель запроса на въезд
type Request struct {
	VehicleType  string // TWO_WHEELER, FOUR_WHEELER, HEAVY_VEHICLE
	Registration string // Госномер в любом регистре
}

// VehicleParkedEvent событие о въезде автомобиля
type VehicleParkedEvent struct {
	VehicleID      string `json:"vehicleId"`
	Registration   string `json:"registration"`
	VehicleType    string `json:"vehicleType"`
	AssignedSlotID string `json:"assignedSlotId"`
}
