package park_vehicle

// ParkVehicleRequest HTTP request model
type ParkVehicleRequest struct {
	VehicleType         string `json:"vehicleType"`
	VehicleRegistration string `json:"vehicleRegistration"`
}
