package park_vehicle

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

func validateRequest(req *Request) (domain.VehicleType, string, error) {
	vehicleType, ok := domain.ParseVehicleType(req.VehicleType)
	if !ok {
		return "", "", fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, req.VehicleType)
	}

	registration := domain.NormalizeRegistration(req.Registration)
	if registration == "" {
		return "", "", fmt.Errorf("%w: vehicle registration is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(registration) > domain.MaxRegistrationLength {
		return "", "", fmt.Errorf("%w: vehicle registration is longer than %d characters", ErrInvalidInput, domain.MaxRegistrationLength)
	}

	return vehicleType, registration, nil
}
