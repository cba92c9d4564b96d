package parkinglots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots/models"
)

const (
	maxLotNameLength = 100
	maxTotalFloors   = 100
)

func validateCreateLot(req *models.CreateLotRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > maxLotNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, maxLotNameLength)
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if req.TotalFloors < 1 || req.TotalFloors > maxTotalFloors {
		return fmt.Errorf("%w: totalFloors must be between 1 and %d", ErrInvalidInput, maxTotalFloors)
	}
	return nil
}

// validateAddFloor проверяет запрос и возвращает конфигурацию слотов с нормализованными типами
func validateAddFloor(req *models.AddFloorRequest) (domain.SlotConfiguration, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ParkingLotID) == "" {
		return nil, fmt.Errorf("%w: parkingLotId is required", ErrInvalidInput)
	}
	if req.FloorNo < 0 {
		return nil, fmt.Errorf("%w: floorNo must not be negative", ErrInvalidInput)
	}

	cfg := make(domain.SlotConfiguration, len(req.SlotConfiguration))
	for raw, count := range req.SlotConfiguration {
		t, ok := domain.ParseVehicleType(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown slot type %q", ErrInvalidInput, raw)
		}
		if count < 0 {
			return nil, fmt.Errorf("%w: slot count for %s must not be negative", ErrInvalidInput, t)
		}
		cfg[t] += count
	}
	if cfg.Total() == 0 {
		return nil, fmt.Errorf("%w: floor must have at least one slot", ErrInvalidInput)
	}
	return cfg, nil
}
