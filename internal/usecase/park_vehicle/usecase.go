package park_vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/events"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

// UseCase use case въезда автомобиля
type UseCase struct {
	backend BackendClient
	events  EventPublisher
	logger  Logger
}

// NewUseCase создает новый экземпляр use case. publisher может быть nil
func NewUseCase(backendClient BackendClient, publisher EventPublisher, logger Logger) *UseCase {
	return &UseCase{
		backend: backendClient,
		events:  publisher,
		logger:  logger,
	}
}

// Execute регистрирует въезд. Бэкенд сам выбирает слот.
// Ошибки бэкенда возвращаются вместе с нормализованным сообщением (backend.UserMessage)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.ParkingSession, error) {
	vehicleType, registration, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ParkVehicle: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ParkVehicle: registration=%s type=%s", registration, vehicleType)

	vehicle, err := uc.backend.ParkVehicle(ctx, string(vehicleType), registration)
	if err != nil {
		if errors.Is(err, backend.ErrRejected) || errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("ParkVehicle: backend rejected registration=%s: %v", registration, err)
			return nil, fmt.Errorf("%w: %w", ErrRejected, err)
		}
		uc.logger.Error("ParkVehicle: backend call failed for registration=%s: %v", registration, err)
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	session := vehicle.ToDomain()
	if session.Registration == "" {
		session.Registration = registration
	}
	if session.VehicleType == "" {
		session.VehicleType = vehicleType
	}

	if uc.events != nil {
		uc.events.Publish(events.TypeVehicleParked, VehicleParkedEvent{
			VehicleID:      session.VehicleID,
			Registration:   session.Registration,
			VehicleType:    string(session.VehicleType),
			AssignedSlotID: session.AssignedSlotID,
		})
	}

	uc.logger.Info("ParkVehicle: vehicle=%s parked at slot=%s", session.VehicleID, session.AssignedSlotID)
	return session, nil
}
