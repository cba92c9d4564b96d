package get_floor_layout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
)

// UseCase use case сетки слотов этажа
type UseCase struct {
	backend BackendClient
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(backendClient BackendClient, logger Logger) *UseCase {
	return &UseCase{
		backend: backendClient,
		logger:  logger,
	}
}

// Execute загружает этаж и строит сгруппированную по типам сетку с номерами слотов
func (uc *UseCase) Execute(ctx context.Context, floorID string) (*domain.FloorLayout, error) {
	floorID = strings.TrimSpace(floorID)
	if floorID == "" {
		return nil, fmt.Errorf("%w: floor id is required", ErrInvalidInput)
	}

	resp, err := uc.backend.GetFloor(ctx, floorID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("GetFloorLayout: floor=%s not found", floorID)
			return nil, fmt.Errorf("%w: %w", ErrFloorNotFound, err)
		}
		uc.logger.Error("GetFloorLayout: failed to load floor=%s: %v", floorID, err)
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	layout := domain.BuildFloorLayout(resp.ToDomain())
	uc.logger.Info("GetFloorLayout: floor=%s total=%d occupied=%d", floorID, layout.Total, layout.Occupied)
	return layout, nil
}

// Locate ищет слот по всем парковкам и этажам и возвращает его номер.
// Если слот не найден или бэкенд недоступен, номер заменяется первыми 8 символами идентификатора
func (uc *UseCase) Locate(ctx context.Context, slotID string) (*SlotLocation, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}

	fallback := &SlotLocation{SlotID: slotID, Label: domain.ShortSlotID(slotID)}

	lots, err := uc.backend.GetParkingLots(ctx)
	if err != nil {
		uc.logger.Warn("LocateSlot: failed to list parking lots: %v", err)
		return fallback, nil
	}

	for _, lot := range lots {
		lotID := string(lot.ParkingLotID)
		floors, err := uc.backend.GetFloorsByParkingLot(ctx, lotID)
		if err != nil {
			uc.logger.Warn("LocateSlot: failed to list floors of lot=%s: %v", lotID, err)
			continue
		}

		for i := range floors {
			floor := floors[i].ToDomain()
			if len(floor.Slots) == 0 {
				detail, err := uc.backend.GetFloor(ctx, floor.ID)
				if err != nil {
					uc.logger.Warn("LocateSlot: failed to load floor=%s: %v", floor.ID, err)
					continue
				}
				floor = detail.ToDomain()
			}

			layout := domain.BuildFloorLayout(floor)
			if slot, ok := layout.Find(slotID); ok {
				return &SlotLocation{
					SlotID:       slotID,
					Label:        slot.Label,
					Found:        true,
					ParkingLotID: lotID,
					FloorID:      floor.ID,
					FloorNo:      floor.FloorNo,
				}, nil
			}
		}
	}

	uc.logger.Info("LocateSlot: slot=%s not found, using short id", slotID)
	return fallback, nil
}
