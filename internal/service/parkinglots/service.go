package parkinglots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	"github.com/m04kA/SMC-ParkingDesk/internal/service/parkinglots/models"
)

// Service сервис управления парковками и этажами
type Service struct {
	backend BackendClient
	logger  Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(backendClient BackendClient, logger Logger) *Service {
	return &Service{
		backend: backendClient,
		logger:  logger,
	}
}

// List возвращает все парковки
func (s *Service) List(ctx context.Context) ([]*domain.ParkingLot, error) {
	resp, err := s.backend.GetParkingLots(ctx)
	if err != nil {
		s.logger.Error("List: failed to get parking lots: %v", err)
		return nil, s.backendError(err)
	}

	lots := make([]*domain.ParkingLot, 0, len(resp))
	for i := range resp {
		lots = append(lots, resp[i].ToDomain())
	}
	return lots, nil
}

// Get возвращает парковку по идентификатору
func (s *Service) Get(ctx context.Context, lotID string) (*domain.ParkingLot, error) {
	lotID = strings.TrimSpace(lotID)
	if lotID == "" {
		return nil, fmt.Errorf("%w: parking lot id is required", ErrInvalidInput)
	}

	resp, err := s.backend.GetParkingLot(ctx, lotID)
	if err != nil {
		s.logger.Warn("Get: failed to get parking lot id=%s: %v", lotID, err)
		return nil, s.backendError(err)
	}
	return resp.ToDomain(), nil
}

// Create создает парковку
func (s *Service) Create(ctx context.Context, req *models.CreateLotRequest) (*domain.ParkingLot, error) {
	if err := validateCreateLot(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("Create: creating parking lot name=%q floors=%d", req.Name, req.TotalFloors)

	resp, err := s.backend.CreateParkingLot(ctx, backend.CreateParkingLotRequest{
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		TotalFloors: req.TotalFloors,
	})
	if err != nil {
		s.logger.Error("Create: backend call failed: %v", err)
		return nil, s.backendError(err)
	}

	lot := resp.ToDomain()
	s.logger.Info("Create: parking lot id=%s created", lot.ID)
	return lot, nil
}

// Floors возвращает этажи парковки, отсортированные по номеру
func (s *Service) Floors(ctx context.Context, lotID string) ([]*domain.Floor, error) {
	lotID = strings.TrimSpace(lotID)
	if lotID == "" {
		return nil, fmt.Errorf("%w: parking lot id is required", ErrInvalidInput)
	}

	resp, err := s.backend.GetFloorsByParkingLot(ctx, lotID)
	if err != nil {
		s.logger.Warn("Floors: failed to get floors of lot=%s: %v", lotID, err)
		return nil, s.backendError(err)
	}

	floors := make([]*domain.Floor, 0, len(resp))
	for i := range resp {
		floors = append(floors, resp[i].ToDomain())
	}
	sort.SliceStable(floors, func(i, j int) bool {
		return floors[i].FloorNo < floors[j].FloorNo
	})
	return floors, nil
}

// AddFloor добавляет этаж с заданной конфигурацией слотов
func (s *Service) AddFloor(ctx context.Context, req *models.AddFloorRequest) (*domain.Floor, error) {
	cfg, err := validateAddFloor(req)
	if err != nil {
		s.logger.Warn("AddFloor: validation failed: %v", err)
		return nil, err
	}

	slotConfiguration := make(map[string]int, len(cfg))
	for t, n := range cfg {
		if n > 0 {
			slotConfiguration[string(t)] = n
		}
	}

	s.logger.Info("AddFloor: lot=%s floor=%d slots=%d", req.ParkingLotID, req.FloorNo, cfg.Total())

	resp, err := s.backend.AddFloor(ctx, backend.AddFloorRequest{
		FloorNo:           req.FloorNo,
		ParkingLotID:      strings.TrimSpace(req.ParkingLotID),
		SlotConfiguration: slotConfiguration,
	})
	if err != nil {
		s.logger.Error("AddFloor: backend call failed for lot=%s: %v", req.ParkingLotID, err)
		return nil, s.backendError(err)
	}
	return resp.ToDomain(), nil
}

// backendError сохраняет исходную ошибку бэкенда, чтобы хендлер мог показать ее сообщение
func (s *Service) backendError(err error) error {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrLotNotFound, err)
	case errors.Is(err, backend.ErrRejected):
		return fmt.Errorf("%w: %w", ErrRejected, err)
	default:
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
}
