package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// Envelope единый формат ответа {success, data, message}
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// FlexString строка, которая в JSON может прийти числом (идентификаторы бэкенда)
type FlexString string

// UnmarshalJSON принимает строку, число или null
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*s = FlexString(num.String())
	return nil
}

// backendTimeLayouts форматы времени, которые встречаются в ответах бэкенда
var backendTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	domain.BackendTimeFormat,
	"2006-01-02 15:04:05",
}

// Timestamp время из ответа бэкенда.
// Бэкенд отдает LocalDateTime без зоны - такие значения трактуются как локальное время
type Timestamp struct {
	time.Time
}

// UnmarshalJSON принимает ISO строку (с зоной или без) или epoch в миллисекундах
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if len(data) > 0 && data[0] != '"' {
		millis, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("timestamp: %w", err)
		}
		t.Time = time.UnixMilli(millis)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON отдает время в RFC3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// ParseTime разбирает время в одном из форматов бэкенда
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range backendTimeLayouts {
		var (
			parsed time.Time
			err    error
		)
		if layout == time.RFC3339Nano {
			parsed, err = time.Parse(layout, raw)
		} else {
			parsed, err = time.ParseInLocation(layout, raw, time.Local)
		}
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp: unsupported format %q", raw)
}

// ParkVehicleRequest тело POST /parking/entry
type ParkVehicleRequest struct {
	VehicleType         string `json:"vehicleType"`
	VehicleRegistration string `json:"vehicleRegistration"`
}

// UpdateBillRequest тело PUT /parking/bill/{vehicleId}
type UpdateBillRequest struct {
	BillAmt        float64         `json:"billAmt"`
	PricingDetails *PricingDetails `json:"pricingDetails,omitempty"`
}

// PricingDetails детализация динамической цены, передаваемая вместе с суммой
type PricingDetails struct {
	Multiplier      float64 `json:"multiplier"`
	BaseCharge      float64 `json:"baseCharge"`
	AdjustedCharge  float64 `json:"adjustedCharge"`
	DurationMinutes float64 `json:"durationMinutes"`
	BillableMinutes float64 `json:"billableMinutes"`
	HourOfEntry     *int    `json:"hourOfEntry,omitempty"`
	DayOfWeek       *string `json:"dayOfWeek,omitempty"`
	VehicleType     string  `json:"vehicleType"`
	Fallback        bool    `json:"fallback,omitempty"`
}

// NewPricingDetails собирает детализацию из котировки
func NewPricingDetails(q *domain.PricingQuote) *PricingDetails {
	if q == nil {
		return nil
	}
	return &PricingDetails{
		Multiplier:      q.Multiplier,
		BaseCharge:      q.BaseCharge,
		AdjustedCharge:  q.AdjustedCharge,
		DurationMinutes: q.DurationMinutes,
		BillableMinutes: q.BillableMinutes,
		HourOfEntry:     q.HourOfEntry,
		DayOfWeek:       q.DayOfWeek,
		VehicleType:     string(q.VehicleType),
		Fallback:        q.Fallback,
	}
}

// VehicleResponse запись о сессии стоянки
type VehicleResponse struct {
	VehicleID           FlexString `json:"vehicleId"`
	VehicleRegistration string     `json:"vehicleRegistration"`
	VehicleType         string     `json:"vehicleType"`
	TimeIn              Timestamp  `json:"timeIn"`
	TimeOut             *Timestamp `json:"timeOut"`
	AssignedSlotID      FlexString `json:"assignedSlotId"`
	Status              string     `json:"status"`
	BillAmt             *float64   `json:"billAmt"`
}

// ToDomain конвертирует ответ бэкенда в доменную модель
func (v *VehicleResponse) ToDomain() *domain.ParkingSession {
	s := &domain.ParkingSession{
		VehicleID:      string(v.VehicleID),
		Registration:   domain.NormalizeRegistration(v.VehicleRegistration),
		VehicleType:    domain.VehicleType(v.VehicleType),
		TimeIn:         v.TimeIn.Time,
		AssignedSlotID: string(v.AssignedSlotID),
		Status:         domain.SessionStatus(strings.ToUpper(v.Status)),
		BillAmt:        v.BillAmt,
	}
	if v.TimeOut != nil && !v.TimeOut.IsZero() {
		out := v.TimeOut.Time
		s.TimeOut = &out
	}
	return s
}

// CreateParkingLotRequest тело POST /parking-lots
type CreateParkingLotRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	TotalFloors int    `json:"totalFloors"`
}

// AddFloorRequest тело POST /parking-lots/floors
type AddFloorRequest struct {
	FloorNo           int            `json:"floorNo"`
	ParkingLotID      string         `json:"parkingLotId"`
	SlotConfiguration map[string]int `json:"slotConfiguration"`
}

// ParkingLotResponse парковка
type ParkingLotResponse struct {
	ParkingLotID FlexString `json:"parkingLotId"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	TotalFloors  int        `json:"totalFloors"`
}

// ToDomain конвертирует ответ бэкенда в доменную модель
func (p *ParkingLotResponse) ToDomain() *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:          string(p.ParkingLotID),
		Name:        p.Name,
		Address:     p.Address,
		TotalFloors: p.TotalFloors,
	}
}

// SlotResponse слот на этаже
type SlotResponse struct {
	SlotID           FlexString `json:"slotId"`
	SlotType         string     `json:"slotType"`
	SlotStatus       string     `json:"slotStatus"`
	CurrentVehicleID *string    `json:"currentVehicleId"`
}

// FloorResponse этаж парковки
type FloorResponse struct {
	FloorID      FlexString     `json:"floorId"`
	FloorNo      int            `json:"floorNo"`
	ParkingLotID FlexString     `json:"parkingLotId"`
	Slots        []SlotResponse `json:"slots"`
}

// ToDomain конвертирует ответ бэкенда в доменную модель.
// Порядок слотов сохраняется - от него зависят номера слотов
func (f *FloorResponse) ToDomain() *domain.Floor {
	floor := &domain.Floor{
		ID:           string(f.FloorID),
		FloorNo:      f.FloorNo,
		ParkingLotID: string(f.ParkingLotID),
		Slots:        make([]domain.Slot, 0, len(f.Slots)),
	}
	for _, s := range f.Slots {
		floor.Slots = append(floor.Slots, domain.Slot{
			ID:        string(s.SlotID),
			Type:      domain.VehicleType(s.SlotType),
			Status:    domain.SlotStatus(s.SlotStatus),
			VehicleID: s.CurrentVehicleID,
		})
	}
	return floor
}

// UserProfile ответ GET /auth/me (структура принадлежит бэкенду, передается как есть)
type UserProfile = json.RawMessage
