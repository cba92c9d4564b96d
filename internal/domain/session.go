package domain

import "time"

// SessionStatus represents the status of a parking session
type SessionStatus string

const (
	SessionParked SessionStatus = "PARKED"
	SessionExited SessionStatus = "EXITED"
)

// ParkingSession represents one vehicle's stay from entry to exit.
// Владелец записи - бэкенд, здесь только копия для чтения и отображения
type ParkingSession struct {
	VehicleID      string
	Registration   string
	VehicleType    VehicleType
	TimeIn         time.Time
	TimeOut        *time.Time // nil до выезда
	AssignedSlotID string
	Status         SessionStatus
	BillAmt        *float64 // Сумма, посчитанная бэкендом (после выезда)
}

// IsActive returns true if the vehicle is still parked
func (s *ParkingSession) IsActive() bool {
	return s.Status == SessionParked
}

// IsExited returns true if the session was closed by the backend
func (s *ParkingSession) IsExited() bool {
	return s.Status == SessionExited
}

// ParkedFor возвращает длительность стоянки на момент now
func (s *ParkingSession) ParkedFor(now time.Time) time.Duration {
	end := now
	if s.TimeOut != nil {
		end = *s.TimeOut
	}
	if end.Before(s.TimeIn) {
		return 0
	}
	return end.Sub(s.TimeIn)
}
