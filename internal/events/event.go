package events

import "time"

// Типы событий
const (
	TypeVehicleParked = "vehicle_parked"
	TypeVehicleExited = "vehicle_exited"
)

// Event сообщение, которое получают подписчики
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
