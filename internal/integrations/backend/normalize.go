package backend

import (
	"strings"
	"unicode/utf8"
)

// Сообщения, которые показываются вместо технических ошибок бэкенда
const (
	MsgVehicleAlreadyParked = "This vehicle is already parked. Please use a different registration number or exit the existing vehicle first."
	MsgNoSlotsAvailable     = "No parking slots available for this vehicle type. Please try again later."
	MsgRequestTimeout       = "Request timeout - please try again"
	MsgUnexpectedError      = "An unexpected error occurred"
)

const maxMessageLength = 200

// NormalizeMessage переписывает известные ошибки бэкенда в понятные сообщения
// и укорачивает длинные ответы (например, stack trace) до первой строки
func NormalizeMessage(msg string) string {
	switch {
	case strings.Contains(msg, "Unique index or primary key violation"),
		strings.Contains(msg, "VEHICLE_REGISTRATION"):
		return MsgVehicleAlreadyParked
	case strings.Contains(msg, "No available slot"):
		return MsgNoSlotsAvailable
	case utf8.RuneCountInString(msg) > maxMessageLength:
		firstLine, _, _ := strings.Cut(msg, "\n")
		firstLine = strings.TrimRight(firstLine, "\r")
		if utf8.RuneCountInString(firstLine) > maxMessageLength {
			firstLine = string([]rune(firstLine)[:maxMessageLength])
		}
		return firstLine + "..."
	default:
		return msg
	}
}
