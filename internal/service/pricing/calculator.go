package pricing

import (
	"math"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// DurationMinutes длительность стоянки в минутах (дробная).
// Выезд раньше въезда дает ноль
func DurationMinutes(entry, exit time.Time) float64 {
	d := exit.Sub(entry).Minutes()
	if d < 0 {
		return 0
	}
	return d
}

// BillableMinutes применяет правило минимального часа
func BillableMinutes(durationMinutes float64) float64 {
	return math.Max(durationMinutes, domain.MinBillableMinutes)
}

// BaseCharge базовая сумма без множителя: тариф * оплачиваемые часы
func BaseCharge(vehicleType domain.VehicleType, durationMinutes float64) float64 {
	return vehicleType.HourlyRate() * BillableMinutes(durationMinutes) / domain.MinutesPerHour
}

// FormatModelTime форматирует время для модели (DD-MM-YYYY HH:MM) в зоне loc
func FormatModelTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(domain.ModelTimeFormat)
}

// FallbackQuote локальная котировка без модели: множитель 1.0
func FallbackQuote(vehicleType domain.VehicleType, entry, exit time.Time, reason string) *domain.PricingQuote {
	duration := DurationMinutes(entry, exit)
	base := BaseCharge(vehicleType, duration)

	return &domain.PricingQuote{
		VehicleType:     vehicleType,
		Multiplier:      domain.FallbackMultiplier,
		BaseCharge:      base,
		AdjustedCharge:  base,
		DurationMinutes: duration,
		BillableMinutes: BillableMinutes(duration),
		Fallback:        true,
		Message:         "Using base pricing (ML model unavailable): " + reason,
	}
}
