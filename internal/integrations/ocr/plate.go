package ocr

import (
	"strings"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// CleanPlateText приводит текст к верхнему регистру и оставляет только A-Z и 0-9
func CleanPlateText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToUpper(text) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractPlate возвращает первый фрагмент, который после очистки имеет длину номера
func ExtractPlate(texts []string) (string, bool) {
	for _, text := range texts {
		plate := CleanPlateText(text)
		if len(plate) >= domain.MinPlateLength && len(plate) <= domain.MaxPlateLength {
			return plate, true
		}
	}
	return "", false
}
