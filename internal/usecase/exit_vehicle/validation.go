package exit_vehicle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
)

// validateRegistration нормализует госномер и проверяет его
func validateRegistration(raw string) (string, error) {
	registration := domain.NormalizeRegistration(strings.TrimSpace(raw))
	if registration == "" {
		return "", fmt.Errorf("%w: vehicle registration is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(registration) > domain.MaxRegistrationLength {
		return "", fmt.Errorf("%w: vehicle registration is longer than %d characters", ErrInvalidInput, domain.MaxRegistrationLength)
	}
	return registration, nil
}
