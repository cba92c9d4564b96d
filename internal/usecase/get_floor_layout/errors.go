package get_floor_layout

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_floor_layout: invalid input data")

	// ErrFloorNotFound возвращается, если этаж не найден
	ErrFloorNotFound = errors.New("get_floor_layout: floor not found")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("get_floor_layout: backend unavailable")
)
