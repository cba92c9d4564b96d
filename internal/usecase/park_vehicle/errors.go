package park_vehicle

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("park_vehicle: invalid input data")

	// ErrRejected возвращается, когда бэкенд отказал во въезде (номер уже на парковке, нет мест)
	ErrRejected = errors.New("park_vehicle: entry rejected")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("park_vehicle: backend unavailable")
)
