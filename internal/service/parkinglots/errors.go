package parkinglots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("parkinglots: invalid input data")

	// ErrLotNotFound возвращается, когда парковка не найдена
	ErrLotNotFound = errors.New("parkinglots: parking lot not found")

	// ErrRejected возвращается, когда бэкенд отклонил изменение (например, этаж уже существует)
	ErrRejected = errors.New("parkinglots: request rejected")

	// ErrBackendUnavailable возвращается, когда бэкенд недоступен
	ErrBackendUnavailable = errors.New("parkinglots: backend unavailable")
)
