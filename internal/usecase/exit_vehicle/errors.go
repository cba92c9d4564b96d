package exit_vehicle

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("exit_vehicle: invalid input data")

	// ErrTransactionNotFound возвращается, когда транзакция выезда не найдена или истекла
	ErrTransactionNotFound = errors.New("exit_vehicle: transaction not found")

	// ErrInvalidTransition возвращается, когда операция недопустима в текущем состоянии
	ErrInvalidTransition = errors.New("exit_vehicle: operation is not allowed in current state")

	// ErrVehicleNotFound возвращается, когда бэкенд не знает автомобиль
	ErrVehicleNotFound = errors.New("exit_vehicle: vehicle not found")

	// ErrSessionNotActive возвращается, когда автомобиль уже выехал
	ErrSessionNotActive = errors.New("exit_vehicle: vehicle is not currently parked")

	// ErrLookupFailed возвращается, когда поиск сессии завершился ошибкой бэкенда
	ErrLookupFailed = errors.New("exit_vehicle: vehicle lookup failed")

	// ErrExitFailed возвращается, когда бэкенд не выполнил выезд
	ErrExitFailed = errors.New("exit_vehicle: backend exit failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("exit_vehicle: internal error")
)
