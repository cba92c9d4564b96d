package billing

import "errors"

var (
	// ErrJournalDisabled возвращается, если журнал выключен (нет подключения к БД)
	ErrJournalDisabled = errors.New("billing: journal is disabled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("billing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("billing: internal error")
)
