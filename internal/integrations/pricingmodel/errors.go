package pricingmodel

import "errors"

var (
	// ErrUnavailable возвращается, когда модель недоступна или вернула ошибку
	ErrUnavailable = errors.New("pricing model: service unavailable")

	// ErrTimeout возвращается, когда модель не ответила за отведенное время
	ErrTimeout = errors.New("pricing model: request timeout")

	// ErrInvalidResponse возвращается, когда ответ модели не содержит корректного множителя
	ErrInvalidResponse = errors.New("pricing model: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pricing model: internal error")
)
