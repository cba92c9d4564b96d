package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout возвращается, когда запрос не уложился в таймаут клиента
	ErrTimeout = errors.New("backend client: request timeout")

	// ErrUnavailable возвращается, когда бэкенд недоступен (сетевые ошибки)
	ErrUnavailable = errors.New("backend client: service unavailable")

	// ErrRejected возвращается, когда бэкенд отклонил запрос (4xx/5xx или success=false)
	ErrRejected = errors.New("backend client: request rejected")

	// ErrNotFound возвращается, когда запрошенный ресурс не найден (404)
	ErrNotFound = errors.New("backend client: resource not found")

	// ErrInvalidResponse возвращается при некорректном теле ответа
	ErrInvalidResponse = errors.New("backend client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("backend client: internal error")
)

// APIError ошибка вызова бэкенда с нормализованным сообщением для пользователя
type APIError struct {
	Kind       error  // Одна из ErrTimeout, ErrUnavailable, ErrRejected, ErrNotFound, ErrInvalidResponse, ErrInternal
	Operation  string // Например "POST /parking/exit/{registration}"
	StatusCode int    // 0, если ответ не был получен
	Message    string // Сообщение, пригодное для показа оператору
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%v: %s (status %d): %s", e.Kind, e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Operation, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// UserMessage возвращает сообщение для показа пользователю.
// Для ошибок не из клиента возвращает fallback
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
