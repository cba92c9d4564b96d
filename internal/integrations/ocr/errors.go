package ocr

import "errors"

var (
	// ErrUnavailable возвращается, когда OCR сервер недоступен или вернул ошибку
	ErrUnavailable = errors.New("ocr client: service unavailable")

	// ErrInvalidResponse возвращается, когда в ответе нет массива raw
	ErrInvalidResponse = errors.New("ocr client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ocr client: internal error")
)
