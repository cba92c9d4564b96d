package recognize_plate

import "errors"

var (
	// ErrInvalidInput возвращается, когда изображение не передано
	ErrInvalidInput = errors.New("recognize_plate: invalid input data")

	// ErrPlateNotRecognized возвращается, когда ни один фрагмент не похож на номер
	ErrPlateNotRecognized = errors.New("recognize_plate: could not extract a valid number plate")

	// ErrInvalidOCRResponse возвращается при некорректном ответе OCR
	ErrInvalidOCRResponse = errors.New("recognize_plate: invalid OCR response")

	// ErrOCRUnavailable возвращается, когда OCR сервер недоступен
	ErrOCRUnavailable = errors.New("recognize_plate: OCR server unavailable")
)
