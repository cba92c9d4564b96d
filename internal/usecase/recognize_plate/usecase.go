package recognize_plate

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/ocr"
)

const defaultFilename = "image.jpg"

// UseCase use case распознавания номера по фото
type UseCase struct {
	ocr    OCRClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ocrClient OCRClient, logger Logger) *UseCase {
	return &UseCase{
		ocr:    ocrClient,
		logger: logger,
	}
}

// Execute отправляет изображение в OCR и выбирает номер.
// Ошибка не блокирует оператора: номер всегда можно ввести вручную
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Image == nil {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}

	filename := req.Filename
	if filename == "" {
		filename = defaultFilename
	}

	texts, err := uc.ocr.Recognize(ctx, filename, req.Image)
	if err != nil {
		if errors.Is(err, ocr.ErrInvalidResponse) {
			uc.logger.Warn("RecognizePlate: invalid OCR response for file=%s: %v", filename, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidOCRResponse, err)
		}
		uc.logger.Error("RecognizePlate: OCR call failed for file=%s: %v", filename, err)
		return nil, fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
	}

	plate, ok := ocr.ExtractPlate(texts)
	if !ok {
		uc.logger.Warn("RecognizePlate: no plate among %d fragments for file=%s", len(texts), filename)
		return &Response{Candidates: texts}, ErrPlateNotRecognized
	}

	uc.logger.Info("RecognizePlate: recognized plate=%s from file=%s", plate, filename)
	return &Response{
		Plate:      plate,
		Candidates: texts,
	}, nil
}
