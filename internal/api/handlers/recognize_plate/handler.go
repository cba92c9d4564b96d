package recognize_plate

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingDesk/internal/api/handlers"
	recognizePlate "github.com/m04kA/SMC-ParkingDesk/internal/usecase/recognize_plate"
)

const (
	formFileField = "file"

	msgInvalidUpload      = "загрузите изображение в поле file"
	msgPlateRecognized    = "госномер распознан"
	msgPlateNotRecognized = "не удалось распознать госномер, введите его вручную"
	msgOCRUnavailable     = "сервер распознавания недоступен, введите госномер вручную"
	msgInvalidOCRResponse = "некорректный ответ сервера распознавания, введите госномер вручную"
)

type Handler struct {
	useCase        RecognizePlateUseCase
	maxUploadBytes int64
	logger         Logger
}

func NewHandler(useCase RecognizePlateUseCase, maxUploadBytes int64, logger Logger) *Handler {
	return &Handler{
		useCase:        useCase,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Handle POST /api/v1/ocr (multipart/form-data, поле file)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile(formFileField)
	if err != nil {
		h.logger.Warn("POST /ocr - Invalid upload: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUpload)
		return
	}
	defer file.Close()

	result, err := h.useCase.Execute(r.Context(), &recognizePlate.Request{
		Filename: header.Filename,
		Image:    file,
	})
	if err != nil {
		switch {
		case errors.Is(err, recognizePlate.ErrInvalidInput):
			h.logger.Warn("POST /ocr - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidUpload)

		case errors.Is(err, recognizePlate.ErrPlateNotRecognized):
			h.logger.Warn("POST /ocr - Plate not recognized in %s", header.Filename)
			resp := &PlateResponse{Candidates: []string{}}
			if result != nil && result.Candidates != nil {
				resp.Candidates = result.Candidates
			}
			handlers.RespondErrorWithData(w, http.StatusUnprocessableEntity, msgPlateNotRecognized, resp)

		case errors.Is(err, recognizePlate.ErrInvalidOCRResponse):
			h.logger.Error("POST /ocr - Invalid OCR response: %v", err)
			handlers.RespondBadGateway(w, msgInvalidOCRResponse)

		case errors.Is(err, recognizePlate.ErrOCRUnavailable):
			h.logger.Error("POST /ocr - OCR unavailable: %v", err)
			handlers.RespondBadGateway(w, msgOCRUnavailable)

		default:
			h.logger.Error("POST /ocr - Failed to recognize plate: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /ocr - Plate recognized: %s", result.Plate)
	handlers.RespondJSONWithMessage(w, http.StatusOK, &PlateResponse{
		Plate:      result.Plate,
		Candidates: result.Candidates,
	}, msgPlateRecognized)
}
