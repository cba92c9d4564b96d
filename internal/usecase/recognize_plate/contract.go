package recognize_plate

import (
	"context"
	"io"
)

// OCRClient интерфейс клиента OCR модели
type OCRClient interface {
	Recognize(ctx context.Context, filename string, image io.Reader) ([]string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
