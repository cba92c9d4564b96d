package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
)

const upstreamName = "ocr"

// Observer принимает метрики исходящих вызовов
type Observer interface {
	ObserveUpstream(upstream, operation, outcome string, d time.Duration)
}

// Client клиент OCR модели распознавания номеров
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// NewClient создает новый экземпляр клиента OCR. observer может быть nil
func NewClient(baseURL string, timeout time.Duration, observer Observer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observer: observer,
	}
}

// Recognize отправляет изображение в поле file и возвращает найденные фрагменты текста
func (c *Client) Recognize(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	started := time.Now()
	texts, err := c.recognize(ctx, filename, image)

	if c.observer != nil {
		outcome := metrics.OutcomeSuccess
		var netErr interface{ Timeout() bool }
		switch {
		case err != nil && errors.As(err, &netErr) && netErr.Timeout():
			outcome = metrics.OutcomeTimeout
		case err != nil:
			outcome = metrics.OutcomeError
		}
		c.observer.ObserveUpstream(upstreamName, "recognize", outcome, time.Since(started))
	}
	return texts, err
}

func (c *Client) recognize(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create form file: %v", ErrInternal, err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("%w: failed to read image: %v", ErrInternal, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: failed to close form: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", &body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &upstreamError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if parsed.Raw == nil {
		return nil, fmt.Errorf("%w: raw is missing", ErrInvalidResponse)
	}

	texts := make([]string, 0, len(*parsed.Raw))
	for _, d := range *parsed.Raw {
		texts = append(texts, d.Text)
	}
	return texts, nil
}

// upstreamError сетевая ошибка вызова, сохраняет признак таймаута
type upstreamError struct {
	err error
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("%v: failed to execute request: %v", ErrUnavailable, e.err)
}

func (e *upstreamError) Unwrap() []error {
	return []error{ErrUnavailable, e.err}
}
