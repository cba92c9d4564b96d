package pricingmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
)

const upstreamName = "pricing_model"

// Observer принимает метрики исходящих вызовов
type Observer interface {
	ObserveUpstream(upstream, operation, outcome string, d time.Duration)
}

// Client клиент модели динамического ценообразования
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// NewClient создает новый экземпляр клиента модели. observer может быть nil
func NewClient(baseURL string, timeout time.Duration, observer Observer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observer: observer,
	}
}

// Predict запрашивает множитель спроса для стоянки
func (c *Client) Predict(ctx context.Context, in PredictRequest) (*Prediction, error) {
	started := time.Now()
	prediction, err := c.predict(ctx, in)
	c.observe("predict", err, time.Since(started))
	return prediction, err
}

func (c *Client) predict(ctx context.Context, in PredictRequest) (*Prediction, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, executeError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, statusError(resp))
	}

	var raw predictionPayload
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if raw.Multiplier == nil || !validNumber(*raw.Multiplier) {
		return nil, fmt.Errorf("%w: multiplier is missing or invalid", ErrInvalidResponse)
	}
	if raw.DurationMinutes == nil || !validNumber(*raw.DurationMinutes) {
		return nil, fmt.Errorf("%w: duration_minutes is missing or invalid", ErrInvalidResponse)
	}

	prediction := &Prediction{
		Multiplier:      *raw.Multiplier,
		DurationMinutes: *raw.DurationMinutes,
		DayOfWeek:       raw.dayOfWeek(),
	}
	if raw.HourOfEntry != nil && validNumber(*raw.HourOfEntry) {
		hour := int(*raw.HourOfEntry)
		prediction.HourOfEntry = &hour
	}
	return prediction, nil
}

// Health проверяет состояние модели
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	started := time.Now()
	status, err := c.health(ctx)
	c.observe("health", err, time.Since(started))
	return status, err
}

func (c *Client) health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, executeError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, statusError(resp))
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &status, nil
}

func (c *Client) observe(operation string, err error, d time.Duration) {
	if c.observer == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, ErrTimeout):
		outcome = metrics.OutcomeTimeout
	case err != nil:
		outcome = metrics.OutcomeError
	}
	c.observer.ObserveUpstream(upstreamName, operation, outcome, d)
}

func executeError(err error) error {
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
}

// statusError возвращает detail из тела ошибки или код статуса
func statusError(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if msg := errResp.message(); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Pricing API error: %d", resp.StatusCode)
}

func validNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
