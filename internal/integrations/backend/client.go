package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingDesk/pkg/metrics"
)

const upstreamName = "backend"

// Client клиент REST API бэкенда парковки
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tokens     TokenSource
	log        Logger
	observer   Observer
}

// NewClient создает новый экземпляр клиента бэкенда.
// tokens и observer могут быть nil
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, observer Observer, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
		tokens:     tokens,
		log:        log,
		observer:   observer,
	}
}

// ParkVehicle регистрирует въезд автомобиля
func (c *Client) ParkVehicle(ctx context.Context, vehicleType, registration string) (*VehicleResponse, error) {
	body := ParkVehicleRequest{
		VehicleType:         vehicleType,
		VehicleRegistration: registration,
	}

	var vehicle VehicleResponse
	if err := c.do(ctx, http.MethodPost, "/parking/entry", "/parking/entry", body, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ExitVehicle регистрирует выезд автомобиля
func (c *Client) ExitVehicle(ctx context.Context, registration string) (*VehicleResponse, error) {
	path := "/parking/exit/" + url.PathEscape(registration)

	var vehicle VehicleResponse
	if err := c.do(ctx, http.MethodPost, path, "/parking/exit/{registration}", nil, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetVehicleStatus возвращает текущую сессию автомобиля
func (c *Client) GetVehicleStatus(ctx context.Context, registration string) (*VehicleResponse, error) {
	path := "/parking/vehicle/" + url.PathEscape(registration)

	var vehicle VehicleResponse
	if err := c.do(ctx, http.MethodGet, path, "/parking/vehicle/{registration}", nil, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// UpdateBill записывает итоговую сумму (и детализацию) в сессию
func (c *Client) UpdateBill(ctx context.Context, vehicleID string, amount float64, details *PricingDetails) (*VehicleResponse, error) {
	path := "/parking/bill/" + url.PathEscape(vehicleID)
	body := UpdateBillRequest{
		BillAmt:        amount,
		PricingDetails: details,
	}

	var vehicle VehicleResponse
	if err := c.do(ctx, http.MethodPut, path, "/parking/bill/{vehicleId}", body, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetParkingLots возвращает список парковок
func (c *Client) GetParkingLots(ctx context.Context) ([]ParkingLotResponse, error) {
	var lots []ParkingLotResponse
	if err := c.do(ctx, http.MethodGet, "/parking-lots", "/parking-lots", nil, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

// GetParkingLot возвращает парковку по идентификатору
func (c *Client) GetParkingLot(ctx context.Context, lotID string) (*ParkingLotResponse, error) {
	path := "/parking-lots/" + url.PathEscape(lotID)

	var lot ParkingLotResponse
	if err := c.do(ctx, http.MethodGet, path, "/parking-lots/{id}", nil, &lot); err != nil {
		return nil, err
	}
	return &lot, nil
}

// CreateParkingLot создает парковку
func (c *Client) CreateParkingLot(ctx context.Context, req CreateParkingLotRequest) (*ParkingLotResponse, error) {
	var lot ParkingLotResponse
	if err := c.do(ctx, http.MethodPost, "/parking-lots", "/parking-lots", req, &lot); err != nil {
		return nil, err
	}
	return &lot, nil
}

// AddFloor добавляет этаж со слотами в парковку
func (c *Client) AddFloor(ctx context.Context, req AddFloorRequest) (*FloorResponse, error) {
	var floor FloorResponse
	if err := c.do(ctx, http.MethodPost, "/parking-lots/floors", "/parking-lots/floors", req, &floor); err != nil {
		return nil, err
	}
	return &floor, nil
}

// GetFloor возвращает этаж со слотами
func (c *Client) GetFloor(ctx context.Context, floorID string) (*FloorResponse, error) {
	path := "/parking-lots/floors/" + url.PathEscape(floorID)

	var floor FloorResponse
	if err := c.do(ctx, http.MethodGet, path, "/parking-lots/floors/{id}", nil, &floor); err != nil {
		return nil, err
	}
	return &floor, nil
}

// GetFloorsByParkingLot возвращает этажи парковки в порядке бэкенда
func (c *Client) GetFloorsByParkingLot(ctx context.Context, lotID string) ([]FloorResponse, error) {
	path := "/parking-lots/" + url.PathEscape(lotID) + "/floors"

	var floors []FloorResponse
	if err := c.do(ctx, http.MethodGet, path, "/parking-lots/{id}/floors", nil, &floors); err != nil {
		return nil, err
	}
	return floors, nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (UserProfile, error) {
	var profile json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/auth/me", "/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// do выполняет запрос, нормализует конверт ответа и декодирует data в out.
// route - шаблон пути для логов и метрик
func (c *Client) do(ctx context.Context, method, path, route string, body interface{}, out interface{}) error {
	operation := method + " " + route
	started := time.Now()

	env, err := c.roundTrip(ctx, method, path, operation, body)
	c.observe(operation, err, time.Since(started))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.log.Warn("Backend %s failed: %s", operation, apiErr.Message)
		} else {
			c.log.Error("Backend %s failed: %v", operation, err)
		}
		return err
	}

	if out == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{
			Kind:      ErrInvalidResponse,
			Operation: operation,
			Message:   fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path, operation string, body interface{}) (*Envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &APIError{Kind: ErrTimeout, Operation: operation, Message: MsgRequestTimeout}
		}
		return nil, &APIError{Kind: ErrUnavailable, Operation: operation, Message: unavailableMessage(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &APIError{Kind: ErrTimeout, Operation: operation, StatusCode: resp.StatusCode, Message: MsgRequestTimeout}
		}
		return nil, &APIError{Kind: ErrUnavailable, Operation: operation, StatusCode: resp.StatusCode, Message: unavailableMessage(err)}
	}

	// Обработка статус-кодов
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := ErrRejected
		if resp.StatusCode == http.StatusNotFound {
			kind = ErrNotFound
		}
		return nil, &APIError{
			Kind:       kind,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    NormalizeMessage(errorMessage(resp, raw)),
		}
	}

	env := envelopeOf(raw)
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = MsgUnexpectedError
		}
		return nil, &APIError{
			Kind:       ErrRejected,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    NormalizeMessage(msg),
		}
	}
	return env, nil
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

// envelopeOf приводит тело успешного ответа к конверту.
// Тело с ключом success принимается как есть, любое другое оборачивается
func envelopeOf(raw []byte) *Envelope {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, ok := probe["success"]; ok {
			var env Envelope
			if err := json.Unmarshal(raw, &env); err == nil {
				return &env
			}
		}
	}

	data := raw
	if len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
		data, _ = json.Marshal(string(raw))
	}
	return &Envelope{
		Success: true,
		Data:    data,
		Message: "Success",
	}
}

// errorMessage извлекает текст ошибки: поле message, иначе тело, иначе статус
func errorMessage(resp *http.Response, raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}

	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

func unavailableMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	if err.Error() != "" {
		return err.Error()
	}
	return MsgUnexpectedError
}
