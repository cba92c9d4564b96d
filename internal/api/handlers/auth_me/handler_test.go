package auth_me

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingDesk/internal/integrations/backend"
	"github.com/m04kA/SMC-ParkingDesk/pkg/logger"
)

type stubClient struct {
	profile backend.UserProfile
	err     error
}

func (c stubClient) Me(context.Context) (backend.UserProfile, error) {
	return c.profile, c.err
}

func get(h *Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := get(NewHandler(stubClient{profile: json.RawMessage(`{"email":"desk@example.com","role":"operator"}`)}, logger.Nop()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"email":"desk@example.com","role":"operator"}}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	rec := get(NewHandler(stubClient{err: &backend.APIError{Kind: backend.ErrRejected, StatusCode: http.StatusUnauthorized}}, logger.Nop()))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(NewHandler(stubClient{err: &backend.APIError{Kind: backend.ErrTimeout, Message: backend.MsgRequestTimeout}}, logger.Nop()))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), backend.MsgRequestTimeout)
}
