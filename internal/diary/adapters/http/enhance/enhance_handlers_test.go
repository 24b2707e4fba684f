package enhance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aidiary/internal/diary/adapters/http/enhance"
	"aidiary/internal/diary/app/dto"
	"aidiary/pkg/logger"
)

type mockEnhanceService struct {
	mock.Mock
}

func (m *mockEnhanceService) Enhance(ctx context.Context, text string) (string, string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.String(1), args.Error(2)
}

func setupApp(t *testing.T, service *mockEnhanceService) *fiber.App {
	t.Helper()
	require.NoError(t, logger.InitGlobalLogger(logger.Development))

	app := fiber.New()
	handler := enhance.NewHandler(service)
	app.Post("/api/v1/enhance", handler.Enhance)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, dst))
}

func TestEnhanceSuccess(t *testing.T) {
	service := new(mockEnhanceService)
	service.On("Enhance", mock.Anything, "my day").Return("a beautiful retelling of my day", "", nil)

	app := setupApp(t, service)
	resp := postJSON(t, app, "/api/v1/enhance", dto.EnhanceRequest{Text: "my day"})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.EnhanceResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "a beautiful retelling of my day", body.EnhancedText)
	assert.Empty(t, body.Warning)
	service.AssertExpectations(t)
}

func TestEnhanceDegradedModeReturnsWarningWith200(t *testing.T) {
	service := new(mockEnhanceService)
	service.On("Enhance", mock.Anything, "my day").
		Return("AI Memory Enhancement (temporarily unavailable)\n\nmy day", "AI enhancement is temporarily unavailable", nil)

	app := setupApp(t, service)
	resp := postJSON(t, app, "/api/v1/enhance", dto.EnhanceRequest{Text: "my day"})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.EnhanceResponse
	decodeBody(t, resp, &body)
	assert.Contains(t, body.EnhancedText, "my day")
	assert.NotEmpty(t, body.Warning)
}

func TestEnhanceValidationErrorReturns400(t *testing.T) {
	service := new(mockEnhanceService)
	service.On("Enhance", mock.Anything, "").Return("", "", errors.New("text is required"))

	app := setupApp(t, service)
	resp := postJSON(t, app, "/api/v1/enhance", dto.EnhanceRequest{Text: ""})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "text is required", body["error"])
}

func TestEnhanceMalformedBodyReturns400(t *testing.T) {
	service := new(mockEnhanceService)
	app := setupApp(t, service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/enhance", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	service.AssertNotCalled(t, "Enhance", mock.Anything, mock.Anything)
}
