package billing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	billingHandlers "aidiary/internal/diary/adapters/http/billing"
	"aidiary/internal/diary/app/dto"
	"aidiary/internal/diary/ports/services"
	"aidiary/pkg/logger"
)

type mockBillingClient struct {
	mock.Mock
}

func (m *mockBillingClient) IssueBillingKey(ctx context.Context, customerKey, authKey string) (*services.BillingAuthorization, error) {
	args := m.Called(ctx, customerKey, authKey)
	auth, _ := args.Get(0).(*services.BillingAuthorization)
	return auth, args.Error(1)
}

func setupApp(t *testing.T, client services.BillingClient) *fiber.App {
	t.Helper()
	require.NoError(t, logger.InitGlobalLogger(logger.Development))

	app := fiber.New()
	handler := billingHandlers.NewHandler(client)
	app.Post("/api/v1/billing/issue", handler.Issue)
	app.Get("/api/v1/billing/success", handler.Success)
	app.Get("/api/v1/billing/fail", handler.Fail)
	return app
}

func TestIssueBillingKey(t *testing.T) {
	client := new(mockBillingClient)
	client.On("IssueBillingKey", mock.Anything, "cust-1", "auth-1").
		Return(&services.BillingAuthorization{BillingKey: "bill-1", CustomerKey: "cust-1"}, nil)

	app := setupApp(t, client)

	payload, err := json.Marshal(dto.IssueBillingKeyRequest{CustomerKey: "cust-1", AuthKey: "auth-1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/issue", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	client.AssertExpectations(t)
}

func TestIssueBillingKeyMissingParamsReturns400(t *testing.T) {
	client := new(mockBillingClient)
	app := setupApp(t, client)

	payload, err := json.Marshal(dto.IssueBillingKeyRequest{CustomerKey: "cust-1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/issue", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	client.AssertNotCalled(t, "IssueBillingKey", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueBillingKeyNotConfiguredReturns500(t *testing.T) {
	app := setupApp(t, nil)

	payload, err := json.Marshal(dto.IssueBillingKeyRequest{CustomerKey: "cust-1", AuthKey: "auth-1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/issue", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestIssueBillingKeyProviderErrorReturns502(t *testing.T) {
	client := new(mockBillingClient)
	client.On("IssueBillingKey", mock.Anything, "cust-1", "auth-1").
		Return((*services.BillingAuthorization)(nil), errors.New("provider rejected the key"))

	app := setupApp(t, client)

	payload, err := json.Marshal(dto.IssueBillingKeyRequest{CustomerKey: "cust-1", AuthKey: "auth-1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/issue", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestSuccessCallbackRedirects(t *testing.T) {
	client := new(mockBillingClient)
	client.On("IssueBillingKey", mock.Anything, "cust-1", "auth-1").
		Return(&services.BillingAuthorization{BillingKey: "bill-1"}, nil)

	app := setupApp(t, client)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/billing/success?customerKey=cust-1&authKey=auth-1&plan=yearly", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.Contains(t, location, "/subscription?")
	assert.Contains(t, location, "success=true")
	assert.Contains(t, location, "plan=yearly")
}

func TestSuccessCallbackMissingParamsRedirectsWithError(t *testing.T) {
	client := new(mockBillingClient)
	app := setupApp(t, client)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/billing/success?customerKey=cust-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error=missing_params")
	client.AssertNotCalled(t, "IssueBillingKey", mock.Anything, mock.Anything, mock.Anything)
}

func TestFailCallbackRedirectsWithCode(t *testing.T) {
	client := new(mockBillingClient)
	app := setupApp(t, client)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/billing/fail?code=PAY_PROCESS_CANCELED&message=canceled", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.Contains(t, location, "error=billing_auth_failed")
	assert.Contains(t, location, "code=PAY_PROCESS_CANCELED")
}
