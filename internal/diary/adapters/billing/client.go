// Package billing содержит HTTP-клиент платежного провайдера.
// Провайдер - непрозрачный коллаборатор: сервис пересылает ключ авторизации
// и отдает ответ провайдера как есть, без логики обработки платежей.
package billing

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"aidiary/internal/diary/ports/services"
	"aidiary/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrEncodeRequest  = "failed to encode billing request"
	ErrBuildRequest   = "failed to build billing request"
	ErrCallProvider   = "failed to call billing provider"
	ErrProviderStatus = "billing provider returned error status"
	ErrDecodeResponse = "failed to decode billing response"
)

const issuePath = "/v1/billing/authorizations/issue"

// Client реализует интерфейс services.BillingClient.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient создает новый клиент платежного провайдера.
func NewClient(baseURL, secretKey string, httpClient *http.Client) services.BillingClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: httpClient,
	}
}

// IssueBillingKey обменивает ключ авторизации на биллинг-ключ у провайдера.
func (c *Client) IssueBillingKey(ctx context.Context, customerKey, authKey string) (*services.BillingAuthorization, error) {
	log := logger.Log(ctx).With(zap.String("method", "Client.IssueBillingKey"))
	log.Debug(ctx, "issuing billing key", zap.String("customerKey", customerKey))

	body, err := json.Marshal(map[string]string{
		"customerKey": customerKey,
		"authKey":     authKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrEncodeRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+issuePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrBuildRequest, err)
	}
	req.Header.Set("Authorization", basicAuth(c.secretKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error(ctx, ErrCallProvider, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCallProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		log.Error(ctx, ErrProviderStatus,
			zap.Int("status", resp.StatusCode),
			zap.ByteString("detail", detail))
		return nil, fmt.Errorf("%s: %d", ErrProviderStatus, resp.StatusCode)
	}

	var auth services.BillingAuthorization
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		log.Error(ctx, ErrDecodeResponse, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrDecodeResponse, err)
	}

	log.Debug(ctx, "billing key issued", zap.String("customerKey", auth.CustomerKey))
	return &auth, nil
}

// Провайдер ожидает Basic-авторизацию вида base64(secret + ":").
func basicAuth(secretKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":"))
}
