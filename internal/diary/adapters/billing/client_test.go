package billing_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aidiary/internal/diary/adapters/billing"
)

func TestIssueBillingKey(t *testing.T) {
	t.Run("successful issue", func(t *testing.T) {
		var gotAuth, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "cust-1", body["customerKey"])
			assert.Equal(t, "auth-1", body["authKey"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"billingKey":"bk-1","customerKey":"cust-1","cardCompany":"visa"}`))
		}))
		defer server.Close()

		client := billing.NewClient(server.URL, "sk_test_secret", server.Client())
		auth, err := client.IssueBillingKey(context.Background(), "cust-1", "auth-1")

		require.NoError(t, err)
		assert.Equal(t, "bk-1", auth.BillingKey)
		assert.Equal(t, "cust-1", auth.CustomerKey)
		assert.Equal(t, "/v1/billing/authorizations/issue", gotPath)

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("sk_test_secret:"))
		assert.Equal(t, expected, gotAuth)
	})

	t.Run("provider error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"code":"INVALID_AUTH_KEY"}`, http.StatusBadRequest)
		}))
		defer server.Close()

		client := billing.NewClient(server.URL, "sk_test_secret", server.Client())
		auth, err := client.IssueBillingKey(context.Background(), "cust-1", "bad-key")

		require.Error(t, err)
		assert.Nil(t, auth)
		assert.Contains(t, err.Error(), billing.ErrProviderStatus)
	})

	t.Run("provider unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close()

		client := billing.NewClient(server.URL, "sk_test_secret", nil)
		auth, err := client.IssueBillingKey(context.Background(), "cust-1", "auth-1")

		require.Error(t, err)
		assert.Nil(t, auth)
		assert.Contains(t, err.Error(), billing.ErrCallProvider)
	})
}
