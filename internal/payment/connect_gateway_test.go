package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func mockResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestGateway(rt MockRoundTripper) *connectGateway {
	gw := NewConnectGateway("https://connect.test", "sk_test_123").(*connectGateway)
	gw.httpClient.Transport = rt
	return gw
}

func TestConnectGateway_CreateAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var captured *http.Request
		var capturedBody map[string]interface{}

		gw := newTestGateway(func(req *http.Request) *http.Response {
			captured = req
			raw, _ := io.ReadAll(req.Body)
			_ = json.Unmarshal(raw, &capturedBody)
			return mockResponse(http.StatusOK, `{"id": "acct_123"}`)
		})

		id, err := gw.CreateAccount(context.Background(), "st-1", "vendor@example.com")
		require.NoError(t, err)
		assert.Equal(t, "acct_123", id)

		assert.Equal(t, http.MethodPost, captured.Method)
		assert.Equal(t, "/v1/accounts", captured.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", captured.Header.Get("Authorization"))
		assert.Equal(t, "st-1", capturedBody["reference_id"])
		assert.Equal(t, "vendor@example.com", capturedBody["email"])
	})

	t.Run("APIError", func(t *testing.T) {
		gw := newTestGateway(func(req *http.Request) *http.Response {
			return mockResponse(http.StatusBadRequest, `{"error": "email required"}`)
		})

		_, err := gw.CreateAccount(context.Background(), "st-1", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email required")
	})
}

func TestConnectGateway_AccountStatus(t *testing.T) {
	gw := newTestGateway(func(req *http.Request) *http.Response {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/v1/accounts/acct_123", req.URL.Path)
		return mockResponse(http.StatusOK,
			`{"id": "acct_123", "details_submitted": true, "payouts_enabled": false}`)
	})

	status, err := gw.AccountStatus(context.Background(), "acct_123")
	require.NoError(t, err)
	assert.Equal(t, "acct_123", status.AccountID)
	assert.True(t, status.DetailsSubmitted)
	assert.False(t, status.PayoutsEnabled)
}

func TestConnectGateway_Transfer(t *testing.T) {
	t.Run("SendsIdempotencyKey", func(t *testing.T) {
		var capturedBody map[string]interface{}
		var idempotencyKey string

		gw := newTestGateway(func(req *http.Request) *http.Response {
			idempotencyKey = req.Header.Get("Idempotency-Key")
			raw, _ := io.ReadAll(req.Body)
			_ = json.Unmarshal(raw, &capturedBody)
			return mockResponse(http.StatusOK, `{"id": "tr_456"}`)
		})

		id, err := gw.Transfer(context.Background(), "acct_123", "90.00", "USD", "payout-po-1")
		require.NoError(t, err)
		assert.Equal(t, "tr_456", id)
		assert.Equal(t, "payout-po-1", idempotencyKey)

		// Amounts travel as decimal strings.
		assert.Equal(t, "90.00", capturedBody["amount"])
		assert.Equal(t, "USD", capturedBody["currency"])
		assert.Equal(t, "acct_123", capturedBody["destination"])
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		gw := newTestGateway(func(req *http.Request) *http.Response {
			return mockResponse(http.StatusPaymentRequired, `{"error": "insufficient platform balance"}`)
		})

		_, err := gw.Transfer(context.Background(), "acct_123", "90.00", "USD", "payout-po-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient platform balance")
	})
}

func TestConnectGateway_OnboardingLink(t *testing.T) {
	gw := newTestGateway(func(req *http.Request) *http.Response {
		assert.Equal(t, "/v1/account_links", req.URL.Path)
		return mockResponse(http.StatusOK, `{"url": "https://connect.test/setup/xyz"}`)
	})

	url, err := gw.OnboardingLink(context.Background(), "acct_123",
		"https://giftly.app/vendor/payouts?connect=refresh",
		"https://giftly.app/vendor/payouts?connect=complete")
	require.NoError(t, err)
	assert.Equal(t, "https://connect.test/setup/xyz", url)
}

func TestConnectGateway_Disconnect(t *testing.T) {
	gw := newTestGateway(func(req *http.Request) *http.Response {
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/v1/accounts/acct_123", req.URL.Path)
		return mockResponse(http.StatusOK, `{"id": "acct_123", "deleted": true}`)
	})

	err := gw.Disconnect(context.Background(), "acct_123")
	assert.NoError(t, err)
}
