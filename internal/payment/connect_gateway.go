package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"giftly-be/internal/logger"

	"go.uber.org/zap"
)

type connectGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewConnectGateway talks to the Connect-style processor API over plain
// HTTP. Amounts are decimal strings, never floats.
func NewConnectGateway(baseURL, apiKey string) Gateway {
	if apiKey == "" {
		logger.L().Warn("Connect API key is empty")
	}
	return &connectGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *connectGateway) do(ctx context.Context, method, path string, body interface{}, idempotencyKey string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read connect response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.FromCtx(ctx).Error("Connect returned non-success status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("connect error: %s", string(bodyBytes))
	}
	return bodyBytes, nil
}

func (c *connectGateway) CreateAccount(ctx context.Context, storeID, email string) (string, error) {
	log := logger.FromCtx(ctx).With(zap.String("store_id", storeID))

	body := map[string]interface{}{
		"type":         "express",
		"email":        email,
		"reference_id": storeID,
	}
	respBody, err := c.do(ctx, http.MethodPost, "/v1/accounts", body, "")
	if err != nil {
		log.Error("Connect account creation failed", zap.Error(err))
		return "", err
	}

	var res struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return "", err
	}

	log.Info("Connect account created", zap.String("account_id", res.ID))
	return res.ID, nil
}

func (c *connectGateway) OnboardingLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	body := map[string]interface{}{
		"account":     accountID,
		"refresh_url": refreshURL,
		"return_url":  returnURL,
		"type":        "account_onboarding",
	}
	respBody, err := c.do(ctx, http.MethodPost, "/v1/account_links", body, "")
	if err != nil {
		return "", err
	}

	var res struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

func (c *connectGateway) AccountStatus(ctx context.Context, accountID string) (*AccountStatus, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/v1/accounts/"+accountID, nil, "")
	if err != nil {
		return nil, err
	}

	var res struct {
		ID               string `json:"id"`
		DetailsSubmitted bool   `json:"details_submitted"`
		PayoutsEnabled   bool   `json:"payouts_enabled"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return nil, err
	}

	return &AccountStatus{
		AccountID:        res.ID,
		DetailsSubmitted: res.DetailsSubmitted,
		PayoutsEnabled:   res.PayoutsEnabled,
	}, nil
}

func (c *connectGateway) DashboardLink(ctx context.Context, accountID string) (string, error) {
	respBody, err := c.do(ctx, http.MethodPost, "/v1/accounts/"+accountID+"/login_links", nil, "")
	if err != nil {
		return "", err
	}

	var res struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

func (c *connectGateway) Transfer(ctx context.Context, accountID string, amount string, currency, idempotencyKey string) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("account_id", accountID),
		zap.String("amount", amount),
		zap.String("currency", currency),
	)

	body := map[string]interface{}{
		"destination": accountID,
		"amount":      amount,
		"currency":    currency,
	}
	respBody, err := c.do(ctx, http.MethodPost, "/v1/transfers", body, idempotencyKey)
	if err != nil {
		log.Error("Connect transfer failed", zap.Error(err))
		return "", err
	}

	var res struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return "", err
	}

	log.Info("Connect transfer created", zap.String("transfer_id", res.ID))
	return res.ID, nil
}

func (c *connectGateway) Disconnect(ctx context.Context, accountID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/v1/accounts/"+accountID, nil, "")
	return err
}
