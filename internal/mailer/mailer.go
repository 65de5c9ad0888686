package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"giftly-be/internal/config"
	"giftly-be/internal/logger"

	"go.uber.org/zap"
)

// AuthEmailRequest carries the payload the identity provider posts to the
// auth-email hook when a user signs up or requests a recovery.
type AuthEmailRequest struct {
	User struct {
		Email string `json:"email"`
	} `json:"user"`
	EmailData struct {
		TokenHash  string `json:"token_hash"`
		ActionType string `json:"email_action_type"`
		RedirectTo string `json:"redirect_to"`
	} `json:"email_data"`
}

type Mailer interface {
	SendAuthEmail(ctx context.Context, req *AuthEmailRequest) error
}

type httpMailer struct {
	apiBase    string
	apiKey     string
	from       string
	authBase   string
	httpClient *http.Client
}

func New(cfg config.Mailer) Mailer {
	if cfg.APIKey == "" {
		logger.L().Warn("Mailer API key is empty")
	}
	return &httpMailer{
		apiBase:  cfg.APIBase,
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		authBase: cfg.AuthBase,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (m *httpMailer) SendAuthEmail(ctx context.Context, req *AuthEmailRequest) error {
	log := logger.FromCtx(ctx).With(
		zap.String("action", req.EmailData.ActionType),
	)

	verifyURL := fmt.Sprintf("%s/auth/v1/verify?token=%s&type=%s&redirect_to=%s",
		m.authBase,
		url.QueryEscape(req.EmailData.TokenHash),
		url.QueryEscape(req.EmailData.ActionType),
		url.QueryEscape(req.EmailData.RedirectTo),
	)

	subject, intro := subjectFor(req.EmailData.ActionType)
	html := fmt.Sprintf(`<p>%s</p><p><a href="%s">Continue</a></p><p>If you did not request this, you can ignore this email.</p>`, intro, verifyURL)

	body := map[string]interface{}{
		"from":    m.from,
		"to":      []string{req.User.Email},
		"subject": subject,
		"html":    html,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiBase+"/emails", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		log.Error("mail send failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("mail provider returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return fmt.Errorf("mailer error: %s", string(respBody))
	}

	log.Info("auth email sent")
	return nil
}

func subjectFor(actionType string) (subject, intro string) {
	switch actionType {
	case "recovery":
		return "Reset your password", "Click below to reset your password."
	case "email_change":
		return "Confirm your new email address", "Click below to confirm your new email address."
	default:
		return "Confirm your email", "Welcome! Click below to confirm your email address."
	}
}
