package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"giftly-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func newTestMailer(rt MockRoundTripper) *httpMailer {
	m := New(config.Mailer{
		APIBase:  "https://mail.test",
		APIKey:   "re_test_123",
		From:     "Giftly <no-reply@giftly.app>",
		AuthBase: "https://auth.giftly.app",
	}).(*httpMailer)
	m.httpClient.Transport = rt
	return m
}

func signupRequest() *AuthEmailRequest {
	req := &AuthEmailRequest{}
	req.User.Email = "user@example.com"
	req.EmailData.TokenHash = "tok-abc"
	req.EmailData.ActionType = "signup"
	req.EmailData.RedirectTo = "https://giftly.app/welcome"
	return req
}

func TestSendAuthEmail(t *testing.T) {
	t.Run("Signup", func(t *testing.T) {
		var captured *http.Request
		var payload map[string]interface{}

		m := newTestMailer(func(req *http.Request) *http.Response {
			captured = req
			raw, _ := io.ReadAll(req.Body)
			_ = json.Unmarshal(raw, &payload)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"id": "email-1"}`)),
			}
		})

		err := m.SendAuthEmail(context.Background(), signupRequest())
		require.NoError(t, err)

		assert.Equal(t, "/emails", captured.URL.Path)
		assert.Equal(t, "Bearer re_test_123", captured.Header.Get("Authorization"))

		assert.Equal(t, "Confirm your email", payload["subject"])
		assert.Equal(t, []interface{}{"user@example.com"}, payload["to"])

		html, _ := payload["html"].(string)
		assert.Contains(t, html, "https://auth.giftly.app/auth/v1/verify?token=tok-abc&type=signup")
		assert.Contains(t, html, "redirect_to=https%3A%2F%2Fgiftly.app%2Fwelcome")
	})

	t.Run("RecoverySubject", func(t *testing.T) {
		var payload map[string]interface{}

		m := newTestMailer(func(req *http.Request) *http.Response {
			raw, _ := io.ReadAll(req.Body)
			_ = json.Unmarshal(raw, &payload)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
			}
		})

		req := signupRequest()
		req.EmailData.ActionType = "recovery"

		require.NoError(t, m.SendAuthEmail(context.Background(), req))
		assert.Equal(t, "Reset your password", payload["subject"])
	})

	t.Run("ProviderError", func(t *testing.T) {
		m := newTestMailer(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusUnprocessableEntity,
				Body:       io.NopCloser(bytes.NewBufferString(`{"error": "invalid from address"}`)),
			}
		})

		err := m.SendAuthEmail(context.Background(), signupRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid from address")
	})
}

func TestSubjectFor(t *testing.T) {
	cases := []struct {
		action  string
		subject string
	}{
		{"recovery", "Reset your password"},
		{"email_change", "Confirm your new email address"},
		{"signup", "Confirm your email"},
		{"magiclink", "Confirm your email"},
	}
	for _, tc := range cases {
		subject, intro := subjectFor(tc.action)
		assert.Equal(t, tc.subject, subject)
		assert.NotEmpty(t, intro)
	}
}
