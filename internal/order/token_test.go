package order

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSigner_Generate(t *testing.T) {
	signer := NewTokenSigner("testsecret", 30)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	token := signer.Generate(now)

	body, sig, ok := strings.Cut(token, ".")
	require.True(t, ok, "token must carry a signature segment")
	assert.Regexp(t, regexp.MustCompile(`^gift-\d+-[0-9a-z]{9}$`), body)
	assert.NotEmpty(t, sig)

	assert.NoError(t, signer.Verify(token, now))
}

func TestTokenSigner_Verify(t *testing.T) {
	signer := NewTokenSigner("testsecret", 30)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	token := signer.Generate(now)

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenSigner("othersecret", 30)
		assert.ErrorIs(t, other.Verify(token, now), ErrInvalidGiftToken)
	})

	t.Run("TamperedBody", func(t *testing.T) {
		_, sig, _ := strings.Cut(token, ".")
		forged := "gift-1717243200000-abcdefghi." + sig
		assert.ErrorIs(t, signer.Verify(forged, now), ErrInvalidGiftToken)
	})

	t.Run("MissingSignature", func(t *testing.T) {
		body, _, _ := strings.Cut(token, ".")
		assert.ErrorIs(t, signer.Verify(body, now), ErrInvalidGiftToken)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		assert.ErrorIs(t, signer.Verify("order-123-abcdefghi.sig", now), ErrInvalidGiftToken)
	})

	t.Run("Expired", func(t *testing.T) {
		late := now.Add(30*24*time.Hour + time.Minute)
		assert.ErrorIs(t, signer.Verify(token, late), ErrGiftTokenExpired)
	})

	t.Run("JustBeforeExpiry", func(t *testing.T) {
		almost := now.Add(30*24*time.Hour - time.Minute)
		assert.NoError(t, signer.Verify(token, almost))
	})
}
