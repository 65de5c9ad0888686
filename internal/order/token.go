package order

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"giftly-be/internal/utils"
)

// Gift tokens look like gift-{epoch_ms}-{9 base36}.{signature}. The body
// keeps the legacy shareable shape; the HMAC signature and the embedded
// issue time make the link tamper-proof and time-bounded.
var tokenBodyPattern = regexp.MustCompile(`^gift-(\d+)-[0-9a-z]{9}$`)

type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenSigner(secret string, ttlDays int) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		ttl:    time.Duration(ttlDays) * 24 * time.Hour,
	}
}

func (t *TokenSigner) sign(body string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Generate mints a signed gift token using now as the issue time.
func (t *TokenSigner) Generate(now time.Time) string {
	body := fmt.Sprintf("gift-%d-%s", now.UnixMilli(), utils.RandomBase36(9))
	return body + "." + t.sign(body)
}

// Verify checks the signature and expiry without touching storage. It
// returns the token unchanged so callers can use it as a lookup key.
func (t *TokenSigner) Verify(token string, now time.Time) error {
	body, sig, ok := strings.Cut(token, ".")
	if !ok {
		return ErrInvalidGiftToken
	}

	m := tokenBodyPattern.FindStringSubmatch(body)
	if m == nil {
		return ErrInvalidGiftToken
	}

	if !hmac.Equal([]byte(t.sign(body)), []byte(sig)) {
		return ErrInvalidGiftToken
	}

	issuedMs, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return ErrInvalidGiftToken
	}
	if now.After(time.UnixMilli(issuedMs).Add(t.ttl)) {
		return ErrGiftTokenExpired
	}

	return nil
}
