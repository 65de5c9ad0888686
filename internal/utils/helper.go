package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify turns a store or product name into a URL-safe slug.
func Slugify(input string) string {
	slug := strings.ToLower(input)
	slug = strings.TrimSpace(slug)
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomBase36 returns n random base36 characters.
func RandomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36))))
		if err != nil {
			// crypto/rand failing means the platform is broken; degrade to time.
			b[i] = base36[time.Now().UnixNano()%int64(len(base36))]
			continue
		}
		b[i] = base36[idx.Int64()]
	}
	return string(b)
}

// NewOrderNumber returns a display code like GFT-20260829-4K7Q1Z.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("GFT-%s-%s", now.Format("20060102"), strings.ToUpper(RandomBase36(6)))
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
