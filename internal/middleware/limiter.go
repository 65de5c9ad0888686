package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"giftly-be/internal/utils"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Rate limit tiers
const (
	// Auth, gift confirmation and payout settlement
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General API traffic
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Public catalog browsing
	limitBrowse = rate.Limit(20)
	burstBrowse = 40
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates a rate limiter for the given bucket key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries from the visitors map.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimit applies a per-identity token bucket with a tier chosen by route.
func RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limit, burst, tier := resolveRateTier(c)

			var identity string
			if userID, ok := utils.GetUserIDFromContext(c.Request().Context()); ok {
				identity = "user:" + userID
			} else {
				ip, _, err := net.SplitHostPort(c.Request().RemoteAddr)
				if err != nil {
					ip = c.Request().RemoteAddr
				}
				identity = "ip:" + ip
			}

			// Same identity keeps separate quotas per tier.
			key := fmt.Sprintf("%s:%s", identity, tier)

			limiter := getVisitor(key, limit, burst)
			if !limiter.Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			}

			return next(c)
		}
	}
}

// resolveRateTier determines which rate limit policy applies to the request.
func resolveRateTier(c echo.Context) (rate.Limit, int, string) {
	path := c.Request().URL.Path

	switch {
	case strings.HasPrefix(path, "/api/auth/"),
		strings.HasPrefix(path, "/api/gift-receiver/"),
		path == "/api/admin/process-payouts":
		return limitStrict, burstStrict, "strict"
	case c.Request().Method == http.MethodGet &&
		(strings.HasPrefix(path, "/api/products") || strings.HasPrefix(path, "/api/services")):
		return limitBrowse, burstBrowse, "browse"
	default:
		return limitGeneral, burstGeneral, "general"
	}
}
