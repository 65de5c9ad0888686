package middleware

import (
	"net/http"
	"strings"

	"giftly-be/internal/user"
	"giftly-be/internal/utils"

	"github.com/labstack/echo/v4"
)

// Auth resolves the bearer token into user identity on the request
// context. Requests without a valid token pass through anonymous; the
// route guards decide whether that is acceptable.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := user.ParseJWT(tokenStr)
			if err != nil {
				return next(c)
			}

			ctx := utils.SetUserContext(c.Request().Context(), claims.UserID, claims.Email, claims.Role, claims.StoreID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := utils.GetUserIDFromContext(c.Request().Context()); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireRole rejects authenticated requests whose role is not listed.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := utils.GetUserIDFromContext(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			role := utils.GetUserRoleFromContext(ctx)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
