package middleware

import (
	"time"

	"giftly-be/internal/logger"
	"giftly-be/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger tags every request with an id and logs it in structured
// form once the handler chain returns.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			ctx := logger.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			userID, _ := utils.GetUserIDFromContext(c.Request().Context())
			logger.FromCtx(ctx).Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
				zap.String("user_id", userID),
			)
			return err
		}
	}
}
