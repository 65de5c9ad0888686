package handler

import (
	"net/http"

	"giftly-be/internal/mailer"

	"github.com/labstack/echo/v4"
)

type HookHandler struct {
	mailer mailer.Mailer
}

func NewHookHandler(m mailer.Mailer) *HookHandler {
	return &HookHandler{mailer: m}
}

// AuthEmail relays identity-provider email events through the transactional
// mail API. The provider retries on 500.
func (h *HookHandler) AuthEmail(c echo.Context) error {
	var req mailer.AuthEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.User.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user email is required")
	}

	if err := h.mailer.SendAuthEmail(c.Request().Context(), &req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to relay email")
	}
	return c.NoContent(http.StatusOK)
}
