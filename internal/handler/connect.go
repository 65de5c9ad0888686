package handler

import (
	"net/http"

	"giftly-be/internal/store"
	"giftly-be/internal/utils"

	"github.com/labstack/echo/v4"
)

type ConnectHandler struct {
	connectService store.ConnectService
	siteURL        string
}

func NewConnectHandler(connectService store.ConnectService, siteURL string) *ConnectHandler {
	return &ConnectHandler{connectService: connectService, siteURL: siteURL}
}

func (h *ConnectHandler) Onboard(c echo.Context) error {
	ctx := c.Request().Context()

	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}

	refreshURL := h.siteURL + "/vendor/payouts?connect=refresh"
	returnURL := h.siteURL + "/vendor/payouts?connect=complete&store_id=" + storeID

	url, err := h.connectService.Onboard(ctx, currentUserID(c), utils.GetUserEmailFromContext(ctx), refreshURL, returnURL)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// Complete is the onboarding return callback. The frontend lands back here
// with the store id and we re-check the account before trusting it.
func (h *ConnectHandler) Complete(c echo.Context) error {
	storeID := c.QueryParam("store_id")
	if storeID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "store_id is required")
	}

	st, err := h.connectService.Complete(c.Request().Context(), storeID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"store_id":        st.ID,
		"payouts_enabled": st.PayoutsEnabled,
	})
}

func (h *ConnectHandler) DashboardLink(c echo.Context) error {
	url, err := h.connectService.DashboardLink(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *ConnectHandler) Disconnect(c echo.Context) error {
	if err := h.connectService.Disconnect(c.Request().Context(), currentUserID(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "disconnected"})
}
