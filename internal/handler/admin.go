package handler

import (
	"net/http"

	"giftly-be/internal/order"
	"giftly-be/internal/payout"
	"giftly-be/internal/settings"
	"giftly-be/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	storeService    store.Service
	settingsService settings.Service
	orderService    order.Service
	payoutService   payout.Service
}

func NewAdminHandler(
	storeService store.Service,
	settingsService settings.Service,
	orderService order.Service,
	payoutService payout.Service,
) *AdminHandler {
	return &AdminHandler{
		storeService:    storeService,
		settingsService: settingsService,
		orderService:    orderService,
		payoutService:   payoutService,
	}
}

// -------- commission / settings --------

type updateSettingsRequest struct {
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
	TaxPercent        *decimal.Decimal `json:"tax_percent"`
	PluginTaxPercent  *decimal.Decimal `json:"plugin_tax_percent"`
}

func (h *AdminHandler) GetSettings(c echo.Context) error {
	s, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	s, err := h.settingsService.Update(c.Request().Context(), currentUserID(c), settings.UpdateInput{
		CommissionPercent: req.CommissionPercent,
		TaxPercent:        req.TaxPercent,
		PluginTaxPercent:  req.PluginTaxPercent,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s)
}

// -------- stores --------

func (h *AdminHandler) ListStores(c echo.Context) error {
	limit, page := pageParams(c)

	filter := store.ListFilter{Search: searchParam(c), Limit: limit, Page: page}
	if s := c.QueryParam("status"); s != "" {
		status := store.Status(s)
		filter.Status = &status
	}

	stores, total, err := h.storeService.ListAll(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: stores, Total: total, Page: page, Limit: limit})
}

func (h *AdminHandler) ApproveStore(c echo.Context) error {
	st, err := h.storeService.Approve(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *AdminHandler) RejectStore(c echo.Context) error {
	st, err := h.storeService.Reject(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *AdminHandler) SuspendStore(c echo.Context) error {
	st, err := h.storeService.Suspend(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

// -------- orders --------

func (h *AdminHandler) ListOrders(c echo.Context) error {
	limit, page := pageParams(c)

	filter := order.ListFilter{Search: searchParam(c), Limit: limit, Page: page}
	if s := c.QueryParam("status"); s != "" {
		status := order.Status(s)
		filter.Status = &status
	}

	orders, total, err := h.orderService.ListAllOrders(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: orders, Total: total, Page: page, Limit: limit})
}

// -------- payouts --------

type processPayoutsRequest struct {
	PayoutIDs []string `json:"payout_ids"`
}

func (h *AdminHandler) ListPayouts(c echo.Context) error {
	limit, page := pageParams(c)
	if c.QueryParam("limit") == "" {
		limit = 10
	}

	filter := payout.ListFilter{Search: searchParam(c), Limit: limit, Page: page}
	if s := c.QueryParam("store_name"); s != "" {
		filter.StoreName = &s
	}
	if s := c.QueryParam("vendor_name"); s != "" {
		filter.VendorName = &s
	}
	if s := c.QueryParam("status"); s != "" {
		status := payout.Status(s)
		filter.Status = &status
	}

	payouts, total, err := h.payoutService.List(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: payouts, Total: total, Page: page, Limit: limit})
}

func (h *AdminHandler) ProcessPayouts(c echo.Context) error {
	var req processPayoutsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.PayoutIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "payout_ids is required")
	}

	result, err := h.payoutService.ProcessBatch(c.Request().Context(), req.PayoutIDs)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}
