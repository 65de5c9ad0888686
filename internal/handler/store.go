package handler

import (
	"net/http"

	"giftly-be/internal/store"

	"github.com/labstack/echo/v4"
)

type StoreHandler struct {
	storeService store.Service
}

func NewStoreHandler(storeService store.Service) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

func (h *StoreHandler) ListPublic(c echo.Context) error {
	ctx := c.Request().Context()
	limit, page := pageParams(c)

	stores, total, err := h.storeService.ListPublic(ctx, searchParam(c), limit, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: stores, Total: total, Page: page, Limit: limit})
}

func (h *StoreHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()

	st, err := h.storeService.GetStoreBySlug(ctx, c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

type updateStoreRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

func (h *StoreHandler) GetVendorStore(c echo.Context) error {
	ctx := c.Request().Context()

	st, err := h.storeService.GetVendorStore(ctx, currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StoreHandler) UpdateVendorStore(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	st, err := h.storeService.UpdateVendorStore(ctx, currentUserID(c), store.UpdateStoreInput{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}
