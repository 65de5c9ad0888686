package handler

import (
	"net/http"

	"giftly-be/internal/cart"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService cart.Service
}

func NewCartHandler(cartService cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addCartItemRequest struct {
	ProductID *string `json:"product_id"`
	ServiceID *string `json:"service_id"`
	Quantity  int     `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	items, err := h.cartService.GetCart(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.cartService.AddItem(c.Request().Context(), currentUserID(c), cart.AddItemInput{
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.cartService.UpdateQuantity(c.Request().Context(), currentUserID(c), c.Param("id"), req.Quantity); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.cartService.RemoveItem(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cartService.Clear(c.Request().Context(), currentUserID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
