package handler

import (
	"net/http"

	"giftly-be/internal/review"
	"giftly-be/internal/wishlist"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	wishlistService wishlist.Service
}

func NewWishlistHandler(wishlistService wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

type addWishRequest struct {
	ProductID *string `json:"product_id"`
	ServiceID *string `json:"service_id"`
}

func (h *WishlistHandler) Add(c echo.Context) error {
	var req addWishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.wishlistService.Add(c.Request().Context(), currentUserID(c), req.ProductID, req.ServiceID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (h *WishlistHandler) Remove(c echo.Context) error {
	if err := h.wishlistService.Remove(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHandler) List(c echo.Context) error {
	entries, err := h.wishlistService.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": entries})
}

type ReviewHandler struct {
	reviewService review.Service
}

func NewReviewHandler(reviewService review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	ProductID *string `json:"product_id"`
	ServiceID *string `json:"service_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
}

func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	r, err := h.reviewService.Create(c.Request().Context(), currentUserID(c), review.CreateInput{
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *ReviewHandler) ListForProduct(c echo.Context) error {
	reviews, err := h.reviewService.ListForProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"reviews": reviews})
}

func (h *ReviewHandler) ListForService(c echo.Context) error {
	reviews, err := h.reviewService.ListForService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"reviews": reviews})
}
