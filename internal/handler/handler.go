package handler

import (
	"errors"
	"net/http"
	"strconv"

	"giftly-be/internal/cart"
	"giftly-be/internal/catalog"
	"giftly-be/internal/order"
	"giftly-be/internal/payout"
	"giftly-be/internal/review"
	"giftly-be/internal/settings"
	"giftly-be/internal/store"
	"giftly-be/internal/user"
	"giftly-be/internal/utils"
	"giftly-be/internal/wishlist"

	"github.com/labstack/echo/v4"
)

// paginated is the list response envelope.
type paginated struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int32       `json:"page"`
	Limit int32       `json:"limit"`
}

func pageParams(c echo.Context) (limit, page int32) {
	limit, page = 20, 1
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		limit = int32(v)
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = int32(v)
	}
	return limit, page
}

func searchParam(c echo.Context) *string {
	if s := c.QueryParam("search"); s != "" {
		return &s
	}
	return nil
}

func currentUserID(c echo.Context) string {
	id, _ := utils.GetUserIDFromContext(c.Request().Context())
	return id
}

func currentStoreID(c echo.Context) (string, error) {
	id, ok := utils.GetStoreIDFromContext(c.Request().Context())
	if !ok {
		return "", echo.NewHTTPError(http.StatusForbidden, "no store for this account")
	}
	return id, nil
}

// httpError maps domain sentinel errors onto HTTP status codes. Anything
// unmapped becomes a 500 and keeps its message out of the response.
func httpError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, store.ErrStoreNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, wishlist.ErrEntryNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrVendorOrderNotFound),
		errors.Is(err, order.ErrInvalidGiftToken),
		errors.Is(err, payout.ErrPayoutNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, catalog.ErrNotOwner),
		errors.Is(err, review.ErrOwnItem):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, wishlist.ErrAlreadyWished),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrItemUnavailable),
		errors.Is(err, order.ErrGiftAlreadyConfirmed),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrReceiverAddressRequired),
		errors.Is(err, store.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, order.ErrGiftTokenExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())

	case errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidItemRef),
		errors.Is(err, wishlist.ErrInvalidItemRef),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, review.ErrInvalidItemRef),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, settings.ErrPercentOutOfRange),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidItemRef),
		errors.Is(err, order.ErrNotGiftOrder),
		errors.Is(err, store.ErrNotConnected):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
