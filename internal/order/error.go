package order

import "errors"

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrVendorOrderNotFound     = errors.New("vendor order not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrEmptyOrder              = errors.New("order has no items")
	ErrInvalidQuantity         = errors.New("quantity must be greater than zero")
	ErrInvalidItemRef          = errors.New("order item must reference exactly one product or service")
	ErrInsufficientStock       = errors.New("insufficient stock for one or more items")
	ErrItemUnavailable         = errors.New("one or more items are no longer available")
	ErrInvalidTransition       = errors.New("invalid order status transition")
	ErrReceiverAddressRequired = errors.New("gift order has no receiver address yet")
	ErrInvalidGiftToken        = errors.New("gift token is invalid")
	ErrGiftTokenExpired        = errors.New("gift token has expired")
	ErrGiftAlreadyConfirmed    = errors.New("gift order already confirmed")
	ErrNotGiftOrder            = errors.New("order is not a gift order")
)
