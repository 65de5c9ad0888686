package cart

import "errors"

var (
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidItemRef  = errors.New("cart item must reference exactly one product or service")
)
