package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrNotOwner        = errors.New("item does not belong to this store")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
)
