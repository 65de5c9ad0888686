package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image_url"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Denormalized for listings.
	StoreName string `json:"store_name"`
}

// Service is a bookable offering; unlike a Product it carries no stock.
type Service struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	StoreName string `json:"store_name"`
}

type ProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	ImageURL    *string
}

type ServiceInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	ImageURL    *string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	ImageURL    *string
	Active      *bool
}

type UpdateServiceInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Active      *bool
}

type ListFilter struct {
	Search  *string
	StoreID *string
	Limit   int32
	Page    int32
}

var decimalZero = decimal.Zero
