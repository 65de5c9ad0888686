package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item references a catalog row; pricing is never stored here. Checkout
// recomputes everything from the catalog.
type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID *string   `json:"product_id,omitempty"`
	ServiceID *string   `json:"service_id,omitempty"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	// Joined from the catalog for display.
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"image_url"`
	StoreID  string          `json:"store_id"`
}

type AddItemInput struct {
	ProductID *string
	ServiceID *string
	Quantity  int
}
