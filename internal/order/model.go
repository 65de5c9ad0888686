package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	TypeSelf OrderType = "self"
	TypeGift OrderType = "gift"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusDispatched Status = "dispatched"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Contact is the denormalized party block stored on every order. Addresses
// are free text; there is no address book entity.
type Contact struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type Order struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	OrderType   OrderType `json:"order_type"`
	Status      Status    `json:"status"`

	Sender   Contact `json:"sender"`
	Receiver Contact `json:"receiver"`
	// ShippingAddress mirrors the sender/receiver address for self orders and
	// stays empty on gift orders until the receiver confirms.
	ShippingAddress *string `json:"shipping_address,omitempty"`

	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`

	// Set iff OrderType == TypeGift.
	GiftToken *string `json:"gift_token,omitempty"`
	GiftLink  *string `json:"gift_link,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	Items        []OrderItem   `json:"items,omitempty"`
	VendorOrders []VendorOrder `json:"vendor_orders,omitempty"`
}

// OrderItem snapshots name/price/image at purchase time so later catalog
// edits never alter historical orders.
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"-"`
	ProductID *string         `json:"product_id,omitempty"`
	ServiceID *string         `json:"service_id,omitempty"`
	StoreID   string          `json:"store_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  *string         `json:"image_url,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// VendorOrder is the per-(vendor, store) projection of an order. The set of
// vendor orders for an order partitions its items by owning store.
type VendorOrder struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	VendorID    string          `json:"vendor_id"`
	StoreID     string          `json:"store_id"`
	Status      Status          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Joined for vendor/admin views.
	OrderNumber string      `json:"order_number"`
	StoreName   string      `json:"store_name"`
	Items       []OrderItem `json:"items,omitempty"`
}

type ItemRef struct {
	ProductID *string
	ServiceID *string
	Quantity  int
}

type CreateOrderInput struct {
	OrderType OrderType
	Sender    Contact
	// Receiver is optional for gift orders (the gift link collects it later)
	// and ignored for self orders beyond name/email prefill.
	Receiver *Contact
	Items    []ItemRef
}

// ResolvedItem is a catalog row located for checkout, with its owning store
// and vendor.
type ResolvedItem struct {
	ProductID *string
	ServiceID *string
	StoreID   string
	VendorID  string
	Name      string
	Price     decimal.Decimal
	ImageURL  *string
	IsProduct bool
}

type ListFilter struct {
	Status *Status
	Search *string
	Limit  int32
	Page   int32
}

// GiftPreview is the receiver-facing view of a gift order. It exposes no
// addresses and no amounts beyond item names.
type GiftPreview struct {
	OrderNumber string            `json:"order_number"`
	SenderName  string            `json:"sender_name"`
	Status      Status            `json:"status"`
	Confirmed   bool              `json:"confirmed"`
	Items       []GiftPreviewItem `json:"items"`
}

type GiftPreviewItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	ImageURL *string `json:"image_url,omitempty"`
}

// SplitPayout divides a delivered vendor order's total into the platform
// commission and the vendor's share. The commission is rounded to cents and
// the vendor takes the remainder, so the two always sum back to the total.
func SplitPayout(total, commissionPercent decimal.Decimal) (commission, vendor decimal.Decimal) {
	commission = total.Mul(commissionPercent).Div(decimal.NewFromInt(100)).Round(2)
	vendor = total.Sub(commission)
	return commission, vendor
}
