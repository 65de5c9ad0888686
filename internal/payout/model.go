package payout

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Payout is materialized when a vendor order is delivered. The commission
// percent is the platform setting at that moment, frozen into the row.
type Payout struct {
	ID                string          `json:"id"`
	VendorOrderID     string          `json:"vendor_order_id"`
	VendorID          string          `json:"vendor_id"`
	StoreID           string          `json:"store_id"`
	OrderTotal        decimal.Decimal `json:"order_total"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	CommissionAmount  decimal.Decimal `json:"commission_amount"`
	VendorAmount      decimal.Decimal `json:"vendor_amount"`
	Status            Status          `json:"status"`
	FailureReason     *string         `json:"failure_reason,omitempty"`
	TransferID        *string         `json:"transfer_id,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`

	// Joined for admin views.
	OrderNumber string `json:"order_number"`
	StoreName   string `json:"store_name"`
	VendorName  string `json:"vendor_name"`

	// Joined for settlement.
	ConnectAccountID *string `json:"-"`
	PayoutsEnabled   bool    `json:"-"`
}

type ListFilter struct {
	Search     *string
	StoreName  *string
	VendorName *string
	Status     *Status
	Limit      int32
	Page       int32
}

// BatchResult summarizes a process-payouts run. One failing row never aborts
// the rest of the batch.
type BatchResult struct {
	Processed int          `json:"processed"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Errors    []BatchError `json:"errors"`
}

type BatchError struct {
	PayoutID string `json:"payout_id"`
	Message  string `json:"message"`
}
