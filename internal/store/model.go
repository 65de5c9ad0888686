package store

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusSuspended Status = "suspended"
	StatusRejected  Status = "rejected"
)

type Store struct {
	ID          string  `json:"id"`
	VendorID    string  `json:"vendor_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	Status      Status  `json:"status"`

	// Connect-style processor account. PayoutsEnabled flips once the
	// onboarding completion callback confirms the account.
	ConnectAccountID *string `json:"-"`
	PayoutsEnabled   bool    `json:"payouts_enabled"`

	ApprovedBy  *string    `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	SuspendedAt *time.Time `json:"suspended_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type VendorRegisterInput struct {
	Email       string
	Password    string
	Name        string
	StoreName   string
	Description *string
}

type UpdateStoreInput struct {
	Name        *string
	Description *string
	LogoURL     *string
}

type ListFilter struct {
	Search *string
	Status *Status
	Limit  int32
	Page   int32
}
