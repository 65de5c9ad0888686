package payment

import "context"

// Gateway is the Connect-style payment processor surface the platform
// depends on: vendor account onboarding plus push transfers for payouts.
type Gateway interface {
	CreateAccount(ctx context.Context, storeID, email string) (string, error)
	OnboardingLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	AccountStatus(ctx context.Context, accountID string) (*AccountStatus, error)
	DashboardLink(ctx context.Context, accountID string) (string, error)
	Transfer(ctx context.Context, accountID string, amount string, currency, idempotencyKey string) (string, error)
	Disconnect(ctx context.Context, accountID string) error
}

type AccountStatus struct {
	AccountID        string `json:"account_id"`
	DetailsSubmitted bool   `json:"details_submitted"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
}
