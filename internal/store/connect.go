package store

import (
	"context"

	"giftly-be/internal/logger"
	"giftly-be/internal/payment"

	"go.uber.org/zap"
)

// ConnectService drives vendor onboarding with the payment processor and
// keeps the store's account state in sync.
type ConnectService interface {
	Onboard(ctx context.Context, vendorID, email, refreshURL, returnURL string) (string, error)
	Complete(ctx context.Context, storeID string) (*Store, error)
	DashboardLink(ctx context.Context, vendorID string) (string, error)
	Disconnect(ctx context.Context, vendorID string) error
}

type connectService struct {
	repo    Repository
	gateway payment.Gateway
}

func NewConnectService(repo Repository, gateway payment.Gateway) ConnectService {
	return &connectService{repo: repo, gateway: gateway}
}

// Onboard creates the processor account on first use and returns a hosted
// onboarding link. Calling it again re-issues a link for the same account.
func (s *connectService) Onboard(ctx context.Context, vendorID, email, refreshURL, returnURL string) (string, error) {
	st, err := s.repo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return "", err
	}

	accountID := ""
	if st.ConnectAccountID != nil {
		accountID = *st.ConnectAccountID
	}
	if accountID == "" {
		accountID, err = s.gateway.CreateAccount(ctx, st.ID, email)
		if err != nil {
			return "", err
		}
		if err := s.repo.SetConnectAccount(ctx, st.ID, &accountID, false); err != nil {
			return "", err
		}
	}

	return s.gateway.OnboardingLink(ctx, accountID, refreshURL, returnURL)
}

// Complete re-checks the account after the onboarding return callback and
// flips payouts_enabled accordingly.
func (s *connectService) Complete(ctx context.Context, storeID string) (*Store, error) {
	st, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st.ConnectAccountID == nil {
		return nil, ErrNotConnected
	}

	status, err := s.gateway.AccountStatus(ctx, *st.ConnectAccountID)
	if err != nil {
		return nil, err
	}

	enabled := status.DetailsSubmitted && status.PayoutsEnabled
	if err := s.repo.SetConnectAccount(ctx, st.ID, st.ConnectAccountID, enabled); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("connect onboarding completed",
		zap.String("store_id", st.ID),
		zap.Bool("payouts_enabled", enabled),
	)

	st.PayoutsEnabled = enabled
	return st, nil
}

func (s *connectService) DashboardLink(ctx context.Context, vendorID string) (string, error) {
	st, err := s.repo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return "", err
	}
	if st.ConnectAccountID == nil {
		return "", ErrNotConnected
	}
	return s.gateway.DashboardLink(ctx, *st.ConnectAccountID)
}

func (s *connectService) Disconnect(ctx context.Context, vendorID string) error {
	st, err := s.repo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return err
	}
	if st.ConnectAccountID == nil {
		return ErrNotConnected
	}
	if err := s.gateway.Disconnect(ctx, *st.ConnectAccountID); err != nil {
		return err
	}
	return s.repo.SetConnectAccount(ctx, st.ID, nil, false)
}
