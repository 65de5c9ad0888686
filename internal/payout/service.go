package payout

import (
	"context"
	"errors"

	"giftly-be/internal/logger"
	"giftly-be/internal/payment"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]*Payout, int64, error)
	ProcessBatch(ctx context.Context, payoutIDs []string) (*BatchResult, error)
}

type service struct {
	repo     Repository
	gateway  payment.Gateway
	currency string
}

func NewService(repo Repository, gateway payment.Gateway, currency string) Service {
	return &service{repo: repo, gateway: gateway, currency: currency}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Payout, int64, error) {
	return s.repo.List(ctx, filter)
}

// ProcessBatch settles each selected payout independently. One failing
// transfer never aborts the rest of the batch, and already paid rows are
// skipped so an admin can safely re-submit the same selection.
func (s *service) ProcessBatch(ctx context.Context, payoutIDs []string) (*BatchResult, error) {
	log := logger.FromCtx(ctx).With(zap.Int("batch_size", len(payoutIDs)))
	log.Info("Processing payout batch")

	result := &BatchResult{Errors: []BatchError{}}

	for _, id := range payoutIDs {
		p, err := s.repo.GetForSettlement(ctx, id)
		if err != nil {
			if errors.Is(err, ErrPayoutNotFound) {
				result.Failed++
				result.Errors = append(result.Errors, BatchError{PayoutID: id, Message: "payout not found"})
				continue
			}
			return nil, err
		}

		if p.Status == StatusPaid {
			result.Skipped++
			continue
		}

		if p.ConnectAccountID == nil || *p.ConnectAccountID == "" {
			if err := s.repo.MarkFailed(ctx, id, "vendor has no connected payout account"); err != nil {
				return nil, err
			}
			result.Failed++
			result.Errors = append(result.Errors, BatchError{PayoutID: id, Message: "vendor has no connected payout account"})
			continue
		}

		transferID, err := s.gateway.Transfer(ctx, *p.ConnectAccountID, p.VendorAmount.StringFixed(2), s.currency, "payout-"+p.ID)
		if err != nil {
			log.Warn("payout transfer failed",
				zap.String("payout_id", id),
				zap.Error(err),
			)
			if markErr := s.repo.MarkFailed(ctx, id, err.Error()); markErr != nil {
				return nil, markErr
			}
			result.Failed++
			result.Errors = append(result.Errors, BatchError{PayoutID: id, Message: err.Error()})
			continue
		}

		if err := s.repo.MarkPaid(ctx, id, transferID); err != nil {
			return nil, err
		}
		result.Processed++
	}

	log.Info("Payout batch done",
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
