package settings

import (
	"context"
	"errors"

	"giftly-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrPercentOutOfRange = errors.New("percent must be between 0 and 100")

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, adminID string, input UpdateInput) (Settings, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context) (Settings, error) {
	return s.repo.Get(ctx)
}

func (s *service) Update(ctx context.Context, adminID string, input UpdateInput) (Settings, error) {
	hundred := decimal.NewFromInt(100)
	for _, p := range []*decimal.Decimal{input.CommissionPercent, input.TaxPercent, input.PluginTaxPercent} {
		if p == nil {
			continue
		}
		if p.IsNegative() || p.GreaterThan(hundred) {
			return Settings{}, ErrPercentOutOfRange
		}
	}

	updated, err := s.repo.Update(ctx, adminID, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update platform settings",
			zap.String("admin_id", adminID), zap.Error(err))
		return Settings{}, err
	}

	logger.FromCtx(ctx).Info("platform settings updated",
		zap.String("admin_id", adminID),
		zap.String("commission_percent", updated.CommissionPercent.String()),
	)
	return updated, nil
}
