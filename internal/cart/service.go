package cart

import (
	"context"

	"giftly-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	AddItem(ctx context.Context, userID string, input AddItemInput) (string, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
	GetCart(ctx context.Context, userID string) ([]Item, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AddItem(ctx context.Context, userID string, input AddItemInput) (string, error) {
	if input.Quantity <= 0 {
		return "", ErrInvalidQuantity
	}
	if (input.ProductID == nil) == (input.ServiceID == nil) {
		return "", ErrInvalidItemRef
	}

	id, err := s.repo.Upsert(ctx, userID, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to add cart item",
			zap.String("user_id", userID), zap.Error(err))
		return "", err
	}
	return id, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID string) error {
	return s.repo.Remove(ctx, userID, itemID)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

func (s *service) GetCart(ctx context.Context, userID string) ([]Item, error) {
	return s.repo.List(ctx, userID)
}
