package catalog

import (
	"context"

	"giftly-be/internal/logger"

	"go.uber.org/zap"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, storeID string, input ProductInput) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	BrowseProducts(ctx context.Context, search *string, limit, page int32) ([]*Product, int64, error)
	StoreProducts(ctx context.Context, storeID string, limit, page int32) ([]*Product, int64, error)
	UpdateProduct(ctx context.Context, id, storeID string, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id, storeID string) error

	CreateService(ctx context.Context, storeID string, input ServiceInput) (*Service, error)
	GetService(ctx context.Context, id string) (*Service, error)
	BrowseServices(ctx context.Context, search *string, limit, page int32) ([]*Service, int64, error)
	StoreServices(ctx context.Context, storeID string, limit, page int32) ([]*Service, int64, error)
	UpdateService(ctx context.Context, id, storeID string, input UpdateServiceInput) (*Service, error)
	DeleteService(ctx context.Context, id, storeID string) error
}

type catalogService struct {
	repo Repository
}

func NewService(repo Repository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateProduct(ctx context.Context, storeID string, input ProductInput) (*Product, error) {
	if input.Price.LessThanOrEqual(decimalZero) {
		return nil, ErrInvalidPrice
	}

	p, err := s.repo.CreateProduct(ctx, storeID, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *catalogService) BrowseProducts(ctx context.Context, search *string, limit, page int32) ([]*Product, int64, error) {
	return s.repo.ListProducts(ctx, ListFilter{Search: search, Limit: limit, Page: page})
}

func (s *catalogService) StoreProducts(ctx context.Context, storeID string, limit, page int32) ([]*Product, int64, error) {
	return s.repo.ListProducts(ctx, ListFilter{StoreID: &storeID, Limit: limit, Page: page})
}

func (s *catalogService) UpdateProduct(ctx context.Context, id, storeID string, input UpdateProductInput) (*Product, error) {
	if input.Price != nil && input.Price.LessThanOrEqual(decimalZero) {
		return nil, ErrInvalidPrice
	}
	return s.repo.UpdateProduct(ctx, id, storeID, input)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id, storeID string) error {
	return s.repo.DeleteProduct(ctx, id, storeID)
}

func (s *catalogService) CreateService(ctx context.Context, storeID string, input ServiceInput) (*Service, error) {
	if input.Price.LessThanOrEqual(decimalZero) {
		return nil, ErrInvalidPrice
	}

	sv, err := s.repo.CreateService(ctx, storeID, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create service",
			zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	return sv, nil
}

func (s *catalogService) GetService(ctx context.Context, id string) (*Service, error) {
	return s.repo.GetService(ctx, id)
}

func (s *catalogService) BrowseServices(ctx context.Context, search *string, limit, page int32) ([]*Service, int64, error) {
	return s.repo.ListServices(ctx, ListFilter{Search: search, Limit: limit, Page: page})
}

func (s *catalogService) StoreServices(ctx context.Context, storeID string, limit, page int32) ([]*Service, int64, error) {
	return s.repo.ListServices(ctx, ListFilter{StoreID: &storeID, Limit: limit, Page: page})
}

func (s *catalogService) UpdateService(ctx context.Context, id, storeID string, input UpdateServiceInput) (*Service, error) {
	if input.Price != nil && input.Price.LessThanOrEqual(decimalZero) {
		return nil, ErrInvalidPrice
	}
	return s.repo.UpdateService(ctx, id, storeID, input)
}

func (s *catalogService) DeleteService(ctx context.Context, id, storeID string) error {
	return s.repo.DeleteService(ctx, id, storeID)
}
