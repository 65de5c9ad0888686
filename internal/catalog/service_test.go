package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateProduct(ctx context.Context, storeID string, input ProductInput) (*Product, error) {
	args := m.Called(ctx, storeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) ListProducts(ctx context.Context, filter ListFilter) ([]*Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) UpdateProduct(ctx context.Context, id, storeID string, input UpdateProductInput) (*Product, error) {
	args := m.Called(ctx, id, storeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) DeleteProduct(ctx context.Context, id, storeID string) error {
	args := m.Called(ctx, id, storeID)
	return args.Error(0)
}

func (m *MockRepository) CreateService(ctx context.Context, storeID string, input ServiceInput) (*Service, error) {
	args := m.Called(ctx, storeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *MockRepository) GetService(ctx context.Context, id string) (*Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *MockRepository) ListServices(ctx context.Context, filter ListFilter) ([]*Service, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Service), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) UpdateService(ctx context.Context, id, storeID string, input UpdateServiceInput) (*Service, error) {
	args := m.Called(ctx, id, storeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *MockRepository) DeleteService(ctx context.Context, id, storeID string) error {
	args := m.Called(ctx, id, storeID)
	return args.Error(0)
}

func TestService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := ProductInput{Name: "Gift Box", Price: decimal.RequireFromString("19.99"), Stock: 5}
		repo.On("CreateProduct", ctx, "st-1", input).
			Return(&Product{ID: "p-1", StoreID: "st-1", Name: "Gift Box"}, nil)

		p, err := svc.CreateProduct(ctx, "st-1", input)
		require.NoError(t, err)
		assert.Equal(t, "p-1", p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.CreateProduct(ctx, "st-1", ProductInput{Name: "Free", Price: decimal.Zero})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "CreateProduct")
	})

	t.Run("NegativePrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.CreateProduct(ctx, "st-1", ProductInput{
			Name: "Broken", Price: decimal.RequireFromString("-1"),
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("PriceUnchanged", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		name := "Renamed"
		input := UpdateProductInput{Name: &name}
		repo.On("UpdateProduct", ctx, "p-1", "st-1", input).
			Return(&Product{ID: "p-1", Name: name}, nil)

		p, err := svc.UpdateProduct(ctx, "p-1", "st-1", input)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
	})

	t.Run("InvalidNewPrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		zero := decimal.Zero
		_, err := svc.UpdateProduct(ctx, "p-1", "st-1", UpdateProductInput{Price: &zero})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		repo.AssertNotCalled(t, "UpdateProduct")
	})

	t.Run("OtherStoresProduct", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := UpdateProductInput{}
		repo.On("UpdateProduct", ctx, "p-1", "st-2", input).Return(nil, ErrNotOwner)

		_, err := svc.UpdateProduct(ctx, "p-1", "st-2", input)
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestService_Browse(t *testing.T) {
	ctx := context.Background()

	t.Run("ProductsWithSearch", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		search := "candle"
		repo.On("ListProducts", ctx, ListFilter{Search: &search, Limit: 20, Page: 1}).
			Return([]*Product{{ID: "p-1"}}, int64(1), nil)

		items, total, err := svc.BrowseProducts(ctx, &search, 20, 1)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, int64(1), total)
	})

	t.Run("StoreServicesScoped", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		storeID := "st-1"
		repo.On("ListServices", ctx, ListFilter{StoreID: &storeID, Limit: 10, Page: 2}).
			Return([]*Service{}, int64(0), nil)

		_, _, err := svc.StoreServices(ctx, storeID, 10, 2)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_CreateService(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := ServiceInput{Name: "Gift Wrapping", Price: decimal.RequireFromString("4.50")}
		repo.On("CreateService", ctx, "st-1", input).
			Return(&Service{ID: "s-1", StoreID: "st-1"}, nil)

		s, err := svc.CreateService(ctx, "st-1", input)
		require.NoError(t, err)
		assert.Equal(t, "s-1", s.ID)
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.CreateService(ctx, "st-1", ServiceInput{Name: "Free", Price: decimal.Zero})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}
