package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Upsert(ctx context.Context, userID string, input AddItemInput) (string, error) {
	args := m.Called(ctx, userID, input)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) Remove(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockRepository) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, userID string) ([]Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Product", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		input := AddItemInput{ProductID: strPtr("p-1"), Quantity: 2}
		repo.On("Upsert", ctx, "u-1", input).Return("ci-1", nil)

		id, err := svc.AddItem(ctx, "u-1", input)
		require.NoError(t, err)
		assert.Equal(t, "ci-1", id)
		repo.AssertExpectations(t)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, "u-1", AddItemInput{ProductID: strPtr("p-1")})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		repo.AssertNotCalled(t, "Upsert")
	})

	t.Run("BothRefs", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, "u-1", AddItemInput{
			ProductID: strPtr("p-1"), ServiceID: strPtr("s-1"), Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrInvalidItemRef)
	})

	t.Run("NoRefs", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.AddItem(ctx, "u-1", AddItemInput{Quantity: 1})
		assert.ErrorIs(t, err, ErrInvalidItemRef)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("UpdateQuantity", ctx, "u-1", "ci-1", 3).Return(nil)

		err := svc.UpdateQuantity(ctx, "u-1", "ci-1", 3)
		assert.NoError(t, err)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.UpdateQuantity(ctx, "u-1", "ci-1", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		repo.AssertNotCalled(t, "UpdateQuantity")
	})

	t.Run("NotOwned", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("UpdateQuantity", ctx, "u-2", "ci-1", 1).Return(ErrItemNotFound)

		err := svc.UpdateQuantity(ctx, "u-2", "ci-1", 1)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}
