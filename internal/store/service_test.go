package store

import (
	"context"
	"errors"
	"testing"

	"giftly-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateVendorWithStore(ctx context.Context, email, passwordHash, name, storeName, slug string, description *string) (user.User, Store, error) {
	args := m.Called(ctx, email, passwordHash, name, storeName, slug, description)
	return args.Get(0).(user.User), args.Get(1).(Store), args.Error(2)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) GetByVendorID(ctx context.Context, vendorID string) (*Store, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Store, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, id string, input UpdateStoreInput) (*Store, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) Transition(ctx context.Context, id string, fromStatuses []Status, to Status, adminID *string) (*Store, error) {
	args := m.Called(ctx, id, fromStatuses, to, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Store), args.Error(1)
}

func (m *MockRepository) SetConnectAccount(ctx context.Context, id string, accountID *string, payoutsEnabled bool) error {
	args := m.Called(ctx, id, accountID, payoutsEnabled)
	return args.Error(0)
}

func TestService_RegisterVendor(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "testsecret")
	ctx := context.Background()

	input := VendorRegisterInput{
		Email:     "vendor@example.com",
		Password:  "supersecret",
		Name:      "Vera Vendor",
		StoreName: "Vera's Gifts",
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CreateVendorWithStore",
			ctx, input.Email, mock.AnythingOfType("string"), input.Name, input.StoreName,
			mock.MatchedBy(func(slug string) bool {
				return len(slug) > len("veras-gifts-") && slug[:len("veras-gifts-")] == "veras-gifts-"
			}),
			(*string)(nil),
		).Return(
			user.User{ID: "u-1", Email: input.Email, Role: user.RoleVendor},
			Store{ID: "st-1", VendorID: "u-1", Name: input.StoreName, Status: StatusPending},
			nil,
		)

		token, u, st, err := svc.RegisterVendor(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, StatusPending, st.Status)

		claims, err := user.ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, "vendor", claims.Role)
		require.NotNil(t, claims.StoreID)
		assert.Equal(t, "st-1", *claims.StoreID)
		repo.AssertExpectations(t)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		short := input
		short.Password = "short"

		_, _, _, err := svc.RegisterVendor(ctx, short)
		assert.ErrorIs(t, err, user.ErrWeakPassword)
		repo.AssertNotCalled(t, "CreateVendorWithStore")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CreateVendorWithStore",
			ctx, input.Email, mock.Anything, input.Name, input.StoreName, mock.Anything, (*string)(nil),
		).Return(user.User{}, Store{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, _, err := svc.RegisterVendor(ctx, input)
		assert.ErrorIs(t, err, user.ErrEmailExists)
	})
}

func TestService_GetStoreBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("Approved", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetBySlug", ctx, "gift-box").
			Return(&Store{ID: "st-1", Slug: "gift-box", Status: StatusApproved}, nil)

		st, err := svc.GetStoreBySlug(ctx, "gift-box")
		require.NoError(t, err)
		assert.Equal(t, "st-1", st.ID)
	})

	t.Run("PendingHidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetBySlug", ctx, "gift-box").
			Return(&Store{ID: "st-1", Slug: "gift-box", Status: StatusPending}, nil)

		_, err := svc.GetStoreBySlug(ctx, "gift-box")
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("SuspendedHidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetBySlug", ctx, "gift-box").
			Return(&Store{ID: "st-1", Slug: "gift-box", Status: StatusSuspended}, nil)

		_, err := svc.GetStoreBySlug(ctx, "gift-box")
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}

func TestService_Transitions(t *testing.T) {
	ctx := context.Background()
	adminID := "admin-1"

	t.Run("ApproveFromPendingOrSuspended", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Transition", ctx, "st-1",
			[]Status{StatusPending, StatusSuspended}, StatusApproved, &adminID,
		).Return(&Store{ID: "st-1", Status: StatusApproved, ApprovedBy: &adminID}, nil)

		st, err := svc.Approve(ctx, "st-1", adminID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, st.Status)
		require.NotNil(t, st.ApprovedBy)
		assert.Equal(t, adminID, *st.ApprovedBy)
		repo.AssertExpectations(t)
	})

	t.Run("RejectOnlyFromPending", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Transition", ctx, "st-1",
			[]Status{StatusPending}, StatusRejected, &adminID,
		).Return(&Store{ID: "st-1", Status: StatusRejected}, nil)

		st, err := svc.Reject(ctx, "st-1", adminID)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, st.Status)
		repo.AssertExpectations(t)
	})

	t.Run("SuspendKeepsOriginalApprover", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		original := "admin-0"
		repo.On("Transition", ctx, "st-1",
			[]Status{StatusApproved}, StatusSuspended, (*string)(nil),
		).Return(&Store{ID: "st-1", Status: StatusSuspended, ApprovedBy: &original}, nil)

		st, err := svc.Suspend(ctx, "st-1", adminID)
		require.NoError(t, err)
		assert.Equal(t, StatusSuspended, st.Status)
		require.NotNil(t, st.ApprovedBy)
		assert.Equal(t, original, *st.ApprovedBy)
		repo.AssertExpectations(t)
	})

	t.Run("InvalidSourceState", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Transition", ctx, "st-1",
			[]Status{StatusPending}, StatusRejected, &adminID,
		).Return(nil, ErrInvalidTransition)

		_, err := svc.Reject(ctx, "st-1", adminID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_StoreIDForVendor(t *testing.T) {
	ctx := context.Background()

	t.Run("HasStore", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByVendorID", ctx, "u-1").
			Return(&Store{ID: "st-1", VendorID: "u-1"}, nil)

		id, err := svc.StoreIDForVendor(ctx, "u-1")
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "st-1", *id)
	})

	t.Run("NoStore", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByVendorID", ctx, "u-2").Return(nil, ErrStoreNotFound)

		id, err := svc.StoreIDForVendor(ctx, "u-2")
		require.NoError(t, err)
		assert.Nil(t, id)
	})
}
