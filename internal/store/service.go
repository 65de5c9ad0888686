package store

import (
	"context"
	"errors"
	"strings"

	"giftly-be/internal/logger"
	"giftly-be/internal/user"
	"giftly-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	RegisterVendor(ctx context.Context, input VendorRegisterInput) (string, user.User, Store, error)
	GetStore(ctx context.Context, id string) (*Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (*Store, error)
	GetVendorStore(ctx context.Context, vendorID string) (*Store, error)
	UpdateVendorStore(ctx context.Context, vendorID string, input UpdateStoreInput) (*Store, error)
	ListPublic(ctx context.Context, search *string, limit, page int32) ([]*Store, int64, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*Store, int64, error)

	Approve(ctx context.Context, storeID, adminID string) (*Store, error)
	Reject(ctx context.Context, storeID, adminID string) (*Store, error)
	Suspend(ctx context.Context, storeID, adminID string) (*Store, error)

	// StoreIDForVendor satisfies user.StoreLookup.
	StoreIDForVendor(ctx context.Context, vendorID string) (*string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterVendor(ctx context.Context, input VendorRegisterInput) (string, user.User, Store, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "RegisterVendor"),
		zap.String("email", input.Email),
	)

	if len(input.Password) < 8 {
		return "", user.User{}, Store{}, user.ErrWeakPassword
	}

	hashed, err := user.HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", user.User{}, Store{}, err
	}

	slug := utils.Slugify(input.StoreName) + "-" + utils.RandomBase36(4)

	u, st, err := s.repo.CreateVendorWithStore(
		ctx, input.Email, hashed, input.Name, input.StoreName, slug, input.Description,
	)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return "", user.User{}, Store{}, user.ErrEmailExists
		}
		log.Error("vendor registration failed", zap.Error(err))
		return "", user.User{}, Store{}, err
	}

	token, err := user.GenerateJWT(u.ID, string(u.Role), u.Email, &st.ID)
	if err != nil {
		return "", user.User{}, Store{}, err
	}

	log.Info("vendor registered",
		zap.String("vendor_id", u.ID),
		zap.String("store_id", st.ID),
	)
	return token, u, st, nil
}

func (s *service) GetStore(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetStoreBySlug(ctx context.Context, slug string) (*Store, error) {
	st, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if st.Status != StatusApproved {
		return nil, ErrStoreNotFound
	}
	return st, nil
}

func (s *service) GetVendorStore(ctx context.Context, vendorID string) (*Store, error) {
	return s.repo.GetByVendorID(ctx, vendorID)
}

func (s *service) UpdateVendorStore(ctx context.Context, vendorID string, input UpdateStoreInput) (*Store, error) {
	st, err := s.repo.GetByVendorID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, st.ID, input)
}

func (s *service) ListPublic(ctx context.Context, search *string, limit, page int32) ([]*Store, int64, error) {
	approved := StatusApproved
	return s.repo.List(ctx, ListFilter{Search: search, Status: &approved, Limit: limit, Page: page})
}

func (s *service) ListAll(ctx context.Context, filter ListFilter) ([]*Store, int64, error) {
	return s.repo.List(ctx, filter)
}

// Approve moves a pending or suspended store to approved. Reactivation of a
// suspended store records the acting admin the same way a first approval does.
func (s *service) Approve(ctx context.Context, storeID, adminID string) (*Store, error) {
	return s.repo.Transition(ctx, storeID,
		[]Status{StatusPending, StatusSuspended}, StatusApproved, &adminID)
}

func (s *service) Reject(ctx context.Context, storeID, adminID string) (*Store, error) {
	return s.repo.Transition(ctx, storeID,
		[]Status{StatusPending}, StatusRejected, &adminID)
}

func (s *service) Suspend(ctx context.Context, storeID, adminID string) (*Store, error) {
	return s.repo.Transition(ctx, storeID,
		[]Status{StatusApproved}, StatusSuspended, nil)
}

func (s *service) StoreIDForVendor(ctx context.Context, vendorID string) (*string, error) {
	st, err := s.repo.GetByVendorID(ctx, vendorID)
	if errors.Is(err, ErrStoreNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st.ID, nil
}
