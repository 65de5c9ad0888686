package user

import (
	"context"
	"strings"

	"giftly-be/internal/logger"

	"go.uber.org/zap"
)

// StoreLookup resolves a vendor's store id for session claims.
// Implemented by the store service; nil result means no store yet.
type StoreLookup interface {
	StoreIDForVendor(ctx context.Context, vendorID string) (*string, error)
}

type Service interface {
	Register(ctx context.Context, email, password, name string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetProfile(ctx context.Context, userID string) (User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (User, error)
}

type service struct {
	repo   Repository
	stores StoreLookup
}

func NewService(repo Repository, stores StoreLookup) Service {
	return &service{repo: repo, stores: stores}
}

func (s *service) Register(ctx context.Context, email, password, name string) (string, User, error) {
	log := logger.FromCtx(ctx)

	if len(password) < 8 {
		return "", User{}, ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, name, RoleUser)
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email, nil)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login: email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login: password mismatch", zap.String("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	// Role and store id are resolved once here and live in the token for
	// the rest of the session.
	var storeID *string
	if u.Role == RoleVendor && s.stores != nil {
		storeID, err = s.stores.StoreIDForVendor(ctx, u.ID)
		if err != nil {
			log.Error("failed to resolve vendor store", zap.String("user_id", u.ID), zap.Error(err))
			return "", User{}, err
		}
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email, storeID)
	if err != nil {
		return "", User{}, err
	}

	u.Password = ""
	return token, u, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (User, error) {
	return s.repo.UpdateProfile(ctx, userID, input)
}
