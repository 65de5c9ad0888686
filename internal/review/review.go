package review

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrOwnItem        = errors.New("vendors cannot review their own items")
	ErrInvalidItemRef = errors.New("review must reference exactly one product or service")
)

type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProductID  *string   `json:"product_id,omitempty"`
	ServiceID  *string   `json:"service_id,omitempty"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName string    `json:"author_name"`
}

type CreateInput struct {
	ProductID *string
	ServiceID *string
	Rating    int
	Comment   *string
}

type Repository interface {
	Create(ctx context.Context, userID string, input CreateInput) (*Review, error)
	ListForProduct(ctx context.Context, productID string) ([]Review, error)
	ListForService(ctx context.Context, serviceID string) ([]Review, error)
	ItemOwnerVendorID(ctx context.Context, productID, serviceID *string) (string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID string, input CreateInput) (*Review, error) {
	var rv Review
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, product_id, service_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, product_id, service_id, rating, comment, created_at
	`, userID, input.ProductID, input.ServiceID, input.Rating, input.Comment).
		Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.ServiceID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) list(ctx context.Context, col, id string) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rv.id, rv.user_id, rv.product_id, rv.service_id, rv.rating, rv.comment, rv.created_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.`+col+` = $1
		ORDER BY rv.created_at DESC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.ServiceID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.AuthorName); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *repository) ListForProduct(ctx context.Context, productID string) ([]Review, error) {
	return r.list(ctx, "product_id", productID)
}

func (r *repository) ListForService(ctx context.Context, serviceID string) ([]Review, error) {
	return r.list(ctx, "service_id", serviceID)
}

func (r *repository) ItemOwnerVendorID(ctx context.Context, productID, serviceID *string) (string, error) {
	var vendorID string
	var err error
	if productID != nil {
		err = r.db.QueryRowContext(ctx, `
			SELECT s.vendor_id FROM products p JOIN stores s ON s.id = p.store_id WHERE p.id = $1
		`, *productID).Scan(&vendorID)
	} else {
		err = r.db.QueryRowContext(ctx, `
			SELECT s.vendor_id FROM services sv JOIN stores s ON s.id = sv.store_id WHERE sv.id = $1
		`, *serviceID).Scan(&vendorID)
	}
	return vendorID, err
}

type Service interface {
	Create(ctx context.Context, userID string, input CreateInput) (*Review, error)
	ListForProduct(ctx context.Context, productID string) ([]Review, error)
	ListForService(ctx context.Context, serviceID string) ([]Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, input CreateInput) (*Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if (input.ProductID == nil) == (input.ServiceID == nil) {
		return nil, ErrInvalidItemRef
	}

	ownerID, err := s.repo.ItemOwnerVendorID(ctx, input.ProductID, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if ownerID == userID {
		return nil, ErrOwnItem
	}

	return s.repo.Create(ctx, userID, input)
}

func (s *service) ListForProduct(ctx context.Context, productID string) ([]Review, error) {
	return s.repo.ListForProduct(ctx, productID)
}

func (s *service) ListForService(ctx context.Context, serviceID string) ([]Review, error) {
	return s.repo.ListForService(ctx, serviceID)
}
