package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEntryNotFound  = errors.New("wishlist entry not found")
	ErrAlreadyWished  = errors.New("item already in wishlist")
	ErrInvalidItemRef = errors.New("wishlist entry must reference exactly one product or service")
)

type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID *string   `json:"product_id,omitempty"`
	ServiceID *string   `json:"service_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"image_url,omitempty"`
}

type Repository interface {
	Add(ctx context.Context, userID string, productID, serviceID *string) (string, error)
	Remove(ctx context.Context, userID, entryID string) error
	List(ctx context.Context, userID string) ([]Entry, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, userID string, productID, serviceID *string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO wishlists (user_id, product_id, service_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, productID, serviceID).Scan(&id)
	if err != nil && strings.Contains(err.Error(), "wishlists_user_item_key") {
		return "", ErrAlreadyWished
	}
	return id, err
}

func (r *repository) Remove(ctx context.Context, userID, entryID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlists WHERE id = $1 AND user_id = $2
	`, entryID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.service_id, w.created_at,
		       COALESCE(p.name, sv.name),
		       COALESCE(p.price, sv.price),
		       COALESCE(p.image_url, sv.image_url)
		FROM wishlists w
		LEFT JOIN products p ON p.id = w.product_id
		LEFT JOIN services sv ON sv.id = w.service_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProductID, &e.ServiceID, &e.CreatedAt,
			&e.Name, &e.Price, &e.ImageURL); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type Service interface {
	Add(ctx context.Context, userID string, productID, serviceID *string) (string, error)
	Remove(ctx context.Context, userID, entryID string) error
	List(ctx context.Context, userID string) ([]Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID string, productID, serviceID *string) (string, error) {
	if (productID == nil) == (serviceID == nil) {
		return "", ErrInvalidItemRef
	}
	return s.repo.Add(ctx, userID, productID, serviceID)
}

func (s *service) Remove(ctx context.Context, userID, entryID string) error {
	return s.repo.Remove(ctx, userID, entryID)
}

func (s *service) List(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.List(ctx, userID)
}
