package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"giftly-be/internal/logger"
	"giftly-be/internal/user"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateVendorWithStore(ctx context.Context, email, passwordHash, name, storeName, slug string, description *string) (user.User, Store, error)
	GetByID(ctx context.Context, id string) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	GetByVendorID(ctx context.Context, vendorID string) (*Store, error)
	List(ctx context.Context, filter ListFilter) ([]*Store, int64, error)
	Update(ctx context.Context, id string, input UpdateStoreInput) (*Store, error)

	// Transition performs a compare-and-set status change. It returns
	// ErrInvalidTransition when the row is not in one of fromStatuses.
	Transition(ctx context.Context, id string, fromStatuses []Status, to Status, adminID *string) (*Store, error)

	SetConnectAccount(ctx context.Context, id string, accountID *string, payoutsEnabled bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const storeColumns = `
	id, vendor_id, name, slug, description, logo_url, status,
	connect_account_id, payouts_enabled,
	approved_by, approved_at, suspended_at, rejected_at,
	created_at, updated_at`

func scanStore(row interface{ Scan(...any) error }) (*Store, error) {
	var s Store
	err := row.Scan(
		&s.ID, &s.VendorID, &s.Name, &s.Slug, &s.Description, &s.LogoURL, &s.Status,
		&s.ConnectAccountID, &s.PayoutsEnabled,
		&s.ApprovedBy, &s.ApprovedAt, &s.SuspendedAt, &s.RejectedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) CreateVendorWithStore(
	ctx context.Context,
	email, passwordHash, name, storeName, slug string,
	description *string,
) (user.User, Store, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateVendorWithStore"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return user.User{}, Store{}, err
	}
	defer tx.Rollback()

	var u user.User
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, 'vendor')
		RETURNING id, email, name, role, created_at, updated_at
	`, email, passwordHash, name).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		log.Error("failed to insert vendor user", zap.Error(err))
		return user.User{}, Store{}, err
	}

	var s Store
	err = tx.QueryRowContext(ctx, `
		INSERT INTO stores (vendor_id, name, slug, description, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING `+storeColumns+`
	`, u.ID, storeName, slug, description).
		Scan(
			&s.ID, &s.VendorID, &s.Name, &s.Slug, &s.Description, &s.LogoURL, &s.Status,
			&s.ConnectAccountID, &s.PayoutsEnabled,
			&s.ApprovedBy, &s.ApprovedAt, &s.SuspendedAt, &s.RejectedAt,
			&s.CreatedAt, &s.UpdatedAt,
		)
	if err != nil {
		log.Error("failed to insert store", zap.Error(err))
		return user.User{}, Store{}, err
	}

	if err := tx.Commit(); err != nil {
		return user.User{}, Store{}, err
	}

	log.Info("vendor registered", zap.String("vendor_id", u.ID), zap.String("store_id", s.ID))
	return u, s, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx, `
		SELECT `+storeColumns+` FROM stores WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	return s, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx, `
		SELECT `+storeColumns+` FROM stores WHERE slug = $1
	`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	return s, err
}

func (r *repository) GetByVendorID(ctx context.Context, vendorID string) (*Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx, `
		SELECT `+storeColumns+` FROM stores WHERE vendor_id = $1
	`, vendorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	return s, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Store, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stores"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := "SELECT " + storeColumns + " FROM stores" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var stores []*Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, 0, err
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateStoreInput) (*Store, error) {
	s, err := scanStore(r.db.QueryRowContext(ctx, `
		UPDATE stores
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    logo_url    = COALESCE($4, logo_url),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING `+storeColumns+`
	`, id, input.Name, input.Description, input.LogoURL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	return s, err
}

func (r *repository) Transition(
	ctx context.Context,
	id string,
	fromStatuses []Status,
	to Status,
	adminID *string,
) (*Store, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Transition"),
		zap.String("store_id", id),
		zap.String("to", string(to)),
	)

	from := make([]string, 0, len(fromStatuses))
	for _, f := range fromStatuses {
		from = append(from, string(f))
	}

	var (
		query string
		args  []any
	)
	switch to {
	case StatusApproved:
		query = `
			UPDATE stores
			SET status = 'approved', approved_by = $2, approved_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = ANY($3)
			RETURNING ` + storeColumns
		args = []any{id, adminID, pq.Array(from)}
	case StatusRejected:
		query = `
			UPDATE stores
			SET status = 'rejected', approved_by = $2, rejected_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = ANY($3)
			RETURNING ` + storeColumns
		args = []any{id, adminID, pq.Array(from)}
	case StatusSuspended:
		// approved_by is preserved from the original approval.
		query = `
			UPDATE stores
			SET status = 'suspended', suspended_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = ANY($2)
			RETURNING ` + storeColumns
		args = []any{id, pq.Array(from)}
	default:
		return nil, ErrInvalidTransition
	}

	s, err := scanStore(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Either missing or not in an allowed source state.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		log.Warn("store transition rejected")
		return nil, ErrInvalidTransition
	}
	if err != nil {
		log.Error("store transition failed", zap.Error(err))
		return nil, err
	}

	log.Info("store transitioned")
	return s, nil
}

func (r *repository) SetConnectAccount(ctx context.Context, id string, accountID *string, payoutsEnabled bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stores
		SET connect_account_id = $2, payouts_enabled = $3, updated_at = NOW()
		WHERE id = $1
	`, id, accountID, payoutsEnabled)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStoreNotFound
	}
	return nil
}
