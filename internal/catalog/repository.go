package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	CreateProduct(ctx context.Context, storeID string, input ProductInput) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, int64, error)
	UpdateProduct(ctx context.Context, id, storeID string, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id, storeID string) error

	CreateService(ctx context.Context, storeID string, input ServiceInput) (*Service, error)
	GetService(ctx context.Context, id string) (*Service, error)
	ListServices(ctx context.Context, filter ListFilter) ([]*Service, int64, error)
	UpdateService(ctx context.Context, id, storeID string, input UpdateServiceInput) (*Service, error)
	DeleteService(ctx context.Context, id, storeID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// --- Products ---

func (r *repository) CreateProduct(ctx context.Context, storeID string, input ProductInput) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (store_id, name, description, price, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, store_id, name, description, price, stock, image_url, active, created_at, updated_at
	`, storeID, input.Name, input.Description, input.Price, input.Stock, input.ImageURL).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.store_id, p.name, p.description, p.price, p.stock,
		       p.image_url, p.active, p.created_at, p.updated_at, s.name
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.id = $1
	`, id).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt, &p.StoreName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListProducts(ctx context.Context, filter ListFilter) ([]*Product, int64, error) {
	where := ` WHERE p.active AND s.status = 'approved'`
	args := []any{}
	argIndex := 1

	if filter.StoreID != nil {
		// Vendor views include inactive rows and ignore the approval gate.
		where = fmt.Sprintf(" WHERE p.store_id = $%d", argIndex)
		args = append(args, *filter.StoreID)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND p.name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM products p JOIN stores s ON s.id = p.store_id` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
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

	query := `
		SELECT p.id, p.store_id, p.name, p.description, p.price, p.stock,
		       p.image_url, p.active, p.created_at, p.updated_at, s.name
		FROM products p
		JOIN stores s ON s.id = p.store_id` + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt, &p.StoreName); err != nil {
			return nil, 0, err
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id, storeID string, input UpdateProductInput) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name        = COALESCE($3, name),
		    description = COALESCE($4, description),
		    price       = COALESCE($5, price),
		    stock       = COALESCE($6, stock),
		    image_url   = COALESCE($7, image_url),
		    active      = COALESCE($8, active),
		    updated_at  = NOW()
		WHERE id = $1 AND store_id = $2
		RETURNING id, store_id, name, description, price, stock, image_url, active, created_at, updated_at
	`, id, storeID, input.Name, input.Description, input.Price, input.Stock, input.ImageURL, input.Active).
		Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) DeleteProduct(ctx context.Context, id, storeID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// --- Services ---

func (r *repository) CreateService(ctx context.Context, storeID string, input ServiceInput) (*Service, error) {
	var s Service
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO services (store_id, name, description, price, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, store_id, name, description, price, image_url, active, created_at, updated_at
	`, storeID, input.Name, input.Description, input.Price, input.ImageURL).
		Scan(&s.ID, &s.StoreID, &s.Name, &s.Description, &s.Price, &s.ImageURL, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetService(ctx context.Context, id string) (*Service, error) {
	var s Service
	err := r.db.QueryRowContext(ctx, `
		SELECT sv.id, sv.store_id, sv.name, sv.description, sv.price,
		       sv.image_url, sv.active, sv.created_at, sv.updated_at, st.name
		FROM services sv
		JOIN stores st ON st.id = sv.store_id
		WHERE sv.id = $1
	`, id).
		Scan(&s.ID, &s.StoreID, &s.Name, &s.Description, &s.Price,
			&s.ImageURL, &s.Active, &s.CreatedAt, &s.UpdatedAt, &s.StoreName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListServices(ctx context.Context, filter ListFilter) ([]*Service, int64, error) {
	where := ` WHERE sv.active AND st.status = 'approved'`
	args := []any{}
	argIndex := 1

	if filter.StoreID != nil {
		where = fmt.Sprintf(" WHERE sv.store_id = $%d", argIndex)
		args = append(args, *filter.StoreID)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND sv.name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM services sv JOIN stores st ON st.id = sv.store_id` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
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

	query := `
		SELECT sv.id, sv.store_id, sv.name, sv.description, sv.price,
		       sv.image_url, sv.active, sv.created_at, sv.updated_at, st.name
		FROM services sv
		JOIN stores st ON st.id = sv.store_id` + where +
		fmt.Sprintf(" ORDER BY sv.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.StoreID, &s.Name, &s.Description, &s.Price,
			&s.ImageURL, &s.Active, &s.CreatedAt, &s.UpdatedAt, &s.StoreName); err != nil {
			return nil, 0, err
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *repository) UpdateService(ctx context.Context, id, storeID string, input UpdateServiceInput) (*Service, error) {
	var s Service
	err := r.db.QueryRowContext(ctx, `
		UPDATE services
		SET name        = COALESCE($3, name),
		    description = COALESCE($4, description),
		    price       = COALESCE($5, price),
		    image_url   = COALESCE($6, image_url),
		    active      = COALESCE($7, active),
		    updated_at  = NOW()
		WHERE id = $1 AND store_id = $2
		RETURNING id, store_id, name, description, price, image_url, active, created_at, updated_at
	`, id, storeID, input.Name, input.Description, input.Price, input.ImageURL, input.Active).
		Scan(&s.ID, &s.StoreID, &s.Name, &s.Description, &s.Price, &s.ImageURL, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) DeleteService(ctx context.Context, id, storeID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrServiceNotFound
	}
	return nil
}
