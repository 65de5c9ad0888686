package cart

import (
	"context"
	"database/sql"
)

type Repository interface {
	Upsert(ctx context.Context, userID string, input AddItemInput) (string, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
	List(ctx context.Context, userID string) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, userID string, input AddItemInput) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, service_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id, service_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id
	`, userID, input.ProductID, input.ServiceID, input.Quantity).Scan(&id)
	return id, err
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE id = $1 AND user_id = $2
	`, itemID, userID, quantity)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, userID, itemID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

// List joins live catalog rows so the client always sees current prices.
func (r *repository) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.user_id, ci.product_id, ci.service_id, ci.quantity, ci.created_at,
		       COALESCE(p.name, sv.name),
		       COALESCE(p.price, sv.price),
		       COALESCE(p.image_url, sv.image_url),
		       COALESCE(p.store_id, sv.store_id)
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		LEFT JOIN services sv ON sv.id = ci.service_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.ServiceID, &it.Quantity, &it.CreatedAt,
			&it.Name, &it.Price, &it.ImageURL, &it.StoreID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
