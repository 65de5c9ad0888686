package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"giftly-be/internal/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	// ResolveItems locates active catalog rows (products or services) with
	// their owning store and vendor. Only items in approved stores resolve.
	ResolveItems(ctx context.Context, refs []ItemRef) ([]ResolvedItem, error)

	// CreateOrderTx inserts the order header, its items, the per-store
	// vendor orders, and decrements product stock in a single transaction.
	// A stock shortfall rolls everything back with ErrInsufficientStock.
	CreateOrderTx(ctx context.Context, o *Order, items []OrderItem, vendorOrders []VendorOrder) error

	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetByGiftToken(ctx context.Context, token string) (*Order, error)
	ListForUser(ctx context.Context, userID string, filter ListFilter) ([]*Order, int64, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*Order, int64, error)

	ConfirmGiftTx(ctx context.Context, orderID string, receiver Contact) error

	GetVendorOrder(ctx context.Context, vendorOrderID string) (*VendorOrder, error)
	ListVendorOrders(ctx context.Context, storeID string, filter ListFilter) ([]*VendorOrder, int64, error)

	// UpdateVendorOrderStatusTx updates one vendor order, recomputes the
	// parent order's aggregate status, and on delivery materializes the
	// payout row with the commission percent in force right now.
	UpdateVendorOrderStatusTx(ctx context.Context, vo *VendorOrder, to Status, commissionPercent decimal.Decimal) error

	// CancelOrderTx cancels the order and every vendor order not yet delivered.
	CancelOrderTx(ctx context.Context, orderID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ResolveItems(ctx context.Context, refs []ItemRef) ([]ResolvedItem, error) {
	resolved := make([]ResolvedItem, 0, len(refs))

	for _, ref := range refs {
		var (
			item ResolvedItem
			err  error
		)
		if ref.ProductID != nil {
			item.IsProduct = true
			err = r.db.QueryRowContext(ctx, `
				SELECT p.id, p.store_id, s.vendor_id, p.name, p.price, p.image_url
				FROM products p
				JOIN stores s ON s.id = p.store_id
				WHERE p.id = $1 AND p.active AND s.status = 'approved'
			`, *ref.ProductID).
				Scan(&item.ProductID, &item.StoreID, &item.VendorID, &item.Name, &item.Price, &item.ImageURL)
		} else {
			err = r.db.QueryRowContext(ctx, `
				SELECT sv.id, sv.store_id, s.vendor_id, sv.name, sv.price, sv.image_url
				FROM services sv
				JOIN stores s ON s.id = sv.store_id
				WHERE sv.id = $1 AND sv.active AND s.status = 'approved'
			`, *ref.ServiceID).
				Scan(&item.ServiceID, &item.StoreID, &item.VendorID, &item.Name, &item.Price, &item.ImageURL)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemUnavailable
		}
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, item)
	}

	return resolved, nil
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, items []OrderItem, vendorOrders []VendorOrder) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_number", o.OrderNumber),
		zap.Int("item_count", len(items)),
		zap.Int("vendor_order_count", len(vendorOrders)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id, order_type, status,
			sender_name, sender_email, sender_phone, sender_address,
			receiver_name, receiver_email, receiver_phone, receiver_address,
			shipping_address,
			subtotal, shipping_fee, tax, total, currency,
			gift_token, gift_link, confirmed_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21
		)
		RETURNING id, created_at
	`,
		o.OrderNumber, o.UserID, o.OrderType, o.Status,
		o.Sender.Name, o.Sender.Email, o.Sender.Phone, o.Sender.Address,
		o.Receiver.Name, o.Receiver.Email, o.Receiver.Phone, o.Receiver.Address,
		o.ShippingAddress,
		o.Subtotal, o.ShippingFee, o.Tax, o.Total, o.Currency,
		o.GiftToken, o.GiftLink, o.ConfirmedAt,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range items {
		items[i].OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, service_id, store_id,
				name, price, quantity, image_url, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id
		`,
			o.ID, items[i].ProductID, items[i].ServiceID, items[i].StoreID,
			items[i].Name, items[i].Price, items[i].Quantity, items[i].ImageURL, items[i].Subtotal,
		).Scan(&items[i].ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Int("item_index", i), zap.Error(err))
			return err
		}

		// Stock guard: the decrement only applies when enough stock remains,
		// so a shortfall shows up as zero rows affected.
		if items[i].ProductID != nil {
			res, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock - $1
				WHERE id = $2 AND stock >= $1
			`, items[i].Quantity, *items[i].ProductID)
			if err != nil {
				log.Error("failed to decrement stock", zap.Error(err))
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				log.Warn("stock shortfall", zap.String("product_id", *items[i].ProductID))
				return ErrInsufficientStock
			}
		}
	}

	for i := range vendorOrders {
		vendorOrders[i].OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO vendor_orders (order_id, vendor_id, store_id, status, total)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id, created_at, updated_at
		`,
			o.ID, vendorOrders[i].VendorID, vendorOrders[i].StoreID,
			vendorOrders[i].Status, vendorOrders[i].Total,
		).Scan(&vendorOrders[i].ID, &vendorOrders[i].CreatedAt, &vendorOrders[i].UpdatedAt)
		if err != nil {
			log.Error("failed to insert vendor order", zap.Int("index", i), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	o.Items = items
	o.VendorOrders = vendorOrders
	log.Info("order created")
	return nil
}

const orderColumns = `
	o.id, o.order_number, o.user_id, o.order_type, o.status,
	o.sender_name, o.sender_email, o.sender_phone, o.sender_address,
	o.receiver_name, o.receiver_email, o.receiver_phone, o.receiver_address,
	o.shipping_address,
	o.subtotal, o.shipping_fee, o.tax, o.total, o.currency,
	o.gift_token, o.gift_link,
	o.created_at, o.confirmed_at, o.dispatched_at, o.delivered_at, o.cancelled_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.OrderType, &o.Status,
		&o.Sender.Name, &o.Sender.Email, &o.Sender.Phone, &o.Sender.Address,
		&o.Receiver.Name, &o.Receiver.Email, &o.Receiver.Phone, &o.Receiver.Address,
		&o.ShippingAddress,
		&o.Subtotal, &o.ShippingFee, &o.Tax, &o.Total, &o.Currency,
		&o.GiftToken, &o.GiftLink,
		&o.CreatedAt, &o.ConfirmedAt, &o.DispatchedAt, &o.DeliveredAt, &o.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) getOrder(ctx context.Context, where string, arg any) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.loadVendorOrders(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, service_id, store_id, name, price, quantity, image_url, subtotal
		FROM order_items
		WHERE order_id = $1
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ServiceID, &it.StoreID,
			&it.Name, &it.Price, &it.Quantity, &it.ImageURL, &it.Subtotal); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}

func (r *repository) loadVendorOrders(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vo.id, vo.order_id, vo.vendor_id, vo.store_id, vo.status, vo.total,
		       vo.delivered_at, vo.created_at, vo.updated_at, s.name
		FROM vendor_orders vo
		JOIN stores s ON s.id = vo.store_id
		WHERE vo.order_id = $1
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var vo VendorOrder
		if err := rows.Scan(&vo.ID, &vo.OrderID, &vo.VendorID, &vo.StoreID, &vo.Status, &vo.Total,
			&vo.DeliveredAt, &vo.CreatedAt, &vo.UpdatedAt, &vo.StoreName); err != nil {
			return err
		}
		o.VendorOrders = append(o.VendorOrders, vo)
	}
	return rows.Err()
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	return r.getOrder(ctx, "o.id = $1", orderID)
}

func (r *repository) GetByGiftToken(ctx context.Context, token string) (*Order, error) {
	return r.getOrder(ctx, "o.gift_token = $1", token)
}

func (r *repository) listOrders(ctx context.Context, userID *string, filter ListFilter) ([]*Order, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if userID != nil {
		where += fmt.Sprintf(" AND o.user_id = $%d", argIndex)
		args = append(args, *userID)
		argIndex++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND o.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND o.order_number ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders o"+where, args...).Scan(&total); err != nil {
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

	query := "SELECT " + orderColumns + " FROM orders o" + where +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string, filter ListFilter) ([]*Order, int64, error) {
	return r.listOrders(ctx, &userID, filter)
}

func (r *repository) ListAll(ctx context.Context, filter ListFilter) ([]*Order, int64, error) {
	return r.listOrders(ctx, nil, filter)
}

func (r *repository) ConfirmGiftTx(ctx context.Context, orderID string, receiver Contact) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ConfirmGiftTx"),
		zap.String("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The status guard makes a second confirmation a no-op at the SQL level;
	// the service surfaces it as ErrGiftAlreadyConfirmed.
	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET receiver_name = $2, receiver_email = $3, receiver_phone = $4,
		    receiver_address = $5, shipping_address = $5,
		    status = 'confirmed', confirmed_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, orderID, receiver.Name, receiver.Email, receiver.Phone, receiver.Address)
	if err != nil {
		log.Error("failed to confirm gift order", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGiftAlreadyConfirmed
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE vendor_orders
		SET status = 'confirmed', updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending'
	`, orderID)
	if err != nil {
		log.Error("failed to cascade vendor orders", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("gift order confirmed")
	return nil
}

func (r *repository) GetVendorOrder(ctx context.Context, vendorOrderID string) (*VendorOrder, error) {
	var vo VendorOrder
	err := r.db.QueryRowContext(ctx, `
		SELECT vo.id, vo.order_id, vo.vendor_id, vo.store_id, vo.status, vo.total,
		       vo.delivered_at, vo.created_at, vo.updated_at, o.order_number, s.name
		FROM vendor_orders vo
		JOIN orders o ON o.id = vo.order_id
		JOIN stores s ON s.id = vo.store_id
		WHERE vo.id = $1
	`, vendorOrderID).
		Scan(&vo.ID, &vo.OrderID, &vo.VendorID, &vo.StoreID, &vo.Status, &vo.Total,
			&vo.DeliveredAt, &vo.CreatedAt, &vo.UpdatedAt, &vo.OrderNumber, &vo.StoreName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &vo, nil
}

func (r *repository) ListVendorOrders(ctx context.Context, storeID string, filter ListFilter) ([]*VendorOrder, int64, error) {
	where := " WHERE vo.store_id = $1"
	args := []any{storeID}
	argIndex := 2

	if filter.Status != nil {
		where += fmt.Sprintf(" AND vo.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND o.order_number ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM vendor_orders vo JOIN orders o ON o.id = vo.order_id` + where
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
		SELECT vo.id, vo.order_id, vo.vendor_id, vo.store_id, vo.status, vo.total,
		       vo.delivered_at, vo.created_at, vo.updated_at, o.order_number, s.name
		FROM vendor_orders vo
		JOIN orders o ON o.id = vo.order_id
		JOIN stores s ON s.id = vo.store_id` + where +
		fmt.Sprintf(" ORDER BY vo.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vendorOrders []*VendorOrder
	orderIDs := make([]string, 0)
	for rows.Next() {
		var vo VendorOrder
		if err := rows.Scan(&vo.ID, &vo.OrderID, &vo.VendorID, &vo.StoreID, &vo.Status, &vo.Total,
			&vo.DeliveredAt, &vo.CreatedAt, &vo.UpdatedAt, &vo.OrderNumber, &vo.StoreName); err != nil {
			return nil, 0, err
		}
		vendorOrders = append(vendorOrders, &vo)
		orderIDs = append(orderIDs, vo.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(vendorOrders) > 0 {
		if err := r.attachVendorItems(ctx, storeID, orderIDs, vendorOrders); err != nil {
			return nil, 0, err
		}
	}

	return vendorOrders, total, nil
}

// attachVendorItems loads only the slice of each order's items that belongs
// to this store (the partition the vendor order projects).
func (r *repository) attachVendorItems(ctx context.Context, storeID string, orderIDs []string, vendorOrders []*VendorOrder) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, service_id, store_id, name, price, quantity, image_url, subtotal
		FROM order_items
		WHERE store_id = $1 AND order_id = ANY($2)
	`, storeID, pq.Array(orderIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	byOrder := make(map[string][]OrderItem)
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ServiceID, &it.StoreID,
			&it.Name, &it.Price, &it.Quantity, &it.ImageURL, &it.Subtotal); err != nil {
			return err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, vo := range vendorOrders {
		vo.Items = byOrder[vo.OrderID]
	}
	return nil
}

func (r *repository) UpdateVendorOrderStatusTx(ctx context.Context, vo *VendorOrder, to Status, commissionPercent decimal.Decimal) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateVendorOrderStatusTx"),
		zap.String("vendor_order_id", vo.ID),
		zap.String("to", string(to)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deliveredAt *time.Time
	if to == StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	// Compare-and-set on the current status so a concurrent update loses
	// cleanly instead of double-applying.
	res, err := tx.ExecContext(ctx, `
		UPDATE vendor_orders
		SET status = $3, delivered_at = COALESCE($4, delivered_at), updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, vo.ID, vo.Status, to, deliveredAt)
	if err != nil {
		log.Error("failed to update vendor order", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInvalidTransition
	}

	if to == StatusDelivered {
		commissionAmount, vendorAmount := SplitPayout(vo.Total, commissionPercent)

		_, err = tx.ExecContext(ctx, `
			INSERT INTO payouts (
				vendor_order_id, vendor_id, store_id,
				order_total, commission_percent, commission_amount, vendor_amount, status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,'pending')
			ON CONFLICT (vendor_order_id) DO NOTHING
		`, vo.ID, vo.VendorID, vo.StoreID, vo.Total, commissionPercent, commissionAmount, vendorAmount)
		if err != nil {
			log.Error("failed to materialize payout", zap.Error(err))
			return err
		}
	}

	if err := r.recomputeParentStatus(ctx, tx, vo.OrderID); err != nil {
		log.Error("failed to recompute parent order status", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("vendor order status updated")
	return nil
}

// recomputeParentStatus derives the parent order's status from all of its
// vendor orders and stamps the matching timestamp when it advances.
func (r *repository) recomputeParentStatus(ctx context.Context, tx *sql.Tx, orderID string) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT status FROM vendor_orders WHERE order_id = $1
	`, orderID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var statuses []Status
	for rows.Next() {
		var st Status
		if err := rows.Scan(&st); err != nil {
			return err
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	agg := AggregateStatus(statuses)

	var stamp string
	switch agg {
	case StatusConfirmed:
		stamp = "confirmed_at = COALESCE(confirmed_at, NOW())"
	case StatusDispatched:
		stamp = "dispatched_at = COALESCE(dispatched_at, NOW())"
	case StatusDelivered:
		stamp = "delivered_at = COALESCE(delivered_at, NOW())"
	case StatusCancelled:
		stamp = "cancelled_at = COALESCE(cancelled_at, NOW())"
	default:
		stamp = "confirmed_at = confirmed_at"
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status = $2, `+stamp+` WHERE id = $1 AND status <> 'cancelled'
	`, orderID, agg)
	return err
}

func (r *repository) CancelOrderTx(ctx context.Context, orderID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelOrderTx"),
		zap.String("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = 'cancelled', cancelled_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed', 'dispatched')
	`, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE vendor_orders
		SET status = 'cancelled', updated_at = NOW()
		WHERE order_id = $1 AND status <> 'delivered'
	`, orderID)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order cancelled")
	return nil
}
