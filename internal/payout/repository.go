package payout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrPayoutNotFound = errors.New("payout not found")

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Payout, int64, error)

	// GetForSettlement loads a payout with the store's connect account.
	GetForSettlement(ctx context.Context, id string) (*Payout, error)

	MarkPaid(ctx context.Context, id, transferID string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const payoutColumns = `
	p.id, p.vendor_order_id, p.vendor_id, p.store_id,
	p.order_total, p.commission_percent, p.commission_amount, p.vendor_amount,
	p.status, p.failure_reason, p.transfer_id, p.paid_at, p.created_at,
	o.order_number, s.name, u.name`

const payoutJoins = `
	FROM payouts p
	JOIN vendor_orders vo ON vo.id = p.vendor_order_id
	JOIN orders o ON o.id = vo.order_id
	JOIN stores s ON s.id = p.store_id
	JOIN users u ON u.id = p.vendor_id`

func scanPayout(row interface{ Scan(...any) error }) (*Payout, error) {
	var p Payout
	err := row.Scan(
		&p.ID, &p.VendorOrderID, &p.VendorID, &p.StoreID,
		&p.OrderTotal, &p.CommissionPercent, &p.CommissionAmount, &p.VendorAmount,
		&p.Status, &p.FailureReason, &p.TransferID, &p.PaidAt, &p.CreatedAt,
		&p.OrderNumber, &p.StoreName, &p.VendorName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Payout, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND p.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND o.order_number ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}
	if filter.StoreName != nil && *filter.StoreName != "" {
		where += fmt.Sprintf(" AND s.name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.StoreName+"%")
		argIndex++
	}
	if filter.VendorName != nil && *filter.VendorName != "" {
		where += fmt.Sprintf(" AND u.name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.VendorName+"%")
		argIndex++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+payoutJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Admin payout pages are fixed at 10 rows.
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := "SELECT " + payoutColumns + payoutJoins + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payouts []*Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, 0, err
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}

func (r *repository) GetForSettlement(ctx context.Context, id string) (*Payout, error) {
	var p Payout
	err := r.db.QueryRowContext(ctx, `
		SELECT `+payoutColumns+`, s.connect_account_id, s.payouts_enabled
		`+payoutJoins+`
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.VendorOrderID, &p.VendorID, &p.StoreID,
		&p.OrderTotal, &p.CommissionPercent, &p.CommissionAmount, &p.VendorAmount,
		&p.Status, &p.FailureReason, &p.TransferID, &p.PaidAt, &p.CreatedAt,
		&p.OrderNumber, &p.StoreName, &p.VendorName,
		&p.ConnectAccountID, &p.PayoutsEnabled,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPayoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) MarkPaid(ctx context.Context, id, transferID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payouts
		SET status = 'paid', transfer_id = $2, failure_reason = NULL, paid_at = NOW()
		WHERE id = $1 AND status <> 'paid'
	`, id, transferID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPayoutNotFound
	}
	return nil
}

func (r *repository) MarkFailed(ctx context.Context, id, reason string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payouts
		SET status = 'failed', failure_reason = $2
		WHERE id = $1 AND status <> 'paid'
	`, id, reason)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPayoutNotFound
	}
	return nil
}
