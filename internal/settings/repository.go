package settings

import (
	"context"
	"database/sql"
)

type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, adminID string, input UpdateInput) (Settings, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT commission_percent, tax_percent, plugin_tax_percent, updated_by, updated_at
		FROM platform_settings
		WHERE id = 1
	`).Scan(&s.CommissionPercent, &s.TaxPercent, &s.PluginTaxPercent, &s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, adminID string, input UpdateInput) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx, `
		UPDATE platform_settings
		SET commission_percent = COALESCE($1, commission_percent),
		    tax_percent        = COALESCE($2, tax_percent),
		    plugin_tax_percent = COALESCE($3, plugin_tax_percent),
		    updated_by         = $4,
		    updated_at         = NOW()
		WHERE id = 1
		RETURNING commission_percent, tax_percent, plugin_tax_percent, updated_by, updated_at
	`, input.CommissionPercent, input.TaxPercent, input.PluginTaxPercent, adminID).
		Scan(&s.CommissionPercent, &s.TaxPercent, &s.PluginTaxPercent, &s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}
