package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is a singleton row of platform-wide percentages.
type Settings struct {
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	TaxPercent        decimal.Decimal `json:"tax_percent"`
	PluginTaxPercent  decimal.Decimal `json:"plugin_tax_percent"`
	UpdatedBy         *string         `json:"updated_by,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type UpdateInput struct {
	CommissionPercent *decimal.Decimal
	TaxPercent        *decimal.Decimal
	PluginTaxPercent  *decimal.Decimal
}
