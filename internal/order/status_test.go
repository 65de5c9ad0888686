package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusDispatched, true},
		{StatusDispatched, StatusDelivered, true},

		{StatusPending, StatusDispatched, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusDelivered, false},
		{StatusConfirmed, StatusPending, false},
		{StatusDelivered, StatusDispatched, false},

		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusDispatched, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, canTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestAggregateStatus(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, StatusPending, AggregateStatus(nil))
	})

	t.Run("LeastAdvancedWins", func(t *testing.T) {
		got := AggregateStatus([]Status{StatusDelivered, StatusConfirmed, StatusDispatched})
		assert.Equal(t, StatusConfirmed, got)
	})

	t.Run("DeliveredOnlyWhenAllDelivered", func(t *testing.T) {
		assert.Equal(t, StatusDispatched,
			AggregateStatus([]Status{StatusDelivered, StatusDispatched}))
		assert.Equal(t, StatusDelivered,
			AggregateStatus([]Status{StatusDelivered, StatusDelivered}))
	})

	t.Run("CancelledVendorsIgnored", func(t *testing.T) {
		got := AggregateStatus([]Status{StatusCancelled, StatusDelivered})
		assert.Equal(t, StatusDelivered, got)
	})

	t.Run("AllCancelled", func(t *testing.T) {
		assert.Equal(t, StatusCancelled,
			AggregateStatus([]Status{StatusCancelled, StatusCancelled}))
	})
}

func TestSplitPayout(t *testing.T) {
	cases := []struct {
		total   string
		percent string
	}{
		{"100.00", "10"},
		{"99.99", "12.5"},
		{"0.01", "33.33"},
		{"250.00", "0"},
		{"250.00", "100"},
		{"17.42", "7.77"},
	}
	for _, tc := range cases {
		total := decimal.RequireFromString(tc.total)
		percent := decimal.RequireFromString(tc.percent)

		commission, vendor := SplitPayout(total, percent)

		assert.True(t, commission.Add(vendor).Equal(total),
			"total %s at %s%%: %s + %s", tc.total, tc.percent, commission, vendor)
		assert.False(t, commission.IsNegative())
		assert.False(t, vendor.IsNegative())
	}

	commission, vendor := SplitPayout(decimal.RequireFromString("100.00"), decimal.RequireFromString("10"))
	assert.Equal(t, "10.00", commission.StringFixed(2))
	assert.Equal(t, "90.00", vendor.StringFixed(2))
}
