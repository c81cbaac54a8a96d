package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier/atelier-manager/internal/entity"
)

func TestAggregateCustomers(t *testing.T) {
	rows := []entity.CustomerLifetimeRevenue{
		{CustomerID: 2, Revenue: decimal.NewFromInt(100), Orders: 2},
		{CustomerID: 1, Revenue: decimal.NewFromInt(300), Orders: 3},
		{CustomerID: 3, Revenue: decimal.NewFromInt(200), Orders: 1},
	}

	avg, total, ranked := AggregateCustomers(rows)
	assert.True(t, total.Equal(decimal.NewFromInt(600)))
	assert.True(t, avg.Equal(decimal.NewFromInt(200)))
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].CustomerID)
	assert.Equal(t, 3, ranked[1].CustomerID)
	assert.Equal(t, 2, ranked[2].CustomerID)

	// input order untouched
	assert.Equal(t, 2, rows[0].CustomerID)
}

func TestAggregateCustomersTieBreak(t *testing.T) {
	rows := []entity.CustomerLifetimeRevenue{
		{CustomerID: 7, Revenue: decimal.NewFromInt(100)},
		{CustomerID: 4, Revenue: decimal.NewFromInt(100)},
	}
	_, _, ranked := AggregateCustomers(rows)
	require.Len(t, ranked, 2)
	assert.Equal(t, 4, ranked[0].CustomerID)
	assert.Equal(t, 7, ranked[1].CustomerID)
}

func TestAggregateCustomersEmpty(t *testing.T) {
	avg, total, ranked := AggregateCustomers(nil)
	assert.True(t, avg.IsZero())
	assert.True(t, total.IsZero())
	assert.Empty(t, ranked)
}

func TestBuildFinancialSummary(t *testing.T) {
	period := entity.DateRange{
		Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
	paid := []entity.PaidOrder{
		{ID: 1, Gross: decimal.NewFromInt(500), Discount: decimal.NewFromInt(50)},
		{ID: 2, Gross: decimal.NewFromInt(300), Discount: decimal.NewFromInt(25)},
	}

	fs := BuildFinancialSummary(period, decimal.NewFromInt(1200), decimal.NewFromInt(8000), paid)
	assert.Equal(t, period, fs.Period)
	assert.True(t, fs.OutstandingBalances.TotalUnpaid.Equal(decimal.NewFromInt(1200)))
	assert.True(t, fs.BespokeSummary.TotalFinalRevenue.Equal(decimal.NewFromInt(8000)))
	assert.True(t, fs.TotalDiscounts.Equal(decimal.NewFromInt(75)))
	assert.Nil(t, fs.Comparison)
}
