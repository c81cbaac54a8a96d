package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier/atelier-manager/internal/entity"
)

func TestComputeBreakdown(t *testing.T) {
	placed := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)
	orders := []entity.PaidOrder{
		{ID: 1, PlacedAt: placed, Gross: decimal.NewFromInt(10000), Discount: decimal.NewFromInt(1000), Shipping: decimal.NewFromInt(500)},
		{ID: 2, PlacedAt: placed, Gross: decimal.NewFromInt(20000), Discount: decimal.NewFromInt(1000), Shipping: decimal.NewFromInt(500)},
	}

	bd, aov, totalOrders := ComputeBreakdown(orders)
	assert.Equal(t, 2, totalOrders)
	assert.True(t, bd.Gross.Equal(decimal.NewFromInt(30000)))
	assert.True(t, bd.Discounts.Equal(decimal.NewFromInt(2000)))
	assert.True(t, bd.Shipping.Equal(decimal.NewFromInt(1000)))
	assert.True(t, bd.Net.Equal(decimal.NewFromInt(28000)), "net = gross - discounts")
	assert.True(t, aov.Equal(decimal.NewFromInt(15000)))
}

func TestComputeBreakdownEmptyWindow(t *testing.T) {
	bd, aov, totalOrders := ComputeBreakdown(nil)
	assert.Zero(t, totalOrders)
	assert.True(t, bd.Gross.IsZero())
	assert.True(t, bd.Net.IsZero())
	assert.True(t, bd.Discounts.IsZero())
	assert.True(t, bd.Shipping.IsZero())
	assert.True(t, aov.IsZero(), "average of an empty window is zero, not a division error")
}

func TestComputeBreakdownAvgRounding(t *testing.T) {
	placed := time.Now().UTC()
	orders := []entity.PaidOrder{
		{ID: 1, PlacedAt: placed, Gross: decimal.NewFromInt(100)},
		{ID: 2, PlacedAt: placed, Gross: decimal.NewFromInt(100)},
		{ID: 3, PlacedAt: placed, Gross: decimal.NewFromInt(101)},
	}
	_, aov, _ := ComputeBreakdown(orders)
	assert.True(t, aov.Equal(decimal.RequireFromString("100.33")), "got %s", aov)
}

func saleLines() []entity.SaleLine {
	placed := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)
	return []entity.SaleLine{
		{OrderID: 1, PlacedAt: placed, ProductID: 11, ProductName: "linen blazer", CategoryID: 1, CategoryName: "outerwear", Quantity: 1, Gross: decimal.NewFromInt(600)},
		{OrderID: 1, PlacedAt: placed, ProductID: 12, ProductName: "silk shirt", CategoryID: 2, CategoryName: "shirts", Quantity: 2, Gross: decimal.NewFromInt(300)},
		{OrderID: 2, PlacedAt: placed, ProductID: 11, ProductName: "linen blazer", CategoryID: 1, CategoryName: "outerwear", Quantity: 1, Gross: decimal.NewFromInt(100)},
	}
}

func TestRankCategories(t *testing.T) {
	windowGross := decimal.NewFromInt(1000)
	rows := RankCategories(saleLines(), windowGross)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, "outerwear", rows[0].Name)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 2, rows[0].UnitsSold)
	assert.True(t, rows[0].PercentOfTotal.Equal(decimal.NewFromInt(70)))

	assert.Equal(t, 2, rows[1].ID)
	assert.True(t, rows[1].PercentOfTotal.Equal(decimal.NewFromInt(30)))
}

func TestRankProducts(t *testing.T) {
	windowGross := decimal.NewFromInt(1000)
	rows := RankProducts(saleLines(), windowGross)
	require.Len(t, rows, 2)

	assert.Equal(t, 11, rows[0].ID)
	assert.True(t, rows[0].Revenue.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 2, rows[0].UnitsSold)
	assert.Equal(t, 12, rows[1].ID)
}

func TestRankTieBreak(t *testing.T) {
	placed := time.Now().UTC()
	lines := []entity.SaleLine{
		{ProductID: 9, ProductName: "b", CategoryID: 9, CategoryName: "b", PlacedAt: placed, Quantity: 1, Gross: decimal.NewFromInt(50)},
		{ProductID: 3, ProductName: "a", CategoryID: 3, CategoryName: "a", PlacedAt: placed, Quantity: 1, Gross: decimal.NewFromInt(50)},
	}
	prods := RankProducts(lines, decimal.NewFromInt(100))
	require.Len(t, prods, 2)
	assert.Equal(t, 3, prods[0].ID, "equal revenue breaks ties by ascending id")
	assert.Equal(t, 9, prods[1].ID)

	cats := RankCategories(lines, decimal.NewFromInt(100))
	require.Len(t, cats, 2)
	assert.Equal(t, 3, cats[0].ID)
}

func TestRankZeroWindowGross(t *testing.T) {
	rows := RankCategories(saleLines(), decimal.Zero)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.True(t, r.PercentOfTotal.IsZero())
	}
}
