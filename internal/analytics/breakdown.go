package analytics

import (
	"sort"

	"github.com/atelier/atelier-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// ComputeBreakdown decomposes a window's paid orders into mutually
// consistent totals: gross = net + discounts + shipping, where net is
// revenue after discounts and before shipping. AvgOrderValue is
// gross/orders, zero for an empty window.
func ComputeBreakdown(orders []entity.PaidOrder) (bd entity.RevenueBreakdown, avgOrderValue decimal.Decimal, totalOrders int) {
	bd = entity.RevenueBreakdown{
		Gross:     decimal.Zero,
		Net:       decimal.Zero,
		Discounts: decimal.Zero,
		Shipping:  decimal.Zero,
	}
	for _, o := range orders {
		bd.Gross = bd.Gross.Add(o.Gross)
		bd.Discounts = bd.Discounts.Add(o.Discount)
		bd.Shipping = bd.Shipping.Add(o.Shipping)
	}
	bd.Net = bd.Gross.Sub(bd.Discounts)
	totalOrders = len(orders)
	avgOrderValue = decimal.Zero
	if totalOrders > 0 {
		avgOrderValue = bd.Gross.Div(decimal.NewFromInt(int64(totalOrders))).Round(2)
	}
	return bd, avgOrderValue, totalOrders
}

// RankCategories groups sale lines by category, sorts descending by
// revenue with ties broken by ascending id, and computes PercentOfTotal
// against the whole window's gross. The full ranked list is returned;
// slicing to a top-N is the presentation layer's concern.
func RankCategories(lines []entity.SaleLine, windowGross decimal.Decimal) []entity.CategoryRevenue {
	type agg struct {
		name    string
		revenue decimal.Decimal
		units   int
	}
	byID := make(map[int]*agg)
	for _, l := range lines {
		a, ok := byID[l.CategoryID]
		if !ok {
			a = &agg{name: l.CategoryName, revenue: decimal.Zero}
			byID[l.CategoryID] = a
		}
		a.revenue = a.revenue.Add(l.Gross)
		a.units += l.Quantity
	}
	rows := make([]entity.CategoryRevenue, 0, len(byID))
	for id, a := range byID {
		rows = append(rows, entity.CategoryRevenue{
			ID:             id,
			Name:           a.name,
			Revenue:        a.revenue,
			UnitsSold:      a.units,
			PercentOfTotal: percentOf(a.revenue, windowGross),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// RankProducts is the product counterpart of RankCategories.
func RankProducts(lines []entity.SaleLine, windowGross decimal.Decimal) []entity.ProductRevenue {
	type agg struct {
		name    string
		revenue decimal.Decimal
		units   int
	}
	byID := make(map[int]*agg)
	for _, l := range lines {
		a, ok := byID[l.ProductID]
		if !ok {
			a = &agg{name: l.ProductName, revenue: decimal.Zero}
			byID[l.ProductID] = a
		}
		a.revenue = a.revenue.Add(l.Gross)
		a.units += l.Quantity
	}
	rows := make([]entity.ProductRevenue, 0, len(byID))
	for id, a := range byID {
		rows = append(rows, entity.ProductRevenue{
			ID:             id,
			Name:           a.name,
			Revenue:        a.revenue,
			UnitsSold:      a.units,
			PercentOfTotal: percentOf(a.revenue, windowGross),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}
