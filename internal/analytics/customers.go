package analytics

import (
	"sort"

	"github.com/atelier/atelier-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// AggregateCustomers computes window-scoped customer value metrics from
// per-customer revenue rows (customers with at least one paid order in
// the window). AvgCLV is total revenue over distinct customers, scoped
// to the reporting window rather than true all-time lifetime value
// unless the caller passed an unbounded range. The returned ranking is
// sorted
// descending by revenue, ties broken by ascending customer id.
func AggregateCustomers(rows []entity.CustomerLifetimeRevenue) (avgCLV, total decimal.Decimal, ranked []entity.CustomerLifetimeRevenue) {
	total = decimal.Zero
	ranked = make([]entity.CustomerLifetimeRevenue, len(rows))
	copy(ranked, rows)
	for _, r := range ranked {
		total = total.Add(r.Revenue)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Revenue.Equal(ranked[j].Revenue) {
			return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})
	avgCLV = decimal.Zero
	if len(ranked) > 0 {
		avgCLV = total.Div(decimal.NewFromInt(int64(len(ranked)))).Round(2)
	}
	return avgCLV, total, ranked
}
