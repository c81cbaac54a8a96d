package analytics

import (
	"github.com/atelier/atelier-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// SumDiscounts totals the discount amounts (coupon + manual) across paid
// orders. The financial summary reports this figure from the same order
// population as the revenue breakdown, so the two always agree.
func SumDiscounts(orders []entity.PaidOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Discount)
	}
	return total
}

// BuildFinancialSummary assembles the accounting overview for one window.
// unpaid is the summed total of orders with an unpaid or partial payment
// status; bespoke is the summed revenue of bespoke orders completed in
// the window, with the final price falling back to the estimate when not
// yet set. Both are computed independently of any time-series
// granularity.
func BuildFinancialSummary(period entity.DateRange, unpaid, bespoke decimal.Decimal, paid []entity.PaidOrder) entity.FinancialSummary {
	return entity.FinancialSummary{
		Period:              period,
		OutstandingBalances: entity.OutstandingBalances{TotalUnpaid: unpaid},
		BespokeSummary:      entity.BespokeSummary{TotalFinalRevenue: bespoke},
		TotalDiscounts:      SumDiscounts(paid),
	}
}
