package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is a half-open [Start, End) reporting window, both bounds
// normalized to midnight in the reporting location.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// ComparisonPeriod is the equal-length window immediately preceding a
// source range: Previous.End == range.Start, no gap, no overlap.
type ComparisonPeriod struct {
	Previous DateRange
}

// Granularity controls time bucket width for time-series output only.
// It never affects comparison-window length.
type Granularity int

const (
	GranularityDaily   Granularity = 1
	GranularityWeekly  Granularity = 2
	GranularityMonthly Granularity = 3
)

// Bucket is one sub-interval of a window, half-open like the window itself.
// Buckets are labeled by Start.
type Bucket struct {
	Start time.Time
	End   time.Time
}

// RevenuePoint is one bucket of the revenue-over-time series.
// PreviousValue is the revenue of the positionally corresponding bucket in
// the comparison window, nil when no comparison was requested or the
// comparison series is shorter.
type RevenuePoint struct {
	Date          time.Time        `json:"date"`
	Value         decimal.Decimal  `json:"value"`
	PreviousValue *decimal.Decimal `json:"previousValue,omitempty"`
}

// RevenueBreakdown decomposes window revenue. Gross = Net + Discounts +
// Shipping within one minor currency unit; Net is post-discount,
// pre-shipping.
type RevenueBreakdown struct {
	Gross     decimal.Decimal `json:"gross"`
	Net       decimal.Decimal `json:"net"`
	Discounts decimal.Decimal `json:"discounts"`
	Shipping  decimal.Decimal `json:"shipping"`
}

// CategoryRevenue is one row of the ranked category table.
// PercentOfTotal is measured against the window's gross revenue.
type CategoryRevenue struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Revenue        decimal.Decimal `json:"revenue"`
	UnitsSold      int             `json:"unitsSold"`
	PercentOfTotal decimal.Decimal `json:"percentOfTotal"`
}

// ProductRevenue is one row of the ranked product table.
type ProductRevenue struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Revenue        decimal.Decimal `json:"revenue"`
	UnitsSold      int             `json:"unitsSold"`
	PercentOfTotal decimal.Decimal `json:"percentOfTotal"`
}

// RevenueAnalytics is the revenue dashboard result for one window.
// Comparison, when present, holds the same shape computed over the
// preceding window (without its own nested comparison or series overlay).
type RevenueAnalytics struct {
	Period          DateRange         `json:"period"`
	ComparePeriod   *DateRange        `json:"comparePeriod,omitempty"`
	TotalRevenue    decimal.Decimal   `json:"totalRevenue"`
	NetRevenue      decimal.Decimal   `json:"netRevenue"`
	AvgOrderValue   decimal.Decimal   `json:"avgOrderValue"`
	TotalOrders     int               `json:"totalOrders"`
	RevenueOverTime []RevenuePoint    `json:"revenueOverTime"`
	Breakdown       RevenueBreakdown  `json:"revenueBreakdown"`
	TopCategories   []CategoryRevenue `json:"topCategories"`
	TopProducts     []ProductRevenue  `json:"topProducts"`
	Comparison      *RevenueAnalytics `json:"comparison,omitempty"`

	// RevenueChangePct is gross revenue change against the comparison
	// window, nil without a comparison or when the delta is undefined
	// (previous window had zero revenue).
	RevenueChangePct *float64 `json:"revenueChangePct,omitempty"`

	// NoData distinguishes an empty window from a failed query so the
	// dashboard can render an empty state instead of a zeroed chart.
	NoData bool `json:"noData"`
}

// OutstandingBalances sums orders that are still unpaid or partially paid.
type OutstandingBalances struct {
	TotalUnpaid decimal.Decimal `json:"totalUnpaid"`
}

// BespokeSummary aggregates completed bespoke orders. Revenue falls back
// from the final price to the estimate when no final price is set yet.
type BespokeSummary struct {
	TotalFinalRevenue decimal.Decimal `json:"totalFinalRevenue"`
}

// FinancialSummary is the accounting overview for one window, independent
// of granularity. TotalDiscounts over paid orders equals
// RevenueBreakdown.Discounts for the same window.
type FinancialSummary struct {
	Period              DateRange           `json:"period"`
	OutstandingBalances OutstandingBalances `json:"outstandingBalances"`
	BespokeSummary      BespokeSummary      `json:"bespokeSummary"`
	TotalDiscounts      decimal.Decimal     `json:"totalDiscounts"`
	Comparison          *FinancialSummary   `json:"comparison,omitempty"`

	// UnpaidChangePct is outstanding balance change against the comparison
	// window, nil without a comparison or when undefined.
	UnpaidChangePct *float64 `json:"unpaidChangePct,omitempty"`
}

// CustomerLifetimeRevenue is one customer's revenue within the window.
type CustomerLifetimeRevenue struct {
	CustomerID int             `json:"customerId"`
	Revenue    decimal.Decimal `json:"revenue"`
	Orders     int             `json:"orders"`
}

// CustomerRevenue reports customer value metrics for one window. AvgCLV is
// scoped to the window, not all-time lifetime value, unless the caller
// passes an unbounded range.
type CustomerRevenue struct {
	Period            DateRange                 `json:"period"`
	AvgCLV            decimal.Decimal           `json:"avgClv"`
	DistinctCustomers int                       `json:"distinctCustomers"`
	TotalRevenue      decimal.Decimal           `json:"totalRevenue"`
	TopCustomers      []CustomerLifetimeRevenue `json:"topCustomers"`
	Comparison        *CustomerRevenue          `json:"comparison,omitempty"`

	// RevenueChangePct is total customer revenue change against the
	// comparison window, nil without a comparison or when undefined.
	RevenueChangePct *float64 `json:"revenueChangePct,omitempty"`
}
