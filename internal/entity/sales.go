package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order payment statuses as stored in the reporting projections.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
)

// Bespoke order statuses tracked by the financial summary.
type BespokeStatus string

const (
	BespokeStatusPending   BespokeStatus = "PENDING"
	BespokeStatusCompleted BespokeStatus = "COMPLETED"
)

// PaidOrder is the monetary projection of one paid order the engine
// aggregates over. All amounts are in major units of the base currency.
// Gross is the pre-discount line-item total; Discount is the allocated
// coupon plus manual discount; Shipping is tracked separately and is not
// discountable.
type PaidOrder struct {
	ID         int             `db:"id"`
	CustomerID int             `db:"customer_id"`
	PlacedAt   time.Time       `db:"placed_at"`
	Gross      decimal.Decimal `db:"gross"`
	Discount   decimal.Decimal `db:"discount"`
	Shipping   decimal.Decimal `db:"shipping"`
}

// Net returns the post-discount, pre-shipping revenue of the order.
func (o PaidOrder) Net() decimal.Decimal {
	return o.Gross.Sub(o.Discount)
}

// SaleLine is one line item of a paid order, used for category and
// product ranking. Gross is the list total before discount.
type SaleLine struct {
	OrderID      int             `db:"order_id"`
	PlacedAt     time.Time       `db:"placed_at"`
	ProductID    int             `db:"product_id"`
	ProductName  string          `db:"product_name"`
	CategoryID   int             `db:"category_id"`
	CategoryName string          `db:"category_name"`
	Quantity     int             `db:"quantity"`
	Gross        decimal.Decimal `db:"gross"`
}
