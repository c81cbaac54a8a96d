package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelier/atelier-manager/internal/dependency"
	"github.com/atelier/atelier-manager/internal/entity"
)

type analyticsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Analytics() dependency.Analytics {
	return &analyticsStore{MYSQLStore: ms}
}

// PaidOrders returns the monetary projection of paid orders placed in the
// half-open [from, to) window. Amounts are in major units of the base
// currency; gross is the pre-discount line-item total.
func (as *analyticsStore) PaidOrders(ctx context.Context, from, to time.Time) ([]entity.PaidOrder, error) {
	query := `
		SELECT co.id, co.customer_id, co.placed_at,
			COALESCE(SUM(oi.unit_price * oi.quantity), 0) AS gross,
			co.discount, co.shipping
		FROM customer_order co
		LEFT JOIN order_item oi ON co.id = oi.order_id
		WHERE co.placed_at >= :from AND co.placed_at < :to
		AND co.payment_status = 'PAID'
		GROUP BY co.id, co.customer_id, co.placed_at, co.discount, co.shipping
		ORDER BY co.placed_at
	`
	return QueryListNamed[entity.PaidOrder](ctx, as.DB(), query, map[string]any{"from": from, "to": to})
}

// SaleLines returns line items of paid orders placed in the window, with
// the product and category denormalized for ranking.
func (as *analyticsStore) SaleLines(ctx context.Context, from, to time.Time) ([]entity.SaleLine, error) {
	query := `
		SELECT oi.order_id, co.placed_at,
			oi.product_id, oi.product_name,
			oi.category_id, oi.category_name,
			oi.quantity,
			oi.unit_price * oi.quantity AS gross
		FROM order_item oi
		JOIN customer_order co ON oi.order_id = co.id
		WHERE co.placed_at >= :from AND co.placed_at < :to
		AND co.payment_status = 'PAID'
		ORDER BY co.placed_at, oi.order_id
	`
	return QueryListNamed[entity.SaleLine](ctx, as.DB(), query, map[string]any{"from": from, "to": to})
}

// UnpaidTotal sums order totals (net of discount, shipping included) for
// orders with an unpaid or partial payment status placed in the window.
func (as *analyticsStore) UnpaidTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	type row struct {
		Total decimal.Decimal `db:"total"`
	}
	query := `
		SELECT COALESCE(SUM(co.total), 0) AS total
		FROM customer_order co
		WHERE co.placed_at >= :from AND co.placed_at < :to
		AND co.payment_status IN ('UNPAID', 'PARTIAL')
	`
	r, err := QueryNamedOne[row](ctx, as.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return decimal.Zero, err
	}
	return r.Total, nil
}

// BespokeRevenue sums the revenue of bespoke orders completed in the
// window. The final price falls back to the estimate when not yet set.
func (as *analyticsStore) BespokeRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	type row struct {
		Total decimal.Decimal `db:"total"`
	}
	query := `
		SELECT COALESCE(SUM(COALESCE(bo.final_price, bo.estimated_price)), 0) AS total
		FROM bespoke_order bo
		WHERE bo.completed_at >= :from AND bo.completed_at < :to
		AND bo.status = 'COMPLETED'
	`
	r, err := QueryNamedOne[row](ctx, as.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return decimal.Zero, err
	}
	return r.Total, nil
}

// CustomerRevenue returns per-customer net revenue (post-discount,
// pre-shipping) and order counts for customers with at least one paid
// order placed in the window.
func (as *analyticsStore) CustomerRevenue(ctx context.Context, from, to time.Time) ([]entity.CustomerLifetimeRevenue, error) {
	type row struct {
		CustomerID int             `db:"customer_id"`
		Revenue    decimal.Decimal `db:"revenue"`
		Orders     int             `db:"orders"`
	}
	query := `
		SELECT co.customer_id,
			COALESCE(SUM(order_gross.gross - co.discount), 0) AS revenue,
			COUNT(*) AS orders
		FROM customer_order co
		JOIN (
			SELECT oi.order_id, COALESCE(SUM(oi.unit_price * oi.quantity), 0) AS gross
			FROM order_item oi
			GROUP BY oi.order_id
		) order_gross ON order_gross.order_id = co.id
		WHERE co.placed_at >= :from AND co.placed_at < :to
		AND co.payment_status = 'PAID'
		GROUP BY co.customer_id
		ORDER BY revenue DESC, co.customer_id
	`
	rows, err := QueryListNamed[row](ctx, as.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return nil, err
	}
	result := make([]entity.CustomerLifetimeRevenue, len(rows))
	for i, r := range rows {
		result[i] = entity.CustomerLifetimeRevenue{CustomerID: r.CustomerID, Revenue: r.Revenue, Orders: r.Orders}
	}
	return result, nil
}
