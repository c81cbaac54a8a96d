package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/atelier/atelier-manager/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type (
	// Analytics is the read-only projection of order, line-item, bespoke
	// and customer records the reporting engine aggregates over. All
	// methods take a half-open [from, to) window; implementations must
	// honor context cancellation promptly.
	Analytics interface {
		// PaidOrders returns the monetary projection of orders with a paid
		// payment status placed in the window.
		PaidOrders(ctx context.Context, from, to time.Time) ([]entity.PaidOrder, error)
		// SaleLines returns the line items of paid orders placed in the
		// window, for category/product ranking.
		SaleLines(ctx context.Context, from, to time.Time) ([]entity.SaleLine, error)
		// UnpaidTotal sums the order totals of unpaid and partially paid
		// orders placed in the window.
		UnpaidTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
		// BespokeRevenue sums final (or, when unset, estimated) prices of
		// bespoke orders completed in the window.
		BespokeRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
		// CustomerRevenue returns per-customer net revenue and order counts
		// for customers with at least one paid order in the window.
		CustomerRevenue(ctx context.Context, from, to time.Time) ([]entity.CustomerLifetimeRevenue, error)
	}

	// Repository is the store surface the application wires together.
	Repository interface {
		Analytics() Analytics
		Now() time.Time
		Ping(ctx context.Context) error
		Close()
		DB() DB
	}

	// DB represents the database interface.
	DB interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
