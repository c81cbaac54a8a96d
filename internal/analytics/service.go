package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atelier/atelier-manager/internal/dependency"
	"github.com/atelier/atelier-manager/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Config holds the reporting engine configuration.
type Config struct {
	// ReportingTimezone is the IANA zone preset windows are resolved in.
	// Empty means UTC.
	ReportingTimezone string `mapstructure:"reporting_timezone"`
	// MaxConcurrentQueries bounds the fan-out against the data source for
	// one facade call, so dashboards cannot exhaust the connection pool.
	MaxConcurrentQueries int `mapstructure:"max_concurrent_queries"`
}

// Service is the analytics facade backing the accounting dashboards. It
// is stateless: every query is a pure function of the window, the
// optional comparison window and the data source. Results are built
// fresh per call and never cached here.
type Service struct {
	source   dependency.Analytics
	resolver *Resolver
	limit    int
}

// New builds the facade over a data source.
func New(cfg *Config, source dependency.Analytics) (*Service, error) {
	loc := time.UTC
	if cfg.ReportingTimezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.ReportingTimezone)
		if err != nil {
			return nil, fmt.Errorf("load reporting timezone: %w", err)
		}
	}
	limit := cfg.MaxConcurrentQueries
	if limit <= 0 {
		limit = 4
	}
	return &Service{
		source:   source,
		resolver: NewResolver(nil, loc),
		limit:    limit,
	}, nil
}

// GetDateRangeFromPreset resolves a preset token against the reporting
// timezone. Unknown tokens return ErrInvalidPreset; callers fall back to
// a default window instead of failing the dashboard.
func (s *Service) GetDateRangeFromPreset(preset string) (entity.DateRange, error) {
	return s.resolver.Resolve(preset)
}

// GetComparisonPeriod derives the immediately preceding, equal-length,
// non-overlapping window.
func (s *Service) GetComparisonPeriod(rng entity.DateRange) entity.ComparisonPeriod {
	return ComparisonPeriod(rng)
}

// GetRevenueAnalytics answers the revenue dashboard query: totals,
// breakdown, ranked category/product tables and the bucketed
// revenue-over-time series, with an optional comparison window overlaid
// by ordinal bucket position. All source reads for one call run
// concurrently under the configured limit; failure of any read fails the
// whole call, partial results are never returned.
func (s *Service) GetRevenueAnalytics(ctx context.Context, rng entity.DateRange, compare *entity.DateRange, g entity.Granularity) (*entity.RevenueAnalytics, error) {
	if g == 0 {
		g = entity.GranularityDaily
	}
	if err := validateWindows(rng, compare); err != nil {
		return nil, err
	}

	var (
		curOrders, prevOrders []entity.PaidOrder
		curLines, prevLines   []entity.SaleLine
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.limit)
	eg.Go(func() (err error) {
		curOrders, err = s.source.PaidOrders(gctx, rng.Start, rng.End)
		return wrapSource("paid orders", err)
	})
	eg.Go(func() (err error) {
		curLines, err = s.source.SaleLines(gctx, rng.Start, rng.End)
		return wrapSource("sale lines", err)
	})
	if compare != nil {
		eg.Go(func() (err error) {
			prevOrders, err = s.source.PaidOrders(gctx, compare.Start, compare.End)
			return wrapSource("comparison paid orders", err)
		})
		eg.Go(func() (err error) {
			prevLines, err = s.source.SaleLines(gctx, compare.Start, compare.End)
			return wrapSource("comparison sale lines", err)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	bd, aov, totalOrders := ComputeBreakdown(curOrders)
	buckets := Bucketize(rng, g)
	curSums := AssignRevenue(curOrders, buckets)

	var prevSums []decimal.Decimal
	var comparison *entity.RevenueAnalytics
	var comparePeriod *entity.DateRange
	var revenueChange *float64
	if compare != nil {
		prevSums = AssignRevenue(prevOrders, Bucketize(*compare, g))
		pbd, paov, pOrders := ComputeBreakdown(prevOrders)
		comparison = &entity.RevenueAnalytics{
			Period:        *compare,
			TotalRevenue:  pbd.Gross,
			NetRevenue:    pbd.Net,
			AvgOrderValue: paov,
			TotalOrders:   pOrders,
			Breakdown:     pbd,
			TopCategories: RankCategories(prevLines, pbd.Gross),
			TopProducts:   RankProducts(prevLines, pbd.Gross),
			NoData:        pOrders == 0,
		}
		cp := *compare
		comparePeriod = &cp
		revenueChange = ChangePercent(bd.Gross, pbd.Gross)
	}

	return &entity.RevenueAnalytics{
		Period:           rng,
		ComparePeriod:    comparePeriod,
		TotalRevenue:     bd.Gross,
		NetRevenue:       bd.Net,
		AvgOrderValue:    aov,
		TotalOrders:      totalOrders,
		RevenueOverTime:  Align(buckets, curSums, prevSums),
		Breakdown:        bd,
		TopCategories:    RankCategories(curLines, bd.Gross),
		TopProducts:      RankProducts(curLines, bd.Gross),
		Comparison:       comparison,
		RevenueChangePct: revenueChange,
		NoData:           totalOrders == 0,
	}, nil
}

// GetFinancialSummary answers the accounting overview query: outstanding
// unpaid balances, completed bespoke revenue and total discounts over the
// window, independent of any time-series granularity.
func (s *Service) GetFinancialSummary(ctx context.Context, rng entity.DateRange, compare *entity.DateRange) (*entity.FinancialSummary, error) {
	if err := validateWindows(rng, compare); err != nil {
		return nil, err
	}

	cur, err := s.fetchFinancial(ctx, rng)
	if err != nil {
		return nil, err
	}
	if compare != nil {
		prev, err := s.fetchFinancial(ctx, *compare)
		if err != nil {
			return nil, err
		}
		cur.Comparison = prev
		cur.UnpaidChangePct = ChangePercent(
			cur.OutstandingBalances.TotalUnpaid,
			prev.OutstandingBalances.TotalUnpaid,
		)
	}
	return cur, nil
}

func (s *Service) fetchFinancial(ctx context.Context, rng entity.DateRange) (*entity.FinancialSummary, error) {
	var (
		unpaid, bespoke decimal.Decimal
		paid            []entity.PaidOrder
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.limit)
	eg.Go(func() (err error) {
		unpaid, err = s.source.UnpaidTotal(gctx, rng.Start, rng.End)
		return wrapSource("unpaid total", err)
	})
	eg.Go(func() (err error) {
		bespoke, err = s.source.BespokeRevenue(gctx, rng.Start, rng.End)
		return wrapSource("bespoke revenue", err)
	})
	eg.Go(func() (err error) {
		paid, err = s.source.PaidOrders(gctx, rng.Start, rng.End)
		return wrapSource("paid orders", err)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	fs := BuildFinancialSummary(rng, unpaid, bespoke, paid)
	return &fs, nil
}

// GetCustomerRevenue answers the customer value query: window-scoped
// average CLV, distinct customer count and the full per-customer revenue
// ranking, with an optional comparison window.
func (s *Service) GetCustomerRevenue(ctx context.Context, rng entity.DateRange, compare *entity.DateRange) (*entity.CustomerRevenue, error) {
	if err := validateWindows(rng, compare); err != nil {
		return nil, err
	}

	var curRows, prevRows []entity.CustomerLifetimeRevenue
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.limit)
	eg.Go(func() (err error) {
		curRows, err = s.source.CustomerRevenue(gctx, rng.Start, rng.End)
		return wrapSource("customer revenue", err)
	})
	if compare != nil {
		eg.Go(func() (err error) {
			prevRows, err = s.source.CustomerRevenue(gctx, compare.Start, compare.End)
			return wrapSource("comparison customer revenue", err)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	avg, total, ranked := AggregateCustomers(curRows)
	res := &entity.CustomerRevenue{
		Period:            rng,
		AvgCLV:            avg,
		DistinctCustomers: len(ranked),
		TotalRevenue:      total,
		TopCustomers:      ranked,
	}
	if compare != nil {
		pAvg, pTotal, pRanked := AggregateCustomers(prevRows)
		res.Comparison = &entity.CustomerRevenue{
			Period:            *compare,
			AvgCLV:            pAvg,
			DistinctCustomers: len(pRanked),
			TotalRevenue:      pTotal,
			TopCustomers:      pRanked,
		}
		res.RevenueChangePct = ChangePercent(total, pTotal)
	}
	return res, nil
}

// wrapSource classifies data-source failures so callers can map them to a
// retry/unavailable path. Context cancellation passes through unchanged;
// partially computed aggregates are discarded by the callers above.
func wrapSource(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, errors.Join(ErrDataSourceUnavailable, err))
}
