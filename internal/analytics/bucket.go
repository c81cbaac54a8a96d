package analytics

import (
	"sort"
	"time"

	"github.com/atelier/atelier-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// Bucketize partitions a window into contiguous, non-overlapping buckets
// covering the full range with no gaps. Daily buckets are calendar days,
// weekly buckets start on Monday, monthly buckets on the 1st; the first
// and last bucket are clipped to the range bounds when the range does not
// align, so the bucket widths always sum to the range width.
func Bucketize(rng entity.DateRange, g entity.Granularity) []entity.Bucket {
	var buckets []entity.Bucket
	cur := rng.Start
	for cur.Before(rng.End) {
		next := bucketNext(bucketStart(cur, g), g)
		if next.After(rng.End) {
			next = rng.End
		}
		buckets = append(buckets, entity.Bucket{Start: cur, End: next})
		cur = next
	}
	return buckets
}

func bucketStart(t time.Time, g entity.Granularity) time.Time {
	loc := t.Location()
	switch g {
	case entity.GranularityWeekly:
		// Monday 00:00 (Go weekday: 0=Sun, 1=Mon)
		daysBack := (int(t.Weekday()) + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-daysBack, 0, 0, 0, 0, loc)
	case entity.GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

func bucketNext(t time.Time, g entity.Granularity) time.Time {
	switch g {
	case entity.GranularityWeekly:
		return t.AddDate(0, 0, 7)
	case entity.GranularityMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// AssignRevenue sums gross order revenue into buckets by half-open
// membership: timestamp >= bucket.Start && timestamp < bucket.End. Orders
// outside all buckets are dropped; callers pre-filter by range so this
// should not occur. The result is index-aligned with buckets and
// zero-filled so charts stay continuous.
func AssignRevenue(orders []entity.PaidOrder, buckets []entity.Bucket) []decimal.Decimal {
	sums := make([]decimal.Decimal, len(buckets))
	for i := range sums {
		sums[i] = decimal.Zero
	}
	for _, o := range orders {
		i := sort.Search(len(buckets), func(i int) bool {
			return buckets[i].End.After(o.PlacedAt)
		})
		if i < len(buckets) && !o.PlacedAt.Before(buckets[i].Start) {
			sums[i] = sums[i].Add(o.Gross)
		}
	}
	return sums
}

// Align pairs bucket i of the current series with bucket i of the
// comparison series by ordinal position, never by calendar date: the
// comparison window's buckets generally fall on different days, weeks or
// months. When the comparison series is shorter, the extra current
// buckets get a nil PreviousValue instead of a value borrowed from a
// missing bucket. The output length always equals len(buckets).
func Align(buckets []entity.Bucket, current, previous []decimal.Decimal) []entity.RevenuePoint {
	points := make([]entity.RevenuePoint, len(buckets))
	for i, b := range buckets {
		p := entity.RevenuePoint{Date: b.Start, Value: current[i]}
		if previous != nil && i < len(previous) {
			v := previous[i]
			p.PreviousValue = &v
		}
		points[i] = p
	}
	return points
}
