package analytics

import (
	"fmt"
	"time"

	"github.com/atelier/atelier-manager/internal/entity"
)

// Resolver turns preset tokens into concrete reporting windows. The clock
// is injectable so resolution is deterministic under test; pure
// aggregation code never reads the wall clock.
type Resolver struct {
	now func() time.Time
	loc *time.Location
}

// NewResolver builds a resolver reporting in loc. A nil now defaults to
// the system clock.
func NewResolver(now func() time.Time, loc *time.Location) *Resolver {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{now: now, loc: loc}
}

// Resolve maps a preset token to a half-open window. All presets include
// the current (partial) day: the end bound is the start of tomorrow in the
// reporting location, so results are stable within a day and mtd/ytd are
// never empty on period boundaries. The "custom" token needs explicit
// bounds and goes through NewDateRange instead.
func (r *Resolver) Resolve(preset string) (entity.DateRange, error) {
	now := r.now().In(r.loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc).AddDate(0, 0, 1)

	switch preset {
	case "7d":
		return entity.DateRange{Start: end.AddDate(0, 0, -7), End: end}, nil
	case "30d":
		return entity.DateRange{Start: end.AddDate(0, 0, -30), End: end}, nil
	case "90d":
		return entity.DateRange{Start: end.AddDate(0, 0, -90), End: end}, nil
	case "mtd":
		return entity.DateRange{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, r.loc), End: end}, nil
	case "ytd":
		return entity.DateRange{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, r.loc), End: end}, nil
	case "custom":
		return entity.DateRange{}, fmt.Errorf("%w: custom requires explicit bounds", ErrInvalidPreset)
	default:
		return entity.DateRange{}, fmt.Errorf("%w: %q", ErrInvalidPreset, preset)
	}
}

// NewDateRange validates explicit custom bounds.
func NewDateRange(start, end time.Time) (entity.DateRange, error) {
	if !start.Before(end) {
		return entity.DateRange{}, fmt.Errorf("%w: start %s >= end %s", ErrInvalidRange, start, end)
	}
	return entity.DateRange{Start: start, End: end}, nil
}

// ComparisonPeriod derives the immediately preceding window of equal
// duration: previous.End == rng.Start exactly, no gap and no overlap.
// This holds for ranges that do not align to calendar months or weeks.
func ComparisonPeriod(rng entity.DateRange) entity.ComparisonPeriod {
	return entity.ComparisonPeriod{
		Previous: entity.DateRange{
			Start: rng.Start.Add(-rng.Duration()),
			End:   rng.Start,
		},
	}
}

// validateWindows checks a source range and an optional comparison range.
func validateWindows(rng entity.DateRange, compare *entity.DateRange) error {
	if !rng.Start.Before(rng.End) {
		return fmt.Errorf("%w: start %s >= end %s", ErrInvalidRange, rng.Start, rng.End)
	}
	if compare == nil {
		return nil
	}
	if !compare.Start.Before(compare.End) {
		return fmt.Errorf("%w: comparison start %s >= end %s", ErrInvalidRange, compare.Start, compare.End)
	}
	if compare.End.After(rng.Start) && rng.End.After(compare.Start) {
		return fmt.Errorf("%w: comparison overlaps source range", ErrInvalidRange)
	}
	return nil
}
