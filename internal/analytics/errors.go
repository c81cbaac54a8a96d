package analytics

import "errors"

var (
	// ErrInvalidPreset is returned for unrecognized date-range tokens.
	// Callers are expected to fall back to a default window rather than
	// fail the dashboard.
	ErrInvalidPreset = errors.New("invalid date range preset")

	// ErrInvalidRange is returned when start >= end or a comparison range
	// overlaps the source range.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrDataSourceUnavailable wraps failures propagated from the external
	// data source. The engine never retries; that belongs to the caller.
	ErrDataSourceUnavailable = errors.New("data source unavailable")
)
