package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed mid-month reference: Wed 2024-03-13 15:04:05 UTC
func fixedClock() time.Time {
	return time.Date(2024, time.March, 13, 15, 4, 5, 0, time.UTC)
}

func TestResolvePresets(t *testing.T) {
	r := NewResolver(fixedClock, time.UTC)
	tomorrow := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		preset string
		start  time.Time
	}{
		{"7d", tomorrow.AddDate(0, 0, -7)},
		{"30d", tomorrow.AddDate(0, 0, -30)},
		{"90d", tomorrow.AddDate(0, 0, -90)},
		{"mtd", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"ytd", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			rng, err := r.Resolve(tt.preset)
			require.NoError(t, err)
			assert.Equal(t, tt.start, rng.Start)
			assert.Equal(t, tomorrow, rng.End)
			assert.True(t, rng.Start.Before(rng.End))
		})
	}
}

func TestResolveIncludesCurrentDay(t *testing.T) {
	r := NewResolver(fixedClock, time.UTC)
	rng, err := r.Resolve("7d")
	require.NoError(t, err)
	// an order placed "now" falls inside the window
	assert.True(t, rng.Contains(fixedClock()))
}

func TestResolveMtdOnTheFirst(t *testing.T) {
	firstOfMonth := func() time.Time {
		return time.Date(2024, time.April, 1, 0, 30, 0, 0, time.UTC)
	}
	r := NewResolver(firstOfMonth, time.UTC)
	rng, err := r.Resolve("mtd")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), rng.Start)
	assert.Equal(t, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), rng.End)
	assert.True(t, rng.Start.Before(rng.End), "mtd on the 1st must not be empty")
}

func TestResolveTimezone(t *testing.T) {
	// 2024-03-13 01:00 UTC is still 2024-03-12 in New York
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	clock := func() time.Time {
		return time.Date(2024, time.March, 13, 1, 0, 0, 0, time.UTC)
	}
	r := NewResolver(clock, ny)
	rng, err := r.Resolve("7d")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 13, 0, 0, 0, 0, ny), rng.End)
}

func TestResolveInvalidPreset(t *testing.T) {
	r := NewResolver(fixedClock, time.UTC)

	_, err := r.Resolve("14d")
	assert.ErrorIs(t, err, ErrInvalidPreset)

	_, err = r.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidPreset)

	// custom requires explicit bounds via NewDateRange
	_, err = r.Resolve("custom")
	assert.ErrorIs(t, err, ErrInvalidPreset)
}

func TestNewDateRange(t *testing.T) {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	rng, err := NewDateRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, start, rng.Start)
	assert.Equal(t, end, rng.End)

	_, err = NewDateRange(end, start)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewDateRange(start, start)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestComparisonPeriod(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	rng, err := NewDateRange(start, end)
	require.NoError(t, err)

	prev := ComparisonPeriod(rng).Previous
	assert.Equal(t, rng.Start, prev.End, "previous window must abut the source window")
	assert.Equal(t, rng.Duration(), prev.Duration())
	assert.Equal(t, time.Date(2024, time.February, 17, 0, 0, 0, 0, time.UTC), prev.Start)
}

func TestValidateWindows(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	rng, err := NewDateRange(start, end)
	require.NoError(t, err)

	require.NoError(t, validateWindows(rng, nil))

	prev := ComparisonPeriod(rng).Previous
	require.NoError(t, validateWindows(rng, &prev))

	bad := rng // identical windows overlap fully
	assert.ErrorIs(t, validateWindows(rng, &bad), ErrInvalidRange)

	inverted := prev
	inverted.Start, inverted.End = inverted.End, inverted.Start
	assert.ErrorIs(t, validateWindows(rng, &inverted), ErrInvalidRange)
}
