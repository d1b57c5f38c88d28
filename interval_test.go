package calends

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosedFromStart(t *testing.T) {
	iv, err := ClosedFromStart(ymd(2022, time.January, 1), Months(23).WithWeeks(-1).WithDays(1))
	require.NoError(t, err)

	assert.Equal(t, mo.Some(ymd(2022, time.January, 1)), iv.Start())
	assert.Equal(t, mo.Some(ymd(2023, time.November, 25)), iv.End())
}

func TestClosedFromEnd(t *testing.T) {
	iv, err := ClosedFromEnd(ymd(2022, time.January, 1), Months(1))
	require.NoError(t, err)

	assert.Equal(t, mo.Some(ymd(2021, time.December, 1)), iv.Start())
	assert.Equal(t, mo.Some(ymd(2022, time.January, 1)), iv.End())
}

func TestClosedIntervalRejectsInvertedBounds(t *testing.T) {
	_, err := ClosedInterval(ymd(2022, time.January, 2), ymd(2022, time.January, 1))
	var cerr *IntervalConstructionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ymd(2022, time.January, 2), cerr.Start)
	assert.Equal(t, ymd(2022, time.January, 1), cerr.End)

	// A negative duration inverts the computed end the same way.
	_, err = ClosedFromStart(ymd(2022, time.January, 1), Days(-1))
	assert.ErrorAs(t, err, &cerr)

	// Zero-length spans are fine.
	_, err = ClosedFromStart(ymd(2022, time.January, 1), RelativeDuration{})
	assert.NoError(t, err)
}

func TestUnboundedIntervals(t *testing.T) {
	open := UnboundedStart(ymd(2022, time.December, 31))
	assert.True(t, open.Start().IsAbsent())
	assert.Equal(t, mo.Some(ymd(2022, time.December, 31)), open.End())

	forward := UnboundedEnd(ymd(2022, time.January, 1))
	assert.Equal(t, mo.Some(ymd(2022, time.January, 1)), forward.Start())
	assert.True(t, forward.End().IsAbsent())
}

func TestIntervalContains(t *testing.T) {
	iv, err := ClosedInterval(ymd(2022, time.January, 1), ymd(2022, time.December, 31))
	require.NoError(t, err)

	assert.True(t, iv.Contains(ymd(2022, time.May, 18)))
	assert.True(t, iv.Contains(ymd(2022, time.January, 1)))
	assert.True(t, iv.Contains(ymd(2022, time.December, 31)))
	assert.False(t, iv.Contains(ymd(2023, time.May, 18)))
	assert.False(t, iv.Contains(ymd(2021, time.December, 31)))

	assert.True(t, UnboundedEnd(ymd(2022, time.January, 1)).Contains(ymd(2999, time.January, 1)))
	assert.False(t, UnboundedEnd(ymd(2022, time.January, 1)).Contains(ymd(2021, time.January, 1)))
	assert.True(t, UnboundedStart(ymd(2022, time.January, 1)).Contains(ymd(1800, time.January, 1)))
}

func TestIntervalFormat(t *testing.T) {
	iv, err := ClosedInterval(ymd(2022, time.January, 1), ymd(2023, time.November, 25))
	require.NoError(t, err)
	assert.Equal(t, "2022-01-01/2023-11-25", iv.Format())

	assert.Equal(t, "../2022-01-01", UnboundedStart(ymd(2022, time.January, 1)).Format())
	assert.Equal(t, "2022-01-01/..", UnboundedEnd(ymd(2022, time.January, 1)).Format())
}

func TestParseInterval(t *testing.T) {
	closed, err := ClosedInterval(ymd(2022, time.January, 1), ymd(2023, time.November, 25))
	require.NoError(t, err)

	tests := []struct {
		input string
		want  Interval
	}{
		{"2022-01-01/2023-11-25", closed},
		{"../2023-11-25", UnboundedStart(ymd(2023, time.November, 25))},
		{"2022-01-01/..", UnboundedEnd(ymd(2022, time.January, 1))},
		// Start plus duration resolves the end by applying it.
		{"2022-01-01/P23M-1W1D", closed},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntervalErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"2022-01-01",
		"../..",
		"2022-13-01/2022-12-01",
		"2022-01-01/bogus",
		"2022-01-02/2022-01-01",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseInterval(input)
			assert.Error(t, err)
		})
	}
}

func TestIntervalRoundTrip(t *testing.T) {
	closed, err := ClosedInterval(ymd(2022, time.January, 1), ymd(2023, time.November, 25))
	require.NoError(t, err)

	for _, iv := range []Interval{
		closed,
		UnboundedStart(ymd(2023, time.November, 25)),
		UnboundedEnd(ymd(2022, time.January, 1)),
	} {
		t.Run(iv.Format(), func(t *testing.T) {
			got, err := ParseInterval(iv.Format())
			require.NoError(t, err)
			assert.Equal(t, iv, got)
		})
	}
}
