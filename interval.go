package calends

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
)

// dateLayout is the canonical calendar-date text form used by the
// interval format.
const dateLayout = "2006-01-02"

// IntervalConstructionError reports a closed interval whose computed
// end precedes its start, which is a contract violation by the caller
// rather than a representable span.
type IntervalConstructionError struct {
	Start time.Time
	End   time.Time
}

func (e *IntervalConstructionError) Error() string {
	return fmt.Sprintf("interval end %s precedes start %s",
		e.End.Format(dateLayout), e.Start.Format(dateLayout))
}

// Interval is a span of calendar time with up to two bounds. A bound
// that is absent means the span extends without limit in that
// direction. Both bounds, when present, are inclusive.
//
// Intervals are immutable values; deriving a different span means
// constructing a new one.
type Interval struct {
	start mo.Option[time.Time]
	end   mo.Option[time.Time]
}

// ClosedInterval builds an interval from two endpoints. It fails when
// end precedes start.
func ClosedInterval(start, end time.Time) (Interval, error) {
	start, end = midnightUTC(start), midnightUTC(end)
	if end.Before(start) {
		return Interval{}, &IntervalConstructionError{Start: start, End: end}
	}
	return Interval{start: mo.Some(start), end: mo.Some(end)}, nil
}

// ClosedFromStart builds a closed interval whose end is the duration
// applied to start. It fails when the duration is negative enough to
// place the end before the start.
func ClosedFromStart(start time.Time, d RelativeDuration) (Interval, error) {
	return ClosedInterval(start, d.AddTo(start))
}

// ClosedFromEnd builds a closed interval whose start is the negated
// duration applied to end.
func ClosedFromEnd(end time.Time, d RelativeDuration) (Interval, error) {
	return ClosedInterval(d.Neg().AddTo(end), end)
}

// UnboundedStart builds an interval covering all time up to and
// including end.
func UnboundedStart(end time.Time) Interval {
	return Interval{end: mo.Some(midnightUTC(end))}
}

// UnboundedEnd builds an interval covering all time from start onward.
func UnboundedEnd(start time.Time) Interval {
	return Interval{start: mo.Some(midnightUTC(start))}
}

// Start returns the lower bound, or None for an unbounded start.
func (iv Interval) Start() mo.Option[time.Time] { return iv.start }

// End returns the upper bound, or None for an unbounded end.
func (iv Interval) End() mo.Option[time.Time] { return iv.end }

// Contains reports whether the date falls within the interval.
func (iv Interval) Contains(date time.Time) bool {
	date = midnightUTC(date)
	if s, ok := iv.start.Get(); ok && date.Before(s) {
		return false
	}
	if e, ok := iv.end.Get(); ok && date.After(e) {
		return false
	}
	return true
}

// Format renders the interval in ISO 8601-2 form: "start/end" with
// ".." standing in for an unbounded side, e.g. "2022-01-01/2023-11-25"
// or "../2023-11-25".
func (iv Interval) Format() string {
	side := func(b mo.Option[time.Time]) string {
		if d, ok := b.Get(); ok {
			return d.Format(dateLayout)
		}
		return ".."
	}
	return side(iv.start) + "/" + side(iv.end)
}

func (iv Interval) String() string {
	return iv.Format()
}

// ParseInterval parses the textual interval form produced by Format.
// In addition to "start/end" with either side open, it accepts the
// "start/Pduration" input form, resolving the end by applying the
// duration to the start.
func ParseInterval(s string) (Interval, error) {
	lhs, rhs, found := strings.Cut(s, "/")
	if !found {
		return Interval{}, fmt.Errorf("parse interval %q: missing %q separator", s, "/")
	}

	switch {
	case lhs == ".." && rhs == "..":
		return Interval{}, fmt.Errorf("parse interval %q: unbounded on both sides", s)
	case lhs == "..":
		end, err := time.Parse(dateLayout, rhs)
		if err != nil {
			return Interval{}, fmt.Errorf("parse interval %q: %w", s, err)
		}
		return UnboundedStart(end), nil
	case rhs == "..":
		start, err := time.Parse(dateLayout, lhs)
		if err != nil {
			return Interval{}, fmt.Errorf("parse interval %q: %w", s, err)
		}
		return UnboundedEnd(start), nil
	}

	start, err := time.Parse(dateLayout, lhs)
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval %q: %w", s, err)
	}
	if strings.HasPrefix(rhs, "P") {
		d, err := ParseRelativeDuration(rhs)
		if err != nil {
			return Interval{}, fmt.Errorf("parse interval %q: %w", s, err)
		}
		return ClosedFromStart(start, d)
	}
	end, err := time.Parse(dateLayout, rhs)
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval %q: %w", s, err)
	}
	return ClosedInterval(start, end)
}
