package calends

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RelativeDuration is a duration of calendar time: signed counts of
// months, weeks and days. Unlike time.Duration it has no fixed length
// in seconds; a month is however long the month it lands on happens to
// be.
//
// The zero value is the empty duration and is the identity under both
// Add and AddTo.
type RelativeDuration struct {
	months int64
	weeks  int64
	days   int64
}

// Months returns a duration of the given number of months.
func Months(n int64) RelativeDuration {
	return RelativeDuration{months: n}
}

// Weeks returns a duration of the given number of weeks.
func Weeks(n int64) RelativeDuration {
	return RelativeDuration{weeks: n}
}

// Days returns a duration of the given number of days.
func Days(n int64) RelativeDuration {
	return RelativeDuration{days: n}
}

// WithMonths returns a copy of the duration with the month count
// replaced. It replaces rather than accumulates, so
// Months(2).WithMonths(1) is one month, not three.
func (d RelativeDuration) WithMonths(n int64) RelativeDuration {
	d.months = n
	return d
}

// WithWeeks returns a copy of the duration with the week count replaced.
func (d RelativeDuration) WithWeeks(n int64) RelativeDuration {
	d.weeks = n
	return d
}

// WithDays returns a copy of the duration with the day count replaced.
func (d RelativeDuration) WithDays(n int64) RelativeDuration {
	d.days = n
	return d
}

// NumMonths returns the month count.
func (d RelativeDuration) NumMonths() int64 { return d.months }

// NumWeeks returns the week count.
func (d RelativeDuration) NumWeeks() int64 { return d.weeks }

// NumDays returns the day count.
func (d RelativeDuration) NumDays() int64 { return d.days }

// IsZero reports whether every unit of the duration is zero.
func (d RelativeDuration) IsZero() bool {
	return d == RelativeDuration{}
}

// Add returns the field-wise sum of two durations. There is no
// dedicated subtraction; compose with Neg instead.
func (d RelativeDuration) Add(o RelativeDuration) RelativeDuration {
	return RelativeDuration{
		months: d.months + o.months,
		weeks:  d.weeks + o.weeks,
		days:   d.days + o.days,
	}
}

// Neg returns the duration with every unit negated.
func (d RelativeDuration) Neg() RelativeDuration {
	return RelativeDuration{months: -d.months, weeks: -d.weeks, days: -d.days}
}

// AddTo applies the duration to a date. Units are always applied
// largest to smallest: months first, then weeks, then days, regardless
// of how the duration was built. Because month arithmetic rounds at
// month ends, applying units in any other order can produce a
// different date, so composed durations are not commutative in
// general:
//
//	Months(1).WithDays(1).AddTo(2022-01-30) // 2022-03-01; days first would pin to 2022-02-28
//
// AddTo is total: any overflow past a month end resolves by calendar
// normalization (see shiftMonths).
func (d RelativeDuration) AddTo(date time.Time) time.Time {
	date = midnightUTC(date)
	if d.months != 0 {
		date = shiftMonths(date, d.months)
	}
	if d.weeks != 0 {
		date = shiftWeeks(date, d.weeks)
	}
	if d.days != 0 {
		date = shiftDays(date, d.days)
	}
	return date
}

// Format renders the duration in the ISO 8601-2 form this library
// models, always printing the three calendar units with a per-field
// sign, e.g. "P23M-1W1D".
func (d RelativeDuration) Format() string {
	return fmt.Sprintf("P%dM%dW%dD", d.months, d.weeks, d.days)
}

func (d RelativeDuration) String() string {
	return d.Format()
}

// ParseRelativeDuration parses an ISO 8601-2 duration restricted to the
// calendar units this library models: "P" followed by up to four
// signed components with unit designators Y, M, W or D. Years fold
// into months. The sign applies per field: "P-4M3W" is negative four
// months and positive three weeks.
func ParseRelativeDuration(s string) (RelativeDuration, error) {
	d, rest, err := parseRelativeDuration(s)
	if err != nil {
		return RelativeDuration{}, err
	}
	if rest != "" {
		return RelativeDuration{}, fmt.Errorf("parse duration %q: trailing %q", s, rest)
	}
	return d, nil
}

// parseRelativeDuration consumes a duration prefix and returns whatever
// input remains, so the selection-rule parser can share it.
func parseRelativeDuration(s string) (RelativeDuration, string, error) {
	if !strings.HasPrefix(s, "P") {
		return RelativeDuration{}, s, fmt.Errorf("parse duration %q: missing P designator", s)
	}
	rest := s[1:]

	var d RelativeDuration
	for i := 0; i < 4; i++ {
		n, unit, r, ok, err := parseDurationChunk(rest)
		if err != nil {
			return RelativeDuration{}, rest, fmt.Errorf("parse duration %q: %w", s, err)
		}
		if !ok {
			break
		}
		switch unit {
		case 'Y':
			d.months += n * 12
		case 'M':
			d.months += n
		case 'W':
			d.weeks += n
		case 'D':
			d.days += n
		}
		rest = r
	}
	if d.IsZero() && rest == s[1:] {
		return RelativeDuration{}, rest, fmt.Errorf("parse duration %q: no components", s)
	}
	return d, rest, nil
}

// parseDurationChunk reads one "[-]digits<unit>" component. ok is false
// when the input does not start with a component at all, which ends the
// duration without error.
func parseDurationChunk(s string) (n int64, unit byte, rest string, ok bool, err error) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, s, false, nil
	}
	if i >= len(s) {
		return 0, 0, s, false, fmt.Errorf("number %q has no unit designator", s)
	}
	unit = s[i]
	if unit != 'Y' && unit != 'M' && unit != 'W' && unit != 'D' {
		return 0, 0, s, false, fmt.Errorf("unknown unit designator %q", string(unit))
	}
	n, err = strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, 0, s, false, fmt.Errorf("component %q: %w", s[:i], err)
	}
	return n, unit, s[i+1:], true, nil
}
