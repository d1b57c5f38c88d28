// Package calends extends ordinary date arithmetic with durations
// expressed in calendar units, bounded and unbounded spans of time, and
// a recurrence engine driven by ISO 8601-2 style selection rules.
//
// Dates are plain time.Time values at calendar-date granularity
// (midnight UTC); the package models no wall-clock or timezone
// semantics.
//
// # Durations
//
// A RelativeDuration holds signed counts of months, weeks and days and
// can be applied to a date:
//
//	rd := calends.Months(1).WithDays(-2)
//	rd.AddTo(date(2022, time.January, 1)) // 2022-01-30
//
// # Recurrence
//
// A Recurrence walks successive calendar periods under a Rule and
// yields matching dates in order:
//
//	rec := calends.WithStart(calends.Monthly(), start).Until(end)
//	for d, ok := rec.Next(); ok; d, ok = rec.Next() {
//		...
//	}
//
// Rules can be fixed cadences (Monthly, Yearly, Weekly, Daily) or a
// parsed selection such as "L3K4IN/P5D", a five-day span starting on
// the fourth Wednesday of each month.
//
// # Intervals
//
// An Interval is a span of time with zero, one or two bounds,
// optionally derived from a start date and a RelativeDuration.
package calends
