package calends

import "time"

// midnightUTC drops any time-of-day or zone information, leaving the
// calendar date this package computes with.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ymd(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the length of the given month.
func daysInMonth(year int, month time.Month) int {
	return ymd(year, month+1, 1).AddDate(0, 0, -1).Day()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

// isoWeeksInYear reports how many ISO weeks the given week-numbering
// year has. A year has 53 weeks only when January 1 falls on a
// Thursday, or on a Wednesday in a leap year.
func isoWeeksInYear(year int) int {
	jan1 := ymd(year, time.January, 1).Weekday()
	if jan1 == time.Thursday || (isLeapYear(year) && jan1 == time.Wednesday) {
		return 53
	}
	return 52
}

// isoWeekday maps time.Weekday onto ISO numbering, 1=Monday..7=Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// shiftMonths moves a date by whole calendar months. It adds a month,
// not 30 or 31 days: the last day of a month shifts to the last day of
// the target month, and any other day clamps to the target month's
// length.
//
//	shiftMonths(2022-01-01, 1)  // 2022-02-01
//	shiftMonths(2022-02-28, 1)  // 2022-03-31
//	shiftMonths(2022-03-31, 1)  // 2022-04-30
//	shiftMonths(2022-02-03, -1) // 2022-01-03
func shiftMonths(date time.Time, months int64) time.Time {
	total := int64(date.Year())*12 + int64(date.Month()) - 1 + months
	year := int(total / 12)
	month := time.Month(total%12 + 1)
	if total < 0 && total%12 != 0 {
		year--
		month += 12
	}

	day := date.Day()
	if day == daysInMonth(date.Year(), date.Month()) {
		day = daysInMonth(year, month)
	} else if max := daysInMonth(year, month); day > max {
		day = max
	}
	return ymd(year, month, day)
}

// shiftWeeks moves a date by whole weeks.
func shiftWeeks(date time.Time, weeks int64) time.Time {
	return date.AddDate(0, 0, int(weeks)*7)
}

// shiftDays moves a date by whole days.
func shiftDays(date time.Time, days int64) time.Time {
	return date.AddDate(0, 0, int(days))
}
