package calends

import "time"

// PeriodKind selects the calendar unit a selection is evaluated
// against: one month or one year at a time.
type PeriodKind int

const (
	PeriodMonth PeriodKind = iota
	PeriodYear
)

func (k PeriodKind) String() string {
	switch k {
	case PeriodMonth:
		return "month"
	case PeriodYear:
		return "year"
	}
	return ""
}

// Period is one concrete instance of a calendar unit: a specific month
// or a specific year. Selection rules produce dates inside a period and
// never outside it; a Recurrence walks successive periods.
type Period struct {
	Kind  PeriodKind
	Year  int
	Month time.Month // meaningful only for PeriodMonth
}

// MonthOf returns the month period containing the date.
func MonthOf(date time.Time) Period {
	return Period{Kind: PeriodMonth, Year: date.Year(), Month: date.Month()}
}

// YearOf returns the year period containing the date.
func YearOf(date time.Time) Period {
	return Period{Kind: PeriodYear, Year: date.Year()}
}

// periodOf returns the period of the given kind containing the date.
func periodOf(kind PeriodKind, date time.Time) Period {
	if kind == PeriodYear {
		return YearOf(date)
	}
	return MonthOf(date)
}

// Start returns the first date of the period.
func (p Period) Start() time.Time {
	if p.Kind == PeriodYear {
		return ymd(p.Year, time.January, 1)
	}
	return ymd(p.Year, p.Month, 1)
}

// End returns the last date of the period.
func (p Period) End() time.Time {
	if p.Kind == PeriodYear {
		return ymd(p.Year, time.December, 31)
	}
	return ymd(p.Year, p.Month, daysInMonth(p.Year, p.Month))
}

// Next returns the immediately following period of the same kind.
func (p Period) Next() Period {
	if p.Kind == PeriodYear {
		return Period{Kind: PeriodYear, Year: p.Year + 1}
	}
	if p.Month == time.December {
		return Period{Kind: PeriodMonth, Year: p.Year + 1, Month: time.January}
	}
	return Period{Kind: PeriodMonth, Year: p.Year, Month: p.Month + 1}
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	date = midnightUTC(date)
	return !date.Before(p.Start()) && !date.After(p.End())
}
