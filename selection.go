package calends

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// ErrPositionWithoutCandidates reports a position selector evaluated
// against an unformed or empty candidate set. A position selector picks
// the Nth element of what previous selectors matched; with nothing to
// pick from the rule itself is malformed, not the period.
var ErrPositionWithoutCandidates = errors.New("position selector without candidates")

type selectorKind int

const (
	selectMonth selectorKind = iota + 1
	selectWeek
	selectDayOfMonth
	selectWeekday
	selectOrdinalDay
	selectPosition
	extendInterval
)

// SelectionRule is one element of a selection: it narrows the candidate
// date set within a period, or (for the interval extension) widens each
// surviving date into a span. Build rules with the Select* constructors
// or parse them from grammar text with ParseSelection.
type SelectionRule struct {
	kind     selectorKind
	ordinals []int
	duration RelativeDuration
}

// SelectMonth keeps dates falling in calendar month n (1-12).
// Grammar form: "3M".
func SelectMonth(n int) SelectionRule {
	return SelectionRule{kind: selectMonth, ordinals: []int{n}}
}

// SelectWeek keeps dates falling in ISO week n of the period's year.
// Negative n counts from the year's last week, so -1 is the final
// week. Week 53 matches nothing in years that have only 52 ISO weeks.
// Grammar form: "-2W".
func SelectWeek(n int) SelectionRule {
	return SelectionRule{kind: selectWeek, ordinals: []int{n}}
}

// SelectDayOfMonth keeps dates on day n of their month; negative n
// counts from the month's end. Grammar form: "18D".
func SelectDayOfMonth(n int) SelectionRule {
	return SelectionRule{kind: selectDayOfMonth, ordinals: []int{n}}
}

// SelectWeekdays keeps dates falling on any of the given weekdays.
// Grammar forms: "4K" for a single weekday, "L{1,3,5}K" for a set
// (1=Monday..7=Sunday).
func SelectWeekdays(days ...time.Weekday) SelectionRule {
	ords := make([]int, len(days))
	for i, wd := range days {
		if wd == time.Sunday {
			ords[i] = 7
		} else {
			ords[i] = int(wd)
		}
	}
	return SelectionRule{kind: selectWeekday, ordinals: ords}
}

// SelectOrdinalDay keeps the nth day of the year; negative n counts
// from the year's end, so -1 is December 31. Grammar form: "-307O".
func SelectOrdinalDay(n int) SelectionRule {
	return SelectionRule{kind: selectOrdinalDay, ordinals: []int{n}}
}

// SelectPosition picks the nth element (1-based, negative counting from
// the end) of the candidate set built by the preceding selectors. It is
// always applied last and requires a non-empty candidate set. Grammar
// form: "-1I".
func SelectPosition(n int) SelectionRule {
	return SelectionRule{kind: selectPosition, ordinals: []int{n}}
}

// ExtendBy widens every matched date into a closed interval of the
// given duration starting at the match. Grammar form: a "/P5D" suffix.
func ExtendBy(d RelativeDuration) SelectionRule {
	return SelectionRule{kind: extendInterval, duration: d}
}

// validate checks ordinal ranges; the grammar parser attaches positions
// to the same failures.
func (r SelectionRule) validate() error {
	inRange := func(lo, hi int, signed bool) error {
		if len(r.ordinals) == 0 {
			return errors.New("selector has no ordinals")
		}
		for _, n := range r.ordinals {
			v := n
			if signed && v < 0 {
				v = -v
			}
			if v < lo || v > hi {
				return fmt.Errorf("ordinal %d out of range", n)
			}
		}
		return nil
	}
	switch r.kind {
	case selectMonth:
		return inRange(1, 12, false)
	case selectWeek:
		return inRange(1, 53, true)
	case selectDayOfMonth:
		return inRange(1, 31, true)
	case selectWeekday:
		return inRange(1, 7, false)
	case selectOrdinalDay:
		return inRange(1, 366, true)
	case selectPosition:
		if len(r.ordinals) != 1 {
			return errors.New("position selector takes a single ordinal")
		}
		if r.ordinals[0] == 0 {
			return errors.New("ordinal 0 out of range")
		}
		return nil
	case extendInterval:
		return nil
	}
	return fmt.Errorf("unknown selector kind %d", r.kind)
}

func (r SelectionRule) String() string {
	suffix := map[selectorKind]string{
		selectMonth: "M", selectWeek: "W", selectDayOfMonth: "D",
		selectWeekday: "K", selectOrdinalDay: "O", selectPosition: "I",
	}[r.kind]
	if r.kind == extendInterval {
		return "/" + r.duration.Format()
	}
	if len(r.ordinals) == 1 {
		return strconv.Itoa(r.ordinals[0]) + suffix
	}
	parts := make([]string, len(r.ordinals))
	for i, n := range r.ordinals {
		parts[i] = strconv.Itoa(n)
	}
	return "{" + strings.Join(parts, ",") + "}" + suffix
}

// matches reports whether a date inside the period satisfies this
// narrowing selector.
func (r SelectionRule) matches(date time.Time, p Period) bool {
	switch r.kind {
	case selectMonth:
		return r.member(int(date.Month()))
	case selectWeek:
		iy, iw := date.ISOWeek()
		if iy != p.Year {
			return false
		}
		total := isoWeeksInYear(p.Year)
		for _, n := range r.ordinals {
			w := n
			if n < 0 {
				w = total + 1 + n
			}
			if w >= 1 && w <= total && w == iw {
				return true
			}
		}
		return false
	case selectDayOfMonth:
		dim := daysInMonth(date.Year(), date.Month())
		for _, n := range r.ordinals {
			d := n
			if n < 0 {
				d = dim + 1 + n
			}
			if d >= 1 && d <= dim && d == date.Day() {
				return true
			}
		}
		return false
	case selectWeekday:
		return r.member(isoWeekday(date))
	case selectOrdinalDay:
		diy := daysInYear(date.Year())
		for _, n := range r.ordinals {
			d := n
			if n < 0 {
				d = diy + 1 + n
			}
			if d >= 1 && d <= diy && d == date.YearDay() {
				return true
			}
		}
		return false
	}
	return false
}

func (r SelectionRule) member(v int) bool {
	for _, n := range r.ordinals {
		if n == v {
			return true
		}
	}
	return false
}

// Occurrence is a single match produced by evaluating a rule against a
// period: a date, plus the span it widens into when the selection
// carries an interval extension.
type Occurrence struct {
	Date time.Time
	Span mo.Option[Interval]
}

// EvaluateSelection applies an ordered selector list to one period and
// returns the matching occurrences in ascending date order.
//
// Selectors compose by intersection: the first narrowing selector forms
// the candidate set from the period's days and each subsequent one
// filters it, so "L{1..31}D{1..5}K-1IN" intersects days 1-31 with
// weekdays Mon-Fri (every weekday of the month) before -1I picks the
// last. A narrowing selector applied to an already-empty set keeps it
// empty rather than failing. Position selectors are applied after all
// narrowing selectors regardless of where they appear, and fail with
// ErrPositionWithoutCandidates when nothing preceded them or the set is
// empty; a position beyond the candidate count yields an empty result,
// matching the empty-not-error treatment of week 53.
func EvaluateSelection(rules []SelectionRule, p Period) ([]Occurrence, error) {
	var dates []time.Time
	formed := false
	var positions []int
	var span RelativeDuration
	extend := false

	for _, r := range rules {
		switch r.kind {
		case selectPosition:
			positions = append(positions, r.ordinals[0])
		case extendInterval:
			span, extend = r.duration, true
		default:
			if !formed {
				for d := p.Start(); !d.After(p.End()); d = d.AddDate(0, 0, 1) {
					if r.matches(d, p) {
						dates = append(dates, d)
					}
				}
				formed = true
			} else if len(dates) > 0 {
				kept := dates[:0]
				for _, d := range dates {
					if r.matches(d, p) {
						kept = append(kept, d)
					}
				}
				dates = kept
			}
		}
	}

	for _, n := range positions {
		if !formed || len(dates) == 0 {
			return nil, ErrPositionWithoutCandidates
		}
		idx := n - 1
		if n < 0 {
			idx = len(dates) + n
		}
		if idx < 0 || idx >= len(dates) {
			dates = nil
		} else {
			dates = dates[idx : idx+1]
		}
	}

	occs := make([]Occurrence, 0, len(dates))
	for _, d := range dates {
		occ := Occurrence{Date: d}
		if extend {
			iv, err := ClosedFromStart(d, span)
			if err != nil {
				return nil, fmt.Errorf("extend occurrence %s: %w", d.Format(dateLayout), err)
			}
			occ.Span = mo.Some(iv)
		}
		occs = append(occs, occ)
	}
	return occs, nil
}
