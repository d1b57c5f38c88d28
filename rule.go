package calends

import (
	"fmt"
	"time"
)

// RuleKind identifies the recurrence policy a Rule carries.
type RuleKind int

const (
	RuleMonthly RuleKind = iota
	RuleYearly
	RuleWeekly
	RuleDaily
	RuleSelection
)

func (k RuleKind) String() string {
	switch k {
	case RuleMonthly:
		return "monthly"
	case RuleYearly:
		return "yearly"
	case RuleWeekly:
		return "weekly"
	case RuleDaily:
		return "daily"
	case RuleSelection:
		return "selection"
	}
	return ""
}

// Rule is a recurrence policy: applied to one period it yields the
// recurring dates inside that period, never outside it. Fixed cadences
// (Monthly, Yearly, Weekly, Daily) anchor on the recurrence start date;
// Selection rules evaluate a selector list against each period.
//
// Rules are immutable values and are safe to share between any number
// of Recurrence instances.
type Rule struct {
	kind      RuleKind
	period    PeriodKind
	selectors []SelectionRule
}

// Monthly recurs once per month on the start date's day of month,
// clamped to shorter months.
func Monthly() Rule { return Rule{kind: RuleMonthly, period: PeriodMonth} }

// Yearly recurs once per year on the start date's month and day
// (February 29 falls back to February 28 outside leap years).
func Yearly() Rule { return Rule{kind: RuleYearly, period: PeriodYear} }

// Weekly recurs every week on the start date's weekday.
func Weekly() Rule { return Rule{kind: RuleWeekly, period: PeriodMonth} }

// Daily recurs every day.
func Daily() Rule { return Rule{kind: RuleDaily, period: PeriodMonth} }

// Selection builds a rule from selection-rule grammar text, evaluated
// against each period of the given kind. The text is parsed eagerly:
// malformed grammar fails here, never during iteration.
func Selection(kind PeriodKind, text string) (Rule, error) {
	selectors, err := ParseSelection(text)
	if err != nil {
		return Rule{}, err
	}
	return Rule{kind: RuleSelection, period: kind, selectors: selectors}, nil
}

// SelectionRules builds a selection-driven rule from already
// constructed selectors, validating them eagerly like Selection does
// for grammar text.
func SelectionRules(kind PeriodKind, selectors ...SelectionRule) (Rule, error) {
	if len(selectors) == 0 {
		return Rule{}, fmt.Errorf("selection rule needs at least one selector")
	}
	for i, sel := range selectors {
		if err := sel.validate(); err != nil {
			return Rule{}, fmt.Errorf("selector %d: %w", i, err)
		}
	}
	return Rule{kind: RuleSelection, period: kind, selectors: selectors}, nil
}

// Kind returns the rule's policy kind.
func (r Rule) Kind() RuleKind { return r.kind }

// PeriodKind returns the calendar unit the rule is evaluated against:
// months for Monthly, Weekly, Daily and month-scoped selections, years
// for Yearly and year-scoped selections.
func (r Rule) PeriodKind() PeriodKind { return r.period }

// OccurrencesIn returns the rule's occurrences inside one period, in
// ascending date order. The anchor is the recurrence start date that
// fixed cadences derive their day-of-month, month+day or weekday from;
// selection rules ignore it. The result depends only on the arguments:
// re-evaluating the same rule against the same period always yields the
// same sequence.
func (r Rule) OccurrencesIn(p Period, anchor time.Time) ([]Occurrence, error) {
	anchor = midnightUTC(anchor)
	switch r.kind {
	case RuleMonthly:
		day := anchor.Day()
		if max := daysInMonth(p.Year, p.Month); day > max {
			day = max
		}
		return []Occurrence{{Date: ymd(p.Year, p.Month, day)}}, nil
	case RuleYearly:
		day := anchor.Day()
		if max := daysInMonth(p.Year, anchor.Month()); day > max {
			day = max
		}
		return []Occurrence{{Date: ymd(p.Year, anchor.Month(), day)}}, nil
	case RuleWeekly:
		var occs []Occurrence
		for d := p.Start(); !d.After(p.End()); d = d.AddDate(0, 0, 1) {
			if d.Weekday() == anchor.Weekday() {
				occs = append(occs, Occurrence{Date: d})
			}
		}
		return occs, nil
	case RuleDaily:
		occs := make([]Occurrence, 0, 31)
		for d := p.Start(); !d.After(p.End()); d = d.AddDate(0, 0, 1) {
			occs = append(occs, Occurrence{Date: d})
		}
		return occs, nil
	case RuleSelection:
		return EvaluateSelection(r.selectors, p)
	}
	return nil, fmt.Errorf("unknown rule kind %d", r.kind)
}
