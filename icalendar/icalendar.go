// Package icalendar renders calends rules as iCalendar (RFC 5545)
// objects. Fixed-cadence rules translate into RRULE properties;
// selection-driven rules have no RRULE equivalent and are expanded into
// explicit RDATE properties instead.
package icalendar

import (
	"fmt"
	"time"

	ics "github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/cyp0633/calends"
)

const prodID = "-//calends//calends//EN"

// Event describes one recurring calendar event to render as a VEVENT.
type Event struct {
	UID     string // generated when empty
	Summary string

	// Start anchors the rule and is the inclusive lower bound of the
	// series.
	Start time.Time

	// Until, when non-zero, is the exclusive upper bound. It is
	// required for selection rules, whose occurrences are materialized
	// one by one.
	Until time.Time

	// Span, when non-zero, is the duration of each occurrence and is
	// emitted as the event's DTEND.
	Span calends.RelativeDuration

	Rule calends.Rule
}

// RuleOption translates a fixed-cadence rule into rrule-go options
// anchored at start. It reports false for selection rules, which
// cannot be expressed as an RFC 5545 RRULE; render those through
// Calendar, which falls back to RDATEs.
//
// Month-end anchors are approximated: RFC 5545 skips months without the
// anchor day where Monthly clamps to the month's last day.
func RuleOption(r calends.Rule, start, until time.Time) (rrule.ROption, bool) {
	opt := rrule.ROption{Dtstart: start.UTC(), Until: until.UTC()}
	switch r.Kind() {
	case calends.RuleMonthly:
		opt.Freq = rrule.MONTHLY
	case calends.RuleYearly:
		opt.Freq = rrule.YEARLY
	case calends.RuleWeekly:
		opt.Freq = rrule.WEEKLY
	case calends.RuleDaily:
		opt.Freq = rrule.DAILY
	default:
		return rrule.ROption{}, false
	}
	return opt, true
}

// Calendar renders the event and its recurrence into a VCALENDAR.
func (e Event) Calendar() (*ics.Calendar, error) {
	if e.Start.IsZero() {
		return nil, fmt.Errorf("icalendar: event needs a start date")
	}

	uid := e.UID
	if uid == "" {
		uid = uuid.NewString()
	}

	comp := ics.NewComponent(ics.CompEvent)
	comp.Props.SetText(ics.PropUID, uid)
	if e.Summary != "" {
		comp.Props.SetText(ics.PropSummary, e.Summary)
	}
	comp.Props.SetDateTime(ics.PropDateTimeStamp, time.Now().UTC())
	comp.Props.SetDateTime(ics.PropDateTimeStart, e.Start.UTC())
	if !e.Span.IsZero() {
		comp.Props.SetDateTime(ics.PropDateTimeEnd, e.Span.AddTo(e.Start))
	}

	if opt, ok := RuleOption(e.Rule, e.Start, e.Until); ok {
		rr, err := rrule.NewRRule(opt)
		if err != nil {
			return nil, fmt.Errorf("icalendar: build rrule: %w", err)
		}
		comp.Props.SetText(ics.PropRecurrenceRule, rr.String())
	} else {
		if e.Until.IsZero() {
			return nil, fmt.Errorf("icalendar: selection rules need an until bound")
		}
		if err := appendRDates(comp, e.Rule, e.Start, e.Until); err != nil {
			return nil, err
		}
	}

	cal := ics.NewCalendar()
	cal.Props.SetText(ics.PropProductID, prodID)
	cal.Props.SetText(ics.PropVersion, "2.0")
	cal.Children = append(cal.Children, comp)
	return cal, nil
}

// appendRDates drains the recurrence into RDATE properties. An
// occurrence falling on the DTSTART itself is not repeated as an RDATE.
func appendRDates(comp *ics.Component, rule calends.Rule, start, until time.Time) error {
	rec := calends.WithStart(rule, start).Until(until)
	first := true
	for d, ok := rec.Next(); ok; d, ok = rec.Next() {
		if first && d.Equal(start) {
			first = false
			continue
		}
		first = false
		prop := ics.NewProp(ics.PropRecurrenceDates)
		prop.SetDateTime(d)
		comp.Props.Add(prop)
	}
	if err := rec.Err(); err != nil {
		return fmt.Errorf("icalendar: expand selection rule: %w", err)
	}
	return nil
}
