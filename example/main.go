// Command example demonstrates calends durations, intervals and the
// selection-rule recurrence engine.
package main

import (
	"log"
	"time"

	"github.com/cyp0633/calends"
)

func main() {
	start := time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

	// Calendar-unit arithmetic: one month forward, two days back.
	rd := calends.Months(1).WithDays(-2)
	log.Printf("%s + %s = %s", start.Format("2006-01-02"), rd, rd.AddTo(start).Format("2006-01-02"))

	// A closed interval derived from a start and a duration.
	iv, err := calends.ClosedFromStart(start, calends.Months(23).WithWeeks(-1).WithDays(1))
	if err != nil {
		log.Fatalf("build interval: %v", err)
	}
	log.Printf("interval: %s", iv)

	// Monthly recurrence, inclusive start, exclusive until.
	rec := calends.WithStart(calends.Monthly(), start).Until(time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC))
	for d, ok := rec.Next(); ok; d, ok = rec.Next() {
		log.Printf("monthly: %s", d.Format("2006-01-02"))
	}

	// Selection grammar: a 5-day span starting on the fourth Wednesday
	// of every month.
	rule, err := calends.Selection(calends.PeriodMonth, "L3K4IN/P5D")
	if err != nil {
		log.Fatalf("parse selection: %v", err)
	}
	spans := calends.WithStart(rule, start).Until(time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC))
	for occ, ok := spans.NextOccurrence(); ok; occ, ok = spans.NextOccurrence() {
		if span, present := occ.Span.Get(); present {
			log.Printf("fourth wednesday: %s", span)
		}
	}
	if err := spans.Err(); err != nil {
		log.Fatalf("expand selection: %v", err)
	}
}
