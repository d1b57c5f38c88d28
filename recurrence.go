package calends

import (
	"time"

	"github.com/samber/mo"
)

// maxEmptyPeriods bounds how many consecutive matchless periods an
// unbounded recurrence will scan before giving up. Every selection that
// can match at all matches within a year's worth of periods; the
// generous cap only stops rules that can never match again (such as a
// week-53 selection combined with an impossible position) from
// spinning forever.
const maxEmptyPeriods = 1000

// Recurrence is a stateful, resumable cursor over the dates a Rule
// produces, starting at an inclusive start date and optionally stopping
// before an exclusive until date.
//
// A Recurrence advances in place and cannot rewind; construct a fresh
// one to restart. Each instance must be confined to one logical owner
// at a time. Without an until bound it never exhausts on its own
// (beyond the safety cap above): the caller stops iterating when done.
type Recurrence struct {
	rule   Rule
	anchor time.Time
	until  mo.Option[time.Time]

	cursor  Period
	pending []Occurrence
	idx     int
	empty   int
	started bool
	done    bool
	err     error
}

// WithStart creates a recurrence for the rule beginning at start. The
// start date both anchors fixed-cadence rules and is the inclusive
// lower bound of the produced sequence.
func WithStart(rule Rule, start time.Time) *Recurrence {
	return &Recurrence{rule: rule, anchor: midnightUTC(start)}
}

// Until sets the exclusive upper bound: no produced date is on or after
// it. It must be called before the first Next and returns the receiver
// for chaining.
func (r *Recurrence) Until(date time.Time) *Recurrence {
	r.until = mo.Some(midnightUTC(date))
	return r
}

// Next returns the next date in the sequence. ok is false once the
// recurrence is exhausted or an evaluation error occurred; check Err to
// tell the two apart.
func (r *Recurrence) Next() (time.Time, bool) {
	occ, ok := r.NextOccurrence()
	return occ.Date, ok
}

// NextOccurrence is Next with the full occurrence, including the span
// for interval-extended selections.
//
// Each call performs at most one further period's worth of rule
// evaluation. Dates come out in non-decreasing order.
func (r *Recurrence) NextOccurrence() (Occurrence, bool) {
	if r.done {
		return Occurrence{}, false
	}
	if !r.started {
		r.started = true
		r.cursor = periodOf(r.rule.PeriodKind(), r.anchor)
		if !r.expand() {
			return Occurrence{}, false
		}
	}

	for {
		for r.idx < len(r.pending) {
			occ := r.pending[r.idx]
			r.idx++
			if occ.Date.Before(r.anchor) {
				continue
			}
			if until, ok := r.until.Get(); ok && !occ.Date.Before(until) {
				r.done = true
				return Occurrence{}, false
			}
			return occ, true
		}

		r.cursor = r.cursor.Next()
		if until, ok := r.until.Get(); ok && !r.cursor.Start().Before(until) {
			r.done = true
			return Occurrence{}, false
		}
		if !r.expand() {
			return Occurrence{}, false
		}
	}
}

// expand evaluates the rule against the current cursor period.
func (r *Recurrence) expand() bool {
	occs, err := r.rule.OccurrencesIn(r.cursor, r.anchor)
	if err != nil {
		r.err = err
		r.done = true
		return false
	}
	r.pending, r.idx = occs, 0
	if len(occs) == 0 {
		r.empty++
		if r.empty > maxEmptyPeriods {
			r.done = true
			return false
		}
	} else {
		r.empty = 0
	}
	return true
}

// Err returns the rule-evaluation error that stopped iteration, if
// any. Exhaustion by the until bound is not an error.
func (r *Recurrence) Err() error {
	return r.err
}
