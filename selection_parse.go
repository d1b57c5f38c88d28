package calends

import (
	"fmt"
	"strconv"
)

// GrammarError reports malformed selection-rule text, with the byte
// position the parser gave up at.
type GrammarError struct {
	Reason   string
	Position int
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("selection grammar error at position %d: %s", e.Position, e.Reason)
}

func grammarErrorf(pos int, format string, args ...any) error {
	return &GrammarError{Reason: fmt.Sprintf(format, args...), Position: pos}
}

// ParseSelection parses selection-rule text into the ordered selector
// list it denotes.
//
// A selection is an optional leading "L", one or more elements, an
// optional terminating "N", and an optional "/duration" interval
// extension. Each element is a signed integer or a {...} group followed
// by a unit letter:
//
//	M  calendar month (1-12)         "12M"
//	W  ISO week of year, signed      "-2W"
//	D  day of month, signed          "18D", "L{1..31}D"
//	K  weekday, 1=Monday..7=Sunday   "4K", "L{1,3,5}K"
//	O  ordinal day of year, signed   "-1O"
//	I  position in candidate set     "-1I"
//
// Groups list values ("{1,3,5}") or ranges ("{1..31}") and are legal
// for every unit except I. "L3K4IN/P5D" selects the fourth Wednesday
// and widens it into a five-day span.
func ParseSelection(text string) ([]SelectionRule, error) {
	s := text
	i := 0
	if i < len(s) && s[i] == 'L' {
		i++
	}

	var rules []SelectionRule
	terminated := false

scan:
	for i < len(s) {
		switch c := s[i]; {
		case c == 'N':
			i++
			terminated = true
			break scan
		case c == '/':
			break scan
		case c == '-' || c == '{' || (c >= '0' && c <= '9'):
			rule, next, err := parseElement(s, i)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
			i = next
		default:
			return nil, grammarErrorf(i, "unrecognized token %q", string(c))
		}
	}

	if len(rules) == 0 {
		return nil, grammarErrorf(i, "empty selection")
	}

	if i < len(s) && s[i] == '/' {
		d, rest, err := parseRelativeDuration(s[i+1:])
		if err != nil {
			return nil, grammarErrorf(i+1, "interval extension: %v", err)
		}
		if rest != "" {
			return nil, grammarErrorf(len(s)-len(rest), "trailing input %q", rest)
		}
		rules = append(rules, ExtendBy(d))
		i = len(s)
	}
	if i < len(s) {
		reason := "trailing input %q"
		if terminated {
			reason = "input %q after selection terminator"
		}
		return nil, grammarErrorf(i, reason, s[i:])
	}
	return rules, nil
}

// parseElement reads one "<ordinal-or-group><unit>" element starting at
// position i.
func parseElement(s string, i int) (SelectionRule, int, error) {
	start := i
	var ordinals []int
	var err error

	if s[i] == '{' {
		ordinals, i, err = parseGroup(s, i)
		if err != nil {
			return SelectionRule{}, 0, err
		}
	} else {
		var n int
		n, i, err = parseOrdinal(s, i)
		if err != nil {
			return SelectionRule{}, 0, err
		}
		ordinals = []int{n}
	}

	if i >= len(s) {
		return SelectionRule{}, 0, grammarErrorf(i, "missing unit letter")
	}
	var kind selectorKind
	switch s[i] {
	case 'M':
		kind = selectMonth
	case 'W':
		kind = selectWeek
	case 'D':
		kind = selectDayOfMonth
	case 'K':
		kind = selectWeekday
	case 'O':
		kind = selectOrdinalDay
	case 'I':
		kind = selectPosition
	default:
		return SelectionRule{}, 0, grammarErrorf(i, "unrecognized unit letter %q", string(s[i]))
	}
	i++

	if kind == selectPosition && len(ordinals) != 1 {
		return SelectionRule{}, 0, grammarErrorf(start, "group not allowed with position selector")
	}
	rule := SelectionRule{kind: kind, ordinals: ordinals}
	if err := rule.validate(); err != nil {
		return SelectionRule{}, 0, grammarErrorf(start, "%v", err)
	}
	return rule, i, nil
}

// parseGroup reads a "{n,n..m,...}" set literal.
func parseGroup(s string, i int) ([]int, int, error) {
	open := i
	i++ // consume '{'
	var out []int
	for {
		if i >= len(s) {
			return nil, 0, grammarErrorf(open, "unbalanced group")
		}
		lo, next, err := parseOrdinal(s, i)
		if err != nil {
			return nil, 0, err
		}
		i = next
		if i+1 < len(s) && s[i] == '.' && s[i+1] == '.' {
			var hi int
			hi, i, err = parseOrdinal(s, i+2)
			if err != nil {
				return nil, 0, err
			}
			if hi < lo {
				return nil, 0, grammarErrorf(open, "descending range %d..%d", lo, hi)
			}
			for v := lo; v <= hi; v++ {
				out = append(out, v)
			}
		} else {
			out = append(out, lo)
		}

		if i >= len(s) {
			return nil, 0, grammarErrorf(open, "unbalanced group")
		}
		switch s[i] {
		case ',':
			i++
		case '}':
			return out, i + 1, nil
		default:
			return nil, 0, grammarErrorf(i, "unrecognized token %q in group", string(s[i]))
		}
	}
}

// parseOrdinal reads a signed integer literal.
func parseOrdinal(s string, i int) (int, int, error) {
	start := i
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, 0, grammarErrorf(start, "expected integer literal")
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, 0, grammarErrorf(start, "integer literal %q: %v", s[start:i], err)
	}
	return n, i, nil
}
