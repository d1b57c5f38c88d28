package calends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input string
		want  []SelectionRule
	}{
		{"12M", []SelectionRule{SelectMonth(12)}},
		{"-2W", []SelectionRule{SelectWeek(-2)}},
		{"18D", []SelectionRule{SelectDayOfMonth(18)}},
		{"-10D", []SelectionRule{SelectDayOfMonth(-10)}},
		{"-1O", []SelectionRule{SelectOrdinalDay(-1)}},
		{"-307O", []SelectionRule{SelectOrdinalDay(-307)}},
		{"7K", []SelectionRule{SelectWeekdays(time.Sunday)}},
		{
			"L{1,3,5}K",
			[]SelectionRule{SelectWeekdays(time.Monday, time.Wednesday, time.Friday)},
		},
		{
			"L{1,3,5}KN",
			[]SelectionRule{SelectWeekdays(time.Monday, time.Wednesday, time.Friday)},
		},
		{
			"L3K4IN",
			[]SelectionRule{SelectWeekdays(time.Wednesday), SelectPosition(4)},
		},
		{
			"L3K4IN/P5D",
			[]SelectionRule{SelectWeekdays(time.Wednesday), SelectPosition(4), ExtendBy(Days(5))},
		},
		{
			"L{1..31}D{1..5}K-1IN",
			[]SelectionRule{
				{kind: selectDayOfMonth, ordinals: seq(1, 31)},
				{kind: selectWeekday, ordinals: seq(1, 5)},
				SelectPosition(-1),
			},
		},
		{
			"3M5K",
			[]SelectionRule{SelectMonth(3), SelectWeekdays(time.Friday)},
		},
		{
			"L{5,1..3}D",
			[]SelectionRule{{kind: selectDayOfMonth, ordinals: []int{5, 1, 2, 3}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSelection(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

func TestParseSelectionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bare L", "L"},
		{"bare terminator", "N"},
		{"unrecognized token", "5X"},
		{"month out of range", "13M"},
		{"month zero", "0M"},
		{"weekday out of range", "8K"},
		{"weekday negative", "-1K"},
		{"day out of range", "32D"},
		{"day zero", "0D"},
		{"week out of range", "54W"},
		{"ordinal day out of range", "367O"},
		{"position zero", "0I"},
		{"group with position", "L{1,2}I"},
		{"unbalanced group", "L{1,3K"},
		{"descending range", "L{5..1}D"},
		{"missing unit", "12"},
		{"input after terminator", "12MN5K"},
		{"bad extension duration", "12M/5D"},
		{"trailing after duration", "12M/P5Dx"},
		{"lowercase unit", "12m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSelection(tt.input)
			require.Error(t, err)
			var gerr *GrammarError
			assert.ErrorAs(t, err, &gerr)
		})
	}
}

func TestGrammarErrorPosition(t *testing.T) {
	_, err := ParseSelection("12M5X")
	var gerr *GrammarError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 4, gerr.Position)
	assert.Contains(t, gerr.Reason, "unrecognized unit letter")
}

func TestSelectionRuleString(t *testing.T) {
	assert.Equal(t, "12M", SelectMonth(12).String())
	assert.Equal(t, "-2W", SelectWeek(-2).String())
	assert.Equal(t, "{1,3,5}K", SelectWeekdays(time.Monday, time.Wednesday, time.Friday).String())
	assert.Equal(t, "/P0M0W5D", ExtendBy(Days(5)).String())
}
