package calends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthPeriod(t *testing.T) {
	p := MonthOf(ymd(2022, time.February, 3))
	assert.Equal(t, ymd(2022, time.February, 1), p.Start())
	assert.Equal(t, ymd(2022, time.February, 28), p.End())
	assert.True(t, p.Contains(ymd(2022, time.February, 28)))
	assert.False(t, p.Contains(ymd(2022, time.March, 1)))

	next := p.Next()
	assert.Equal(t, ymd(2022, time.March, 1), next.Start())
	assert.Equal(t, ymd(2022, time.March, 31), next.End())
}

func TestMonthPeriodAcrossYearEnd(t *testing.T) {
	p := MonthOf(ymd(2022, time.December, 31)).Next()
	assert.Equal(t, ymd(2023, time.January, 1), p.Start())
	assert.Equal(t, ymd(2023, time.January, 31), p.End())
}

func TestYearPeriod(t *testing.T) {
	p := YearOf(ymd(2022, time.June, 15))
	assert.Equal(t, ymd(2022, time.January, 1), p.Start())
	assert.Equal(t, ymd(2022, time.December, 31), p.End())
	assert.True(t, p.Contains(ymd(2022, time.January, 1)))
	assert.False(t, p.Contains(ymd(2021, time.December, 31)))

	next := p.Next()
	assert.Equal(t, 2023, next.Year)
	assert.Equal(t, ymd(2023, time.January, 1), next.Start())
}
