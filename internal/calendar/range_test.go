package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	start := NewDate(2018, time.February, 10)
	end := NewDate(2018, time.February, 12)

	dates, err := Expand(start, end)
	require.NoError(t, err)
	assert.Equal(t, []Date{
		NewDate(2018, time.February, 10),
		NewDate(2018, time.February, 11),
		NewDate(2018, time.February, 12),
	}, dates)
}

func TestExpandSingleDay(t *testing.T) {
	d := NewDate(2018, time.February, 10)
	dates, err := Expand(d, d)
	require.NoError(t, err)
	assert.Equal(t, []Date{d}, dates)
}

func TestExpandProperties(t *testing.T) {
	// Length, ordering and endpoints hold across spans of varying size,
	// including month and year boundaries.
	starts := []Date{
		NewDate(2018, time.January, 1),
		NewDate(2018, time.February, 25),
		NewDate(2018, time.December, 20),
	}
	for _, start := range starts {
		for days := 0; days < 40; days++ {
			end := start.AddDays(days)
			dates, err := Expand(start, end)
			require.NoError(t, err)
			require.Len(t, dates, days+1)
			assert.Equal(t, start, dates[0])
			assert.Equal(t, end, dates[len(dates)-1])
			for i := 1; i < len(dates); i++ {
				assert.True(t, dates[i-1].Before(dates[i]))
			}
		}
	}
}

func TestExpandRejectsInvertedRange(t *testing.T) {
	_, err := Expand(NewDate(2018, time.February, 12), NewDate(2018, time.February, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFilterRangeWeekendToggle(t *testing.T) {
	oracle := newTestOracle(t)
	start := NewDate(2018, time.February, 10) // Saturday
	end := NewDate(2018, time.February, 12)   // Monday

	// With weekends, Feb 10 (ordinary Saturday) is a holiday.
	holidays, err := oracle.Holidays(start, end, true)
	require.NoError(t, err)
	assert.Equal(t, []Date{NewDate(2018, time.February, 10)}, holidays)

	// Without weekends the span holds no holidays at all.
	holidays, err = oracle.Holidays(start, end, false)
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestWorkdaysRange(t *testing.T) {
	oracle := newTestOracle(t)
	start := NewDate(2018, time.February, 10)
	end := NewDate(2018, time.February, 12)

	workdays, err := oracle.Workdays(start, end, true)
	require.NoError(t, err)
	assert.Equal(t, []Date{
		NewDate(2018, time.February, 11),
		NewDate(2018, time.February, 12),
	}, workdays)

	// Dropping weekends removes the Sunday make-up day too.
	workdays, err = oracle.Workdays(start, end, false)
	require.NoError(t, err)
	assert.Equal(t, []Date{NewDate(2018, time.February, 12)}, workdays)
}

func TestTradingDayRanges(t *testing.T) {
	oracle := newTestOracle(t)
	start := NewDate(2018, time.February, 10)
	end := NewDate(2018, time.February, 12)

	interbank, err := oracle.InterbankTradingDays(start, end)
	require.NoError(t, err)
	assert.Equal(t, []Date{
		NewDate(2018, time.February, 11),
		NewDate(2018, time.February, 12),
	}, interbank)

	aShare, err := oracle.AShareTradingDays(start, end)
	require.NoError(t, err)
	assert.Equal(t, []Date{NewDate(2018, time.February, 12)}, aShare)
}

func TestFilterRangePropagatesOutOfRange(t *testing.T) {
	oracle := newTestOracle(t)
	_, maxDate := oracle.SupportedRange()

	_, err := oracle.Holidays(maxDate, maxDate.AddDays(5), true)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
