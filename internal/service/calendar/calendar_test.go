package calendar

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsSunday(t *testing.T) {
	assert.True(t, IsSunday(date(2024, time.February, 4)))
	assert.False(t, IsSunday(date(2024, time.February, 3)), "saturday is a working day")
	assert.False(t, IsSunday(date(2024, time.February, 5)))
}

func TestIsHoliday(t *testing.T) {
	holidays := []holiday.Holiday{
		{Name: "Republic Day", Date: date(2020, time.January, 26), IsRecurring: true},
		{Name: "Company Day", Date: date(2024, time.March, 15)},
	}

	assert.True(t, IsHoliday(date(2024, time.January, 26), holidays), "recurring matches any year")
	assert.True(t, IsHoliday(date(2024, time.March, 15), holidays))
	assert.False(t, IsHoliday(date(2025, time.March, 15), holidays), "one-off holiday is year bound")
	assert.False(t, IsHoliday(date(2024, time.March, 16), holidays))
	assert.False(t, IsHoliday(date(2024, time.March, 15), nil))
}

func TestIsWorkingDay(t *testing.T) {
	recurring := []holiday.Holiday{
		{Name: "Republic Day", Date: date(2020, time.January, 26), IsRecurring: true},
	}

	tests := []struct {
		name     string
		date     time.Time
		holidays []holiday.Holiday
		want     bool
	}{
		{"sunday without holidays", date(2024, time.February, 4), nil, false},
		{"recurring holiday from another year", date(2024, time.January, 26), recurring, false},
		{"ordinary weekday", date(2024, time.February, 5), recurring, true},
		{"saturday", date(2024, time.February, 3), nil, true},
		{"one-off holiday from another year", date(2024, time.January, 26), []holiday.Holiday{
			{Name: "Republic Day", Date: date(2020, time.January, 26)},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorkingDay(tt.date, tt.holidays))
		})
	}
}

func TestWorkingDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		holidays []holiday.Holiday
		want     int
	}{
		{"february leap year without holidays", 2024, time.February, nil, 25},
		{"march 2024 has five sundays", 2024, time.March, nil, 26},
		{"april 2024", 2024, time.April, nil, 26},
		{"february 2023", 2023, time.February, nil, 24},
		{
			name:  "weekday holiday is excluded",
			year:  2024,
			month: time.February,
			holidays: []holiday.Holiday{
				{Date: date(2024, time.February, 14)},
			},
			want: 24,
		},
		{
			name:  "holiday on a sunday is not counted twice",
			year:  2024,
			month: time.February,
			holidays: []holiday.Holiday{
				{Date: date(2024, time.February, 4)},
			},
			want: 25,
		},
		{
			name:  "recurring holiday from an earlier year",
			year:  2024,
			month: time.January,
			holidays: []holiday.Holiday{
				{Date: date(1999, time.January, 26), IsRecurring: true},
			},
			want: 26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkingDaysInMonth(tt.year, tt.month, tt.holidays))
		})
	}
}

func TestMonthBounds(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 1), MonthStart(2024, time.February))
	assert.Equal(t, date(2024, time.February, 29), MonthEnd(2024, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
	assert.True(t, InMonth(date(2024, time.February, 29), 2024, time.February))
	assert.False(t, InMonth(date(2023, time.February, 1), 2024, time.February))
}
