package calendar

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/holiday"
)

// IsSunday reports whether date falls on a Sunday. Saturdays are working days.
func IsSunday(date time.Time) bool {
	return date.Weekday() == time.Sunday
}

// IsHoliday reports whether any of the holidays falls on date.
func IsHoliday(date time.Time, holidays []holiday.Holiday) bool {
	for _, h := range holidays {
		if h.Matches(date) {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether date is neither a Sunday nor a holiday.
func IsWorkingDay(date time.Time, holidays []holiday.Holiday) bool {
	return !IsSunday(date) && !IsHoliday(date, holidays)
}

// WorkingDaysInMonth counts the working days of the given month.
func WorkingDaysInMonth(year int, month time.Month, holidays []holiday.Holiday) int {
	count := 0
	for day := MonthStart(year, month); day.Month() == month; day = day.AddDate(0, 0, 1) {
		if IsWorkingDay(day, holidays) {
			count++
		}
	}
	return count
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	return MonthEnd(year, month).Day()
}

// MonthStart returns midnight UTC of the first day of the month.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns midnight UTC of the last day of the month.
func MonthEnd(year int, month time.Month) time.Time {
	return MonthStart(year, month).AddDate(0, 1, -1)
}

// InMonth reports whether date lies within the given month.
func InMonth(date time.Time, year int, month time.Month) bool {
	return date.Year() == year && date.Month() == month
}
