package holiday

import "time"

type HolidayType string

const (
	HolidayTypeNational  HolidayType = "national"
	HolidayTypeReligious HolidayType = "religious"
	HolidayTypeCompany   HolidayType = "company"
	HolidayTypeOther     HolidayType = "other"
)

type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Type        HolidayType
	IsRecurring bool
}

// Matches reports whether the holiday falls on date. Recurring holidays match the
// same month and day in any year.
func (h Holiday) Matches(date time.Time) bool {
	if h.Date.Month() != date.Month() || h.Date.Day() != date.Day() {
		return false
	}
	return h.IsRecurring || h.Date.Year() == date.Year()
}
