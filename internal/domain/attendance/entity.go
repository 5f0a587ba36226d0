package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionPresent SessionStatus = "present"
	SessionAbsent  SessionStatus = "absent"
)

type DayStatus string

const (
	DayStatusFullDay DayStatus = "Full Day"
	DayStatusHalfDay DayStatus = "Half Day"
	DayStatusAbsent  DayStatus = "Absent"
)

// Attendance is one record per employee per calendar date, with independent
// forenoon (FN) and afternoon (AN) sessions.
type Attendance struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	ShiftID         *string
	FNStatus        SessionStatus
	ANStatus        SessionStatus
	ActualStartTime string // "HH:MM", empty when not captured
	ActualEndTime   string
	OTHours         decimal.Decimal // manual entry, zero when absent
	PermissionHours decimal.Decimal
	CreatedAt       time.Time

	// Joined fields
	EmployeeName *string
	ShiftName    *string
}

func (a Attendance) FNPresent() bool { return a.FNStatus == SessionPresent }

func (a Attendance) ANPresent() bool { return a.ANStatus == SessionPresent }

// DayStatus derives the overall status from the two half-day sessions.
func (a Attendance) DayStatus() DayStatus {
	switch {
	case a.FNPresent() && a.ANPresent():
		return DayStatusFullDay
	case a.FNPresent() || a.ANPresent():
		return DayStatusHalfDay
	default:
		return DayStatusAbsent
	}
}

// HasManualOT reports whether an OT figure was entered by hand for this day.
func (a Attendance) HasManualOT() bool {
	return !a.OTHours.IsZero()
}

// HasActualTimes reports whether both clock readings were captured.
func (a Attendance) HasActualTimes() bool {
	return a.ActualStartTime != "" && a.ActualEndTime != ""
}
