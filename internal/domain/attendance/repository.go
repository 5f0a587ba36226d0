package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads attendance records keyed on their own date, never on
// creation time, so backfilled records land in the right month.
type AttendanceRepository interface {
	// ListByDateRange returns records with from <= date < to. An empty employeeIDs
	// slice means all employees.
	ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]Attendance, error)

	// ListByDate returns every record for one calendar date with employee and shift names joined.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}
