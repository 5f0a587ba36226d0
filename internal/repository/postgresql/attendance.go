package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.shift_id, a.fn_status, a.an_status,
	COALESCE(to_char(a.actual_start_time, 'HH24:MI'), ''),
	COALESCE(to_char(a.actual_end_time, 'HH24:MI'), ''),
	a.ot_hours, a.permission_hours, a.created_at, e.name, s.name
`

// ListByDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE a.date >= $1 AND a.date < $2
			AND (cardinality($3::uuid[]) = 0 OR a.employee_id = ANY($3::uuid[]))
		ORDER BY a.date, a.employee_id
	`

	if employeeIDs == nil {
		employeeIDs = []string{}
	}

	rows, err := q.Query(ctx, query, from, to, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		LEFT JOIN shifts s ON s.id = a.shift_id
		WHERE a.date = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for %s: %w", date.Format(time.DateOnly), err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var (
			rec             attendance.Attendance
			fnStatus        string
			anStatus        string
			otHours         *decimal.Decimal
			permissionHours *decimal.Decimal
		)
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ShiftID, &fnStatus, &anStatus,
			&rec.ActualStartTime, &rec.ActualEndTime,
			&otHours, &permissionHours, &rec.CreatedAt, &rec.EmployeeName, &rec.ShiftName,
		)
		if err != nil {
			return nil, err
		}

		rec.FNStatus = attendance.SessionStatus(fnStatus)
		rec.ANStatus = attendance.SessionStatus(anStatus)
		rec.OTHours = decimalOrZero(otHours)
		rec.PermissionHours = decimalOrZero(permissionHours)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
