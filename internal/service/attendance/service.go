package attendance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/worktime"
	"github.com/cmlabs-hris/attendance-payroll/internal/service/calendar"
	payrollservice "github.com/cmlabs-hris/attendance-payroll/internal/service/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	holidayRepo    holiday.HolidayRepository
	duration       *payrollservice.DurationCalculator
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	duration *payrollservice.DurationCalculator,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		holidayRepo:    holidayRepo,
		duration:       duration,
	}
}

// DailySheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DailySheet(ctx context.Context, date string) (attendance.DailySheetResponse, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return attendance.DailySheetResponse{}, fmt.Errorf("%w: %q", attendance.ErrInvalidDate, date)
	}

	records, err := s.attendanceRepo.ListByDate(ctx, day)
	if err != nil {
		return attendance.DailySheetResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	resp := attendance.DailySheetResponse{
		Date:    day.Format(time.DateOnly),
		Entries: make([]attendance.DailySheetEntry, 0, len(records)),
	}

	for _, rec := range records {
		d, otMinutes, err := s.recordDuration(rec)
		if err != nil {
			return attendance.DailySheetResponse{}, err
		}

		status := rec.DayStatus()
		switch status {
		case attendance.DayStatusFullDay:
			resp.FullDayCount++
			resp.PresentCount++
		case attendance.DayStatusHalfDay:
			resp.HalfDayCount++
			resp.PresentCount++
		default:
			resp.AbsentCount++
		}
		resp.TotalOTMinutes += otMinutes

		entry := attendance.DailySheetEntry{
			AttendanceID:    rec.ID,
			EmployeeID:      rec.EmployeeID,
			FNStatus:        string(rec.FNStatus),
			ANStatus:        string(rec.ANStatus),
			Status:          string(status),
			ActualStartTime: rec.ActualStartTime,
			ActualEndTime:   rec.ActualEndTime,
			WorkingDuration: d.WorkingDurationText,
			OTDuration:      worktime.FormatMinutes(otMinutes),
			OTMinutes:       otMinutes,
			PermissionHours: rec.PermissionHours.String(),
		}
		if rec.EmployeeName != nil {
			entry.EmployeeName = *rec.EmployeeName
		}
		if rec.ShiftName != nil {
			entry.ShiftName = *rec.ShiftName
		}
		resp.Entries = append(resp.Entries, entry)
	}

	resp.TotalRecords = len(resp.Entries)
	resp.TotalOT = worktime.FormatMinutes(resp.TotalOTMinutes)
	return resp, nil
}

// recordDuration computes the clock-derived durations of one record and the
// overtime that counts for it. A manual OT entry overrides the calculated figure.
func (s *AttendanceServiceImpl) recordDuration(rec attendance.Attendance) (payroll.Duration, int, error) {
	d, err := s.duration.Calculate(rec.ActualStartTime, rec.ActualEndTime)
	if err != nil {
		return payroll.Duration{}, 0, fmt.Errorf("attendance %s: %w", rec.ID, err)
	}
	if rec.HasManualOT() {
		return d, worktime.DecimalHoursToMinutes(rec.OTHours), nil
	}
	return d, d.OTMinutes, nil
}

// ========== MONTHLY REGISTER ==========

var hundred = decimal.NewFromInt(100)

// MonthlySheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlySheet(ctx context.Context, req payroll.PeriodRequest) (attendance.MonthlySheetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlySheetResponse{}, err
	}

	month := req.Month()
	from := calendar.MonthStart(req.Year, month)
	to := from.AddDate(0, 1, 0)

	var (
		records  []attendance.Attendance
		holidays []holiday.Holiday
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDateRange(gCtx, from, to, req.EmployeeIDs)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		holidays, err = s.holidayRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load holidays: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.MonthlySheetResponse{}, err
	}

	rows := make(map[string]*attendance.MonthlySheetEmployee)
	ids := make([]string, 0)
	for _, rec := range records {
		_, otMinutes, err := s.recordDuration(rec)
		if err != nil {
			return attendance.MonthlySheetResponse{}, err
		}

		row, ok := rows[rec.EmployeeID]
		if !ok {
			row = &attendance.MonthlySheetEmployee{EmployeeID: rec.EmployeeID, PermissionHours: decimal.Zero}
			if rec.EmployeeName != nil {
				row.EmployeeName = *rec.EmployeeName
			}
			rows[rec.EmployeeID] = row
			ids = append(ids, rec.EmployeeID)
		}

		row.TotalDays++
		if rec.DayStatus() == attendance.DayStatusAbsent {
			row.AbsentDays++
		} else {
			row.PresentDays++
		}
		if rec.FNPresent() {
			row.FNPresentDays++
		}
		if rec.ANPresent() {
			row.ANPresentDays++
		}
		row.OTMinutes += otMinutes
		row.PermissionHours = row.PermissionHours.Add(rec.PermissionHours)
	}

	if len(ids) > 0 {
		employees, err := s.employeeRepo.GetByIDs(ctx, ids)
		if err != nil {
			return attendance.MonthlySheetResponse{}, fmt.Errorf("failed to load employees: %w", err)
		}
		for _, emp := range employees {
			if row, ok := rows[emp.ID]; ok {
				row.EmployeeCode = emp.EmployeeCode
				row.EmployeeName = emp.Name
				row.EmployeeType = string(emp.Type())
			}
		}
	}

	resp := attendance.MonthlySheetResponse{
		Year:                  req.Year,
		Month0:                req.Month0,
		WorkingDays:           calendar.WorkingDaysInMonth(req.Year, month, holidays),
		Employees:             make([]attendance.MonthlySheetEmployee, 0, len(rows)),
		TotalRecords:          len(records),
		AverageAttendanceRate: decimal.Zero,
		TotalPermissionHours:  decimal.Zero,
	}

	rateSum := decimal.Zero
	for _, id := range ids {
		row := rows[id]
		row.OTHours = worktime.MinutesToDecimalHours(row.OTMinutes).Round(2)
		row.OTDuration = worktime.FormatMinutes(row.OTMinutes)
		row.AttendanceRate = attendanceRate(row.PresentDays, row.TotalDays)

		rateSum = rateSum.Add(row.AttendanceRate)
		resp.TotalOTMinutes += row.OTMinutes
		resp.TotalPermissionHours = resp.TotalPermissionHours.Add(row.PermissionHours)
		resp.Employees = append(resp.Employees, *row)
	}

	sort.Slice(resp.Employees, func(i, j int) bool {
		a, b := resp.Employees[i], resp.Employees[j]
		if a.EmployeeCode != b.EmployeeCode {
			return a.EmployeeCode < b.EmployeeCode
		}
		return a.EmployeeID < b.EmployeeID
	})

	resp.TotalEmployees = len(resp.Employees)
	if resp.TotalEmployees > 0 {
		resp.AverageAttendanceRate = rateSum.Div(decimal.NewFromInt(int64(resp.TotalEmployees))).Round(1)
	}
	resp.TotalOT = worktime.FormatMinutes(resp.TotalOTMinutes)

	slog.Debug("Built monthly register", "year", req.Year, "month", int(month), "employees", resp.TotalEmployees)
	return resp, nil
}

// attendanceRate is present/total as a percentage with one decimal place.
func attendanceRate(present, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(present)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(1)
}

var monthlySheetHeaders = []string{
	"Employee ID", "Name", "Type", "Total Days", "Present Days", "Absent Days",
	"FN Present", "AN Present", "Total OT Hours", "Total Permission Hours", "Attendance Rate",
}

// ExportMonthlySheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportMonthlySheet(ctx context.Context, req payroll.ExportRequest) (payroll.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return payroll.ExportFile{}, err
	}

	sheet, err := s.MonthlySheet(ctx, req.PeriodRequest)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	rows := make([][]any, 0, len(sheet.Employees))
	for _, e := range sheet.Employees {
		rows = append(rows, []any{
			e.EmployeeCode,
			e.EmployeeName,
			e.EmployeeType,
			e.TotalDays,
			e.PresentDays,
			e.AbsentDays,
			e.FNPresentDays,
			e.ANPresentDays,
			e.OTHours,
			e.PermissionHours,
			e.AttendanceRate.StringFixed(1) + "%",
		})
	}

	month := req.Month()
	table := export.Table{
		Name:    fmt.Sprintf("Attendance %s %d", month.String()[:3], req.Year),
		Headers: monthlySheetHeaders,
		Rows:    rows,
	}

	var buf bytes.Buffer
	file := payroll.ExportFile{
		FileName: fmt.Sprintf("monthly-attendance-%04d-%02d.%s", req.Year, int(month), req.Format),
	}
	switch req.Format {
	case payroll.ExportFormatCSV:
		err = export.WriteCSV(&buf, table)
		file.ContentType = export.ContentTypeCSV
	default:
		err = export.WriteXLSX(&buf, table)
		file.ContentType = export.ContentTypeXLSX
	}
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("failed to render %s export: %w", req.Format, err)
	}

	file.Data = buf.Bytes()
	return file, nil
}
