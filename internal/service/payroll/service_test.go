package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/allowance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	staffID  = "6f1c2b7e-4a53-4f0e-9d2a-1b2c3d4e5f60"
	labourID = "0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
	idleID   = "11111111-2222-4333-8444-555555555555"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, r.err
}

func (r *fakeEmployeeRepo) GetActive(context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, r.err
}

type fakeAttendanceRepo struct {
	records []attendance.Attendance
	err     error
}

func (r *fakeAttendanceRepo) ListByDateRange(_ context.Context, from, to time.Time, _ []string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range r.records {
		if !rec.Date.Before(from) && rec.Date.Before(to) {
			out = append(out, rec)
		}
	}
	return out, r.err
}

func (r *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, r.err
}

type fakeAllowanceRepo struct {
	allowances []allowance.Allowance
}

func (r *fakeAllowanceRepo) ListByDateRange(_ context.Context, from, to time.Time, _ []string) ([]allowance.Allowance, error) {
	var out []allowance.Allowance
	for _, a := range r.allowances {
		if !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (r *fakeHolidayRepo) List(context.Context) ([]holiday.Holiday, error) {
	return r.holidays, nil
}

type fixture struct {
	service    *PayrollServiceImpl
	attendance *fakeAttendanceRepo
	employees  *fakeEmployeeRepo
	holidays   *fakeHolidayRepo
}

func newFixture() fixture {
	staff := staffEmployee(staffID, "30000", false)
	staff.EmployeeCode = "EMP002"
	labour := labourEmployee(labourID, "800", false)
	labour.EmployeeCode = "EMP001"
	idle := labourEmployee(idleID, "500", false)
	idle.EmployeeCode = "EMP003"
	idle.IsActive = false

	employees := &fakeEmployeeRepo{employees: []employee.Employee{staff, labour, idle}}
	att := &fakeAttendanceRepo{records: append(
		everyWorkingDay(staffID),
		timedDay(labourID, day(5), "08:00", "18:00"),
		fullDay(labourID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
	)}
	allowances := &fakeAllowanceRepo{allowances: []allowance.Allowance{
		{EmployeeID: labourID, Date: day(5), Type: allowance.AllowanceTypeFood},
	}}
	holidays := &fakeHolidayRepo{}

	svc := NewPayrollService(employees, att, allowances, holidays, NewSalaryCalculator(payroll.DefaultPolicy()))
	return fixture{service: svc, attendance: att, employees: employees, holidays: holidays}
}

func TestPayrollService_SetWorkers(t *testing.T) {
	f := newFixture()
	defaultWorkers := f.service.workers
	require.Positive(t, defaultWorkers)

	f.service.SetWorkers(0)
	assert.Equal(t, defaultWorkers, f.service.workers, "zero keeps the default")

	f.service.SetWorkers(-3)
	assert.Equal(t, defaultWorkers, f.service.workers, "negative keeps the default")

	f.service.SetWorkers(1)
	assert.Equal(t, 1, f.service.workers)

	reports, err := f.service.Reports(context.Background(), february())
	require.NoError(t, err)
	assert.Len(t, reports, 2)

	f.service.SetWorkers(0)
	assert.Equal(t, 1, f.service.workers, "zero keeps the last configured value")
}

func february() payroll.PeriodRequest {
	return payroll.PeriodRequest{Year: 2024, Month0: 1}
}

func TestPayrollService_CalculateDuration(t *testing.T) {
	f := newFixture()

	resp, err := f.service.CalculateDuration(context.Background(), payroll.DurationRequest{StartTime: "09:00", EndTime: "18:29"})
	require.NoError(t, err)
	assert.Equal(t, 524, resp.WorkingMinutes)
	assert.Equal(t, 44, resp.OTMinutes)
	assert.Equal(t, "0.73", resp.OTHours.String())
	assert.True(t, resp.IsOTEligible)

	_, err = f.service.CalculateDuration(context.Background(), payroll.DurationRequest{StartTime: "9am", EndTime: "18:00"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_CalculateDurationManualOT(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		manual   string
		wantMin  int
		wantText string
	}{
		{"1h 15m", 75, "1h 15m"},
		{"1.25", 75, "1h 15m"},
		{"1:15", 75, "1h 15m"},
		{"2", 120, "2h 0m"},
	}
	for _, c := range cases {
		resp, err := f.service.CalculateDuration(ctx, payroll.DurationRequest{StartTime: "09:00", EndTime: "18:29", ManualOT: c.manual})
		require.NoError(t, err, c.manual)
		assert.True(t, resp.IsManualOT, c.manual)
		assert.Equal(t, c.wantMin, resp.OTMinutes, c.manual)
		assert.Equal(t, c.wantText, resp.OTDurationText, c.manual)
		assert.Equal(t, 44, resp.CalculatedOTMinutes, c.manual)
		assert.Equal(t, 524, resp.WorkingMinutes, c.manual)
	}

	resp, err := f.service.CalculateDuration(ctx, payroll.DurationRequest{StartTime: "09:00", EndTime: "18:29", ManualOT: "0"})
	require.NoError(t, err)
	assert.False(t, resp.IsManualOT, "a zero entry keeps the calculated overtime")
	assert.Equal(t, 44, resp.OTMinutes)

	_, err = f.service.CalculateDuration(ctx, payroll.DurationRequest{StartTime: "09:00", EndTime: "18:29", ManualOT: "lots"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "manual_ot")
}

func TestPayrollService_GetWorkingDays(t *testing.T) {
	f := newFixture()
	f.holidays.holidays = []holiday.Holiday{{Name: "Closure", Date: day(14)}}

	resp, err := f.service.GetWorkingDays(context.Background(), february())
	require.NoError(t, err)
	assert.Equal(t, 24, resp.WorkingDays)
	assert.Equal(t, 29, resp.CalendarDay)
	assert.Equal(t, 1, resp.Month0)

	_, err = f.service.GetWorkingDays(context.Background(), payroll.PeriodRequest{Year: 2024, Month0: 12})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_GenerateReports(t *testing.T) {
	f := newFixture()

	reports, err := f.service.GenerateReports(context.Background(), february())
	require.NoError(t, err)
	require.Len(t, reports, 2, "inactive employees are skipped")

	assert.Equal(t, "EMP001", reports[0].EmployeeCode)
	assert.Equal(t, "EMP002", reports[1].EmployeeCode)

	labour := reports[0]
	assert.Equal(t, "labour", labour.EmployeeType)
	assert.Equal(t, 1, labour.Month0)
	assert.Equal(t, 2, labour.TotalPresentSessions, "march record excluded")
	assert.Equal(t, "1h 15m", labour.OTDurationText)
	assertMoney(t, "187.5", labour.OTAmount, "ot amount")
	assertMoney(t, "30", labour.TotalAllowances, "allowances")
	assertMoney(t, "957.5", labour.NetSalary, "net")

	staff := reports[1]
	assertMoney(t, "30000", staff.NetSalary, "staff net")
}

func TestPayrollService_GenerateReports_SelectedEmployees(t *testing.T) {
	f := newFixture()

	req := february()
	req.EmployeeIDs = []string{idleID}
	reports, err := f.service.GenerateReports(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assertMoney(t, "0", reports[0].NetSalary, "net")

	req.EmployeeIDs = []string{"not-a-uuid"}
	_, err = f.service.GenerateReports(context.Background(), req)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_GenerateReports_RepositoryError(t *testing.T) {
	f := newFixture()
	boom := errors.New("connection reset")
	f.attendance.err = boom

	_, err := f.service.GenerateReports(context.Background(), february())
	assert.ErrorIs(t, err, boom)
}

func TestPayrollService_GenerateReports_NoWorkingDays(t *testing.T) {
	f := newFixture()
	for d := 1; d <= 29; d++ {
		f.holidays.holidays = append(f.holidays.holidays, holiday.Holiday{Date: day(d)})
	}

	_, err := f.service.GenerateReports(context.Background(), february())
	assert.ErrorIs(t, err, employee.ErrNoWorkingDays)
}

func TestPayrollService_GetEmployeeReport(t *testing.T) {
	f := newFixture()

	report, err := f.service.GetEmployeeReport(context.Background(), labourID, february())
	require.NoError(t, err)
	assert.Equal(t, labourID, report.EmployeeID)
	assertMoney(t, "957.5", report.NetSalary, "net")

	_, err = f.service.GetEmployeeReport(context.Background(), "aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee", february())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.service.GetEmployeeReport(context.Background(), "EMP001", february())
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_GetSummary(t *testing.T) {
	f := newFixture()

	summary, err := f.service.GetSummary(context.Background(), february())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEmployees)
	assertMoney(t, "30800", summary.TotalBasicSalary, "basic")
	assertMoney(t, "187.5", summary.TotalOTAmount, "ot")
	assertMoney(t, "30957.5", summary.TotalNetSalary, "net")
	assertMoney(t, "52", summary.AverageAttendance, "attendance")
}

func TestPayrollService_ExportReports(t *testing.T) {
	f := newFixture()

	t.Run("csv", func(t *testing.T) {
		file, err := f.service.ExportReports(context.Background(), payroll.ExportRequest{PeriodRequest: february(), Format: "CSV"})
		require.NoError(t, err)
		assert.Equal(t, "salary-report-2024-02.csv", file.FileName)
		assert.Equal(t, export.ContentTypeCSV, file.ContentType)

		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Len(t, records[0], 17)
		assert.Equal(t, "EMP001", records[1][0])
		assert.Equal(t, "957.50", records[1][16])
	})

	t.Run("xlsx by default", func(t *testing.T) {
		file, err := f.service.ExportReports(context.Background(), payroll.ExportRequest{PeriodRequest: february()})
		require.NoError(t, err)
		assert.Equal(t, "salary-report-2024-02.xlsx", file.FileName)
		assert.Equal(t, export.ContentTypeXLSX, file.ContentType)

		wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		defer wb.Close()
		assert.Equal(t, []string{"Salary Feb 2024"}, wb.GetSheetList())
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := f.service.ExportReports(context.Background(), payroll.ExportRequest{PeriodRequest: february(), Format: "pdf"})
		assert.ErrorIs(t, err, payroll.ErrInvalidExportFormat)
	})
}
