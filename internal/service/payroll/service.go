package payroll

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/allowance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/export"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/worktime"
	"github.com/cmlabs-hris/attendance-payroll/internal/service/calendar"
	"golang.org/x/sync/errgroup"
)

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	allowanceRepo  allowance.AllowanceRepository
	holidayRepo    holiday.HolidayRepository
	calculator     *SalaryCalculator
	workers        int
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	allowanceRepo allowance.AllowanceRepository,
	holidayRepo holiday.HolidayRepository,
	calculator *SalaryCalculator,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		allowanceRepo:  allowanceRepo,
		holidayRepo:    holidayRepo,
		calculator:     calculator,
		workers:        runtime.GOMAXPROCS(0),
	}
}

// SetWorkers bounds how many salary calculations run at once. n <= 0 keeps the default.
func (s *PayrollServiceImpl) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// ========== CALCULATIONS ==========

func (s *PayrollServiceImpl) CalculateDuration(ctx context.Context, req payroll.DurationRequest) (payroll.DurationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DurationResponse{}, err
	}

	d, err := s.calculator.DurationCalculator().Calculate(req.StartTime, req.EndTime)
	if err != nil {
		return payroll.DurationResponse{}, err
	}

	places := s.calculator.Policy().RoundingPlaces
	resp := payroll.DurationResponse{
		TotalMinutes:        d.TotalMinutes,
		WorkingMinutes:      d.WorkingMinutes,
		WorkingHours:        d.WorkingHours.Round(places),
		OTMinutes:           d.OTMinutes,
		OTHours:             d.OTHours.Round(places),
		WorkingDurationText: d.WorkingDurationText,
		OTDurationText:      d.OTDurationText,
		IsOTEligible:        d.IsOTEligible,
		CalculatedOTMinutes: d.OTMinutes,
	}

	// A manual entry replaces the calculated overtime, as it does in the monthly salary.
	manual, err := worktime.ParseDurationText(req.ManualOT)
	if err != nil {
		return payroll.DurationResponse{}, err
	}
	if manual > 0 {
		resp.OTMinutes = manual
		resp.OTHours = worktime.MinutesToDecimalHours(manual).Round(places)
		resp.OTDurationText = worktime.FormatMinutes(manual)
		resp.IsManualOT = true
	}

	return resp, nil
}

func (s *PayrollServiceImpl) GetWorkingDays(ctx context.Context, req payroll.PeriodRequest) (payroll.WorkingDaysResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.WorkingDaysResponse{}, err
	}

	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return payroll.WorkingDaysResponse{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	return payroll.WorkingDaysResponse{
		Year:        req.Year,
		Month0:      req.Month0,
		WorkingDays: calendar.WorkingDaysInMonth(req.Year, req.Month(), holidays),
		CalendarDay: calendar.DaysInMonth(req.Year, req.Month()),
	}, nil
}

// ========== REPORTS ==========

func (s *PayrollServiceImpl) GenerateReports(ctx context.Context, req payroll.PeriodRequest) ([]payroll.SalaryReportResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reports, err := s.Reports(ctx, req)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.SalaryReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, toSalaryReportResponse(r))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) GetEmployeeReport(ctx context.Context, employeeID string, req payroll.PeriodRequest) (payroll.SalaryReportResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return payroll.SalaryReportResponse{}, validator.ValidationErrors{
			{Field: "employee_id", Message: "must be a valid UUID"},
		}
	}
	req.EmployeeIDs = []string{employeeID}
	if err := req.Validate(); err != nil {
		return payroll.SalaryReportResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.SalaryReportResponse{}, err
	}

	reports, err := s.calculate(ctx, req, []employee.Employee{emp})
	if err != nil {
		return payroll.SalaryReportResponse{}, err
	}

	return toSalaryReportResponse(reports[0]), nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, req payroll.PeriodRequest) (payroll.PayrollSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	reports, err := s.Reports(ctx, req)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}

	return toSummaryResponse(Summarize(req.Year, req.Month(), reports)), nil
}

// Reports loads the period's data and computes one report per employee, ordered
// by employee code. An empty EmployeeIDs selects every active employee.
func (s *PayrollServiceImpl) Reports(ctx context.Context, req payroll.PeriodRequest) ([]payroll.SalaryReport, error) {
	var (
		employees []employee.Employee
		err       error
	)
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActive(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	return s.calculate(ctx, req, employees)
}

func (s *PayrollServiceImpl) calculate(ctx context.Context, req payroll.PeriodRequest, employees []employee.Employee) ([]payroll.SalaryReport, error) {
	if len(employees) == 0 {
		return []payroll.SalaryReport{}, nil
	}

	from := calendar.MonthStart(req.Year, req.Month())
	to := from.AddDate(0, 1, 0)
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}

	var (
		records    []attendance.Attendance
		allowances []allowance.Allowance
		holidays   []holiday.Holiday
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDateRange(gCtx, from, to, ids)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		allowances, err = s.allowanceRepo.ListByDateRange(gCtx, from, to, ids)
		if err != nil {
			return fmt.Errorf("failed to load allowances: %w", err)
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
		return nil, err
	}

	recordsByEmployee := make(map[string][]attendance.Attendance, len(employees))
	for _, r := range records {
		recordsByEmployee[r.EmployeeID] = append(recordsByEmployee[r.EmployeeID], r)
	}
	allowancesByEmployee := make(map[string][]allowance.Allowance, len(employees))
	for _, a := range allowances {
		allowancesByEmployee[a.EmployeeID] = append(allowancesByEmployee[a.EmployeeID], a)
	}

	reports := make([]payroll.SalaryReport, len(employees))

	cg, cCtx := errgroup.WithContext(ctx)
	cg.SetLimit(max(1, s.workers))
	for i, emp := range employees {
		i, emp := i, emp
		cg.Go(func() error {
			if err := cCtx.Err(); err != nil {
				return err
			}
			report, err := s.calculator.Calculate(emp, recordsByEmployee[emp.ID], allowancesByEmployee[emp.ID], holidays, req.Year, req.Month())
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := cg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Employee.EmployeeCode < reports[j].Employee.EmployeeCode
	})

	slog.Debug("Computed salary reports", "year", req.Year, "month", int(req.Month()), "count", len(reports))
	return reports, nil
}

// ========== EXPORT ==========

var salarySheetHeaders = []string{
	"Employee ID", "Name", "Type", "Working Days", "FN Present", "AN Present", "Total Sessions",
	"FN Salary", "AN Salary", "Basic Salary", "OT Hours", "OT Amount", "Allowances",
	"Permission Hours", "Excess Permission Deduction", "ESA/PF Deduction", "Net Salary",
}

func (s *PayrollServiceImpl) ExportReports(ctx context.Context, req payroll.ExportRequest) (payroll.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return payroll.ExportFile{}, err
	}

	reports, err := s.Reports(ctx, req.PeriodRequest)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	table := salarySheet(req.Year, req.Month(), reports)
	fileName := fmt.Sprintf("salary-report-%04d-%02d.%s", req.Year, int(req.Month()), req.Format)

	var buf bytes.Buffer
	file := payroll.ExportFile{FileName: fileName}
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

func salarySheet(year int, month time.Month, reports []payroll.SalaryReport) export.Table {
	rows := make([][]any, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []any{
			r.Employee.EmployeeCode,
			r.Employee.Name,
			string(r.Employee.Type()),
			r.TotalWorkingDays,
			r.FNPresentDays,
			r.ANPresentDays,
			r.TotalPresentSessions,
			r.FNSalary,
			r.ANSalary,
			r.BasicSalary,
			r.OTHours,
			r.OTAmount,
			r.TotalAllowances,
			r.PermissionHours,
			r.ExcessPermissionDeduction,
			r.EsaPfDeduction,
			r.NetSalary,
		})
	}

	return export.Table{
		Name:    fmt.Sprintf("Salary %s %d", month.String()[:3], year),
		Headers: salarySheetHeaders,
		Rows:    rows,
	}
}

// ========== MAPPERS ==========

func toSalaryReportResponse(r payroll.SalaryReport) payroll.SalaryReportResponse {
	return payroll.SalaryReportResponse{
		EmployeeID:                r.Employee.ID,
		EmployeeCode:              r.Employee.EmployeeCode,
		EmployeeName:              r.Employee.Name,
		EmployeeType:              string(r.Employee.Type()),
		Year:                      r.Year,
		Month0:                    int(r.Month) - 1,
		TotalWorkingDays:          r.TotalWorkingDays,
		FNPresentDays:             r.FNPresentDays,
		ANPresentDays:             r.ANPresentDays,
		TotalPresentSessions:      r.TotalPresentSessions,
		FNSalary:                  r.FNSalary,
		ANSalary:                  r.ANSalary,
		BasicSalary:               r.BasicSalary,
		OTMinutes:                 r.OTMinutes,
		OTHours:                   r.OTHours,
		OTDurationText:            worktime.FormatMinutes(r.OTMinutes),
		OTAmount:                  r.OTAmount,
		TotalAllowances:           r.TotalAllowances,
		AllowanceTreatment:        string(r.AllowanceTreatment),
		PermissionHours:           r.PermissionHours,
		ExcessPermissionDeduction: r.ExcessPermissionDeduction,
		EsaPfDeduction:            r.EsaPfDeduction,
		NetSalary:                 r.NetSalary,
	}
}

func toSummaryResponse(s payroll.Summary) payroll.PayrollSummaryResponse {
	return payroll.PayrollSummaryResponse{
		Year:              s.Year,
		Month0:            int(s.Month) - 1,
		TotalEmployees:    s.TotalEmployees,
		TotalBasicSalary:  s.TotalBasicSalary,
		TotalOTAmount:     s.TotalOTAmount,
		TotalAllowances:   s.TotalAllowances,
		TotalDeductions:   s.TotalDeductions,
		TotalNetSalary:    s.TotalNetSalary,
		AverageAttendance: s.AverageAttendance,
	}
}
