package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/worktime"
	"github.com/shopspring/decimal"
)

// ========== DURATION DTOs ==========

type DurationRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	// ManualOT is an overtime entry typed by a supervisor: "1h 15m", "1.25" or "1:15".
	// A non-zero value overrides the calculated overtime.
	ManualOT string `json:"manual_ot,omitempty"`
}

func (r *DurationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.StartTime) && !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	if !validator.IsEmpty(r.EndTime) && !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}
	if !validator.IsEmpty(r.ManualOT) {
		if _, err := worktime.ParseDurationText(r.ManualOT); err != nil {
			errs = append(errs, validator.ValidationError{Field: "manual_ot", Message: "must look like 1h 15m, 1.25 or 1:15"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DurationResponse struct {
	TotalMinutes        int             `json:"total_minutes"`
	WorkingMinutes      int             `json:"working_minutes"`
	WorkingHours        decimal.Decimal `json:"working_hours"`
	OTMinutes           int             `json:"ot_minutes"`
	OTHours             decimal.Decimal `json:"ot_hours"`
	WorkingDurationText string          `json:"working_duration_text"`
	OTDurationText      string          `json:"ot_duration_text"`
	IsOTEligible        bool            `json:"is_ot_eligible"`
	CalculatedOTMinutes int             `json:"calculated_ot_minutes"`
	IsManualOT          bool            `json:"is_manual_ot"`
}

// ========== PERIOD DTOs ==========

// PeriodRequest selects a calendar month. Month0 is zero-based (0 = January).
type PeriodRequest struct {
	Year        int      `json:"year"`
	Month0      int      `json:"month0"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.InRange(r.Year, 2000, 2100) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if !validator.InRange(r.Month0, 0, 11) {
		errs = append(errs, validator.ValidationError{Field: "month0", Message: "must be between 0 and 11"})
	}
	if !validator.AllValidUUIDs(r.EmployeeIDs) {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must contain only UUIDs"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Month converts the zero-based month to time.Month.
func (r PeriodRequest) Month() time.Month {
	return time.Month(r.Month0 + 1)
}

type WorkingDaysResponse struct {
	Year        int `json:"year"`
	Month0      int `json:"month0"`
	WorkingDays int `json:"working_days"`
	CalendarDay int `json:"calendar_days"`
}

// ========== REPORT DTOs ==========

type SalaryReportResponse struct {
	EmployeeID                string          `json:"employee_id"`
	EmployeeCode              string          `json:"employee_code"`
	EmployeeName              string          `json:"employee_name"`
	EmployeeType              string          `json:"employee_type"`
	Year                      int             `json:"year"`
	Month0                    int             `json:"month0"`
	TotalWorkingDays          int             `json:"total_working_days"`
	FNPresentDays             int             `json:"fn_present_days"`
	ANPresentDays             int             `json:"an_present_days"`
	TotalPresentSessions      int             `json:"total_present_sessions"`
	FNSalary                  decimal.Decimal `json:"fn_salary"`
	ANSalary                  decimal.Decimal `json:"an_salary"`
	BasicSalary               decimal.Decimal `json:"basic_salary"`
	OTMinutes                 int             `json:"ot_minutes"`
	OTHours                   decimal.Decimal `json:"ot_hours"`
	OTDurationText            string          `json:"ot_duration_text"`
	OTAmount                  decimal.Decimal `json:"ot_amount"`
	TotalAllowances           decimal.Decimal `json:"total_allowances"`
	AllowanceTreatment        string          `json:"allowance_treatment"`
	PermissionHours           decimal.Decimal `json:"permission_hours"`
	ExcessPermissionDeduction decimal.Decimal `json:"excess_permission_deduction"`
	EsaPfDeduction            decimal.Decimal `json:"esa_pf_deduction"`
	NetSalary                 decimal.Decimal `json:"net_salary"`
}

type PayrollSummaryResponse struct {
	Year              int             `json:"year"`
	Month0            int             `json:"month0"`
	TotalEmployees    int             `json:"total_employees"`
	TotalBasicSalary  decimal.Decimal `json:"total_basic_salary"`
	TotalOTAmount     decimal.Decimal `json:"total_ot_amount"`
	TotalAllowances   decimal.Decimal `json:"total_allowances"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	TotalNetSalary    decimal.Decimal `json:"total_net_salary"`
	AverageAttendance decimal.Decimal `json:"average_attendance"`
}

// ========== EXPORT DTOs ==========

type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)

type ExportRequest struct {
	PeriodRequest
	Format ExportFormat `json:"format"`
}

func (r *ExportRequest) Validate() error {
	r.Format = ExportFormat(strings.ToLower(string(r.Format)))
	if r.Format == "" {
		r.Format = ExportFormatXLSX
	}
	if !validator.IsInSlice(string(r.Format), []string{string(ExportFormatXLSX), string(ExportFormatCSV)}) {
		return ErrInvalidExportFormat
	}
	return r.PeriodRequest.Validate()
}

// ExportFile is a rendered salary sheet ready to be streamed to a client.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
