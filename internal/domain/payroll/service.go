package payroll

import "context"

type PayrollService interface {
	// Stateless calculations
	CalculateDuration(ctx context.Context, req DurationRequest) (DurationResponse, error)
	GetWorkingDays(ctx context.Context, req PeriodRequest) (WorkingDaysResponse, error)

	// Storage-backed reports
	GenerateReports(ctx context.Context, req PeriodRequest) ([]SalaryReportResponse, error)
	GetEmployeeReport(ctx context.Context, employeeID string, req PeriodRequest) (SalaryReportResponse, error)
	GetSummary(ctx context.Context, req PeriodRequest) (PayrollSummaryResponse, error)
	ExportReports(ctx context.Context, req ExportRequest) (ExportFile, error)
}
