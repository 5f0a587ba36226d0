package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
)

type AttendanceService interface {
	// DailySheet lists one date's records with derived status and durations.
	DailySheet(ctx context.Context, date string) (DailySheetResponse, error)

	// MonthlySheet aggregates a month's records per employee.
	MonthlySheet(ctx context.Context, req payroll.PeriodRequest) (MonthlySheetResponse, error)

	// ExportMonthlySheet renders the monthly register as CSV or XLSX.
	ExportMonthlySheet(ctx context.Context, req payroll.ExportRequest) (payroll.ExportFile, error)
}
