package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	payrollservice "github.com/cmlabs-hris/attendance-payroll/internal/service/payroll"
)

const PreviewJobName = "payroll_month_to_date_preview"

// ReportSource produces the salary reports for a period.
type ReportSource interface {
	Reports(ctx context.Context, req payroll.PeriodRequest) ([]payroll.SalaryReport, error)
}

type PayrollJobs struct {
	reports ReportSource
	now     func() time.Time
}

func NewPayrollJobs(reports ReportSource) *PayrollJobs {
	return &PayrollJobs{
		reports: reports,
		now:     time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     PreviewJobName,
		Interval: interval,
		Fn:       j.MonthToDatePreview,
	})
}

// MonthToDatePreview computes the current month's payroll for active employees and logs the totals.
func (j *PayrollJobs) MonthToDatePreview(ctx context.Context) error {
	now := j.now().UTC()
	req := payroll.PeriodRequest{
		Year:   now.Year(),
		Month0: int(now.Month()) - 1,
	}

	reports, err := j.reports.Reports(ctx, req)
	if err != nil {
		return fmt.Errorf("month-to-date preview %04d-%02d: %w", req.Year, now.Month(), err)
	}

	summary := payrollservice.Summarize(req.Year, now.Month(), reports)
	slog.Info("Cron: payroll month-to-date preview",
		"year", summary.Year,
		"month", summary.Month.String(),
		"employees", summary.TotalEmployees,
		"total_basic_salary", summary.TotalBasicSalary.StringFixed(2),
		"total_ot_amount", summary.TotalOTAmount.StringFixed(2),
		"total_allowances", summary.TotalAllowances.StringFixed(2),
		"total_deductions", summary.TotalDeductions.StringFixed(2),
		"total_net_salary", summary.TotalNetSalary.StringFixed(2),
		"average_attendance", summary.AverageAttendance.String(),
	)
	return nil
}
