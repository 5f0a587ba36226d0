package payroll

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize totals a month of salary reports. Average attendance is the share of
// available FN/AN sessions that were attended, in percent.
func Summarize(year int, month time.Month, reports []payroll.SalaryReport) payroll.Summary {
	summary := payroll.Summary{
		Year:              year,
		Month:             month,
		TotalEmployees:    len(reports),
		TotalBasicSalary:  decimal.Zero,
		TotalOTAmount:     decimal.Zero,
		TotalAllowances:   decimal.Zero,
		TotalDeductions:   decimal.Zero,
		TotalNetSalary:    decimal.Zero,
		AverageAttendance: decimal.Zero,
	}

	var presentSessions, availableSessions int64
	for _, r := range reports {
		summary.TotalBasicSalary = summary.TotalBasicSalary.Add(r.BasicSalary)
		summary.TotalOTAmount = summary.TotalOTAmount.Add(r.OTAmount)
		summary.TotalAllowances = summary.TotalAllowances.Add(r.TotalAllowances)
		summary.TotalDeductions = summary.TotalDeductions.Add(r.ExcessPermissionDeduction).Add(r.EsaPfDeduction)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(r.NetSalary)

		presentSessions += int64(r.TotalPresentSessions)
		availableSessions += int64(r.TotalWorkingDays) * 2
	}

	if availableSessions > 0 {
		summary.AverageAttendance = decimal.NewFromInt(presentSessions).
			Mul(hundred).
			Div(decimal.NewFromInt(availableSessions)).
			Round(payroll.DefaultRoundingPlaces)
	}

	return summary
}
