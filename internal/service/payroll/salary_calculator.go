package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/allowance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/worktime"
	"github.com/cmlabs-hris/attendance-payroll/internal/service/calendar"
	"github.com/shopspring/decimal"
)

type SalaryCalculator struct {
	policy   payroll.Policy
	duration *DurationCalculator
}

func NewSalaryCalculator(policy payroll.Policy) *SalaryCalculator {
	return &SalaryCalculator{
		policy:   policy,
		duration: NewDurationCalculator(policy),
	}
}

// Policy returns the policy the calculator was built with.
func (c *SalaryCalculator) Policy() payroll.Policy {
	return c.policy
}

// DurationCalculator returns the duration calculator sharing this policy.
func (c *SalaryCalculator) DurationCalculator() *DurationCalculator {
	return c.duration
}

// monthTally is what one pass over an employee's attendance collects.
type monthTally struct {
	fnPresent       int
	anPresent       int
	manualOT        int // minutes
	calculatedOT    int // minutes
	perRecordOT     int // minutes
	permissionHours decimal.Decimal
}

// Calculate produces the salary breakdown of emp for one month. Records belonging to
// other employees or falling outside the month are ignored.
func (c *SalaryCalculator) Calculate(
	emp employee.Employee,
	records []attendance.Attendance,
	allowances []allowance.Allowance,
	holidays []holiday.Holiday,
	year int,
	month time.Month,
) (payroll.SalaryReport, error) {
	if emp.Pay == nil {
		return payroll.SalaryReport{}, fmt.Errorf("employee %s: %w", emp.EmployeeCode, employee.ErrInvalidEmployeeType)
	}

	workingDays := calendar.WorkingDaysInMonth(year, month, holidays)

	tally, err := c.tallyAttendance(emp.ID, records, year, month)
	if err != nil {
		return payroll.SalaryReport{}, fmt.Errorf("employee %s: %w", emp.EmployeeCode, err)
	}

	rate, err := emp.Pay.DailyRate(workingDays)
	if err != nil {
		return payroll.SalaryReport{}, fmt.Errorf("employee %s, %d-%02d: %w", emp.EmployeeCode, year, month, err)
	}

	places := c.policy.RoundingPlaces
	halfDay := rate.Scale(2)
	sessions := tally.fnPresent + tally.anPresent

	// AN absorbs the rounding remainder so FN + AN == Basic.
	basic := halfDay.Times(decimal.NewFromInt(int64(sessions))).Round(places)
	fnSalary := halfDay.Times(decimal.NewFromInt(int64(tally.fnPresent))).Round(places)
	anSalary := basic.Sub(fnSalary)

	otMinutes := c.resolveOT(tally)
	perMinute := rate.Scale(int64(c.policy.PaidHoursPerDay) * worktime.MinutesPerHour)
	otAmount := perMinute.Times(decimal.NewFromInt(int64(otMinutes)).Mul(c.policy.OTMultiplier)).Round(places)

	totalAllowances := sumAllowances(emp.ID, allowances, year, month).Round(places)

	excessPermission := decimal.Zero
	if emp.Pay.ChargesExcessPermission() {
		excess := tally.permissionHours.Sub(c.policy.FreePermissionHours)
		if excess.IsPositive() {
			hourly := rate.Scale(int64(c.policy.PaidHoursPerDay))
			excessPermission = hourly.Times(excess).Round(places)
		}
	}

	esaPf := decimal.Zero
	if emp.EsaPf {
		esaPf = basic.Add(otAmount).Mul(c.policy.EsaPfRate).Round(places)
	}

	net := basic.Add(otAmount).Sub(excessPermission).Sub(esaPf)
	if c.policy.AllowanceTreatment == payroll.AllowanceAddition {
		net = net.Add(totalAllowances)
	} else {
		net = net.Sub(totalAllowances)
	}

	return payroll.SalaryReport{
		Employee:                  emp,
		Year:                      year,
		Month:                     month,
		TotalWorkingDays:          workingDays,
		FNPresentDays:             tally.fnPresent,
		ANPresentDays:             tally.anPresent,
		TotalPresentSessions:      sessions,
		FNSalary:                  fnSalary,
		ANSalary:                  anSalary,
		BasicSalary:               basic,
		OTMinutes:                 otMinutes,
		OTHours:                   hoursOf(otMinutes, places),
		OTAmount:                  otAmount,
		TotalAllowances:           totalAllowances,
		PermissionHours:           tally.permissionHours,
		ExcessPermissionDeduction: excessPermission,
		EsaPfDeduction:            esaPf,
		NetSalary:                 net,
		AllowanceTreatment:        c.policy.AllowanceTreatment,
	}, nil
}

func (c *SalaryCalculator) tallyAttendance(employeeID string, records []attendance.Attendance, year int, month time.Month) (monthTally, error) {
	t := monthTally{permissionHours: decimal.Zero}

	for _, rec := range records {
		if rec.EmployeeID != employeeID || !calendar.InMonth(rec.Date, year, month) {
			continue
		}

		if rec.FNPresent() {
			t.fnPresent++
		}
		if rec.ANPresent() {
			t.anPresent++
		}
		t.permissionHours = t.permissionHours.Add(rec.PermissionHours)

		if rec.HasManualOT() {
			manual := worktime.DecimalHoursToMinutes(rec.OTHours)
			t.manualOT += manual
			t.perRecordOT += manual
			continue
		}

		if rec.HasActualTimes() {
			d, err := c.duration.Calculate(rec.ActualStartTime, rec.ActualEndTime)
			if err != nil {
				return monthTally{}, fmt.Errorf("attendance on %s: %w", rec.Date.Format(time.DateOnly), err)
			}
			t.calculatedOT += d.OTMinutes
			t.perRecordOT += d.OTMinutes
		}
	}

	return t, nil
}

func (c *SalaryCalculator) resolveOT(t monthTally) int {
	if c.policy.OTFallback == payroll.OTFallbackMonthly {
		if t.manualOT == 0 {
			return t.calculatedOT
		}
		return t.manualOT
	}
	return t.perRecordOT
}

func sumAllowances(employeeID string, allowances []allowance.Allowance, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allowances {
		if a.EmployeeID != employeeID || !calendar.InMonth(a.Date, year, month) {
			continue
		}
		total = total.Add(a.EffectiveAmount())
	}
	return total
}
