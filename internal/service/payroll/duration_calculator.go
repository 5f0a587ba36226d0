package payroll

import (
	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/worktime"
	"github.com/shopspring/decimal"
)

type DurationCalculator struct {
	policy payroll.Policy
}

func NewDurationCalculator(policy payroll.Policy) *DurationCalculator {
	return &DurationCalculator{policy: policy}
}

// Calculate derives working time and overtime from one shift's start and end clock.
// A missing start or end yields a zero duration.
func (c *DurationCalculator) Calculate(startTime, endTime string) (payroll.Duration, error) {
	start, err := worktime.ParseClock(startTime)
	if err != nil {
		return payroll.Duration{}, err
	}
	end, err := worktime.ParseClock(endTime)
	if err != nil {
		return payroll.Duration{}, err
	}

	if startTime == "" || endTime == "" {
		return c.fromMinutes(0), nil
	}

	return c.fromMinutes(worktime.ElapsedMinutes(start, end)), nil
}

func (c *DurationCalculator) fromMinutes(totalMinutes int) payroll.Duration {
	working := max(0, totalMinutes-c.policy.LunchBreakMinutes)
	ot, eligible := c.overtime(working)

	return payroll.Duration{
		TotalMinutes:        totalMinutes,
		WorkingMinutes:      working,
		OTMinutes:           ot,
		WorkingHours:        worktime.MinutesToDecimalHours(working),
		OTHours:             worktime.MinutesToDecimalHours(ot),
		WorkingDurationText: worktime.FormatMinutes(working),
		OTDurationText:      worktime.FormatMinutes(ot),
		IsOTEligible:        eligible,
	}
}

// overtime returns OT minutes for a day's working minutes and whether the day
// earned any.
func (c *DurationCalculator) overtime(workingMinutes int) (int, bool) {
	if workingMinutes < c.policy.OTEligibilityMinutes {
		return 0, false
	}

	raw := max(0, workingMinutes-c.policy.StandardWorkingMinutes)
	if raw <= c.policy.OTNoiseThresholdMinutes {
		return 0, false
	}

	return raw, true
}

// hoursOf converts minutes to hours rounded to places.
func hoursOf(minutes int, places int32) decimal.Decimal {
	return worktime.MinutesToDecimalHours(minutes).Round(places)
}
