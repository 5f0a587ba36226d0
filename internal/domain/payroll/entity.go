package payroll

import (
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// AllowanceTreatment decides the sign allowances carry in net pay.
type AllowanceTreatment string

const (
	// AllowanceDeduction recovers food and advance entries from net pay.
	AllowanceDeduction AllowanceTreatment = "deduction"
	// AllowanceAddition pays allowances on top of net pay.
	AllowanceAddition AllowanceTreatment = "addition"
)

func (t AllowanceTreatment) IsValid() bool {
	return t == AllowanceDeduction || t == AllowanceAddition
}

// OTFallback decides how manual and clock-derived OT are combined over a month.
type OTFallback string

const (
	// OTFallbackPerRecord uses the manual figure on days that have one and the
	// clock-derived figure on the others.
	OTFallbackPerRecord OTFallback = "per_record"
	// OTFallbackMonthly uses clock-derived OT only when no manual OT was entered
	// anywhere in the month.
	OTFallbackMonthly OTFallback = "monthly"
)

func (f OTFallback) IsValid() bool {
	return f == OTFallbackPerRecord || f == OTFallbackMonthly
}

const (
	DefaultLunchBreakMinutes       = 45
	DefaultStandardWorkingMinutes  = 8 * 60
	DefaultOTEligibilityMinutes    = 8*60 + 30
	DefaultOTNoiseThresholdMinutes = 20
	DefaultPaidHoursPerDay         = 8
	DefaultRoundingPlaces          = 2
)

var (
	DefaultOTMultiplier        = decimal.RequireFromString("1.5")
	DefaultEsaPfRate           = decimal.RequireFromString("0.12")
	DefaultFreePermissionHours = decimal.NewFromInt(2)
)

// Policy carries every tunable rule of the duration and salary calculation.
type Policy struct {
	LunchBreakMinutes       int
	StandardWorkingMinutes  int
	OTEligibilityMinutes    int
	OTNoiseThresholdMinutes int
	PaidHoursPerDay         int
	OTMultiplier            decimal.Decimal
	FreePermissionHours     decimal.Decimal
	EsaPfRate               decimal.Decimal
	AllowanceTreatment      AllowanceTreatment
	OTFallback              OTFallback
	RoundingPlaces          int32
}

func DefaultPolicy() Policy {
	return Policy{
		LunchBreakMinutes:       DefaultLunchBreakMinutes,
		StandardWorkingMinutes:  DefaultStandardWorkingMinutes,
		OTEligibilityMinutes:    DefaultOTEligibilityMinutes,
		OTNoiseThresholdMinutes: DefaultOTNoiseThresholdMinutes,
		PaidHoursPerDay:         DefaultPaidHoursPerDay,
		OTMultiplier:            DefaultOTMultiplier,
		FreePermissionHours:     DefaultFreePermissionHours,
		EsaPfRate:               DefaultEsaPfRate,
		AllowanceTreatment:      AllowanceDeduction,
		OTFallback:              OTFallbackPerRecord,
		RoundingPlaces:          DefaultRoundingPlaces,
	}
}

// Duration is the outcome of one shift's start/end pair. Every field derives from
// the integer minute counts.
type Duration struct {
	TotalMinutes        int
	WorkingMinutes      int
	OTMinutes           int
	WorkingHours        decimal.Decimal
	OTHours             decimal.Decimal
	WorkingDurationText string
	OTDurationText      string
	IsOTEligible        bool
}

// SalaryReport is the computed pay breakdown of one employee for one month.
type SalaryReport struct {
	Employee                  employee.Employee
	Year                      int
	Month                     time.Month
	TotalWorkingDays          int
	FNPresentDays             int
	ANPresentDays             int
	TotalPresentSessions      int
	FNSalary                  decimal.Decimal
	ANSalary                  decimal.Decimal
	BasicSalary               decimal.Decimal
	OTMinutes                 int
	OTHours                   decimal.Decimal
	OTAmount                  decimal.Decimal
	TotalAllowances           decimal.Decimal
	PermissionHours           decimal.Decimal
	ExcessPermissionDeduction decimal.Decimal
	EsaPfDeduction            decimal.Decimal
	NetSalary                 decimal.Decimal
	AllowanceTreatment        AllowanceTreatment
}

// Summary aggregates a set of salary reports for one month.
type Summary struct {
	Year              int
	Month             time.Month
	TotalEmployees    int
	TotalBasicSalary  decimal.Decimal
	TotalOTAmount     decimal.Decimal
	TotalAllowances   decimal.Decimal
	TotalDeductions   decimal.Decimal
	TotalNetSalary    decimal.Decimal
	AverageAttendance decimal.Decimal // percent of available sessions attended
}
