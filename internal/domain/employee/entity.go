package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode string
	Name         string
	Designation  *string
	Pay          PayModel
	EsaPf        bool
	ShiftID      *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Type reports the employee classification carried by the pay model.
func (e Employee) Type() EmployeeType {
	if e.Pay == nil {
		return ""
	}
	return e.Pay.Type()
}

type EmployeeType string

const (
	EmployeeTypeStaff  EmployeeType = "staff"
	EmployeeTypeLabour EmployeeType = "labour"
)

func (t EmployeeType) IsValid() bool {
	return t == EmployeeTypeStaff || t == EmployeeTypeLabour
}

// PayModel derives how an employee is paid for one day of work.
// Staff and labour are the only variants; callers never switch on the type.
type PayModel interface {
	Type() EmployeeType
	// DailyRate returns the per-day rate for a month with the given working-day count.
	DailyRate(workingDays int) (DailyRate, error)
	// ChargesExcessPermission reports whether permission hours beyond the free
	// monthly allowance are deducted from pay.
	ChargesExcessPermission() bool
}

// StaffPay is a fixed monthly salary spread over the month's working days.
type StaffPay struct {
	MonthlySalary decimal.Decimal
}

func (StaffPay) Type() EmployeeType { return EmployeeTypeStaff }

func (p StaffPay) DailyRate(workingDays int) (DailyRate, error) {
	if workingDays <= 0 {
		return DailyRate{}, ErrNoWorkingDays
	}
	return DailyRate{Amount: p.MonthlySalary, Divisor: int64(workingDays)}, nil
}

func (StaffPay) ChargesExcessPermission() bool { return true }

// LabourPay is a flat daily wage.
type LabourPay struct {
	DailySalary decimal.Decimal
}

func (LabourPay) Type() EmployeeType { return EmployeeTypeLabour }

func (p LabourPay) DailyRate(int) (DailyRate, error) {
	return DailyRate{Amount: p.DailySalary, Divisor: 1}, nil
}

func (LabourPay) ChargesExcessPermission() bool { return false }

// LegacyStaffPay is a staff member still recorded under the single per-day salary
// column. The stored figure is already a daily rate and is not spread over the month.
type LegacyStaffPay struct {
	SalaryPerDay decimal.Decimal
}

func (LegacyStaffPay) Type() EmployeeType { return EmployeeTypeStaff }

func (p LegacyStaffPay) DailyRate(int) (DailyRate, error) {
	return DailyRate{Amount: p.SalaryPerDay, Divisor: 1}, nil
}

func (LegacyStaffPay) ChargesExcessPermission() bool { return true }

// NewLegacyPayModel builds the pay variant for a row that only carries salary_per_day.
func NewLegacyPayModel(t EmployeeType, salaryPerDay decimal.Decimal) (PayModel, error) {
	switch t {
	case EmployeeTypeStaff:
		return LegacyStaffPay{SalaryPerDay: salaryPerDay}, nil
	case EmployeeTypeLabour:
		return LabourPay{DailySalary: salaryPerDay}, nil
	default:
		return nil, ErrInvalidEmployeeType
	}
}

// NewPayModel builds the pay variant for an employee type from the stored salary columns.
func NewPayModel(t EmployeeType, monthlySalary, dailySalary decimal.Decimal) (PayModel, error) {
	switch t {
	case EmployeeTypeStaff:
		return StaffPay{MonthlySalary: monthlySalary}, nil
	case EmployeeTypeLabour:
		return LabourPay{DailySalary: dailySalary}, nil
	default:
		return nil, ErrInvalidEmployeeType
	}
}

// DailyRate holds a per-day amount as Amount/Divisor. Products are taken before the
// division so that a whole month of sessions multiplies back to the exact salary.
type DailyRate struct {
	Amount  decimal.Decimal
	Divisor int64
}

// PerDay returns the rate as a single decimal value.
func (r DailyRate) PerDay() decimal.Decimal {
	return r.Times(decimal.NewFromInt(1))
}

// Times returns rate × q.
func (r DailyRate) Times(q decimal.Decimal) decimal.Decimal {
	if r.Divisor <= 0 {
		return decimal.Zero
	}
	product := r.Amount.Mul(q)
	if r.Divisor == 1 {
		return product
	}
	return product.Div(decimal.NewFromInt(r.Divisor))
}

// Scale returns a rate divided by n, e.g. the hourly rate of an n-hour day.
func (r DailyRate) Scale(n int64) DailyRate {
	return DailyRate{Amount: r.Amount, Divisor: r.Divisor * n}
}
