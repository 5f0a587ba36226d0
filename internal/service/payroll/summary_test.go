package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	reports := []payroll.SalaryReport{
		{
			TotalWorkingDays:          25,
			TotalPresentSessions:      50,
			BasicSalary:               dec("30000"),
			OTAmount:                  dec("0"),
			TotalAllowances:           dec("230"),
			ExcessPermissionDeduction: dec("325"),
			EsaPfDeduction:            dec("3600"),
			NetSalary:                 dec("25845"),
		},
		{
			TotalWorkingDays:          25,
			TotalPresentSessions:      25,
			BasicSalary:               dec("10000"),
			OTAmount:                  dec("187.5"),
			TotalAllowances:           dec("30"),
			ExcessPermissionDeduction: dec("0"),
			EsaPfDeduction:            dec("0"),
			NetSalary:                 dec("10157.5"),
		},
	}

	s := Summarize(2024, time.February, reports)

	assert.Equal(t, 2024, s.Year)
	assert.Equal(t, time.February, s.Month)
	assert.Equal(t, 2, s.TotalEmployees)
	assertMoney(t, "40000", s.TotalBasicSalary, "basic")
	assertMoney(t, "187.5", s.TotalOTAmount, "ot")
	assertMoney(t, "260", s.TotalAllowances, "allowances")
	assertMoney(t, "3925", s.TotalDeductions, "deductions")
	assertMoney(t, "36002.5", s.TotalNetSalary, "net")
	assertMoney(t, "75", s.AverageAttendance, "attendance")
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(2024, time.February, nil)

	assert.Zero(t, s.TotalEmployees)
	assert.True(t, s.TotalNetSalary.IsZero())
	assert.True(t, s.AverageAttendance.IsZero())
}

func TestSummarize_RoundsAttendance(t *testing.T) {
	s := Summarize(2024, time.February, []payroll.SalaryReport{
		{TotalWorkingDays: 3, TotalPresentSessions: 1},
	})
	assertMoney(t, "16.67", s.AverageAttendance, "attendance")
}
