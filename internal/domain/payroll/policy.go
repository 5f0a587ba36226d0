package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// Validate checks the policy for values the calculators cannot work with.
func (p Policy) Validate() error {
	var errs validator.ValidationErrors

	if p.LunchBreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "lunch_break_minutes", Message: "must be non-negative"})
	}
	if p.StandardWorkingMinutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "standard_working_minutes", Message: "must be positive"})
	}
	if p.OTEligibilityMinutes < p.StandardWorkingMinutes {
		errs = append(errs, validator.ValidationError{Field: "ot_eligibility_minutes", Message: "must not be below standard_working_minutes"})
	}
	if p.OTNoiseThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "ot_noise_threshold_minutes", Message: "must be non-negative"})
	}
	if p.PaidHoursPerDay <= 0 {
		errs = append(errs, validator.ValidationError{Field: "paid_hours_per_day", Message: "must be positive"})
	}
	if p.OTMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "ot_multiplier", Message: "must be non-negative"})
	}
	if p.FreePermissionHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "free_permission_hours", Message: "must be non-negative"})
	}
	if p.EsaPfRate.IsNegative() || p.EsaPfRate.GreaterThan(decimalOne) {
		errs = append(errs, validator.ValidationError{Field: "esa_pf_rate", Message: "must be between 0 and 1"})
	}
	if !p.AllowanceTreatment.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "allowance_treatment", Message: fmt.Sprintf("must be '%s' or '%s'", AllowanceDeduction, AllowanceAddition)})
	}
	if !p.OTFallback.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "ot_fallback", Message: fmt.Sprintf("must be '%s' or '%s'", OTFallbackPerRecord, OTFallbackMonthly)})
	}
	if p.RoundingPlaces < 0 {
		errs = append(errs, validator.ValidationError{Field: "rounding_places", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, errs)
	}
	return nil
}
