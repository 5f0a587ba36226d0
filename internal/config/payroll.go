package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PayrollConfig is the file and environment form of payroll.Policy.
type PayrollConfig struct {
	LunchBreakMinutes       int     `yaml:"lunch_break_minutes"`
	StandardWorkingMinutes  int     `yaml:"standard_working_minutes"`
	OTEligibilityMinutes    int     `yaml:"ot_eligibility_minutes"`
	OTNoiseThresholdMinutes int     `yaml:"ot_noise_threshold_minutes"`
	PaidHoursPerDay         int     `yaml:"paid_hours_per_day"`
	OTMultiplier            float64 `yaml:"ot_multiplier"`
	FreePermissionHours     float64 `yaml:"free_permission_hours"`
	EsaPfRate               float64 `yaml:"esa_pf_rate"`
	AllowanceTreatment      string  `yaml:"allowance_treatment"`
	OTFallback              string  `yaml:"ot_fallback"`
	RoundingPlaces          int32   `yaml:"rounding_places"`
	Workers                 int     `yaml:"workers"`
}

func DefaultPayrollConfig() PayrollConfig {
	p := payroll.DefaultPolicy()
	return PayrollConfig{
		LunchBreakMinutes:       p.LunchBreakMinutes,
		StandardWorkingMinutes:  p.StandardWorkingMinutes,
		OTEligibilityMinutes:    p.OTEligibilityMinutes,
		OTNoiseThresholdMinutes: p.OTNoiseThresholdMinutes,
		PaidHoursPerDay:         p.PaidHoursPerDay,
		OTMultiplier:            p.OTMultiplier.InexactFloat64(),
		FreePermissionHours:     p.FreePermissionHours.InexactFloat64(),
		EsaPfRate:               p.EsaPfRate.InexactFloat64(),
		AllowanceTreatment:      string(p.AllowanceTreatment),
		OTFallback:              string(p.OTFallback),
		RoundingPlaces:          p.RoundingPlaces,
	}
}

// LoadFile overlays the keys present in a YAML policy file.
func (c *PayrollConfig) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read payroll policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse payroll policy file %s: %w", path, err)
	}
	return nil
}

func (c *PayrollConfig) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"PAYROLL_LUNCH_BREAK_MINUTES", &c.LunchBreakMinutes},
		{"PAYROLL_STANDARD_MINUTES", &c.StandardWorkingMinutes},
		{"PAYROLL_OT_ELIGIBILITY_MINUTES", &c.OTEligibilityMinutes},
		{"PAYROLL_OT_NOISE_MINUTES", &c.OTNoiseThresholdMinutes},
		{"PAYROLL_WORKERS", &c.Workers},
	}
	for _, e := range ints {
		raw := os.Getenv(e.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = v
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"PAYROLL_ESA_PF_RATE", &c.EsaPfRate},
		{"PAYROLL_FREE_PERMISSION_HOURS", &c.FreePermissionHours},
	}
	for _, e := range floats {
		raw := os.Getenv(e.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = v
	}

	c.AllowanceTreatment = getEnv("PAYROLL_ALLOWANCE_TREATMENT", c.AllowanceTreatment)
	c.OTFallback = getEnv("PAYROLL_OT_FALLBACK", c.OTFallback)
	return nil
}

// Policy converts the configuration into a validated payroll.Policy.
func (c PayrollConfig) Policy() (payroll.Policy, error) {
	p := payroll.Policy{
		LunchBreakMinutes:       c.LunchBreakMinutes,
		StandardWorkingMinutes:  c.StandardWorkingMinutes,
		OTEligibilityMinutes:    c.OTEligibilityMinutes,
		OTNoiseThresholdMinutes: c.OTNoiseThresholdMinutes,
		PaidHoursPerDay:         c.PaidHoursPerDay,
		OTMultiplier:            decimal.NewFromFloat(c.OTMultiplier),
		FreePermissionHours:     decimal.NewFromFloat(c.FreePermissionHours),
		EsaPfRate:               decimal.NewFromFloat(c.EsaPfRate),
		AllowanceTreatment:      payroll.AllowanceTreatment(c.AllowanceTreatment),
		OTFallback:              payroll.OTFallback(c.OTFallback),
		RoundingPlaces:          c.RoundingPlaces,
	}
	if err := p.Validate(); err != nil {
		return payroll.Policy{}, err
	}
	return p, nil
}
