package allowance

import (
	"time"

	"github.com/shopspring/decimal"
)

type AllowanceType string

const (
	AllowanceTypeFood    AllowanceType = "food"
	AllowanceTypeAdvance AllowanceType = "advance"
)

// FoodAllowanceAmount is the fixed value of one food allowance entry.
var FoodAllowanceAmount = decimal.NewFromInt(30)

type Allowance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Type       AllowanceType
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// EffectiveAmount is the entered amount, or FoodAllowanceAmount for a food entry
// recorded without one.
func (a Allowance) EffectiveAmount() decimal.Decimal {
	if a.Type == AllowanceTypeFood && a.Amount.IsZero() {
		return FoodAllowanceAmount
	}
	return a.Amount
}
