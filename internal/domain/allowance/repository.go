package allowance

import (
	"context"
	"time"
)

type AllowanceRepository interface {
	// ListByDateRange returns allowances with from <= date < to. An empty employeeIDs
	// slice means all employees.
	ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]Allowance, error)
}
