package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/allowance"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type allowanceRepositoryImpl struct {
	db *database.DB
}

func NewAllowanceRepository(db *database.DB) allowance.AllowanceRepository {
	return &allowanceRepositoryImpl{db: db}
}

// ListByDateRange implements allowance.AllowanceRepository.
func (r *allowanceRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]allowance.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, type, amount, created_at
		FROM allowances
		WHERE date >= $1 AND date < $2
			AND (cardinality($3::uuid[]) = 0 OR employee_id = ANY($3::uuid[]))
		ORDER BY date, employee_id
	`

	if employeeIDs == nil {
		employeeIDs = []string{}
	}

	rows, err := q.Query(ctx, query, from, to, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query allowances: %w", err)
	}
	defer rows.Close()

	allowances := make([]allowance.Allowance, 0)
	for rows.Next() {
		var (
			a      allowance.Allowance
			kind   string
			amount *decimal.Decimal
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &kind, &amount, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Type = allowance.AllowanceType(kind)
		a.Amount = decimalOrZero(amount)
		allowances = append(allowances, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return allowances, nil
}
