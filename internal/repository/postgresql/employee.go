package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, employee_code, name, designation, employee_type,
	monthly_salary, daily_salary, salary_per_day, esa_pf, shift_id, is_active, created_at, updated_at
`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	return emp, nil
}

// GetByIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return []employee.Employee{}, nil
	}

	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1::uuid[]) ORDER BY employee_code`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// GetActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp           employee.Employee
		employeeType  string
		monthlySalary *decimal.Decimal
		dailySalary   *decimal.Decimal
		salaryPerDay  *decimal.Decimal
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Designation, &employeeType,
		&monthlySalary, &dailySalary, &salaryPerDay, &emp.EsaPf, &emp.ShiftID, &emp.IsActive,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.CreatedAt = createdAt
	emp.UpdatedAt = updatedAt

	pay, err := payModelFromColumns(employee.EmployeeType(employeeType), monthlySalary, dailySalary, salaryPerDay)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: %w", emp.EmployeeCode, err)
	}
	emp.Pay = pay

	return emp, nil
}

// payModelFromColumns reads the split salary column for the employee type. Rows written
// before the split only carry salary_per_day, which is a daily wage for both types.
func payModelFromColumns(t employee.EmployeeType, monthly, daily, legacy *decimal.Decimal) (employee.PayModel, error) {
	split := monthly
	if t == employee.EmployeeTypeLabour {
		split = daily
	}
	if (split == nil || split.IsZero()) && legacy != nil {
		return employee.NewLegacyPayModel(t, *legacy)
	}
	return employee.NewPayModel(t, decimalOrZero(monthly), decimalOrZero(daily))
}
