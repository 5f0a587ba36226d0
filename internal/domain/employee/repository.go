package employee

import "context"

// EmployeeRepository is the read side of the employee store. Writes belong to the
// master-data application.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
}
