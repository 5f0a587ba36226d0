package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-payroll/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, date, type, is_recurring FROM holidays ORDER BY date`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		var (
			h    holiday.Holiday
			kind string
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &kind, &h.IsRecurring); err != nil {
			return nil, err
		}
		h.Type = holiday.HolidayType(kind)
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}
