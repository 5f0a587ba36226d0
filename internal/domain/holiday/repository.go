package holiday

import "context"

type HolidayRepository interface {
	List(ctx context.Context) ([]Holiday, error)
}
