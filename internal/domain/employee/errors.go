package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidEmployeeType = errors.New("employee type must be staff or labour")
	ErrNoWorkingDays       = errors.New("month has no working days to spread the monthly salary over")
)
