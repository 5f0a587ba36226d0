package payroll

import "errors"

var (
	ErrInvalidExportFormat = errors.New("export format must be xlsx or csv")
	ErrInvalidPolicy       = errors.New("invalid payroll policy")
)
