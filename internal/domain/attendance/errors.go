package attendance

import "errors"

var ErrInvalidDate = errors.New("invalid attendance date, expected YYYY-MM-DD")
