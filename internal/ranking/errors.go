package ranking

import "errors"

// ErrInvalidConfig is an error returned when ranking configuration can't be used for scoring.
var ErrInvalidConfig = errors.New("invalid ranking config")
