package decoder

import "errors"

// ErrUnexpectedToken is returned when catalog json doesn't have expected structure.
var ErrUnexpectedToken = errors.New("unexpected json token")
