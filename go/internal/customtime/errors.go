package customtime

import "errors"

// ErrInvalidValue is returned when a stored track time cannot be parsed.
var ErrInvalidValue = errors.New("invalid track time")
