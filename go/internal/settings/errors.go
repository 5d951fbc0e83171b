package settings

import "errors"

// ErrDocument is returned when the configuration document is malformed.
var ErrDocument = errors.New("malformed config document")
