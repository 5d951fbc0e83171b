package commands

import "errors"

var (
	// ErrUnknownCommand is returned by Parse for names it does not handle.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidParameter is returned for unparseable command parameters.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrPermissionDenied is returned when the caller fails authorization.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrDisabled is returned when the command is switched off in config.
	ErrDisabled = errors.New("command disabled")
)
