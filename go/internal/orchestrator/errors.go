package orchestrator

import "errors"

var (
	// ErrStopped is returned for requests made after Run has returned.
	ErrStopped = errors.New("orchestrator stopped")

	ErrUnknownTickSource = errors.New("unknown tick source")
)
