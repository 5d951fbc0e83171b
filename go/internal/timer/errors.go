package timer

import "errors"

var (
	// ErrNegativeResult is returned when an adjustment would leave less than
	// zero seconds. The timer is left unchanged.
	ErrNegativeResult = errors.New("remaining time would be negative")
	// ErrEmergencyThreshold is returned when the emergency extension is
	// requested while more than the emergency minimum remains.
	ErrEmergencyThreshold = errors.New("remaining time above emergency threshold")
	// ErrNoRound is returned by mutations issued before the first round.
	ErrNoRound = errors.New("no round in progress")
)
