package allowlist

import "errors"

var (
	// ErrAlreadyPresent is returned by Add when the id is already a member.
	ErrAlreadyPresent = errors.New("already whitelisted")
	// ErrNotPresent is returned by Remove when the id is not a member.
	ErrNotPresent = errors.New("not whitelisted")
	// ErrEmptyID is returned by Add for a blank login.
	ErrEmptyID = errors.New("login is not specified")
)
