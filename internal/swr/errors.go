package swr

import "errors"

var (
	// ErrInvalidParameter reports a configuration value outside its physical
	// or structural range. It is always returned before any frame is produced.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidState reports a call that the current lifecycle stage does not
	// allow, such as updating a frozen envelope.
	ErrInvalidState = errors.New("invalid state")
)
