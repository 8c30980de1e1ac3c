package calc

import "errors"

// Errors returned by the parsing and validation helpers. Reduce itself never
// returns an error.
var (
	// ErrInvalidState is returned when externally supplied fields violate the
	// State invariants. It is usually wrapped with the violated rule.
	ErrInvalidState = errors.New("invalid calculator state")

	// ErrInvalidOperator is returned when an operator glyph or name is unknown.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrInvalidDigit is returned when a digit is outside 0-9.
	ErrInvalidDigit = errors.New("digit must be between 0 and 9")

	// ErrInvalidAction is returned when an action kind is unknown or is
	// missing its argument.
	ErrInvalidAction = errors.New("invalid action")

	// ErrUnknownKey is returned when a keypad key has no action bound to it.
	ErrUnknownKey = errors.New("unknown key")
)
