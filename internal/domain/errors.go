package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a game cannot be set up as requested.
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	// ErrValidation marks malformed question data.
	ErrValidation = errors.New("invalid question data")
	// ErrNotFound is an internal-consistency fault in question ownership lookups.
	ErrNotFound = errors.New("question index not assigned")
	// ErrGameNotFound is returned when a game has not been created.
	ErrGameNotFound = errors.New("game not found")
	// ErrBankNotFound indicates a question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
)

// ValidationError describes the first offending record of a question bank.
type ValidationError struct {
	Index      int
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d (%q): %s", e.Index, e.QuestionID, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InvalidConfig wraps ErrInvalidConfiguration with a reason.
func InvalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
