package errors

import (
	"errors"
	"fmt"
)

// The engine is designed to never fail a turn on bad input; the sentinels
// below cover the few conditions callers may want to branch on.

var (
	// ErrInvalidIndex indicates an entry index outside the knowledge list.
	// Stale candidates can carry indices from a since-rebuilt, shorter list,
	// so every dereference is bounds-checked and surfaces this instead.
	ErrInvalidIndex = errors.New("knowledge entry index out of range")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrIndexUnavailable indicates no knowledge index has been built yet
	ErrIndexUnavailable = errors.New("knowledge index unavailable")
)

// WrapError wraps an error with context message
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsInvalidIndex checks if error is an invalid index error
func IsInvalidIndex(err error) bool {
	return errors.Is(err, ErrInvalidIndex)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
