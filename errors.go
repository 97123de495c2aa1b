package camsettings

import (
	"errors"
	"fmt"
)

// Errors returned by settings operations.
var (
	// ErrNilListener indicates a nil listener was passed to AddListener or
	// RemoveListener.
	ErrNilListener = errors.New("listener is nil")

	// ErrBadFormat indicates a stored string cannot be decoded as the
	// requested type.
	ErrBadFormat = errors.New("stored value has invalid format")

	// ErrNoPossibleValues indicates an index-based operation was invoked for
	// a key with no registered possible values.
	ErrNoPossibleValues = errors.New("no possible values registered")

	// ErrNoDefault indicates SetToDefault was invoked for a key with no
	// registered default.
	ErrNoDefault = errors.New("no default registered")

	// ErrIndexOutOfRange indicates an index outside the possible-values
	// range.
	ErrIndexOutOfRange = errors.New("index outside possible values")

	// ErrUnknownValue indicates the current value is not among the
	// registered possible values.
	ErrUnknownValue = errors.New("current value not in possible values")
)

// FormatError is returned when a stored string cannot be decoded as the
// requested numeric or boolean type.
type FormatError struct {
	// Key is the setting key.
	Key string
	// Value is the undecodable stored string.
	Value string
	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("setting %q: cannot decode %q: %v", e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements error matching for FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrBadFormat
}

// ParseError represents an error while parsing a defaults catalog.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
