// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrQuoteUnavailable = errors.New("quote unavailable")
	ErrNoPositions      = errors.New("no positions loaded")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrTimeout          = errors.New("operation timed out")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrInputValidation  = errors.New("input validation failed")
)

// QuoteError represents a per-ticker market data failure. Quote errors are
// non-fatal: the ticker is skipped for the cycle that produced the error.
type QuoteError struct {
	Ticker  string
	Message string
	Err     error
}

func (e *QuoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quote error [%s]: %s: %v", e.Ticker, e.Message, e.Err)
	}
	return fmt.Sprintf("quote error [%s]: %s", e.Ticker, e.Message)
}

func (e *QuoteError) Unwrap() error {
	return e.Err
}

// NewQuoteError creates a new QuoteError.
func NewQuoteError(ticker, message string, err error) *QuoteError {
	return &QuoteError{
		Ticker:  ticker,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PositionError represents a malformed row in the positions input. Any
// position error is fatal for the whole load: the engine must not run with
// partially parsed positions.
type PositionError struct {
	Row     int
	Ticker  string
	Message string
	Err     error
}

func (e *PositionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("position error [row %d, %s]: %s: %v", e.Row, e.Ticker, e.Message, e.Err)
	}
	return fmt.Sprintf("position error [row %d, %s]: %s", e.Row, e.Ticker, e.Message)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// NewPositionError creates a new PositionError.
func NewPositionError(row int, ticker, message string, err error) *PositionError {
	return &PositionError{
		Row:     row,
		Ticker:  ticker,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
