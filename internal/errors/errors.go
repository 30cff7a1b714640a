// Package errors provides centralized error definitions and error handling
// utilities for the team assignment tool. It defines the two error kinds
// that are recoverable at the CLI boundary, error constructors with context
// wrapping, and classification helpers.
//
// # Error Types
//
// Every failure the tool reports falls into one of two domain errors:
//
//   - ConfigError: invalid run parameters (team count, team sizes,
//     condition, cross-team target). Reported before any I/O side effect.
//   - DataError: malformed or incomplete roster input, carrying the
//     offending file, row, and column so the record can be fixed.
//
// Imperfect assignment outcomes (a cross team that repeats a discipline,
// a same-branch team that spans two) are warnings, not errors, and are
// represented as values in the assign package.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewConfigError("team count must be positive", errors.ErrTeamCountNonPositive).
//		WithParameter("team_count").WithValue(-2)
//
//	err := errors.NewDataError("discipline is missing", errors.ErrMissingDiscipline).
//		WithFile("students.csv").WithRow(14)
//
// Checking errors:
//
//	if errors.IsConfigError(err) { ... }
//	if errors.Is(err, errors.ErrMissingDiscipline) { ... }
//
// Mapping to process exit codes at the boundary:
//
//	os.Exit(errors.ExitCode(err))
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Exit codes reported by the CLI. Zero is success; anything else is the
// code for the error kind the run failed with.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfigInvalid = 2
	ExitDataInvalid   = 3
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration-related sentinel errors
var (
	// ErrTeamCountNonPositive indicates a zero or negative team count.
	ErrTeamCountNonPositive = New("team count must be positive")
	// ErrRosterTooSmall indicates the roster cannot fill every team to its minimum size.
	ErrRosterTooSmall = New("roster smaller than minimum team capacity")
	// ErrRosterTooLarge indicates the roster exceeds the combined maximum team capacity.
	ErrRosterTooLarge = New("roster exceeds maximum team capacity")
	// ErrUnknownCondition indicates a condition other than cross, same, or mixed.
	ErrUnknownCondition = New("unknown assignment condition")
	// ErrCrossTeamsExceedTotal indicates a mixed-mode cross-team target above the team count.
	ErrCrossTeamsExceedTotal = New("cross team target exceeds team count")
	// ErrGroupMapInvalid indicates an unreadable or malformed discipline group mapping file.
	ErrGroupMapInvalid = New("group mapping file is invalid")
)

// Roster-data sentinel errors
var (
	// ErrMissingColumn indicates a required header column is absent from the roster.
	ErrMissingColumn = New("required column is missing")
	// ErrMissingStudentID indicates a roster row without a student identifier.
	ErrMissingStudentID = New("student id is missing")
	// ErrDuplicateStudentID indicates two roster rows sharing a student identifier.
	ErrDuplicateStudentID = New("duplicate student id")
	// ErrMissingDiscipline indicates a roster row without a discipline label.
	ErrMissingDiscipline = New("discipline is missing")
	// ErrRosterMalformed indicates the roster file could not be parsed as CSV.
	ErrRosterMalformed = New("roster file is malformed")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for both domain error types.
type baseError struct {
	message string
	cause   error
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Domain Errors
// -----------------------------------------------------------------------------

// ConfigError represents invalid run parameters. The run aborts before any
// roster is read or output written.
//
// Example:
//
//	err := errors.NewConfigError("team count must be positive", errors.ErrTeamCountNonPositive)
//	err = err.WithParameter("team_count").WithValue(0)
type ConfigError struct {
	baseError
	Parameter string
	Value     any
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message: message,
			cause:   cause,
		},
	}
}

// WithParameter adds the offending parameter name to the error context.
func (e *ConfigError) WithParameter(name string) *ConfigError {
	e.Parameter = name
	return e
}

// WithValue adds the rejected value to the error context.
func (e *ConfigError) WithValue(value any) *ConfigError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Parameter != "" {
		parts = append(parts, fmt.Sprintf("parameter=%s", e.Parameter))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "configuration error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("configuration error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// DataError represents a malformed or incomplete roster record. The run
// aborts without producing partial output.
//
// Example:
//
//	err := errors.NewDataError("discipline is missing", errors.ErrMissingDiscipline)
//	err = err.WithFile("students.csv").WithRow(14).WithColumn("programme")
type DataError struct {
	baseError
	File   string
	Row    int // 1-based row number in the input file; 0 when not row-specific
	Column string
}

// NewDataError creates a new DataError.
func NewDataError(message string, cause error) *DataError {
	return &DataError{
		baseError: baseError{
			message: message,
			cause:   cause,
		},
	}
}

// WithFile adds the input file path to the error context.
func (e *DataError) WithFile(path string) *DataError {
	e.File = path
	return e
}

// WithRow adds the offending row number to the error context.
func (e *DataError) WithRow(row int) *DataError {
	e.Row = row
	return e
}

// WithColumn adds the offending column name to the error context.
func (e *DataError) WithColumn(column string) *DataError {
	e.Column = column
	return e
}

// Error returns the formatted error message.
func (e *DataError) Error() string {
	var parts []string
	if e.File != "" {
		parts = append(parts, fmt.Sprintf("file=%s", e.File))
	}
	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("row=%d", e.Row))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}

	prefix := "data error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("data error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *DataError) Is(target error) bool {
	if _, ok := target.(*DataError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsConfigError returns true if the error is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var cfgErr *ConfigError
	return As(err, &cfgErr)
}

// IsDataError returns true if the error is (or wraps) a DataError.
func IsDataError(err error) bool {
	if err == nil {
		return false
	}
	var dataErr *DataError
	return As(err, &dataErr)
}

// ExitCode maps an error to the process exit code the CLI reports.
// ConfigError and DataError get distinct codes so replication scripts can
// tell a bad invocation from a bad roster.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsConfigError(err):
		return ExitConfigInvalid
	case IsDataError(err):
		return ExitDataInvalid
	default:
		return ExitFailure
	}
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with an additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load roster")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to load roster %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
