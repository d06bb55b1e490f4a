// Package errors provides centralized error definitions and error handling utilities
// for obslist. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - ProposalError: errors reading or interpreting an APT proposal document
//   - ObservationListError: errors producing the observation-list output file
//
// Semantic errors represent common error conditions:
//   - NotFoundError: a named element, column or file could not be found
//   - ValidationError: inputs that are individually well formed but inconsistent
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewProposalError("no DataRequests element", errors.ErrProposalStructure).
//	    WithPath("OTE01-1134.xml").WithElement("DataRequests")
//
//	// Semantic error
//	err := errors.NewValidationError("multiple filters in one observation").
//	    WithField("ObservationID").WithValue("3").WithCause(errors.ErrMultipleFilters)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMultipleFilters) { ... }
//
//	var propErr *errors.ProposalError
//	if errors.As(err, &propErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
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

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Proposal-related sentinel errors
var (
	// ErrProposalParse indicates that the proposal is not well-formed XML.
	ErrProposalParse = New("proposal is not well-formed XML")
	// ErrProposalStructure indicates that an expected APT element is missing.
	ErrProposalStructure = New("proposal structure not recognized")
	// ErrMultipleFilters indicates that one observation mixes short-wavelength filters.
	ErrMultipleFilters = New("multiple filters in one observation")
)

// Observation-list sentinel errors
var (
	// ErrDimensionMismatch indicates the per-observation inputs disagree in length.
	ErrDimensionMismatch = New("not all provided parameters have compatible dimensions")
	// ErrOutputWrite indicates the observation list could not be persisted.
	ErrOutputWrite = New("observation list write failed")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ObslistError is the base interface for all obslist errors.
type ObslistError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
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

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// formatContext renders "kind [k=v, ...]: message: cause".
func formatContext(kind string, parts []string, message string, cause error) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, message, cause)
	}
	return fmt.Sprintf("%s: %s", prefix, message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ProposalError represents errors reading or interpreting an APT proposal.
//
// Example:
//
//	err := errors.NewProposalError("missing element", errors.ErrProposalStructure)
//	err = err.WithPath("prop.xml").WithElement("DataRequests")
//	fmt.Println(err) // "proposal error [path=prop.xml, element=DataRequests]: missing element: proposal structure not recognized"
type ProposalError struct {
	baseError
	Path    string
	Element string
	// Observation is the zero-based observation position, or -1 when not applicable.
	Observation int
}

// NewProposalError creates a new ProposalError.
func NewProposalError(message string, cause error) *ProposalError {
	return &ProposalError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		Observation: -1,
	}
}

// WithPath adds the proposal file path to the error context.
func (e *ProposalError) WithPath(path string) *ProposalError {
	e.Path = path
	return e
}

// WithElement adds the offending element name to the error context.
func (e *ProposalError) WithElement(name string) *ProposalError {
	e.Element = name
	return e
}

// WithObservation adds the zero-based observation position to the error context.
func (e *ProposalError) WithObservation(idx int) *ProposalError {
	e.Observation = idx
	return e
}

// Error returns the formatted error message.
func (e *ProposalError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Element != "" {
		parts = append(parts, fmt.Sprintf("element=%s", e.Element))
	}
	if e.Observation >= 0 {
		parts = append(parts, fmt.Sprintf("observation=%d", e.Observation))
	}
	return formatContext("proposal error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ProposalError) Is(target error) bool {
	if _, ok := target.(*ProposalError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ObservationListError represents errors producing the observation-list file.
//
// Example:
//
//	err := errors.NewObservationListError("rename failed", ioErr).WithOutputPath("test.yaml")
type ObservationListError struct {
	baseError
	OutputPath string
}

// NewObservationListError creates a new ObservationListError.
func NewObservationListError(message string, cause error) *ObservationListError {
	return &ObservationListError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithOutputPath adds the destination path to the error context.
func (e *ObservationListError) WithOutputPath(path string) *ObservationListError {
	e.OutputPath = path
	return e
}

// WithSeverity sets the error severity.
func (e *ObservationListError) WithSeverity(s Severity) *ObservationListError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ObservationListError) Error() string {
	var parts []string
	if e.OutputPath != "" {
		parts = append(parts, fmt.Sprintf("output=%s", e.OutputPath))
	}
	return formatContext("observation list error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ObservationListError) Is(target error) bool {
	if _, ok := target.(*ObservationListError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("column", "TileNum")
//	fmt.Println(err) // "column 'TileNum' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("multiple filters in one observation")
//	err = err.WithField("ObservationID").WithValue("3")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return formatContext("validation error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
// Errors implementing ObslistError report their own flag; anything else
// (raw I/O errors, encoding errors) is treated as internal.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var obslistErr ObslistError
	if As(err, &obslistErr) {
		return obslistErr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement ObslistError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var obslistErr ObslistError
	if As(err, &obslistErr) {
		return obslistErr.Severity()
	}

	return SeverityError
}

// IsDomainError returns true if the error is a ProposalError or an
// ObservationListError.
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}

	var proposalErr *ProposalError
	var listErr *ObservationListError

	return As(err, &proposalErr) || As(err, &listErr)
}

// IsSemanticError returns true if the error is a NotFoundError or a
// ValidationError.
func IsSemanticError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *NotFoundError
	var validation *ValidationError

	return As(err, &notFound) || As(err, &validation)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil error.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to open proposal")
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
//	err := errors.Wrapf(baseErr, "failed to read %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
