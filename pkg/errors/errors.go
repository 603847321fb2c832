// Package errors provides the unified error type and factory functions for
// essentia. Every layer of the engine (catalogue, substance, reaction,
// mixture) uses AppError as the single carrier for structured error
// information, enabling consistent logging and invariant-violation
// reporting. Every error here is a programming error, not a recoverable
// condition: there is no retry and no partial step.
package errors

import (
	"errors"
	"fmt"
)

// ─────────────────────────────────────────────────────────────────────────────
// Build-tag / compile-time stack-capture control
//
// By default stack traces are captured on every New/Wrap call.  In
// performance-sensitive deployments set the build tag "nostack" to compile
// out the runtime.Callers call entirely:
//
//   go build -tags nostack ./...
// ─────────────────────────────────────────────────────────────────────────────

// ─────────────────────────────────────────────────────────────────────────────
// AppError — the canonical engine error type
// ─────────────────────────────────────────────────────────────────────────────

// AppError is the single structured error type used throughout essentia.
// It satisfies the standard error interface and supports Go 1.13+ error
// wrapping so that errors.Is / errors.As / errors.Unwrap work transparently.
//
// Usage:
//
//	return errors.New(errors.CodeUnknownIdentifier, "reaction referenced unregistered essence 7")
//	return errors.Wrap(buildErr, errors.CodeConstructionError, "failed to build phase graph")
type AppError struct {
	// Code is the typed error code that uniquely identifies the failure category.
	Code ErrorCode

	// Message is the primary human-readable description of the error.
	Message string

	// Detail carries supplementary context (ids, thresholds, keys) that aids
	// debugging without cluttering the primary message.
	Detail string

	// Cause is the underlying error that triggered this AppError, enabling
	// errors.Is / errors.As traversal of the full error chain.
	Cause error

	// Stack contains the formatted call-stack captured at the point of error
	// creation.  It is populated by New and Wrap but omitted when the
	// "nostack" build tag is set.
	Stack string
}

// ─────────────────────────────────────────────────────────────────────────────
// error interface implementation
// ─────────────────────────────────────────────────────────────────────────────

// Error implements the standard error interface.
// Format: "[<code_name>(<code_int>)] <message>: <detail>"
// The detail segment is omitted when Detail is empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s(%d)] %s: %s", e.Code.String(), int(e.Code), e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s(%d)] %s", e.Code.String(), int(e.Code), e.Message)
}

// Unwrap returns the underlying cause error, enabling errors.Is and errors.As
// to traverse the full error chain without any additional boilerplate.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ─────────────────────────────────────────────────────────────────────────────
// Fluent builder methods
// ─────────────────────────────────────────────────────────────────────────────

// WithDetail returns a shallow copy of the receiver with Detail set to the
// supplied string.  It is safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// ─────────────────────────────────────────────────────────────────────────────
// Primary factory functions
// ─────────────────────────────────────────────────────────────────────────────

// New constructs a fresh AppError with the given code and message.
// A call-stack snapshot is captured automatically (unless compiled with -tags nostack).
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.
// If err is nil, Wrap returns nil so it can be used inline.
//
// When err is already an *AppError and code is CodeUnknown the original code
// is preserved, preventing loss of the original classification during
// cross-layer propagation.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error-chain inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

// IsCode reports whether any error in err's chain is an *AppError with the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) && ae.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the ErrorCode from the first *AppError found in err's
// chain. If no *AppError is present, CodeUnknown is returned; if err is nil,
// CodeOK is returned.
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// ─────────────────────────────────────────────────────────────────────────────
// Convenience factory functions, one per error category
// ─────────────────────────────────────────────────────────────────────────────

// NewConstructionError constructs a CodeConstructionError AppError. Returned
// by builders at Build() time: missing required fields, a solvent declared
// in a form its essence cannot take, or a phase-graph invariant violation.
func NewConstructionError(message string) *AppError {
	return &AppError{
		Code:    CodeConstructionError,
		Message: message,
		Stack:   captureStack(1),
	}
}

// NewUnknownIdentifier constructs a CodeUnknownIdentifier AppError. Returned
// when a reaction references an essence, form, or substance id not present
// in the mixture during a step.
func NewUnknownIdentifier(message string) *AppError {
	return &AppError{
		Code:    CodeUnknownIdentifier,
		Message: message,
		Stack:   captureStack(1),
	}
}

// NewProductKeyMismatch constructs a CodeProductKeyMismatch AppError.
// Returned when product fusion is attempted across a pair of products that
// do not share their routing key.
func NewProductKeyMismatch(message string) *AppError {
	return &AppError{
		Code:    CodeProductKeyMismatch,
		Message: message,
		Stack:   captureStack(1),
	}
}

// NewSolubilityInvariantBroken constructs a CodeSolubilityInvariantBroken
// AppError. Returned when a solution holds a solute whose essence is not a
// Solute, or a solvent whose essence is not a Solvent.
func NewSolubilityInvariantBroken(message string) *AppError {
	return &AppError{
		Code:    CodeSolubilityInvariantBroken,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Internal constructs a CodeInternal AppError for unexpected failures that
// are not attributable to a specific invariant violation above.
func Internal(message string) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Stack:   captureStack(1),
	}
}
