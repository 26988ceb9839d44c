// Package errors classifies failures so callers can tell a run-stopping
// problem from a data source that merely came back empty.
//
// Import it under an alias when the standard library package is also needed:
//
//	import errs "auto-monocle/internal/errors"
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorDegraded marks a source that failed; the run continues without it.
	ErrorDegraded ErrorClass = iota
	// ErrorInvalid marks malformed input that was rejected.
	ErrorInvalid
	// ErrorFatal stops the process before any discovery work.
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorDegraded:
		return "degraded"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var (
	// Configuration
	ErrMissingToken      = errors.New("monocle token not configured")
	ErrMissingCredential = errors.New("SUPERVISOR_TOKEN not available")

	// Sources
	ErrNoStreamServer   = errors.New("no go2rtc stream server reachable")
	ErrNVRNotConfigured = errors.New("unifi protect integration not found")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrEmptyResponse    = errors.New("empty response")
	ErrInvalidResponse  = errors.New("invalid response body")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapDegraded wraps a source failure.
func WrapDegraded(err error, component, method, action string) error {
	return wrapClass(ErrorDegraded, err, component, method, action)
}

// WrapInvalid wraps a rejected input.
func WrapInvalid(err error, component, method, action string) error {
	return wrapClass(ErrorInvalid, err, component, method, action)
}

// WrapFatal wraps an error that must stop the process.
func WrapFatal(err error, component, method, action string) error {
	return wrapClass(ErrorFatal, err, component, method, action)
}

func wrapClass(class ErrorClass, err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{
		Class:     class,
		Err:       Wrap(err, component, method, action),
		Component: component,
		Operation: method,
	}
}

// Classify returns the class of err. Unclassified errors count as degraded:
// nothing outside configuration loading is allowed to stop a run.
func Classify(err error) ErrorClass {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class
	}
	if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrMissingCredential) {
		return ErrorFatal
	}
	return ErrorDegraded
}

// IsFatal reports whether err must stop the process.
func IsFatal(err error) bool {
	return err != nil && Classify(err) == ErrorFatal
}

// IsDegraded reports whether err only disables one source.
func IsDegraded(err error) bool {
	return err != nil && Classify(err) == ErrorDegraded
}
