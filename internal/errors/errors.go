package errors

import (
	"errors"
	"fmt"
)

// Exit codes for realmctl
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitValidation    = 2
	ExitScanError     = 3
	ExitAlreadyExists = 4
	ExitLinkError     = 5
	ExitIOError       = 6
	ExitConfigError   = 7
	ExitNotFound      = 8
)

// RealmError is the base error type for realmctl
type RealmError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RealmError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RealmError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *RealmError) ExitCode() int {
	return e.Code
}

// New creates a new RealmError
func New(code int, message string) *RealmError {
	return &RealmError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a RealmError
func Wrap(code int, message string, cause error) *RealmError {
	return &RealmError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ValidationError returns an error for input or profile validation failures
func ValidationError(message string) *RealmError {
	return New(ExitValidation, message)
}

// MissingRequirement returns a validation error for a required base path
// that is absent or of the wrong type.
func MissingRequirement(kind, path string) *RealmError {
	return New(ExitValidation, fmt.Sprintf("required %s not found: %s", kind, path))
}

// ScanError returns an error for an unreadable path during a manifest scan
func ScanError(path string, cause error) *RealmError {
	return Wrap(ExitScanError, fmt.Sprintf("failed to scan %s", path), cause)
}

// AlreadyExists returns an error for a workspace name collision
func AlreadyExists(path string) *RealmError {
	return New(ExitAlreadyExists, fmt.Sprintf("workspace already exists: %s", path))
}

// LinkError returns an error for a hard link or symlink that could not be created
func LinkError(path string, cause error) *RealmError {
	return Wrap(ExitLinkError, fmt.Sprintf("failed to link %s", path), cause)
}

// IOError returns an error for generic read/write/copy failures
func IOError(op string, cause error) *RealmError {
	return Wrap(ExitIOError, op, cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *RealmError {
	return Wrap(ExitConfigError, message, cause)
}

// NotFound returns an error for a missing workspace, manifest or profile
func NotFound(what, name string) *RealmError {
	return New(ExitNotFound, fmt.Sprintf("%s not found: %s", what, name))
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var realmErr *RealmError
	if errors.As(err, &realmErr) {
		return realmErr.ExitCode()
	}
	return ExitGeneralError
}

// HasCode reports whether any RealmError in err's chain carries code.
func HasCode(err error, code int) bool {
	for err != nil {
		var realmErr *RealmError
		if !errors.As(err, &realmErr) {
			return false
		}
		if realmErr.Code == code {
			return true
		}
		err = realmErr.Cause
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
