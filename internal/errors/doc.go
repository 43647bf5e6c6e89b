// Package errors provides typed errors with exit codes for realmctl.
//
// # Error Types
//
// RealmError is the base error type that wraps an error with an exit code:
//
//	type RealmError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess       = 0  // Success
//	ExitGeneralError  = 1  // General/unknown errors
//	ExitValidation    = 2  // Profile requirement or input not valid
//	ExitScanError     = 3  // Unreadable path while building a manifest
//	ExitAlreadyExists = 4  // Workspace name collision
//	ExitLinkError     = 5  // Hard link / symlink creation failed
//	ExitIOError       = 6  // Generic read/write/copy failure
//	ExitConfigError   = 7  // Configuration error
//	ExitNotFound      = 8  // Workspace, manifest or profile missing
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
