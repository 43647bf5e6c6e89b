// Package logging provides logging utilities for realmctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("linking", "path", rel, "op", "hardlink")
//	logging.Warn("expected symlink, found directory", "path", rel)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Scanning %s...", baseDir)
//	logging.UserSuccess("Workspace %s created", name)
//	logging.UserWarning("Cache directory present in base")
//	logging.UserError("Failed to create workspace: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// SetUserOutput redirects both streams, mainly for tests.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
