// Package logging provides structured logging utilities for the exoframe CLI.
//
// # Overview
//
// This package wraps the standard library slog package with defaults for
// consistent logging across all commands. Logs are JSON records written to
// stderr so they never interleave with command output on stdout.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages
//   - WARN/WARNING: Potentially problematic situations (CLI default)
//   - ERROR: Failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("exoframe", version, "info")
//	    slog.Info("uploading build context", "tag", tag)
//	}
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable is consulted when no explicit level is
// given:
//
//	LOG_LEVEL=debug exoframe build
package logging
