// Package errors provides structured error types for programmatic error
// handling and the exit code contract of the exoframe CLI.
//
// Every failure the CLI can report carries an ErrorCode; ExitCode maps it to
// the process exit status:
//
//	0  success
//	1  internal or unclassified failure
//	2  invalid request (flags, tag, configuration)
//	3  no template detected for the working directory
//	4  template Dockerfile is empty
//	5  access token rejected by the server
//	6  server unavailable or resource not found
//	7  build failed on the server
//	8  working directory could not be archived
//	9  timeout or cancellation
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeArchive,
//	    "failed to archive working directory",
//	    cause,
//	    map[string]any{"path": rel},
//	)
package errors
