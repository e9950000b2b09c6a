// Package errors provides the classified error primitives used across mdsite.
//
// Every failure in the build pipeline is reported as a ClassifiedError so the
// CLI can pick an exit code and a message without string matching. The
// builder API attaches the offending file path, and for render failures the
// content file being rendered, as context which Error() always includes.
//
// Example usage:
//
//	err := errors.FileSystemError("read content file").
//		WithCause(readErr).
//		WithPath(path).
//		Build()
package errors
