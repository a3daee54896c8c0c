package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for each error category (CLI, Manifest, Metadata, Output)
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"pretty-panic/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

type errorSpec struct {
	code        string
	description string
}

// newSentinelError creates a sentinel error and registers it in errorSpecs in one step.
func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// errorSpecs maps sentinel errors to their error codes and descriptions.
// Must be declared before sentinel errors to ensure proper initialization order.
var errorSpecs = make(map[error]errorSpec)

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (code, description string) {
	spec := specFor(sentinel)
	return spec.code, spec.description
}

// newWithSentinel creates a new error in the category registered for base.
func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, nil)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

// wrapWithSentinel wraps cause in the category registered for base.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context,
// such as the flag or file a failure relates to.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	// CLI errors.
	ErrFieldRequired          = newSentinelError("field is required", errx.CodeCLI, errx.DescCLI)
	ErrControlCharsNotAllowed = newSentinelError("value must not contain control characters", errx.CodeCLI, errx.DescCLI)
	ErrInvalidFaultCount      = newSentinelError("fault count must be at least 1", errx.CodeCLI, errx.DescCLI)
	ErrInvalidExitCode        = newSentinelError("exit code must be between 0 and 125", errx.CodeCLI, errx.DescCLI)
	ErrUnknownColorMode       = newSentinelError("unknown color mode", errx.CodeCLI, errx.DescCLI)
	ErrConflictingFlags       = newSentinelError("conflicting flags", errx.CodeCLI, errx.DescCLI)

	// Manifest errors.
	ErrLoadManifestFailed = newSentinelError("failed to load manifest", errx.CodeManifest, errx.DescManifest)

	// Metadata errors.
	ErrRenderMetadataFailed = newSentinelError("failed to render metadata", errx.CodeMetadata, errx.DescMetadata)

	// Output errors.
	ErrWriteReportFailed = newSentinelError("failed to write report", errx.CodeOutput, errx.DescOutput)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeCLI, description: errx.DescCLI}
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
//
// This extracts all context from errx.Error and logs it with structured fields:
// - error.code: "74000"
// - error.category: "Manifest error"
// - error.context.path: "crash.yaml"
// - error.context.flag: "--faults"
//
// The fault handler logs faults through logr with the same field layout
// under the "fault." prefix.
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if errors.As(err, &errxErr) {
		fields := []zap.Field{
			zap.String("error.code", errxErr.Code()),
			zap.String("error.category", errxErr.Description()),
			zap.String("error.message", errxErr.Message()),
			zap.Error(err),
		}

		// Context keys become individual fields.
		if ctx := errxErr.Context(); ctx != nil {
			for key, value := range ctx {
				fields = append(fields, zap.Any("error.context."+key, value))
			}
		}

		// Distinct name so it does not collide with the "error" field.
		if cause := errxErr.Cause(); cause != nil {
			fields = append(fields, zap.NamedError("error.cause", cause))
		}

		logger.Error(msg, fields...)
	} else {
		logger.Error(msg, zap.Error(err))
	}
}
