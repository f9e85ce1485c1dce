// Package errors provides centralized error handling for the parity gate.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
//
// A failed gate evaluation is NOT an error: the evaluator reports it as a
// result with Passed=false. The sentinels below cover the conditions that
// prevent the gate from reaching a verdict at all.
var (
	// ErrConfigMissing indicates that a required configuration value
	// (repository, token) was not provided by any source.
	ErrConfigMissing = errors.New("required configuration missing")

	// ErrConfigInvalid indicates a configuration value that was provided
	// but cannot be used (non-numeric streak, streak below one).
	ErrConfigInvalid = errors.New("invalid configuration value")

	// ErrNetwork indicates that an API request could not be completed at
	// the transport level (connection refused, DNS failure, timeout).
	ErrNetwork = errors.New("api request failed")

	// ErrProtocol indicates that the API answered but the response was not
	// usable: a non-2xx status or a body that failed to decode.
	ErrProtocol = errors.New("unexpected api response")

	// ErrArtifactMissing indicates that a workflow run lacks the parity
	// report artifact, or the downloaded archive lacks the report entry.
	ErrArtifactMissing = errors.New("parity report artifact not found")

	// ErrReportMalformed indicates that the report artifact was found but
	// its contents could not be read (corrupt archive, invalid JSON).
	ErrReportMalformed = errors.New("parity report malformed")

	// ErrGateFailed carries a negative gate verdict out of a command so the
	// process exits non-zero. The evaluator itself reports verdicts as
	// results; commands return this only after rendering the verdict.
	ErrGateFailed = errors.New("parity streak gate failed")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrUnsupportedOutputFormat indicates that an unsupported output format was specified.
	ErrUnsupportedOutputFormat = errors.New("unsupported output format")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
