// Package testutil provides testing utilities for the parity gate.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockNetwork indicates a mock transport failure (used in tests).
	ErrMockNetwork = errors.New("network error")

	// ErrMockAPIError indicates a mock API error occurred (used in tests).
	ErrMockAPIError = errors.New("API error")

	// ErrMockDownloadFailed indicates a mock artifact download failure (used in tests).
	ErrMockDownloadFailed = errors.New("download failed")
)
