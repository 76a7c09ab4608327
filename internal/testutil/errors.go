// Package testutil provides testing utilities for panda.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockToolchainMissing simulates a toolchain binary that cannot be
	// found (used in tests).
	ErrMockToolchainMissing = errors.New("toolchain binary not found")

	// ErrMockQueryFailed simulates a failed discovery query (used in tests).
	ErrMockQueryFailed = errors.New("discovery query failed")

	// ErrMockExecFailed simulates a toolchain process failure (used in tests).
	ErrMockExecFailed = errors.New("toolchain execution failed")

	// ErrMockStagingFailed simulates a workspace staging failure (used in tests).
	ErrMockStagingFailed = errors.New("staging failed")

	// ErrMockNotFound indicates a mock resource was not found (used in tests).
	ErrMockNotFound = errors.New("not found")
)
