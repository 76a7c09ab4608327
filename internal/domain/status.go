package domain

import "github.com/TomShaoquan/arduino-panda/internal/constants"

// Re-export BuildState, Operation, CompileMode, and Severity from the
// constants package. This allows consumers to import domain types and
// lifecycle types together, providing a unified API for working with
// panda domain objects.
//
// Example usage:
//
//	import "github.com/TomShaoquan/arduino-panda/internal/domain"
//
//	req := domain.BuildRequest{
//	    Operation: domain.OperationCompile,
//	    Mode:      domain.CompileModeSingleFile,
//	}
type (
	// BuildState represents the state of an operation in the orchestrator
	// state machine.
	BuildState = constants.BuildState

	// Operation identifies which toolchain operation a request performs.
	Operation = constants.Operation

	// CompileMode selects how the sketch source is presented to the toolchain.
	CompileMode = constants.CompileMode

	// Severity classifies a diagnostic line.
	Severity = constants.Severity
)

// Re-export BuildState constants for convenience.
// These mirror the values in internal/constants/status.go.
const (
	// BuildStateIdle indicates no operation has started yet.
	BuildStateIdle = constants.BuildStateIdle

	// BuildStatePreparing indicates the build workspace is being staged.
	BuildStatePreparing = constants.BuildStatePreparing

	// BuildStateRunning indicates the external toolchain process is executing.
	BuildStateRunning = constants.BuildStateRunning

	// BuildStateClassifying indicates captured output is being classified.
	BuildStateClassifying = constants.BuildStateClassifying

	// BuildStateCleaningUp indicates staged files are being removed.
	BuildStateCleaningUp = constants.BuildStateCleaningUp

	// BuildStateSucceeded indicates the operation completed successfully.
	BuildStateSucceeded = constants.BuildStateSucceeded

	// BuildStateFailed indicates the operation failed.
	BuildStateFailed = constants.BuildStateFailed
)

// Re-export Operation constants for convenience.
const (
	// OperationCompile builds a sketch without touching a device.
	OperationCompile = constants.OperationCompile

	// OperationUpload flashes a previously built artifact to a device.
	OperationUpload = constants.OperationUpload

	// OperationDeploy compiles and flashes in a single toolchain invocation.
	OperationDeploy = constants.OperationDeploy
)

// Re-export CompileMode constants for convenience.
const (
	// CompileModeSingleFile stages a lone .ino file before compilation.
	CompileModeSingleFile = constants.CompileModeSingleFile

	// CompileModeMultiFile compiles the sketch directory in place.
	CompileModeMultiFile = constants.CompileModeMultiFile
)

// Re-export Severity constants for convenience.
const (
	// SeverityError marks a diagnostic that fails the operation.
	SeverityError = constants.SeverityError

	// SeverityWarning marks a diagnostic that is reported only.
	SeverityWarning = constants.SeverityWarning
)
