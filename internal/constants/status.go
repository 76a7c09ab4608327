package constants

// BuildState represents the state of a build or flash operation in the
// orchestrator state machine. State values use snake_case for JSON
// serialization compatibility.
type BuildState string

// Build state constants define the valid states an operation can be in.
// These follow the orchestrator lifecycle:
//
//	Idle → Preparing
//	Preparing → Running, CleaningUp
//	Running → Classifying, CleaningUp
//	Classifying → CleaningUp
//	CleaningUp → Succeeded, Failed
const (
	// BuildStateIdle indicates no operation has started yet.
	BuildStateIdle BuildState = "idle"

	// BuildStatePreparing indicates the build workspace is being staged.
	BuildStatePreparing BuildState = "preparing"

	// BuildStateRunning indicates the external toolchain process is executing.
	BuildStateRunning BuildState = "running"

	// BuildStateClassifying indicates captured output is being turned into
	// diagnostics and a final result.
	BuildStateClassifying BuildState = "classifying"

	// BuildStateCleaningUp indicates staged files are being removed.
	// Every operation passes through this state, success or failure.
	BuildStateCleaningUp BuildState = "cleaning_up"

	// BuildStateSucceeded indicates the operation completed successfully.
	BuildStateSucceeded BuildState = "succeeded"

	// BuildStateFailed indicates the operation failed. The result carries
	// the diagnostics and captured output that explain why.
	BuildStateFailed BuildState = "failed"
)

// String returns the string representation of the BuildState.
// This implements fmt.Stringer for convenient logging and debugging.
func (s BuildState) String() string {
	return string(s)
}

// ValidTransitions defines all allowed state transitions in the operation
// lifecycle. Format: from_state -> []to_states
//
// The happy path walks every intermediate state; a preparation failure jumps
// straight from Preparing to CleaningUp so staged files are always removed.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[BuildState][]BuildState{
	BuildStateIdle:      {BuildStatePreparing},
	BuildStatePreparing: {BuildStateRunning, BuildStateCleaningUp},
	BuildStateRunning:   {BuildStateClassifying, BuildStateCleaningUp},
	BuildStateClassifying: {
		BuildStateCleaningUp,
	},
	BuildStateCleaningUp: {BuildStateSucceeded, BuildStateFailed},
}

// terminalStates defines states where no further transitions are allowed.
// Terminal states are those NOT present as keys in ValidTransitions.
//
//nolint:gochecknoglobals // Read-only lookup table for terminal state checks
var terminalStates = map[BuildState]bool{
	BuildStateSucceeded: true,
	BuildStateFailed:    true,
}

// CanTransition reports whether moving from this state to the target state is
// allowed. Self-transitions and transitions out of terminal states return
// false.
func (s BuildState) CanTransition(to BuildState) bool {
	if s == to {
		return false
	}

	validTargets, exists := ValidTransitions[s]
	if !exists {
		return false // Terminal state or unknown state
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true for states where no further transitions are allowed.
// Terminal states: Succeeded, Failed
func (s BuildState) IsTerminal() bool {
	return terminalStates[s]
}

// Operation identifies which toolchain operation an orchestrator request
// performs.
type Operation string

// Operation constants.
const (
	// OperationCompile builds a sketch without touching a device.
	OperationCompile Operation = "compile"

	// OperationUpload flashes a previously built artifact to a device.
	OperationUpload Operation = "upload"

	// OperationDeploy compiles and flashes in a single toolchain invocation.
	OperationDeploy Operation = "deploy"
)

// String returns the string representation of the Operation.
func (o Operation) String() string {
	return string(o)
}

// CompileMode selects how the sketch source is presented to the toolchain.
type CompileMode string

// Compile mode constants.
const (
	// CompileModeSingleFile stages a lone .ino file into a sketch-shaped
	// directory before compilation.
	CompileModeSingleFile CompileMode = "single-file"

	// CompileModeMultiFile compiles the sketch directory in place.
	CompileModeMultiFile CompileMode = "multi-file"
)

// String returns the string representation of the CompileMode.
func (m CompileMode) String() string {
	return string(m)
}

// Severity classifies a diagnostic line emitted by the toolchain.
type Severity string

// Severity constants.
const (
	// SeverityError marks a diagnostic that fails the operation.
	SeverityError Severity = "error"

	// SeverityWarning marks a diagnostic that is reported but does not
	// fail the operation.
	SeverityWarning Severity = "warning"
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	return string(s)
}
