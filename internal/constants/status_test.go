package constants

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildState_String(t *testing.T) {
	tests := []struct {
		name     string
		state    BuildState
		expected string
	}{
		{
			name:     "idle state",
			state:    BuildStateIdle,
			expected: "idle",
		},
		{
			name:     "preparing state",
			state:    BuildStatePreparing,
			expected: "preparing",
		},
		{
			name:     "running state",
			state:    BuildStateRunning,
			expected: "running",
		},
		{
			name:     "classifying state",
			state:    BuildStateClassifying,
			expected: "classifying",
		},
		{
			name:     "cleaning_up state",
			state:    BuildStateCleaningUp,
			expected: "cleaning_up",
		},
		{
			name:     "succeeded state",
			state:    BuildStateSucceeded,
			expected: "succeeded",
		},
		{
			name:     "failed state",
			state:    BuildStateFailed,
			expected: "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

// TestBuildState_CanTransition_AllValidTransitions tests all valid transitions
// defined in the state machine. Each row in the transitions table is verified.
func TestBuildState_CanTransition_AllValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from BuildState
		to   BuildState
	}{
		// From Idle
		{"idle to preparing", BuildStateIdle, BuildStatePreparing},

		// From Preparing
		{"preparing to running", BuildStatePreparing, BuildStateRunning},
		{"preparing to cleaning_up", BuildStatePreparing, BuildStateCleaningUp},

		// From Running
		{"running to classifying", BuildStateRunning, BuildStateClassifying},
		{"running to cleaning_up", BuildStateRunning, BuildStateCleaningUp},

		// From Classifying
		{"classifying to cleaning_up", BuildStateClassifying, BuildStateCleaningUp},

		// From CleaningUp
		{"cleaning_up to succeeded", BuildStateCleaningUp, BuildStateSucceeded},
		{"cleaning_up to failed", BuildStateCleaningUp, BuildStateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.from.CanTransition(tt.to)
			assert.True(t, result, "transition from %s to %s should be valid", tt.from, tt.to)
		})
	}
}

// TestBuildState_CanTransition_InvalidTransitions tests transitions that are
// NOT allowed.
func TestBuildState_CanTransition_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from BuildState
		to   BuildState
	}{
		// Cannot skip states
		{"idle to running", BuildStateIdle, BuildStateRunning},
		{"idle to succeeded", BuildStateIdle, BuildStateSucceeded},
		{"preparing to succeeded", BuildStatePreparing, BuildStateSucceeded},
		{"preparing to failed", BuildStatePreparing, BuildStateFailed},
		{"running to succeeded", BuildStateRunning, BuildStateSucceeded},
		{"classifying to failed", BuildStateClassifying, BuildStateFailed},

		// Cannot move backwards
		{"running to preparing", BuildStateRunning, BuildStatePreparing},
		{"cleaning_up to running", BuildStateCleaningUp, BuildStateRunning},

		// Terminal states cannot transition
		{"succeeded to preparing", BuildStateSucceeded, BuildStatePreparing},
		{"succeeded to failed", BuildStateSucceeded, BuildStateFailed},
		{"failed to preparing", BuildStateFailed, BuildStatePreparing},
		{"failed to succeeded", BuildStateFailed, BuildStateSucceeded},

		// Self-transitions are invalid
		{"running to running", BuildStateRunning, BuildStateRunning},
		{"failed to failed", BuildStateFailed, BuildStateFailed},

		// Unknown state
		{"unknown to running", BuildState("bogus"), BuildStateRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.from.CanTransition(tt.to)
			assert.False(t, result, "transition from %s to %s should be invalid", tt.from, tt.to)
		})
	}
}

func TestBuildState_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		state    BuildState
		expected bool
	}{
		{"succeeded is terminal", BuildStateSucceeded, true},
		{"failed is terminal", BuildStateFailed, true},
		{"idle is not terminal", BuildStateIdle, false},
		{"preparing is not terminal", BuildStatePreparing, false},
		{"running is not terminal", BuildStateRunning, false},
		{"classifying is not terminal", BuildStateClassifying, false},
		{"cleaning_up is not terminal", BuildStateCleaningUp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.IsTerminal())
		})
	}
}

// TestValidTransitions_TerminalStatesHaveNoTargets verifies the transition
// table and the terminal set stay consistent with each other.
func TestValidTransitions_TerminalStatesHaveNoTargets(t *testing.T) {
	for state := range ValidTransitions {
		assert.False(t, state.IsTerminal(), "state %s has outgoing transitions but is marked terminal", state)
	}
	assert.NotContains(t, ValidTransitions, BuildStateSucceeded)
	assert.NotContains(t, ValidTransitions, BuildStateFailed)
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		name     string
		op       Operation
		expected string
	}{
		{
			name:     "compile operation",
			op:       OperationCompile,
			expected: "compile",
		},
		{
			name:     "upload operation",
			op:       OperationUpload,
			expected: "upload",
		},
		{
			name:     "deploy operation",
			op:       OperationDeploy,
			expected: "deploy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.String())
		})
	}
}

func TestCompileMode_String(t *testing.T) {
	assert.Equal(t, "single-file", CompileModeSingleFile.String())
	assert.Equal(t, "multi-file", CompileModeMultiFile.String())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
}

func TestBuildState_JSONSerialization(t *testing.T) {
	type wrapper struct {
		State BuildState `json:"state"`
	}

	tests := []struct {
		name         string
		state        BuildState
		expectedJSON string
	}{
		{
			name:         "cleaning_up serializes with underscore",
			state:        BuildStateCleaningUp,
			expectedJSON: `{"state":"cleaning_up"}`,
		},
		{
			name:         "succeeded serializes plainly",
			state:        BuildStateSucceeded,
			expectedJSON: `{"state":"succeeded"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wrapper{State: tt.state}
			data, err := json.Marshal(w)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expectedJSON, string(data))

			var decoded wrapper
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.state, decoded.State)
		})
	}
}
