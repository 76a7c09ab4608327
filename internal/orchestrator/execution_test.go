package orchestrator

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

func TestExecution_HappyPath(t *testing.T) {
	t.Parallel()

	e := newExecution(zerolog.Nop())
	assert.Equal(t, constants.BuildStateIdle, e.state)

	path := []constants.BuildState{
		constants.BuildStatePreparing,
		constants.BuildStateRunning,
		constants.BuildStateClassifying,
		constants.BuildStateCleaningUp,
		constants.BuildStateSucceeded,
	}
	for _, next := range path {
		require.NoError(t, e.transition(next))
		assert.Equal(t, next, e.state)
	}
	assert.True(t, e.state.IsTerminal())
}

func TestExecution_RejectsInvalidTransition(t *testing.T) {
	t.Parallel()

	e := newExecution(zerolog.Nop())

	err := e.transition(constants.BuildStateRunning)
	require.Error(t, err)
	assert.ErrorIs(t, err, pandaerrors.ErrInvalidState)
	assert.Equal(t, constants.BuildStateIdle, e.state, "state unchanged after rejected transition")
}

func TestExecution_RejectsLeavingTerminal(t *testing.T) {
	t.Parallel()

	e := newExecution(zerolog.Nop())
	require.NoError(t, e.transition(constants.BuildStatePreparing))
	require.NoError(t, e.transition(constants.BuildStateCleaningUp))
	require.NoError(t, e.transition(constants.BuildStateFailed))

	err := e.transition(constants.BuildStatePreparing)
	require.Error(t, err)
	assert.ErrorIs(t, err, pandaerrors.ErrInvalidState)
}

func TestExecution_ConcludeFromPreparing(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{}
	ws := &domain.Workspace{Temporary: true}

	e := newExecution(zerolog.Nop())
	require.NoError(t, e.transition(constants.BuildStatePreparing))

	e.conclude(context.Background(), manager, ws, false)

	assert.Equal(t, constants.BuildStateFailed, e.state)
	assert.Equal(t, 1, manager.cleanupCalls)
	assert.Same(t, ws, manager.cleanedWith)
}

func TestExecution_ConcludeSuccess(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{}

	e := newExecution(zerolog.Nop())
	require.NoError(t, e.transition(constants.BuildStatePreparing))
	require.NoError(t, e.transition(constants.BuildStateRunning))
	require.NoError(t, e.transition(constants.BuildStateClassifying))

	e.conclude(context.Background(), manager, nil, true)

	assert.Equal(t, constants.BuildStateSucceeded, e.state)
	assert.Equal(t, 1, manager.cleanupCalls)
}
