package orchestrator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/workspace"
)

// execution tracks one request's pass through the build lifecycle. A fresh
// execution is created per operation; the Service itself stays reusable.
type execution struct {
	state  constants.BuildState
	logger zerolog.Logger
}

func newExecution(logger zerolog.Logger) *execution {
	return &execution{
		state:  constants.BuildStateIdle,
		logger: logger,
	}
}

// transition validates and applies a lifecycle state change.
// Returns wrapped ErrInvalidState when the move is not allowed.
func (e *execution) transition(to constants.BuildState) error {
	if !e.state.CanTransition(to) {
		return pandaerrors.Wrapf(pandaerrors.ErrInvalidState, "cannot transition from %s to %s", e.state, to)
	}

	e.logger.Debug().
		Str("from", e.state.String()).
		Str("to", to.String()).
		Msg("build state transition")

	e.state = to
	return nil
}

// conclude walks the execution through cleanup into its terminal state and
// releases the workspace. The operation outcome is already decided when this
// runs, so transition errors here indicate a lifecycle bug; they are logged
// and never returned.
func (e *execution) conclude(ctx context.Context, manager workspace.Manager, ws *domain.Workspace, succeeded bool) {
	if err := e.transition(constants.BuildStateCleaningUp); err != nil {
		e.logger.Error().Err(err).Msg("lifecycle violation entering cleanup")
	}

	manager.Cleanup(ctx, ws)

	terminal := constants.BuildStateFailed
	if succeeded {
		terminal = constants.BuildStateSucceeded
	}
	if err := e.transition(terminal); err != nil {
		e.logger.Error().Err(err).Msg("lifecycle violation entering terminal state")
	}
}
