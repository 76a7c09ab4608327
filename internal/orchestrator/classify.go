package orchestrator

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/diagnostics"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
)

// classify turns the captured process outcome into a terminal
// OperationResult and the error callers check with errors.Is.
//
// Success requires a zero exit and no error-severity diagnostics; deploy
// additionally requires a completion marker in the captured stream. On
// failure the result still carries everything the process said — classified
// diagnostics are the primary failure signal, the exit code is secondary.
func classify(req *domain.BuildRequest, ws *domain.Workspace, collector *diagnostics.Collector, stdout, stderr []byte, runErr error) (*domain.OperationResult, error) {
	result := &domain.OperationResult{
		ID:          req.ID,
		Operation:   req.Operation,
		Diagnostics: collector.Diagnostics(),
		Errors:      collector.ErrorCount(),
		Warnings:    collector.WarningCount(),
		Stdout:      string(stdout),
		Stderr:      string(stderr),
	}

	var execErr *toolchain.ExecError
	if stderrors.As(runErr, &execErr) {
		result.ExitCode = execErr.ExitCode
	}

	err := classificationError(req.Operation, collector, runErr)
	if err != nil {
		return result, err
	}

	result.Succeeded = true
	if req.Operation != constants.OperationUpload {
		result.ArtifactPath = resolveArtifact(ws.BuildOutputPath, req.SketchName())
	}
	return result, nil
}

// classificationError picks the failure sentinel for the operation, or nil
// on success.
//
// Precedence: error diagnostics outrank everything (they are what the user
// acts on); for deploy a missing completion marker outranks the bare exit
// code; a non-zero exit with no classified errors fails through the
// ErrProcessExecution chain carried by runErr.
func classificationError(op constants.Operation, collector *diagnostics.Collector, runErr error) error {
	if collector.HasErrors() {
		sentinel := pandaerrors.ErrUploadFailed
		if op != constants.OperationUpload {
			// Deploy failures with compile diagnostics never reached the
			// device; report them as compile failures.
			sentinel = pandaerrors.ErrCompileFailed
		}
		return pandaerrors.Wrapf(sentinel, "%d error diagnostic(s)", collector.ErrorCount())
	}

	if op == constants.OperationDeploy && !collector.MarkerSeen() {
		if runErr != nil {
			return fmt.Errorf("no completion marker in output: %v: %w", runErr, pandaerrors.ErrUploadFailed)
		}
		return pandaerrors.Wrap(pandaerrors.ErrUploadFailed, "no completion marker in output")
	}

	if runErr != nil {
		return fmt.Errorf("%s exited without classifiable diagnostics: %w", op, runErr)
	}

	return nil
}

// resolveArtifact locates the built firmware under the build output
// directory: the toolchain names artifacts <sketch>.ino.<ext>. Falls back to
// the directory itself when no known artifact exists.
func resolveArtifact(buildOutputPath, sketchName string) string {
	base := sketchName + constants.SketchExtension
	for _, ext := range constants.ArtifactExtensions {
		candidate := filepath.Join(buildOutputPath, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return buildOutputPath
}
