// Package workspace prepares and tears down the staged build area for one
// operation.
//
// In single-file mode the sketch source is copied into a sketch-shaped
// staging directory (`<root>/.panda/staging/<sketch>/<sketch>.ino`) because
// the toolchain requires the containing directory to match the sketch name.
// Multi-file sketches are compiled in place.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/toolchain, internal/orchestrator, internal/cli
package workspace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

// Manager stages sketch sources and guarantees their removal afterwards.
type Manager interface {
	// Prepare stages the request's source and creates its build output
	// directory. Missing sources return ErrSketchNotFound; all other
	// failures wrap ErrWorkspace.
	Prepare(ctx context.Context, req *domain.BuildRequest) (*domain.Workspace, error)

	// Cleanup removes staged files. Best-effort and log-only: it has no
	// error return so a cleanup problem can never mask the operation
	// result, and it runs to completion even on a canceled context.
	Cleanup(ctx context.Context, ws *domain.Workspace)
}

// DefaultManager implements Manager against the local filesystem.
type DefaultManager struct {
	logger zerolog.Logger
}

// NewManager creates a new DefaultManager.
func NewManager(logger zerolog.Logger) *DefaultManager {
	return &DefaultManager{logger: logger}
}

// Prepare stages the source for the toolchain.
//
// Single-file mode: any leftover staging subtree for this sketch is removed
// first (an interrupted earlier run must not fail the next one), a fresh
// `<root>/.panda/staging/<sketch>/` is created, and the source is copied in
// as `<sketch>.ino`. Multi-file mode stages nothing and hands the original
// path through.
//
// Both modes create the per-sketch build output directory
// (`<OutputDir>/<sketch>`) with parents.
func (m *DefaultManager) Prepare(ctx context.Context, req *domain.BuildRequest) (*domain.Workspace, error) {
	// Check for cancellation at entry
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	sourcePath, err := filepath.Abs(req.SourcePath)
	if err != nil {
		return nil, pandaerrors.Wrapf(pandaerrors.ErrWorkspace, "resolving %s: %v", req.SourcePath, err)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, pandaerrors.Wrapf(pandaerrors.ErrSketchNotFound, "%s", sourcePath)
	}

	if req.Mode == constants.CompileModeSingleFile {
		if info.IsDir() {
			return nil, pandaerrors.Wrapf(pandaerrors.ErrNotASketch,
				"%s is a directory; single-file mode needs a %s file", sourcePath, constants.SketchExtension)
		}
		return m.prepareSingleFile(req, sourcePath)
	}

	if !info.IsDir() {
		// Tolerate a file path in multi-file mode by compiling its
		// containing directory.
		sourcePath = filepath.Dir(sourcePath)
	}
	return m.prepareMultiFile(req, sourcePath)
}

// prepareSingleFile stages a lone sketch file into a sketch-shaped directory.
func (m *DefaultManager) prepareSingleFile(req *domain.BuildRequest, sourcePath string) (*domain.Workspace, error) {
	root := filepath.Dir(sourcePath)
	sketch := req.SketchName()

	stagingDir := filepath.Join(root, constants.PandaHome, constants.StagingDir, sketch)

	// Clear leftovers from an interrupted earlier run, then recreate
	if err := os.RemoveAll(stagingDir); err != nil {
		return nil, pandaerrors.Wrapf(pandaerrors.ErrWorkspace, "clearing stale staging %s: %v", stagingDir, err)
	}
	if err := os.MkdirAll(stagingDir, 0o750); err != nil {
		return nil, pandaerrors.Wrapf(pandaerrors.ErrWorkspace, "creating staging %s: %v", stagingDir, err)
	}

	stagedSource := filepath.Join(stagingDir, sketch+constants.SketchExtension)
	if err := copyFile(sourcePath, stagedSource); err != nil {
		return nil, pandaerrors.Wrapf(pandaerrors.ErrWorkspace, "staging %s: %v", sourcePath, err)
	}

	buildOutput, err := m.ensureBuildOutput(req, sketch)
	if err != nil {
		return nil, err
	}

	m.logger.Debug().
		Str("staged", stagedSource).
		Str("build_output", buildOutput).
		Msg("workspace prepared")

	return &domain.Workspace{
		Root:             root,
		StagedSourcePath: stagedSource,
		BuildOutputPath:  buildOutput,
		Temporary:        true,
	}, nil
}

// prepareMultiFile compiles the sketch directory in place; only the build
// output directory is created.
func (m *DefaultManager) prepareMultiFile(req *domain.BuildRequest, sketchDir string) (*domain.Workspace, error) {
	buildOutput, err := m.ensureBuildOutput(req, req.SketchName())
	if err != nil {
		return nil, err
	}

	m.logger.Debug().
		Str("sketch_dir", sketchDir).
		Str("build_output", buildOutput).
		Msg("workspace prepared in place")

	return &domain.Workspace{
		Root:             sketchDir,
		StagedSourcePath: sketchDir,
		BuildOutputPath:  buildOutput,
		Temporary:        false,
	}, nil
}

// ensureBuildOutput creates the per-sketch build output directory.
func (m *DefaultManager) ensureBuildOutput(req *domain.BuildRequest, sketch string) (string, error) {
	buildOutput := filepath.Join(req.OutputDir, sketch)
	if err := os.MkdirAll(buildOutput, 0o750); err != nil {
		return "", pandaerrors.Wrapf(pandaerrors.ErrWorkspace, "creating build output %s: %v", buildOutput, err)
	}
	return buildOutput, nil
}

// Cleanup removes the staging sketch directory when the workspace holds a
// staged copy. Failures are logged at warn and swallowed; the context is
// deliberately ignored so cleanup still runs after cancellation.
func (m *DefaultManager) Cleanup(_ context.Context, ws *domain.Workspace) {
	if ws == nil || !ws.Temporary {
		return
	}

	stagingSketchDir := filepath.Dir(ws.StagedSourcePath)
	if err := os.RemoveAll(stagingSketchDir); err != nil {
		m.logger.Warn().
			Err(err).
			Str("path", stagingSketchDir).
			Msg("failed to remove staging directory")
		return
	}

	m.logger.Debug().Str("path", stagingSketchDir).Msg("staging directory removed")
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src) //#nosec G304 -- src is the user's own sketch path
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}
