// Package cli provides the command-line interface for panda.
// This file provides the shared plumbing for the compile, upload, and
// deploy commands: config resolution, request construction, orchestrator
// wiring, and result rendering.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/ctxutil"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/orchestrator"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
	"github.com/TomShaoquan/arduino-panda/internal/tui"
	"github.com/TomShaoquan/arduino-panda/internal/workspace"
)

// OperationRunner is the orchestrator surface the build commands drive.
// Used for dependency injection in tests.
type OperationRunner interface {
	Compile(ctx context.Context, req *domain.BuildRequest) (*domain.OperationResult, error)
	Upload(ctx context.Context, req *domain.BuildRequest) (*domain.OperationResult, error)
	Deploy(ctx context.Context, req *domain.BuildRequest) (*domain.OperationResult, error)
}

// buildFlags holds the per-operation flag values shared by compile, upload,
// and deploy. Empty values fall back to the loaded configuration.
type buildFlags struct {
	// FQBN overrides board.fqbn.
	FQBN string
	// Port overrides board.port.
	Port string
	// Mode overrides build.mode (single-file or multi-file).
	Mode string
	// BuildPath overrides build.output.
	BuildPath string
	// Input names a prebuilt artifact for upload (-i).
	Input string
}

// overrides maps the flag values onto a partial Config for
// config.LoadWithOverrides. Zero values are ignored there, so only flags
// the user actually set take precedence.
func (f *buildFlags) overrides() *config.Config {
	return &config.Config{
		Board: config.BoardConfig{
			FQBN: f.FQBN,
			Port: f.Port,
		},
		Build: config.BuildConfig{
			Mode:   f.Mode,
			Output: f.BuildPath,
		},
	}
}

// addBoardFlags registers the board selection flags common to all three
// build commands.
func addBoardFlags(cmd *cobra.Command, flags *buildFlags) {
	cmd.Flags().StringVarP(&flags.FQBN, "fqbn", "b", "", "fully qualified board name, e.g. arduino:avr:uno")
}

// addPortFlag registers the device port flag used by upload and deploy.
func addPortFlag(cmd *cobra.Command, flags *buildFlags) {
	cmd.Flags().StringVarP(&flags.Port, "port", "p", "", "device port, e.g. /dev/ttyUSB0")
}

// addBuildFlags registers the flags that shape the build itself, used by
// compile and deploy.
func addBuildFlags(cmd *cobra.Command, flags *buildFlags) {
	cmd.Flags().StringVar(&flags.Mode, "mode", "", "compile mode (single-file|multi-file)")
	cmd.Flags().StringVar(&flags.BuildPath, "build-path", "", "build output directory template (${root} expands to the sketch root)")
}

// resolveRequest builds the BuildRequest for one command invocation from
// the merged configuration and the sketch argument.
//
// The compile mode comes from config unless the source is an existing
// directory, which always means a multi-file sketch. The build output
// template is expanded against the sketch workspace root: the containing
// directory for a single file, the sketch directory itself otherwise.
func resolveRequest(cfg *config.Config, sourceArg string, importFile string) (*domain.BuildRequest, error) {
	abs, err := filepath.Abs(sourceArg)
	if err != nil {
		return nil, pandaerrors.Wrapf(err, "failed to resolve sketch path %s", sourceArg)
	}

	mode := constants.CompileMode(cfg.Build.Mode)
	if info, statErr := os.Stat(abs); statErr == nil && info.IsDir() {
		mode = constants.CompileModeMultiFile
	}

	root := filepath.Dir(abs)
	if mode == constants.CompileModeMultiFile {
		root = abs
	}

	return &domain.BuildRequest{
		SourcePath: abs,
		FQBN:       cfg.Board.FQBN,
		Port:       cfg.Board.Port,
		Mode:       mode,
		OutputDir:  config.ExpandOutput(cfg.Build.Output, root),
		ImportFile: importFile,
	}, nil
}

// runOperation executes one build command with production dependencies:
// merged config, a real toolchain CLI, a filesystem workspace manager, and
// an orchestrator whose sinks feed the terminal spinner.
func runOperation(ctx context.Context, cmd *cobra.Command, w io.Writer, op constants.Operation, sourceArg string, flags *buildFlags) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	outputFormat := cmd.Flag("output").Value.String()
	verbose := cmd.Flag("verbose").Value.String() == "true"
	tui.CheckNoColor()

	out := tui.NewOutput(w, outputFormat)

	cfg, err := config.LoadWithOverrides(ctx, flags.overrides())
	if err != nil {
		renderCommandError(out, err)
		return err
	}

	req, err := resolveRequest(cfg, sourceArg, flags.Input)
	if err != nil {
		renderCommandError(out, err)
		return err
	}

	spinner := out.Spinner(ctx, fmt.Sprintf("%s %s", operationLabel(op), req.SketchName()))
	defer spinner.Stop()

	bar := tui.NewProgressBar(tui.DefaultProgressWidth)
	opts := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithMarkers(cfg.Build.Markers),
		orchestrator.WithProgressSink(func(ev domain.ProgressEvent) {
			spinner.Update(bar.StageLine(ev))
		}),
	}
	if verbose {
		opts = append(opts, orchestrator.WithLogSink(func(line string) {
			logger.Debug().Str("stream", "toolchain").Msg(line)
		}))
	}

	tc := toolchain.New(cfg.Toolchain.Path, toolchain.WithLogger(logger))
	mgr := workspace.NewManager(logger)
	runner := orchestrator.New(tc, mgr, opts...)

	result, opErr := executeOperation(ctx, runner, op, req)

	// The spinner owns the output line while the toolchain runs; stop it
	// before any rendering lands on the same stream.
	spinner.Stop()
	return renderOperationResult(out, w, outputFormat, result, opErr)
}

// runOperationWithDeps executes one build operation against an injected
// runner and renders the result. This enables testing with mock runners.
func runOperationWithDeps(ctx context.Context, w io.Writer, outputFormat string, runner OperationRunner, op constants.Operation, req *domain.BuildRequest) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	result, err := executeOperation(ctx, runner, op, req)
	out := tui.NewOutput(w, outputFormat)
	return renderOperationResult(out, w, outputFormat, result, err)
}

// executeOperation dispatches one operation to the runner.
func executeOperation(ctx context.Context, runner OperationRunner, op constants.Operation, req *domain.BuildRequest) (*domain.OperationResult, error) {
	switch op {
	case constants.OperationCompile:
		return runner.Compile(ctx, req)
	case constants.OperationUpload:
		return runner.Upload(ctx, req)
	case constants.OperationDeploy:
		return runner.Deploy(ctx, req)
	default:
		return nil, pandaerrors.Wrapf(pandaerrors.ErrInvalidArgument, "unknown operation %q", op)
	}
}

// renderOperationResult presents the terminal outcome of one operation.
//
// Classified diagnostics are the primary failure signal: they are printed
// before the summary line, and the process exit code only appears inside
// the summary. The returned error preserves the orchestrator's sentinel so
// the exit code logic can classify it.
func renderOperationResult(out tui.Output, w io.Writer, outputFormat string, result *domain.OperationResult, err error) error {
	if result == nil {
		// Infrastructure failure: the toolchain never produced a
		// classifiable outcome.
		renderCommandError(out, err)
		return err
	}

	if outputFormat == OutputJSON {
		if jsonErr := out.JSON(result); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	tui.WriteDiagnostics(w, result.Diagnostics)

	if result.Succeeded {
		out.Success(tui.ResultSummary(result))
		if result.ArtifactPath != "" {
			out.Info("Artifact: " + result.ArtifactPath)
		}
		return nil
	}

	out.Error(err)
	out.Info(tui.ResultSummary(result))
	return err
}

// renderCommandError prints a command-level failure. The output
// implementation resolves the user-facing message and suggested action
// from the error taxonomy.
func renderCommandError(out tui.Output, err error) {
	if err == nil {
		return
	}
	out.Error(err)
}

// operationLabel returns the progress label shown while an operation runs.
func operationLabel(op constants.Operation) string {
	switch op {
	case constants.OperationUpload:
		return "Uploading"
	case constants.OperationDeploy:
		return "Deploying"
	default:
		return "Compiling"
	}
}
