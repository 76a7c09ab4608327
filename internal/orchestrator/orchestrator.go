// Package orchestrator coordinates one build or flash operation end to end:
// workspace staging, toolchain execution with live output classification,
// result assembly, and guaranteed cleanup.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/diagnostics, internal/toolchain, internal/workspace, std lib
//   - MUST NOT import: internal/cli, internal/tui, internal/config
package orchestrator

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/diagnostics"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
	"github.com/TomShaoquan/arduino-panda/internal/workspace"
)

// ProgressSink receives coarse stage estimates while the toolchain runs.
// Called from the output pump goroutines; implementations must be fast and
// must not block.
type ProgressSink func(ev domain.ProgressEvent)

// LogSink receives every raw output line from the toolchain, both streams
// interleaved in arrival order. Same calling constraints as ProgressSink.
type LogSink func(line string)

// ExecutorFactory builds the process executor for one operation. The default
// wires a StreamingExecutor so output is classified while the process runs;
// tests substitute scripted executors.
type ExecutorFactory func(onStdout, onStderr toolchain.LineFunc) toolchain.Executor

// Service runs compile, upload, and deploy operations. A Service is reusable
// and safe to keep for many requests; each call gets its own execution state
// machine, collector, and executor.
type Service struct {
	cli             *toolchain.CLI
	manager         workspace.Manager
	markers         []string
	progressSink    ProgressSink
	logSink         LogSink
	logger          zerolog.Logger
	executorFactory ExecutorFactory
}

// Option is a functional option for configuring Service.
type Option func(*Service)

// WithProgressSink attaches a sink for stage progress events. The sink
// reference is explicit and scoped to this Service — there is no
// process-global channel.
func WithProgressSink(sink ProgressSink) Option {
	return func(s *Service) {
		s.progressSink = sink
	}
}

// WithLogSink attaches a sink for raw toolchain output lines.
func WithLogSink(sink LogSink) Option {
	return func(s *Service) {
		s.logSink = sink
	}
}

// WithMarkers overrides the completion marker set deploy looks for. An empty
// set keeps the built-in defaults.
func WithMarkers(markers []string) Option {
	return func(s *Service) {
		s.markers = append([]string(nil), markers...)
	}
}

// WithLogger sets the logger for lifecycle tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithExecutorFactory replaces how per-operation executors are built.
// Tests use this to script toolchain behavior without subprocesses.
func WithExecutorFactory(factory ExecutorFactory) Option {
	return func(s *Service) {
		s.executorFactory = factory
	}
}

// New creates a Service on top of the given toolchain CLI and workspace
// manager.
func New(cli *toolchain.CLI, manager workspace.Manager, opts ...Option) *Service {
	s := &Service{
		cli:     cli,
		manager: manager,
		logger:  zerolog.Nop(),
	}
	s.executorFactory = func(onStdout, onStderr toolchain.LineFunc) toolchain.Executor {
		ex := toolchain.NewStreamingExecutor(onStdout, onStderr)
		ex.Logger = s.logger
		return ex
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compile builds the sketch without touching a device.
func (s *Service) Compile(ctx context.Context, req *domain.BuildRequest) (*domain.OperationResult, error) {
	return s.run(ctx, req, constants.OperationCompile)
}

// Upload flashes a previously built artifact to the device on req.Port.
func (s *Service) Upload(ctx context.Context, req *domain.BuildRequest) (*domain.OperationResult, error) {
	return s.run(ctx, req, constants.OperationUpload)
}

// Deploy compiles and flashes in a single toolchain invocation. Success
// requires a device acknowledgement marker in the output in addition to a
// clean build.
func (s *Service) Deploy(ctx context.Context, req *domain.BuildRequest) (*domain.OperationResult, error) {
	return s.run(ctx, req, constants.OperationDeploy)
}

// run drives one operation through the build lifecycle.
//
// The returned result is non-nil whenever the toolchain process actually
// ran, even on failure — callers always get the captured output and
// diagnostics. Infrastructure failures before the process runs (validation,
// workspace staging, launch) return a nil result and the wrapped sentinel.
// Cleanup runs on every path before return.
func (s *Service) run(ctx context.Context, req *domain.BuildRequest, op constants.Operation) (result *domain.OperationResult, opErr error) {
	if req == nil {
		return nil, pandaerrors.Wrap(pandaerrors.ErrEmptyValue, "build request")
	}

	// Work on a copy so the caller's request is never mutated.
	r := *req
	r.Operation = op
	if r.ID == "" {
		r.ID = "req-" + uuid.New().String()[:8]
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	logger := s.logger.With().
		Str("request_id", r.ID).
		Str("operation", op.String()).
		Logger()
	exec := newExecution(logger)
	start := time.Now()

	if err := exec.transition(constants.BuildStatePreparing); err != nil {
		return nil, err
	}
	logger.Info().Str("sketch", r.SketchName()).Str("source", r.SourcePath).Msg("preparing workspace")

	// From here on, cleanup is owed however run exits — error returns and
	// panics alike. conclude releases the staging workspace and walks the
	// lifecycle into its terminal state; the result (when one exists) picks
	// up that state afterwards.
	var ws *domain.Workspace
	defer func() {
		exec.conclude(ctx, s.manager, ws, result != nil && result.Succeeded)
		if result != nil {
			result.State = exec.state
		}
	}()

	var err error
	ws, err = s.manager.Prepare(ctx, &r)
	if err != nil {
		return nil, err
	}

	if err := exec.transition(constants.BuildStateRunning); err != nil {
		return nil, err
	}

	collector := diagnostics.NewCollector(s.markers)
	feed := s.feedFunc(collector)
	executor := s.executorFactory(feed, feed)

	args := commandArgs(&r, ws)
	logger.Info().Strs("args", args).Msg("invoking toolchain")

	stdout, stderr, runErr := s.cli.RunWith(ctx, executor, args)
	if runErr != nil && !stderrors.Is(runErr, pandaerrors.ErrProcessExecution) {
		// The process never produced a classifiable outcome: launch
		// failure or cancellation.
		return nil, runErr
	}

	if err := exec.transition(constants.BuildStateClassifying); err != nil {
		return nil, err
	}

	result, opErr = classify(&r, ws, collector, stdout, stderr, runErr)
	result.DurationMs = time.Since(start).Milliseconds()

	if result.Succeeded {
		logger.Info().
			Int("warnings", result.Warnings).
			Str("artifact", result.ArtifactPath).
			Int64("duration_ms", result.DurationMs).
			Msg("operation succeeded")
	} else {
		logger.Warn().
			Int("errors", result.Errors).
			Int("exit_code", result.ExitCode).
			Int64("duration_ms", result.DurationMs).
			Msg("operation failed")
	}

	return result, opErr
}

// feedFunc builds the line callback shared by both stream pumps: every line
// goes to the collector and the log sink, and lines that look like stage
// announcements become progress events.
func (s *Service) feedFunc(collector *diagnostics.Collector) toolchain.LineFunc {
	return func(line string) {
		collector.Feed(line)
		if s.logSink != nil {
			s.logSink(line)
		}
		if s.progressSink != nil {
			if ev := diagnostics.ClassifyProgress(line); ev != nil {
				s.progressSink(*ev)
			}
		}
	}
}

// commandArgs computes the toolchain invocation for the staged request.
func commandArgs(req *domain.BuildRequest, ws *domain.Workspace) []string {
	switch req.Operation {
	case constants.OperationCompile:
		return toolchain.CompileArgs(req.FQBN, ws.BuildOutputPath, ws.StagedSourcePath)
	case constants.OperationDeploy:
		return toolchain.DeployArgs(req.FQBN, ws.BuildOutputPath, req.Port, ws.StagedSourcePath)
	case constants.OperationUpload:
		return toolchain.UploadArgs(req.FQBN, req.Port, ws.StagedSourcePath, req.ImportFile)
	default:
		// Unreachable: run() stamps a known operation before validation.
		return nil
	}
}
