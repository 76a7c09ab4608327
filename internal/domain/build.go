// Package domain provides shared domain types for the panda build orchestrator.
package domain

import (
	"path/filepath"
	"strings"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

// BuildRequest describes one compile, upload, or deploy operation.
// A request is immutable once handed to the orchestrator; each invocation
// gets a fresh request even when the inputs repeat.
//
// Example JSON representation:
//
//	{
//	    "id": "req-550e8400",
//	    "operation": "deploy",
//	    "source_path": "/home/dev/sketches/blink.ino",
//	    "fqbn": "arduino:avr:uno",
//	    "port": "/dev/ttyUSB0",
//	    "mode": "single-file",
//	    "output_dir": "/home/dev/sketches/.panda/build"
//	}
type BuildRequest struct {
	// ID correlates log lines and results for one operation.
	// Assigned by the orchestrator when empty.
	ID string `json:"id"`

	// Operation selects compile, upload, or deploy.
	Operation constants.Operation `json:"operation"`

	// SourcePath is the sketch file (single-file mode) or sketch
	// directory (multi-file mode) to operate on.
	SourcePath string `json:"source_path"`

	// FQBN is the fully qualified board name, e.g. "arduino:avr:uno".
	FQBN string `json:"fqbn"`

	// Port is the device address used by upload and deploy,
	// e.g. "/dev/ttyUSB0". Ignored by compile.
	Port string `json:"port,omitempty"`

	// Mode selects how the source is presented to the toolchain.
	Mode constants.CompileMode `json:"mode"`

	// OutputDir is the directory that receives build output. The
	// per-sketch subdirectory is created beneath it.
	OutputDir string `json:"output_dir"`

	// ImportFile optionally names a prebuilt artifact for upload,
	// bypassing the build output directory lookup.
	ImportFile string `json:"import_file,omitempty"`
}

// SketchName derives the sketch name from the source path: the file base
// without extension in single-file mode, the directory base otherwise.
func (r *BuildRequest) SketchName() string {
	base := filepath.Base(r.SourcePath)
	if r.Mode == constants.CompileModeSingleFile {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

// Validate checks that the request carries everything its operation needs.
// Filesystem existence is the workspace manager's concern; this only
// validates the value itself.
func (r *BuildRequest) Validate() error {
	if r.SourcePath == "" {
		return pandaerrors.Wrap(pandaerrors.ErrEmptyValue, "source path")
	}
	if r.FQBN == "" {
		return pandaerrors.ErrMissingBoard
	}
	switch r.Mode {
	case constants.CompileModeSingleFile:
		if !strings.EqualFold(filepath.Ext(r.SourcePath), constants.SketchExtension) {
			return pandaerrors.Wrapf(pandaerrors.ErrNotASketch, "%s is not a %s file", r.SourcePath, constants.SketchExtension)
		}
	case constants.CompileModeMultiFile:
		// Any directory is acceptable; the toolchain validates its layout.
	default:
		return pandaerrors.Wrapf(pandaerrors.ErrInvalidCompileMode, "%q", r.Mode)
	}
	if r.Operation != constants.OperationCompile && r.Port == "" {
		return pandaerrors.ErrMissingPort
	}
	if r.OutputDir == "" {
		return pandaerrors.Wrap(pandaerrors.ErrEmptyValue, "output directory")
	}
	return nil
}

// Workspace describes the staged build area for one request.
//
// Example JSON representation:
//
//	{
//	    "root": "/home/dev/sketches",
//	    "staged_source_path": "/home/dev/sketches/.panda/staging/blink/blink.ino",
//	    "build_output_path": "/home/dev/sketches/.panda/build/blink",
//	    "temporary": true
//	}
type Workspace struct {
	// Root is the sketch workspace root the staging area lives under.
	Root string `json:"root"`

	// StagedSourcePath is the path handed to the toolchain. In
	// multi-file mode this equals the original source path.
	StagedSourcePath string `json:"staged_source_path"`

	// BuildOutputPath is the per-sketch build output directory.
	BuildOutputPath string `json:"build_output_path"`

	// Temporary reports whether StagedSourcePath points at a staged
	// copy that cleanup must remove.
	Temporary bool `json:"temporary"`
}

// Diagnostic is one classified line of toolchain output.
//
// Example JSON representation:
//
//	{
//	    "file": "blink.ino",
//	    "line": 4,
//	    "column": 1,
//	    "severity": "error",
//	    "message": "error: expected ';' before '}' token"
//	}
type Diagnostic struct {
	// File is the source path the toolchain reported. Empty when the
	// line matched only by severity keyword.
	File string `json:"file,omitempty"`

	// Line is the 1-based source line, 0 when unknown.
	Line int `json:"line,omitempty"`

	// Column is the 1-based source column, 0 when unknown.
	Column int `json:"column,omitempty"`

	// Severity is error or warning.
	Severity constants.Severity `json:"severity"`

	// Message is the diagnostic text, including the severity prefix for
	// fully parsed lines, or the whole raw line for keyword matches.
	Message string `json:"message"`
}

// ProgressEvent reports a coarse build stage with an estimated percentage.
//
// Example JSON representation:
//
//	{
//	    "stage": "Compiling",
//	    "percent": 30
//	}
type ProgressEvent struct {
	// Stage is the human-readable stage label.
	Stage string `json:"stage"`

	// Percent is the estimated completion in [0,100].
	Percent int `json:"percent"`
}

// OperationResult is the terminal outcome of one orchestrator operation.
// It is never mutated after construction.
//
// Example JSON representation:
//
//	{
//	    "id": "req-550e8400",
//	    "operation": "compile",
//	    "succeeded": false,
//	    "state": "failed",
//	    "diagnostics": [...],
//	    "errors": 1,
//	    "warnings": 2,
//	    "exit_code": 1,
//	    "artifact_path": "",
//	    "duration_ms": 2381
//	}
type OperationResult struct {
	// ID echoes the request ID.
	ID string `json:"id"`

	// Operation echoes the request operation.
	Operation constants.Operation `json:"operation"`

	// Succeeded reports whether the operation completed cleanly.
	Succeeded bool `json:"succeeded"`

	// State is the terminal build state (succeeded or failed).
	State constants.BuildState `json:"state"`

	// Diagnostics lists classified output lines in order of appearance.
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Errors counts error-severity diagnostics.
	Errors int `json:"errors"`

	// Warnings counts warning-severity diagnostics.
	Warnings int `json:"warnings"`

	// ExitCode is the toolchain process exit code. Zero when the process
	// never launched; consult the returned error in that case.
	ExitCode int `json:"exit_code"`

	// Stdout is the captured standard output of the toolchain.
	Stdout string `json:"stdout,omitempty"`

	// Stderr is the captured standard error of the toolchain.
	Stderr string `json:"stderr,omitempty"`

	// ArtifactPath locates the built firmware after a successful compile
	// or deploy. Empty on failure and for plain uploads.
	ArtifactPath string `json:"artifact_path,omitempty"`

	// DurationMs is the wall-clock duration of the operation.
	DurationMs int64 `json:"duration_ms"`
}
