package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

// writeSketch creates a sketch file under dir and returns its path.
func writeSketch(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func singleFileRequest(source, outputDir string) *domain.BuildRequest {
	return &domain.BuildRequest{
		ID:         "req-test",
		Operation:  constants.OperationCompile,
		SourcePath: source,
		FQBN:       "arduino:avr:uno",
		Mode:       constants.CompileModeSingleFile,
		OutputDir:  outputDir,
	}
}

func TestPrepare_SingleFile_StagesSketch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeSketch(t, dir, "blink.ino", "void setup() {}\nvoid loop() {}\n")
	outputDir := filepath.Join(dir, ".panda", "build")

	mgr := NewManager(zerolog.Nop())
	ws, err := mgr.Prepare(context.Background(), singleFileRequest(source, outputDir))
	require.NoError(t, err)

	assert.Equal(t, dir, ws.Root)
	assert.True(t, ws.Temporary)

	// Staged copy lives in a sketch-shaped directory
	expectedStaged := filepath.Join(dir, ".panda", "staging", "blink", "blink.ino")
	assert.Equal(t, expectedStaged, ws.StagedSourcePath)

	data, err := os.ReadFile(expectedStaged) //nolint:gosec // Test-owned path
	require.NoError(t, err)
	assert.Contains(t, string(data), "void setup()")

	// Build output directory created with the sketch subdirectory
	assert.Equal(t, filepath.Join(outputDir, "blink"), ws.BuildOutputPath)
	assert.DirExists(t, ws.BuildOutputPath)
}

func TestPrepare_SingleFile_IdempotentAfterLeftovers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeSketch(t, dir, "blink.ino", "void loop() {}\n")
	outputDir := filepath.Join(dir, "out")
	req := singleFileRequest(source, outputDir)

	mgr := NewManager(zerolog.Nop())

	// First prepare, then drop a stale file into the staging dir to
	// simulate an interrupted run
	ws1, err := mgr.Prepare(context.Background(), req)
	require.NoError(t, err)
	stale := filepath.Join(filepath.Dir(ws1.StagedSourcePath), "stale.o")
	require.NoError(t, os.WriteFile(stale, []byte("junk"), 0o600))

	// Second prepare must clear the leftovers and succeed
	ws2, err := mgr.Prepare(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ws1.StagedSourcePath, ws2.StagedSourcePath)
	assert.NoFileExists(t, stale, "stale staging content should be cleared")
	assert.FileExists(t, ws2.StagedSourcePath)
}

func TestPrepare_SingleFile_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	req := singleFileRequest(filepath.Join(dir, "missing.ino"), filepath.Join(dir, "out"))

	mgr := NewManager(zerolog.Nop())
	_, err := mgr.Prepare(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, pandaerrors.ErrSketchNotFound)
}

func TestPrepare_SingleFile_DirectoryRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sketchDir := filepath.Join(dir, "blink.ino")
	require.NoError(t, os.MkdirAll(sketchDir, 0o750))

	req := singleFileRequest(sketchDir, filepath.Join(dir, "out"))

	mgr := NewManager(zerolog.Nop())
	_, err := mgr.Prepare(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, pandaerrors.ErrNotASketch)
}

func TestPrepare_MultiFile_CompilesInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sketchDir := filepath.Join(dir, "weather")
	require.NoError(t, os.MkdirAll(sketchDir, 0o750))
	writeSketch(t, sketchDir, "weather.ino", "void loop() {}\n")
	writeSketch(t, sketchDir, "sensors.h", "#pragma once\n")

	outputDir := filepath.Join(dir, "out")
	req := &domain.BuildRequest{
		ID:         "req-multi",
		Operation:  constants.OperationCompile,
		SourcePath: sketchDir,
		FQBN:       "arduino:avr:uno",
		Mode:       constants.CompileModeMultiFile,
		OutputDir:  outputDir,
	}

	mgr := NewManager(zerolog.Nop())
	ws, err := mgr.Prepare(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, sketchDir, ws.StagedSourcePath, "multi-file mode hands the original path through")
	assert.False(t, ws.Temporary)
	assert.DirExists(t, filepath.Join(outputDir, "weather"))

	// Nothing staged
	assert.NoDirExists(t, filepath.Join(sketchDir, ".panda", "staging"))
}

func TestPrepare_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := NewManager(zerolog.Nop())
	_, err := mgr.Prepare(ctx, singleFileRequest("/tmp/x.ino", "/tmp/out"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCleanup_RemovesStagedDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeSketch(t, dir, "blink.ino", "void loop() {}\n")

	mgr := NewManager(zerolog.Nop())
	ws, err := mgr.Prepare(context.Background(), singleFileRequest(source, filepath.Join(dir, "out")))
	require.NoError(t, err)
	require.FileExists(t, ws.StagedSourcePath)

	mgr.Cleanup(context.Background(), ws)

	assert.NoDirExists(t, filepath.Dir(ws.StagedSourcePath), "staging sketch dir removed")
	assert.FileExists(t, source, "original source untouched")
	assert.DirExists(t, ws.BuildOutputPath, "build output preserved")
}

func TestCleanup_LeavesMultiFileAlone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sketchDir := filepath.Join(dir, "weather")
	require.NoError(t, os.MkdirAll(sketchDir, 0o750))
	writeSketch(t, sketchDir, "weather.ino", "void loop() {}\n")

	ws := &domain.Workspace{
		Root:             sketchDir,
		StagedSourcePath: sketchDir,
		BuildOutputPath:  filepath.Join(dir, "out", "weather"),
		Temporary:        false,
	}

	mgr := NewManager(zerolog.Nop())
	mgr.Cleanup(context.Background(), ws)

	assert.DirExists(t, sketchDir, "non-temporary workspace is never removed")
}

func TestCleanup_NilWorkspace(t *testing.T) {
	t.Parallel()

	mgr := NewManager(zerolog.Nop())
	mgr.Cleanup(context.Background(), nil) // must not panic
}

func TestCleanup_RunsOnCanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := writeSketch(t, dir, "blink.ino", "void loop() {}\n")

	mgr := NewManager(zerolog.Nop())
	ws, err := mgr.Prepare(context.Background(), singleFileRequest(source, filepath.Join(dir, "out")))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mgr.Cleanup(ctx, ws)

	assert.NoDirExists(t, filepath.Dir(ws.StagedSourcePath), "cleanup ignores cancellation")
}
