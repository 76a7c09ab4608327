package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/constants"
)

func TestRunInit_WritesProjectConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	err := runInit(context.Background(), newTestCommand(), &buf, false, false)
	require.NoError(t, err)

	path := filepath.Join(".panda", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, constants.DefaultToolchainPath, cfg.Toolchain.Path)
	assert.Equal(t, constants.CompileModeSingleFile.String(), cfg.Build.Mode)
	assert.Equal(t, constants.DefaultCompletionMarkers, cfg.Build.Markers)
	assert.Contains(t, buf.String(), "Wrote")
}

func TestRunInit_RefusesToOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	require.NoError(t, runInit(context.Background(), newTestCommand(), &buf, false, false))

	err := runInit(context.Background(), newTestCommand(), &buf, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunInit_ForceOverwrites(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	require.NoError(t, runInit(context.Background(), newTestCommand(), &buf, false, false))
	require.NoError(t, runInit(context.Background(), newTestCommand(), &buf, false, true))
}

func TestRunInit_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runInit(ctx, newTestCommand(), &buf, false, false)
	require.ErrorIs(t, err, context.Canceled)
}
