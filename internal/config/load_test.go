package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
)

// clearPandaEnv blanks out any PANDA_ environment variables that could leak
// into a test's viper instance.
func clearPandaEnv(t *testing.T) {
	t.Helper()
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "PANDA_") {
			continue
		}
		key, _, _ := strings.Cut(env, "=")
		t.Setenv(key, "")
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	// Change to a temp directory with no config files
	tempDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	err = os.Chdir(tempDir)
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	clearPandaEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err, "Load should not fail when no config file exists")
	require.NotNil(t, cfg, "Config should not be nil")

	// Verify defaults are applied
	assert.Equal(t, constants.DefaultToolchainPath, cfg.Toolchain.Path, "should use default toolchain path")
	assert.Empty(t, cfg.Board.FQBN, "no board selected by default")
	assert.Empty(t, cfg.Board.Port, "no port selected by default")
	assert.Equal(t, constants.CompileModeSingleFile.String(), cfg.Build.Mode, "should default to single-file mode")
	assert.Equal(t, constants.DefaultBuildOutputTemplate, cfg.Build.Output, "should use default output template")
	assert.Equal(t, constants.DefaultCompletionMarkers, cfg.Build.Markers, "should use default markers")
	assert.Equal(t, DefaultWatchInterval, cfg.Discovery.WatchInterval, "should use default watch interval")
}

func TestLoadFromPaths_ProjectConfigOverridesGlobal(t *testing.T) {
	ctx := context.Background()

	// Create temp directories for configs
	globalDir := t.TempDir()
	projectDir := t.TempDir()

	// Write global config with board selection and custom toolchain
	globalConfig := filepath.Join(globalDir, "config.yaml")
	err := os.WriteFile(globalConfig, []byte(`
toolchain:
  path: /opt/arduino/arduino-cli
board:
  fqbn: arduino:avr:uno
  port: /dev/ttyACM0
`), 0o600)
	require.NoError(t, err)

	// Write project config overriding just the board
	projectConfig := filepath.Join(projectDir, "config.yaml")
	err = os.WriteFile(projectConfig, []byte(`
board:
  fqbn: esp32:esp32:esp32
`), 0o600)
	require.NoError(t, err)

	// Load config - project should override global
	cfg, err := LoadFromPaths(ctx, projectConfig, globalConfig)
	require.NoError(t, err, "LoadFromPaths should succeed")

	// Project config overrides global for board.fqbn
	assert.Equal(t, "esp32:esp32:esp32", cfg.Board.FQBN, "project config should override global for board.fqbn")

	// Global config values that aren't overridden should persist
	assert.Equal(t, "/opt/arduino/arduino-cli", cfg.Toolchain.Path, "global toolchain path should be preserved")
	assert.Equal(t, "/dev/ttyACM0", cfg.Board.Port, "global port should be preserved")
}

func TestLoadFromPaths_GlobalConfigOnly(t *testing.T) {
	ctx := context.Background()

	globalDir := t.TempDir()

	globalConfig := filepath.Join(globalDir, "config.yaml")
	err := os.WriteFile(globalConfig, []byte(`
toolchain:
  path: arduino-cli-nightly
build:
  mode: multi-file
  markers: [custom marker]
`), 0o600)
	require.NoError(t, err)

	cfg, err := LoadFromPaths(ctx, "", globalConfig)
	require.NoError(t, err, "LoadFromPaths should succeed with only global config")

	assert.Equal(t, "arduino-cli-nightly", cfg.Toolchain.Path, "should use global toolchain path")
	assert.Equal(t, "multi-file", cfg.Build.Mode, "should use global build mode")
	assert.Equal(t, []string{"custom marker"}, cfg.Build.Markers, "should use global markers")
}

func TestLoadFromPaths_MissingFilesFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	clearPandaEnv(t)

	cfg, err := LoadFromPaths(ctx,
		filepath.Join(t.TempDir(), "missing-project.yaml"),
		filepath.Join(t.TempDir(), "missing-global.yaml"))
	require.NoError(t, err, "missing config files are not an error")

	assert.Equal(t, constants.DefaultToolchainPath, cfg.Toolchain.Path)
	assert.Equal(t, constants.CompileModeSingleFile.String(), cfg.Build.Mode)
}

func TestLoadFromPaths_MalformedYAMLReturnsError(t *testing.T) {
	ctx := context.Background()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configPath, []byte("toolchain: [not: valid\n"), 0o600)
	require.NoError(t, err)

	_, err = LoadFromPaths(ctx, configPath, "")
	require.Error(t, err, "malformed YAML should fail loudly")
	assert.Contains(t, err.Error(), "project config")
}

func TestLoad_EnvVarOverridesConfigFile(t *testing.T) {
	ctx := context.Background()

	// Create temp directory with a config file
	tempDir := t.TempDir()
	pandaDir := filepath.Join(tempDir, ".panda")
	err := os.MkdirAll(pandaDir, 0o750)
	require.NoError(t, err)

	// Write config file selecting an uno
	configPath := filepath.Join(pandaDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(`
board:
  fqbn: arduino:avr:uno
`), 0o600)
	require.NoError(t, err)

	// Change to the temp directory
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	err = os.Chdir(tempDir)
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	// Set env var to override (should take precedence)
	t.Setenv("PANDA_BOARD_FQBN", "arduino:avr:mega")

	cfg, err := Load(ctx)
	require.NoError(t, err, "Load should succeed")

	// Environment variable should override config file
	assert.Equal(t, "arduino:avr:mega", cfg.Board.FQBN, "env var should override config file")
}

func TestLoad_EnvVarMapping(t *testing.T) {
	ctx := context.Background()

	// Change to a temp directory with no config files
	tempDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	err = os.Chdir(tempDir)
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	tests := []struct {
		envVar   string
		value    string
		validate func(*testing.T, *Config)
	}{
		{
			envVar: "PANDA_TOOLCHAIN_PATH",
			value:  "/usr/local/bin/arduino-cli",
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "/usr/local/bin/arduino-cli", c.Toolchain.Path)
			},
		},
		{
			envVar: "PANDA_BOARD_PORT",
			value:  "/dev/ttyUSB0",
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "/dev/ttyUSB0", c.Board.Port)
			},
		},
		{
			envVar: "PANDA_BUILD_MODE",
			value:  "multi-file",
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "multi-file", c.Build.Mode)
			},
		},
		{
			envVar: "PANDA_DISCOVERY_WATCH_INTERVAL",
			value:  "5s",
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, 5*time.Second, c.Discovery.WatchInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.envVar, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			cfg, err := Load(ctx)
			require.NoError(t, err, "Load should succeed")
			tt.validate(t, cfg)
		})
	}
}

func TestLoadWithOverrides_AppliesCLIOverrides(t *testing.T) {
	ctx := context.Background()

	// Change to a temp directory with no config files
	tempDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	err = os.Chdir(tempDir)
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	clearPandaEnv(t)

	overrides := &Config{
		Board: BoardConfig{
			FQBN: "arduino:samd:mkr1000",
			Port: "/dev/ttyACM1",
		},
		Build: BuildConfig{
			Mode: "multi-file",
		},
	}

	cfg, err := LoadWithOverrides(ctx, overrides)
	require.NoError(t, err, "LoadWithOverrides should succeed")

	// Verify overrides are applied
	assert.Equal(t, "arduino:samd:mkr1000", cfg.Board.FQBN, "override board fqbn")
	assert.Equal(t, "/dev/ttyACM1", cfg.Board.Port, "override board port")
	assert.Equal(t, "multi-file", cfg.Build.Mode, "override build mode")

	// Verify non-overridden values keep defaults
	assert.Equal(t, constants.DefaultToolchainPath, cfg.Toolchain.Path, "default toolchain path")
	assert.Equal(t, constants.DefaultCompletionMarkers, cfg.Build.Markers, "default markers")
}

func TestLoadWithOverrides_NilOverrides(t *testing.T) {
	ctx := context.Background()

	tempDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	err = os.Chdir(tempDir)
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	clearPandaEnv(t)

	cfg, err := LoadWithOverrides(ctx, nil)
	require.NoError(t, err, "nil overrides should behave like Load")
	assert.Equal(t, constants.DefaultToolchainPath, cfg.Toolchain.Path)
}

func TestLoadWithOverrides_InvalidOverrideRejected(t *testing.T) {
	ctx := context.Background()

	tempDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	err = os.Chdir(tempDir)
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	clearPandaEnv(t)

	overrides := &Config{
		Build: BuildConfig{Mode: "triple-file"},
	}

	_, err = LoadWithOverrides(ctx, overrides)
	require.Error(t, err, "invalid mode from flags must be rejected")
	assert.Contains(t, err.Error(), "build.mode")
}

func TestApplyOverrides_PartialOverride(t *testing.T) {
	cfg := DefaultConfig()
	overrides := &Config{
		Toolchain: ToolchainConfig{Path: "/custom/arduino-cli"},
		Build: BuildConfig{
			Markers: []string{"flash ok"},
		},
		Discovery: DiscoveryConfig{WatchInterval: 10 * time.Second},
	}

	applyOverrides(cfg, overrides)

	assert.Equal(t, "/custom/arduino-cli", cfg.Toolchain.Path)
	assert.Equal(t, []string{"flash ok"}, cfg.Build.Markers)
	assert.Equal(t, 10*time.Second, cfg.Discovery.WatchInterval)

	// Untouched fields keep their values
	assert.Equal(t, constants.CompileModeSingleFile.String(), cfg.Build.Mode)
	assert.Empty(t, cfg.Board.FQBN)
}

func TestIsConfigNotFoundError(t *testing.T) {
	assert.False(t, isConfigNotFoundError(nil))
	assert.False(t, isConfigNotFoundError(os.ErrNotExist))
}
