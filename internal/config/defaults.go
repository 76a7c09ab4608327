package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
)

// DefaultWatchInterval is how often 'panda ports --watch' refreshes when no
// interval is configured.
const DefaultWatchInterval = 2 * time.Second

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags.
//
// Default values are chosen so that a fresh install with arduino-cli on
// PATH works without any configuration file at all.
func DefaultConfig() *Config {
	return &Config{
		Toolchain: ToolchainConfig{
			// Path: bare binary name, resolved through PATH at launch.
			// Users with multiple toolchain versions set an absolute path.
			Path: constants.DefaultToolchainPath,
		},
		Board: BoardConfig{
			// FQBN/Port: empty until 'panda select' persists a choice.
			// Compile works without a port; upload and deploy require both.
			FQBN: "",
			Port: "",
		},
		Build: BuildConfig{
			// Mode: single-file covers the common one-sketch-one-file case
			// and stages the file into a sketch-shaped directory.
			Mode: constants.CompileModeSingleFile.String(),

			// Output: build artifacts land under the sketch workspace root
			// so parallel projects never collide.
			Output: constants.DefaultBuildOutputTemplate,

			// Markers: copied so callers can append without mutating the
			// shared default set.
			Markers: append([]string(nil), constants.DefaultCompletionMarkers...),
		},
		Discovery: DiscoveryConfig{
			WatchInterval: DefaultWatchInterval,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	// Toolchain defaults
	v.SetDefault("toolchain.path", constants.DefaultToolchainPath)

	// Board defaults
	v.SetDefault("board.fqbn", "")
	v.SetDefault("board.port", "")

	// Build defaults
	v.SetDefault("build.mode", constants.CompileModeSingleFile.String())
	v.SetDefault("build.output", constants.DefaultBuildOutputTemplate)
	v.SetDefault("build.markers", constants.DefaultCompletionMarkers)

	// Discovery defaults
	v.SetDefault("discovery.watch_interval", DefaultWatchInterval.String())
}
