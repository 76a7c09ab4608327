// Package config provides configuration management for panda with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (PANDA_* prefix)
//  3. Project config (.panda/config.yaml)
//  4. Global config (~/.panda/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for panda.
// It contains all configuration sections for the application.
type Config struct {
	// Toolchain contains settings for locating and invoking the external toolchain.
	Toolchain ToolchainConfig `yaml:"toolchain" mapstructure:"toolchain"`

	// Board contains the selected board and device port.
	Board BoardConfig `yaml:"board" mapstructure:"board"`

	// Build contains settings for compile and flash operations.
	Build BuildConfig `yaml:"build" mapstructure:"build"`

	// Discovery contains settings for port and board discovery.
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
}

// ToolchainConfig contains settings for the external toolchain binary.
type ToolchainConfig struct {
	// Path is the toolchain binary name or absolute path.
	// A bare name is resolved through PATH at launch time.
	// Default: "arduino-cli"
	Path string `yaml:"path" mapstructure:"path"`
}

// BoardConfig contains the persisted board selection.
// Both fields are typically written by 'panda select' and overridden
// per invocation with --fqbn / --port flags.
type BoardConfig struct {
	// FQBN is the fully qualified board name, e.g. "arduino:avr:uno".
	// Empty means no board is selected.
	FQBN string `yaml:"fqbn" mapstructure:"fqbn"`

	// Port is the device address, e.g. "/dev/ttyUSB0".
	// Empty means no port is selected.
	Port string `yaml:"port" mapstructure:"port"`
}

// BuildConfig contains settings for compile and flash operations.
type BuildConfig struct {
	// Mode selects single-file or multi-file sketch handling.
	// Default: "single-file"
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Output is the build output directory template. The ${root} token
	// expands to the sketch workspace root.
	// Default: "${root}/.panda/build"
	Output string `yaml:"output" mapstructure:"output"`

	// Markers are the output substrings that confirm a flash reached the
	// device. An upload that exits zero without any marker is failed.
	Markers []string `yaml:"markers" mapstructure:"markers"`
}

// DiscoveryConfig contains settings for port and board discovery.
type DiscoveryConfig struct {
	// WatchInterval is the refresh interval for 'panda ports --watch'.
	// Default: 2s
	WatchInterval time.Duration `yaml:"watch_interval" mapstructure:"watch_interval"`
}
