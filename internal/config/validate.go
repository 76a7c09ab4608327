package config

import (
	"time"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Toolchain path must not be empty
//   - Build mode must be single-file or multi-file
//   - Build output template must not be empty
//   - Discovery watch interval must be between 100ms and 1 minute
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	// Validate Toolchain config
	if err := validateToolchainConfig(&cfg.Toolchain); err != nil {
		return err
	}

	// Validate Build config
	if err := validateBuildConfig(&cfg.Build); err != nil {
		return err
	}

	// Validate Discovery config
	if err := validateDiscoveryConfig(&cfg.Discovery); err != nil {
		return err
	}

	return nil
}

// validateToolchainConfig checks toolchain-specific configuration values.
func validateToolchainConfig(cfg *ToolchainConfig) error {
	if cfg.Path == "" {
		return errors.Wrap(errors.ErrConfigInvalid,
			"toolchain.path must not be empty")
	}

	return nil
}

// validateBuildConfig checks build-specific configuration values.
func validateBuildConfig(cfg *BuildConfig) error {
	switch constants.CompileMode(cfg.Mode) {
	case constants.CompileModeSingleFile, constants.CompileModeMultiFile:
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"build.mode must be %q or %q, got %q",
			constants.CompileModeSingleFile, constants.CompileModeMultiFile, cfg.Mode)
	}

	if cfg.Output == "" {
		return errors.Wrap(errors.ErrConfigInvalid,
			"build.output must not be empty")
	}

	return nil
}

// validateDiscoveryConfig checks discovery-specific configuration values.
func validateDiscoveryConfig(cfg *DiscoveryConfig) error {
	minInterval := 100 * time.Millisecond
	maxInterval := 1 * time.Minute
	if cfg.WatchInterval < minInterval || cfg.WatchInterval > maxInterval {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"discovery.watch_interval must be between %s and %s, got %s",
			minInterval, maxInterval, cfg.WatchInterval)
	}

	return nil
}
