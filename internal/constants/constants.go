// Package constants provides centralized constant values used throughout panda.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Directory names and paths used by panda for organizing data.
const (
	// PandaHome is the hidden directory name where panda stores its data.
	// It appears both under the user's home directory (global config, logs)
	// and under a sketch workspace root (project config, staging, build output).
	PandaHome = ".panda"

	// StagingDir is the directory name under PandaHome where single-file
	// sketches are staged before compilation.
	StagingDir = "staging"

	// BuildDir is the directory name under PandaHome where build output is
	// written when no explicit output directory is configured.
	BuildDir = "build"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// File names used by panda.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.panda/logs/panda.log
	CLILogFileName = "panda.log"

	// GlobalConfigName is the name of the configuration file, used both for
	// the global config (~/.panda/config.yaml) and the project config
	// (<root>/.panda/config.yaml).
	GlobalConfigName = "config.yaml"
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the size a log file may reach before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files kept on disk.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated log files are retained.
	LogMaxAgeDays = 30

	// LogCompress gzips rotated log files.
	LogCompress = true
)

// Toolchain invocation defaults.
const (
	// DefaultToolchainPath is the binary invoked when no toolchain path is
	// configured. Resolved through PATH like any exec lookup.
	DefaultToolchainPath = "arduino-cli"

	// SketchExtension is the file extension the toolchain requires for
	// sketch sources.
	SketchExtension = ".ino"

	// JSONFormatFlag is the format flag value passed to discovery queries.
	JSONFormatFlag = "json"
)

// Environment and time formatting.
const (
	// EnvPrefix is the prefix for environment variable configuration
	// overrides (e.g. PANDA_TOOLCHAIN_PATH).
	EnvPrefix = "PANDA"

	// TimeFormatISO is the ISO 8601 time format used in generated file headers.
	TimeFormatISO = "2006-01-02 15:04:05"
)

// BuildOutputRootToken is the placeholder in the build output template that
// expands to the sketch workspace root.
const BuildOutputRootToken = "${root}"

// DefaultBuildOutputTemplate is the build output directory template applied
// when none is configured.
const DefaultBuildOutputTemplate = BuildOutputRootToken + "/" + PandaHome + "/" + BuildDir

// DefaultCompletionMarkers are the output substrings that indicate the
// toolchain finished talking to the device after a flash. A deploy or upload
// that exits zero without emitting any of these is treated as failed.
// Overridable via the build.markers config key.
//
//nolint:gochecknoglobals // Read-only default set, copied before use
var DefaultCompletionMarkers = []string{
	"Device responded",
	"avrdude done",
	"Upload complete",
}

// ArtifactExtensions lists firmware artifact extensions in preference order.
// Used to locate the built artifact inside the build output directory.
//
//nolint:gochecknoglobals // Read-only lookup table
var ArtifactExtensions = []string{".hex", ".bin"}
