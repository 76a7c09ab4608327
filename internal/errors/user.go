package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Toolchain
	// ===================
	{
		err: ErrToolchainUnavailable,
		info: ErrorInfo{
			Message: "The arduino-cli toolchain could not be reached.",
			Action:  "Install arduino-cli and ensure it is on PATH, or set toolchain.path in config.",
		},
	},
	{
		err: ErrToolchainQuery,
		info: ErrorInfo{
			Message: "Querying the toolchain for ports or boards failed.",
			Action:  "Run 'arduino-cli board list' manually to inspect the toolchain output.",
		},
	},
	{
		err: ErrProcessLaunch,
		info: ErrorInfo{
			Message: "The toolchain process could not be started.",
			Action:  "Check that the configured toolchain binary exists and is executable.",
		},
	},
	{
		err: ErrProcessExecution,
		info: ErrorInfo{
			Message: "The toolchain exited with an error.",
			Action:  "Review the captured output above for details.",
		},
	},

	// ===================
	// Build & flash
	// ===================
	{
		err: ErrCompileFailed,
		info: ErrorInfo{
			Message: "Compilation failed. Check the diagnostics above.",
			Action:  "Fix the reported errors in your sketch and retry.",
		},
	},
	{
		err: ErrUploadFailed,
		info: ErrorInfo{
			Message: "Flashing the device failed.",
			Action:  "Check the device connection and port, then retry. Some boards need a manual reset.",
		},
	},
	{
		err: ErrWorkspace,
		info: ErrorInfo{
			Message: "Preparing the build workspace failed.",
			Action:  "Check filesystem permissions around the sketch directory.",
		},
	},
	{
		err: ErrSketchNotFound,
		info: ErrorInfo{
			Message: "The sketch path does not exist.",
			Action:  "Check the path argument for typos.",
		},
	},
	{
		err: ErrNotASketch,
		info: ErrorInfo{
			Message: "The path is not a usable sketch for the selected compile mode.",
			Action:  "Single-file mode needs a .ino file; multi-file mode needs a sketch directory.",
		},
	},
	{
		err: ErrMissingBoard,
		info: ErrorInfo{
			Message: "No board selected.",
			Action:  "Pass --fqbn, or run 'panda select' to pick a board.",
		},
	},
	{
		err: ErrMissingPort,
		info: ErrorInfo{
			Message: "No device port selected.",
			Action:  "Pass --port, or run 'panda ports' to list devices and 'panda select' to pick one.",
		},
	},

	// ===================
	// Configuration & usage
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Internal error: configuration was not loaded.",
			Action:  "",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "The configuration contains invalid values.",
			Action:  "Run 'panda init' to regenerate a valid configuration.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "The requested output format is not supported.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInvalidCompileMode,
		info: ErrorInfo{
			Message: "The requested compile mode is not supported.",
			Action:  "Use --mode single-file or --mode multi-file.",
		},
	},
	{
		err: ErrWatchModeJSONUnsupported,
		info: ErrorInfo{
			Message: "Watch mode renders a live table and cannot emit JSON.",
			Action:  "Drop --watch or use --output text.",
		},
	},
	{
		err: ErrNoSelection,
		info: ErrorInfo{
			Message: "Selection canceled.",
			Action:  "",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
// Built once from errorInfoEntries during package initialization.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

// buildErrorInfoMap creates a map from the errorInfoEntries slice.
// This is called once during package init for O(1) direct lookups.
func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries O(1) direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	// Fast path: O(1) lookup for direct sentinel errors
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Slow path: errors.Is() for wrapped errors
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// This function maps sentinel errors to helpful, actionable messages
// that are suitable for display to end users.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that are not recoverable or have no clear action, the action
// string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
