// Package cli provides the command-line interface for panda.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/logging"
)

// logFileWriter holds the log file writer so CloseLogFile can release it
// during shutdown.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// zerologGlobalMu protects concurrent writes to the zerolog global logger.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// InitLogger creates and configures a zerolog.Logger based on verbosity
// flags.
//
// Log levels:
//   - verbose=true: Debug level (toolchain output is mirrored)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level
//
// Console output goes to stderr: a colored console writer on a TTY, JSON
// otherwise. The logger also writes to ~/.panda/logs/panda.log with
// rotation; if the log file cannot be created the logger continues with
// console-only output.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	level := selectLevel(verbose, quiet)
	console := selectOutput()

	var writer io.Writer = console
	if fileWriter, err := createLogFileWriter(); err == nil {
		logFileWriter = fileWriter
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates a zerolog.Logger with a custom writer.
// Primarily intended for tests.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// setGlobalLogger points the zerolog global logger at the CLI logger so any
// code using the log package gets the same formatting and level.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

// CloseLogFile closes the global log file writer if it was opened.
// Called during application shutdown.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the log level from verbosity flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput determines the console writer based on terminal capabilities.
func selectOutput() io.Writer {
	// Use console writer for TTY without NO_COLOR
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	// Default to JSON output for non-TTY or when NO_COLOR is set
	return os.Stderr
}

// sanitizingWriteCloser pairs the escape-stripping writer with the
// underlying rotating file's closer.
type sanitizingWriteCloser struct {
	writer *logging.SanitizingWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the sanitizing writer.
func (swc *sanitizingWriteCloser) Write(p []byte) (n int, err error) {
	return swc.writer.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (swc *sanitizingWriteCloser) Close() error {
	return swc.closer.Close()
}

// createLogFileWriter creates the rotating file writer for the global CLI
// log. Mirrored toolchain output can carry terminal escapes, so the file is
// written through a sanitizing wrapper.
func createLogFileWriter() (io.WriteCloser, error) {
	pandaHome, err := getPandaHome()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(pandaHome, constants.LogsDir)
	logPath := filepath.Join(logDir, constants.CLILogFileName)

	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}

	return &sanitizingWriteCloser{
		writer: logging.NewSanitizingWriter(lj),
		closer: lj,
	}, nil
}

// getPandaHome returns the panda home directory: $PANDA_HOME when set,
// ~/.panda otherwise.
func getPandaHome() (string, error) {
	if pandaHome := os.Getenv("PANDA_HOME"); pandaHome != "" {
		return pandaHome, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.PandaHome), nil
}

// LogFilePath returns the path to the global CLI log file, for display to
// users.
func LogFilePath() (string, error) {
	pandaHome, err := getPandaHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(pandaHome, constants.LogsDir, constants.CLILogFileName), nil
}
