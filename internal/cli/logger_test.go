package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    zerolog.Level
	}{
		{"default is info", false, false, zerolog.InfoLevel},
		{"verbose is debug", true, false, zerolog.DebugLevel},
		{"quiet is warn", false, true, zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectLevel(tt.verbose, tt.quiet))
		})
	}
}

func TestInitLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().Str("key", "value").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "value", entry["key"])

	// Debug is filtered at the default level.
	buf.Reset()
	logger.Debug().Msg("invisible")
	assert.Empty(t, buf.String())
}

func TestInitLoggerWithWriter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)

	logger.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogFilePath_HonorsPandaHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PANDA_HOME", home)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "panda.log"), path)
}

func TestGetLogger_SafeBeforeInit(t *testing.T) {
	// Must not panic even before the root command initialized anything.
	logger := GetLogger()
	logger.Info().Msg("no output expected")
}
