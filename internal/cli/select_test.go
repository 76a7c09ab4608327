package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

func TestBoardOptions(t *testing.T) {
	boards := []domain.BoardInfo{
		{Name: "Arduino Uno", FQBN: "arduino:avr:uno"},
		{Name: "Arduino Nano", FQBN: "arduino:avr:nano"},
	}

	opts := boardOptions(boards)
	require.Len(t, opts, 2)
	assert.Equal(t, "Arduino Uno (arduino:avr:uno)", opts[0].Key)
	assert.Equal(t, "arduino:avr:uno", opts[0].Value)
	assert.Equal(t, "arduino:avr:nano", opts[1].Value)
}

func TestPortOptions_LeadingSkipEntry(t *testing.T) {
	ports := []domain.PortInfo{
		{Address: "/dev/ttyUSB0", Description: "Serial"},
		{Address: "/dev/ttyACM0"},
	}

	opts := portOptions(ports)
	require.Len(t, opts, 3)
	assert.Equal(t, skipPortLabel, opts[0].Key)
	assert.Empty(t, opts[0].Value)
	assert.Equal(t, "/dev/ttyUSB0 — Serial", opts[1].Key)
	assert.Equal(t, "/dev/ttyACM0", opts[2].Key)
}

func TestPersistSelection_WritesProjectConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := config.DefaultConfig()
	require.NoError(t, persistSelection(cfg, "arduino:avr:uno", "/dev/ttyUSB0", false))

	data, err := os.ReadFile(filepath.Join(".panda", "config.yaml"))
	require.NoError(t, err)

	var saved config.Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "arduino:avr:uno", saved.Board.FQBN)
	assert.Equal(t, "/dev/ttyUSB0", saved.Board.Port)
}

func TestPersistSelection_NoBoardChosen(t *testing.T) {
	err := persistSelection(config.DefaultConfig(), "", "/dev/ttyUSB0", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, pandaerrors.ErrNoSelection)
}

func TestDescribePort(t *testing.T) {
	assert.Equal(t, "no port", describePort(""))
	assert.Equal(t, "/dev/ttyUSB0", describePort("/dev/ttyUSB0"))
}
