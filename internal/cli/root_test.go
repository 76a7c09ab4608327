package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
)

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})

	want := []string{"init", "compile", "upload", "deploy", "ports", "boards", "select", "version"}
	got := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		got[sub.Name()] = true
	}

	for _, name := range want {
		assert.True(t, got[name], "missing subcommand %q", name)
	}
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--output", "xml"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pandaerrors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_VerboseQuietMutuallyExclusive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--verbose", "--quiet"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_HelpWithoutArgs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "panda")
	assert.Contains(t, out.String(), "compile")
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"compile failure", pandaerrors.Wrap(pandaerrors.ErrCompileFailed, "2 errors"), ExitError},
		{"upload failure", pandaerrors.ErrUploadFailed, ExitError},
		{"toolchain unavailable", pandaerrors.ErrToolchainUnavailable, ExitError},
		{"invalid output format", pandaerrors.ErrInvalidOutputFormat, ExitInvalidInput},
		{"invalid compile mode", pandaerrors.Wrapf(pandaerrors.ErrInvalidCompileMode, "%q", "tri-file"), ExitInvalidInput},
		{"watch with json", pandaerrors.ErrWatchModeJSONUnsupported, ExitInvalidInput},
		{"wrapped exit code 2", pandaerrors.NewExitCode2Error(errors.New("bad input")), ExitInvalidInput},
		{"cobra unknown flag", errors.New(`unknown flag: --bogus`), ExitInvalidInput},
		{"plain error", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))
	assert.False(t, IsValidOutputFormat("xml"))
	assert.False(t, IsValidOutputFormat(""))
}
