package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/ctxutil"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
	"github.com/TomShaoquan/arduino-panda/internal/tui"
)

// ToolchainVersioner reports the external toolchain's version string.
// Used for dependency injection in tests.
type ToolchainVersioner interface {
	Version(ctx context.Context) (string, error)
}

// versionReport is the JSON shape of the version command output.
type versionReport struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Toolchain string `json:"toolchain,omitempty"`
}

// AddVersionCommand adds the version command to the root command.
func AddVersionCommand(parent *cobra.Command, info BuildInfo) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show panda and toolchain versions",
		Long: `Show the panda build information and, when reachable, the version
the external toolchain reports.

Examples:
  panda version
  panda version --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd.Context(), cmd, os.Stdout, info)
		},
	}

	parent.AddCommand(cmd)
}

// runVersion executes the version command with production dependencies.
func runVersion(ctx context.Context, cmd *cobra.Command, w io.Writer, info BuildInfo) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	outputFormat := cmd.Flag("output").Value.String()
	tui.CheckNoColor()

	binary := resolveToolchainPath(ctx)
	tc := toolchain.New(binary, toolchain.WithLogger(logger))

	return runVersionWithDeps(ctx, w, outputFormat, info, tc)
}

// resolveToolchainPath resolves the configured toolchain binary, falling
// back to the default when config loading fails; version must work even
// with a broken config file.
func resolveToolchainPath(ctx context.Context) string {
	cfg, err := config.Load(ctx)
	if err != nil {
		return config.DefaultConfig().Toolchain.Path
	}
	return cfg.Toolchain.Path
}

// runVersionWithDeps executes the version command against an injected
// toolchain. This enables testing without the real binary.
func runVersionWithDeps(ctx context.Context, w io.Writer, outputFormat string, info BuildInfo, tc ToolchainVersioner) error {
	out := tui.NewOutput(w, outputFormat)

	report := versionReport{
		Version: info.Version,
		Commit:  info.Commit,
		Date:    info.Date,
	}
	toolchainVersion, err := tc.Version(ctx)
	if err == nil {
		report.Toolchain = toolchainVersion
	}

	if outputFormat == OutputJSON {
		return out.JSON(report)
	}

	out.Info("panda " + formatVersion(info))
	if err != nil {
		out.Warning("toolchain: unavailable (" + err.Error() + ")")
		return nil
	}
	out.Info("toolchain: " + toolchainVersion)
	return nil
}
