package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/ctxutil"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/tui"
)

// AddInitCommand adds the init command to the root command.
func AddInitCommand(parent *cobra.Command) {
	var global bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a configuration file populated with the built-in defaults.

By default the file goes to .panda/config.yaml in the current directory;
--global writes ~/.panda/config.yaml instead. An existing file is never
overwritten without --force.

Examples:
  panda init
  panda init --global
  panda init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd, os.Stdout, global, force)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write the global config instead of the project config")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	parent.AddCommand(cmd)
}

// runInit executes the init command.
func runInit(ctx context.Context, cmd *cobra.Command, w io.Writer, global, force bool) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	outputFormat := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, outputFormat)

	path := config.ProjectConfigPath()
	if global {
		var err error
		path, err = config.GlobalConfigPath()
		if err != nil {
			renderCommandError(out, err)
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		err = pandaerrors.Wrapf(pandaerrors.ErrInvalidArgument, "config already exists at %s (use --force to overwrite)", path)
		renderCommandError(out, err)
		return err
	}

	if err := config.Save(config.DefaultConfig(), path, "panda init"); err != nil {
		renderCommandError(out, err)
		return err
	}

	out.Success("Wrote " + path)
	out.Info("Run 'panda select' to pick a board and port.")
	return nil
}
