package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/ctxutil"
	"github.com/TomShaoquan/arduino-panda/internal/discovery"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
	"github.com/TomShaoquan/arduino-panda/internal/tui"
)

// skipPortLabel is the form entry for proceeding without a port; compile
// works fine without one.
const skipPortLabel = "(no port — compile only)"

// AddSelectCommand adds the select command to the root command.
func AddSelectCommand(parent *cobra.Command) {
	var global bool

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick the target board and port interactively",
		Long: `Choose a board and port from what is actually installed and plugged
in, and persist the choice so compile, upload, and deploy stop needing
--fqbn and --port flags.

The selection is written to the project config (.panda/config.yaml) by
default, or to ~/.panda/config.yaml with --global.

Examples:
  panda select
  panda select --global`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd.Context(), cmd, os.Stdout, global)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "persist the selection to the global config")

	parent.AddCommand(cmd)
}

// runSelect executes the select command with production dependencies.
func runSelect(ctx context.Context, cmd *cobra.Command, w io.Writer, global bool) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	outputFormat := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, outputFormat)

	cfg, err := config.Load(ctx)
	if err != nil {
		renderCommandError(out, err)
		return err
	}

	tc := toolchain.New(cfg.Toolchain.Path, toolchain.WithLogger(logger))
	svc := discovery.NewService(tc, logger)

	spinner := out.Spinner(ctx, "Querying toolchain for boards and ports")
	boards, err := svc.ListBoards(ctx)
	if err != nil {
		spinner.Stop()
		renderCommandError(out, err)
		return err
	}
	ports, err := svc.ListPorts(ctx)
	spinner.Stop()
	if err != nil {
		renderCommandError(out, err)
		return err
	}

	if len(boards) == 0 {
		err = pandaerrors.Wrap(pandaerrors.ErrNoSelection, "no boards installed")
		renderCommandError(out, err)
		return err
	}

	fqbn, port, err := promptSelection(ctx, boards, ports, cfg.Board.FQBN, cfg.Board.Port)
	if err != nil {
		return err
	}

	if err = persistSelection(cfg, fqbn, port, global); err != nil {
		renderCommandError(out, err)
		return err
	}

	target := config.ProjectConfigPath()
	if global {
		target, _ = config.GlobalConfigPath()
	}
	out.Success(fmt.Sprintf("Selected %s on %s", fqbn, describePort(port)))
	out.Info("Saved to " + target)
	return nil
}

// promptSelection runs the interactive board and port picker.
func promptSelection(ctx context.Context, boards []domain.BoardInfo, ports []domain.PortInfo, fqbn, port string) (string, string, error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Board").
				Options(boardOptions(boards)...).
				Value(&fqbn),
			huh.NewSelect[string]().
				Title("Port").
				Options(portOptions(ports)...).
				Value(&port),
		),
	).WithTheme(tui.FormTheme())

	if err := form.RunWithContext(ctx); err != nil {
		return "", "", pandaerrors.Wrap(err, "selection aborted")
	}
	return fqbn, port, nil
}

// boardOptions maps discovered boards onto form options, labeled
// "Name (fqbn)" and valued by FQBN.
func boardOptions(boards []domain.BoardInfo) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(boards))
	for _, b := range boards {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", b.Name, b.FQBN), b.FQBN))
	}
	return opts
}

// portOptions maps discovered ports onto form options, with a leading
// skip entry because a port is only needed for upload and deploy.
func portOptions(ports []domain.PortInfo) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(ports)+1)
	opts = append(opts, huh.NewOption(skipPortLabel, ""))
	for _, p := range ports {
		label := p.Address
		if p.Description != "" {
			label = fmt.Sprintf("%s — %s", p.Address, p.Description)
		}
		opts = append(opts, huh.NewOption(label, p.Address))
	}
	return opts
}

// persistSelection writes the chosen board and port into the project or
// global config file.
func persistSelection(cfg *config.Config, fqbn, port string, global bool) error {
	if fqbn == "" {
		return pandaerrors.Wrap(pandaerrors.ErrNoSelection, "no board chosen")
	}

	cfg.Board.FQBN = fqbn
	cfg.Board.Port = port

	if global {
		return config.SaveGlobal(cfg, "panda select")
	}
	return config.SaveProject(cfg, "panda select")
}

// describePort renders the chosen port for the confirmation line.
func describePort(port string) string {
	if port == "" {
		return "no port"
	}
	return port
}
