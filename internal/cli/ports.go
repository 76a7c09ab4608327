package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/ctxutil"
	"github.com/TomShaoquan/arduino-panda/internal/discovery"
	pandaerrors "github.com/TomShaoquan/arduino-panda/internal/errors"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
	"github.com/TomShaoquan/arduino-panda/internal/tui"
)

// AddPortsCommand adds the ports command to the root command.
func AddPortsCommand(parent *cobra.Command) {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List connected serial ports",
		Long: `List the serial ports the toolchain can see right now.

Every invocation queries the toolchain fresh — nothing is cached, so the
list always reflects what is currently plugged in. With --watch the table
refreshes on an interval and rings the terminal bell when a new port
appears, which is handy while hunting for the right USB cable.

Examples:
  panda ports
  panda ports --output json
  panda ports --watch
  panda ports --watch --interval 5s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPorts(cmd.Context(), cmd, os.Stdout, watch, interval)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "refresh the port table until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval for --watch (default from config)")

	parent.AddCommand(cmd)
}

// runPorts executes the ports command with production dependencies.
func runPorts(ctx context.Context, cmd *cobra.Command, w io.Writer, watch bool, interval time.Duration) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	outputFormat := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, outputFormat)

	if watch && outputFormat == OutputJSON {
		err := pandaerrors.ErrWatchModeJSONUnsupported
		renderCommandError(out, err)
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		renderCommandError(out, err)
		return err
	}

	tc := toolchain.New(cfg.Toolchain.Path, toolchain.WithLogger(logger))
	svc := discovery.NewService(tc, logger)

	if watch {
		watchCfg := tui.DefaultWatchConfig()
		watchCfg.Interval = cfg.Discovery.WatchInterval
		if interval > 0 {
			watchCfg.Interval = interval
		}
		return tui.RunPortWatch(ctx, svc, watchCfg)
	}

	return runPortsWithDeps(ctx, w, outputFormat, svc)
}

// runPortsWithDeps executes a single port listing against an injected
// lister. This enables testing with mock implementations.
func runPortsWithDeps(ctx context.Context, w io.Writer, outputFormat string, lister tui.PortLister) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	out := tui.NewOutput(w, outputFormat)

	ports, err := lister.ListPorts(ctx)
	if err != nil {
		renderCommandError(out, err)
		return err
	}

	if outputFormat == OutputJSON {
		return out.JSON(ports)
	}

	if len(ports) == 0 {
		out.Info("No ports detected. Plug in a board and try again.")
		return nil
	}

	headers, rows := tui.PortTableData(ports)
	out.Table(headers, rows)
	return nil
}
