package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/config"
	"github.com/TomShaoquan/arduino-panda/internal/ctxutil"
	"github.com/TomShaoquan/arduino-panda/internal/discovery"
	"github.com/TomShaoquan/arduino-panda/internal/domain"
	"github.com/TomShaoquan/arduino-panda/internal/toolchain"
	"github.com/TomShaoquan/arduino-panda/internal/tui"
)

// BoardLister is the discovery surface the boards command reads.
// Used for dependency injection in tests.
type BoardLister interface {
	ListBoards(ctx context.Context) ([]domain.BoardInfo, error)
}

// AddBoardsCommand adds the boards command to the root command.
func AddBoardsCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "List installed board definitions",
		Long: `List every board supported by the installed platform packages.

The toolchain is queried per platform; a platform whose board query fails
is skipped with a log entry so one broken core never hides the rest.

Examples:
  panda boards
  panda boards --output json
  panda boards | grep -i uno`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoards(cmd.Context(), cmd, os.Stdout)
		},
	}

	parent.AddCommand(cmd)
}

// runBoards executes the boards command with production dependencies.
func runBoards(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	logger := GetLogger()
	outputFormat := cmd.Flag("output").Value.String()
	tui.CheckNoColor()

	cfg, err := config.Load(ctx)
	if err != nil {
		renderCommandError(tui.NewOutput(w, outputFormat), err)
		return err
	}

	tc := toolchain.New(cfg.Toolchain.Path, toolchain.WithLogger(logger))
	svc := discovery.NewService(tc, logger)

	return runBoardsWithDeps(ctx, w, outputFormat, svc)
}

// runBoardsWithDeps executes the board listing against an injected lister.
// This enables testing with mock implementations.
func runBoardsWithDeps(ctx context.Context, w io.Writer, outputFormat string, lister BoardLister) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	out := tui.NewOutput(w, outputFormat)

	boards, err := lister.ListBoards(ctx)
	if err != nil {
		renderCommandError(out, err)
		return err
	}

	if outputFormat == OutputJSON {
		return out.JSON(boards)
	}

	if len(boards) == 0 {
		out.Info("No boards installed. Run 'arduino-cli core install <platform>' first.")
		return nil
	}

	headers, rows := tui.BoardTableData(boards)
	out.Table(headers, rows)
	return nil
}
