package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
)

// AddCompileCommand adds the compile command to the root command.
func AddCompileCommand(parent *cobra.Command) {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "compile <sketch>",
		Short: "Compile a sketch without touching a device",
		Long: `Compile a sketch into an isolated build directory.

In single-file mode the sketch is staged into a sketch-shaped directory
first, because the toolchain requires the containing directory to match
the sketch name. A directory argument is always compiled in place as a
multi-file sketch.

Toolchain output is classified into error and warning diagnostics; the
raw compiler noise goes to the log file, not the terminal.

Examples:
  panda compile blink.ino -b arduino:avr:uno
  panda compile ./weather-station --mode multi-file
  panda compile blink.ino --build-path /tmp/panda-build --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd.Context(), cmd, os.Stdout, constants.OperationCompile, args[0], flags)
		},
	}

	addBoardFlags(cmd, flags)
	addBuildFlags(cmd, flags)

	parent.AddCommand(cmd)
}
