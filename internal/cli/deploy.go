package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
)

// AddDeployCommand adds the deploy command to the root command.
func AddDeployCommand(parent *cobra.Command) {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "deploy <sketch>",
		Short: "Compile and flash in a single step",
		Long: `Compile the sketch and flash it to the device in one toolchain
invocation.

Deploy succeeds only when the build is clean AND the output contains a
device acknowledgement marker (e.g. "avrdude done"). A flash that exits
zero without any marker is reported as failed; the marker set is
configurable via build.markers.

Examples:
  panda deploy blink.ino -p /dev/ttyUSB0 -b arduino:avr:uno
  panda deploy ./weather-station --mode multi-file -p COM3
  panda deploy blink.ino --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd.Context(), cmd, os.Stdout, constants.OperationDeploy, args[0], flags)
		},
	}

	addBoardFlags(cmd, flags)
	addPortFlag(cmd, flags)
	addBuildFlags(cmd, flags)

	parent.AddCommand(cmd)
}
