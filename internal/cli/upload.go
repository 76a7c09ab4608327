package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
)

// AddUploadCommand adds the upload command to the root command.
func AddUploadCommand(parent *cobra.Command) {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "upload <sketch>",
		Short: "Flash a previously built sketch to a device",
		Long: `Flash firmware to the device on the selected port.

By default the toolchain locates the artifact from the sketch's build
output; pass --input to flash an explicit prebuilt hex file instead.

The board and port come from 'panda select' or the --fqbn/--port flags.

Examples:
  panda upload blink.ino -p /dev/ttyUSB0 -b arduino:avr:uno
  panda upload blink.ino --input build/blink.ino.hex
  panda upload blink.ino --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd.Context(), cmd, os.Stdout, constants.OperationUpload, args[0], flags)
		},
	}

	addBoardFlags(cmd, flags)
	addPortFlag(cmd, flags)
	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "prebuilt artifact to flash instead of the build output")

	parent.AddCommand(cmd)
}
