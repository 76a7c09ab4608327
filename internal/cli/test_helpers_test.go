package cli

import (
	"github.com/spf13/cobra"
)

// newTestCommand builds a minimal command carrying the global flags the
// run* helpers read, without going through the real root command.
func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)
	return cmd
}
