package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	flameo "github.com/HendryAvila/flameo/internal/server"
)

func version() string { return flameo.Version }

// NewVersionCommand creates the 'flameo version' command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flameo %s\n", version())
		},
	}
}
