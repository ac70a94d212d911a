package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/flameo/internal/report"
)

// NewCatalogCommand creates the 'flameo catalog' command.
func NewCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every audit question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := report.NewRenderer()
			if err != nil {
				return err
			}
			out, err := renderer.Render(report.Catalog, report.NewCatalogData())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
