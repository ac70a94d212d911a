package cli

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	flameo "github.com/HendryAvila/flameo/internal/server"
)

// NewServeCommand creates the 'flameo serve' command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Start the Model Context Protocol server on stdin/stdout so an AI
assistant can drive audits through the audit_* tools. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}

			s, cleanup, err := flameo.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			logger.Info("serving MCP over stdio", "version", flameo.Version, "data_dir", cfg.DataDir)
			return server.ServeStdio(s)
		},
	}
}
