// Package cli holds the flameo command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/flameo/internal/config"
	"github.com/HendryAvila/flameo/internal/logging"
)

// NewRootCommand creates and returns the root cobra command for flameo.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flameo",
		Short: "Fire-safety audit interviews and risk scoring",
		Long: `Flaméo runs a structured fire-safety interview about a building,
checks every answer, raises observations as they come, and scores the
result: compliance, fire, structural and evacuation risk, equipment
adequacy and a prioritized action plan.

Run it as an MCP server for an AI assistant (flameo serve) or
interactively in a terminal (flameo interview).`,
		Version:      version(),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", config.DefaultPath(), "configuration file")
	cmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewInterviewCommand())
	cmd.AddCommand(NewScoreCommand())
	cmd.AddCommand(NewCatalogCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// loadRuntime loads the configuration named by --config and builds the
// logger, writing to the command's stderr.
func loadRuntime(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("configuring logs: %w", err)
	}
	return cfg, logger, nil
}
