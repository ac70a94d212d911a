package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/flameo/internal/gate"
	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/report"
)

var timeNow = time.Now

// NewScoreCommand creates the 'flameo score' command.
func NewScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <snapshot.json>",
		Short: "Score an exported audit",
		Long: `Run the consistency checks and the risk scoring on a snapshot
written by audit_export or 'flameo interview --save', and print the
final report.`,
		Args: cobra.ExactArgs(1),
		RunE: runScore,
	}
	cmd.Flags().String("format", "markdown", "output format: markdown, json or summary")
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "markdown" && format != "json" && format != "summary" {
		return fmt.Errorf("unknown format %q", format)
	}
	_, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	state, err := interview.DecodeSnapshot(raw)
	if err != nil {
		return err
	}

	data, err := report.Assess(state, gate.New(gate.DefaultConfig(), logger), timeNow())
	var fatal *gate.FatalError
	if errors.As(err, &fatal) {
		printViolations(cmd.ErrOrStderr(), fatal)
		return err
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "summary":
		printSummary(out, data)
		return nil
	}
	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}
	text, err := renderer.Render(report.Final, data)
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}
