package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/flameo/internal/gate"
	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/report"
)

// quitCommand stops the interview; the snapshot is still saved.
const quitCommand = ":q"

// ErrInterrupted is returned when the interview ends before scoring.
var ErrInterrupted = errors.New("interview interrupted")

// NewInterviewCommand creates the 'flameo interview' command.
func NewInterviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Run an audit interactively in the terminal",
		Long: `Ask every audit question in turn, validate each answer and print
observations as they are raised. When all questions are handled the
consistency checks run; inconsistent answers can be corrected with
'clé=réponse'. Type :q to stop.`,
		Args: cobra.NoArgs,
		RunE: runInterview,
	}
	cmd.Flags().String("save", "", "write the session snapshot to this file on exit")
	cmd.Flags().String("resume", "", "resume from a snapshot file")
	cmd.Flags().Bool("report", true, "print the full markdown report at the end")
	return cmd
}

func runInterview(cmd *cobra.Command, args []string) error {
	_, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	savePath, _ := cmd.Flags().GetString("save")
	resumePath, _ := cmd.Flags().GetString("resume")
	fullReport, _ := cmd.Flags().GetBool("report")

	state := interview.New()
	if resumePath != "" {
		raw, err := os.ReadFile(resumePath)
		if err != nil {
			return fmt.Errorf("reading snapshot: %w", err)
		}
		if state, err = interview.DecodeSnapshot(raw); err != nil {
			return err
		}
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	save := func() error {
		if savePath == "" {
			return nil
		}
		data, err := interview.EncodeSnapshot(state)
		if err != nil {
			return err
		}
		if err := os.WriteFile(savePath, data, 0o644); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		gray.Fprintf(out, "Session enregistrée dans %s\n", savePath)
		return nil
	}

	cyan.Fprintln(out, "=== Audit sécurité incendie ===")
	gray.Fprintf(out, "Répondez à chaque question, %s pour quitter.\n", quitCommand)

	if !ask(in, out, state) {
		if err := save(); err != nil {
			return err
		}
		return ErrInterrupted
	}

	g := gate.New(gate.DefaultConfig(), logger)
	for {
		data, err := report.Assess(state, g, timeNow())
		var fatal *gate.FatalError
		if errors.As(err, &fatal) {
			printViolations(out, fatal)
			if !correct(in, out, state) {
				if err := save(); err != nil {
					return err
				}
				return ErrInterrupted
			}
			continue
		}
		if err != nil {
			return err
		}

		printSummary(out, data)
		if fullReport {
			renderer, err := report.NewRenderer()
			if err != nil {
				return err
			}
			text, err := renderer.Render(report.Final, data)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
		}
		return save()
	}
}

// ask runs the question loop. It returns false when input ends or the
// user quits before the interview is complete.
func ask(in *bufio.Scanner, out io.Writer, state *interview.State) bool {
	for {
		q, ok := state.CurrentQuestion()
		if !ok {
			return true
		}
		printQuestion(out, state, q)
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return false
		}
		line := in.Text()
		if strings.TrimSpace(line) == quitCommand {
			return false
		}
		res, err := state.Submit(line)
		if err != nil {
			return false
		}
		printResult(out, res)
	}
}

// correct reads one 'key=answer' line and applies it. It returns false
// when input ends or the user quits.
func correct(in *bufio.Scanner, out io.Writer, state *interview.State) bool {
	for {
		fmt.Fprint(out, "Correction (clé=réponse) > ")
		if !in.Scan() {
			return false
		}
		line := strings.TrimSpace(in.Text())
		if line == quitCommand || line == "" {
			return false
		}
		key, answer, found := strings.Cut(line, "=")
		if !found {
			red.Fprintln(out, "  ✗ format attendu : clé=réponse, par exemple emergencyExits=2")
			continue
		}
		res, insights, err := state.Correct(strings.TrimSpace(key), answer)
		if err != nil {
			red.Fprintf(out, "  ✗ %v\n", err)
			continue
		}
		printResult(out, interview.SubmitResult{Result: res, Insights: insights})
		if res.OK() {
			return true
		}
	}
}
