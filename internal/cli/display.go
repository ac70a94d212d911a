package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/gate"
	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/report"
	"github.com/HendryAvila/flameo/internal/validate"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	gray   = color.New(color.FgHiBlack)
)

// riskColor maps a risk level to the color it is printed in.
func riskColor(r audit.RiskLevel) *color.Color {
	switch {
	case r >= audit.RiskCritical:
		return color.New(color.FgRed, color.Bold)
	case r >= audit.RiskHigh:
		return red
	case r == audit.RiskMedium:
		return yellow
	}
	return green
}

func printQuestion(w io.Writer, s *interview.State, q audit.AuditQuestion) {
	done, total := s.Progress()
	fmt.Fprintln(w)
	if q.FollowUp {
		cyan.Fprintf(w, "[complément] ")
	} else {
		cyan.Fprintf(w, "[%d/%d] ", done+1, total)
	}
	fmt.Fprintln(w, q.Text)
	if len(q.AllowedValues) > 0 {
		gray.Fprintf(w, "  (%s)\n", strings.Join(q.AllowedValues, ", "))
	}
	if !q.Required {
		gray.Fprintln(w, "  (facultative : « passer » pour ignorer)")
	}
}

func printResult(w io.Writer, out interview.SubmitResult) {
	switch res := out.Result; {
	case res.Outcome == validate.Rejected:
		red.Fprintf(w, "  ✗ %s\n", res.Reason)
	case res.Skipped():
		gray.Fprintln(w, "  – question ignorée")
	case res.Outcome == validate.AcceptedWithWarning:
		green.Fprintf(w, "  ✓ %v\n", res.Value)
		yellow.Fprintf(w, "  ⚠ %s\n", res.Warning)
	default:
		green.Fprintf(w, "  ✓ %v\n", res.Value)
	}
	for _, in := range out.Insights {
		riskColor(in.Urgency).Fprintf(w, "  ! [%s] %s\n", in.Urgency, in.Message)
	}
}

func printViolations(w io.Writer, fatal *gate.FatalError) {
	red.Fprintln(w, "\nDonnées incohérentes, l'évaluation est impossible :")
	for _, v := range fatal.Violations {
		red.Fprintf(w, "  - %s\n", v.Reason)
	}
}

// printSummary prints the headline figures of a scored audit.
func printSummary(w io.Writer, data report.FinalData) {
	a := data.Assessment
	cyan.Fprintf(w, "\n=== Synthèse : %s ===\n\n", data.BuildingName)
	fmt.Fprintf(w, "Score de conformité        : %.1f %%\n", a.ComplianceScore)
	fmt.Fprintf(w, "Adéquation des équipements : %.1f/10\n", a.EquipmentAdequacy)
	for _, row := range []struct {
		label string
		level audit.RiskLevel
	}{
		{"Risque incendie           ", a.FireRisk},
		{"Risque structurel         ", a.StructuralRisk},
		{"Risque évacuation         ", a.EvacuationRisk},
	} {
		fmt.Fprintf(w, "%s: ", row.label)
		riskColor(row.level).Fprintln(w, row.level)
	}
	for _, warn := range data.Warnings {
		yellow.Fprintf(w, "⚠ %s\n", warn.Reason)
	}
	fmt.Fprintln(w)
}
