// Package report renders audit documents from embedded markdown templates.
package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
	"github.com/HendryAvila/flameo/internal/gate"
	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/scoring"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

// Template names.
const (
	Final   = "final.md.tmpl"
	Catalog = "catalog.md.tmpl"
)

// Renderer renders a named template with data.
type Renderer interface {
	Render(templateName string, data any) (string, error)
}

type embeddedRenderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing report templates: %w", err)
	}
	return &embeddedRenderer{templates: t}, nil
}

func (r *embeddedRenderer) Render(templateName string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", templateName, err)
	}
	return buf.String(), nil
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"join":  strings.Join,
	"inc":   func(i int) int { return i + 1 },
	"risk":  riskLabel,
}

// riskLabel is the French label shown next to a risk level.
func riskLabel(r audit.RiskLevel) string {
	switch r {
	case audit.RiskVeryLow:
		return "très faible"
	case audit.RiskLow:
		return "faible"
	case audit.RiskMedium:
		return "modéré"
	case audit.RiskHigh:
		return "élevé"
	case audit.RiskVeryHigh:
		return "très élevé"
	case audit.RiskCritical:
		return "critique"
	}
	return r.String()
}

// --- Template data ---

// FinalData feeds the Final template.
type FinalData struct {
	BuildingName string                    `json:"building_name"`
	BuildingType string                    `json:"building_type,omitempty"`
	BuildingSize float64                   `json:"building_size,omitempty"`
	Date         string                    `json:"date"`
	Assessment   audit.RiskAssessment      `json:"assessment"`
	Insights     []audit.ContextualInsight `json:"insights"`
	Regulatory   scoring.Evaluation        `json:"regulatory"`
	Warnings     []gate.Violation          `json:"warnings,omitempty"`
	Skipped      []string                  `json:"skipped,omitempty"`
}

// NewFinalData assembles the final report of a scored audit.
func NewFinalData(
	answers *audit.AnswerMap,
	insights []audit.ContextualInsight,
	assessment audit.RiskAssessment,
	gateReport gate.Report,
	skipped []string,
	now time.Time,
) FinalData {
	name, ok := answers.String(catalog.KeyBuildingName)
	if !ok {
		name = "votre bâtiment"
	}
	buildingType, _ := answers.String(catalog.KeyBuildingType)
	size, _ := answers.Number(catalog.KeyBuildingSize)

	return FinalData{
		BuildingName: name,
		BuildingType: buildingType,
		BuildingSize: size,
		Date:         now.Format("02/01/2006"),
		Assessment:   assessment,
		Insights:     insights,
		Regulatory:   scoring.Regulatory(answers),
		Warnings:     gateReport.Warnings,
		Skipped:      skipped,
	}
}

// ErrIncomplete is returned by Assess for an unfinished interview.
var ErrIncomplete = errors.New("interview is not complete")

// Assess runs the consistency gate on a finished interview and, when it
// passes, scores the answers and assembles the final report. A gate
// failure is returned as *gate.FatalError and the state is untouched.
func Assess(s *interview.State, g *gate.Gate, now time.Time) (FinalData, error) {
	if !s.Complete() {
		done, total := s.Progress()
		return FinalData{}, fmt.Errorf("%w: %d of %d questions handled", ErrIncomplete, done, total)
	}
	answers := s.Answers()
	gateReport, err := g.Check(answers)
	if err != nil {
		return FinalData{}, err
	}
	assessment := scoring.ScoreAt(answers, now)
	return NewFinalData(answers, s.Insights(), assessment, gateReport, s.Skipped(), now), nil
}

// CatalogData feeds the Catalog template.
type CatalogData struct {
	Questions []audit.AuditQuestion
	FollowUps []audit.AuditQuestion
}

// NewCatalogData lists the whole questionnaire.
func NewCatalogData() CatalogData {
	return CatalogData{Questions: catalog.Questions(), FollowUps: catalog.FollowUps()}
}
