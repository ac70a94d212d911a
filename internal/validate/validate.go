package validate

import (
	"strings"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// timeNow is a package-level variable for testability.
// Tests replace it to pin "today" for date checks.
var timeNow = time.Now

// skipWords mark an optional question as deliberately left blank.
var skipWords = map[string]bool{
	"aucun": true, "aucune": true, "jamais": true, "passer": true,
	"skip": true, "-": true, "n/a": true, "na": true, "sans objet": true,
}

// Validate checks raw against question q. answers holds everything
// recorded so far and is only read by context-dependent questions.
func Validate(q audit.AuditQuestion, raw string, answers *audit.AnswerMap) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if !q.Required {
			return Accept(nil)
		}
		return Reject("Une réponse est nécessaire pour continuer l'audit.")
	}
	if !q.Required && (skipWords[strings.ToLower(trimmed)] || skipWords[catalog.Normalize(trimmed)]) {
		return Accept(nil)
	}

	if q.ContextDependent {
		return Contextual(q, trimmed, answers)
	}
	return Standalone(q, trimmed)
}

// Standalone applies the rules of q's validation type without looking at
// other answers.
func Standalone(q audit.AuditQuestion, raw string) Result {
	switch q.ValidationType {
	case audit.ValidationText:
		return Text(raw)
	case audit.ValidationNumber:
		return Number(q, raw)
	case audit.ValidationNumberList:
		return NumberList(q, raw)
	case audit.ValidationDate:
		return Date(raw)
	case audit.ValidationBoolean:
		return Boolean(raw)
	case audit.ValidationBuildingType:
		return Enum(raw, q.AllowedValues, "Type de bâtiment")
	case audit.ValidationUsage:
		return Enum(raw, q.AllowedValues, "Usage")
	case audit.ValidationMaterials:
		return Materials(raw)
	}
	return Reject("Type de question inconnu : " + string(q.ValidationType))
}
