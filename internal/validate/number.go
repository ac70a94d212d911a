package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/HendryAvila/flameo/internal/audit"
)

// numberPattern matches an optionally signed number with '.' or ','
// as decimal separator.
var numberPattern = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)

// ExtractNumber returns the first numeric token of raw.
func ExtractNumber(raw string) (float64, bool) {
	token := numberPattern.FindString(raw)
	if token == "" {
		return 0, false
	}
	return parseToken(token)
}

// ExtractNumbers returns every numeric token of raw, in order.
func ExtractNumbers(raw string) []float64 {
	var out []float64
	for _, token := range numberPattern.FindAllString(raw, -1) {
		if f, ok := parseToken(token); ok {
			out = append(out, f)
		}
	}
	return out
}

func parseToken(token string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.Replace(token, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Number validates a single numeric answer against the question bounds.
// Integral values are returned as int, others as float64.
func Number(q audit.AuditQuestion, raw string) Result {
	f, ok := ExtractNumber(raw)
	if !ok {
		return Reject(fmt.Sprintf("Je n'ai pas trouvé de nombre dans « %s ». %s", raw, rangeHint(q)))
	}
	if reason := outOfRange(q, f); reason != "" {
		return Reject(reason)
	}
	return Accept(collapse(f))
}

// NumberList validates a list of numbers, e.g. "12, 30,5 ; 40".
// A comma directly between digits is read as a decimal separator, so
// lists should separate values with ", " or ";".
func NumberList(q audit.AuditQuestion, raw string) Result {
	values := ExtractNumbers(raw)
	if len(values) == 0 {
		return Reject(fmt.Sprintf("Indiquez au moins une valeur numérique. %s", rangeHint(q)))
	}
	for _, v := range values {
		if reason := outOfRange(q, v); reason != "" {
			return Reject(reason)
		}
	}
	return Accept(values)
}

// outOfRange returns a rejection message when f is outside q's bounds.
func outOfRange(q audit.AuditQuestion, f float64) string {
	minValue, hasMin, maxValue, hasMax := q.Bounds()
	if (hasMin && f < minValue) || (hasMax && f > maxValue) {
		return fmt.Sprintf("La valeur %s est hors limites. %s", formatNumber(f), rangeHint(q))
	}
	return ""
}

// rangeHint explains the accepted range in the question's unit.
func rangeHint(q audit.AuditQuestion) string {
	minValue, hasMin, maxValue, hasMax := q.Bounds()
	unit := ""
	if q.Unit != "" {
		unit = " " + q.Unit
	}
	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("Valeur attendue entre %s et %s%s.", formatNumber(minValue), formatNumber(maxValue), unit)
	case hasMin:
		return fmt.Sprintf("Valeur attendue d'au moins %s%s.", formatNumber(minValue), unit)
	case hasMax:
		return fmt.Sprintf("Valeur attendue d'au plus %s%s.", formatNumber(maxValue), unit)
	}
	return "Répondez par un nombre, par exemple « 250 »."
}

func collapse(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return f
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
