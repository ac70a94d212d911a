package validate

import (
	"fmt"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// Contextual validates a context-dependent question against answers
// already recorded. The standalone rules for q's type run first; the
// cross-field checks only apply to an accepted value and only when the
// answers they need are present.
func Contextual(q audit.AuditQuestion, raw string, answers *audit.AnswerMap) Result {
	res := Standalone(q, raw)
	if !res.OK() || res.Value == nil || answers == nil {
		return res
	}
	n, ok := asFloat(res.Value)
	if !ok {
		return res
	}

	switch q.Key {
	case catalog.KeyMaxOccupancy:
		return occupancy(res, n, answers)
	case catalog.KeyFireExtinguishers:
		return extinguishers(res, n, answers)
	}
	return res
}

// occupancy rejects a density above catalog.DensityReject and warns above
// catalog.DensityWarning.
func occupancy(res Result, occ float64, answers *audit.AnswerMap) Result {
	size, ok := answers.Number(catalog.KeyBuildingSize)
	if !ok || size <= 0 {
		return res
	}
	density := occ / size
	switch {
	case density > catalog.DensityReject:
		return Reject(fmt.Sprintf(
			"Densité d'occupation irréaliste : %.1f pers/m² pour %s m². Vérifiez l'effectif maximal (au plus %s personnes).",
			density, formatNumber(size), formatNumber(size*catalog.DensityReject)))
	case density > catalog.DensityWarning:
		return res.withWarning(fmt.Sprintf(
			"Densité d'occupation élevée : %.1f pers/m². Les dégagements doivent être dimensionnés en conséquence.", density))
	}
	return res
}

// extinguishers warns below the category requirement and rejects counts
// that exceed one extinguisher per square metre.
func extinguishers(res Result, count float64, answers *audit.AnswerMap) Result {
	size, ok := answers.Number(catalog.KeyBuildingSize)
	if !ok {
		return res
	}
	if size > 0 && count > size {
		return Reject(fmt.Sprintf(
			"%s extincteurs pour %s m² n'est pas plausible. Vérifiez la saisie.",
			formatNumber(count), formatNumber(size)))
	}
	required, _ := catalog.RequiredExtinguishers(answers)
	if int(count) < required {
		return res.withWarning(fmt.Sprintf(
			"Nombre d'extincteurs insuffisant : %s pour %d requis (catégorie %s, %s m²).",
			formatNumber(count), required, catalog.BuildingCategory(answers), formatNumber(size)))
	}
	return res
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
