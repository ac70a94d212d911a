package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// NoActionNeeded is the single action reported when nothing triggers.
const NoActionNeeded = "Aucune action prioritaire : les mesures déclarées sont adaptées. Maintenez les vérifications périodiques."

// sprinklerSizeThreshold is the footprint above which missing sprinklers
// become an upgrade suggestion.
const sprinklerSizeThreshold = 1000

// PriorityActions lists remediation actions, most urgent first, capped at
// audit.MaxPriorityActions. fire is the building's fire risk level.
//
// Tiers, in order: equipment deficits (extinguishers, exits, detectors),
// overdue maintenance, training, evacuation plan, drills, material
// treatment, then system upgrades.
func PriorityActions(a *audit.AnswerMap, fire audit.RiskLevel, now time.Time) []string {
	var actions []string

	deficits := []struct {
		key      string
		required func(*audit.AnswerMap) (int, bool)
		format   string
	}{
		{catalog.KeyFireExtinguishers, catalog.RequiredExtinguishers,
			"Installer des extincteurs supplémentaires : déficit de %d (%d présents, %d requis)."},
		{catalog.KeyEmergencyExits, catalog.RequiredExits,
			"Créer des sorties de secours supplémentaires : déficit de %d (%d existantes, %d requises)."},
		{catalog.KeySmokeDetectors, catalog.RequiredDetectors,
			"Installer des détecteurs de fumée supplémentaires : déficit de %d (%d présents, %d requis)."},
	}
	for _, d := range deficits {
		actual, ok := a.Int(d.key)
		required, okReq := d.required(a)
		if ok && okReq && actual < required {
			actions = append(actions, fmt.Sprintf(d.format, required-actual, actual, required))
		}
	}

	if days, ok := catalog.DaysSince(a, catalog.KeyLastInspection, now); ok && days > catalog.MaintenanceMaxAgeDays {
		actions = append(actions, fmt.Sprintf(
			"Faire vérifier les équipements de sécurité sans délai : dernière inspection il y a %d jours.", days))
	}

	if sessions, ok := a.Int(catalog.KeyTrainingSessions); !ok || sessions < 2 {
		actions = append(actions, fmt.Sprintf(
			"Organiser au moins deux sessions de formation incendie par an (%d réalisée(s)).", sessions))
	}

	if plan, _ := a.Bool(catalog.KeyEvacuationPlan); !plan {
		actions = append(actions, "Établir et afficher un plan d'évacuation à chaque niveau.")
	}

	days, ok := catalog.DaysSince(a, catalog.KeyLastFireDrill, now)
	switch {
	case !ok:
		actions = append(actions, "Organiser un exercice d'évacuation : aucun exercice récent n'est déclaré.")
	case days > drillOverdueDays:
		actions = append(actions, fmt.Sprintf(
			"Organiser un exercice d'évacuation : le dernier date de %d jours.", days))
	}

	var untreated []string
	for _, m := range materialsOf(a) {
		if effectiveRisk(a, m) >= audit.RiskHigh {
			untreated = append(untreated, m.Label)
		}
	}
	if len(untreated) > 0 {
		actions = append(actions, "Appliquer un traitement ignifuge ou un recouvrement protecteur sur : "+
			strings.Join(untreated, ", ")+".")
	}

	actions = append(actions, upgrades(a, fire)...)

	if len(actions) == 0 {
		return []string{NoActionNeeded}
	}
	if len(actions) > audit.MaxPriorityActions {
		actions = actions[:audit.MaxPriorityActions]
	}
	return actions
}

// upgrades suggests optional safety systems. Each suggestion needs an
// explicit "no" answer.
func upgrades(a *audit.AnswerMap, fire audit.RiskLevel) []string {
	var out []string
	if alarm, ok := a.Bool(catalog.KeyAlarmSystem); ok && !alarm {
		out = append(out, "Installer un système d'alarme incendie.")
	}
	if sprinkler, ok := a.Bool(catalog.KeySprinklerSystem); ok && !sprinkler {
		size, _ := a.Number(catalog.KeyBuildingSize)
		if size > sprinklerSizeThreshold || fire >= audit.RiskHigh {
			out = append(out, "Étudier l'installation d'un système de sprinklers.")
		}
	}
	if centralized, ok := a.Bool(catalog.KeyCentralizedAlarm); ok && !centralized {
		out = append(out, "Centraliser l'alarme incendie (SSI) pour un effectif de plus de 100 personnes.")
	}
	if kitchen, ok := a.Bool(catalog.KeyKitchenSuppression); ok && !kitchen {
		out = append(out, "Équiper la hotte de cuisine d'un système d'extinction automatique.")
	}
	if security, ok := a.Bool(catalog.KeyPermanentSecurityService); ok && !security {
		out = append(out, "Mettre en place un service de sécurité incendie permanent.")
	}
	return out
}
