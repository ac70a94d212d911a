package scoring

import (
	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// Regulatory statuses.
const (
	StatusCompliant    = "Conforme"
	StatusNonCompliant = "Non conforme"
)

// Fixed ratios of the regulatory checklist.
const (
	regulatoryAreaPerExtinguisher = 200
	regulatoryMinExits            = 2
	regulatoryMaxRoomSize         = 50.0
	regulatoryMinTraining         = 2
)

// Evaluation is the checklist verdict that accompanies the risk
// assessment in the final report.
type Evaluation struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	Findings        []string `json:"findings,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// standingRecommendations close every evaluation.
var standingRecommendations = []string{
	"Effectuez des exercices d'évacuation réguliers pour améliorer la préparation.",
	"Vérifiez régulièrement l'état des équipements de sécurité.",
}

// Regulatory runs the fixed checklist: one extinguisher per 200 m², two
// exits, one detector per room, rooms of at most 50 m², a posted plan and
// two training sessions a year. Checks whose answers are missing are not
// run. Message is the last failed finding.
func Regulatory(a *audit.AnswerMap) Evaluation {
	ev := Evaluation{
		Status:  StatusCompliant,
		Message: "Le bâtiment respecte les exigences de base contrôlées.",
	}
	fail := func(finding, recommendation string) {
		ev.Status = StatusNonCompliant
		ev.Message = finding
		ev.Findings = append(ev.Findings, finding)
		ev.Recommendations = append(ev.Recommendations, recommendation)
	}

	size, hasSize := a.Number(catalog.KeyBuildingSize)
	if n, ok := a.Int(catalog.KeyFireExtinguishers); ok && hasSize && n < int(size)/regulatoryAreaPerExtinguisher {
		fail("Nombre d'extincteurs insuffisant (1 extincteur requis pour 200 m²).",
			"Ajoutez des extincteurs pour atteindre le ratio requis (1 extincteur pour 200 m²).")
	}
	if n, ok := a.Int(catalog.KeyEmergencyExits); ok && n < regulatoryMinExits {
		fail("Nombre de sorties de secours insuffisant (minimum 2 requises).",
			"Ajoutez au moins deux sorties de secours accessibles et bien signalées.")
	}
	if n, ok := a.Int(catalog.KeySmokeDetectors); ok {
		if rooms, ok := a.Int(catalog.KeyRoomCount); ok && n < rooms {
			fail("Nombre de détecteurs de fumée insuffisant (1 détecteur requis par pièce).",
				"Installez des détecteurs de fumée dans toutes les pièces.")
		}
	}
	if sizes, ok := a.Numbers(catalog.KeyRoomSizes); ok {
		for _, s := range sizes {
			if s > regulatoryMaxRoomSize {
				fail("Certaines pièces dépassent la taille maximale autorisée de 50 m².",
					"Divisez les pièces dépassant 50 m² en espaces plus petits.")
				break
			}
		}
	}

	if plan, ok := a.Bool(catalog.KeyEvacuationPlan); ok && !plan {
		ev.Recommendations = append(ev.Recommendations, "Créez et affichez un plan d'évacuation clair et accessible.")
	}
	if n, ok := a.Int(catalog.KeyTrainingSessions); ok && n < regulatoryMinTraining {
		ev.Recommendations = append(ev.Recommendations, "Organisez au moins deux sessions de formation en sécurité incendie par an.")
	}
	ev.Recommendations = append(ev.Recommendations, standingRecommendations...)
	return ev
}
