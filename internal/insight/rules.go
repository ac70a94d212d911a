package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

// Insight types.
const (
	TypeMaterialRisk         = "material_risk"
	TypeEvacuationBottleneck = "evacuation_bottleneck"
	TypeHighDensity          = "high_density"
	TypeMaintenanceOverdue   = "maintenance_overdue"
	TypeERPClassification    = "erp_classification"
	TypeIGHClassification    = "igh_classification"
	TypeEquipmentMissing     = "equipment_missing"
)

// Rules returns the default rule table in evaluation order.
func Rules() []Rule {
	return []Rule{
		{
			Type:     TypeMaterialRisk,
			Triggers: []string{catalog.KeyConstructionMaterials},
			Urgency:  audit.RiskHigh,
			Norms: []string{
				"Euroclasses NF EN 13501-1 (réaction au feu)",
				"Arrêté du 21 novembre 2002 relatif à la réaction au feu des produits de construction",
			},
			Check: materialRisk,
		},
		{
			Type:     TypeEvacuationBottleneck,
			Triggers: []string{catalog.KeyMaxOccupancy, catalog.KeyEmergencyExits},
			Urgency:  audit.RiskCritical,
			Norms: []string{
				"Règlement de sécurité ERP, articles CO 36 à CO 38 (dégagements)",
				"Code du travail, article R.4227-5",
			},
			Check: bottleneck,
		},
		{
			Type:     TypeHighDensity,
			Triggers: []string{catalog.KeyMaxOccupancy, catalog.KeyBuildingSize},
			Urgency:  audit.RiskMedium,
			Norms:    []string{"Règlement de sécurité ERP, article GN 1 (calcul de l'effectif)"},
			Check:    highDensity,
		},
		{
			Type:     TypeMaintenanceOverdue,
			Triggers: []string{catalog.KeyLastInspection},
			Urgency:  audit.RiskHigh,
			Norms: []string{
				"Code du travail, article R.4227-39",
				"Règle APSAD R4 (extincteurs portatifs)",
			},
			Check: maintenanceOverdue,
		},
		{
			Type:     TypeERPClassification,
			Triggers: []string{catalog.KeyMaxOccupancy},
			Urgency:  audit.RiskMedium,
			Norms:    []string{"Code de la construction et de l'habitation, articles R.143-2 et suivants (ERP)"},
			Check:    erpClassification,
		},
		{
			Type:     TypeIGHClassification,
			Triggers: []string{catalog.KeyFloors},
			Urgency:  audit.RiskHigh,
			Norms:    []string{"Code de la construction et de l'habitation, articles R.146-3 et suivants (IGH)"},
			Check:    ighClassification,
		},
		{
			Type:     TypeEquipmentMissing,
			Triggers: []string{catalog.KeyFireExtinguishers, catalog.KeySmokeDetectors},
			Urgency:  audit.RiskHigh,
			Norms: []string{
				"Code du travail, article R.4227-29",
				"Code de la construction et de l'habitation, article R.142-3",
			},
			Check: equipmentMissing,
		},
	}
}

// --- Rule checks ---

func materialRisk(_ string, a *audit.AnswerMap, _ time.Time) (string, bool) {
	names, ok := a.Strings(catalog.KeyConstructionMaterials)
	if !ok {
		return "", false
	}
	var risky []string
	for _, name := range names {
		if m, ok := catalog.MaterialByName(name); ok && m.HighRisk() {
			risky = append(risky, m.Label)
		}
	}
	if len(risky) == 0 {
		return "", false
	}
	return fmt.Sprintf(
		"Matériaux à risque incendie élevé : %s. Vérifiez leur classement Euroclasses et prévoyez un traitement ignifuge ou un recouvrement protecteur.",
		strings.Join(risky, ", ")), true
}

func bottleneck(_ string, a *audit.AnswerMap, _ time.Time) (string, bool) {
	ratio, ok := catalog.OccupantsPerExit(a)
	if !ok || ratio <= catalog.BottleneckRatio {
		return "", false
	}
	return fmt.Sprintf(
		"Goulot d'étranglement à l'évacuation : %.0f personnes par sortie de secours (seuil %.0f). Ajoutez des sorties ou réduisez l'effectif admis.",
		ratio, catalog.BottleneckRatio), true
}

func highDensity(_ string, a *audit.AnswerMap, _ time.Time) (string, bool) {
	density, ok := catalog.Density(a)
	if !ok || density <= catalog.DensityWarning {
		return "", false
	}
	return fmt.Sprintf(
		"Densité d'occupation élevée : %.1f pers/m² (seuil %.1f). Le dimensionnement des dégagements doit être vérifié.",
		density, catalog.DensityWarning), true
}

func maintenanceOverdue(_ string, a *audit.AnswerMap, now time.Time) (string, bool) {
	days, ok := catalog.DaysSince(a, catalog.KeyLastInspection, now)
	if !ok || days <= catalog.MaintenanceMaxAgeDays {
		return "", false
	}
	return fmt.Sprintf(
		"Dernière inspection il y a %d jours : la vérification annuelle des équipements est dépassée.", days), true
}

func erpClassification(_ string, a *audit.AnswerMap, _ time.Time) (string, bool) {
	occ, ok := a.Number(catalog.KeyMaxOccupancy)
	if !ok || occ <= catalog.ERPOccupancyThreshold {
		return "", false
	}
	return fmt.Sprintf(
		"Avec un effectif de %.0f personnes, l'établissement relève probablement de la réglementation ERP. Vérifiez son type et sa catégorie.",
		occ), true
}

func ighClassification(_ string, a *audit.AnswerMap, _ time.Time) (string, bool) {
	floors, ok := a.Int(catalog.KeyFloors)
	if !ok || floors <= catalog.IGHFloorThreshold {
		return "", false
	}
	return fmt.Sprintf(
		"%d étages : le bâtiment peut relever de la classification IGH (immeuble de grande hauteur), avec des exigences renforcées.",
		floors), true
}

func equipmentMissing(key string, a *audit.AnswerMap, _ time.Time) (string, bool) {
	n, ok := a.Number(key)
	if !ok || n != 0 {
		return "", false
	}
	if key == catalog.KeyFireExtinguishers {
		return "Aucun extincteur déclaré : l'équipement minimal de premier secours est absent.", true
	}
	return "Aucun détecteur de fumée déclaré : la détection précoce d'un départ de feu n'est pas assurée.", true
}
