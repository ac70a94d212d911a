// Package catalog defines the fixed content of a fire-safety audit: the
// ordered primary questions, the construction material catalog, the
// building category table and the follow-up question templates.
//
// Everything here is read-only. Accessors return copies so callers cannot
// mutate the shared definitions.
package catalog

import "github.com/HendryAvila/flameo/internal/audit"

// --- Answer keys ---
//
// The key namespace is shared by every package that reads answers.

const (
	KeyBuildingName          = "buildingName"
	KeyBuildingType          = "buildingType"
	KeyBuildingUsage         = "buildingUsage"
	KeyBuildingSize          = "buildingSize"
	KeyFloors                = "floors"
	KeyRoomCount             = "roomCount"
	KeyRoomSizes             = "roomSizes"
	KeyMaxOccupancy          = "maxOccupancy"
	KeyFireExtinguishers     = "fireExtinguishers"
	KeySmokeDetectors        = "smokeDetectors"
	KeyEmergencyExits        = "emergencyExits"
	KeyLastInspection        = "lastInspection"
	KeyLastFireDrill         = "lastFireDrill"
	KeyTrainingSessions      = "trainingSessions"
	KeyEvacuationPlan        = "evacuationPlan"
	KeyConstructionMaterials = "constructionMaterials"
	KeyHighRiskAreas         = "highRiskAreas"
	KeyElectricalCompliance  = "electricalCompliance"
	KeyAlarmSystem           = "alarmSystem"
	KeySprinklerSystem       = "sprinklerSystem"

	// Follow-up keys, only asked when a rule injects them.
	KeyKitchenSuppression       = "kitchenSuppression"
	KeyWoodFireTreatment        = "woodFireTreatment"
	KeyCentralizedAlarm         = "centralizedAlarm"
	KeyPermanentSecurityService = "permanentSecurityService"
)

// --- Risk indicator tags ---

const (
	IndicatorOccupancy   = "occupancy"
	IndicatorEvacuation  = "evacuation"
	IndicatorEquipment   = "equipment"
	IndicatorMaintenance = "maintenance"
	IndicatorMaterial    = "material"
	IndicatorStructure   = "structure"
	IndicatorElectrical  = "electrical"
)

func bound(v float64) *float64 { return &v }

// primaryQuestions is the canonical, ordered questionnaire.
var primaryQuestions = []audit.AuditQuestion{
	{
		Key:            KeyBuildingName,
		Text:           "Quel est le nom du bâtiment ou de l'établissement ?",
		ValidationType: audit.ValidationText,
		Required:       true,
	},
	{
		Key:            KeyBuildingType,
		Text:           "Quel est le type de bâtiment ?",
		ValidationType: audit.ValidationBuildingType,
		Required:       true,
		AllowedValues:  BuildingTypes(),
	},
	{
		Key:            KeyBuildingUsage,
		Text:           "Quel est l'usage principal du bâtiment ?",
		ValidationType: audit.ValidationUsage,
		Required:       true,
		AllowedValues:  BuildingUsages(),
	},
	{
		Key:            KeyBuildingSize,
		Text:           "Quelle est la surface totale du bâtiment en m² ?",
		ValidationType: audit.ValidationNumber,
		MinValue:       bound(1),
		MaxValue:       bound(1_000_000),
		Unit:           "m²",
		Required:       true,
		RiskIndicators: []string{IndicatorStructure, IndicatorOccupancy},
	},
	{
		Key:            KeyFloors,
		Text:           "Combien de niveaux (étages, rez-de-chaussée compris) compte le bâtiment ?",
		ValidationType: audit.ValidationNumber,
		MinValue:       bound(1),
		MaxValue:       bound(200),
		Unit:           "niveaux",
		Required:       true,
		RiskIndicators: []string{IndicatorStructure, IndicatorEvacuation},
	},
	{
		Key:            KeyRoomCount,
		Text:           "Combien de pièces ou locaux distincts le bâtiment comporte-t-il ?",
		ValidationType: audit.ValidationNumber,
		MinValue:       bound(1),
		MaxValue:       bound(10_000),
		Unit:           "pièces",
		Required:       true,
		RiskIndicators: []string{IndicatorEquipment},
	},
	{
		Key:            KeyRoomSizes,
		Text:           "Quelles sont les surfaces des principales pièces en m² (séparées par des virgules) ?",
		ValidationType: audit.ValidationNumberList,
		MinValue:       bound(1),
		MaxValue:       bound(1_000_000),
		Unit:           "m²",
		Required:       false,
		RiskIndicators: []string{IndicatorStructure},
	},
	{
		Key:              KeyMaxOccupancy,
		Text:             "Quelle est la capacité maximale d'occupation (nombre de personnes) ?",
		ValidationType:   audit.ValidationNumber,
		MinValue:         bound(1),
		MaxValue:         bound(100_000),
		Unit:             "personnes",
		Required:         true,
		RiskIndicators:   []string{IndicatorOccupancy, IndicatorEvacuation},
		ContextDependent: true,
	},
	{
		Key:              KeyFireExtinguishers,
		Text:             "Combien d'extincteurs sont disponibles ?",
		ValidationType:   audit.ValidationNumber,
		MinValue:         bound(0),
		MaxValue:         bound(10_000),
		Unit:             "extincteurs",
		Required:         true,
		RiskIndicators:   []string{IndicatorEquipment},
		ContextDependent: true,
	},
	{
		Key:            KeySmokeDetectors,
		Text:           "Combien de détecteurs de fumée sont installés ?",
		ValidationType: audit.ValidationNumber,
		MinValue:       bound(0),
		MaxValue:       bound(10_000),
		Unit:           "détecteurs",
		Required:       true,
		RiskIndicators: []string{IndicatorEquipment},
	},
	{
		Key:            KeyEmergencyExits,
		Text:           "Combien de sorties de secours sont disponibles ?",
		ValidationType: audit.ValidationNumber,
		MinValue:       bound(0),
		MaxValue:       bound(1_000),
		Unit:           "sorties",
		Required:       true,
		RiskIndicators: []string{IndicatorEvacuation},
	},
	{
		Key:            KeyLastInspection,
		Text:           "Quelle est la date de la dernière inspection des équipements (JJ/MM/AAAA) ?",
		ValidationType: audit.ValidationDate,
		Required:       true,
		RiskIndicators: []string{IndicatorMaintenance},
	},
	{
		Key:            KeyLastFireDrill,
		Text:           "Quelle est la date du dernier exercice d'évacuation (JJ/MM/AAAA, ou « jamais ») ?",
		ValidationType: audit.ValidationDate,
		Required:       false,
		RiskIndicators: []string{IndicatorEvacuation},
	},
	{
		Key:            KeyTrainingSessions,
		Text:           "Combien de sessions de formation incendie ont été réalisées cette année ?",
		ValidationType: audit.ValidationNumber,
		MinValue:       bound(0),
		MaxValue:       bound(365),
		Unit:           "sessions",
		Required:       true,
		RiskIndicators: []string{IndicatorEvacuation},
	},
	{
		Key:            KeyEvacuationPlan,
		Text:           "Un plan d'évacuation est-il affiché ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorEvacuation},
	},
	{
		Key:            KeyConstructionMaterials,
		Text:           "Quels matériaux de construction sont utilisés ?",
		ValidationType: audit.ValidationMaterials,
		Required:       true,
		RiskIndicators: []string{IndicatorMaterial, IndicatorStructure},
	},
	{
		Key:            KeyHighRiskAreas,
		Text:           "Décrivez les zones à risque particulier (cuisine, stockage de produits inflammables, local technique...), ou répondez « aucune ».",
		ValidationType: audit.ValidationText,
		Required:       false,
		RiskIndicators: []string{IndicatorMaterial},
	},
	{
		Key:            KeyElectricalCompliance,
		Text:           "L'installation électrique a-t-elle été vérifiée et déclarée conforme ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorElectrical},
	},
	{
		Key:            KeyAlarmSystem,
		Text:           "Un système d'alarme incendie est-il installé ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorEquipment},
	},
	{
		Key:            KeySprinklerSystem,
		Text:           "Un système de sprinklers est-il installé ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorEquipment},
	},
}

// Questions returns a copy of the primary questionnaire in order.
func Questions() []audit.AuditQuestion {
	out := make([]audit.AuditQuestion, len(primaryQuestions))
	for i, q := range primaryQuestions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// Len returns the number of primary questions.
func Len() int {
	return len(primaryQuestions)
}

// At returns the primary question at index i.
func At(i int) (audit.AuditQuestion, bool) {
	if i < 0 || i >= len(primaryQuestions) {
		return audit.AuditQuestion{}, false
	}
	return cloneQuestion(primaryQuestions[i]), true
}

// Lookup finds a primary or follow-up question by key.
func Lookup(key string) (audit.AuditQuestion, bool) {
	for _, q := range primaryQuestions {
		if q.Key == key {
			return cloneQuestion(q), true
		}
	}
	for _, q := range followUpQuestions {
		if q.Key == key {
			return cloneQuestion(q), true
		}
	}
	return audit.AuditQuestion{}, false
}

// Index returns the position of a primary question, or -1.
func Index(key string) int {
	for i, q := range primaryQuestions {
		if q.Key == key {
			return i
		}
	}
	return -1
}

// cloneQuestion deep-copies the pointer and slice fields of q.
func cloneQuestion(q audit.AuditQuestion) audit.AuditQuestion {
	if q.MinValue != nil {
		q.MinValue = bound(*q.MinValue)
	}
	if q.MaxValue != nil {
		q.MaxValue = bound(*q.MaxValue)
	}
	q.AllowedValues = append([]string(nil), q.AllowedValues...)
	q.RiskIndicators = append([]string(nil), q.RiskIndicators...)
	return q
}
