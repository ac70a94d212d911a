package catalog

import "github.com/HendryAvila/flameo/internal/audit"

// followUpQuestions are only asked when a follow-up rule injects them.
var followUpQuestions = []audit.AuditQuestion{
	{
		Key:            KeyKitchenSuppression,
		Text:           "La hotte de cuisine est-elle équipée d'un système d'extinction automatique ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorEquipment},
		FollowUp:       true,
	},
	{
		Key:            KeyWoodFireTreatment,
		Text:           "Le bois a-t-il reçu un traitement ignifuge (classement B-s1,d0 ou M1) ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorMaterial},
		FollowUp:       true,
	},
	{
		Key:            KeyCentralizedAlarm,
		Text:           "Avec plus de 100 occupants, l'alarme est-elle centralisée (système de sécurité incendie) ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorEquipment, IndicatorEvacuation},
		FollowUp:       true,
	},
	{
		Key:            KeyPermanentSecurityService,
		Text:           "Le bâtiment dépasse 8 niveaux : un service de sécurité incendie permanent est-il en place ?",
		ValidationType: audit.ValidationBoolean,
		Required:       true,
		RiskIndicators: []string{IndicatorEvacuation},
		FollowUp:       true,
	},
}

// FollowUp returns the follow-up question template for key.
func FollowUp(key string) (audit.AuditQuestion, bool) {
	for _, q := range followUpQuestions {
		if q.Key == key {
			return cloneQuestion(q), true
		}
	}
	return audit.AuditQuestion{}, false
}

// FollowUps returns every follow-up template.
func FollowUps() []audit.AuditQuestion {
	out := make([]audit.AuditQuestion, len(followUpQuestions))
	for i, q := range followUpQuestions {
		out[i] = cloneQuestion(q)
	}
	return out
}
