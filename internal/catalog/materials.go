package catalog

import "github.com/HendryAvila/flameo/internal/audit"

// Material is a canonical construction material with its recognised
// spellings and its reaction-to-fire risk tag.
type Material struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Synonyms  []string        `json:"synonyms"`
	FireRisk  audit.RiskLevel `json:"fire_risk"`
	Resistant bool            `json:"resistant"`
}

// HighRisk reports whether the material warrants a warning at answer time.
func (m Material) HighRisk() bool {
	return m.FireRisk >= audit.RiskHigh
}

// Canonical material names stored in answers.
const (
	MaterialWood          = "bois"
	MaterialConcrete      = "beton"
	MaterialSteel         = "acier"
	MaterialBrick         = "brique"
	MaterialStone         = "pierre"
	MaterialPlaster       = "platre"
	MaterialGlass         = "verre"
	MaterialMineralWool   = "laine minerale"
	MaterialPlastic       = "plastique"
	MaterialPolystyrene   = "polystyrene"
	MaterialPolyurethane  = "polyurethane"
	MaterialTextile       = "textile"
	MaterialCompositePane = "panneau sandwich"
)

// materials is ordered: matched sets are reported in this order.
// Synonyms are written pre-normalized (lowercase, no diacritics).
var materials = []Material{
	{
		Name:     MaterialWood,
		Label:    "bois (non traité)",
		Synonyms: []string{"bois", "ossature bois", "charpente bois", "wood", "timber", "lambris", "parquet"},
		FireRisk: audit.RiskHigh,
	},
	{
		Name:      MaterialConcrete,
		Label:     "béton",
		Synonyms:  []string{"beton", "beton arme", "concrete", "parpaing", "agglo"},
		FireRisk:  audit.RiskVeryLow,
		Resistant: true,
	},
	{
		Name:      MaterialSteel,
		Label:     "acier",
		Synonyms:  []string{"acier", "steel", "metal", "metallique", "charpente metallique", "fer"},
		FireRisk:  audit.RiskLow,
		Resistant: true,
	},
	{
		Name:      MaterialBrick,
		Label:     "brique",
		Synonyms:  []string{"brique", "briques", "brick", "terre cuite"},
		FireRisk:  audit.RiskVeryLow,
		Resistant: true,
	},
	{
		Name:      MaterialStone,
		Label:     "pierre",
		Synonyms:  []string{"pierre", "pierres", "stone", "moellon"},
		FireRisk:  audit.RiskVeryLow,
		Resistant: true,
	},
	{
		Name:      MaterialPlaster,
		Label:     "plâtre",
		Synonyms:  []string{"platre", "placo", "placoplatre", "plaque de platre", "gypse", "ba13"},
		FireRisk:  audit.RiskLow,
		Resistant: true,
	},
	{
		Name:     MaterialGlass,
		Label:    "verre",
		Synonyms: []string{"verre", "vitrage", "glass", "baie vitree"},
		FireRisk: audit.RiskLow,
	},
	{
		Name:      MaterialMineralWool,
		Label:     "laine minérale",
		Synonyms:  []string{"laine minerale", "laine de roche", "laine de verre", "rockwool"},
		FireRisk:  audit.RiskVeryLow,
		Resistant: true,
	},
	{
		Name:     MaterialPlastic,
		Label:    "plastique",
		Synonyms: []string{"plastique", "pvc", "plastic", "polycarbonate"},
		FireRisk: audit.RiskHigh,
	},
	{
		Name:     MaterialPolystyrene,
		Label:    "polystyrène",
		Synonyms: []string{"polystyrene", "styrofoam", "isolant synthetique", "pse"},
		FireRisk: audit.RiskVeryHigh,
	},
	{
		Name:     MaterialPolyurethane,
		Label:    "polyuréthane",
		Synonyms: []string{"polyurethane", "mousse", "mousse polyurethane", "pur"},
		FireRisk: audit.RiskVeryHigh,
	},
	{
		Name:     MaterialTextile,
		Label:    "textile",
		Synonyms: []string{"textile", "tissu", "moquette", "rideaux", "rideau", "tenture"},
		FireRisk: audit.RiskMedium,
	},
	{
		Name:     MaterialCompositePane,
		Label:    "panneau sandwich",
		Synonyms: []string{"panneau sandwich", "panneaux sandwich", "bardage composite"},
		FireRisk: audit.RiskHigh,
	},
}

// Materials returns the material catalog in canonical order.
func Materials() []Material {
	out := make([]Material, len(materials))
	for i, m := range materials {
		m.Synonyms = append([]string(nil), m.Synonyms...)
		out[i] = m
	}
	return out
}

// MaterialByName finds a canonical material.
func MaterialByName(name string) (Material, bool) {
	for _, m := range materials {
		if m.Name == name {
			m.Synonyms = append([]string(nil), m.Synonyms...)
			return m, true
		}
	}
	return Material{}, false
}
