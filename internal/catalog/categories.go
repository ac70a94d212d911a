package catalog

// --- Building categories ---

// Category groups building types that share equipment requirements.
type Category string

const (
	CategoryResidential Category = "residential"
	CategoryCommercial  Category = "commercial"
	CategoryIndustrial  Category = "industrial"
	CategoryPublic      Category = "public"
)

// Requirement is one line of the equipment table: one unit per Ratio m²,
// never fewer than Min units.
type Requirement struct {
	Ratio int `json:"ratio"`
	Min   int `json:"min"`
}

// Required returns max(Min, size // Ratio).
func (r Requirement) Required(size float64) int {
	n := 0
	if r.Ratio > 0 && size > 0 {
		n = int(size) / r.Ratio
	}
	if n < r.Min {
		return r.Min
	}
	return n
}

// Requirements holds the equipment table of one category.
type Requirements struct {
	Extinguishers Requirement `json:"extinguishers"`
	Detectors     Requirement `json:"detectors"`
	Exits         Requirement `json:"exits"`
}

// categoryTable is the per-category equipment table (m² per unit, floor).
var categoryTable = map[Category]Requirements{
	CategoryResidential: {
		Extinguishers: Requirement{Ratio: 200, Min: 1},
		Detectors:     Requirement{Ratio: 50, Min: 1},
		Exits:         Requirement{Ratio: 1000, Min: 1},
	},
	CategoryCommercial: {
		Extinguishers: Requirement{Ratio: 150, Min: 2},
		Detectors:     Requirement{Ratio: 60, Min: 2},
		Exits:         Requirement{Ratio: 500, Min: 2},
	},
	CategoryIndustrial: {
		Extinguishers: Requirement{Ratio: 100, Min: 2},
		Detectors:     Requirement{Ratio: 100, Min: 2},
		Exits:         Requirement{Ratio: 800, Min: 2},
	},
	CategoryPublic: {
		Extinguishers: Requirement{Ratio: 100, Min: 2},
		Detectors:     Requirement{Ratio: 40, Min: 2},
		Exits:         Requirement{Ratio: 300, Min: 2},
	},
}

// categoryKeywords are matched against the normalized building type.
// Checked in this order; anything unmatched is commercial.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryResidential, []string{"logement", "habitation", "maison", "appartement", "residence", "residentiel", "immeuble d habitation"}},
	{CategoryIndustrial, []string{"usine", "entrepot", "atelier", "industriel", "industrie", "stockage", "logistique", "production"}},
	{CategoryPublic, []string{"ecole", "college", "lycee", "universite", "hopital", "clinique", "mairie", "musee", "bibliotheque", "salle de spectacle", "theatre", "cinema", "gymnase", "creche", "eglise", "public"}},
}

// CategoryFor derives the category of a building type by keyword match.
func CategoryFor(buildingType string) Category {
	normalized := Normalize(buildingType)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if ContainsWord(normalized, kw) {
				return entry.category
			}
		}
	}
	return CategoryCommercial
}

// RequirementsFor returns the equipment table of a category. Unknown
// categories fall back to commercial.
func RequirementsFor(c Category) Requirements {
	if r, ok := categoryTable[c]; ok {
		return r
	}
	return categoryTable[CategoryCommercial]
}

// --- Enumerations ---

// buildingTypes lists the accepted building types (display form).
var buildingTypes = []string{
	"bureau", "commerce", "magasin", "restaurant", "hôtel", "école", "hôpital",
	"entrepôt", "usine", "atelier", "logement", "immeuble d'habitation",
	"maison", "salle de spectacle", "gymnase", "musée", "crèche", "parking",
}

// buildingUsages lists the accepted primary usages (display form).
var buildingUsages = []string{
	"bureaux", "vente", "restauration", "hébergement", "enseignement", "soins",
	"stockage", "production", "habitation", "spectacle", "sport", "culte", "stationnement",
}

// BuildingTypes returns the accepted building types.
func BuildingTypes() []string {
	return append([]string(nil), buildingTypes...)
}

// BuildingUsages returns the accepted primary usages.
func BuildingUsages() []string {
	return append([]string(nil), buildingUsages...)
}
