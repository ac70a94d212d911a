package validate

import (
	"sort"
	"strings"

	"github.com/HendryAvila/flameo/internal/catalog"
)

// synonymEntry pairs one synonym with its canonical material.
type synonymEntry struct {
	synonym  string
	material string
}

// synonymIndex lists every synonym, longest first, so "laine de verre"
// is consumed before "verre" gets a chance to match.
var synonymIndex = buildSynonymIndex()

func buildSynonymIndex() []synonymEntry {
	var out []synonymEntry
	for _, m := range catalog.Materials() {
		for _, s := range m.Synonyms {
			out = append(out, synonymEntry{synonym: catalog.Normalize(s), material: m.Name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].synonym) > len(out[j].synonym)
	})
	return out
}

// MatchMaterials returns the canonical materials named in raw, in
// catalog order. Synonyms are matched on word boundaries; leftover words
// of four letters or more are then compared to single-word synonyms with
// Similarity at MaterialSimilarityThreshold ("bétons" → béton).
func MatchMaterials(raw string) []string {
	remaining := " " + strings.Join(catalog.Words(catalog.Normalize(raw)), " ") + " "
	found := make(map[string]bool)

	for _, e := range synonymIndex {
		needle := " " + e.synonym + " "
		if strings.Contains(remaining, needle) {
			found[e.material] = true
			remaining = strings.ReplaceAll(remaining, needle, "  ")
		}
	}

	for _, w := range strings.Fields(remaining) {
		if len(w) < 4 {
			continue
		}
		for _, e := range synonymIndex {
			if strings.Contains(e.synonym, " ") {
				continue
			}
			if Similarity(w, e.synonym) >= MaterialSimilarityThreshold {
				found[e.material] = true
				break
			}
		}
	}

	var out []string
	for _, m := range catalog.Materials() {
		if found[m.Name] {
			out = append(out, m.Name)
		}
	}
	return out
}

// Materials validates a construction materials answer. The value is the
// de-duplicated list of canonical materials; a warning names any
// high-risk material.
func Materials(raw string) Result {
	matched := MatchMaterials(raw)
	if len(matched) == 0 {
		return Reject("Aucun matériau reconnu. Exemples : béton, bois, acier, brique, plâtre, verre, polystyrène.")
	}

	var risky []string
	for _, name := range matched {
		if m, ok := catalog.MaterialByName(name); ok && m.HighRisk() {
			risky = append(risky, m.Label)
		}
	}
	if len(risky) > 0 {
		return Warn(matched,
			"Matériau(x) à risque incendie élevé : "+strings.Join(risky, ", ")+
				". Vérifiez leur classement de réaction au feu (Euroclasses) et leur traitement ignifuge.")
	}
	return Accept(matched)
}
