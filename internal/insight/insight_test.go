package insight

import (
	"testing"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func answers(t *testing.T, kv ...any) *audit.AnswerMap {
	t.Helper()
	a := audit.NewAnswerMap()
	for i := 0; i < len(kv); i += 2 {
		if err := a.Set(kv[i].(string), kv[i+1]); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	return a
}

func types(insights []audit.ContextualInsight) []string {
	var out []string
	for _, in := range insights {
		out = append(out, in.InsightType)
	}
	return out
}

func hasType(insights []audit.ContextualInsight, typ string) bool {
	for _, in := range insights {
		if in.InsightType == typ {
			return true
		}
	}
	return false
}

func TestDetect_MaterialRisk(t *testing.T) {
	a := answers(t, catalog.KeyConstructionMaterials, []string{catalog.MaterialWood, catalog.MaterialConcrete})
	got := Detect(catalog.KeyConstructionMaterials, a, now)
	if len(got) != 1 || got[0].InsightType != TypeMaterialRisk {
		t.Fatalf("got %v, want one material_risk", types(got))
	}
	if got[0].Urgency != audit.RiskHigh {
		t.Errorf("urgency = %v, want HIGH", got[0].Urgency)
	}
	if len(got[0].RelatedNorms) == 0 {
		t.Error("material_risk should cite norms")
	}
	if got[0].SourceKey != catalog.KeyConstructionMaterials {
		t.Errorf("source key = %q", got[0].SourceKey)
	}
}

func TestDetect_SafeMaterials(t *testing.T) {
	a := answers(t, catalog.KeyConstructionMaterials, []string{catalog.MaterialConcrete, catalog.MaterialSteel})
	if got := Detect(catalog.KeyConstructionMaterials, a, now); len(got) != 0 {
		t.Errorf("got %v, want none", types(got))
	}
}

func TestDetect_EvacuationBottleneck(t *testing.T) {
	tests := []struct {
		name  string
		occ   int
		exits int
		want  bool
	}{
		{"ratio above threshold", 250, 2, true},
		{"ratio at threshold", 200, 2, false},
		{"zero exits counts as one", 101, 0, true},
		{"plenty of exits", 300, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := answers(t, catalog.KeyMaxOccupancy, tt.occ, catalog.KeyEmergencyExits, tt.exits)
			got := Detect(catalog.KeyEmergencyExits, a, now)
			if hasType(got, TypeEvacuationBottleneck) != tt.want {
				t.Errorf("got %v, want bottleneck=%v", types(got), tt.want)
			}
		})
	}
}

func TestDetect_BottleneckIsCritical(t *testing.T) {
	a := answers(t, catalog.KeyMaxOccupancy, 500, catalog.KeyEmergencyExits, 1)
	for _, in := range Detect(catalog.KeyEmergencyExits, a, now) {
		if in.InsightType == TypeEvacuationBottleneck && in.Urgency != audit.RiskCritical {
			t.Errorf("urgency = %v, want CRITICAL", in.Urgency)
		}
	}
}

func TestDetect_OnlyWatchedKeysTrigger(t *testing.T) {
	a := answers(t,
		catalog.KeyMaxOccupancy, 500,
		catalog.KeyEmergencyExits, 1,
		catalog.KeyBuildingName, "Salle des fêtes",
	)
	if got := Detect(catalog.KeyBuildingName, a, now); len(got) != 0 {
		t.Errorf("recording buildingName produced %v", types(got))
	}
}

func TestDetect_OccupancyRules(t *testing.T) {
	a := answers(t, catalog.KeyBuildingSize, 100, catalog.KeyMaxOccupancy, 300)
	got := types(Detect(catalog.KeyMaxOccupancy, a, now))
	want := []string{TypeHighDensity, TypeERPClassification}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("insight %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDetect_SmallOccupancyIsNotERP(t *testing.T) {
	a := answers(t, catalog.KeyMaxOccupancy, 19)
	if got := Detect(catalog.KeyMaxOccupancy, a, now); hasType(got, TypeERPClassification) {
		t.Error("19 occupants should not trigger erp_classification")
	}
}

func TestDetect_MaintenanceOverdue(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2024-06-15", false}, // 365 days
		{"2024-06-14", true},  // 366 days
		{"2025-01-10", false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			a := answers(t, catalog.KeyLastInspection, tt.date)
			got := Detect(catalog.KeyLastInspection, a, now)
			if hasType(got, TypeMaintenanceOverdue) != tt.want {
				t.Errorf("got %v, want overdue=%v", types(got), tt.want)
			}
		})
	}
}

func TestDetect_IGH(t *testing.T) {
	if got := Detect(catalog.KeyFloors, answers(t, catalog.KeyFloors, 9), now); !hasType(got, TypeIGHClassification) {
		t.Error("9 floors should trigger igh_classification")
	}
	if got := Detect(catalog.KeyFloors, answers(t, catalog.KeyFloors, 8), now); len(got) != 0 {
		t.Errorf("8 floors produced %v", types(got))
	}
}

func TestDetect_EquipmentMissing(t *testing.T) {
	a := answers(t, catalog.KeyFireExtinguishers, 0, catalog.KeySmokeDetectors, 3)
	if got := Detect(catalog.KeyFireExtinguishers, a, now); !hasType(got, TypeEquipmentMissing) {
		t.Error("zero extinguishers should trigger equipment_missing")
	}
	if got := Detect(catalog.KeySmokeDetectors, a, now); len(got) != 0 {
		t.Errorf("three detectors produced %v", types(got))
	}
}

func TestDetect_NormsAreNotShared(t *testing.T) {
	a := answers(t, catalog.KeyFloors, 12)
	first := Detect(catalog.KeyFloors, a, now)
	first[0].RelatedNorms[0] = "changed"
	second := Detect(catalog.KeyFloors, a, now)
	if second[0].RelatedNorms[0] == "changed" {
		t.Error("insights must not share norm slices")
	}
}

func TestNewDetector_CustomRules(t *testing.T) {
	d := NewDetector(Rule{
		Type:     "always",
		Triggers: []string{"x"},
		Urgency:  audit.RiskLow,
		Check: func(string, *audit.AnswerMap, time.Time) (string, bool) {
			return "hit", true
		},
	})
	got := d.Detect("x", audit.NewAnswerMap(), now)
	if len(got) != 1 || got[0].Message != "hit" {
		t.Errorf("got %+v", got)
	}
	if got := d.Detect("y", audit.NewAnswerMap(), now); len(got) != 0 {
		t.Errorf("unwatched key produced %+v", got)
	}
}
