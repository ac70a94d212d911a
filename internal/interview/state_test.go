package interview

import (
	"errors"
	"testing"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
	"github.com/HendryAvila/flameo/internal/insight"
	"github.com/HendryAvila/flameo/internal/validate"
)

// recent returns a date a few months back, inside every accepted window.
func recent(months int) string {
	return time.Now().AddDate(0, -months, 0).Format("02/01/2006")
}

// officeScript answers every question of a small office building.
func officeScript() map[string]string {
	return map[string]string{
		catalog.KeyBuildingName:          "Siège social Horizon",
		catalog.KeyBuildingType:          "bureau",
		catalog.KeyBuildingUsage:         "bureaux",
		catalog.KeyBuildingSize:          "1000",
		catalog.KeyFloors:                "3",
		catalog.KeyRoomCount:             "20",
		catalog.KeyRoomSizes:             "40 ; 50 ; 30",
		catalog.KeyMaxOccupancy:          "150",
		catalog.KeyCentralizedAlarm:      "oui",
		catalog.KeyFireExtinguishers:     "2",
		catalog.KeySmokeDetectors:        "20",
		catalog.KeyEmergencyExits:        "3",
		catalog.KeyLastInspection:        recent(2),
		catalog.KeyLastFireDrill:         "aucun",
		catalog.KeyTrainingSessions:      "2",
		catalog.KeyEvacuationPlan:        "oui",
		catalog.KeyConstructionMaterials: "béton et acier",
		catalog.KeyHighRiskAreas:         "aucune",
		catalog.KeyElectricalCompliance:  "oui",
		catalog.KeyAlarmSystem:           "oui",
		catalog.KeySprinklerSystem:       "non",
	}
}

// run answers questions from script until the interview completes and
// returns the keys in the order they were asked.
func run(t *testing.T, s *State, script map[string]string) []string {
	t.Helper()
	var asked []string
	for i := 0; i < 100; i++ {
		q, ok := s.CurrentQuestion()
		if !ok {
			return asked
		}
		raw, ok := script[q.Key]
		if !ok {
			t.Fatalf("no scripted answer for %q", q.Key)
		}
		asked = append(asked, q.Key)
		res, err := s.Submit(raw)
		if err != nil {
			t.Fatalf("Submit(%q) for %s: %v", raw, q.Key, err)
		}
		if !res.Result.OK() {
			t.Fatalf("answer %q to %s rejected: %s", raw, q.Key, res.Result.Reason)
		}
		checkInvariant(t, s)
	}
	t.Fatal("interview did not complete")
	return nil
}

func checkInvariant(t *testing.T, s *State) {
	t.Helper()
	want := s.PrimaryIndex() >= catalog.Len() && len(s.Pending()) == 0
	if s.Complete() != want {
		t.Fatalf("complete=%v but index=%d pending=%d", s.Complete(), s.PrimaryIndex(), len(s.Pending()))
	}
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

func TestNew_StartsAtFirstQuestion(t *testing.T) {
	s := New()
	q, ok := s.CurrentQuestion()
	if !ok || q.Key != catalog.KeyBuildingName {
		t.Fatalf("current = %q, %v; want buildingName", q.Key, ok)
	}
	if s.Complete() || s.PrimaryIndex() != 0 {
		t.Error("new interview should be at index 0 and not complete")
	}
	checkInvariant(t, s)
}

func TestSubmit_FullInterview(t *testing.T) {
	s := New()
	asked := run(t, s, officeScript())

	if !s.Complete() {
		t.Fatal("interview should be complete")
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Error("no question should remain")
	}
	// 20 primary questions plus the centralized alarm follow-up.
	if len(asked) != catalog.Len()+1 {
		t.Errorf("asked %d questions, want %d", len(asked), catalog.Len()+1)
	}
	a := s.Answers()
	if v, _ := a.Int(catalog.KeyBuildingSize); v != 1000 {
		t.Errorf("buildingSize = %v", v)
	}
	if a.Has(catalog.KeyLastFireDrill) || a.Has(catalog.KeyHighRiskAreas) {
		t.Error("skipped optional questions must not be recorded")
	}
	skipped := s.Skipped()
	if len(skipped) != 2 {
		t.Errorf("skipped = %v, want lastFireDrill and highRiskAreas", skipped)
	}
}

func TestSubmit_FollowUpIsAskedNext(t *testing.T) {
	script := officeScript()
	script[catalog.KeyBuildingType] = "restaurant"
	script[catalog.KeyKitchenSuppression] = "non"

	s := New()
	asked := run(t, s, script)

	i := indexOf(asked, catalog.KeyBuildingType)
	if i < 0 || i+2 >= len(asked) {
		t.Fatalf("asked = %v", asked)
	}
	if asked[i+1] != catalog.KeyKitchenSuppression {
		t.Errorf("after buildingType asked %q, want kitchenSuppression", asked[i+1])
	}
	if asked[i+2] != catalog.KeyBuildingUsage {
		t.Errorf("after follow-up asked %q, want buildingUsage", asked[i+2])
	}
}

func TestSubmit_WoodQueuesTreatmentQuestion(t *testing.T) {
	script := officeScript()
	script[catalog.KeyConstructionMaterials] = "bois et béton"
	script[catalog.KeyWoodFireTreatment] = "oui"

	s := New()
	asked := run(t, s, script)
	if indexOf(asked, catalog.KeyWoodFireTreatment) != indexOf(asked, catalog.KeyConstructionMaterials)+1 {
		t.Errorf("asked = %v, want woodFireTreatment right after materials", asked)
	}

	var materialInsight bool
	for _, in := range s.Insights() {
		if in.InsightType == insight.TypeMaterialRisk {
			materialInsight = true
		}
	}
	if !materialInsight {
		t.Error("expected a material_risk insight")
	}
}

func TestSubmit_RejectionKeepsQuestion(t *testing.T) {
	s := New()
	if _, err := s.Submit("Entrepôt Nord"); err != nil {
		t.Fatal(err)
	}
	res, err := s.Submit("vaisseau spatial")
	if err != nil {
		t.Fatal(err)
	}
	if res.Result.OK() {
		t.Fatal("expected rejection")
	}
	if res.Next == nil || res.Next.Key != catalog.KeyBuildingType {
		t.Errorf("next = %+v, want buildingType again", res.Next)
	}
	if s.PrimaryIndex() != 1 || s.Answers().Has(catalog.KeyBuildingType) {
		t.Error("rejected answer must not change state")
	}
}

func TestSubmit_WarningIsRecorded(t *testing.T) {
	s := New()
	for _, raw := range []string{"Magasin Central", "commerce", "vente", "100", "1", "4", "aucun"} {
		if res, err := s.Submit(raw); err != nil || !res.Result.OK() {
			t.Fatalf("Submit(%q) = %+v, %v", raw, res.Result, err)
		}
	}
	res, err := s.Submit("300")
	if err != nil {
		t.Fatal(err)
	}
	if res.Result.Outcome != validate.AcceptedWithWarning {
		t.Fatalf("outcome = %v, want warning", res.Result.Outcome)
	}
	if v, _ := s.Answers().Int(catalog.KeyMaxOccupancy); v != 300 {
		t.Errorf("maxOccupancy = %d, want 300", v)
	}
	if len(res.FollowUps) != 1 || res.FollowUps[0].Key != catalog.KeyCentralizedAlarm {
		t.Errorf("follow-ups = %+v", res.FollowUps)
	}
}

func TestSubmit_AfterCompletion(t *testing.T) {
	s := New()
	run(t, s, officeScript())
	if _, err := s.Submit("oui"); !errors.Is(err, ErrComplete) {
		t.Errorf("err = %v, want ErrComplete", err)
	}
}

func TestAdvance_StaysComplete(t *testing.T) {
	s := New()
	run(t, s, officeScript())
	idx := s.PrimaryIndex()
	for i := 0; i < 3; i++ {
		if !s.Advance() {
			t.Fatal("Advance after completion should report complete")
		}
	}
	if s.PrimaryIndex() != idx {
		t.Error("Advance after completion must not move the cursor")
	}
}

func TestAdvance_PendingFollowUpHoldsCursor(t *testing.T) {
	s := New()
	kitchen, _ := catalog.FollowUp(catalog.KeyKitchenSuppression)
	s.AddDynamicQuestion(kitchen)
	for i := 0; i < 3; i++ {
		if s.Advance() {
			t.Fatal("Advance with a pending follow-up cannot complete")
		}
	}
	if s.PrimaryIndex() != 0 || len(s.Pending()) != 1 {
		t.Fatalf("index=%d pending=%d, want 0 and 1", s.PrimaryIndex(), len(s.Pending()))
	}

	if _, err := s.RecordAnswer(catalog.KeyKitchenSuppression, true); err != nil {
		t.Fatal(err)
	}
	s.Advance()
	if s.PrimaryIndex() != 0 || len(s.Pending()) != 0 {
		t.Fatalf("answered follow-up: index=%d pending=%d, want 0 and 0", s.PrimaryIndex(), len(s.Pending()))
	}

	s.Advance()
	if s.PrimaryIndex() != 0 {
		t.Errorf("unanswered primary question skipped: index=%d", s.PrimaryIndex())
	}
	if _, err := s.RecordAnswer(catalog.KeyBuildingName, "Atelier"); err != nil {
		t.Fatal(err)
	}
	s.Advance()
	if s.PrimaryIndex() != 1 {
		t.Errorf("index = %d, want 1 after answering the first question", s.PrimaryIndex())
	}
}

func TestAddDynamicQuestion_NoDuplicates(t *testing.T) {
	s := New()
	q, _ := catalog.FollowUp(catalog.KeyWoodFireTreatment)
	s.AddDynamicQuestion(q)
	s.AddDynamicQuestion(q)
	if n := len(s.Pending()); n != 1 {
		t.Errorf("pending = %d, want 1", n)
	}
	if cur, _ := s.CurrentQuestion(); cur.Key != q.Key {
		t.Errorf("current = %q, want queued follow-up", cur.Key)
	}
	if s.Complete() {
		t.Error("queueing must not complete the interview")
	}
}

func TestRecordAnswer_RunsDetection(t *testing.T) {
	s := New()
	if _, err := s.RecordAnswer(catalog.KeyMaxOccupancy, 500); err != nil {
		t.Fatal(err)
	}
	found, err := s.RecordAnswer(catalog.KeyEmergencyExits, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].InsightType != insight.TypeEvacuationBottleneck {
		t.Fatalf("found = %+v", found)
	}
	if found[0].Urgency != audit.RiskCritical {
		t.Errorf("urgency = %v", found[0].Urgency)
	}
}

func TestRecordAnswer_UnsupportedValue(t *testing.T) {
	if _, err := New().RecordAnswer("x", struct{}{}); err == nil {
		t.Error("expected error for unsupported value type")
	}
}

func TestInsights_AppendOnly(t *testing.T) {
	s := New()
	for i := 0; i < 2; i++ {
		if _, err := s.RecordAnswer(catalog.KeyFloors, 12); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(s.Insights()); n != 2 {
		t.Errorf("insights = %d, want 2 (never deduplicated)", n)
	}
}

func TestCorrect(t *testing.T) {
	s := New()
	run(t, s, officeScript())

	res, _, err := s.Correct(catalog.KeyFireExtinguishers, "8")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != validate.Accepted {
		t.Fatalf("outcome = %v: %s", res.Outcome, res.Reason)
	}
	if v, _ := s.Answers().Int(catalog.KeyFireExtinguishers); v != 8 {
		t.Errorf("fireExtinguishers = %d, want 8", v)
	}
	if !s.Complete() {
		t.Error("correction must not reopen the interview")
	}
}

func TestCorrect_RejectedKeepsValue(t *testing.T) {
	s := New()
	run(t, s, officeScript())
	res, _, err := s.Correct(catalog.KeyBuildingSize, "immense")
	if err != nil {
		t.Fatal(err)
	}
	if res.OK() {
		t.Fatal("expected rejection")
	}
	if v, _ := s.Answers().Int(catalog.KeyBuildingSize); v != 1000 {
		t.Errorf("buildingSize = %d, want 1000", v)
	}
}

func TestCorrect_Errors(t *testing.T) {
	s := New()
	if _, _, err := s.Correct("colour", "red"); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}
	if _, _, err := s.Correct(catalog.KeyFloors, "3"); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("err = %v, want ErrNotAnswered", err)
	}
}

func TestCorrect_SkippedQuestion(t *testing.T) {
	s := New()
	run(t, s, officeScript())
	if _, _, err := s.Correct(catalog.KeyHighRiskAreas, "Cuisine du personnel au rez-de-chaussée"); err != nil {
		t.Fatal(err)
	}
	if !s.Answers().Has(catalog.KeyHighRiskAreas) {
		t.Error("correction should record the previously skipped answer")
	}
	for _, k := range s.Skipped() {
		if k == catalog.KeyHighRiskAreas {
			t.Error("corrected question should leave the skipped list")
		}
	}
}

func TestFollowUps(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		raw   string
		value any
		want  string
	}{
		{"restaurant", catalog.KeyBuildingType, "restaurant", "restaurant", catalog.KeyKitchenSuppression},
		{"brasserie free text", catalog.KeyBuildingType, "une brasserie", "commerce", catalog.KeyKitchenSuppression},
		{"office", catalog.KeyBuildingType, "bureau", "bureau", ""},
		{"wood", catalog.KeyConstructionMaterials, "ossature bois", []string{catalog.MaterialWood}, catalog.KeyWoodFireTreatment},
		{"concrete", catalog.KeyConstructionMaterials, "béton", []string{catalog.MaterialConcrete}, ""},
		{"large crowd", catalog.KeyMaxOccupancy, "150", 150, catalog.KeyCentralizedAlarm},
		{"exactly 100", catalog.KeyMaxOccupancy, "100", 100, ""},
		{"high rise", catalog.KeyFloors, "12", 12, catalog.KeyPermanentSecurityService},
		{"other key", catalog.KeyBuildingName, "Restaurant du port", "Restaurant du port", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FollowUps(tt.key, tt.raw, tt.value)
			if tt.want == "" {
				if len(got) != 0 {
					t.Errorf("got %d follow-ups, want none", len(got))
				}
				return
			}
			if len(got) != 1 || got[0].Key != tt.want {
				t.Errorf("got %+v, want %s", got, tt.want)
			}
			if !got[0].FollowUp {
				t.Error("follow-up flag not set")
			}
		})
	}
}
