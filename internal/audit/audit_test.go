package audit

import (
	"encoding/json"
	"strings"
	"testing"
)

// ─── AnswerMap ───────────────────────────────────────────

func TestAnswerMap_SetKeepsOrder(t *testing.T) {
	m := NewAnswerMap()
	for _, k := range []string{"b", "a", "c"} {
		if err := m.Set(k, k); err != nil {
			t.Fatalf("Set(%q): %v", k, err)
		}
	}
	if err := m.Set("a", "updated"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if got := strings.Join(m.Keys(), ","); got != "b,a,c" {
		t.Errorf("Keys() = %s, want b,a,c", got)
	}
	if s, _ := m.String("a"); s != "updated" {
		t.Errorf("a = %q, want updated", s)
	}

	m.Delete("a")
	m.Delete("missing")
	if m.Has("a") || m.Len() != 2 {
		t.Errorf("after Delete: keys=%v", m.Keys())
	}
}

func TestAnswerMap_ZeroValue(t *testing.T) {
	var m AnswerMap
	if err := m.Set("k", 1); err != nil {
		t.Fatalf("Set on zero value: %v", err)
	}
	var nilMap *AnswerMap
	if nilMap.Len() != 0 || nilMap.Has("k") || nilMap.Keys() != nil {
		t.Error("nil map should read as empty")
	}
}

func TestAnswerMap_TypedAccessors(t *testing.T) {
	m := NewAnswerMap()
	_ = m.Set("size", 150.0)
	_ = m.Set("ratio", 2.5)
	_ = m.Set("name", "Atelier")
	_ = m.Set("alarm", true)
	_ = m.Set("inspected", "2025-03-01")
	_ = m.Set("materials", []string{"bois", "beton"})
	_ = m.Set("rooms", []float64{20, 30})

	if v, _ := m.Get("size"); v != 150 {
		t.Errorf("integral float stored as %T(%v), want int", v, v)
	}
	if n, ok := m.Number("ratio"); !ok || n != 2.5 {
		t.Errorf("Number(ratio) = %v, %v", n, ok)
	}
	if n, ok := m.Int("ratio"); !ok || n != 2 {
		t.Errorf("Int(ratio) = %v, %v", n, ok)
	}
	if _, ok := m.Number("name"); ok {
		t.Error("Number on a string answer should fail")
	}
	if b, ok := m.Bool("alarm"); !ok || !b {
		t.Errorf("Bool(alarm) = %v, %v", b, ok)
	}
	if d, ok := m.Date("inspected"); !ok || d.Month() != 3 {
		t.Errorf("Date(inspected) = %v, %v", d, ok)
	}
	if _, ok := m.Date("name"); ok {
		t.Error("Date on free text should fail")
	}
	if !m.Contains("materials", "bois") || m.Contains("materials", "acier") {
		t.Error("Contains mismatch")
	}
	if rooms, ok := m.Numbers("rooms"); !ok || len(rooms) != 2 {
		t.Errorf("Numbers(rooms) = %v, %v", rooms, ok)
	}
}

func TestAnswerMap_RejectsUnsupportedTypes(t *testing.T) {
	m := NewAnswerMap()
	for _, v := range []any{nil, struct{}{}, map[string]any{}, []any{"a", 1.0}} {
		if err := m.Set("k", v); err == nil {
			t.Errorf("Set(%T) should fail", v)
		}
	}
	if m.Has("k") {
		t.Error("rejected value must not be stored")
	}
}

func TestAnswerMap_CloneIsDeep(t *testing.T) {
	m := NewAnswerMap()
	_ = m.Set("materials", []string{"bois"})
	c := m.Clone()

	items, _ := c.Strings("materials")
	items[0] = "acier"
	_ = c.Set("extra", 1)

	if !m.Contains("materials", "bois") || m.Has("extra") {
		t.Error("clone shares state with the original")
	}
}

func TestAnswerMap_JSONPreservesOrderAndTypes(t *testing.T) {
	m := NewAnswerMap()
	_ = m.Set("zeta", 3)
	_ = m.Set("alpha", 1.5)
	_ = m.Set("list", []string{"x"})
	_ = m.Set("rooms", []float64{10, 20.5})
	_ = m.Set("ok", false)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"zeta":3,"alpha":1.5,"list":["x"],"rooms":[10,20.5],"ok":false}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back AnswerMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := strings.Join(back.Keys(), ","); got != "zeta,alpha,list,rooms,ok" {
		t.Errorf("decoded keys = %s", got)
	}
	if v, _ := back.Get("zeta"); v != 3 {
		t.Errorf("zeta = %T(%v), want int 3", v, v)
	}
	if rooms, _ := back.Numbers("rooms"); len(rooms) != 2 || rooms[1] != 20.5 {
		t.Errorf("rooms = %v", rooms)
	}
}

func TestAnswerMap_UnmarshalErrors(t *testing.T) {
	for _, doc := range []string{`[]`, `{"k":null}`, `{"k":{"nested":1}}`, `{"k":`} {
		var m AnswerMap
		if err := json.Unmarshal([]byte(doc), &m); err == nil {
			t.Errorf("Unmarshal(%s) should fail", doc)
		}
	}
}

// ─── RiskLevel ───────────────────────────────────────────

func TestRiskLevel_Ordering(t *testing.T) {
	levels := RiskLevels()
	for i := 1; i < len(levels); i++ {
		if levels[i-1] >= levels[i] {
			t.Errorf("%s should be below %s", levels[i-1], levels[i])
		}
	}
	if RiskLevel(42).Valid() || RiskLevel(-1).Valid() {
		t.Error("out-of-range levels must be invalid")
	}
	if RiskLevel(42).String() != "RiskLevel(42)" {
		t.Errorf("String() = %s", RiskLevel(42))
	}
}

func TestRiskLevel_TextRoundTrip(t *testing.T) {
	for _, level := range RiskLevels() {
		data, err := json.Marshal(level)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", level, err)
		}
		var back RiskLevel
		if err := json.Unmarshal(data, &back); err != nil || back != level {
			t.Errorf("%s decoded as %s, err=%v", level, back, err)
		}
	}

	if _, err := ParseRiskLevel("SEVERE"); err == nil {
		t.Error("expected error for an unknown name")
	}
	if _, err := json.Marshal(RiskLevel(9)); err == nil {
		t.Error("expected error marshaling an invalid level")
	}
}

// ─── Questions ───────────────────────────────────────────

func TestAuditQuestion_Helpers(t *testing.T) {
	lo := 1.0
	q := AuditQuestion{Key: "k", MinValue: &lo, RiskIndicators: []string{"equipment"}}

	minV, hasMin, _, hasMax := q.Bounds()
	if !hasMin || minV != 1 || hasMax {
		t.Errorf("Bounds() = %v %v %v", minV, hasMin, hasMax)
	}
	if !q.HasIndicator("equipment") || q.HasIndicator("material") {
		t.Error("HasIndicator mismatch")
	}
	if err := ValidateValidationType("color"); err == nil {
		t.Error("unknown validation type accepted")
	}
	for _, vt := range ValidationTypes() {
		if err := ValidateValidationType(vt); err != nil {
			t.Errorf("%s: %v", vt, err)
		}
	}
}
