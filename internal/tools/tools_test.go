package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/flameo/internal/audit"
	"github.com/HendryAvila/flameo/internal/catalog"
	"github.com/HendryAvila/flameo/internal/gate"
	"github.com/HendryAvila/flameo/internal/interview"
	"github.com/HendryAvila/flameo/internal/report"
	"github.com/HendryAvila/flameo/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newRegistry(t *testing.T) *session.Registry {
	t.Helper()
	return session.NewRegistry(session.Options{Logger: quietLogger()})
}

func newCompleteTool(t *testing.T, r *session.Registry) *CompleteTool {
	t.Helper()
	renderer, err := report.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewCompleteTool(r, gate.New(gate.DefaultConfig(), quietLogger()), renderer)
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, handle func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	res, err := handle(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

// startSession calls audit_start and returns the new session id.
func startSession(t *testing.T, r *session.Registry) string {
	t.Helper()
	before := len(r.IDs())
	res := call(t, NewStartTool(r).Handle, nil)
	if res.IsError {
		t.Fatalf("audit_start failed: %s", resultText(res))
	}
	ids := r.IDs()
	if len(ids) != before+1 {
		t.Fatalf("expected one new session, have %v", ids)
	}
	for _, id := range ids {
		if strings.Contains(resultText(res), id) {
			return id
		}
	}
	t.Fatalf("session id missing from %q", resultText(res))
	return ""
}

func currentKey(t *testing.T, r *session.Registry, id string) (string, bool) {
	t.Helper()
	var key string
	var ok bool
	_ = r.With(id, func(s *interview.State) error {
		var q audit.AuditQuestion
		q, ok = s.CurrentQuestion()
		key = q.Key
		return nil
	})
	return key, ok
}

func recent(months int) string {
	return time.Now().AddDate(0, -months, 0).Format("02/01/2006")
}

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

// answerAll drives session id to completion through audit_answer.
func answerAll(t *testing.T, r *session.Registry, id string, script map[string]string) {
	t.Helper()
	tool := NewAnswerTool(r)
	for i := 0; i < 100; i++ {
		key, ok := currentKey(t, r, id)
		if !ok {
			return
		}
		raw, ok := script[key]
		if !ok {
			t.Fatalf("no scripted answer for %q", key)
		}
		res := call(t, tool.Handle, map[string]interface{}{"session_id": id, "answer": raw})
		if res.IsError || strings.Contains(resultText(res), "Rejected") {
			t.Fatalf("answer %q to %s failed: %s", raw, key, resultText(res))
		}
	}
	t.Fatal("interview did not complete")
}

// importComplete opens a session holding a complete interview with kv.
func importComplete(t *testing.T, r *session.Registry, kv ...any) string {
	t.Helper()
	a := audit.NewAnswerMap()
	for i := 0; i < len(kv); i += 2 {
		if err := a.Set(kv[i].(string), kv[i+1]); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	data, err := json.Marshal(interview.Snapshot{Answers: a, Complete: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	res := call(t, NewImportTool(r).Handle, map[string]interface{}{"snapshot": string(data)})
	if res.IsError {
		t.Fatalf("audit_import failed: %s", resultText(res))
	}
	for _, id := range r.IDs() {
		if strings.Contains(resultText(res), id) {
			return id
		}
	}
	t.Fatal("imported session not found")
	return ""
}

// ─── Definitions ─────────────────────────────────────────────────────────────

func TestDefinitions(t *testing.T) {
	r := newRegistry(t)
	tests := []struct {
		def      mcp.Tool
		name     string
		required []string
	}{
		{NewStartTool(r).Definition(), "audit_start", nil},
		{NewQuestionTool(r).Definition(), "audit_question", []string{"session_id"}},
		{NewAnswerTool(r).Definition(), "audit_answer", []string{"session_id", "answer"}},
		{NewCorrectTool(r).Definition(), "audit_correct", []string{"session_id", "key", "answer"}},
		{NewStatusTool(r).Definition(), "audit_status", []string{"session_id"}},
		{newCompleteTool(t, r).Definition(), "audit_complete", []string{"session_id"}},
		{NewExportTool(r).Definition(), "audit_export", []string{"session_id"}},
		{NewImportTool(r).Definition(), "audit_import", []string{"snapshot"}},
		{NewResetTool(r).Definition(), "audit_reset", []string{"session_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.def.Name != tt.name {
				t.Errorf("name = %q, want %q", tt.def.Name, tt.name)
			}
			for _, p := range tt.required {
				if _, ok := tt.def.InputSchema.Properties[p]; !ok {
					t.Errorf("missing %q parameter", p)
				}
				found := false
				for _, req := range tt.def.InputSchema.Required {
					if req == p {
						found = true
					}
				}
				if !found {
					t.Errorf("%q should be required", p)
				}
			}
		})
	}
}

// ─── Interview flow ──────────────────────────────────────────────────────────

func TestStartTool_ReturnsFirstQuestion(t *testing.T) {
	r := newRegistry(t)
	res := call(t, NewStartTool(r).Handle, nil)
	text := resultText(res)
	if !strings.Contains(text, "`buildingName`") || !strings.Contains(text, "Progress: 0/") {
		t.Errorf("output = %q", text)
	}
}

func TestStartTool_RegistryFull(t *testing.T) {
	r := session.NewRegistry(session.Options{MaxSessions: 1, Logger: quietLogger()})
	startSession(t, r)
	res := call(t, NewStartTool(r).Handle, nil)
	if !res.IsError {
		t.Error("expected error when the registry is full")
	}
}

func TestAnswerTool_MissingArguments(t *testing.T) {
	r := newRegistry(t)
	tool := NewAnswerTool(r)
	if res := call(t, tool.Handle, map[string]interface{}{"answer": "x"}); !res.IsError {
		t.Error("expected error without session_id")
	}
	id := startSession(t, r)
	if res := call(t, tool.Handle, map[string]interface{}{"session_id": id, "answer": "  "}); !res.IsError {
		t.Error("expected error without answer")
	}
}

func TestAnswerTool_UnknownSession(t *testing.T) {
	r := newRegistry(t)
	res := call(t, NewAnswerTool(r).Handle, map[string]interface{}{"session_id": "nope", "answer": "x"})
	if !res.IsError || !strings.Contains(resultText(res), "not found") {
		t.Errorf("result = %q, want not found error", resultText(res))
	}
}

func TestAnswerTool_RejectionKeepsQuestion(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	res := call(t, NewAnswerTool(r).Handle, map[string]interface{}{"session_id": id, "answer": "<script>"})
	if res.IsError {
		t.Fatalf("rejection should not be a tool error: %s", resultText(res))
	}
	text := resultText(res)
	if !strings.Contains(text, "Rejected") || !strings.Contains(text, "`buildingName`") {
		t.Errorf("output = %q", text)
	}
	if key, _ := currentKey(t, r, id); key != catalog.KeyBuildingName {
		t.Errorf("current = %q, want buildingName", key)
	}
}

func TestAnswerTool_WarningAndInsight(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	tool := NewAnswerTool(r)
	script := officeScript()
	for {
		key, _ := currentKey(t, r, id)
		if key == catalog.KeyConstructionMaterials {
			break
		}
		call(t, tool.Handle, map[string]interface{}{"session_id": id, "answer": script[key]})
	}

	res := call(t, tool.Handle, map[string]interface{}{"session_id": id, "answer": "bois et béton"})
	text := resultText(res)
	for _, want := range []string{"Accepted with warning", "[HIGH] material_risk", "follow-up question(s) queued", "`woodFireTreatment`"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestAnswerTool_AfterCompletion(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	answerAll(t, r, id, officeScript())

	res := call(t, NewAnswerTool(r).Handle, map[string]interface{}{"session_id": id, "answer": "oui"})
	if !res.IsError || !strings.Contains(resultText(res), "audit_complete") {
		t.Errorf("result = %q, want completion error", resultText(res))
	}
}

func TestQuestionTool(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	res := call(t, NewQuestionTool(r).Handle, map[string]interface{}{"session_id": id})
	if text := resultText(res); !strings.HasPrefix(text, "**Next question** (`buildingName`, text)") {
		t.Errorf("output = %q", text)
	}
}

func TestStatusTool(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	answerAll(t, r, id, officeScript())

	text := resultText(call(t, NewStatusTool(r).Handle, map[string]interface{}{"session_id": id}))
	for _, want := range []string{"**Status:** complete", "| `buildingSize` | 1000 |", "**Skipped:** lastFireDrill, highRiskAreas", "## Observations", "erp_classification"} {
		if !strings.Contains(text, want) {
			t.Errorf("status missing %q:\n%s", want, text)
		}
	}
}

// ─── Completion ──────────────────────────────────────────────────────────────

func TestCompleteTool_FullInterview(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	answerAll(t, r, id, officeScript())

	res := call(t, newCompleteTool(t, r).Handle, map[string]interface{}{"session_id": id})
	if res.IsError {
		t.Fatalf("audit_complete failed: %s", resultText(res))
	}
	text := resultText(res)
	for _, want := range []string{"# Audit sécurité incendie : SIÈGE SOCIAL HORIZON", "## Plan d'action prioritaire", "déficit de 4"} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestCompleteTool_JSON(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	answerAll(t, r, id, officeScript())

	res := call(t, newCompleteTool(t, r).Handle, map[string]interface{}{"session_id": id, "format": "json"})
	var data report.FinalData
	if err := json.Unmarshal([]byte(resultText(res)), &data); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, resultText(res))
	}
	if data.Assessment.ComplianceScore <= 0 || data.Assessment.ComplianceScore > 100 {
		t.Errorf("compliance = %v", data.Assessment.ComplianceScore)
	}
}

func TestCompleteTool_BadFormat(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	res := call(t, newCompleteTool(t, r).Handle, map[string]interface{}{"session_id": id, "format": "pdf"})
	if !res.IsError {
		t.Error("expected error for unknown format")
	}
}

func TestCompleteTool_Incomplete(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	res := call(t, newCompleteTool(t, r).Handle, map[string]interface{}{"session_id": id})
	if !res.IsError || !strings.Contains(resultText(res), "Cannot score yet") {
		t.Errorf("result = %q", resultText(res))
	}
}

func TestCompleteTool_GateFailureThenCorrection(t *testing.T) {
	r := newRegistry(t)
	id := importComplete(t, r,
		catalog.KeyBuildingSize, 100,
		catalog.KeyEmergencyExits, 0,
		catalog.KeyFireExtinguishers, 1,
	)
	complete := newCompleteTool(t, r)

	res := call(t, complete.Handle, map[string]interface{}{"session_id": id})
	if !res.IsError || !strings.Contains(resultText(res), string(gate.ViolationNoExits)) {
		t.Fatalf("result = %q, want a gate failure", resultText(res))
	}

	fix := call(t, NewCorrectTool(r).Handle, map[string]interface{}{
		"session_id": id, "key": catalog.KeyEmergencyExits, "answer": "2",
	})
	if fix.IsError || !strings.Contains(resultText(fix), "Accepted") {
		t.Fatalf("correction failed: %s", resultText(fix))
	}

	res = call(t, complete.Handle, map[string]interface{}{"session_id": id})
	if res.IsError {
		t.Errorf("audit_complete after correction: %s", resultText(res))
	}
}

// ─── Correction ──────────────────────────────────────────────────────────────

func TestCorrectTool_Errors(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	tool := NewCorrectTool(r)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing key", map[string]interface{}{"session_id": id, "answer": "2"}, "'key' is required"},
		{"unknown key", map[string]interface{}{"session_id": id, "key": "garage", "answer": "2"}, "unknown question"},
		{"not answered", map[string]interface{}{"session_id": id, "key": catalog.KeyEmergencyExits, "answer": "2"}, "not answered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, tool.Handle, tt.args)
			if !res.IsError || !strings.Contains(resultText(res), tt.want) {
				t.Errorf("result = %q, want error containing %q", resultText(res), tt.want)
			}
		})
	}
}

// ─── Snapshots ───────────────────────────────────────────────────────────────

func TestExportImport_RoundTrip(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	answer := NewAnswerTool(r)
	call(t, answer.Handle, map[string]interface{}{"session_id": id, "answer": "Entrepôt Nord"})
	call(t, answer.Handle, map[string]interface{}{"session_id": id, "answer": "entrepôt"})

	exported := resultText(call(t, NewExportTool(r).Handle, map[string]interface{}{"session_id": id}))
	if !strings.Contains(exported, `"buildingName": "Entrepôt Nord"`) {
		t.Fatalf("export = %s", exported)
	}

	res := call(t, NewImportTool(r).Handle, map[string]interface{}{"snapshot": exported})
	if res.IsError {
		t.Fatalf("import failed: %s", resultText(res))
	}
	if len(r.IDs()) != 2 {
		t.Fatalf("ids = %v, want a second session", r.IDs())
	}
	for _, other := range r.IDs() {
		if other == id {
			continue
		}
		if key, _ := currentKey(t, r, other); key != catalog.KeyBuildingUsage {
			t.Errorf("imported session asks %q, want buildingUsage", key)
		}
	}
}

func TestImportTool_ReplaceExisting(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	snap := `{"answers":{"buildingName":"Gymnase"},"insights":[],"complete":false,"primary_index":1}`
	res := call(t, NewImportTool(r).Handle, map[string]interface{}{"snapshot": snap, "session_id": id})
	if res.IsError {
		t.Fatalf("import failed: %s", resultText(res))
	}
	if len(r.IDs()) != 1 {
		t.Errorf("ids = %v, want the session replaced in place", r.IDs())
	}
	if key, _ := currentKey(t, r, id); key != catalog.KeyBuildingType {
		t.Errorf("current = %q, want buildingType", key)
	}
}

func TestImportTool_Malformed(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	call(t, NewAnswerTool(r).Handle, map[string]interface{}{"session_id": id, "answer": "Gymnase"})

	for _, snap := range []string{
		"{",
		`{"answers":{"garage":1},"insights":[]}`,
		`{"insights":[]}`,
		`{"answers":{"buildingSize":1000,"fireExtinguishers":-500},"insights":[],"complete":true}`,
	} {
		res := call(t, NewImportTool(r).Handle, map[string]interface{}{"snapshot": snap, "session_id": id})
		if !res.IsError {
			t.Errorf("snapshot %s should be rejected", snap)
		}
	}
	if key, _ := currentKey(t, r, id); key != catalog.KeyBuildingType {
		t.Errorf("existing session changed: current = %q", key)
	}
}

// ─── Reset ───────────────────────────────────────────────────────────────────

func TestResetTool(t *testing.T) {
	r := newRegistry(t)
	id := startSession(t, r)
	call(t, NewAnswerTool(r).Handle, map[string]interface{}{"session_id": id, "answer": "Gymnase"})

	res := call(t, NewResetTool(r).Handle, map[string]interface{}{"session_id": id})
	if res.IsError {
		t.Fatalf("reset failed: %s", resultText(res))
	}
	if key, _ := currentKey(t, r, id); key != catalog.KeyBuildingName {
		t.Errorf("current = %q after reset", key)
	}

	res = call(t, NewResetTool(r).Handle, map[string]interface{}{"session_id": id, "close": true})
	if res.IsError {
		t.Fatalf("close failed: %s", resultText(res))
	}
	if len(r.IDs()) != 0 {
		t.Errorf("ids = %v, want none", r.IDs())
	}
	res = call(t, NewQuestionTool(r).Handle, map[string]interface{}{"session_id": id})
	if !res.IsError {
		t.Error("closed session should be unknown")
	}
}
