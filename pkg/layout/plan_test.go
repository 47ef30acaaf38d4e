package layout

import (
	"bytes"
	"testing"
)

func monitoringWorkspace() *Workspace {
	return &Workspace{
		ID:      "ops",
		Label:   "Operations",
		Purpose: "Track order flow",
		Regions: []Region{
			{Name: "health", Source: "orders", Aggregates: []string{"count"}},
			{Name: "inbox", Source: "tickets", Limit: 10},
			{Name: "queue", Source: "tasks", Limit: 10},
			{Name: "records", Source: "orders"},
		},
	}
}

func TestBuildPlanDeterministic(t *testing.T) {
	ws := monitoringWorkspace()
	persona := &Persona{
		ID:              "dispatcher",
		Proficiency:     ProficiencyExpert,
		AttentionBiases: map[SignalKind]float64{KindItemList: 0.9},
	}

	a, err := MarshalPlan(BuildPlan(ws, persona))
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}
	b, err := MarshalPlan(BuildPlan(ws, persona))
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs must produce byte-identical plans")
	}
}

func TestBuildPlanPartitionAndMetadata(t *testing.T) {
	ws := monitoringWorkspace()
	plan := BuildPlan(ws, nil)

	if plan.WorkspaceID != "ops" {
		t.Errorf("WorkspaceID = %q", plan.WorkspaceID)
	}
	if plan.Metadata.EngineVersion != EngineVersion {
		t.Errorf("EngineVersion = %q, want %q", plan.Metadata.EngineVersion, EngineVersion)
	}
	if plan.Metadata.SignalCount != 4 {
		t.Errorf("SignalCount = %d, want 4", plan.Metadata.SignalCount)
	}
	if plan.Metadata.Fingerprint != ws.Fingerprint() {
		t.Error("plan fingerprint must match the workspace fingerprint")
	}
	if !almostEqual(plan.Metadata.TotalDemand, 2.4) {
		t.Errorf("TotalDemand = %v, want 2.4", plan.Metadata.TotalDemand)
	}

	count := len(plan.OverBudgetSignals)
	for _, s := range plan.Surfaces {
		count += len(s.AssignedSignals)
	}
	if count != len(ws.Regions) {
		t.Errorf("assigned + over budget = %d signals, want %d", count, len(ws.Regions))
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := monitoringWorkspace()
	fp := base.Fingerprint()

	if base.Fingerprint() != fp {
		t.Error("fingerprint must be stable across calls")
	}

	relabeled := monitoringWorkspace()
	relabeled.Label = "Ops Desk"
	if relabeled.Fingerprint() == fp {
		t.Error("label change must change the fingerprint")
	}

	reordered := monitoringWorkspace()
	reordered.Regions[1], reordered.Regions[2] = reordered.Regions[2], reordered.Regions[1]
	if reordered.Fingerprint() == fp {
		t.Error("region order is semantically meaningful and must affect the fingerprint")
	}

	hinted := monitoringWorkspace()
	hinted.EngineHint = string(ArchetypeCommandCenter)
	if hinted.Fingerprint() == fp {
		t.Error("engine hint must affect the fingerprint")
	}
}

func TestPlanRoundTrip(t *testing.T) {
	plan := BuildPlan(monitoringWorkspace(), nil)
	data, err := MarshalPlan(plan)
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}

	got, err := UnmarshalPlan(data)
	if err != nil {
		t.Fatalf("UnmarshalPlan: %v", err)
	}
	if got.WorkspaceID != plan.WorkspaceID || got.Archetype != plan.Archetype {
		t.Errorf("round trip changed identity: %+v", got)
	}

	again, err := MarshalPlan(got)
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("round trip must be byte-stable")
	}
}

func TestUnmarshalPlanRejectsSchemaMismatch(t *testing.T) {
	if _, err := UnmarshalPlan([]byte("{not json")); err == nil {
		t.Error("corrupt data should fail")
	}
	if _, err := UnmarshalPlan([]byte(`{"workspace_id":"","archetype":"monitor_wall"}`)); err == nil {
		t.Error("missing workspace_id should fail")
	}
	if _, err := UnmarshalPlan([]byte(`{"workspace_id":"w","archetype":"mosaic"}`)); err == nil {
		t.Error("unknown archetype should fail")
	}
	stale := []byte(`{"workspace_id":"w","archetype":"monitor_wall","metadata":{"engine_version":"0"}}`)
	if _, err := UnmarshalPlan(stale); err == nil {
		t.Error("stale engine version should fail")
	}
}

func TestWorkspaceValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Workspace)
		wantErr bool
	}{
		{"valid workspace", func(w *Workspace) {}, false},
		{"missing id", func(w *Workspace) { w.ID = "" }, true},
		{"budget too high", func(w *Workspace) { w.AttentionBudget = 2.0 }, true},
		{"budget in range", func(w *Workspace) { w.AttentionBudget = 1.5 }, false},
		{"duplicate region", func(w *Workspace) { w.Regions = append(w.Regions, Region{Name: "inbox"}) }, true},
		{"unknown hint", func(w *Workspace) { w.EngineHint = "mosaic" }, true},
		{"valid hint", func(w *Workspace) { w.EngineHint = "scanner_table" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := monitoringWorkspace()
			tt.mutate(ws)
			err := ws.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
