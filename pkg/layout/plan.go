package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// EngineVersion identifies the scoring model, rule chain, and surface
// catalog. Bumping it changes every workspace fingerprint and therefore
// invalidates all cached plans.
const EngineVersion = "1"

// Attention budget bounds.
const (
	DefaultAttentionBudget = 1.0
	MaxAttentionBudget     = 1.5
)

// =============================================================================
// Workspace - Declared Input
// =============================================================================

// Workspace is one declared workspace: an ordered sequence of regions plus
// workspace-level planning attributes. Workspaces are immutable once loaded;
// region order is semantically meaningful.
type Workspace struct {
	ID              string   `json:"id" toml:"id"`
	Label           string   `json:"label,omitempty" toml:"label"`
	Purpose         string   `json:"purpose,omitempty" toml:"purpose"`
	PersonaTargets  []string `json:"persona_targets,omitempty" toml:"persona_targets"`
	AttentionBudget float64  `json:"attention_budget,omitempty" toml:"attention_budget"`
	TimeHorizon     string   `json:"time_horizon,omitempty" toml:"time_horizon"`
	EngineHint      string   `json:"engine_hint,omitempty" toml:"engine_hint"`
	Regions         []Region `json:"regions" toml:"regions"`
}

// Budget returns the attention budget, applying the default when unset.
func (w *Workspace) Budget() float64 {
	if w.AttentionBudget <= 0 {
		return DefaultAttentionBudget
	}
	return w.AttentionBudget
}

// Validate checks workspace-level invariants: a non-empty ID, unique region
// names, a budget within range, and a hint (if any) naming a catalog member.
func (w *Workspace) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("workspace id is required")
	}
	if w.AttentionBudget < 0 || w.AttentionBudget > MaxAttentionBudget {
		return fmt.Errorf("workspace %s: attention_budget %.2f out of range [0, %.1f]",
			w.ID, w.AttentionBudget, MaxAttentionBudget)
	}
	seen := make(map[string]bool, len(w.Regions))
	for _, r := range w.Regions {
		if r.Name == "" {
			return fmt.Errorf("workspace %s: region name is required", w.ID)
		}
		if seen[r.Name] {
			return fmt.Errorf("workspace %s: duplicate region %q", w.ID, r.Name)
		}
		seen[r.Name] = true
	}
	if w.EngineHint != "" {
		if _, err := ParseArchetype(w.EngineHint); err != nil {
			return fmt.Errorf("workspace %s: engine_hint: %w", w.ID, err)
		}
	}
	return nil
}

// Hint returns the explicit archetype override, or "" when absent.
// Callers are expected to have validated the workspace at the boundary.
func (w *Workspace) Hint() Archetype {
	return Archetype(w.EngineHint)
}

// =============================================================================
// LayoutPlan - Terminal Output
// =============================================================================

// PlanSurface is a named, capacity-bounded placement slot in a plan.
type PlanSurface struct {
	ID              string       `json:"id" bson:"id"`
	Capacity        float64      `json:"capacity" bson:"capacity"`
	Priority        int          `json:"priority" bson:"priority"`
	Kinds           []SignalKind `json:"accepted_kinds,omitempty" bson:"accepted_kinds,omitempty"`
	AssignedSignals []string     `json:"assigned_signals,omitempty" bson:"assigned_signals,omitempty"`
	UsedWeight      float64      `json:"used_weight" bson:"used_weight"`
}

// PlanMetadata carries provenance for a plan.
type PlanMetadata struct {
	EngineVersion string  `json:"engine_version" bson:"engine_version"`
	Fingerprint   string  `json:"fingerprint" bson:"fingerprint"`
	SignalCount   int     `json:"signal_count" bson:"signal_count"`
	TotalDemand   float64 `json:"total_demand" bson:"total_demand"`
}

// LayoutPlan is the terminal, immutable output of the engine. The assigned
// signals across all surfaces plus OverBudgetSignals partition the input
// signal set exactly.
type LayoutPlan struct {
	WorkspaceID       string            `json:"workspace_id" bson:"workspace_id"`
	PersonaID         string            `json:"persona_id,omitempty" bson:"persona_id,omitempty"`
	Archetype         Archetype         `json:"archetype" bson:"archetype"`
	Signals           []AttentionSignal `json:"signals" bson:"signals"`
	Surfaces          []PlanSurface     `json:"surfaces" bson:"surfaces"`
	OverBudgetSignals []string          `json:"over_budget_signals,omitempty" bson:"over_budget_signals,omitempty"`
	Warnings          []string          `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Metadata          PlanMetadata      `json:"metadata" bson:"metadata"`
}

// BuildPlan runs the full pure pipeline for one workspace:
// extract → adjust → select → allocate.
//
// BuildPlan is a pure function of (workspace, persona, engine version):
// identical inputs always produce a byte-identical plan, which is what makes
// concurrent planning and content-addressed caching safe.
func BuildPlan(ws *Workspace, persona *Persona) *LayoutPlan {
	signals := ExtractAll(ws.Regions)
	working := AdjustForPersona(signals, persona)

	archetype := Select(working, ws.Hint())
	alloc := Allocate(working, archetype, ws.Budget())

	plan := &LayoutPlan{
		WorkspaceID:       ws.ID,
		Archetype:         archetype,
		Signals:           working,
		Surfaces:          alloc.Surfaces,
		OverBudgetSignals: alloc.OverBudget,
		Warnings:          alloc.Warnings,
		Metadata: PlanMetadata{
			EngineVersion: EngineVersion,
			Fingerprint:   ws.Fingerprint(),
			SignalCount:   len(working),
			TotalDemand:   TotalDemand(working),
		},
	}
	if persona != nil {
		plan.PersonaID = persona.ID
	}
	return plan
}

// =============================================================================
// Fingerprint
// =============================================================================

// fingerprintSignal is the per-signal slice of the fingerprint payload.
type fingerprintSignal struct {
	ID     string     `json:"id"`
	Kind   SignalKind `json:"kind"`
	Source string     `json:"source"`
	Label  string     `json:"label"`
	Weight float64    `json:"attention_weight"`
}

// fingerprintDoc is the canonical hash payload for a workspace.
type fingerprintDoc struct {
	ID            string              `json:"id"`
	Label         string              `json:"label"`
	Purpose       string              `json:"purpose"`
	EngineHint    string              `json:"engine_hint"`
	Signals       []fingerprintSignal `json:"signals"`
	EngineVersion string              `json:"engine_version"`
}

// Fingerprint returns a stable content hash of the workspace as seen by the
// engine: identity fields plus the extracted (pre-persona) signal sequence
// in declaration order, plus the engine version. Bumping EngineVersion
// changes every fingerprint, which invalidates all cached plans at once.
func (w *Workspace) Fingerprint() string {
	signals := ExtractAll(w.Regions)
	doc := fingerprintDoc{
		ID:            w.ID,
		Label:         w.Label,
		Purpose:       w.Purpose,
		EngineHint:    w.EngineHint,
		Signals:       make([]fingerprintSignal, len(signals)),
		EngineVersion: EngineVersion,
	}
	for i, s := range signals {
		doc.Signals[i] = fingerprintSignal{
			ID:     s.ID,
			Kind:   s.Kind,
			Source: s.Source,
			Label:  s.Label,
			Weight: s.Weight,
		}
	}
	data, _ := json.Marshal(doc)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalPlan serializes a plan to deterministic, indented JSON.
func MarshalPlan(p *LayoutPlan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// UnmarshalPlan deserializes a plan and rejects schema mismatches so that
// stale cache entries surface as misses rather than bad plans.
func UnmarshalPlan(data []byte) (*LayoutPlan, error) {
	var p LayoutPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.WorkspaceID == "" || !p.Archetype.Valid() {
		return nil, fmt.Errorf("plan data is missing workspace_id or archetype")
	}
	if p.Metadata.EngineVersion != EngineVersion {
		return nil, fmt.Errorf("plan engine version %q does not match %q",
			p.Metadata.EngineVersion, EngineVersion)
	}
	return &p, nil
}

// WritePlanFile writes a plan to path as JSON.
func WritePlanFile(p *LayoutPlan, path string) error {
	data, err := MarshalPlan(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadPlanFile reads a plan from a JSON file.
func ReadPlanFile(path string) (*LayoutPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalPlan(data)
}
