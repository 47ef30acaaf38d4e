package layout

import "fmt"

// =============================================================================
// Archetype Catalog
// =============================================================================

// Archetype is one of five fixed whole-workspace layout patterns.
// The catalog is closed: it is not user-extensible, and every archetype owns
// a fixed, versioned surface table.
type Archetype string

// The closed archetype catalog.
const (
	ArchetypeFocusMetric   Archetype = "focus_metric"
	ArchetypeScannerTable  Archetype = "scanner_table"
	ArchetypeDualPaneFlow  Archetype = "dual_pane_flow"
	ArchetypeMonitorWall   Archetype = "monitor_wall"
	ArchetypeCommandCenter Archetype = "command_center"
)

// Archetypes lists all catalog members in a stable order.
var Archetypes = []Archetype{
	ArchetypeFocusMetric,
	ArchetypeScannerTable,
	ArchetypeDualPaneFlow,
	ArchetypeMonitorWall,
	ArchetypeCommandCenter,
}

// Valid reports whether a is a catalog member.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeFocusMetric, ArchetypeScannerTable, ArchetypeDualPaneFlow,
		ArchetypeMonitorWall, ArchetypeCommandCenter:
		return true
	}
	return false
}

// ParseArchetype converts a hint string into an archetype.
// An unrecognized name is an error: explicit hints must be rejected at the
// boundary rather than silently ignored.
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown archetype %q (must be one of: focus_metric, scanner_table, dual_pane_flow, monitor_wall, command_center)", s)
	}
	return a, nil
}

// =============================================================================
// Surface Tables
// =============================================================================

// SurfaceSpec describes one named placement slot within an archetype.
// Capacity is the maximum cumulative signal weight the surface hosts.
// Surfaces are filled in ascending Priority order (lower fills first).
// An empty Kinds list accepts any signal kind.
type SurfaceSpec struct {
	ID       string
	Capacity float64
	Priority int
	Kinds    []SignalKind
}

// Accepts reports whether the surface admits signals of the given kind.
func (s SurfaceSpec) Accepts(kind SignalKind) bool {
	if len(s.Kinds) == 0 {
		return true
	}
	for _, k := range s.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// surfaceTables is the fixed, versioned surface catalog. Tables are keyed by
// archetype and listed in fill order. Bump EngineVersion when editing.
var surfaceTables = map[Archetype][]SurfaceSpec{
	ArchetypeFocusMetric: {
		{ID: "hero", Capacity: 1.0, Priority: 1, Kinds: []SignalKind{KindKPI}},
		{ID: "context", Capacity: 0.3, Priority: 2},
	},
	ArchetypeScannerTable: {
		{ID: "table", Capacity: 1.0, Priority: 1, Kinds: []SignalKind{KindTable}},
		{ID: "sidebar", Capacity: 0.3, Priority: 2, Kinds: []SignalKind{KindItemList, KindFilter}},
		{ID: "toolbar", Capacity: 0.2, Priority: 3, Kinds: []SignalKind{KindSearch, KindFilter}},
	},
	ArchetypeDualPaneFlow: {
		{ID: "list", Capacity: 0.6, Priority: 1, Kinds: []SignalKind{KindItemList}},
		{ID: "detail", Capacity: 0.8, Priority: 2, Kinds: []SignalKind{KindDetailView}},
	},
	ArchetypeMonitorWall: {
		{ID: "grid_primary", Capacity: 1.2, Priority: 1, Kinds: []SignalKind{KindKPI, KindChart}},
		{ID: "grid_secondary", Capacity: 0.8, Priority: 2, Kinds: []SignalKind{KindItemList, KindTable}},
		{ID: "sidebar", Capacity: 0.4, Priority: 3},
	},
	ArchetypeCommandCenter: {
		{ID: "alert_rail", Capacity: 0.5, Priority: 1, Kinds: []SignalKind{KindAlertFeed, KindKPI}},
		{ID: "primary_grid", Capacity: 1.4, Priority: 2, Kinds: []SignalKind{KindKPI, KindChart, KindTable}},
		{ID: "work_queue", Capacity: 0.8, Priority: 3, Kinds: []SignalKind{KindTaskList, KindItemList, KindForm}},
		{ID: "utility", Capacity: 0.5, Priority: 4},
	},
}

// recommendedMaxSignals is the advisory signal count each archetype is
// designed for, reported in the over-budget warning.
var recommendedMaxSignals = map[Archetype]int{
	ArchetypeFocusMetric:   3,
	ArchetypeScannerTable:  5,
	ArchetypeDualPaneFlow:  2,
	ArchetypeMonitorWall:   8,
	ArchetypeCommandCenter: 12,
}

// Surfaces returns a copy of the archetype's fixed surface table in fill
// order. Callers may not mutate the catalog through the returned slice.
func (a Archetype) Surfaces() []SurfaceSpec {
	table := surfaceTables[a]
	out := make([]SurfaceSpec, len(table))
	copy(out, table)
	return out
}

// RecommendedMaxSignals returns the advisory maximum signal count.
func (a Archetype) RecommendedMaxSignals() int {
	return recommendedMaxSignals[a]
}
