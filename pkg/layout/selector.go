package layout

// Selection thresholds. All comparisons are inclusive (>=); see the engine
// changelog before touching the boundary behavior, it is a product decision.
const (
	kpiFocusThreshold  = 0.7
	tableScanThreshold = 0.6
	dualPaneThreshold  = 0.3
	commandCenterMinN  = 9
	monitorWallMinN    = 3
	monitorWallMaxN    = 8
)

// Select picks the layout archetype for a signal sequence.
//
// A valid explicit hint wins unconditionally: signal evaluation is skipped
// entirely, even for an empty signal sequence. Hints are assumed to be
// validated at the front-end boundary (see pkg/manifest); an invalid hint
// here is simply ignored.
//
// Without a hint, the rule chain below is evaluated strictly top to bottom
// and returns on the first match. The order is the sole mechanism resolving
// boundary workspaces (for example, many signals dominated by two table
// regions must scan, not tile), so the guards must never be reordered.
func Select(signals []AttentionSignal, hint Archetype) Archetype {
	if hint.Valid() {
		return hint
	}

	var kpiMax, tableSum, listSum, detailSum float64
	for _, s := range signals {
		switch s.Kind {
		case KindKPI:
			if s.Weight > kpiMax {
				kpiMax = s.Weight
			}
		case KindTable:
			tableSum += s.Weight
		case KindItemList:
			listSum += s.Weight
		case KindDetailView:
			detailSum += s.Weight
		}
	}
	n := len(signals)

	// Ordered guard chain. Do not reorder.
	switch {
	case kpiMax >= kpiFocusThreshold:
		return ArchetypeFocusMetric
	case tableSum >= tableScanThreshold:
		return ArchetypeScannerTable
	case listSum >= dualPaneThreshold && detailSum >= dualPaneThreshold:
		return ArchetypeDualPaneFlow
	case n >= commandCenterMinN:
		return ArchetypeCommandCenter
	case n >= monitorWallMinN && n <= monitorWallMaxN:
		return ArchetypeMonitorWall
	default:
		return ArchetypeMonitorWall
	}
}
