package layout

import (
	"fmt"
	"math"
	"strconv"
)

// AllocationResult is the outcome of packing signals into an archetype's
// surfaces. Every input signal appears exactly once: either assigned to one
// surface or listed in OverBudget.
type AllocationResult struct {
	Surfaces   []PlanSurface
	OverBudget []string
	Warnings   []string
}

// Allocate packs signals into the archetype's fixed surfaces.
//
// Surfaces are processed in ascending priority order. For each surface,
// unplaced signals of an accepted kind are considered in workspace
// declaration order — never sorted by weight; declaration order is the
// deterministic tie-break. A candidate is admitted when the surface's
// cumulative assigned weight plus the candidate's weight stays within
// capacity. A signal rejected by every eligible surface joins OverBudget.
//
// Failing the attention budget is not an error: the result is always a valid
// allocation, with warnings describing the shortfall.
func Allocate(signals []AttentionSignal, archetype Archetype, budget float64) AllocationResult {
	specs := archetype.Surfaces()

	surfaces := make([]PlanSurface, len(specs))
	for i, spec := range specs {
		surfaces[i] = PlanSurface{
			ID:       spec.ID,
			Capacity: spec.Capacity,
			Priority: spec.Priority,
			Kinds:    spec.Kinds,
		}
	}

	placed := make([]bool, len(signals))
	for i := range surfaces {
		spec := specs[i]
		for j, sig := range signals {
			if placed[j] || !spec.Accepts(sig.Kind) {
				continue
			}
			if surfaces[i].UsedWeight+sig.Weight > spec.Capacity {
				continue
			}
			surfaces[i].AssignedSignals = append(surfaces[i].AssignedSignals, sig.ID)
			surfaces[i].UsedWeight = roundWeight(surfaces[i].UsedWeight + sig.Weight)
			placed[j] = true
		}
	}

	result := AllocationResult{Surfaces: surfaces}
	for j, sig := range signals {
		if !placed[j] {
			result.OverBudget = append(result.OverBudget, sig.ID)
		}
	}

	demand := TotalDemand(signals)
	if demand > budget {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Over budget by %s", formatWeight(demand-budget)))
	}
	if len(result.OverBudget) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d signal(s) could not be placed; %s layouts are designed for at most %d signals",
				len(result.OverBudget), archetype, archetype.RecommendedMaxSignals()))
	}

	return result
}

// TotalDemand sums the weight of every signal, placed or not.
func TotalDemand(signals []AttentionSignal) float64 {
	var total float64
	for _, s := range signals {
		total += s.Weight
	}
	return roundWeight(total)
}

// roundWeight rounds accumulated weights to 4 decimals so that serialized
// plans stay free of float accumulation noise. Individual signal weights are
// already exact to this precision.
func roundWeight(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// formatWeight renders a weight delta with trailing zeros trimmed,
// e.g. 1.40 -> "1.4" and 0.30000000000000004 -> "0.3".
func formatWeight(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
