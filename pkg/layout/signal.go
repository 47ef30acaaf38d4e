package layout

import "strings"

// =============================================================================
// Signal Kinds
// =============================================================================

// SignalKind classifies the semantic role of a workspace region.
type SignalKind string

// The closed set of signal kinds produced by classification.
const (
	KindKPI        SignalKind = "kpi"
	KindAlertFeed  SignalKind = "alert_feed"
	KindTable      SignalKind = "table"
	KindItemList   SignalKind = "item_list"
	KindDetailView SignalKind = "detail_view"
	KindTaskList   SignalKind = "task_list"
	KindForm       SignalKind = "form"
	KindChart      SignalKind = "chart"
	KindSearch     SignalKind = "search"
	KindFilter     SignalKind = "filter"
)

// =============================================================================
// Region - Upstream Input
// =============================================================================

// Region is one declared UI region as produced by the language front end.
// This struct is the entire surface the engine consumes from the semantic
// and linking passes; everything else the front end computes is ignored.
type Region struct {
	Name        string   `json:"name" toml:"name"`
	Label       string   `json:"label,omitempty" toml:"label"`
	Source      string   `json:"source,omitempty" toml:"source"`
	Filter      string   `json:"filter,omitempty" toml:"filter"`
	Limit       int      `json:"limit,omitempty" toml:"limit"`
	Aggregates  []string `json:"aggregates,omitempty" toml:"aggregates"`
	DisplayMode string   `json:"display_mode,omitempty" toml:"display_mode"`
}

// =============================================================================
// AttentionSignal
// =============================================================================

// AttentionSignal is the immutable classification of one region.
// Weight is always within [0, 1].
type AttentionSignal struct {
	ID                   string     `json:"id" bson:"id"`
	Kind                 SignalKind `json:"kind" bson:"kind"`
	Label                string     `json:"label" bson:"label"`
	Source               string     `json:"source,omitempty" bson:"source,omitempty"`
	Weight               float64    `json:"attention_weight" bson:"attention_weight"`
	Urgency              float64    `json:"urgency,omitempty" bson:"urgency,omitempty"`
	InteractionFrequency float64    `json:"interaction_frequency,omitempty" bson:"interaction_frequency,omitempty"`
	DisplayMode          string     `json:"display_mode,omitempty" bson:"display_mode,omitempty"`
}

// Weight scoring model. Modifiers are independent and additive; the final
// weight is clamped to [0, 1].
const (
	baseWeight      = 0.5
	filterBonus     = 0.2
	limitBonus      = 0.1
	aggregateBonus  = 0.2
	detailViewBonus = 0.2
)

// displayModeDetail is the display mode that marks a single-record view.
const displayModeDetail = "detail"

// kindUrgency carries the default urgency score per kind. Urgency is advisory
// metadata for downstream generators; allocation never reads it.
var kindUrgency = map[SignalKind]float64{
	KindKPI:        0.6,
	KindAlertFeed:  0.9,
	KindItemList:   0.4,
	KindDetailView: 0.3,
	KindChart:      0.3,
	KindTable:      0.2,
}

// Extract converts a declared region into an attention signal.
//
// Extract is total: it never fails. An under-specified region (no filter, no
// limit, no aggregates, no recognized display mode) degrades to a base-weight
// table signal.
//
// The kind is decided by the first matching rule in a fixed priority chain:
// aggregates → kpi, "detail" display mode → detail_view, filter and/or
// limit → item_list, a display mode naming "timeline" or "map" → chart,
// otherwise table.
func Extract(r Region) AttentionSignal {
	kind := classify(r)

	weight := baseWeight
	if r.Filter != "" {
		weight += filterBonus
	}
	if r.Limit > 0 {
		weight += limitBonus
	}
	if len(r.Aggregates) > 0 {
		weight += aggregateBonus
	}
	if r.DisplayMode == displayModeDetail {
		weight += detailViewBonus
	}

	label := r.Label
	if label == "" {
		label = r.Name
	}

	frequency := 0.5
	if r.Filter != "" {
		frequency += 0.3
	}
	if r.Limit > 0 {
		frequency += 0.2
	}

	return AttentionSignal{
		ID:                   r.Name,
		Kind:                 kind,
		Label:                label,
		Source:               r.Source,
		Weight:               clamp01(weight),
		Urgency:              kindUrgency[kind],
		InteractionFrequency: clamp01(frequency),
		DisplayMode:          r.DisplayMode,
	}
}

// ExtractAll extracts one signal per region, preserving declaration order.
// Declaration order is semantically meaningful: it is the deterministic
// tie-break used during surface allocation.
func ExtractAll(regions []Region) []AttentionSignal {
	signals := make([]AttentionSignal, len(regions))
	for i, r := range regions {
		signals[i] = Extract(r)
	}
	return signals
}

// classify applies the kind priority chain. The chain order is load-bearing:
// rules must be evaluated strictly top to bottom.
func classify(r Region) SignalKind {
	switch {
	case len(r.Aggregates) > 0:
		return KindKPI
	case r.DisplayMode == displayModeDetail:
		return KindDetailView
	case r.Filter != "" && r.Limit > 0:
		return KindItemList
	case r.Limit > 0:
		return KindItemList
	case strings.Contains(r.DisplayMode, "timeline") || strings.Contains(r.DisplayMode, "map"):
		return KindChart
	default:
		return KindTable
	}
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
