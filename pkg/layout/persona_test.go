package layout

import "testing"

func TestAdjustForPersona(t *testing.T) {
	signals := []AttentionSignal{
		{ID: "kpi", Kind: KindKPI, Weight: 0.7},
		{ID: "list", Kind: KindItemList, Weight: 0.6},
		{ID: "tbl", Kind: KindTable, Weight: 0.5},
	}
	persona := &Persona{
		ID: "analyst",
		AttentionBiases: map[SignalKind]float64{
			KindKPI:      1.2,
			KindItemList: 0.5,
		},
	}

	adjusted := AdjustForPersona(signals, persona)

	if !almostEqual(adjusted[0].Weight, 0.84) {
		t.Errorf("kpi weight = %v, want 0.84", adjusted[0].Weight)
	}
	if !almostEqual(adjusted[1].Weight, 0.3) {
		t.Errorf("list weight = %v, want 0.3", adjusted[1].Weight)
	}
	// Unlisted kinds default to multiplier 1.0.
	if !almostEqual(adjusted[2].Weight, 0.5) {
		t.Errorf("table weight = %v, want unchanged 0.5", adjusted[2].Weight)
	}
}

func TestAdjustForPersonaClampsAndIsPure(t *testing.T) {
	signals := []AttentionSignal{{ID: "kpi", Kind: KindKPI, Weight: 0.9}}
	persona := &Persona{AttentionBiases: map[SignalKind]float64{KindKPI: 5.0}}

	adjusted := AdjustForPersona(signals, persona)

	if adjusted[0].Weight != 1.0 {
		t.Errorf("adjusted weight = %v, want clamp to 1.0", adjusted[0].Weight)
	}
	if signals[0].Weight != 0.9 {
		t.Errorf("input mutated: weight = %v, want 0.9", signals[0].Weight)
	}
}

func TestAdjustForPersonaNil(t *testing.T) {
	signals := []AttentionSignal{{ID: "a", Kind: KindTable, Weight: 0.5}}
	adjusted := AdjustForPersona(signals, nil)
	if len(adjusted) != 1 || adjusted[0].Weight != 0.5 {
		t.Errorf("nil persona should return an unmodified copy, got %+v", adjusted)
	}
	adjusted[0].Weight = 0.1
	if signals[0].Weight != 0.5 {
		t.Error("adjusted slice must not alias the input")
	}
}
