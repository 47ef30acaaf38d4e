package layout

// Proficiency describes how experienced a persona is with the application.
type Proficiency string

// Proficiency levels.
const (
	ProficiencyNovice       Proficiency = "novice"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyExpert       Proficiency = "expert"
)

// SessionStyle describes how a persona typically uses the application.
type SessionStyle string

// Session styles.
const (
	SessionGlance   SessionStyle = "glance"
	SessionRoutine  SessionStyle = "routine"
	SessionDeepWork SessionStyle = "deep_work"
)

// Persona describes a target user of a workspace. Personas are immutable;
// the engine only ever reads them.
type Persona struct {
	ID           string       `json:"id" toml:"id"`
	Label        string       `json:"label,omitempty" toml:"label"`
	Goals        []string     `json:"goals,omitempty" toml:"goals"`
	Proficiency  Proficiency  `json:"proficiency_level,omitempty" toml:"proficiency_level"`
	SessionStyle SessionStyle `json:"session_style,omitempty" toml:"session_style"`

	// AttentionBiases maps a signal kind to a weight multiplier.
	// Kinds not listed default to 1.0.
	AttentionBiases map[SignalKind]float64 `json:"attention_biases,omitempty" toml:"attention_biases"`
}

// Bias returns the weight multiplier for kind, defaulting to 1.0.
func (p *Persona) Bias(kind SignalKind) float64 {
	if p == nil || p.AttentionBiases == nil {
		return 1.0
	}
	if m, ok := p.AttentionBiases[kind]; ok {
		return m
	}
	return 1.0
}

// AdjustForPersona reweights signals by the persona's attention biases and
// returns a new sequence. The input slice is never mutated; adjusted weights
// are re-clamped to [0, 1]. A nil persona returns an unmodified copy.
func AdjustForPersona(signals []AttentionSignal, persona *Persona) []AttentionSignal {
	adjusted := make([]AttentionSignal, len(signals))
	copy(adjusted, signals)
	if persona == nil {
		return adjusted
	}
	for i := range adjusted {
		adjusted[i].Weight = clamp01(adjusted[i].Weight * persona.Bias(adjusted[i].Kind))
	}
	return adjusted
}
