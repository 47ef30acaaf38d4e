package layout

import "fmt"

// Variant is a rendering-density setting. It is orthogonal to the layout
// plan: variants are resolved per render and never cached with a plan, and
// their scales are consumed only by downstream generators.
type Variant string

// The closed variant set.
const (
	VariantClassic     Variant = "classic"
	VariantDense       Variant = "dense"
	VariantComfortable Variant = "comfortable"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantClassic, VariantDense, VariantComfortable:
		return true
	}
	return false
}

// ParseVariant converts a string into a variant, rejecting unknown names.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown variant %q (must be one of: classic, dense, comfortable)", s)
	}
	return v, nil
}

// VariantConfig carries the rendering scales for a variant.
type VariantConfig struct {
	Variant          Variant `json:"variant"`
	SpacingScale     float64 `json:"spacing_scale"`
	FontScale        float64 `json:"font_scale"`
	ItemsPerRowDelta int     `json:"items_per_row_delta"`
}

// variantConfigs is the fixed scale table per variant.
var variantConfigs = map[Variant]VariantConfig{
	VariantClassic:     {Variant: VariantClassic, SpacingScale: 1.0, FontScale: 1.0, ItemsPerRowDelta: 0},
	VariantDense:       {Variant: VariantDense, SpacingScale: 0.75, FontScale: 0.9, ItemsPerRowDelta: 1},
	VariantComfortable: {Variant: VariantComfortable, SpacingScale: 1.25, FontScale: 1.1, ItemsPerRowDelta: -1},
}

// ResolveVariant picks the rendering density for a persona.
//
// An explicit valid variant always wins. Otherwise expert personas in
// deep-work sessions get dense, novices and glance-style sessions get
// comfortable, and everything else gets classic.
func ResolveVariant(persona *Persona, explicit Variant) VariantConfig {
	if explicit.Valid() {
		return variantConfigs[explicit]
	}
	if persona != nil {
		if persona.Proficiency == ProficiencyExpert && persona.SessionStyle == SessionDeepWork {
			return variantConfigs[VariantDense]
		}
		if persona.Proficiency == ProficiencyNovice || persona.SessionStyle == SessionGlance {
			return variantConfigs[VariantComfortable]
		}
	}
	return variantConfigs[VariantClassic]
}
