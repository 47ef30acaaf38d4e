package cache

// PlanKeyOpts carries everything beyond the workspace fingerprint that
// changes a plan's content. The persona must participate in the key: two
// personas sharing one workspace produce different plans, and a fingerprint
// alone would alias them.
type PlanKeyOpts struct {
	PersonaID     string `json:"persona_id"`
	EngineVersion string `json:"engine_version"`
}

// Keyer generates cache keys for plan storage.
type Keyer interface {
	// PlanKey generates a key for a computed layout plan.
	PlanKey(fingerprint string, opts PlanKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a computed layout plan.
func (k *DefaultKeyer) PlanKey(fingerprint string, opts PlanKeyOpts) string {
	return hashKey("plan", fingerprint, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different projects or users sharing one Redis instance get separate cache
// namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PlanKey generates a prefixed key for a computed layout plan.
func (k *ScopedKeyer) PlanKey(fingerprint string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(fingerprint, opts)
}
