// Package pipeline runs the layout engine with caching and bounded
// parallelism.
//
// This package wraps the pure planning pipeline in pkg/layout
// (extract → adjust → select → allocate) with content-addressed caching and
// a parallel planner for whole-project builds. By centralizing this logic,
// the CLI and the HTTP service behave identically.
//
// Create a Runner and plan a workspace:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	plan, err := runner.Plan(ctx, workspace, pipeline.Options{Persona: persona})
//
// Or plan a whole project at once:
//
//	plans, err := runner.PlanAll(ctx, workspaces, opts)
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

// MaxWorkers bounds the worker pool for whole-project planning. Planning a
// workspace is cheap; the bound caps resource growth on large projects.
const MaxWorkers = 4

// Options contains all configuration for plan computation.
type Options struct {
	// Persona optionally reweights signals before archetype selection.
	Persona *layout.Persona

	// Variant is an explicit rendering-density override. Empty means derive
	// it from the persona. Variants never affect the plan itself.
	Variant layout.Variant

	// Refresh skips cache reads (results are still written back).
	Refresh bool

	// Logger receives progress events. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent: calling it repeatedly has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Variant != "" && !o.Variant.Valid() {
		return fmt.Errorf("invalid variant: %q (must be one of: classic, dense, comfortable)", o.Variant)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PersonaID returns the persona identifier for cache keying, or "" when no
// persona is supplied.
func (o *Options) PersonaID() string {
	if o.Persona == nil {
		return ""
	}
	return o.Persona.ID
}

// VariantConfig resolves the rendering density for these options. The
// result is consumed only by rendering and is never cached with a plan.
func (o *Options) VariantConfig() layout.VariantConfig {
	return layout.ResolveVariant(o.Persona, o.Variant)
}
