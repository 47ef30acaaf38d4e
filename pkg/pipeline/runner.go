package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/manwithacat/dazzle-sub005/pkg/cache"
	"github.com/manwithacat/dazzle-sub005/pkg/layout"
	"github.com/manwithacat/dazzle-sub005/pkg/observability"
)

// Runner encapsulates plan computation with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store plan results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// PlanWithCacheInfo computes the layout plan for one workspace with caching
// and returns cache hit info.
//
// A cached entry that fails to decode (corrupted, truncated, or written by
// another engine version) is treated as a miss: the plan is recomputed and
// the entry overwritten. Cache failures never propagate.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, ws *layout.Workspace, opts Options) (*layout.LayoutPlan, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	if err := ws.Validate(); err != nil {
		return nil, false, err
	}

	key := r.planKey(ws, opts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if plan, err := layout.UnmarshalPlan(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return plan, true, nil
			}
			// Undecodable entry: fall through, recompute, overwrite.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "plan")

	plan := r.compute(ctx, ws, opts)

	if data, err := layout.MarshalPlan(plan); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLPlan)
		observability.Cache().OnCacheSet(ctx, "plan", len(data))
	}

	return plan, false, nil
}

// Plan is a convenience wrapper that discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, ws *layout.Workspace, opts Options) (*layout.LayoutPlan, error) {
	plan, _, err := r.PlanWithCacheInfo(ctx, ws, opts)
	return plan, err
}

// compute runs the pure pipeline and emits planner events.
func (r *Runner) compute(ctx context.Context, ws *layout.Workspace, opts Options) *layout.LayoutPlan {
	start := time.Now()
	observability.Planner().OnPlanStart(ctx, ws.ID)

	plan := layout.BuildPlan(ws, opts.Persona)

	observability.Planner().OnPlanComplete(ctx, ws.ID, string(plan.Archetype),
		plan.Metadata.SignalCount, time.Since(start))
	opts.Logger.Debug("computed plan",
		"workspace", ws.ID,
		"archetype", plan.Archetype,
		"signals", plan.Metadata.SignalCount,
		"over_budget", len(plan.OverBudgetSignals),
		"duration", time.Since(start))

	return plan
}

// planKey derives the cache key for a workspace under these options.
func (r *Runner) planKey(ws *layout.Workspace, opts Options) string {
	return r.Keyer.PlanKey(ws.Fingerprint(), cache.PlanKeyOpts{
		PersonaID:     opts.PersonaID(),
		EngineVersion: layout.EngineVersion,
	})
}

// Invalidate drops the cached plan for one workspace under these options.
func (r *Runner) Invalidate(ctx context.Context, ws *layout.Workspace, opts Options) error {
	return r.Cache.Delete(ctx, r.planKey(ws, opts))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
