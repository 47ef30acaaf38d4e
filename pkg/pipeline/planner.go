package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
	"github.com/manwithacat/dazzle-sub005/pkg/observability"
)

// PlanAll computes plans for every workspace in a project, keyed by
// workspace ID.
//
// Workspaces whose plans are already cached are resolved immediately. A
// single miss is computed inline; multiple misses fan out to a worker pool
// of width min(MaxWorkers, misses). Each worker runs the full pure pipeline
// independently and writes its result to the cache before returning, so a
// crashed build never loses completed work.
//
// Two workers racing on the same key would write byte-identical plans
// (determinism), so last-write-wins needs no locking beyond the backend's.
func (r *Runner) PlanAll(ctx context.Context, workspaces []*layout.Workspace, opts Options) (map[string]*layout.LayoutPlan, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	for _, ws := range workspaces {
		if err := ws.Validate(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	plans := make(map[string]*layout.LayoutPlan, len(workspaces))

	// Partition into cache hits and misses.
	var misses []*layout.Workspace
	if opts.Refresh {
		misses = workspaces
	} else {
		for _, ws := range workspaces {
			if data, hit, err := r.Cache.Get(ctx, r.planKey(ws, opts)); err == nil && hit {
				if plan, err := layout.UnmarshalPlan(data); err == nil {
					observability.Cache().OnCacheHit(ctx, "plan")
					plans[ws.ID] = plan
					continue
				}
			}
			misses = append(misses, ws)
		}
	}

	observability.Planner().OnBatchStart(ctx, len(workspaces), len(workspaces)-len(misses))
	opts.Logger.Debug("planning project",
		"workspaces", len(workspaces),
		"cached", len(workspaces)-len(misses),
		"misses", len(misses))

	switch len(misses) {
	case 0:
		// Everything was cached.
	case 1:
		plan, _, err := r.PlanWithCacheInfo(ctx, misses[0], opts)
		if err != nil {
			return nil, err
		}
		plans[misses[0].ID] = plan
	default:
		computed, err := r.planParallel(ctx, misses, opts)
		if err != nil {
			return nil, err
		}
		for id, plan := range computed {
			plans[id] = plan
		}
	}

	observability.Planner().OnBatchComplete(ctx, len(workspaces), time.Since(start))
	return plans, nil
}

// planParallel fans misses out to a bounded worker pool.
func (r *Runner) planParallel(ctx context.Context, misses []*layout.Workspace, opts Options) (map[string]*layout.LayoutPlan, error) {
	workers := MaxWorkers
	if len(misses) < workers {
		workers = len(misses)
	}

	jobs := make(chan *layout.Workspace)
	var (
		mu    sync.Mutex
		plans = make(map[string]*layout.LayoutPlan, len(misses))
		first error
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ws := range jobs {
				plan, _, err := r.PlanWithCacheInfo(ctx, ws, opts)
				mu.Lock()
				if err != nil {
					if first == nil {
						first = fmt.Errorf("plan %s: %w", ws.ID, err)
					}
				} else {
					plans[ws.ID] = plan
				}
				mu.Unlock()
			}
		}()
	}

	for _, ws := range misses {
		jobs <- ws
	}
	close(jobs)
	wg.Wait()

	if first != nil {
		return nil, first
	}
	return plans, nil
}
