package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/manwithacat/dazzle-sub005/pkg/cache"
	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

func testWorkspace(id string) *layout.Workspace {
	return &layout.Workspace{
		ID: id,
		Regions: []layout.Region{
			{Name: "health", Source: "orders", Aggregates: []string{"count"}},
			{Name: "inbox", Source: "tickets", Limit: 10},
			{Name: "records", Source: "orders"},
		},
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestRunnerCacheMissThenHit(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()
	ws := testWorkspace("ops")

	plan1, hit, err := r.PlanWithCacheInfo(ctx, ws, Options{})
	if err != nil {
		t.Fatalf("PlanWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first computation should be a miss")
	}

	plan2, hit, err := r.PlanWithCacheInfo(ctx, ws, Options{})
	if err != nil {
		t.Fatalf("PlanWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("second computation should hit the cache")
	}

	a, _ := layout.MarshalPlan(plan1)
	b, _ := layout.MarshalPlan(plan2)
	if !bytes.Equal(a, b) {
		t.Error("cached plan must be byte-identical to the computed plan")
	}
}

func TestRunnerCorruptEntryRecomputed(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()
	ws := testWorkspace("ops")
	opts := Options{}

	// Poison the cache entry for this workspace.
	key := r.planKey(ws, opts)
	if err := r.Cache.Set(ctx, key, []byte("{garbage"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	plan, hit, err := r.PlanWithCacheInfo(ctx, ws, opts)
	if err != nil {
		t.Fatalf("corrupt entry must recompute, not fail: %v", err)
	}
	if hit {
		t.Error("corrupt entry must count as a miss")
	}
	if plan.WorkspaceID != "ops" {
		t.Errorf("recomputed plan = %+v", plan)
	}

	// The poisoned entry was overwritten with a valid plan.
	if _, hit, _ := r.PlanWithCacheInfo(ctx, ws, opts); !hit {
		t.Error("recomputed plan should have been written back")
	}
}

func TestRunnerRefreshSkipsCacheRead(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()
	ws := testWorkspace("ops")

	if _, _, err := r.PlanWithCacheInfo(ctx, ws, Options{}); err != nil {
		t.Fatalf("PlanWithCacheInfo: %v", err)
	}
	_, hit, err := r.PlanWithCacheInfo(ctx, ws, Options{Refresh: true})
	if err != nil {
		t.Fatalf("PlanWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("refresh must bypass the cache read")
	}
}

func TestRunnerPersonasDoNotAlias(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()
	ws := testWorkspace("ops")

	analyst := Options{Persona: &layout.Persona{ID: "analyst"}}
	dispatcher := Options{Persona: &layout.Persona{ID: "dispatcher"}}

	if _, _, err := r.PlanWithCacheInfo(ctx, ws, analyst); err != nil {
		t.Fatalf("PlanWithCacheInfo: %v", err)
	}
	_, hit, err := r.PlanWithCacheInfo(ctx, ws, dispatcher)
	if err != nil {
		t.Fatalf("PlanWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("a different persona must not hit the other persona's entry")
	}
}

func TestRunnerInvalidate(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()
	ws := testWorkspace("ops")

	if _, _, err := r.PlanWithCacheInfo(ctx, ws, Options{}); err != nil {
		t.Fatalf("PlanWithCacheInfo: %v", err)
	}
	if err := r.Invalidate(ctx, ws, Options{}); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, hit, _ := r.PlanWithCacheInfo(ctx, ws, Options{}); hit {
		t.Error("invalidated entry should miss")
	}
}

func TestRunnerValidation(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	if _, _, err := r.PlanWithCacheInfo(ctx, testWorkspace("ops"), Options{Variant: "cozy"}); err == nil {
		t.Error("invalid variant should fail")
	}

	bad := testWorkspace("ops")
	bad.EngineHint = "mosaic"
	if _, _, err := r.PlanWithCacheInfo(ctx, bad, Options{}); err == nil {
		t.Error("invalid engine hint should be rejected at the boundary")
	}
}
