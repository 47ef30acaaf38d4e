// Package pkg provides the core libraries for Dazzle's layout pass.
//
// # Overview
//
// Dazzle turns declarative workspace descriptions into deterministic layout
// plans. Regions declare what data they show; the engine decides where
// everything goes. The pkg directory is organized into these areas:
//
//  1. [layout] - Domain logic (signal extraction, persona adjustment, archetype selection, surface allocation)
//  2. [pipeline] - Orchestration and plan caching
//  3. [manifest] - Workspace manifest parsing and validation
//  4. [render] - DOT/SVG/PDF/PNG visualization of plans
//  5. [cache], [store] - Infrastructure (plan cache backends, plan archive)
//
// # Architecture
//
// The typical data flow through the engine:
//
//	Workspace Manifest (TOML/JSON)
//	         ↓
//	    [manifest] package (parse + validate)
//	         ↓
//	    [layout] package (extract → adjust → select → allocate)
//	         ↓
//	    [pipeline] package (cache, batch planning)
//	         ↓
//	    JSON plan / SVG visualization
//
// # Quick Start
//
// Compute a layout plan for a workspace:
//
//	import (
//	    "context"
//	    "github.com/manwithacat/dazzle-sub005/pkg/layout"
//	    "github.com/manwithacat/dazzle-sub005/pkg/pipeline"
//	)
//
//	// 1. Describe the workspace
//	ws := layout.Workspace{
//	    ID: "ops",
//	    Regions: []layout.Region{
//	        {Name: "health", Source: "orders", Aggregates: []string{"count"}},
//	        {Name: "inbox", Source: "tickets", Limit: 10},
//	    },
//	}
//
//	// 2. Compute the plan (pure, deterministic)
//	plan, _ := layout.BuildPlan(ws, layout.BuildOptions{})
//
//	// 3. Or go through the caching runner
//	r := pipeline.NewRunner(nil, nil, nil)
//	plan, _ = r.Plan(context.Background(), ws, pipeline.Options{})
//
// Plans are a pure function of the workspace, the persona, and the engine
// version. The same inputs always marshal to byte-identical JSON.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [layout]: https://pkg.go.dev/github.com/manwithacat/dazzle-sub005/pkg/layout
// [pipeline]: https://pkg.go.dev/github.com/manwithacat/dazzle-sub005/pkg/pipeline
// [manifest]: https://pkg.go.dev/github.com/manwithacat/dazzle-sub005/pkg/manifest
// [render]: https://pkg.go.dev/github.com/manwithacat/dazzle-sub005/pkg/render
// [cache]: https://pkg.go.dev/github.com/manwithacat/dazzle-sub005/pkg/cache
// [store]: https://pkg.go.dev/github.com/manwithacat/dazzle-sub005/pkg/store
package pkg
