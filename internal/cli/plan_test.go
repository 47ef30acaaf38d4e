package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

const testManifest = `
[[workspace]]
id = "ops"

[[workspace.regions]]
name = "health"
source = "orders"
aggregates = ["count"]

[[workspace.regions]]
name = "inbox"
source = "tickets"
limit = 10

[[workspace]]
id = "fleet"

[[workspace.regions]]
name = "records"
source = "vehicles"
`

func TestRunPlanWritesPlanFiles(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "dazzle.toml")
	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.runPlan(context.Background(), manifestPath, outDir, "", false, false); err != nil {
		t.Fatalf("runPlan: %v", err)
	}

	for _, id := range []string{"ops", "fleet"} {
		path := filepath.Join(outDir, id+".plan.json")
		plan, err := layout.ReadPlanFile(path)
		if err != nil {
			t.Fatalf("ReadPlanFile(%s): %v", path, err)
		}
		if plan.WorkspaceID != id {
			t.Errorf("plan %s has workspace_id %s", path, plan.WorkspaceID)
		}
	}

	// Second run resolves from cache and must produce identical files.
	before, err := os.ReadFile(filepath.Join(outDir, "ops.plan.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.runPlan(context.Background(), manifestPath, outDir, "", false, false); err != nil {
		t.Fatalf("runPlan (second): %v", err)
	}
	after, err := os.ReadFile(filepath.Join(outDir, "ops.plan.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("second run should write byte-identical plan files")
	}
}

func TestRunPlanRejectsBadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte(`
[[workspace]]
id = "ops"
engine_hint = "mosaic"
[[workspace.regions]]
name = "a"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.runPlan(context.Background(), path, dir, "", false, true); err == nil {
		t.Error("unknown engine hint should fail the plan command")
	}
}

func TestRunPlanRejectsBadVariant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dazzle.toml")
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if err := c.runPlan(context.Background(), path, dir, "cozy", false, true); err == nil {
		t.Error("unknown variant should fail the plan command")
	}
}
