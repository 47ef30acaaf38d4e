package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
	"github.com/manwithacat/dazzle-sub005/pkg/manifest"
	"github.com/manwithacat/dazzle-sub005/pkg/pipeline"
)

// planCommand creates the plan command for computing layout plans.
func (c *CLI) planCommand() *cobra.Command {
	var (
		outputDir string
		variant   string
		refresh   bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "plan [manifest]",
		Short: "Compute layout plans for every workspace in a manifest",
		Long: `Compute layout plans for every workspace in a manifest.

The plan command reads a workspace manifest (TOML or JSON), runs the layout
pipeline for each workspace, and writes one <workspace>.plan.json file per
workspace. Plans are a pure function of the manifest, so unchanged workspaces
resolve from the local cache.

Use 'inspect' to browse the results interactively, or 'visualize' to render a
plan as a diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], outputDir, variant, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for .plan.json files")
	cmd.Flags().StringVar(&variant, "variant", "", "rendering variant override: classic, dense, comfortable")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute plans even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPlan loads the manifest, plans each workspace, and writes output files.
func (c *CLI) runPlan(ctx context.Context, input, outputDir, variant string, refresh, noCache bool) error {
	m, err := manifest.Load(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Persona: m.Persona,
		Variant: layout.Variant(variant),
		Refresh: refresh,
		Logger:  c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Planning %d workspace(s)...", len(m.Workspaces)))
	spinner.Start()

	type result struct {
		plan *layout.LayoutPlan
		hit  bool
		path string
	}
	results := make([]result, 0, len(m.Workspaces))

	for _, ws := range m.WorkspaceRefs() {
		plan, hit, err := runner.PlanWithCacheInfo(ctx, ws, opts)
		if err != nil {
			spinner.StopWithError("Planning failed")
			return fmt.Errorf("plan %s: %w", ws.ID, err)
		}
		path := filepath.Join(outputDir, ws.ID+".plan.json")
		if err := layout.WritePlanFile(plan, path); err != nil {
			spinner.StopWithError("Planning failed")
			return fmt.Errorf("write %s: %w", path, err)
		}
		results = append(results, result{plan: plan, hit: hit, path: path})
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Planned %d workspace(s)", len(results))
	for _, r := range results {
		printFile(r.path)
		printPlanStats(r.plan, r.hit)
		for _, w := range r.plan.Warnings {
			printWarning("%s: %s", r.plan.WorkspaceID, w)
		}
	}
	printNewline()
	printNextStep("Inspect", appName+" inspect "+input)

	return nil
}
