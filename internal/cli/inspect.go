package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
	"github.com/manwithacat/dazzle-sub005/pkg/manifest"
	"github.com/manwithacat/dazzle-sub005/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing plans interactively.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		workspaceID string
		variant     string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [manifest]",
		Short: "Browse computed layout plans interactively",
		Long: `Browse computed layout plans interactively.

The inspect command plans every workspace in the manifest, then opens a
picker to choose a workspace and prints its surface allocation as a table.
With --workspace the picker is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], workspaceID, variant, noCache)
		},
	}

	cmd.Flags().StringVarP(&workspaceID, "workspace", "w", "", "inspect a single workspace without the picker")
	cmd.Flags().StringVar(&variant, "variant", "", "rendering variant override: classic, dense, comfortable")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runInspect plans the manifest's workspaces and shows the selected plan.
func (c *CLI) runInspect(ctx context.Context, input, workspaceID, variant string, noCache bool) error {
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
		Logger:  c.Logger,
	}
	plans, err := runner.PlanAll(ctx, m.WorkspaceRefs(), opts)
	if err != nil {
		return err
	}

	ws := m.WorkspaceRefs()[0]
	switch {
	case workspaceID != "":
		ws, err = m.Workspace(workspaceID)
		if err != nil {
			return err
		}
	case len(m.Workspaces) > 1:
		model := NewWorkspaceListModel(m.WorkspaceRefs(), plans)
		final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		selected := final.(WorkspaceListModel).Selected
		if selected == nil {
			return nil // user quit
		}
		ws = selected
	}

	c.printPlan(plans[ws.ID], opts.VariantConfig())
	return nil
}

// printPlan prints one plan's surface table with its metadata.
func (c *CLI) printPlan(plan *layout.LayoutPlan, variant layout.VariantConfig) {
	printNewline()
	fmt.Println(StyleTitle.Render(plan.WorkspaceID) + " " + StyleDim.Render("("+string(plan.Archetype)+")"))
	if plan.PersonaID != "" {
		printDetail("persona: %s", plan.PersonaID)
	}
	printDetail("variant: %s (spacing %.2f, font %.2f)", variant.Variant, variant.SpacingScale, variant.FontScale)
	printDetail("demand: %s of budget", fmt.Sprintf("%.2f", plan.Metadata.TotalDemand))
	printNewline()
	fmt.Println(renderPlanTable(plan))

	if len(plan.OverBudgetSignals) > 0 {
		printNewline()
		for _, id := range plan.OverBudgetSignals {
			printWarning("over budget: %s", id)
		}
	}
	for _, w := range plan.Warnings {
		printWarning("%s", w)
	}
}
