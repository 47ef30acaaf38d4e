package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

// Options configures plan diagram rendering.
type Options struct {
	// Detailed includes kind, weight, and capacity figures in labels.
	// When false, only identifiers are shown.
	Detailed bool
}

// ToDOT converts a layout plan to Graphviz DOT format. Each surface becomes
// a cluster holding its assigned signals; over-budget signals go into a
// dashed trailing cluster. The resulting DOT string can be rendered with
// [RenderSVG].
//
// Output is deterministic: surfaces appear in priority order and signals in
// assignment order, exactly as the plan records them.
func ToDOT(plan *layout.LayoutPlan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	fmt.Fprintf(&buf, "  label=%q;\n", fmtTitle(plan, opts.Detailed))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("\n")

	signals := make(map[string]layout.AttentionSignal, len(plan.Signals))
	for _, s := range plan.Signals {
		signals[s.ID] = s
	}

	for i, surface := range plan.Surfaces {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", fmtSurfaceLabel(surface, opts.Detailed))
		buf.WriteString("    style=rounded;\n")
		for _, id := range surface.AssignedSignals {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", id, fmtSignalLabel(signals[id], opts.Detailed))
		}
		buf.WriteString("  }\n")
	}

	if len(plan.OverBudgetSignals) > 0 {
		buf.WriteString("  subgraph cluster_over_budget {\n")
		buf.WriteString("    label=\"over budget\";\n")
		buf.WriteString("    style=\"rounded,dashed\";\n")
		buf.WriteString("    fontcolor=grey40;\n")
		for _, id := range plan.OverBudgetSignals {
			fmt.Fprintf(&buf, "    %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n",
				id, fmtSignalLabel(signals[id], opts.Detailed))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtTitle(plan *layout.LayoutPlan, detailed bool) string {
	title := fmt.Sprintf("%s (%s)", plan.WorkspaceID, plan.Archetype)
	if detailed && plan.PersonaID != "" {
		title += "\npersona: " + plan.PersonaID
	}
	return title
}

func fmtSurfaceLabel(s layout.PlanSurface, detailed bool) string {
	if !detailed {
		return s.ID
	}
	return fmt.Sprintf("%s\n%s / %s", s.ID, formatFloat(s.UsedWeight), formatFloat(s.Capacity))
}

func fmtSignalLabel(s layout.AttentionSignal, detailed bool) string {
	if !detailed {
		return s.ID
	}
	parts := []string{s.ID, string(s.Kind), "weight: " + formatFloat(s.Weight)}
	return strings.Join(parts, "\n")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT diagram to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
