package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manwithacat/dazzle-sub005/pkg/errors"
	"github.com/manwithacat/dazzle-sub005/pkg/layout"
	"github.com/manwithacat/dazzle-sub005/pkg/render"
)

// visualizeCommand creates the visualize command for rendering plan diagrams.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "visualize [plan.json]",
		Short: "Render a computed plan as a diagram",
		Long: `Render a computed plan as a diagram.

The visualize command takes a plan.json file (produced by 'plan') and draws
its surfaces as clusters with the assigned signals inside them. Over-budget
signals appear in a separate dashed cluster.

Formats: dot, svg (default), pdf, png. PDF and PNG require librsvg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(args[0], format, output, detailed, scale)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg, pdf, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include weights and capacities in labels")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "pixel scale for png output")

	return cmd
}

// runVisualize loads the plan and renders it in the requested format.
func (c *CLI) runVisualize(input, format, output string, detailed bool, scale float64) error {
	plan, err := layout.ReadPlanFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}

	dot := render.ToDOT(plan, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.RenderSVG(dot)
	case "pdf":
		var svg []byte
		if svg, err = render.RenderSVG(dot); err == nil {
			data, err = render.ToPDF(svg)
		}
	case "png":
		var svg []byte
		if svg, err = render.RenderSVG(dot); err == nil {
			data, err = render.ToPNG(svg, scale)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format %q (expected dot, svg, pdf, or png)", format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Rendered %s diagram", plan.WorkspaceID)
	printFile(outputPath)
	return nil
}
