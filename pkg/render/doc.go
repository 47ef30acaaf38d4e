// Package render turns layout plans into visual diagrams.
//
// # Overview
//
// A plan diagram shows each surface of the selected archetype as a cluster,
// with the assigned signals as boxes inside it. Signals that did not fit the
// attention budget appear in a separate dashed cluster so over-budget
// workspaces are obvious at a glance.
//
// The pipeline is DOT first, pixels second:
//
//	dot := render.ToDOT(plan, render.Options{})
//	svg, err := render.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Format Conversion
//
// [RenderSVG] uses Graphviz via goccy/go-graphviz. [ToPDF] and [ToPNG]
// convert the SVG with the external rsvg-convert tool (from librsvg).
package render
