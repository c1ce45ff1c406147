// Package render draws object graphs as node-link diagrams with Graphviz.
//
// [ToDOT] turns a graph.Graph into DOT, grouping node colors by the part of
// the model an object belongs to (structure, data, modeling, results).
// [RenderSVG] lays the DOT out in-process through go-graphviz; [ToPDF] and
// [ToPNG] convert the SVG with the external rsvg-convert tool.
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
package render
