// Package trace draws the fold history of a sheet as a flow graph.
//
// # Overview
//
// Every step of the history becomes a Graphviz cluster with one node per
// occupied position, labelled with its stack height. Edges follow each cell
// from one step to the next, so folding shows up as many edges converging
// on fewer nodes. Stationary cells are drawn as dotted edges; everything that
// carries a punched cell is red.
//
// # Usage
//
//	dot := trace.ToDOT(p, trace.Options{Detailed: true})
//	svg, err := trace.RenderSVG(ctx, dot)
//
// [RenderSVG] uses the WebAssembly build of Graphviz bundled with
// github.com/goccy/go-graphviz, so no system install is needed.
package trace
