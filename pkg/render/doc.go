// Package render turns a folded sheet into pictures.
//
// # Overview
//
// Rendering happens in two stages. [Build] converts one step of a
// [paper.Paper] fold history into a [Scene]: pixel-space polygons in drawing
// order, punch markers, the fold line that produced the step and an optional
// caption. Sinks then draw the scene:
//
//   - [RenderSVG]: standalone SVG document
//   - [RenderPNG]: raster image via fogleman/gg
//   - [RenderJSON]: the scene itself, for web clients
//   - [ToPDF]: SVG converted with the external rsvg-convert tool
//
// [RenderText] draws a compact terminal view straight from the paper.
//
// # Drawing order
//
// Cells that share a position are drawn lowest layer first so the sheet on
// top of the stack is visible. Half-cells are drawn as triangles with a
// dashed outline.
//
//	scene, err := render.Build(p, p.FoldCount(), render.DefaultOptions())
//	svg := render.RenderSVG(scene, render.WithTitle("my fold"))
//	png, err := render.RenderPNG(scene, render.WithScale(2))
//
// The fold-history flow graph lives in the [trace] subpackage.
//
// [trace]: github.com/matzehuels/holepunch/pkg/render/trace
package render
