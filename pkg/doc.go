// Package pkg provides the libraries behind holepunch, a fold-and-punch
// simulator for a 4x4 sheet of paper.
//
// # Overview
//
// A sheet of sixteen unit cells is folded along grid lines and diagonals,
// punched through the folded stack and unfolded again. Every cell remembers
// where it was after each fold, so any step of the history can be drawn and
// the holes on the unfolded sheet fall out of the punch.
//
// # Architecture
//
// The data flow through holepunch:
//
//	fold notation ("v:left:1.5")
//	         ↓
//	    [paper] package (reflect cells, validate folds, punch)
//	         ↓
//	    [render] package (scene per history step)
//	         ↓
//	    SVG/PNG/PDF/JSON/text output
//
// # Quick Start
//
//	p := paper.New()
//	if err := p.AddFold(paper.VerticalFold(paper.Left, 1.5)); err != nil {
//	    return err
//	}
//	p.Punch(paper.GridPoint{X: 1, Y: 1})
//	fmt.Println(p.Holes()) // [(1, 1) (2, 1)]
//
//	scene, _ := render.Build(p, 1, render.DefaultOptions())
//	svg := render.RenderSVG(scene)
//
// # Main Packages
//
// [paper] - The folding engine: cells, their per-step representations,
// fold lines, reflection with layer bookkeeping and half-cells produced by
// diagonal folds.
//
// [catalog] - The menu of folds offered to players, built in or loaded
// from TOML.
//
// [quiz] - Seeded question generation and grading.
//
// [render] - Scenes and sinks (SVG, PNG via fogleman/gg, JSON, PDF via
// rsvg-convert, terminal text). [render/trace] draws the fold history as a
// Graphviz flow graph.
//
// [pipeline] - Notation to artifacts, shared by the CLI and the HTTP API,
// with render caching.
//
// [cache] - File and Redis artifact caches and their key scheme.
//
// [server] - Stateless JSON API on chi.
//
// [config], [errors], [observability] and [buildinfo] carry the ambient
// concerns: TOML settings, coded errors, event hooks and version stamps.
//
// [paper]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/paper
// [catalog]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/catalog
// [quiz]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/quiz
// [render]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/render
// [render/trace]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/render/trace
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/holepunch/pkg/buildinfo
package pkg
