// Package paper simulates folding and hole-punching a square sheet of paper
// divided into a 4x4 grid.
//
// # Overview
//
// The sheet is modelled as 16 cells. Each cell remembers its footprint after
// every fold as an immutable [Representation]: a centre and four corners, each
// a [Point] carrying the layer tags of the paper that sits there. A [Paper]
// owns the cells and the ordered fold history and is the only type that
// mutates simulation state.
//
// Coordinates follow the canvas convention: x grows to the right, y grows
// downward, and cell (0, 0) is the top-left square. Cell centres sit on
// integer coordinates in [0, 3]; the physical sheet spans [-0.5, 3.5] on both
// axes.
//
// # Folds
//
// A [Fold] is a line plus the [Side] of the paper that moves. Three families
// are supported:
//
//   - [HorizontalFold]: the line y = intercept; [Up] or [Down] moves
//   - [VerticalFold]: the line x = intercept; [Left] or [Right] moves
//   - [DiagonalFold]: a line through two points; [Left] or [Right] moves
//
// The side names the direction the moving half travels. VerticalFold(Left, 1.5)
// swings the right half of the sheet over onto the left half.
//
// # Layers
//
// Every fold n (1-based) relabels the layer tags of the paper it moves from z
// to 2^n - z - 1. The relabelling reverses the stack of the moving half and
// places it above everything that stayed, so the largest tag at a position is
// always the topmost sheet. A point lying exactly on a diagonal fold line
// belongs to both halves and keeps both sets of tags.
//
// # Half-cells
//
// A diagonal fold whose line passes through a cell centre bisects that cell.
// Corners on the moving side are reflected onto the stationary side, and the
// representation is marked [Representation.Halved] with the stationary right
// angle recorded as its [Representation.Hinge].
//
// # Basic Usage
//
//	p := paper.New()
//	if err := p.AddFold(paper.VerticalFold(paper.Left, 1.5)); err != nil {
//	    return err
//	}
//	if err := p.AddFold(paper.HorizontalFold(paper.Up, 1.5)); err != nil {
//	    return err
//	}
//	p.Punch(paper.GridPoint{X: 0, Y: 0}) // goes through four layers
//
//	snap, _ := p.CellsAtFold(0) // the unfolded sheet, with its four holes
//
// # Concurrency
//
// A Paper is not safe for concurrent use. Independent simulations must own
// independent Papers; Points, Folds and Representations are values and may be
// shared freely.
package paper
