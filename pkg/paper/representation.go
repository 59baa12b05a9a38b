package paper

import (
	"fmt"
	"slices"
)

// Motion classifies what a fold does to one representation.
type Motion int

const (
	// Stationary: the representation lies on the half that stays put.
	Stationary Motion = iota
	// Moved: the whole representation swings over the fold line.
	Moved
	// Bisected: the fold line cuts through the centre, leaving a half-cell.
	Bisected
)

func (m Motion) String() string {
	switch m {
	case Stationary:
		return "stationary"
	case Moved:
		return "moved"
	case Bisected:
		return "bisected"
	}
	return "unknown"
}

// Representation is the footprint of one cell at one step of the fold
// history: a centre and four corners, each with its own layer tags.
//
// Corners sit 0.5 from the centre on both axes unless the cell is Halved. A
// half-cell is a triangle: the corner opposite Hinge has been folded onto
// Hinge and shares its coordinates.
type Representation struct {
	Center      Point
	TopLeft     Point
	TopRight    Point
	BottomLeft  Point
	BottomRight Point

	Halved bool
	Hinge  Orientation
}

func newRepresentation(origin GridPoint) Representation {
	x, y := float64(origin.X), float64(origin.Y)
	return Representation{
		Center:      NewPoint(x, y),
		TopLeft:     NewPoint(x-0.5, y-0.5),
		TopRight:    NewPoint(x+0.5, y-0.5),
		BottomLeft:  NewPoint(x-0.5, y+0.5),
		BottomRight: NewPoint(x+0.5, y+0.5),
	}
}

// Corner returns the point stored in the given corner slot.
func (r Representation) Corner(o Orientation) Point {
	switch o {
	case TopLeft:
		return r.TopLeft
	case TopRight:
		return r.TopRight
	case BottomLeft:
		return r.BottomLeft
	default:
		return r.BottomRight
	}
}

func (r *Representation) setCorner(o Orientation, p Point) {
	switch o {
	case TopLeft:
		r.TopLeft = p
	case TopRight:
		r.TopRight = p
	case BottomLeft:
		r.BottomLeft = p
	default:
		r.BottomRight = p
	}
}

// Points returns the centre followed by the corners in slot order.
func (r Representation) Points() []Point {
	return []Point{r.Center, r.TopLeft, r.TopRight, r.BottomLeft, r.BottomRight}
}

// Layer is the highest layer tag over all five points. It orders
// representations that share a position: larger is drawn later.
func (r Representation) Layer() int {
	layer := r.Center.Layer()
	for _, o := range Orientations {
		layer = max(layer, r.Corner(o).Layer())
	}
	return layer
}

// OutOfBounds reports whether any point lies off the sheet.
func (r Representation) OutOfBounds() bool {
	const lo, hi = -0.5, GridSize - 0.5
	for _, p := range r.Points() {
		if p.X < lo-epsilon || p.X > hi+epsilon || p.Y < lo-epsilon || p.Y > hi+epsilon {
			return true
		}
	}
	return false
}

// Polygon returns the outline clockwise from the top-left slot with
// coinciding corners removed: four vertices for a full cell, three for a
// half-cell.
func (r Representation) Polygon() []Position {
	var out []Position
	for _, o := range []Orientation{TopLeft, TopRight, BottomRight, BottomLeft} {
		p := r.Corner(o).Position()
		if !slices.ContainsFunc(out, p.Equal) {
			out = append(out, p)
		}
	}
	return out
}

func (r Representation) String() string {
	s := fmt.Sprintf("Representation(center=%s, layer=%d", r.Center.Position(), r.Layer())
	if r.Halved {
		s += ", halved, hinge=" + r.Hinge.String()
	}
	return s + ")"
}

// Reflect computes the representation after folding across f, where ceiling
// is 2^n for the n-th fold. The returned Motion says which half of the fold
// the cell was on:
//
//   - Stationary: r is returned unchanged
//   - Moved: all five points are reflected and the corner slots are
//     relabelled to match their new positions
//   - Bisected: f is diagonal and passes through the centre; corners on the
//     moving side fold onto the stationary side and the result is Halved
//
// Errors come from [Point.Reflect].
func (r Representation) Reflect(f Fold, ceiling int) (Representation, Motion, error) {
	center, err := r.Center.Reflect(f, ceiling)
	if err != nil {
		return Representation{}, Stationary, err
	}

	if f.Kind == Diagonal && f.OnLine(r.Center.Position()) {
		return r.bisect(f, ceiling, center)
	}
	if !f.Moves(r.Center.Position(), center.Position()) {
		return r, Stationary, nil
	}
	out, err := r.mirror(f, ceiling, center)
	if err != nil {
		return Representation{}, Stationary, err
	}
	return out, Moved, nil
}

// mirror reflects every point, moving each corner into the slot it lands in.
func (r Representation) mirror(f Fold, ceiling int, center Point) (Representation, error) {
	out := Representation{Center: center, Halved: r.Halved, Hinge: r.Hinge.Mirror(f)}
	for _, o := range Orientations {
		p, err := r.Corner(o).Reflect(f, ceiling)
		if err != nil {
			return Representation{}, err
		}
		out.setCorner(o.Mirror(f), p)
	}
	return out, nil
}

// bisect folds the moving corners of a cell whose centre lies on f. Moving
// corners keep their slot, so the collapsed slot marks the folded half.
func (r Representation) bisect(f Fold, ceiling int, center Point) (Representation, Motion, error) {
	out := r
	out.Center = center

	var moving, staying int
	for _, o := range Orientations {
		c := r.Corner(o)
		p, err := c.Reflect(f, ceiling)
		if err != nil {
			return Representation{}, Stationary, err
		}
		switch {
		case f.OnLine(c.Position()):
			out.setCorner(o, p)
		case f.Moves(c.Position(), p.Position()):
			out.setCorner(o, p)
			moving++
		default:
			staying++
		}
	}

	switch {
	case moving == 0:
		return r, Stationary, nil
	case staying == 0:
		full, err := r.mirror(f, ceiling, center)
		if err != nil {
			return Representation{}, Stationary, err
		}
		return full, Moved, nil
	}

	out.Halved = true
	out.Hinge = hingeFor(f)
	return out, Bisected, nil
}
