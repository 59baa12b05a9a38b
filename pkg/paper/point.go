package paper

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/holepunch/pkg/errors"
)

// epsilon is the tolerance used for every coordinate comparison.
const epsilon = 1e-9

// Position is a location on the sheet, in cell units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String formats the position as "(x, y)". It is also the canonical key used
// by [Snapshot] consumers that need a string.
func (p Position) String() string {
	return "(" + formatCoord(p.X) + ", " + formatCoord(p.Y) + ")"
}

// Equal reports whether two positions coincide within the engine tolerance.
func (p Position) Equal(q Position) bool {
	return math.Abs(p.X-q.X) < epsilon && math.Abs(p.Y-q.Y) < epsilon
}

// Grid returns the grid cell whose centre is p, if p is one.
func (p Position) Grid() (GridPoint, bool) {
	x, y := math.Round(p.X), math.Round(p.Y)
	g := GridPoint{X: int(x), Y: int(y)}
	return g, p.Equal(g.Position()) && g.InBounds()
}

// GridPoint addresses one of the 16 cells by its integer centre.
type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Position converts the grid point to sheet coordinates.
func (g GridPoint) Position() Position {
	return Position{X: float64(g.X), Y: float64(g.Y)}
}

// InBounds reports whether g addresses a cell of the grid.
func (g GridPoint) InBounds() bool {
	return errors.ValidateGridPoint(g.X, g.Y) == nil
}

func (g GridPoint) String() string {
	return fmt.Sprintf("(%d, %d)", g.X, g.Y)
}

// Point is an immutable coordinate carrying the layer tags of the paper at
// that spot. The tag sequence is never empty.
type Point struct {
	X, Y   float64
	layers []int
}

// NewPoint returns a point at (x, y). With no layers it starts on layer 0.
func NewPoint(x, y float64, layers ...int) Point {
	if len(layers) == 0 {
		layers = []int{0}
	}
	return Point{X: x, Y: y, layers: slices.Clone(layers)}
}

// Position drops the layer tags.
func (p Point) Position() Position { return Position{X: p.X, Y: p.Y} }

// Layers returns a copy of the layer tags in accumulation order.
func (p Point) Layers() []int {
	if len(p.layers) == 0 {
		return []int{0}
	}
	return slices.Clone(p.layers)
}

// Layer is the highest tag, i.e. the topmost sheet at this point.
func (p Point) Layer() int {
	if len(p.layers) == 0 {
		return 0
	}
	return slices.Max(p.layers)
}

// SamePosition compares coordinates only, ignoring layers.
func (p Point) SamePosition(q Point) bool {
	return p.Position().Equal(q.Position())
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%s, %s, z=%v)", formatCoord(p.X), formatCoord(p.Y), p.Layers())
}

// Reflect mirrors p across the fold line and relabels every layer tag z to
// ceiling - z - 1. A point lying on a diagonal fold line keeps its
// coordinates and accumulates the relabelled tags followed by its old ones.
//
// Horizontal and vertical folds whose intercept does not cross the paper
// fail with an errors.ErrCodeDomain error.
func (p Point) Reflect(f Fold, ceiling int) (Point, error) {
	relabelled := make([]int, 0, len(p.layers)*2)
	for _, z := range p.Layers() {
		relabelled = append(relabelled, ceiling-z-1)
	}

	switch f.Kind {
	case Horizontal:
		if err := checkIntercept(f); err != nil {
			return Point{}, err
		}
		return Point{X: p.X, Y: snap(2*f.Intercept - p.Y), layers: relabelled}, nil

	case Vertical:
		if err := checkIntercept(f); err != nil {
			return Point{}, err
		}
		return Point{X: snap(2*f.Intercept - p.X), Y: p.Y, layers: relabelled}, nil

	case Diagonal:
		if f.Slope == 0 || math.IsInf(f.Slope, 0) || math.IsNaN(f.Slope) {
			return Point{}, errors.New(errors.ErrCodeDomain, "diagonal fold with slope %v", f.Slope)
		}
		if f.OnLine(p.Position()) {
			return Point{X: p.X, Y: p.Y, layers: append(relabelled, p.Layers()...)}, nil
		}
		// Foot of the perpendicular from p, then double the offset.
		perpSlope := -1 / f.Slope
		perpIntercept := p.Y - perpSlope*p.X
		ix := (perpIntercept - f.Intercept) / (f.Slope - perpSlope)
		iy := f.Slope*ix + f.Intercept
		return Point{X: snap(2*ix - p.X), Y: snap(2*iy - p.Y), layers: relabelled}, nil
	}

	return Point{}, errors.New(errors.ErrCodeDomain, "unknown fold kind %d", f.Kind)
}

func checkIntercept(f Fold) error {
	if math.IsNaN(f.Intercept) || f.Intercept < 0 || f.Intercept > GridSize-1 {
		return errors.New(errors.ErrCodeDomain, "%s fold intercept %s outside [0, %d]",
			f.Kind, formatCoord(f.Intercept), GridSize-1)
	}
	return nil
}

// snap pulls values within epsilon of a half-integer onto it, so reflected
// grid coordinates compare and hash exactly. It also normalises negative zero.
func snap(v float64) float64 {
	if h := math.Round(v*2) / 2; math.Abs(v-h) < epsilon {
		v = h
	}
	if v == 0 {
		return 0
	}
	return v
}

func formatCoord(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
