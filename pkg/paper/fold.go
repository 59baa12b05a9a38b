package paper

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/holepunch/pkg/errors"
)

// Kind is the family of a fold line.
type Kind int

const (
	// Horizontal folds along y = intercept.
	Horizontal Kind = iota
	// Vertical folds along x = intercept.
	Vertical
	// Diagonal folds along y = slope*x + intercept.
	Diagonal
)

func (k Kind) String() string {
	switch k {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	}
	return "unknown"
}

// Side names the direction in which the moving half of the paper travels.
// Horizontal folds use [Up] and [Down]; vertical and diagonal folds use
// [Left] and [Right].
type Side int

const (
	Left Side = iota
	Right
	Up
	Down
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Fold is an immutable description of a fold line and the side that moves.
//
// Slope is 0 for horizontal folds and +Inf for vertical folds. For those two
// families Intercept is the y or x coordinate of the line. Diagonal folds
// derive both from two construction points.
type Fold struct {
	Kind      Kind
	Side      Side
	Slope     float64
	Intercept float64

	// construction points of diagonal folds, kept for display
	from, to Position
}

// HorizontalFold folds along the line y = intercept.
func HorizontalFold(side Side, intercept float64) Fold {
	return Fold{Kind: Horizontal, Side: side, Slope: 0, Intercept: intercept}
}

// VerticalFold folds along the line x = intercept.
func VerticalFold(side Side, intercept float64) Fold {
	return Fold{Kind: Vertical, Side: side, Slope: math.Inf(1), Intercept: intercept}
}

// DiagonalFold folds along the line through a and b. The points must be
// distinct and must not lie on a common row or column; such lines are
// expressed with [HorizontalFold] or [VerticalFold] instead.
func DiagonalFold(side Side, a, b Position) (Fold, error) {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case math.Abs(dx) < epsilon && math.Abs(dy) < epsilon:
		return Fold{}, errors.New(errors.ErrCodeDomain, "diagonal fold through coincident points %s", a)
	case math.Abs(dx) < epsilon:
		return Fold{}, errors.New(errors.ErrCodeDomain, "line %s-%s is vertical, not diagonal", a, b)
	case math.Abs(dy) < epsilon:
		return Fold{}, errors.New(errors.ErrCodeDomain, "line %s-%s is horizontal, not diagonal", a, b)
	}
	slope := dy / dx
	return Fold{
		Kind:      Diagonal,
		Side:      side,
		Slope:     slope,
		Intercept: a.Y - slope*a.X,
		from:      a,
		to:        b,
	}, nil
}

// Validate checks that the side belongs to the fold's family and that the
// line is well formed. It does not look at any paper.
func (f Fold) Validate() error {
	switch f.Kind {
	case Horizontal:
		if f.Side != Up && f.Side != Down {
			return errors.New(errors.ErrCodeInvalidFold, "horizontal fold cannot move %s", f.Side)
		}
	case Vertical, Diagonal:
		if f.Side != Left && f.Side != Right {
			return errors.New(errors.ErrCodeInvalidFold, "%s fold cannot move %s", f.Kind, f.Side)
		}
		if f.Kind == Diagonal && (f.Slope == 0 || math.IsInf(f.Slope, 0) || math.IsNaN(f.Slope)) {
			return errors.New(errors.ErrCodeInvalidFold, "diagonal fold with slope %v", f.Slope)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFold, "unknown fold kind %d", int(f.Kind))
	}
	return nil
}

// Moves reports whether a point that reflected from before to after travelled
// in the fold's direction.
func (f Fold) Moves(before, after Position) bool {
	switch f.Side {
	case Up:
		return after.Y < before.Y-epsilon
	case Down:
		return after.Y > before.Y+epsilon
	case Left:
		return after.X < before.X-epsilon
	case Right:
		return after.X > before.X+epsilon
	}
	return false
}

// OnLine reports whether p lies on the fold line.
func (f Fold) OnLine(p Position) bool {
	switch f.Kind {
	case Horizontal:
		return math.Abs(p.Y-f.Intercept) < epsilon
	case Vertical:
		return math.Abs(p.X-f.Intercept) < epsilon
	default:
		return math.Abs(p.Y-(f.Slope*p.X+f.Intercept)) < epsilon
	}
}

// Equal compares line geometry and side, ignoring how a diagonal was constructed.
func (f Fold) Equal(g Fold) bool {
	if f.Kind != g.Kind || f.Side != g.Side || math.Abs(f.Intercept-g.Intercept) >= epsilon {
		return false
	}
	if math.IsInf(f.Slope, 0) || math.IsInf(g.Slope, 0) {
		return math.IsInf(f.Slope, 0) && math.IsInf(g.Slope, 0)
	}
	return math.Abs(f.Slope-g.Slope) < epsilon
}

// Line returns the segment of the fold line that crosses the sheet, for
// drawing. Lines that miss the sheet return their construction points.
func (f Fold) Line() (Position, Position) {
	const lo, hi = -0.5, GridSize - 0.5
	switch f.Kind {
	case Horizontal:
		return Position{X: lo, Y: f.Intercept}, Position{X: hi, Y: f.Intercept}
	case Vertical:
		return Position{X: f.Intercept, Y: lo}, Position{X: f.Intercept, Y: hi}
	}

	inside := func(p Position) bool {
		return p.X >= lo-epsilon && p.X <= hi+epsilon && p.Y >= lo-epsilon && p.Y <= hi+epsilon
	}
	var pts []Position
	for _, x := range []float64{lo, hi} {
		if p := (Position{X: x, Y: snap(f.Slope*x + f.Intercept)}); inside(p) {
			pts = append(pts, p)
		}
	}
	for _, y := range []float64{lo, hi} {
		if p := (Position{X: snap((y - f.Intercept) / f.Slope), Y: y}); inside(p) {
			pts = append(pts, p)
		}
	}
	if len(pts) < 2 {
		return f.from, f.to
	}
	slices.SortFunc(pts, func(a, b Position) int { return cmp.Compare(a.X, b.X) })
	return pts[0], pts[len(pts)-1]
}

// Points returns the construction points of a diagonal fold. For other
// families, and for diagonals built without them, it returns the clipped line.
func (f Fold) Points() (Position, Position) {
	if f.Kind == Diagonal && !f.from.Equal(f.to) {
		return f.from, f.to
	}
	return f.Line()
}
