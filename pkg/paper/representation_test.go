package paper

import (
	"slices"
	"testing"
)

func TestOrientationMirror(t *testing.T) {
	falling := mustDiagonal(t, Left, 3, 0, 0, 3)
	rising := mustDiagonal(t, Left, 0, 0, 3, 3)

	tests := []struct {
		name string
		fold Fold
		want map[Orientation]Orientation
	}{
		{"horizontal", HorizontalFold(Up, 1.5), map[Orientation]Orientation{
			TopLeft: BottomLeft, TopRight: BottomRight, BottomLeft: TopLeft, BottomRight: TopRight,
		}},
		{"vertical", VerticalFold(Left, 1.5), map[Orientation]Orientation{
			TopLeft: TopRight, TopRight: TopLeft, BottomLeft: BottomRight, BottomRight: BottomLeft,
		}},
		{"falling diagonal", falling, map[Orientation]Orientation{
			TopLeft: BottomRight, TopRight: TopRight, BottomLeft: BottomLeft, BottomRight: TopLeft,
		}},
		{"rising diagonal", rising, map[Orientation]Orientation{
			TopLeft: TopLeft, TopRight: BottomLeft, BottomLeft: TopRight, BottomRight: BottomRight,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for from, to := range tt.want {
				if got := from.Mirror(tt.fold); got != to {
					t.Errorf("%v.Mirror = %v, want %v", from, got, to)
				}
				if back := to.Mirror(tt.fold); back != from {
					t.Errorf("Mirror is not an involution for %v", from)
				}
			}
		})
	}
}

// Mirroring the slot must agree with where the corner geometrically lands.
func TestMirrorMatchesGeometry(t *testing.T) {
	r := newRepresentation(GridPoint{X: 1, Y: 1})
	folds := []Fold{
		HorizontalFold(Up, 2.5),
		VerticalFold(Right, 0.5),
		mustDiagonal(t, Left, 3, 0, 0, 3),
		mustDiagonal(t, Right, 0, 0, 3, 3),
	}
	for _, f := range folds {
		for _, o := range Orientations {
			p, err := r.Corner(o).Reflect(f, 2)
			if err != nil {
				t.Fatal(err)
			}
			// Reflecting a unit square across these lines maps corners onto
			// the corners of another unit square, so the slot can be read off
			// the offset from the reflected centre.
			c, _ := r.Center.Reflect(f, 2)
			dx, dy := p.X-c.X, p.Y-c.Y
			want := slotFor(dx, dy)
			if got := o.Mirror(f); got != want {
				t.Errorf("%v: %v lands in %v, Mirror says %v", f, o, want, got)
			}
		}
	}
}

func slotFor(dx, dy float64) Orientation {
	switch {
	case dx < 0 && dy < 0:
		return TopLeft
	case dx > 0 && dy < 0:
		return TopRight
	case dx < 0 && dy > 0:
		return BottomLeft
	default:
		return BottomRight
	}
}

func TestRepresentationReflect(t *testing.T) {
	tests := []struct {
		name   string
		origin GridPoint
		fold   Fold
		motion Motion
		center Position
	}{
		{"stays on the fixed half", GridPoint{0, 0}, VerticalFold(Left, 1.5), Stationary, Position{X: 0, Y: 0}},
		{"swings left", GridPoint{3, 2}, VerticalFold(Left, 1.5), Moved, Position{X: 0, Y: 2}},
		{"swings up", GridPoint{1, 3}, HorizontalFold(Up, 2.5), Moved, Position{X: 1, Y: 2}},
		{"on an axis line", GridPoint{2, 1}, VerticalFold(Left, 2), Stationary, Position{X: 2, Y: 1}},
		{"swings across a diagonal", GridPoint{3, 3}, mustDiagonal(t, Left, 3, 0, 0, 3), Moved, Position{X: 0, Y: 0}},
		{"wrong side of a diagonal", GridPoint{0, 0}, mustDiagonal(t, Left, 3, 0, 0, 3), Stationary, Position{X: 0, Y: 0}},
		{"cut by a diagonal", GridPoint{1, 2}, mustDiagonal(t, Left, 3, 0, 0, 3), Bisected, Position{X: 1, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepresentation(tt.origin)
			got, motion, err := r.Reflect(tt.fold, 2)
			if err != nil {
				t.Fatalf("Reflect: %v", err)
			}
			if motion != tt.motion {
				t.Errorf("motion = %v, want %v", motion, tt.motion)
			}
			if !got.Center.Position().Equal(tt.center) {
				t.Errorf("centre = %v, want %v", got.Center.Position(), tt.center)
			}
			switch motion {
			case Stationary:
				if got.Layer() != 0 {
					t.Errorf("stationary cell relabelled to layer %d", got.Layer())
				}
			case Moved:
				if got.Layer() != 1 || got.Halved {
					t.Errorf("moved cell = %v, want full cell on layer 1", got)
				}
			case Bisected:
				if !got.Halved {
					t.Error("bisected cell not halved")
				}
			}
		})
	}
}

func TestRepresentationMovedCornersStayOrdered(t *testing.T) {
	r := newRepresentation(GridPoint{X: 3, Y: 3})
	got, _, err := r.Reflect(mustDiagonal(t, Left, 3, 0, 0, 3), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := newRepresentation(GridPoint{X: 0, Y: 0})
	for _, o := range Orientations {
		if !got.Corner(o).SamePosition(want.Corner(o)) {
			t.Errorf("%v corner at %v, want %v", o, got.Corner(o).Position(), want.Corner(o).Position())
		}
	}
	if !slices.Equal(got.Polygon(), want.Polygon()) {
		t.Errorf("Polygon() = %v, want %v", got.Polygon(), want.Polygon())
	}
}

func TestRepresentationOutOfBounds(t *testing.T) {
	r := newRepresentation(GridPoint{X: 0, Y: 0})
	if r.OutOfBounds() {
		t.Error("edge cell reported out of bounds")
	}
	moved, _, _ := r.Reflect(VerticalFold(Right, 2), 2)
	if !moved.OutOfBounds() {
		t.Errorf("cell reflected to %v should be out of bounds", moved.Center.Position())
	}
}

func TestMotionString(t *testing.T) {
	for m, want := range map[Motion]string{Stationary: "stationary", Moved: "moved", Bisected: "bisected", Motion(5): "unknown"} {
		if m.String() != want {
			t.Errorf("Motion(%d).String() = %q, want %q", int(m), m.String(), want)
		}
	}
}

func TestRepresentationString(t *testing.T) {
	r := newRepresentation(GridPoint{X: 2, Y: 1})
	if got, want := r.String(), "Representation(center=(2, 1), layer=0)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	r.Halved, r.Hinge = true, BottomLeft
	if got, want := r.String(), "Representation(center=(2, 1), layer=0, halved, hinge=bottom-left)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
