package paper

import (
	"slices"
	"testing"

	"github.com/matzehuels/holepunch/pkg/errors"
)

// testFolds is the usual set of offerable folds: three intercepts per axis
// family and ten diagonal lines, each with both sides.
func testFolds(t testing.TB) []Fold {
	t.Helper()
	var out []Fold
	for _, i := range []float64{0.5, 1.5, 2.5} {
		out = append(out,
			VerticalFold(Left, i), VerticalFold(Right, i),
			HorizontalFold(Up, i), HorizontalFold(Down, i))
	}
	lines := [][4]float64{
		{1, 0, 0, 1}, {2, 0, 0, 2}, {3, 0, 0, 3}, {1, 3, 3, 1}, {2, 3, 3, 2},
		{2, 0, 3, 1}, {1, 0, 3, 2}, {0, 0, 3, 3}, {2, 3, 0, 1}, {1, 3, 0, 2},
	}
	for _, l := range lines {
		out = append(out,
			mustDiagonal(t, Left, l[0], l[1], l[2], l[3]),
			mustDiagonal(t, Right, l[0], l[1], l[2], l[3]))
	}
	return out
}

func mustFold(t testing.TB, p *Paper, folds ...Fold) {
	t.Helper()
	for _, f := range folds {
		if err := p.AddFold(f); err != nil {
			t.Fatalf("AddFold(%v): %v", f, err)
		}
	}
}

func assertLockstep(t testing.TB, p *Paper) {
	t.Helper()
	for _, c := range p.Cells() {
		if c.Len() != p.FoldCount()+1 {
			t.Fatalf("cell %v has %d representations with %d folds", c.Origin(), c.Len(), p.FoldCount())
		}
	}
}

func TestNew(t *testing.T) {
	p := New()

	if p.FoldCount() != 0 {
		t.Errorf("FoldCount() = %d, want 0", p.FoldCount())
	}
	cells := p.Cells()
	if len(cells) != CellCount {
		t.Fatalf("len(Cells()) = %d, want %d", len(cells), CellCount)
	}
	if cells[0].Origin() != (GridPoint{0, 0}) || cells[1].Origin() != (GridPoint{0, 1}) || cells[15].Origin() != (GridPoint{3, 3}) {
		t.Errorf("cells not in column order: %v %v %v", cells[0].Origin(), cells[1].Origin(), cells[15].Origin())
	}
	for _, c := range cells {
		r := c.Latest()
		if r.Halved || r.Layer() != 0 || c.Punched() {
			t.Errorf("cell %v not pristine: %v punched=%v", c.Origin(), r, c.Punched())
		}
		if got := r.Polygon(); len(got) != 4 {
			t.Errorf("cell %v polygon has %d vertices", c.Origin(), len(got))
		}
	}
	assertLockstep(t, p)
}

func TestValidateFold(t *testing.T) {
	tests := []struct {
		name string
		fold Fold
		code errors.Code
	}{
		{"vertical middle", VerticalFold(Left, 1.5), ""},
		{"horizontal near edge", HorizontalFold(Down, 0.5), ""},
		{"anti-diagonal", mustDiagonal(t, Left, 3, 0, 0, 3), ""},
		{"small corner", mustDiagonal(t, Right, 1, 0, 0, 1), ""},

		{"moves no cells", VerticalFold(Right, 0), errors.ErrCodeInvalidFold},
		{"edge no-op", HorizontalFold(Down, 0), errors.ErrCodeInvalidFold},
		{"lands off paper", VerticalFold(Right, 2.5), errors.ErrCodeInvalidFold},
		{"diagonal off paper", mustDiagonal(t, Left, 1, 0, 0, 1), errors.ErrCodeInvalidFold},
		{"wrong side", VerticalFold(Up, 1.5), errors.ErrCodeInvalidFold},
		{"line outside paper", VerticalFold(Left, 4), errors.ErrCodeDomain},
		{"negative intercept", HorizontalFold(Up, -1), errors.ErrCodeDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			err := p.ValidateFold(tt.fold)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateFold(%v) = %v, want nil", tt.fold, err)
				}
				if !p.IsValidFold(tt.fold) {
					t.Error("IsValidFold = false for a valid fold")
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("ValidateFold(%v) = %v, want %s", tt.fold, err, tt.code)
			}
			if p.IsValidFold(tt.fold) {
				t.Error("IsValidFold = true for an invalid fold")
			}
		})
	}
}

func TestValidateFoldLimit(t *testing.T) {
	seesaw := []Fold{VerticalFold(Left, 1.5), VerticalFold(Right, 1.5)}

	tests := []struct {
		name  string
		prior int
		code  errors.Code
	}{
		{"first fold", 0, ""},
		{"fourth fold", MaxFolds - 1, ""},
		{"fifth fold", MaxFolds, errors.ErrCodeInvalidFold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			for i := range tt.prior {
				mustFold(t, p, seesaw[i%2])
			}
			next := seesaw[tt.prior%2]
			err := p.ValidateFold(next)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("ValidateFold after %d folds = %v, want nil", tt.prior, err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("ValidateFold after %d folds = %v, want %s", tt.prior, err, tt.code)
			}
			if err := p.AddFold(next); !errors.Is(err, errors.ErrCodeInvalidFold) {
				t.Errorf("AddFold = %v, want INVALID_FOLD", err)
			}
			if p.FoldCount() != tt.prior {
				t.Errorf("FoldCount = %d, want %d", p.FoldCount(), tt.prior)
			}
		})
	}
}

func TestAddFoldRejectsWithoutMutation(t *testing.T) {
	p := New()
	mustFold(t, p, VerticalFold(Left, 1.5))
	before, _ := p.CellsAtFold(1)

	for _, f := range []Fold{
		VerticalFold(Left, 4),
		VerticalFold(Right, 2.5),
		HorizontalFold(Left, 1.5),
	} {
		err := p.AddFold(f)
		if !errors.Is(err, errors.ErrCodeInvalidFold) {
			t.Errorf("AddFold(%v) = %v, want INVALID_FOLD", f, err)
		}
	}

	if err := p.AddFold(VerticalFold(Left, 4)); !errors.Has(err, errors.ErrCodeDomain) {
		t.Errorf("AddFold should keep the domain cause, got %v", err)
	}

	if p.FoldCount() != 1 {
		t.Errorf("FoldCount() = %d after rejected folds, want 1", p.FoldCount())
	}
	assertLockstep(t, p)
	after, _ := p.CellsAtFold(1)
	if after.Len() != before.Len() || len(after) != len(before) {
		t.Error("rejected folds changed the snapshot")
	}
}

func TestPunchPropagation(t *testing.T) {
	p := New()
	mustFold(t, p, VerticalFold(Left, 1.5), HorizontalFold(Up, 1.5))

	if n := p.Punch(GridPoint{0, 0}); n != 4 {
		t.Fatalf("Punch((0,0)) marked %d cells, want 4", n)
	}

	want := []GridPoint{{0, 0}, {3, 0}, {0, 3}, {3, 3}}
	if got := p.Holes(); !slices.Equal(got, want) {
		t.Errorf("Holes() = %v, want %v", got, want)
	}
	for _, c := range p.Cells() {
		corner := slices.Contains(want, c.Origin())
		if c.Punched() != corner {
			t.Errorf("cell %v punched = %v, want %v", c.Origin(), c.Punched(), corner)
		}
	}
}

func TestPunchEmptyPositionIsNoOp(t *testing.T) {
	p := New()
	mustFold(t, p, VerticalFold(Left, 1.5))

	if p.Occupied(GridPoint{3, 0}) {
		t.Error("(3,0) should be empty after folding the right half over")
	}
	if n := p.Punch(GridPoint{3, 0}); n != 0 {
		t.Errorf("Punch on empty position marked %d cells", n)
	}
	if n := p.Punch(GridPoint{7, 7}); n != 0 {
		t.Errorf("Punch off the grid marked %d cells", n)
	}
	if len(p.Holes()) != 0 {
		t.Errorf("Holes() = %v, want none", p.Holes())
	}
}

func TestLayerStacking(t *testing.T) {
	p := New()
	mustFold(t, p, VerticalFold(Left, 1.5), HorizontalFold(Up, 1.5))

	snap, err := p.CellsAtFold(2)
	if err != nil {
		t.Fatal(err)
	}
	stack := snap[Position{X: 0, Y: 0}]
	if len(stack) != 4 {
		t.Fatalf("stack at (0,0) has %d entries, want 4", len(stack))
	}

	layers := map[GridPoint]int{}
	for _, e := range stack {
		layers[e.Origin] = e.Rep.Layer()
	}
	// Right half folded onto left, then bottom folded up: (0,3) ends on top.
	want := map[GridPoint]int{{0, 0}: 0, {3, 0}: 1, {3, 3}: 2, {0, 3}: 3}
	for origin, layer := range want {
		if layers[origin] != layer {
			t.Errorf("layer of %v = %d, want %d", origin, layers[origin], layer)
		}
	}

	entries := snap.Entries()
	if entries[len(entries)-1].Rep.Layer() != 3 {
		t.Error("Entries() should end with the topmost layer")
	}
}

func TestLayerInversion(t *testing.T) {
	p := New()
	mustFold(t, p, VerticalFold(Left, 2.5), VerticalFold(Left, 1.5))

	before, _ := p.CellsAtFold(1)
	after, _ := p.CellsAtFold(2)
	ceiling := 1 << 2

	type moved struct{ before, after int }
	var ms []moved
	for _, c := range p.Cells() {
		b, _ := c.At(1)
		a, _ := c.At(2)
		if b.Center.Position().Equal(a.Center.Position()) {
			continue
		}
		if a.Layer() != ceiling-b.Layer()-1 {
			t.Errorf("cell %v layer %d -> %d, want %d", c.Origin(), b.Layer(), a.Layer(), ceiling-b.Layer()-1)
		}
		ms = append(ms, moved{b.Layer(), a.Layer()})
	}
	if len(ms) == 0 {
		t.Fatal("no cells moved")
	}
	for _, x := range ms {
		for _, y := range ms {
			if x.before < y.before && !(x.after > y.after) {
				t.Errorf("stacking not inverted: %v vs %v", x, y)
			}
		}
	}
	if before.Len() != CellCount || after.Len() != CellCount {
		t.Error("snapshots should always hold 16 entries")
	}
}

func TestHalfCells(t *testing.T) {
	tests := []struct {
		name   string
		fold   Fold
		halved []GridPoint
		hinge  Orientation
	}{
		{
			name:   "anti-diagonal left",
			fold:   mustDiagonal(t, Left, 3, 0, 0, 3),
			halved: []GridPoint{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
			hinge:  TopLeft,
		},
		{
			name:   "anti-diagonal right",
			fold:   mustDiagonal(t, Right, 3, 0, 0, 3),
			halved: []GridPoint{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
			hinge:  BottomRight,
		},
		{
			name:   "main diagonal left",
			fold:   mustDiagonal(t, Left, 0, 0, 3, 3),
			halved: []GridPoint{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
			hinge:  BottomLeft,
		},
		{
			name:   "main diagonal right",
			fold:   mustDiagonal(t, Right, 0, 0, 3, 3),
			halved: []GridPoint{{0, 0}, {1, 1}, {2, 2}, {3, 3}},
			hinge:  TopRight,
		},
		{
			name:   "corner right",
			fold:   mustDiagonal(t, Right, 1, 0, 0, 1),
			halved: []GridPoint{{0, 1}, {1, 0}},
			hinge:  BottomRight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			mustFold(t, p, tt.fold)

			var got []GridPoint
			for _, c := range p.Cells() {
				r := c.Latest()
				if !r.Halved {
					continue
				}
				got = append(got, c.Origin())
				if r.Hinge != tt.hinge {
					t.Errorf("cell %v hinge = %v, want %v", c.Origin(), r.Hinge, tt.hinge)
				}
				if r.Corner(r.Hinge.FlipHorizontal().FlipVertical()).Position() != r.Corner(r.Hinge).Position() {
					t.Errorf("cell %v: collapsed corner does not meet the hinge", c.Origin())
				}
				if n := len(r.Polygon()); n != 3 {
					t.Errorf("cell %v polygon has %d vertices, want 3", c.Origin(), n)
				}
				if !r.Center.Position().Equal(c.Origin().Position()) {
					t.Errorf("cell %v centre moved to %v", c.Origin(), r.Center.Position())
				}
				if r.Layer() != 1 {
					t.Errorf("cell %v layer = %d, want 1", c.Origin(), r.Layer())
				}
			}
			SortGridPoints(got)
			want := slices.Clone(tt.halved)
			SortGridPoints(want)
			if !slices.Equal(got, want) {
				t.Errorf("halved cells = %v, want %v", got, want)
			}
		})
	}
}

func TestHalfCellSurvivesLaterFolds(t *testing.T) {
	p := New()
	mustFold(t, p, mustDiagonal(t, Left, 3, 0, 0, 3), VerticalFold(Right, 1.5))

	c, ok := p.Cell(GridPoint{0, 3})
	if !ok {
		t.Fatal("cell (0,3) missing")
	}
	r := c.Latest()
	if !r.Halved {
		t.Fatal("half-cell lost its flag")
	}
	// (0,3) swung right across x = 1.5, mirroring the hinge left to right.
	if r.Hinge != TopRight {
		t.Errorf("hinge = %v, want %v", r.Hinge, TopRight)
	}
	if !r.Center.Position().Equal(Position{X: 3, Y: 3}) {
		t.Errorf("centre = %v, want (3, 3)", r.Center.Position())
	}
}

func TestCellsAtFold(t *testing.T) {
	p := New()

	snap, err := p.CellsAtFold(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != CellCount {
		t.Errorf("fresh paper has %d groups, want %d", len(snap), CellCount)
	}
	for pos, entries := range snap {
		if len(entries) != 1 {
			t.Errorf("group %v has %d entries, want 1", pos, len(entries))
		}
	}

	mustFold(t, p, VerticalFold(Left, 1.5))
	snap, err = p.CellsAtFold(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 8 {
		t.Errorf("after one fold: %d groups, want 8", len(snap))
	}
	for pos, entries := range snap {
		if len(entries) != 2 {
			t.Errorf("group %v has %d entries, want 2", pos, len(entries))
		}
		if pos.X > 1 {
			t.Errorf("group %v lies on the folded-away half", pos)
		}
	}

	// The past is still answerable.
	if old, _ := p.CellsAtFold(0); len(old) != CellCount {
		t.Errorf("step 0 after folding has %d groups, want %d", len(old), CellCount)
	}

	for _, idx := range []int{-1, 2, 10} {
		if _, err := p.CellsAtFold(idx); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
			t.Errorf("CellsAtFold(%d) = %v, want INDEX_OUT_OF_RANGE", idx, err)
		}
	}
}

func TestCellsAtFoldReportsCurrentPunches(t *testing.T) {
	p := New()
	mustFold(t, p, HorizontalFold(Down, 1.5))
	p.Punch(GridPoint{2, 3})

	snap, _ := p.CellsAtFold(0)
	punched := 0
	for _, e := range snap.Entries() {
		if e.Punched {
			punched++
			if e.Origin != (GridPoint{2, 0}) && e.Origin != (GridPoint{2, 3}) {
				t.Errorf("unexpected punched origin %v", e.Origin)
			}
		}
	}
	if punched != 2 {
		t.Errorf("punched entries at step 0 = %d, want 2", punched)
	}
}

func TestCellAt(t *testing.T) {
	p := New()
	mustFold(t, p, VerticalFold(Left, 1.5))
	c, _ := p.Cell(GridPoint{3, 1})

	r0, err := c.At(0)
	if err != nil || !r0.Center.Position().Equal(Position{X: 3, Y: 1}) {
		t.Errorf("At(0) = %v, %v", r0, err)
	}
	r1, err := c.At(1)
	if err != nil || !r1.Center.Position().Equal(Position{X: 0, Y: 1}) {
		t.Errorf("At(1) = %v, %v", r1, err)
	}
	if _, err := c.At(2); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("At(2) = %v, want INDEX_OUT_OF_RANGE", err)
	}
	if _, ok := p.Cell(GridPoint{4, 0}); ok {
		t.Error("Cell((4,0)) should not exist")
	}
}

// TestInvariantsOverAllSequences applies every legal sequence of up to three
// folds and checks that histories stay in step and nothing leaves the sheet.
func TestInvariantsOverAllSequences(t *testing.T) {
	folds := testFolds(t)
	sequences := 0

	var walk func(applied []Fold)
	walk = func(applied []Fold) {
		p := New()
		mustFold(t, p, applied...)
		assertLockstep(t, p)
		for step := 0; step <= p.FoldCount(); step++ {
			snap, err := p.CellsAtFold(step)
			if err != nil {
				t.Fatal(err)
			}
			for _, e := range snap.Entries() {
				if e.Rep.OutOfBounds() {
					t.Fatalf("%v: cell %v off the paper at step %d: %v", applied, e.Origin, step, e.Rep)
				}
			}
		}
		sequences++
		if len(applied) == 3 {
			return
		}
		for _, f := range folds {
			if p.IsValidFold(f) {
				walk(append(slices.Clone(applied), f))
			}
		}
	}
	walk(nil)

	if sequences < len(folds) {
		t.Errorf("only %d sequences explored", sequences)
	}
}

func TestFoldsReturnsCopy(t *testing.T) {
	p := New()
	mustFold(t, p, VerticalFold(Left, 1.5))
	folds := p.Folds()
	folds[0] = HorizontalFold(Up, 0.5)
	if !p.Folds()[0].Equal(VerticalFold(Left, 1.5)) {
		t.Error("Folds() exposed internal state")
	}
}
