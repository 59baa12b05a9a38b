package paper

import (
	"cmp"
	"slices"

	"github.com/matzehuels/holepunch/pkg/errors"
)

const (
	// GridSize is the number of cells along each side of the sheet.
	GridSize = errors.GridSize

	// CellCount is the number of cells on the sheet.
	CellCount = GridSize * GridSize

	// MaxFolds is the longest fold sequence a sheet accepts. Layer tags
	// double with every fold.
	MaxFolds = 4
)

// Paper is the folding simulation: 16 cells and the ordered list of folds
// applied to them. Every cell always holds exactly len(folds)+1
// representations. The zero value is not usable; call [New].
type Paper struct {
	folds []Fold
	cells [CellCount]Cell
}

// New returns an unfolded, unpunched sheet. Cells are ordered column by
// column: (0,0), (0,1), ... (3,3).
func New() *Paper {
	p := &Paper{}
	i := 0
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			p.cells[i] = newCell(GridPoint{X: x, Y: y})
			i++
		}
	}
	return p
}

// FoldCount is the number of folds applied so far.
func (p *Paper) FoldCount() int { return len(p.folds) }

// Folds returns a copy of the fold history.
func (p *Paper) Folds() []Fold { return slices.Clone(p.folds) }

// Cells returns a read-only view of the 16 cells.
func (p *Paper) Cells() []Cell { return slices.Clone(p.cells[:]) }

// Cell returns the cell that started at origin.
func (p *Paper) Cell(origin GridPoint) (Cell, bool) {
	for _, c := range p.cells {
		if c.origin == origin {
			return c, true
		}
	}
	return Cell{}, false
}

// ValidateFold simulates f without changing the paper and explains why it
// cannot be applied. It returns nil for a legal fold.
//
// A fold is legal when fewer than MaxFolds folds have been applied, at least
// one cell swings over the line and no cell that swings lands off the sheet. Fold lines that do not cross the sheet
// yield an errors.ErrCodeDomain error; the other failures are
// errors.ErrCodeInvalidFold.
func (p *Paper) ValidateFold(f Fold) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if len(p.folds) >= MaxFolds {
		return errors.New(errors.ErrCodeInvalidFold, "fold %s exceeds the limit of %d folds", f, MaxFolds)
	}

	ceiling := 1 << (len(p.folds) + 1)
	moved := 0
	for _, c := range p.cells {
		next, motion, err := c.Latest().Reflect(f, ceiling)
		if err != nil {
			return err
		}
		if motion == Stationary {
			continue
		}
		if next.OutOfBounds() {
			return errors.New(errors.ErrCodeInvalidFold, "fold %s moves cell %s off the paper", f, c.origin)
		}
		if motion == Moved {
			moved++
		}
	}

	if moved == 0 {
		return errors.New(errors.ErrCodeInvalidFold, "fold %s moves no cells", f)
	}
	return nil
}

// IsValidFold reports whether f can be applied now. It never fails.
func (p *Paper) IsValidFold(f Fold) bool {
	return p.ValidateFold(f) == nil
}

// AddFold validates and applies f. Cells that swing over the line or are
// bisected by it get a new representation; the others record an unchanged
// copy so that every history stays in step with the fold list. On error the
// paper is left untouched and the error has code errors.ErrCodeInvalidFold.
func (p *Paper) AddFold(f Fold) error {
	if err := p.ValidateFold(f); err != nil {
		if errors.Is(err, errors.ErrCodeInvalidFold) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidFold, err, "fold %s rejected", f)
	}

	ceiling := 1 << (len(p.folds) + 1)
	var next [CellCount]Representation
	for i, c := range p.cells {
		r, _, err := c.Latest().Reflect(f, ceiling)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFold, err, "fold %s rejected", f)
		}
		next[i] = r
	}

	p.folds = append(p.folds, f)
	for i := range p.cells {
		p.cells[i].push(next[i])
	}
	return nil
}

// Punch marks every cell whose current centre is at pt, i.e. every layer of
// paper stacked there. It returns how many cells were marked; zero means no
// paper covers pt and nothing changed.
func (p *Paper) Punch(pt GridPoint) int {
	target := pt.Position()
	n := 0
	for i := range p.cells {
		if p.cells[i].Latest().Center.Position().Equal(target) {
			p.cells[i].punched = true
			n++
		}
	}
	return n
}

// Occupied reports whether any layer of paper currently covers pt.
func (p *Paper) Occupied(pt GridPoint) bool {
	target := pt.Position()
	for _, c := range p.cells {
		if c.Latest().Center.Position().Equal(target) {
			return true
		}
	}
	return false
}

// Holes returns the origins of all punched cells, i.e. where the holes are
// once the sheet is unfolded, sorted by row then column.
func (p *Paper) Holes() []GridPoint {
	var out []GridPoint
	for _, c := range p.cells {
		if c.punched {
			out = append(out, c.origin)
		}
	}
	SortGridPoints(out)
	return out
}

// Entry is one cell's contribution to a [Snapshot].
type Entry struct {
	Origin  GridPoint
	Punched bool
	Rep     Representation
}

// Snapshot groups the representations at one history step by the position
// of their centre. Entries keep cell order.
type Snapshot map[Position][]Entry

// Positions returns the occupied positions sorted by row then column.
func (s Snapshot) Positions() []Position {
	out := make([]Position, 0, len(s))
	for pos := range s {
		out = append(out, pos)
	}
	slices.SortFunc(out, func(a, b Position) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}

// Entries flattens the snapshot in drawing order: lowest layer first, ties
// broken by position and then cell order.
func (s Snapshot) Entries() []Entry {
	var out []Entry
	for _, pos := range s.Positions() {
		out = append(out, s[pos]...)
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(a.Rep.Layer(), b.Rep.Layer())
	})
	return out
}

// Len counts entries across all positions.
func (s Snapshot) Len() int {
	n := 0
	for _, entries := range s {
		n += len(entries)
	}
	return n
}

// CellsAtFold returns the sheet as it was after fold index, with 0 the
// unfolded sheet and FoldCount() the current state. Punch marks are the
// current ones at every step. Indexes outside that range fail with
// errors.ErrCodeIndexOutOfRange.
func (p *Paper) CellsAtFold(index int) (Snapshot, error) {
	if err := errors.ValidateStep(index, len(p.folds)); err != nil {
		return nil, err
	}
	snap := make(Snapshot)
	for _, c := range p.cells {
		r := c.history[index]
		pos := r.Center.Position()
		snap[pos] = append(snap[pos], Entry{Origin: c.origin, Punched: c.punched, Rep: r})
	}
	return snap, nil
}

// SortGridPoints orders points by row then column.
func SortGridPoints(pts []GridPoint) {
	slices.SortFunc(pts, func(a, b GridPoint) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
}
