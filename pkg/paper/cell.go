package paper

import "github.com/matzehuels/holepunch/pkg/errors"

// Cell is one square of the grid together with its full fold history.
// history[0] is the unfolded square and history[i] its footprint after the
// i-th fold. Cells are created by [New] and only mutated by [Paper].
type Cell struct {
	origin  GridPoint
	history []Representation
	punched bool
}

func newCell(origin GridPoint) Cell {
	return Cell{origin: origin, history: []Representation{newRepresentation(origin)}}
}

// Origin is the cell's position on the unfolded sheet.
func (c Cell) Origin() GridPoint { return c.origin }

// Punched reports whether a punch has gone through this cell.
func (c Cell) Punched() bool { return c.punched }

// Len is the number of recorded representations, one more than the number of folds.
func (c Cell) Len() int { return len(c.history) }

// At returns the representation after fold i, with 0 the unfolded square.
func (c Cell) At(i int) (Representation, error) {
	if i < 0 || i >= len(c.history) {
		return Representation{}, errors.New(errors.ErrCodeIndexOutOfRange,
			"cell %s has no step %d (0..%d)", c.origin, i, len(c.history)-1)
	}
	return c.history[i], nil
}

// Latest returns the current representation.
func (c Cell) Latest() Representation {
	return c.history[len(c.history)-1]
}

func (c *Cell) push(r Representation) {
	c.history = append(c.history, r)
}
