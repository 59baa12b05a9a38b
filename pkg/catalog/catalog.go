// Package catalog holds the set of folds offered to players and quiz
// generators.
//
// The engine accepts any fold, but interactive surfaces only offer a fixed
// menu. [Default] returns the standard 32-fold menu: vertical and horizontal
// folds halfway between grid columns and rows, and ten diagonal lines, each
// with both sides. Alternative menus are read from TOML with [Load] or
// [Decode]:
//
//	[[fold]]
//	name = "centre, right over left"
//	kind = "vertical"
//	side = "left"
//	intercept = 1.5
//
//	[[fold]]
//	kind = "diagonal"
//	side = "right"
//	from = [1, 0]
//	to = [0, 1]
//
//	[[fold]]
//	notation = "h:up:0.5"
package catalog

import (
	"slices"

	"github.com/matzehuels/holepunch/pkg/paper"
)

// Entry is one fold on the menu.
type Entry struct {
	Name string     `json:"name"`
	Fold paper.Fold `json:"fold"`
}

// Catalog is an ordered fold menu.
type Catalog []Entry

var axisIntercepts = []float64{0.5, 1.5, 2.5}

// diagonalLines are the construction points of the ten diagonal folds, as
// pairs of grid corners. The first five have negative slope (top-right to
// bottom-left), the last five positive slope.
var diagonalLines = [][2]paper.Position{
	{{X: 1, Y: 0}, {X: 0, Y: 1}},
	{{X: 2, Y: 0}, {X: 0, Y: 2}},
	{{X: 3, Y: 0}, {X: 0, Y: 3}},
	{{X: 1, Y: 3}, {X: 3, Y: 1}},
	{{X: 2, Y: 3}, {X: 3, Y: 2}},
	{{X: 2, Y: 0}, {X: 3, Y: 1}},
	{{X: 1, Y: 0}, {X: 3, Y: 2}},
	{{X: 0, Y: 0}, {X: 3, Y: 3}},
	{{X: 2, Y: 3}, {X: 0, Y: 1}},
	{{X: 1, Y: 3}, {X: 0, Y: 2}},
}

// Default returns the standard 32-fold menu. Each call returns a fresh slice.
func Default() Catalog {
	c := make(Catalog, 0, 32)
	for _, i := range axisIntercepts {
		c = append(c,
			entry(paper.VerticalFold(paper.Left, i)),
			entry(paper.VerticalFold(paper.Right, i)))
	}
	for _, i := range axisIntercepts {
		c = append(c,
			entry(paper.HorizontalFold(paper.Up, i)),
			entry(paper.HorizontalFold(paper.Down, i)))
	}
	for _, l := range diagonalLines {
		for _, side := range []paper.Side{paper.Left, paper.Right} {
			f, err := paper.DiagonalFold(side, l[0], l[1])
			if err != nil {
				panic(err) // table above is static
			}
			c = append(c, entry(f))
		}
	}
	return c
}

func entry(f paper.Fold) Entry {
	return Entry{Name: f.String(), Fold: f}
}

// Folds returns the folds in menu order.
func (c Catalog) Folds() []paper.Fold {
	out := make([]paper.Fold, len(c))
	for i, e := range c {
		out[i] = e.Fold
	}
	return out
}

// Valid returns the entries that can be applied to p right now.
func (c Catalog) Valid(p *paper.Paper) Catalog {
	var out Catalog
	for _, e := range c {
		if p.IsValidFold(e.Fold) {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry by name or by fold notation.
func (c Catalog) Lookup(s string) (Entry, bool) {
	if i := slices.IndexFunc(c, func(e Entry) bool { return e.Name == s }); i >= 0 {
		return c[i], true
	}
	f, err := paper.ParseFold(s)
	if err != nil {
		return Entry{}, false
	}
	return c.Find(f)
}

// Find returns the entry whose fold equals f.
func (c Catalog) Find(f paper.Fold) (Entry, bool) {
	i := slices.IndexFunc(c, func(e Entry) bool { return e.Fold.Equal(f) })
	if i < 0 {
		return Entry{}, false
	}
	return c[i], true
}

// Contains reports whether f is on the menu.
func (c Catalog) Contains(f paper.Fold) bool {
	_, ok := c.Find(f)
	return ok
}
