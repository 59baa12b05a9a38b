package paper_test

import (
	"fmt"

	"github.com/matzehuels/holepunch/pkg/paper"
)

func Example() {
	p := paper.New()

	// Fold the right half over the left, then the bottom half up.
	_ = p.AddFold(paper.VerticalFold(paper.Left, 1.5))
	_ = p.AddFold(paper.HorizontalFold(paper.Up, 1.5))

	// One punch goes through all four layers stacked in the corner.
	fmt.Println("cells punched:", p.Punch(paper.GridPoint{X: 0, Y: 0}))
	fmt.Println("holes:", p.Holes())
	// Output:
	// cells punched: 4
	// holes: [(0, 0) (3, 0) (0, 3) (3, 3)]
}

func ExampleParseFold() {
	f, err := paper.ParseFold("d:left:3,0:0,3")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(f.Kind, f.Side, f.Slope, f.Intercept)
	// Output: diagonal left -1 3
}

func ExamplePaper_ValidateFold() {
	p := paper.New()
	fmt.Println(p.ValidateFold(paper.VerticalFold(paper.Right, 0)))
	fmt.Println(p.ValidateFold(paper.VerticalFold(paper.Up, 1.5)))
	fmt.Println(p.ValidateFold(paper.VerticalFold(paper.Left, 1.5)))
	// Output:
	// INVALID_FOLD: fold v:right:0 moves no cells
	// INVALID_FOLD: vertical fold cannot move up
	// <nil>
}

func ExamplePaper_CellsAtFold() {
	p := paper.New()
	_ = p.AddFold(paper.VerticalFold(paper.Left, 1.5))

	snap, _ := p.CellsAtFold(1)
	for _, pos := range snap.Positions()[:2] {
		for _, e := range snap[pos] {
			fmt.Println(pos, e.Origin, "layer", e.Rep.Layer())
		}
	}
	// Output:
	// (0, 0) (0, 0) layer 0
	// (0, 0) (3, 0) layer 1
	// (1, 0) (1, 0) layer 0
	// (1, 0) (2, 0) layer 1
}
