package render_test

import (
	"fmt"

	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/render"
)

func ExampleBuild() {
	p := paper.New()
	if err := p.AddFold(paper.VerticalFold(paper.Left, 1.5)); err != nil {
		panic(err)
	}

	scene, err := render.Build(p, 1, render.DefaultOptions())
	if err != nil {
		panic(err)
	}
	fmt.Println(scene.Caption)
	fmt.Printf("%d shapes on a %.0fx%.0f canvas\n", len(scene.Shapes), scene.Width, scene.Height)
	// Output:
	// fold 1/1  v:left:1.5
	// 16 shapes on a 320x348 canvas
}
