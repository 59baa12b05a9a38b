package trace

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/holepunch/pkg/paper"
)

func foldedPaper(t *testing.T) *paper.Paper {
	t.Helper()
	p := paper.New()
	for _, f := range []paper.Fold{
		paper.VerticalFold(paper.Left, 1.5),
		paper.HorizontalFold(paper.Up, 1.5),
	} {
		if err := p.AddFold(f); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestToDOT_Clusters(t *testing.T) {
	dot := ToDOT(foldedPaper(t), Options{})

	for _, want := range []string{
		"digraph G",
		"subgraph cluster_0",
		"subgraph cluster_2",
		`label="fold 1: v:left:1.5"`,
		`label="fold 2: h:up:1.5"`,
		`"s2 (0, 0)" [label="(0, 0) ×4"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
	if strings.Contains(dot, "cluster_3") {
		t.Error("ToDOT() drew a step that does not exist")
	}
}

func TestToDOT_Edges(t *testing.T) {
	dot := ToDOT(foldedPaper(t), Options{})

	if !strings.Contains(dot, `"s0 (3, 0)" -> "s1 (0, 0)";`) {
		t.Error("missing edge for the cell folded from (3, 0)")
	}
	if !strings.Contains(dot, `"s0 (0, 0)" -> "s1 (0, 0)" [style=dotted`) {
		t.Error("stationary cell should have a dotted edge")
	}
	if !strings.Contains(dot, `"s1 (0, 3)" -> "s2 (0, 0)" [label="×2"]`) {
		t.Error("merged stacks should carry a count label")
	}

	moves := ToDOT(foldedPaper(t), Options{MovesOnly: true})
	if strings.Contains(moves, "dotted") {
		t.Error("MovesOnly should drop stationary edges")
	}
}

func TestToDOT_Punched(t *testing.T) {
	p := foldedPaper(t)
	p.Punch(paper.GridPoint{X: 0, Y: 0})

	dot := ToDOT(p, Options{Detailed: true})
	if !strings.Contains(dot, "penwidth=2") {
		t.Error("punched stack not highlighted")
	}
	if !strings.Contains(dot, `(3, 3)`) {
		t.Error("detailed labels should list origins")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(foldedPaper(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

func TestRenderSVG_BadDOT(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected parse error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox = %s, want %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Error("input without viewBox should be unchanged")
	}
}
