package trace

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
)

// Options configures the flow graph.
type Options struct {
	// MovesOnly draws only edges where cells changed position.
	MovesOnly bool
	// Detailed lists the cell origins in each node label.
	Detailed bool
}

type stackKey struct {
	step int
	pos  paper.Position
}

type edgeKey struct {
	from, to stackKey
}

// ToDOT converts the fold history of p to Graphviz DOT. Each step becomes a
// row of nodes, one per occupied position, and edges follow cells from one
// step to the next. Stacks and edges that carry a punched cell are red.
func ToDOT(p *paper.Paper, opts Options) string {
	steps := make([]paper.Snapshot, p.FoldCount()+1)
	for i := range steps {
		steps[i], _ = p.CellsAtFold(i)
	}
	folds := p.Folds()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#fbf3e4\", fontname=\"Go Mono\", fontsize=14];\n")
	buf.WriteString("  edge [color=\"#4a3b2a\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("\n")

	for i, snap := range steps {
		label := "unfolded"
		if i > 0 {
			label = "fold " + strconv.Itoa(i) + ": " + folds[i-1].String()
		}
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n    style=dashed;\n    color=\"#bbbbbb\";\n", label)
		for _, pos := range snap.Positions() {
			entries := snap[pos]
			attrs := fmt.Sprintf("label=%q", nodeLabel(pos, entries, opts.Detailed))
			if slices.ContainsFunc(entries, func(e paper.Entry) bool { return e.Punched }) {
				attrs += ", color=\"#c0392b\", penwidth=2"
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", nodeID(stackKey{i, pos}), attrs)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	type edge struct {
		count, punched int
	}
	edges := map[edgeKey]*edge{}
	for _, c := range p.Cells() {
		for i := 0; i+1 < c.Len(); i++ {
			a, _ := c.At(i)
			b, _ := c.At(i + 1)
			k := edgeKey{stackKey{i, a.Center.Position()}, stackKey{i + 1, b.Center.Position()}}
			if opts.MovesOnly && k.from.pos == k.to.pos {
				continue
			}
			e := edges[k]
			if e == nil {
				e = &edge{}
				edges[k] = e
			}
			e.count++
			if c.Punched() {
				e.punched++
			}
		}
	}

	keys := make([]edgeKey, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareEdges)
	for _, k := range keys {
		e := edges[k]
		var attrs []string
		if e.count > 1 {
			attrs = append(attrs, fmt.Sprintf("label=%q", "×"+strconv.Itoa(e.count)))
		}
		if k.from.pos == k.to.pos {
			attrs = append(attrs, "style=dotted", "color=\"#999999\"")
		}
		if e.punched > 0 {
			attrs = append(attrs, "color=\"#c0392b\"")
		}
		fmt.Fprintf(&buf, "  %q -> %q", nodeID(k.from), nodeID(k.to))
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(k stackKey) string {
	return fmt.Sprintf("s%d %s", k.step, k.pos)
}

func nodeLabel(pos paper.Position, entries []paper.Entry, detailed bool) string {
	label := pos.String() + " ×" + strconv.Itoa(len(entries))
	if !detailed {
		return label
	}
	for _, e := range entries {
		label += "\n" + e.Origin.String()
		if e.Rep.Halved {
			label += " half"
		}
	}
	return label
}

func compareEdges(a, b edgeKey) int {
	return cmp.Or(
		cmp.Compare(a.from.step, b.from.step),
		cmp.Compare(a.from.pos.Y, b.from.pos.Y),
		cmp.Compare(a.from.pos.X, b.from.pos.X),
		cmp.Compare(a.to.pos.Y, b.to.pos.Y),
		cmp.Compare(a.to.pos.X, b.to.pos.X),
	)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from the
// origin, dropping Graphviz's pt units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
