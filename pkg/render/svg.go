package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/holepunch/pkg/fonts"
)

const sheetCSS = `
    .cell { stroke: #4a3b2a; stroke-width: 1.2; stroke-linejoin: round; }
    .cell.halved { stroke-dasharray: 4 2; }
    .grid { stroke: #d0d0d0; stroke-width: 1; fill: none; }
    .fold-line { stroke: #c0392b; stroke-width: 2; stroke-dasharray: 8 4; }
    .punch { fill: #1f1f1f; }
    .caption { font-size: 14px; fill: #333; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	title      string
	ids        bool
}

// WithBackground fills the canvas with a CSS colour.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithTitle sets the document <title>.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithCellIDs tags each polygon with an id derived from the cell origin.
func WithCellIDs() SVGOption { return func(r *svgRenderer) { r.ids = true } }

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{background: "white"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n    .caption { font-family: %s; }\n  </style>\n", sheetCSS, fonts.FallbackFontFamily)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	for _, g := range s.Grid {
		fmt.Fprintf(&buf, `  <line class="grid" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			g.From.X, g.From.Y, g.To.X, g.To.Y)
	}
	for _, sh := range s.Shapes {
		renderShape(&buf, sh, r.ids)
	}
	if s.FoldLine != nil {
		fmt.Fprintf(&buf, `  <line class="fold-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			s.FoldLine.From.X, s.FoldLine.From.Y, s.FoldLine.To.X, s.FoldLine.To.Y)
	}
	for _, m := range s.Punches {
		fmt.Fprintf(&buf, `  <circle class="punch" cx="%.2f" cy="%.2f" r="%.2f"><title>%d layers</title></circle>`+"\n",
			m.Center.X, m.Center.Y, m.Radius, m.Layers)
	}
	if s.Caption != "" {
		fmt.Fprintf(&buf, `  <text class="caption" x="%.2f" y="%.2f">%s</text>`+"\n",
			s.Margin, s.Height-captionHeight/2, html.EscapeString(s.Caption))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderShape(buf *bytes.Buffer, sh Shape, withID bool) {
	pts := make([]string, len(sh.Vertices))
	for i, v := range sh.Vertices {
		pts[i] = fmt.Sprintf("%.2f,%.2f", v.X, v.Y)
	}
	class := "cell"
	if sh.Halved {
		class += " halved"
	}
	id := ""
	if withID {
		id = fmt.Sprintf(` id="cell-%d-%d"`, sh.Origin.X, sh.Origin.Y)
	}
	fmt.Fprintf(buf, `  <polygon%s class="%s" points="%s" fill="%s" data-layer="%d"/>`+"\n",
		id, class, strings.Join(pts, " "), sh.Fill, sh.Layer)
}
