package render

import (
	"bytes"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/fonts"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterises the scene.
func RenderPNG(s Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || r.scale > 8 || math.IsNaN(r.scale) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be in (0, 8], got %g", r.scale)
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetLineWidth(1)
	dc.SetHexColor("#d0d0d0")
	for _, g := range s.Grid {
		dc.DrawLine(g.From.X, g.From.Y, g.To.X, g.To.Y)
		dc.Stroke()
	}

	for _, sh := range s.Shapes {
		if len(sh.Vertices) < 3 {
			continue
		}
		dc.MoveTo(sh.Vertices[0].X, sh.Vertices[0].Y)
		for _, v := range sh.Vertices[1:] {
			dc.LineTo(v.X, v.Y)
		}
		dc.ClosePath()
		dc.SetHexColor(sh.Fill)
		dc.FillPreserve()
		dc.SetHexColor("#4a3b2a")
		dc.SetLineWidth(1.2)
		if sh.Halved {
			dc.SetDash(4, 2)
		}
		dc.Stroke()
		dc.SetDash()
	}

	if s.FoldLine != nil {
		dc.SetHexColor("#c0392b")
		dc.SetLineWidth(2)
		dc.SetDash(8, 4)
		dc.DrawLine(s.FoldLine.From.X, s.FoldLine.From.Y, s.FoldLine.To.X, s.FoldLine.To.Y)
		dc.Stroke()
		dc.SetDash()
	}

	dc.SetHexColor("#1f1f1f")
	for _, m := range s.Punches {
		dc.DrawCircle(m.Center.X, m.Center.Y, m.Radius)
		dc.Fill()
	}

	if s.Caption != "" {
		face, err := fonts.MonoFace(14)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load caption font")
		}
		dc.SetFontFace(face)
		dc.SetHexColor("#333333")
		dc.DrawStringAnchored(s.Caption, s.Margin, s.Height-captionHeight/2, 0, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
