package render

import (
	"strconv"

	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
)

const (
	// DefaultCellSize is the edge length of one grid cell in pixels.
	DefaultCellSize = 64.0

	captionHeight = 28.0
	punchRatio    = 0.18
)

// Options configures scene construction.
type Options struct {
	CellSize     float64 `json:"cell_size"`
	ShowPunches  bool    `json:"show_punches"`
	ShowGrid     bool    `json:"show_grid"`
	ShowFoldLine bool    `json:"show_fold_line"`
	Caption      bool    `json:"caption"`
}

// DefaultOptions draws everything at the default size.
func DefaultOptions() Options {
	return Options{
		CellSize:     DefaultCellSize,
		ShowPunches:  true,
		ShowGrid:     true,
		ShowFoldLine: true,
		Caption:      true,
	}
}

// Validate fills a zero cell size and checks bounds.
func (o *Options) Validate() error {
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	return errors.ValidateCellSize(o.CellSize)
}

// Point is a pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a straight line in pixel space.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Shape is the outline of one cell at one step.
type Shape struct {
	Origin   paper.GridPoint `json:"origin"`
	Layer    int             `json:"layer"`
	Halved   bool            `json:"halved,omitempty"`
	Punched  bool            `json:"punched,omitempty"`
	Fill     string          `json:"fill"`
	Vertices []Point         `json:"vertices"`
}

// Marker is a punch hole drawn on top of the stack at one position.
type Marker struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	Layers int     `json:"layers"`
}

// Scene is a drawable view of the sheet after one step of its fold history.
// Shapes are in drawing order, lowest layer first.
type Scene struct {
	Step     int               `json:"step"`
	Steps    int               `json:"steps"`
	Fold     string            `json:"fold,omitempty"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	CellSize float64           `json:"cell_size"`
	Margin   float64           `json:"margin"`
	Shapes   []Shape           `json:"shapes"`
	Punches  []Marker          `json:"punches,omitempty"`
	FoldLine *Segment          `json:"fold_line,omitempty"`
	Grid     []Segment         `json:"grid,omitempty"`
	Caption  string            `json:"caption,omitempty"`
	Holes    []paper.GridPoint `json:"holes,omitempty"`
}

// Build lays out the sheet after fold step of p, with 0 the unfolded sheet.
// Punch markers use the current punch state at every step, so on step 0 they
// show where the holes end up.
func Build(p *paper.Paper, step int, opts Options) (Scene, error) {
	if err := opts.Validate(); err != nil {
		return Scene{}, err
	}
	snap, err := p.CellsAtFold(step)
	if err != nil {
		return Scene{}, err
	}

	margin := opts.CellSize / 2
	side := float64(paper.GridSize) * opts.CellSize
	s := Scene{
		Step:     step,
		Steps:    p.FoldCount(),
		Width:    side + 2*margin,
		Height:   side + 2*margin,
		CellSize: opts.CellSize,
		Margin:   margin,
	}
	px := func(pos paper.Position) Point {
		return Point{
			X: margin + (pos.X+0.5)*opts.CellSize,
			Y: margin + (pos.Y+0.5)*opts.CellSize,
		}
	}

	if opts.ShowGrid {
		for i := 0; i <= paper.GridSize; i++ {
			v := float64(i) - 0.5
			s.Grid = append(s.Grid,
				Segment{px(paper.Position{X: v, Y: -0.5}), px(paper.Position{X: v, Y: paper.GridSize - 0.5})},
				Segment{px(paper.Position{X: -0.5, Y: v}), px(paper.Position{X: paper.GridSize - 0.5, Y: v})})
		}
	}

	for _, e := range snap.Entries() {
		poly := e.Rep.Polygon()
		vs := make([]Point, len(poly))
		for i, pos := range poly {
			vs[i] = px(pos)
		}
		s.Shapes = append(s.Shapes, Shape{
			Origin:   e.Origin,
			Layer:    e.Rep.Layer(),
			Halved:   e.Rep.Halved,
			Punched:  e.Punched,
			Fill:     LayerColor(e.Rep.Layer()),
			Vertices: vs,
		})
	}

	if opts.ShowPunches {
		for _, pos := range snap.Positions() {
			n := 0
			for _, e := range snap[pos] {
				if e.Punched {
					n++
				}
			}
			if n > 0 {
				s.Punches = append(s.Punches, Marker{Center: px(pos), Radius: opts.CellSize * punchRatio, Layers: n})
			}
		}
		s.Holes = p.Holes()
	}

	folds := p.Folds()
	if step > 0 {
		f := folds[step-1]
		s.Fold = f.String()
		if opts.ShowFoldLine {
			a, b := f.Line()
			s.FoldLine = &Segment{px(a), px(b)}
		}
	}

	if opts.Caption {
		s.Caption = caption(s)
		s.Height += captionHeight
	}
	return s, nil
}

func caption(s Scene) string {
	if s.Step == 0 {
		return "unfolded"
	}
	return "fold " + strconv.Itoa(s.Step) + "/" + strconv.Itoa(s.Steps) + "  " + s.Fold
}

// Palette shades paper by layer: sheets higher in the stack are darker.
var Palette = []string{
	"#fbf3e4", "#f4e1c1", "#eccb98", "#e2b271",
	"#d69a52", "#c6823b", "#b06b2c", "#955723",
}

// LayerColor returns the fill for a layer, cycling through [Palette].
func LayerColor(layer int) string {
	if layer < 0 {
		layer = 0
	}
	return Palette[layer%len(Palette)]
}
