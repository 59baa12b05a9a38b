package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/holepunch/pkg/paper"
)

var (
	textEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	textPaperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	textPunchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Bold(true)
	textBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	textTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
)

var hingeGlyphs = map[paper.Orientation]string{
	paper.TopLeft:     "◤",
	paper.TopRight:    "◥",
	paper.BottomLeft:  "◣",
	paper.BottomRight: "◢",
}

const (
	glyphEmpty = "·"
	glyphPunch = "●"
)

// TextOption configures terminal rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	title bool
}

// WithoutTitle omits the caption line above the grid.
func WithoutTitle() TextOption { return func(r *textRenderer) { r.title = false } }

// RenderText draws the sheet after fold step as a 4x4 table for the
// terminal. Each occupied position shows its stack height, a triangle when
// the top sheet is a half-cell and a dot when the stack has been punched.
func RenderText(p *paper.Paper, step int, opts ...TextOption) (string, error) {
	r := textRenderer{title: true}
	for _, opt := range opts {
		opt(&r)
	}
	snap, err := p.CellsAtFold(step)
	if err != nil {
		return "", err
	}

	rows := make([][]string, paper.GridSize)
	punched := map[[2]int]bool{}
	for y := range paper.GridSize {
		rows[y] = make([]string, paper.GridSize)
		for x := range paper.GridSize {
			entries := snap[paper.Position{X: float64(x), Y: float64(y)}]
			cell, hit := textCell(entries)
			rows[y][x] = cell
			punched[[2]int{y, x}] = hit
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(textBorderStyle).
		BorderRow(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
			if row < 0 || row >= len(rows) {
				return base
			}
			switch {
			case punched[[2]int{row, col}]:
				return base.Inherit(textPunchStyle)
			case rows[row][col] == glyphEmpty:
				return base.Inherit(textEmptyStyle)
			}
			return base.Inherit(textPaperStyle)
		}).
		Rows(rows...)

	var b strings.Builder
	if r.title {
		title := "unfolded"
		if step > 0 {
			title = "fold " + strconv.Itoa(step) + "/" + strconv.Itoa(p.FoldCount()) + "  " + p.Folds()[step-1].String()
		}
		b.WriteString(textTitleStyle.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String(), nil
}

func textCell(entries []paper.Entry) (string, bool) {
	if len(entries) == 0 {
		return glyphEmpty, false
	}
	top := entries[0]
	hit := false
	for _, e := range entries {
		if e.Rep.Layer() > top.Rep.Layer() {
			top = e
		}
		hit = hit || e.Punched
	}
	s := strconv.Itoa(len(entries))
	if top.Rep.Halved {
		s += hingeGlyphs[top.Rep.Hinge]
	}
	if hit {
		s += glyphPunch
	}
	return s, hit
}
