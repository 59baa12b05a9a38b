package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/quiz"
	"github.com/matzehuels/holepunch/pkg/render"
)

var (
	gridCursorStyle = lipgloss.NewStyle().Reverse(true)
	gridMarkStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	gridHitStyle    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	gridMissStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	gridExtraStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	gridEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle      = lipgloss.NewStyle().MarginRight(4)
)

// =============================================================================
// PlayModel - Interactive quiz
// =============================================================================

// PlayModel is the bubbletea model for the interactive quiz. The player
// marks where the holes end up on the unfolded sheet and grades the guess.
type PlayModel struct {
	next func() (*quiz.Question, error)

	Question *quiz.Question
	Number   int
	Cursor   paper.GridPoint
	Marked   map[paper.GridPoint]bool
	Result   *quiz.Result
	Correct  int
	Graded   int
	Err      error
}

// NewPlayModel creates a model that draws questions from next.
func NewPlayModel(next func() (*quiz.Question, error)) PlayModel {
	m := PlayModel{next: next}
	m.advance()
	return m
}

func (m *PlayModel) advance() {
	q, err := m.next()
	if err != nil {
		m.Err = err
		return
	}
	m.Question = q
	m.Number++
	m.Marked = map[paper.GridPoint]bool{}
	m.Result = nil
	m.Cursor = paper.GridPoint{}
}

func (m PlayModel) guess() []paper.GridPoint {
	var out []paper.GridPoint
	for g, on := range m.Marked {
		if on {
			out = append(out, g)
		}
	}
	paper.SortGridPoints(out)
	return out
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	if m.Err != nil {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.Cursor.Y = max(m.Cursor.Y-1, 0)
	case "down", "j":
		m.Cursor.Y = min(m.Cursor.Y+1, paper.GridSize-1)
	case "left", "h":
		m.Cursor.X = max(m.Cursor.X-1, 0)
	case "right", "l":
		m.Cursor.X = min(m.Cursor.X+1, paper.GridSize-1)
	case " ", "x":
		if m.Result == nil {
			// Maps are shared between model copies; copy before writing.
			marked := make(map[paper.GridPoint]bool, len(m.Marked)+1)
			for g, on := range m.Marked {
				marked[g] = on
			}
			marked[m.Cursor] = !marked[m.Cursor]
			m.Marked = marked
		}
	case "enter":
		if m.Result != nil {
			m.advance()
			break
		}
		r := quiz.Grade(m.Question, m.guess())
		m.Result = &r
		m.Graded++
		if r.Correct {
			m.Correct++
		}
	case "n":
		m.advance()
	}
	return m, nil
}

func (m PlayModel) View() string {
	var b strings.Builder
	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
		return b.String()
	}

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Question %d", m.Number)))
	b.WriteString("  " + StyleDim.Render(fmt.Sprintf("score %d/%d", m.Correct, m.Graded)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("folds ") + StyleValue.Render(formatFolds(m.Question.Folds)))
	b.WriteString(StyleDim.Render("   punch ") + StyleHighlight.Render(m.Question.Punch.String()))
	b.WriteString("\n\n")

	folded, err := render.RenderText(m.Question.Paper, m.Question.Paper.FoldCount(), render.WithoutTitle())
	if err != nil {
		folded = err.Error()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(StyleDim.Render("folded")+"\n"+folded),
		StyleDim.Render("your guess")+"\n"+m.guessGrid(),
	))
	b.WriteString("\n")

	switch {
	case m.Result == nil:
		b.WriteString(StyleDim.Render("↑/↓/←/→ move  space mark  ⏎ check  n skip  q quit"))
	case m.Result.Correct:
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " Correct!  " + StyleDim.Render("⏎ next  q quit"))
	default:
		b.WriteString(styleIconError.Render(iconError) + " " + fmt.Sprintf("Missed %d, %d wrong. Answer: %s  ",
			len(m.Result.Missing), len(m.Result.Extra), formatPoints(m.Question.Answer())))
		b.WriteString(StyleDim.Render("⏎ next  q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// guessGrid draws the player's marks. After grading, hits are green,
// missed holes yellow and wrong marks red.
func (m PlayModel) guessGrid() string {
	answer := map[paper.GridPoint]bool{}
	if m.Result != nil {
		for _, g := range m.Question.Answer() {
			answer[g] = true
		}
	}

	rows := make([][]string, paper.GridSize)
	for y := range paper.GridSize {
		rows[y] = make([]string, paper.GridSize)
		for x := range paper.GridSize {
			g := paper.GridPoint{X: x, Y: y}
			if m.Marked[g] || answer[g] {
				rows[y][x] = "●"
			} else {
				rows[y][x] = "·"
			}
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
			if row < 0 {
				return base
			}
			g := paper.GridPoint{X: col, Y: row}
			var style lipgloss.Style
			switch {
			case m.Result != nil && m.Marked[g] && answer[g]:
				style = gridHitStyle
			case m.Result != nil && answer[g]:
				style = gridMissStyle
			case m.Result != nil && m.Marked[g]:
				style = gridExtraStyle
			case m.Marked[g]:
				style = gridMarkStyle
			default:
				style = gridEmptyStyle
			}
			base = base.Inherit(style)
			if m.Result == nil && g == m.Cursor {
				base = base.Inherit(gridCursorStyle)
			}
			return base
		}).
		Render()
}
