package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

var (
	editHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	editErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	editStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// EditModel - Interactive board editor
// =============================================================================

// EditModel is the bubbletea model behind "tilegrid edit". It moves one
// widget at a time and checks the target cells on every step, the way a
// dashboard checks a drag before dropping.
type EditModel struct {
	Board    *board.Board
	Selected int

	// Collides is set when the selected widget overlaps another widget.
	Collides bool
	// Dirty is set when positions changed since the last resolve or save.
	Dirty bool
	// Saved is set once the board has been written.
	Saved bool

	Status string
	Err    error

	resolve func(*board.Board) (*pipeline.Result, error)
	save    func(*board.Board) error
}

// NewEditModel creates an editor for b. resolve runs on enter and save on
// "s"; both receive the current board.
func NewEditModel(b *board.Board, resolve func(*board.Board) (*pipeline.Result, error), save func(*board.Board) error) EditModel {
	m := EditModel{
		Board:   b,
		resolve: resolve,
		save:    save,
	}
	m.check()
	return m
}

func (m EditModel) Init() tea.Cmd {
	return nil
}

func (m EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if isQuit(key) {
		return m, tea.Quit
	}
	if len(m.Board.Widgets) == 0 {
		return m, nil
	}

	switch key.String() {
	case "tab":
		m.Selected = (m.Selected + 1) % len(m.Board.Widgets)
		m.Status, m.Err = "", nil
	case "shift+tab":
		m.Selected = (m.Selected + len(m.Board.Widgets) - 1) % len(m.Board.Widgets)
		m.Status, m.Err = "", nil
	case "up", "k":
		m.nudge(geom.V(0, -1))
	case "down", "j":
		m.nudge(geom.V(0, 1))
	case "left", "h":
		m.nudge(geom.V(-1, 0))
	case "right", "l":
		m.nudge(geom.V(1, 0))
	case "enter":
		res, err := m.resolve(m.Board)
		if err != nil {
			m.Err = err
			break
		}
		m.Board = res.Board
		m.Dirty = false
		m.Err = nil
		m.Status = fmt.Sprintf("resolved: %d confirmed, %d moved, %d unplaced",
			res.Stats.Confirmed, res.Stats.Moved(), res.Stats.Unplaced)
	case "s":
		if err := m.save(m.Board); err != nil {
			m.Err = err
			break
		}
		m.Saved = true
		m.Dirty = false
		m.Err = nil
		m.Status = "saved"
	}
	m.check()
	return m, nil
}

func isQuit(key tea.KeyMsg) bool {
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return true
	}
	return false
}

// nudge moves the selected widget by d, keeping it inside the grid. A widget
// without a position starts at the origin.
func (m *EditModel) nudge(d geom.Vector2) {
	w := &m.Board.Widgets[m.Selected]
	from := geom.V(0, 0)
	if w.Position != nil {
		from = *w.Position
	}
	to := from.Add(d)
	to.X = max(0, min(to.X, m.Board.Grid.X-w.Size.X))
	to.Y = max(0, min(to.Y, m.Board.Grid.Y-w.Size.Y))
	if w.Position != nil && to.Equal(from) {
		return
	}
	w.Position = &to
	m.Dirty = true
	m.Status, m.Err = "", nil
}

// check updates Collides for the selected widget.
func (m *EditModel) check() {
	m.Collides = false
	if m.Selected >= len(m.Board.Widgets) {
		return
	}
	w := m.Board.Widgets[m.Selected]
	rect, ok := w.Rect()
	if !ok {
		return
	}
	occupied, err := pipeline.Occupied(m.Board, rect, w.ID)
	if err != nil {
		m.Err = err
		return
	}
	m.Collides = occupied
}

func (m EditModel) View() string {
	var sb strings.Builder

	title := "tilegrid edit"
	if m.Board.Name != "" {
		title += "  " + m.Board.Name
	}
	sb.WriteString(StyleTitle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(editHelpStyle.Render("tab select  ←↑↓→ move  ⏎ resolve  s save  q quit"))
	sb.WriteString("\n\n")

	if len(m.Board.Widgets) == 0 {
		sb.WriteString(editStatusStyle.Render("board has no widgets"))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(gridPreview{Board: m.Board, Selected: m.Selected}.Render())
	sb.WriteString("\n\n")

	w := m.Board.Widgets[m.Selected]
	line := fmt.Sprintf("%s %s", widgetStyle(m.Selected).Render(glyph(m.Selected)), StyleValue.Render(w.ID))
	if w.Type != "" {
		line += StyleDim.Render(" (" + w.Type + ")")
	}
	line += StyleDim.Render(fmt.Sprintf("  %dx%d", w.Size.X, w.Size.Y))
	if w.Position != nil {
		line += StyleDim.Render(fmt.Sprintf(" at %d,%d", w.Position.X, w.Position.Y))
	} else {
		line += StyleDim.Render(" unpositioned")
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	switch {
	case m.Err != nil:
		sb.WriteString(editErrorStyle.Render(iconError + " " + m.Err.Error()))
	case m.Collides:
		rect, _ := w.Rect()
		msg := "outside the grid"
		if ids := blockers(m.Board, rect, []string{w.ID}); len(ids) > 0 {
			msg = "overlaps " + strings.Join(ids, ", ")
		}
		sb.WriteString(editErrorStyle.Render(iconWarning + " " + msg))
	case m.Status != "":
		sb.WriteString(editStatusStyle.Render(m.Status))
	case m.Dirty:
		sb.WriteString(editStatusStyle.Render("unresolved changes"))
	}
	sb.WriteString("\n")

	return sb.String()
}
