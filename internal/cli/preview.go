package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

// =============================================================================
// Grid Preview
// =============================================================================

const (
	glyphs      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	glyphEmpty  = "·"
	glyphClash  = "!"
	previewCell = 2
)

var widgetColors = []lipgloss.Color{
	lipgloss.Color("36"),
	lipgloss.Color("75"),
	lipgloss.Color("141"),
	lipgloss.Color("179"),
	lipgloss.Color("114"),
	lipgloss.Color("204"),
}

var (
	styleEmpty    = lipgloss.NewStyle().Foreground(colorDim)
	styleClash    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleSelected = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// glyph returns the single-character label of the i-th widget.
func glyph(i int) string {
	return string(glyphs[i%len(glyphs)])
}

func widgetStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(widgetColors[i%len(widgetColors)])
}

// gridPreview draws a board. Selected is a widget index or -1.
type gridPreview struct {
	Board    *board.Board
	Selected int
}

// cellOwners maps every in-bounds cell to the widgets covering it, in
// widget order. Widgets without a position are skipped.
func cellOwners(b *board.Board) [][]int {
	owners := make([][]int, b.Grid.X*b.Grid.Y)
	for i, w := range b.Widgets {
		rect, ok := w.Rect()
		if !ok {
			continue
		}
		for y := max(rect.Position.Y, 0); y < min(rect.Bottom(), b.Grid.Y); y++ {
			for x := max(rect.Position.X, 0); x < min(rect.Right(), b.Grid.X); x++ {
				owners[y*b.Grid.X+x] = append(owners[y*b.Grid.X+x], i)
			}
		}
	}
	return owners
}

// Render draws the grid one row per line. Cells covered by more than one
// widget are drawn as "!".
func (p gridPreview) Render() string {
	b := p.Board
	owners := cellOwners(b)

	var sb strings.Builder
	for y := range b.Grid.Y {
		for x := range b.Grid.X {
			cell := owners[y*b.Grid.X+x]
			var s string
			switch {
			case len(cell) == 0:
				s = styleEmpty.Render(glyphEmpty)
			case len(cell) > 1:
				s = styleClash.Render(glyphClash)
			case cell[0] == p.Selected:
				s = styleSelected.Render(glyph(cell[0]))
			default:
				s = widgetStyle(cell[0]).Render(glyph(cell[0]))
			}
			sb.WriteString(s)
			sb.WriteString(strings.Repeat(" ", previewCell-1))
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderPreview draws a resolved board without selection.
func renderPreview(b *board.Board) string {
	return gridPreview{Board: b, Selected: -1}.Render()
}

// =============================================================================
// Placement Summary
// =============================================================================

// renderSummary renders one table row per widget with its placement status.
// Board widgets and result placements are in the same order.
func renderSummary(b *board.Board, res placement.Result) string {
	rows := make([][]string, 0, len(b.Widgets))
	for i, w := range b.Widgets {
		status, position := "-", "-"
		if i < len(res.Placements) {
			p := res.Placements[i]
			status = p.Status.String()
			if p.Status != placement.StatusUnplaced {
				position = fmt.Sprintf("%d,%d", p.Position.X, p.Position.Y)
			}
		}
		rows = append(rows, []string{
			glyph(i),
			w.ID,
			w.Type,
			fmt.Sprintf("%dx%d", w.Size.X, w.Size.Y),
			position,
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Type", "Size", "Position", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return base.Inherit(widgetStyle(row))
			}
			if col == 5 && row < len(res.Placements) {
				return base.Inherit(statusStyle(res.Placements[row].Status))
			}
			return base
		})

	return t.Render()
}

func statusStyle(s placement.Status) lipgloss.Style {
	switch s {
	case placement.StatusConfirmed:
		return lipgloss.NewStyle().Foreground(colorGray)
	case placement.StatusRepositioned:
		return StyleWarning
	case placement.StatusPlaced:
		return StyleSuccess
	default:
		return styleClash
	}
}
