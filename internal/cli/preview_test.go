package cli

import (
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func pos(x, y int) *geom.Vector2 {
	v := geom.V(x, y)
	return &v
}

// previewCells returns the preview as rows of cell glyphs.
func previewCells(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(ansiSeq.ReplaceAllString(s, ""), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestRenderPreview(t *testing.T) {
	b := &board.Board{
		Grid: geom.V(3, 2),
		Widgets: []board.Widget{
			{ID: "a", Size: geom.V(2, 1), Position: pos(0, 0)},
			{ID: "b", Size: geom.V(1, 2), Position: pos(2, 0)},
			{ID: "c", Size: geom.V(1, 1)},
		},
	}

	got := previewCells(renderPreview(b))
	want := [][]string{
		{"A", "A", "B"},
		{"·", "·", "B"},
	}
	if len(got) != len(want) {
		t.Fatalf("preview has %d rows, want %d", len(got), len(want))
	}
	for y := range want {
		if strings.Join(got[y], " ") != strings.Join(want[y], " ") {
			t.Errorf("row %d = %v, want %v", y, got[y], want[y])
		}
	}
}

func TestRenderPreviewMarksOverlap(t *testing.T) {
	b := &board.Board{
		Grid: geom.V(3, 1),
		Widgets: []board.Widget{
			{ID: "a", Size: geom.V(2, 1), Position: pos(0, 0)},
			{ID: "b", Size: geom.V(2, 1), Position: pos(1, 0)},
			{ID: "c", Size: geom.V(2, 1), Position: pos(5, 5)},
		},
	}

	got := previewCells(renderPreview(b))
	if want := "A ! B"; strings.Join(got[0], " ") != want {
		t.Errorf("row 0 = %v, want %q", got[0], want)
	}
}

func TestGlyph(t *testing.T) {
	if glyph(0) != "A" || glyph(26) != "a" || glyph(len(glyphs)) != "A" {
		t.Errorf("unexpected glyphs: %q %q %q", glyph(0), glyph(26), glyph(len(glyphs)))
	}
}

func TestRenderSummary(t *testing.T) {
	b := &board.Board{
		Grid: geom.V(4, 4),
		Widgets: []board.Widget{
			{ID: "clock", Type: "Clock", Size: geom.V(2, 2), Position: pos(0, 0)},
			{ID: "feed", Type: "Feed", Size: geom.V(4, 4)},
		},
	}
	res := placement.Result{
		Grid: b.Grid,
		Placements: []placement.Placement{
			{ID: "clock", Position: geom.V(0, 0), Size: geom.V(2, 2), Status: placement.StatusConfirmed},
			{ID: "feed", Size: geom.V(4, 4), Status: placement.StatusUnplaced},
		},
		Unplaced: []string{"feed"},
	}

	out := ansiSeq.ReplaceAllString(renderSummary(b, res), "")
	for _, want := range []string{"clock", "Clock", "2x2", "0,0", "confirmed", "feed", "4x4", "unplaced"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
