package pipeline

import (
	"slices"

	"github.com/matzehuels/tilegrid/pkg/board"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

// Occupied reports whether rect overlaps any positioned widget of b, not
// counting the widgets named in ignore. It answers drag previews: ignore
// the widget being dragged and ask whether its target rect is free.
//
// Widgets are committed as they stand, without resolving, so two
// overlapping widgets on the board both count. Rects that leave the grid
// are reported as occupied.
func Occupied(b *board.Board, rect geom.Rect2, ignore ...string) (bool, error) {
	if b == nil {
		return false, errs.New(errs.ErrCodeInvalidInput, "board is nil")
	}
	r, err := placement.NewResolver(b.Grid)
	if err != nil {
		return false, err
	}
	if !rect.InBounds(b.Grid) {
		return true, nil
	}
	for _, w := range b.Widgets {
		if slices.Contains(ignore, w.ID) {
			continue
		}
		if wr, ok := w.Rect(); ok {
			r.AddWidgetRect(wr)
		}
	}
	return r.HasWidget(rect), nil
}
