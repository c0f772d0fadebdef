package board

import (
	"maps"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

// Board is a grid and the widgets placed on it.
type Board struct {
	ID      string       `json:"id,omitempty" toml:"id,omitempty"`
	Name    string       `json:"name,omitempty" toml:"name,omitempty"`
	Grid    geom.Vector2 `json:"grid" toml:"grid"`
	Widgets []Widget     `json:"widgets" toml:"widgets"`
}

// Widget is one widget on a board. Type and Props belong to the
// application and are carried through unchanged.
type Widget struct {
	ID       string         `json:"id" toml:"id"`
	Type     string         `json:"type,omitempty" toml:"type,omitempty"`
	Size     geom.Vector2   `json:"size" toml:"size"`
	Position *geom.Vector2  `json:"position,omitempty" toml:"position,omitempty"`
	Props    map[string]any `json:"props,omitempty" toml:"props,omitempty"`
}

// Rect returns the widget's cells, or false if it has no position.
func (w Widget) Rect() (geom.Rect2, bool) {
	if w.Position == nil {
		return geom.Rect2{}, false
	}
	return geom.NewRect(*w.Position, w.Size), true
}

// EnsureIDs assigns random UUIDs to the board and to every widget that has
// no ID. Existing IDs are kept.
func (b *Board) EnsureIDs() {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	for i := range b.Widgets {
		if b.Widgets[i].ID == "" {
			b.Widgets[i].ID = uuid.NewString()
		}
	}
}

// Clone returns a deep copy of the board. Props maps are copied one level deep.
func (b *Board) Clone() *Board {
	out := *b
	out.Widgets = make([]Widget, len(b.Widgets))
	for i, w := range b.Widgets {
		if w.Position != nil {
			p := *w.Position
			w.Position = &p
		}
		if w.Props != nil {
			w.Props = maps.Clone(w.Props)
		}
		out.Widgets[i] = w
	}
	return &out
}

// PlacementWidgets converts the board to resolver input, preserving order.
func (b *Board) PlacementWidgets() []placement.Widget {
	out := make([]placement.Widget, len(b.Widgets))
	for i, w := range b.Widgets {
		pw := placement.Widget{ID: w.ID, Size: w.Size}
		if w.Position != nil {
			p := *w.Position
			pw.Position = &p
		}
		out[i] = pw
	}
	return out
}

// Apply returns a copy of the board with positions taken from result.
// Widgets the result could not place keep their previous position.
func (b *Board) Apply(result placement.Result) *Board {
	out := b.Clone()
	for i, p := range result.Placements {
		if i >= len(out.Widgets) || p.Status == placement.StatusUnplaced {
			continue
		}
		pos := p.Position
		out.Widgets[i].Position = &pos
		out.Widgets[i].Size = p.Size
	}
	return out
}

// Find returns the index of the widget with the given ID, or -1.
func (b *Board) Find(id string) int {
	for i, w := range b.Widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Suggest returns the widget ID closest to id by edit distance, or "" if
// nothing is close enough to be a plausible typo.
func (b *Board) Suggest(id string) string {
	best, bestDist := "", -1
	for _, w := range b.Widgets {
		d := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(w.ID))
		if bestDist < 0 || d < bestDist {
			best, bestDist = w.ID, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(id)/3) {
		return ""
	}
	return best
}

// Move sets the desired position of the widget with the given ID. The
// position is only a request; the next resolution confirms or replaces it.
// Unknown IDs return an error that names the closest existing ID.
func (b *Board) Move(id string, to geom.Vector2) error {
	i := b.Find(id)
	if i < 0 {
		if s := b.Suggest(id); s != "" {
			return errs.New(errs.ErrCodeWidgetNotFound, "widget %q not found (did you mean %q?)", id, s)
		}
		return errs.New(errs.ErrCodeWidgetNotFound, "widget %q not found", id)
	}
	b.Widgets[i].Position = &to
	return nil
}
