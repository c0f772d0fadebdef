package placement

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/geom"
)

// Widget is the resolver's view of a widget: an opaque identity, a fixed
// size and an optional desired position. A nil Position means the widget
// has never been placed.
type Widget struct {
	ID       string
	Size     geom.Vector2
	Position *geom.Vector2
}

// HasPosition reports whether the widget carries a desired position.
func (w Widget) HasPosition() bool { return w.Position != nil }

// Status is the classification a widget receives in one resolution pass.
type Status int

const (
	// StatusConfirmed means the widget kept its existing position.
	StatusConfirmed Status = iota
	// StatusRepositioned means the widget had a position that was out of
	// bounds or overlapped an earlier widget, and was moved.
	StatusRepositioned
	// StatusPlaced means the widget had no position and was given one.
	StatusPlaced
	// StatusUnplaced means no free spot was large enough for the widget.
	StatusUnplaced
)

var statusNames = [...]string{
	StatusConfirmed:    "confirmed",
	StatusRepositioned: "repositioned",
	StatusPlaced:       "placed",
	StatusUnplaced:     "unplaced",
}

// String returns the lowercase status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown placement status %q", text)
}

// Placement is the resolved position of one widget.
type Placement struct {
	ID       string       `json:"id"`
	Position geom.Vector2 `json:"position"`
	Size     geom.Vector2 `json:"size"`
	Status   Status       `json:"status"`
}

// Rect returns the cells covered by the placement.
func (p Placement) Rect() geom.Rect2 { return geom.NewRect(p.Position, p.Size) }

// Result is the outcome of one resolution pass.
type Result struct {
	// Grid is the grid size the pass ran against.
	Grid geom.Vector2 `json:"grid"`

	// Placements holds one entry per input widget, in input order.
	Placements []Placement `json:"placements"`

	// Unplaced lists widgets for which no free spot existed, by ID, or by
	// "#<index>" for widgets without an ID.
	Unplaced []string `json:"unplaced,omitempty"`
}

// Find returns the placement for the widget with the given ID.
func (r Result) Find(id string) (Placement, bool) {
	for _, p := range r.Placements {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Count returns how many placements have the given status.
func (r Result) Count(status Status) int {
	n := 0
	for _, p := range r.Placements {
		if p.Status == status {
			n++
		}
	}
	return n
}

// Complete reports whether every widget received a position.
func (r Result) Complete() bool { return len(r.Unplaced) == 0 }
