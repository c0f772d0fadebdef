package placement

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/occupancy"
)

// Resolver places widgets on a grid of fixed dimensions.
// The zero value is not usable; create one with [NewResolver].
type Resolver struct {
	size   geom.Vector2
	grid   *occupancy.Grid
	logger *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output during a pass.
// Resolvers are silent by default.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver for a grid of the given size.
// Both dimensions must be positive and the area at most [occupancy.MaxCells].
func NewResolver(size geom.Vector2, opts ...Option) (*Resolver, error) {
	if !size.Positive() {
		return nil, errs.New(errs.ErrCodeInvalidGrid, "grid size must be positive, got %v", size)
	}
	if !occupancy.ValidSize(size) {
		return nil, errs.New(errs.ErrCodeInvalidGrid, "grid %v exceeds %d cells", size, occupancy.MaxCells)
	}
	r := &Resolver{
		size:   size,
		grid:   occupancy.New(size),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Size returns the grid dimensions.
func (r *Resolver) Size() geom.Vector2 { return r.size }

// HasWidget reports whether rect touches any cell committed in the current
// pass. Cells outside the grid count as free.
func (r *Resolver) HasWidget(rect geom.Rect2) bool { return r.grid.HasWidget(rect) }

// AddWidgetRect commits rect to the current occupancy grid. Out-of-bounds
// cells are ignored.
func (r *Resolver) AddWidgetRect(rect geom.Rect2) { r.grid.AddWidgetRect(rect) }

// Reset clears the occupancy grid.
func (r *Resolver) Reset() { r.grid.Reset() }

// FindFree returns the first position, scanning rows top to bottom and
// cells left to right, where a widget of the given size fits without
// touching an occupied cell.
func (r *Resolver) FindFree(size geom.Vector2) (geom.Vector2, bool) {
	for y := 0; y <= r.size.Y-size.Y; y++ {
		for x := 0; x <= r.size.X-size.X; x++ {
			pos := geom.V(x, y)
			if !r.grid.HasWidget(geom.NewRect(pos, size)) {
				return pos, true
			}
		}
	}
	return geom.Vector2{}, false
}

// Resolve runs one resolution pass and returns a placement for every
// widget, in input order. The input is not modified.
//
// If some widgets could not be placed, Resolve returns the partial result
// together with an error carrying [errs.ErrCodeNoSpace]; every other error
// is returned with an empty Result. Occupancy is cleared in either case.
func (r *Resolver) Resolve(widgets []Widget) (Result, error) {
	r.grid.Reset()
	if err := r.validate(widgets); err != nil {
		return Result{}, err
	}

	result := Result{
		Grid:       r.size,
		Placements: make([]Placement, len(widgets)),
	}

	// Phase 1: confirm valid positions, queue the rest.
	var repositioned, fresh []int
	for i, w := range widgets {
		if !w.HasPosition() {
			fresh = append(fresh, i)
			continue
		}
		rect := geom.NewRect(*w.Position, w.Size)
		if !rect.InBounds(r.size) || r.grid.HasWidget(rect) {
			repositioned = append(repositioned, i)
			continue
		}
		r.grid.AddWidgetRect(rect)
		result.Placements[i] = Placement{ID: w.ID, Position: *w.Position, Size: w.Size, Status: StatusConfirmed}
	}

	r.logger.Debug("partitioned widgets",
		"confirmed", len(widgets)-len(repositioned)-len(fresh),
		"repositioned", len(repositioned),
		"new", len(fresh))

	// Phases 2 and 3: previously positioned widgets pick before new ones.
	r.placeQueue(widgets, repositioned, StatusRepositioned, &result)
	r.placeQueue(widgets, fresh, StatusPlaced, &result)

	if len(result.Unplaced) > 0 {
		return result, errs.New(errs.ErrCodeNoSpace,
			"no free space for %d widget(s): %s", len(result.Unplaced), strings.Join(result.Unplaced, ", "))
	}
	return result, nil
}

// ResolveAll resolves widgets and writes each new position back into the
// widget it belongs to. On a NoSpace error the widgets that were placed are
// still updated and the unplaced ones are left untouched.
func (r *Resolver) ResolveAll(widgets []*Widget) error {
	in := make([]Widget, len(widgets))
	for i, w := range widgets {
		if w == nil {
			return errs.New(errs.ErrCodeInvalidInput, "widget #%d is nil", i)
		}
		in[i] = *w
	}

	result, err := r.Resolve(in)
	if err != nil && !errs.Is(err, errs.ErrCodeNoSpace) {
		return err
	}
	for i, p := range result.Placements {
		if p.Status == StatusUnplaced {
			continue
		}
		pos := p.Position
		widgets[i].Position = &pos
		widgets[i].Size = p.Size
	}
	return err
}

func (r *Resolver) placeQueue(widgets []Widget, queue []int, status Status, result *Result) {
	for _, i := range queue {
		w := widgets[i]
		pos, ok := r.FindFree(w.Size)
		if !ok {
			p := Placement{ID: w.ID, Size: w.Size, Status: StatusUnplaced}
			if w.Position != nil {
				p.Position = *w.Position
			}
			result.Placements[i] = p
			result.Unplaced = append(result.Unplaced, label(i, w))
			r.logger.Debug("no free space", "widget", label(i, w), "size", w.Size)
			continue
		}
		r.grid.AddWidgetRect(geom.NewRect(pos, w.Size))
		result.Placements[i] = Placement{ID: w.ID, Position: pos, Size: w.Size, Status: status}
	}
}

// validate rejects the whole pass on malformed input.
func (r *Resolver) validate(widgets []Widget) error {
	seen := make(map[string]int, len(widgets))
	for i, w := range widgets {
		if !w.Size.Positive() {
			return errs.New(errs.ErrCodeInvalidSize, "widget %s has non-positive size %v", label(i, w), w.Size)
		}
		if !w.Size.Fits(r.size) {
			return errs.New(errs.ErrCodeOversizedWidget, "widget %s size %v exceeds grid %v", label(i, w), w.Size, r.size)
		}
		if w.ID == "" {
			continue
		}
		if j, dup := seen[w.ID]; dup {
			return errs.New(errs.ErrCodeDuplicateWidget, "widget id %q used by #%d and #%d", w.ID, j, i)
		}
		seen[w.ID] = i
	}
	return nil
}

func label(i int, w Widget) string {
	if w.ID != "" {
		return w.ID
	}
	return fmt.Sprintf("#%d", i)
}
