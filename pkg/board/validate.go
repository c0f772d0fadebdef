package board

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/occupancy"
)

// Validate checks the board for structural problems: a positive grid of at
// most [occupancy.MaxCells] cells, widgets with non-empty unique IDs and positive sizes. Widgets larger than
// the grid and out-of-bounds positions are not rejected here; the resolver
// reports the former and repositions the latter.
func (b *Board) Validate() error {
	if !b.Grid.Positive() {
		return errs.New(errs.ErrCodeInvalidGrid, "grid size must be positive, got %v", b.Grid)
	}
	if !occupancy.ValidSize(b.Grid) {
		return errs.New(errs.ErrCodeInvalidGrid, "grid %v exceeds %d cells", b.Grid, occupancy.MaxCells)
	}
	err := validation.ValidateStruct(b,
		validation.Field(&b.ID, validation.Length(0, 128)),
		validation.Field(&b.Name, validation.Length(0, 128)),
		validation.Field(&b.Widgets),
	)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid board")
	}
	seen := make(map[string]bool, len(b.Widgets))
	for _, w := range b.Widgets {
		if seen[w.ID] {
			return errs.New(errs.ErrCodeDuplicateWidget, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true
	}
	return nil
}

// Validate implements validation.Validatable so that ozzo validates every
// element of Board.Widgets.
func (w Widget) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required, validation.Length(1, 128)),
		validation.Field(&w.Type, validation.Length(0, 64)),
		validation.Field(&w.Size, validation.By(positiveSize)),
	)
}

func positiveSize(value any) error {
	v, ok := value.(geom.Vector2)
	if !ok || !v.Positive() {
		return validation.NewError("board.size_positive", "must be positive on both axes")
	}
	return nil
}
