// Package placement resolves widget positions on a fixed-size cell grid.
//
// A [Resolver] takes an ordered list of widgets, each with a fixed size and
// an optional desired position, and assigns every widget a position such
// that no two widgets overlap and every widget lies inside the grid.
//
// # Resolution Pass
//
// Each call to [Resolver.Resolve] starts from an empty occupancy grid and
// runs three phases, each preserving the input order of the widgets it
// handles:
//
//  1. Confirm: widgets with a position that is in bounds and free of
//     every rect committed so far keep that position ([StatusConfirmed]).
//     Conflicting or out-of-bounds widgets are queued for repositioning;
//     widgets without a position are queued as new.
//  2. Reposition: queued conflicting widgets are moved to the first free
//     spot found by a row-major scan ([StatusRepositioned]).
//  3. Place: new widgets are placed the same way ([StatusPlaced]).
//
// Widgets that already had a position are re-homed before widgets that
// never had one, and earlier widgets get first pick of free space, so
// repeated passes over a mostly-stable board move as little as possible.
// Resolving an already-resolved board returns every position unchanged.
//
// # Errors
//
// A widget larger than the grid rejects the whole pass with
// [errors.ErrCodeOversizedWidget] before any position is assigned.
// A widget for which no free spot exists does not stop the pass: it is
// reported in [Result.Unplaced] and Resolve returns the partial result
// together with an [errors.ErrCodeNoSpace] error.
//
// # Concurrency
//
// A Resolver keeps the occupancy grid of its last pass so callers can run
// pre-flight checks with [Resolver.HasWidget] (for example while dragging a
// widget). It is not safe for concurrent use; callers serialize passes or
// create one Resolver per goroutine.
//
// [errors.ErrCodeOversizedWidget]: github.com/matzehuels/tilegrid/pkg/errors.ErrCodeOversizedWidget
// [errors.ErrCodeNoSpace]: github.com/matzehuels/tilegrid/pkg/errors.ErrCodeNoSpace
package placement
