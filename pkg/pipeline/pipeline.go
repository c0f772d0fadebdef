// Package pipeline runs board resolution for the CLI and the HTTP server.
//
// Both entry points go through a [Runner] so they share validation, caching
// and instrumentation:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Resolve(ctx, b, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	_ = board.WriteFile(result.Board, "resolved.json")
//
// A resolution is cached under the hash of what placement depends on: the
// grid and the size and position of each widget, in order. Widget IDs,
// names and props are not part of the key, so boards whose IDs are
// generated on every read still hit the cache.
package pipeline

import (
	"time"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

// =============================================================================
// Options
// =============================================================================

// Options controls a single resolution.
type Options struct {
	// Grid overrides the board's grid size when positive.
	Grid geom.Vector2 `json:"grid,omitempty"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// AllowPartial returns the partial result instead of an error when some
	// widgets find no free space.
	AllowPartial bool `json:"allow_partial,omitempty"`
}

// GridFor returns the grid a board resolves against under these options.
func (o Options) GridFor(b *board.Board) geom.Vector2 {
	if o.Grid.Positive() {
		return o.Grid
	}
	return b.Grid
}

// LayoutKeyOpts returns cache key options for a resolution on grid.
func (o Options) LayoutKeyOpts(grid geom.Vector2) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Grid:         grid,
		AllowPartial: o.AllowPartial,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of [Runner.Resolve].
type Result struct {
	// Board is a copy of the input board with resolved positions.
	Board *board.Board `json:"board"`

	// Placement is the raw resolver output, one entry per widget.
	Placement placement.Result `json:"placement"`

	// BoardHash is the hash of the grid and the widget sizes and positions
	// after the grid override was applied.
	BoardHash string `json:"board_hash"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats counts widgets per placement status.
type Stats struct {
	Widgets      int           `json:"widgets"`
	Confirmed    int           `json:"confirmed"`
	Repositioned int           `json:"repositioned"`
	Placed       int           `json:"placed"`
	Unplaced     int           `json:"unplaced"`
	Duration     time.Duration `json:"duration_ns"`
}

// Moved returns how many widgets got a different position than requested.
func (s Stats) Moved() int { return s.Repositioned + s.Placed }

// CacheInfo reports whether the result came from the cache.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
}

func statsFor(r placement.Result, d time.Duration) Stats {
	return Stats{
		Widgets:      len(r.Placements),
		Confirmed:    r.Count(placement.StatusConfirmed),
		Repositioned: r.Count(placement.StatusRepositioned),
		Placed:       r.Count(placement.StatusPlaced),
		Unplaced:     r.Count(placement.StatusUnplaced),
		Duration:     d,
	}
}
