// Package board provides the serialization format for widget boards.
//
// A [Board] is what the surrounding application persists and exchanges: a
// grid size plus an ordered list of widgets. Each [Widget] carries an ID, a
// size, an optional position and two opaque fields, Type and Props, that
// tilegrid never interprets but always carries through resolution.
//
// # Formats
//
// Boards can be read and written in three formats, chosen by file
// extension in [ReadFile] and [WriteFile]:
//
//   - .json: the canonical wire format, also used by the HTTP API and the cache
//   - .toml: a hand-editable form using [[widgets]] tables
//   - .grid: a compact line-oriented DSL (see [ParseGrid])
//
// JSON example:
//
//	{
//	  "name": "home",
//	  "grid": {"x": 15, "y": 15},
//	  "widgets": [
//	    {"id": "clock", "type": "Clock", "size": {"x": 3, "y": 3}, "position": {"x": 1, "y": 1}},
//	    {"id": "feed", "type": "Feed", "size": {"x": 15, "y": 2}}
//	  ]
//	}
//
// The same board in the .grid DSL:
//
//	board "home" 15x15
//	widget clock Clock 3x3 at 1,1
//	widget feed Feed 15x2
//
// # Resolution
//
// [Board.PlacementWidgets] converts a board to resolver input and [Board.Apply]
// writes a [placement.Result] back into a copy of the board:
//
//	r, _ := placement.NewResolver(b.Grid)
//	result, err := r.Resolve(b.PlacementWidgets())
//	resolved := b.Apply(result)
//
// [placement.Result]: github.com/matzehuels/tilegrid/pkg/placement.Result
package board
