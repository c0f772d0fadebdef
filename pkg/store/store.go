// Package store persists boards between resolutions.
//
// A [Store] keeps one board per ID. Three backends are provided:
//   - [MemoryStore]: in-process map, for tests and ephemeral servers
//   - [FileStore]: one JSON file per board, for the CLI
//   - [MongoStore]: one document per board, for shared deployments
//
// All backends validate boards before writing and report missing boards
// with [errs.ErrCodeBoardNotFound].
package store

import (
	"context"
	"sort"
	"time"

	"github.com/matzehuels/tilegrid/pkg/board"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
)

// Store persists boards by ID.
type Store interface {
	Get(ctx context.Context, id string) (*board.Board, error)
	Put(ctx context.Context, b *board.Board) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

// Summary describes a stored board without its widgets.
type Summary struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	Grid      geom.Vector2 `json:"grid"`
	Widgets   int          `json:"widgets"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// record is the persisted form shared by the file and memory backends.
type record struct {
	Board     *board.Board `json:"board"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (r record) summary() Summary {
	return Summary{
		ID:        r.Board.ID,
		Name:      r.Board.Name,
		Grid:      r.Board.Grid,
		Widgets:   len(r.Board.Widgets),
		UpdatedAt: r.UpdatedAt,
	}
}

// checkPut validates a board before it is written.
func checkPut(b *board.Board) error {
	if b == nil {
		return errs.New(errs.ErrCodeInvalidInput, "board is nil")
	}
	if err := errs.ValidateBoardID(b.ID); err != nil {
		return err
	}
	return b.Validate()
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeBoardNotFound, "board %q not found", id)
}

func sortSummaries(s []Summary) {
	sort.Slice(s, func(i, j int) bool { return s[i].ID < s[j].ID })
}
