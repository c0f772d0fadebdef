package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/cache"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

func pos(x, y int) *geom.Vector2 {
	v := geom.V(x, y)
	return &v
}

func testBoard() *board.Board {
	return &board.Board{
		ID:   "home",
		Grid: geom.V(6, 4),
		Widgets: []board.Widget{
			{ID: "clock", Type: "Clock", Size: geom.V(2, 2), Position: pos(0, 0)},
			{ID: "notes", Size: geom.V(2, 2), Position: pos(1, 1)},
			{ID: "feed", Size: geom.V(6, 1), Props: map[string]any{"url": "x"}},
		},
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestOptionsGridFor(t *testing.T) {
	b := testBoard()
	if got := (Options{}).GridFor(b); !got.Equal(geom.V(6, 4)) {
		t.Errorf("GridFor without override = %v", got)
	}
	if got := (Options{Grid: geom.V(8, 8)}).GridFor(b); !got.Equal(geom.V(8, 8)) {
		t.Errorf("GridFor with override = %v", got)
	}
	if got := (Options{Grid: geom.V(0, 8)}).GridFor(b); !got.Equal(geom.V(6, 4)) {
		t.Errorf("GridFor with non-positive override = %v", got)
	}
}

func TestResolve(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	b := testBoard()

	res, err := r.Resolve(context.Background(), b, Options{})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	want := map[string]geom.Vector2{
		"clock": geom.V(0, 0),
		"notes": geom.V(2, 0),
		"feed":  geom.V(0, 2),
	}
	for _, w := range res.Board.Widgets {
		if w.Position == nil || !w.Position.Equal(want[w.ID]) {
			t.Errorf("%s at %v, want %v", w.ID, w.Position, want[w.ID])
		}
	}
	if res.Board.Widgets[2].Props["url"] != "x" {
		t.Error("props not carried through")
	}

	wantStats := Stats{Widgets: 3, Confirmed: 1, Repositioned: 1, Placed: 1}
	got := res.Stats
	got.Duration = 0
	if got != wantStats {
		t.Errorf("Stats = %+v, want %+v", got, wantStats)
	}
	if res.Stats.Moved() != 2 {
		t.Errorf("Moved() = %d, want 2", res.Stats.Moved())
	}
	if len(res.BoardHash) != 64 {
		t.Errorf("BoardHash = %q", res.BoardHash)
	}
	if !b.Widgets[1].Position.Equal(geom.V(1, 1)) {
		t.Error("Resolve modified the input board")
	}
}

func TestResolveCache(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	first, err := r.Resolve(ctx, testBoard(), Options{})
	if err != nil {
		t.Fatalf("first Resolve error: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first resolution should miss the cache")
	}

	second, err := r.Resolve(ctx, testBoard(), Options{})
	if err != nil {
		t.Fatalf("second Resolve error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second resolution should hit the cache")
	}
	if second.BoardHash != first.BoardHash {
		t.Error("hash changed between identical boards")
	}
	if second.Stats.Repositioned != 1 || second.Stats.Placed != 1 {
		t.Errorf("cached Stats = %+v", second.Stats)
	}
	if p, ok := second.Placement.Find("notes"); !ok || p.Status != placement.StatusRepositioned {
		t.Errorf("cached placement for notes = %+v", p)
	}

	refreshed, err := r.Resolve(ctx, testBoard(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Resolve error: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the cache")
	}

	other, _ := r.Resolve(ctx, testBoard(), Options{Grid: geom.V(10, 10)})
	if other.CacheInfo.LayoutHit {
		t.Error("grid override should use a separate cache entry")
	}
	if !other.Board.Grid.Equal(geom.V(10, 10)) {
		t.Errorf("resolved grid = %v, want (10,10)", other.Board.Grid)
	}
}

func TestResolveCacheIgnoresGeneratedIDs(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	const doc = `{"grid":{"x":6,"y":4},"widgets":[
		{"size":{"x":2,"y":2},"position":{"x":0,"y":0}},
		{"size":{"x":2,"y":2},"position":{"x":1,"y":1}},
		{"size":{"x":6,"y":1}}]}`
	read := func() *board.Board {
		t.Helper()
		b, err := board.UnmarshalBoard([]byte(doc))
		if err != nil {
			t.Fatalf("UnmarshalBoard error: %v", err)
		}
		return b
	}

	first, err := r.Resolve(ctx, read(), Options{})
	if err != nil {
		t.Fatalf("first Resolve error: %v", err)
	}
	b := read()
	if b.Widgets[0].ID == first.Board.Widgets[0].ID {
		t.Fatal("expected a fresh widget ID on every read")
	}

	second, err := r.Resolve(ctx, b, Options{})
	if err != nil {
		t.Fatalf("second Resolve error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Fatal("boards differing only in generated IDs should share a cache entry")
	}
	if second.BoardHash != first.BoardHash {
		t.Error("layout hash depends on IDs")
	}
	for i, w := range second.Board.Widgets {
		if w.ID != b.Widgets[i].ID {
			t.Errorf("widget %d ID = %q, want %q", i, w.ID, b.Widgets[i].ID)
		}
		if p := second.Placement.Placements[i]; p.ID != w.ID {
			t.Errorf("placement %d ID = %q, want %q", i, p.ID, w.ID)
		}
		if !w.Position.Equal(*first.Board.Widgets[i].Position) {
			t.Errorf("widget %d at %v, want %v", i, w.Position, first.Board.Widgets[i].Position)
		}
	}
	if second.Board.ID != b.ID {
		t.Errorf("board ID = %q, want %q", second.Board.ID, b.ID)
	}
}

func TestResolveCachedPartialUsesCurrentIDs(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	defer r.Close()

	tight := func(extra string) *board.Board {
		return &board.Board{
			ID:   "tight",
			Grid: geom.V(2, 2),
			Widgets: []board.Widget{
				{ID: "big", Size: geom.V(2, 2), Position: pos(0, 0)},
				{ID: extra, Size: geom.V(1, 1)},
			},
		}
	}
	opts := Options{AllowPartial: true}
	if _, err := r.Resolve(ctx, tight("first"), opts); err != nil {
		t.Fatalf("first Resolve error: %v", err)
	}
	res, err := r.Resolve(ctx, tight("second"), opts)
	if err != nil {
		t.Fatalf("second Resolve error: %v", err)
	}
	if !res.CacheInfo.LayoutHit {
		t.Fatal("second Resolve should hit the cache")
	}
	if len(res.Placement.Unplaced) != 1 || res.Placement.Unplaced[0] != "second" {
		t.Errorf("Unplaced = %v, want [second]", res.Placement.Unplaced)
	}
	if res.Stats.Unplaced != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestResolveNoSpace(t *testing.T) {
	ctx := context.Background()
	b := &board.Board{
		ID:   "tight",
		Grid: geom.V(2, 2),
		Widgets: []board.Widget{
			{ID: "big", Size: geom.V(2, 2), Position: pos(0, 0)},
			{ID: "extra", Size: geom.V(1, 1)},
		},
	}
	r := NewRunner(nil, nil, nil)

	if _, err := r.Resolve(ctx, b, Options{}); !errs.Is(err, errs.ErrCodeNoSpace) {
		t.Fatalf("Resolve = %v, want NO_SPACE_AVAILABLE", err)
	}

	res, err := r.Resolve(ctx, b, Options{AllowPartial: true})
	if err != nil {
		t.Fatalf("Resolve with AllowPartial error: %v", err)
	}
	if res.Stats.Unplaced != 1 || res.Placement.Complete() {
		t.Errorf("Stats = %+v, want one unplaced", res.Stats)
	}
	if res.Board.Widgets[1].Position != nil {
		t.Error("unplaced widget received a position")
	}
}

func TestResolveErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	tests := []struct {
		name string
		b    *board.Board
		opts Options
		code errs.Code
	}{
		{"nil", nil, Options{}, errs.ErrCodeInvalidInput},
		{"bad grid", &board.Board{Grid: geom.V(0, 0)}, Options{}, errs.ErrCodeInvalidGrid},
		{"oversized", testBoard(), Options{Grid: geom.V(4, 4)}, errs.ErrCodeOversizedWidget},
		{"huge grid override", testBoard(), Options{Grid: geom.V(100000, 100000)}, errs.ErrCodeInvalidGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Resolve(ctx, tt.b, tt.opts); !errs.Is(err, tt.code) {
				t.Errorf("Resolve = %v, want code %s", err, tt.code)
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopResolveHooks
	observability.NoopCacheHooks
	starts, completes, hits, misses, sets int
}

func (h *recordingHooks) OnResolveStart(context.Context, geom.Vector2, int) { h.starts++ }
func (h *recordingHooks) OnResolveComplete(context.Context, geom.Vector2, int, int, time.Duration, error) {
	h.completes++
}
func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestResolveHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	h := &recordingHooks{}
	observability.SetResolveHooks(h)
	observability.SetCacheHooks(h)

	ctx := context.Background()
	r := newFileRunner(t)
	for range 2 {
		if _, err := r.Resolve(ctx, testBoard(), Options{}); err != nil {
			t.Fatal(err)
		}
	}

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("resolve hooks: starts %d, completes %d, want 1 each", h.starts, h.completes)
	}
	if h.misses != 1 || h.hits != 1 || h.sets != 1 {
		t.Errorf("cache hooks: misses %d, hits %d, sets %d, want 1 each", h.misses, h.hits, h.sets)
	}
}

func TestOccupied(t *testing.T) {
	b := &board.Board{
		Grid: geom.V(6, 4),
		Widgets: []board.Widget{
			{ID: "clock", Size: geom.V(2, 2), Position: pos(0, 0)},
			{ID: "feed", Size: geom.V(6, 1)},
		},
	}

	tests := []struct {
		name   string
		rect   geom.Rect2
		ignore []string
		want   bool
	}{
		{"overlap", geom.R(1, 1, 2, 2), nil, true},
		{"free", geom.R(2, 0, 2, 2), nil, false},
		{"ignored widget", geom.R(1, 1, 2, 2), []string{"clock"}, false},
		{"unpositioned widgets do not count", geom.R(0, 3, 6, 1), nil, false},
		{"out of bounds", geom.R(5, 3, 2, 2), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Occupied(b, tt.rect, tt.ignore...)
			if err != nil {
				t.Fatalf("Occupied error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Occupied(%v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}

	if _, err := Occupied(&board.Board{}, geom.R(0, 0, 1, 1)); !errs.Is(err, errs.ErrCodeInvalidGrid) {
		t.Errorf("Occupied on empty grid = %v, want INVALID_GRID", err)
	}
}
