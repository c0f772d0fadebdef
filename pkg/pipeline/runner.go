package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/cache"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

const keyTypeLayout = "layout"

// Runner encapsulates resolution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-request state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedLayout is what the runner stores per resolution.
type cachedLayout struct {
	Placement placement.Result `json:"placement"`
}

// layoutInput is the part of a board that placement depends on. IDs, names
// and props are left out so that boards differing only in those share a
// cache entry.
type layoutInput struct {
	Grid    geom.Vector2   `json:"grid"`
	Widgets []layoutWidget `json:"widgets"`
}

type layoutWidget struct {
	Size     geom.Vector2  `json:"size"`
	Position *geom.Vector2 `json:"position,omitempty"`
}

// layoutHash hashes the placement input of b.
func layoutHash(b *board.Board) (string, error) {
	in := layoutInput{Grid: b.Grid, Widgets: make([]layoutWidget, len(b.Widgets))}
	for i, w := range b.Widgets {
		in.Widgets[i] = layoutWidget{Size: w.Size, Position: w.Position}
	}
	data, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// Resolve validates b, resolves it and returns a resolved copy. The input
// board is never modified.
//
// When widgets find no free space, Resolve returns an error carrying
// [errs.ErrCodeNoSpace] unless opts.AllowPartial is set, in which case the
// partial result is returned and Result.Stats.Unplaced is non-zero.
func (r *Runner) Resolve(ctx context.Context, b *board.Board, opts Options) (*Result, error) {
	if b == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "board is nil")
	}
	work := b.Clone()
	work.Grid = opts.GridFor(b)
	if err := work.Validate(); err != nil {
		return nil, err
	}

	hash, err := layoutHash(work)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "hash board")
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts(work.Grid))

	start := time.Now()
	if !opts.Refresh {
		if pr, ok := r.lookup(ctx, key, work); ok {
			r.Logger.Debug("layout cache hit", "board", work.ID, "hash", hash[:12])
			return &Result{
				Board:     work.Apply(pr),
				Placement: pr,
				BoardHash: hash,
				Stats:     statsFor(pr, time.Since(start)),
				CacheInfo: CacheInfo{LayoutHit: true},
			}, nil
		}
	}

	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, work.Grid, len(work.Widgets))

	resolver, err := placement.NewResolver(work.Grid, placement.WithLogger(r.Logger))
	if err != nil {
		hooks.OnResolveComplete(ctx, work.Grid, 0, 0, time.Since(start), err)
		return nil, err
	}
	pr, err := resolver.Resolve(work.PlacementWidgets())
	stats := statsFor(pr, time.Since(start))
	hooks.OnResolveComplete(ctx, work.Grid, stats.Widgets-stats.Unplaced, stats.Unplaced, stats.Duration, err)

	if err != nil && !(opts.AllowPartial && errs.Is(err, errs.ErrCodeNoSpace)) {
		return nil, err
	}

	res := &Result{
		Board:     work.Apply(pr),
		Placement: pr,
		BoardHash: hash,
		Stats:     stats,
	}
	r.store(ctx, key, res)

	r.Logger.Debug("resolved board",
		"board", work.ID,
		"widgets", stats.Widgets,
		"moved", stats.Moved(),
		"unplaced", stats.Unplaced,
		"duration", stats.Duration)
	return res, nil
}

// lookup returns the cached placement for key, relabelled with the widget
// IDs of b.
func (r *Runner) lookup(ctx context.Context, key string, b *board.Board) (placement.Result, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return placement.Result{}, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyTypeLayout)
		return placement.Result{}, false
	}
	var cl cachedLayout
	if err := json.Unmarshal(data, &cl); err != nil || len(cl.Placement.Placements) != len(b.Widgets) {
		// Stale or corrupt entry, recompute.
		hooks.OnCacheMiss(ctx, keyTypeLayout)
		return placement.Result{}, false
	}
	hooks.OnCacheHit(ctx, keyTypeLayout)

	pr := cl.Placement
	pr.Unplaced = nil
	for i := range pr.Placements {
		pr.Placements[i].ID = b.Widgets[i].ID
		if pr.Placements[i].Status == placement.StatusUnplaced {
			pr.Unplaced = append(pr.Unplaced, b.Widgets[i].ID)
		}
	}
	return pr, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cachedLayout{Placement: res.Placement})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
