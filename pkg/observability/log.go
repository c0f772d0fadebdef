package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/geom"
)

// LogHooks writes every event to a logger at debug level. Failed resolves
// and 5xx responses are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Register installs h for every event category.
func (h *LogHooks) Register() {
	SetResolveHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnResolveStart(_ context.Context, grid geom.Vector2, widgets int) {
	h.Logger.Debug("resolve start", "grid", grid, "widgets", widgets)
}

func (h *LogHooks) OnResolveComplete(_ context.Context, grid geom.Vector2, placed, unplaced int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("resolve failed", "grid", grid, "placed", placed, "unplaced", unplaced, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("resolve done", "grid", grid, "placed", placed, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	if status >= 500 {
		h.Logger.Warn("response", "method", method, "route", route, "status", status, "duration", d)
		return
	}
	h.Logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ ResolveHooks = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
	_ HTTPHooks    = (*LogHooks)(nil)
)
