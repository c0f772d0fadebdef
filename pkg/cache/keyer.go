package cache

import (
	"github.com/matzehuels/tilegrid/pkg/geom"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies the resolution of a board with the given content
	// hash under the given options.
	LayoutKey(boardHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the resolution options that change the result.
type LayoutKeyOpts struct {
	Grid         geom.Vector2 `json:"grid"`
	AllowPartial bool         `json:"allow_partial"`
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(boardHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", boardHash, opts)
}

var _ Keyer = DefaultKeyer{}
