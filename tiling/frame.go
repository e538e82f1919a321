package tiling

import (
	"errors"

	"github.com/gogpu/ispbe"
)

// ErrStale reports an attempt to use a tile set whose configuration
// changed after it was derived.
var ErrStale = errors.New("tiling: tile set is stale, rebuild before submitting")

// Frame couples a configuration with the tile set derived from it and
// enforces the rebuild-before-submit protocol: any mutation performed
// through the frame marks the tile set stale, and only a rebuilt frame
// serializes.
//
// A Frame is owned by a single submission flow; it is not safe for
// concurrent use.
type Frame struct {
	cfg   ispbe.Config
	tiles TileSet
	opts  []Option
}

// NewFrame wraps a configuration. The initial tile set is stale until
// the first Rebuild. cfg may be nil for an all-defaults configuration.
func NewFrame(cfg *ispbe.Config, opts ...Option) *Frame {
	f := &Frame{opts: opts}
	if cfg != nil {
		f.cfg = *cfg
	}
	return f
}

// Config returns the frame's configuration for reading. Mutate it
// through Configure so the tile set is invalidated.
func (f *Frame) Config() *ispbe.Config { return &f.cfg }

// Configure applies fn to the configuration and marks the tile set
// stale. Callers remain responsible for marking the dirty bits of
// whatever they changed.
func (f *Frame) Configure(fn func(*ispbe.Config)) {
	fn(&f.cfg)
	f.tiles.Invalidate()
}

// TileSet returns the current tile set. Check Valid before submitting.
func (f *Frame) TileSet() *TileSet { return &f.tiles }

// Rebuild re-derives the tile set from the current configuration. On
// failure the previous tiles are kept, marked stale, and the error is
// returned.
func (f *Frame) Rebuild() error {
	ts, err := Build(&f.cfg, f.opts...)
	if err != nil {
		f.tiles.Invalidate()
		return err
	}
	f.tiles = *ts
	return nil
}

// MarshalBinary serializes the configuration and tile set as one
// submission image. It fails with ErrStale unless the tile set was
// rebuilt after the last mutation.
func (f *Frame) MarshalBinary() ([]byte, error) {
	if !f.tiles.Valid() {
		return nil, ErrStale
	}
	return Marshal(&f.cfg, &f.tiles)
}

// Submitted acknowledges that the device accepted the frame: all
// dirty masks are cleared. The tile set stays valid; only further
// configuration changes make it stale again.
func (f *Frame) Submitted() {
	f.cfg.ClearDirtyAll()
}
