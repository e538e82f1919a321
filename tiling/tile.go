// Package tiling derives per-tile geometry descriptors from a back-end
// configuration.
//
// The hardware processes a frame in up to [MaxTiles] rectangular tiles
// because its internal line stores are bounded. Every tile carries a
// compact projection of the pipeline's spatial parameters onto its
// sub-region: input window, auxiliary buffer offsets, correction-grid
// positions and, per output branch, crop, scaling phases and output
// placement. [Build] produces a [TileSet] whose input windows
// partition the frame exactly and whose phases continue seamlessly
// across tile boundaries.
//
// A TileSet is only meaningful for the exact configuration it was
// derived from. [Frame] couples the two and enforces the
// rebuild-before-submit protocol.
package tiling

import (
	"strings"

	"github.com/gogpu/ispbe"
)

// Hardware tiling limits.
const (
	// MaxTiles is the tile descriptor capacity of one submission.
	MaxTiles = 64

	// MinTileWidth is the minimum tile width anywhere in the pipeline.
	MinTileWidth = 16

	// MinTileHeight is the minimum tile height anywhere in the pipeline.
	MinTileHeight = 16

	// TileBytes is the serialized size of one tile descriptor.
	TileBytes = 160
)

// Edge flags which of a tile's sides touch the frame boundary. Blocks
// with spatial support select their boundary-handling behaviour from
// these.
type Edge uint8

// Edge flags, any combination.
const (
	EdgeLeft   Edge = 1 << 0
	EdgeRight  Edge = 1 << 1
	EdgeTop    Edge = 1 << 2
	EdgeBottom Edge = 1 << 3
)

// String lists the set edge flags, pipe-separated.
func (e Edge) String() string {
	var b strings.Builder
	for _, n := range []struct {
		bit  Edge
		name string
	}{
		{EdgeLeft, "Left"},
		{EdgeRight, "Right"},
		{EdgeTop, "Top"},
		{EdgeBottom, "Bottom"},
	} {
		if e&n.bit != 0 {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(n.name)
		}
	}
	if b.Len() == 0 {
		return "None"
	}
	return b.String()
}

// Tile is one per-tile geometry descriptor, laid out exactly as the
// hardware consumes it (TileBytes bytes, little endian). All address
// offsets are relative to the frame's base buffer addresses, never
// absolute. Plane-and-branch indexed phase arrays order planes first:
// index 3*branch + plane.
type Tile struct {
	Edge Edge
	Pad0 [3]uint8

	InputAddrOffset  uint32
	InputAddrOffset2 uint32
	InputOffsetX     uint16
	InputOffsetY     uint16
	InputWidth       uint16
	InputHeight      uint16

	TDNInputAddrOffset     uint32
	TDNOutputAddrOffset    uint32
	StitchInputAddrOffset  uint32
	StitchOutputAddrOffset uint32

	LSCGridOffsetX uint32
	LSCGridOffsetY uint32

	CACGridOffsetX uint32
	CACGridOffsetY uint32

	CropXStart [ispbe.NumOutputBranches]uint16
	CropXEnd   [ispbe.NumOutputBranches]uint16
	CropYStart [ispbe.NumOutputBranches]uint16
	CropYEnd   [ispbe.NumOutputBranches]uint16

	DownscalePhaseX [3 * ispbe.NumOutputBranches]uint16
	DownscalePhaseY [3 * ispbe.NumOutputBranches]uint16

	ResampleInWidth  [ispbe.NumOutputBranches]uint16
	ResampleInHeight [ispbe.NumOutputBranches]uint16

	ResamplePhaseX [3 * ispbe.NumOutputBranches]uint16
	ResamplePhaseY [3 * ispbe.NumOutputBranches]uint16

	OutputOffsetX [ispbe.NumOutputBranches]uint16
	OutputOffsetY [ispbe.NumOutputBranches]uint16
	OutputWidth   [ispbe.NumOutputBranches]uint16
	OutputHeight  [ispbe.NumOutputBranches]uint16

	OutputAddrOffset  [ispbe.NumOutputBranches]uint32
	OutputAddrOffset2 [ispbe.NumOutputBranches]uint32

	HOGAddrOffset uint32
}

// TileSet is a bounded array of tile descriptors plus a live count.
// Entries beyond Count are zero-filled and unused.
//
// A TileSet is either valid (derived from the current configuration,
// safe to submit) or stale (the configuration changed since
// derivation). Build returns valid sets; Invalidate moves a set to
// stale.
type TileSet struct {
	tiles [MaxTiles]Tile
	count int
	valid bool
}

// Count returns the number of live tiles, in [1, MaxTiles] for a set
// produced by Build.
func (ts *TileSet) Count() int { return ts.count }

// Tiles returns the live tile descriptors. The returned slice aliases
// the set's storage; it stays readable after Invalidate but must not
// be submitted while the set is stale.
func (ts *TileSet) Tiles() []Tile { return ts.tiles[:ts.count] }

// Valid reports whether the set still matches the configuration it
// was derived from.
func (ts *TileSet) Valid() bool { return ts.valid }

// Invalidate marks the set stale. Called by whoever owns both the set
// and its configuration whenever the configuration mutates.
func (ts *TileSet) Invalidate() { ts.valid = false }
