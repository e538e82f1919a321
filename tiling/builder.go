package tiling

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ispbe"
)

// Build errors. All are deterministic functions of the configuration:
// retrying an unchanged build yields the same error.
var (
	// ErrTooManyTiles reports that the required partition would exceed
	// MaxTiles, or that the scaled outputs cannot sustain the required
	// tile count without violating the minimum tile size.
	ErrTooManyTiles = errors.New("tiling: partition exceeds tile capacity")

	// ErrGeometry reports a geometrically inconsistent configuration,
	// such as a crop window outside the input or a scaled size the
	// configured scale factor cannot produce.
	ErrGeometry = errors.New("tiling: inconsistent geometry")

	// ErrAlignment reports a rectangle that cannot meet its required
	// byte alignment.
	ErrAlignment = errors.New("tiling: alignment violation")
)

// Default bound on tile size, set by the depth of the hardware line
// stores.
const (
	DefaultMaxTileWidth  = 640
	DefaultMaxTileHeight = 640
)

// hogCellBytes is the output footprint of one HOGCellSize x
// HOGCellSize cell.
const hogCellBytes = 8

// phaseMask extracts the fractional Q4.12 part of a position.
const phaseMask = 1<<ispbe.ScalePrecision - 1

// Option configures a Build call.
type Option func(*options)

type options struct {
	maxTileWidth  int
	maxTileHeight int
}

func defaultOptions() options {
	return options{
		maxTileWidth:  DefaultMaxTileWidth,
		maxTileHeight: DefaultMaxTileHeight,
	}
}

// WithMaxTileSize bounds the input window of every tile. Use it when
// targeting hardware with shallower line stores than the defaults
// assume. Values below the minimum tile size are rejected by Build.
func WithMaxTileSize(w, h int) Option {
	return func(o *options) {
		o.maxTileWidth = w
		o.maxTileHeight = h
	}
}

// branchGeom is the derived geometry of one output branch.
type branchGeom struct {
	enabled   bool
	dsEnabled bool
	rsEnabled bool

	dsW, dsH   int // downscale output size; region size when disabled
	outW, outH int // final output size

	dsFactorH, dsFactorV fixed.Int52_12
	rsFactorH, rsFactorV fixed.Int52_12

	// Domain boundary maps, each nx+1 (or ny+1) entries.
	dsBX, dsBY   []int
	outBX, outBY []int

	outBPP int
	ssH    uint // chroma subsample shifts for plane-2 addressing
	ssV    uint
}

// geom is the full derived frame geometry a Build works from.
type geom struct {
	cfg *ispbe.Config

	regionX, regionY int // partitioned window origin in the input image
	w, h             int // partitioned window size

	nx, ny int
	bx, by []int // input boundaries, region-relative

	inBPP    int
	branches [ispbe.NumOutputBranches]branchGeom
}

// Build derives a tile set from the configuration. The input window
// (the crop window when cropping is enabled, the whole input
// otherwise) is partitioned exactly, with no gaps and no overlaps,
// into at most MaxTiles tiles of at least MinTileWidth x
// MinTileHeight; scaling phases are derived from absolute positions so
// they continue seamlessly across tile boundaries.
//
// Build never mutates cfg. On error no TileSet is returned and any
// previously built set is untouched.
func Build(cfg *ispbe.Config, opts ...Option) (*TileSet, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxTileWidth < MinTileWidth || o.maxTileHeight < MinTileHeight {
		return nil, fmt.Errorf("%w: max tile size %dx%d below minimum %dx%d",
			ErrGeometry, o.maxTileWidth, o.maxTileHeight, MinTileWidth, MinTileHeight)
	}

	g, err := deriveGeometry(cfg, o)
	if err != nil {
		return nil, err
	}

	ts := &TileSet{}
	for j := 0; j < g.ny; j++ {
		for i := 0; i < g.nx; i++ {
			g.fillTile(&ts.tiles[ts.count], i, j)
			ts.count++
		}
	}
	ts.valid = true

	ispbe.Logger().Debug("tiling: built tile set",
		"cols", g.nx, "rows", g.ny, "tiles", ts.count,
		"region", fmt.Sprintf("%dx%d+%d+%d", g.w, g.h, g.regionX, g.regionY))
	return ts, nil
}

func deriveGeometry(cfg *ispbe.Config, o options) (*geom, error) {
	fw, fh := int(cfg.InputFormat.Width), int(cfg.InputFormat.Height)
	if fw == 0 || fh == 0 {
		return nil, fmt.Errorf("%w: input format is %dx%d", ErrGeometry, fw, fh)
	}

	g := &geom{cfg: cfg, w: fw, h: fh}
	if cfg.Crop.Width != 0 && cfg.Crop.Height != 0 {
		g.regionX = int(cfg.Crop.OffsetX)
		g.regionY = int(cfg.Crop.OffsetY)
		g.w = int(cfg.Crop.Width)
		g.h = int(cfg.Crop.Height)
		if g.regionX+g.w > fw || g.regionY+g.h > fh {
			return nil, fmt.Errorf("%w: crop %dx%d+%d+%d outside input %dx%d",
				ErrGeometry, g.w, g.h, g.regionX, g.regionY, fw, fh)
		}
	}
	if g.w < MinTileWidth || g.h < MinTileHeight {
		return nil, fmt.Errorf("%w: frame window %dx%d below minimum tile size",
			ErrGeometry, g.w, g.h)
	}

	g.inBPP = cfg.InputFormat.Format.BytesPerPixel()
	inAlignBytes := cfg.InputFormat.Format.Align()
	inAlignPix := alignPixels(inAlignBytes, g.inBPP)
	if inAlignPix < 2 {
		// Bayer mosaic period.
		inAlignPix = 2
	}
	if g.regionX*g.inBPP%inAlignBytes != 0 {
		return nil, fmt.Errorf("%w: crop x offset %d breaks %d-byte input alignment",
			ErrAlignment, g.regionX, inAlignBytes)
	}

	g.nx = ceilDiv(g.w, o.maxTileWidth)
	g.ny = ceilDiv(g.h, o.maxTileHeight)
	if g.nx*g.ny > MaxTiles {
		return nil, fmt.Errorf("%w: %dx%d window needs %dx%d tiles of at most %dx%d",
			ErrTooManyTiles, g.w, g.h, g.nx, g.ny, o.maxTileWidth, o.maxTileHeight)
	}

	for b := 0; b < ispbe.NumOutputBranches; b++ {
		if err := g.deriveBranch(b); err != nil {
			return nil, err
		}
	}

	var err error
	g.bx, err = boundaries(g.w, g.nx, inAlignPix, MinTileWidth)
	if err != nil {
		return nil, err
	}
	g.by, err = boundaries(g.h, g.ny, 2, MinTileHeight)
	if err != nil {
		return nil, err
	}

	for b := range g.branches {
		if err := g.branchBoundaries(b); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// deriveBranch resolves one output branch's scaled sizes and factors
// and checks them against the tile grid.
func (g *geom) deriveBranch(b int) error {
	br := &g.branches[b]
	br.enabled = g.cfg.BranchEnabled(ispbe.BlockOutput, b)
	if !br.enabled {
		return nil
	}
	br.dsEnabled = g.cfg.BranchEnabled(ispbe.BlockDownscale, b)
	br.rsEnabled = g.cfg.BranchEnabled(ispbe.BlockResample, b)

	br.dsW, br.dsH = g.w, g.h
	if br.dsEnabled {
		ds := &g.cfg.Downscale[b]
		ex := &g.cfg.DownscaleExtra[b]
		br.dsW, br.dsH = int(ex.ScaledWidth), int(ex.ScaledHeight)
		br.dsFactorH = fixed.Int52_12(ds.ScaleFactorH)
		br.dsFactorV = fixed.Int52_12(ds.ScaleFactorV)
		if err := checkScale(b, "downscale", br.dsW, br.dsH, g.w, g.h, br.dsFactorH, br.dsFactorV); err != nil {
			return err
		}
	}

	br.outW, br.outH = br.dsW, br.dsH
	if br.rsEnabled {
		rs := &g.cfg.Resample[b]
		ex := &g.cfg.ResampleExtra[b]
		br.outW, br.outH = int(ex.ScaledWidth), int(ex.ScaledHeight)
		br.rsFactorH = fixed.Int52_12(rs.ScaleFactorH)
		br.rsFactorV = fixed.Int52_12(rs.ScaleFactorV)
		if err := checkScale(b, "resample", br.outW, br.outH, br.dsW, br.dsH, br.rsFactorH, br.rsFactorV); err != nil {
			return err
		}
	}

	of := &g.cfg.OutputFormat[b].Image
	br.outBPP = of.Format.BytesPerPixel()
	switch of.Format.Sampling() {
	case ispbe.FormatSampling420:
		br.ssH, br.ssV = 1, 1
	case ispbe.FormatSampling422:
		br.ssH, br.ssV = 1, 0
	}

	// Every stage of the pipe must sustain the tile grid at the
	// minimum tile size; the scaled outputs are the binding ones.
	maxCols := min(br.dsW/MinTileWidth, br.outW/MinTileWidth)
	maxRows := min(br.dsH/MinTileHeight, br.outH/MinTileHeight)
	if g.nx > maxCols || g.ny > maxRows {
		return fmt.Errorf("%w: branch %d output %dx%d cannot sustain %dx%d tiles of at least %dx%d",
			ErrTooManyTiles, b, br.outW, br.outH, g.nx, g.ny, MinTileWidth, MinTileHeight)
	}
	return nil
}

// checkScale verifies that producing out samples at the configured
// factor stays within the in extent.
func checkScale(b int, stage string, outW, outH, inW, inH int, fh, fv fixed.Int52_12) error {
	if outW == 0 || outH == 0 || fh == 0 || fv == 0 {
		return fmt.Errorf("%w: branch %d %s enabled with zero size or factor",
			ErrGeometry, b, stage)
	}
	spanW := (fixed.Int52_12(outW-1) * fh).Floor()
	spanH := (fixed.Int52_12(outH-1) * fv).Floor()
	if spanW >= inW || spanH >= inH {
		return fmt.Errorf("%w: branch %d %s output %dx%d exceeds %dx%d at configured factors",
			ErrGeometry, b, stage, outW, outH, inW, inH)
	}
	return nil
}

// branchBoundaries lays out one branch's intermediate and output
// partitions against the input grid.
func (g *geom) branchBoundaries(b int) error {
	br := &g.branches[b]
	if !br.enabled {
		return nil
	}
	var err error
	br.dsBX, err = boundaries(br.dsW, g.nx, 1, MinTileWidth)
	if err != nil {
		return err
	}
	br.dsBY, err = boundaries(br.dsH, g.ny, 1, MinTileHeight)
	if err != nil {
		return err
	}

	vAlign := 1 << br.ssV
	br.outBX, err = g.alignedOutput(b, br.outW, g.nx, MinTileWidth)
	if err != nil {
		return err
	}
	br.outBY, err = boundaries(br.outH, g.ny, vAlign, MinTileHeight)
	if err != nil {
		return err
	}
	return nil
}

// alignedOutput partitions a branch's output width preferring the
// 64-byte output alignment and falling back to the 16-byte minimum
// when the preferred one would squeeze a tile below the minimum
// width.
func (g *geom) alignedOutput(b, outW, n, minSize int) ([]int, error) {
	br := &g.branches[b]
	prefer := alignPixels(ispbe.OutputMaxAlign, br.outBPP)
	if bx, err := boundaries(outW, n, prefer, minSize); err == nil {
		return bx, nil
	}
	ispbe.Logger().Warn("tiling: falling back to minimum output alignment",
		"branch", b, "width", outW, "cols", n)
	minAlign := alignPixels(ispbe.OutputMinAlign, br.outBPP)
	bx, err := boundaries(outW, n, minAlign, minSize)
	if err != nil {
		return nil, fmt.Errorf("%w: branch %d output width %d in %d columns",
			ErrAlignment, b, outW, n)
	}
	return bx, nil
}

// boundaries splits total into n spans of near-equal size. Interior
// boundaries are aligned down to align; every span must reach
// minSize.
func boundaries(total, n, align, minSize int) ([]int, error) {
	bs := make([]int, n+1)
	bs[n] = total
	for i := 1; i < n; i++ {
		bs[i] = alignDown(total*i/n, align)
	}
	for i := 0; i < n; i++ {
		if bs[i+1]-bs[i] < minSize {
			return nil, fmt.Errorf("%w: span %d of %d is %d, below minimum %d",
				ErrGeometry, i, n, bs[i+1]-bs[i], minSize)
		}
	}
	return bs, nil
}

// fillTile populates the descriptor for grid cell (i, j).
func (g *geom) fillTile(t *Tile, i, j int) {
	cfg := g.cfg

	if i == 0 {
		t.Edge |= EdgeLeft
	}
	if i == g.nx-1 {
		t.Edge |= EdgeRight
	}
	if j == 0 {
		t.Edge |= EdgeTop
	}
	if j == g.ny-1 {
		t.Edge |= EdgeBottom
	}

	x, y := g.bx[i], g.by[j]
	w, h := g.bx[i+1]-x, g.by[j+1]-y
	t.InputOffsetX = uint16(g.regionX + x)
	t.InputOffsetY = uint16(g.regionY + y)
	t.InputWidth = uint16(w)
	t.InputHeight = uint16(h)

	in := &cfg.InputFormat
	t.InputAddrOffset = rowOffset(g.regionY+y, int(in.Stride), g.regionX+x, g.inBPP)
	if in.Stride2 != 0 {
		t.InputAddrOffset2 = rowOffset(g.regionY+y, int(in.Stride2), g.regionX+x, g.inBPP)
	}

	// Auxiliary buffers cover the partitioned window, so their
	// offsets are region-relative.
	if cfg.Enabled(ispbe.BlockTDNInput) {
		f := &cfg.TDNInputFormat
		t.TDNInputAddrOffset = rowOffset(y, int(f.Stride), x, f.Format.BytesPerPixel())
	}
	if cfg.Enabled(ispbe.BlockTDNOutput) {
		f := &cfg.TDNOutputFormat
		t.TDNOutputAddrOffset = rowOffset(y, int(f.Stride), x, f.Format.BytesPerPixel())
	}
	if cfg.Enabled(ispbe.BlockStitchInput) {
		f := &cfg.StitchInputFormat
		t.StitchInputAddrOffset = rowOffset(y, int(f.Stride), x, f.Format.BytesPerPixel())
	}
	if cfg.Enabled(ispbe.BlockStitchOutput) {
		f := &cfg.StitchOutputFormat
		t.StitchOutputAddrOffset = rowOffset(y, int(f.Stride), x, f.Format.BytesPerPixel())
	}

	if cfg.Enabled(ispbe.BlockLSC) {
		t.LSCGridOffsetX = uint32(x+int(cfg.LSCExtra.OffsetX)) * uint32(cfg.LSC.GridStepX)
		t.LSCGridOffsetY = uint32(y+int(cfg.LSCExtra.OffsetY)) * uint32(cfg.LSC.GridStepY)
	}
	if cfg.Enabled(ispbe.BlockCAC) {
		t.CACGridOffsetX = uint32(x+int(cfg.CACExtra.OffsetX)) * uint32(cfg.CAC.GridStepX)
		t.CACGridOffsetY = uint32(y+int(cfg.CACExtra.OffsetY)) * uint32(cfg.CAC.GridStepY)
	}

	for b := 0; b < ispbe.NumOutputBranches; b++ {
		g.fillBranch(t, b, i, j)
	}
}

// fillBranch populates one output branch's projection onto tile
// (i, j).
func (g *geom) fillBranch(t *Tile, b, i, j int) {
	br := &g.branches[b]
	if !br.enabled {
		return
	}
	cfg := g.cfg

	// The global crop window is folded into the partition itself, so
	// every tile feeds its whole window into the branch.
	t.CropXStart[b] = 0
	t.CropXEnd[b] = t.InputWidth
	t.CropYStart[b] = 0
	t.CropYEnd[b] = t.InputHeight

	if br.dsEnabled {
		for p := 0; p < 3; p++ {
			t.DownscalePhaseX[3*b+p] = phase(br.dsBX[i], br.dsFactorH, 0)
			t.DownscalePhaseY[3*b+p] = phase(br.dsBY[j], br.dsFactorV, 0)
		}
	}
	if br.rsEnabled {
		t.ResampleInWidth[b] = uint16(br.dsBX[i+1] - br.dsBX[i])
		t.ResampleInHeight[b] = uint16(br.dsBY[j+1] - br.dsBY[j])
		ex := &cfg.ResampleExtra[b]
		for p := 0; p < 3; p++ {
			t.ResamplePhaseX[3*b+p] = phase(br.outBX[i], br.rsFactorH, ex.InitialPhaseH[p])
			t.ResamplePhaseY[3*b+p] = phase(br.outBY[j], br.rsFactorV, ex.InitialPhaseV[p])
		}
	}

	ox, oy := br.outBX[i], br.outBY[j]
	t.OutputOffsetX[b] = uint16(ox)
	t.OutputOffsetY[b] = uint16(oy)
	t.OutputWidth[b] = uint16(br.outBX[i+1] - ox)
	t.OutputHeight[b] = uint16(br.outBY[j+1] - oy)

	of := &cfg.OutputFormat[b].Image
	t.OutputAddrOffset[b] = rowOffset(oy, int(of.Stride), ox, br.outBPP)
	if of.Stride2 != 0 {
		t.OutputAddrOffset2[b] = rowOffset(oy>>br.ssV, int(of.Stride2), ox>>br.ssH, of.Format.BytesPerSample())
	}

	if b == ispbe.HOGOutputBranch && cfg.Enabled(ispbe.BlockHOG) {
		t.HOGAddrOffset = rowOffset(oy/ispbe.HOGCellSize, int(cfg.HOG.Stride), ox/ispbe.HOGCellSize, hogCellBytes)
	}
}

// phase returns the fractional Q4.12 source position of output sample
// pos at the given scale factor, offset by an initial phase. Deriving
// it from the absolute position keeps phases continuous across tile
// seams.
func phase(pos int, factor fixed.Int52_12, initial int16) uint16 {
	p := fixed.Int52_12(pos)*factor + fixed.Int52_12(initial)
	return uint16(p & phaseMask)
}

// rowOffset is the byte offset of pixel (x, y) in a buffer with the
// given row stride and bytes per pixel.
func rowOffset(y, stride, x, bpp int) uint32 {
	return uint32(y*stride + x*bpp)
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func alignDown(v, align int) int {
	if align <= 1 {
		return v
	}
	return v - v%align
}

// alignPixels converts a byte alignment into the smallest pixel
// alignment that lands rows on it.
func alignPixels(alignBytes, bpp int) int {
	g := gcd(alignBytes, bpp)
	return alignBytes / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
