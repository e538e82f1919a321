package ispbe

// Byte alignment requirements imposed by the hardware on buffer rows.
const (
	// InputAlign is the byte alignment required for uncompressed inputs.
	InputAlign = 4

	// CompressedAlign is the byte alignment required for compressed inputs.
	CompressedAlign = 8

	// OutputMinAlign is the minimum byte alignment required for outputs.
	OutputMinAlign = 16

	// OutputMaxAlign is the preferred byte alignment for outputs.
	OutputMaxAlign = 64
)

// NumOutputBranches is the number of independent output branches the
// RGB stage can feed. Branch-indexed blocks (CSC, downscale, resample,
// output formatting) have one record per branch.
const NumOutputBranches = 2

// HOGOutputBranch is the output branch that feeds the
// histogram-of-gradients block.
const HOGOutputBranch = 1

// Format is a packed 32-bit image format code. It describes the memory
// layout of a buffer: sample width, plane organisation, chroma
// subsampling and compression. The code travels to the hardware as an
// opaque u32 inside [ImageFormat]; the query methods below decode the
// fields the tiling builder needs for address arithmetic.
type Format uint32

// Bits per sample.
const (
	FormatBPS8    Format = 0x00000000
	FormatBPS10   Format = 0x00000001
	FormatBPS12   Format = 0x00000002
	FormatBPS16   Format = 0x00000003
	formatBPSMask Format = 0x00000003
)

// Plane organisation.
const (
	FormatInterleaved   Format = 0x00000000
	FormatSemiPlanar    Format = 0x00000010
	FormatPlanar        Format = 0x00000020
	formatPlanarityMask Format = 0x00000030
	FormatThreeChannel  Format = 0x00000040
)

// Chroma subsampling.
const (
	FormatSampling444  Format = 0x00000000
	FormatSampling422  Format = 0x00000100
	FormatSampling420  Format = 0x00000200
	formatSamplingMask Format = 0x00000300
)

// Compression. Compressed buffers store 8 bits per sample and require
// [CompressedAlign] row alignment.
const (
	FormatCompressionMode1 Format = 0x01000000
	FormatCompressionMode2 Format = 0x02000000
	FormatCompressionMode3 Format = 0x03000000
	formatCompressionMask  Format = 0x03000000
)

// BitsPerSample returns the storage width of one sample: 8, 10, 12
// or 16 bits. Compressed formats always store 8 bits per sample.
func (f Format) BitsPerSample() int {
	if f.Compressed() {
		return 8
	}
	switch f & formatBPSMask {
	case FormatBPS10:
		return 10
	case FormatBPS12:
		return 12
	case FormatBPS16:
		return 16
	default:
		return 8
	}
}

// BytesPerSample returns the bytes occupied by one stored sample:
// 1 for 8-bit (and compressed) formats, 2 otherwise. Samples wider
// than 8 bits are stored in 16-bit containers.
func (f Format) BytesPerSample() int {
	if f.BitsPerSample() > 8 {
		return 2
	}
	return 1
}

// BytesPerPixel returns the bytes occupied by one plane-0 pixel.
// Interleaved three-channel formats pack all channels into plane 0.
func (f Format) BytesPerPixel() int {
	bpp := f.BytesPerSample()
	if f&FormatThreeChannel != 0 && f&formatPlanarityMask == FormatInterleaved {
		bpp *= 3
	}
	return bpp
}

// Compressed reports whether the format uses one of the compression
// modes.
func (f Format) Compressed() bool {
	return f&formatCompressionMask != 0
}

// Sampling returns the chroma subsampling field of the format.
func (f Format) Sampling() Format {
	return f & formatSamplingMask
}

// Align returns the row byte alignment the hardware requires for a
// buffer of this format on the input side.
func (f Format) Align() int {
	if f.Compressed() {
		return CompressedAlign
	}
	return InputAlign
}

// ImageFormat describes the geometry and memory layout of one image
// buffer. Planar and semi-planar formats carry a second stride for the
// chroma plane(s).
type ImageFormat struct {
	Width   uint16 // size in pixels
	Height  uint16
	Format  Format
	Stride  int32 // plane 0 row stride in bytes
	Stride2 int32 // plane 1/2 row stride in bytes, zero when single-plane
}

// CompressConfig configures one of the lossless compression encoders
// (TDN and stitch write-back paths).
type CompressConfig struct {
	Offset uint16 // value subtracted from incoming data
	Pad    uint8
	Mode   uint8 // 1 companding, 2 delta, 3 combined
}

// DecompressConfig configures one of the decompression decoders
// (main, TDN and stitch read paths).
type DecompressConfig struct {
	Offset uint16 // value added to reconstructed data
	Pad    uint8
	Mode   uint8 // must match the mode the data was compressed with
}

// BlackLevelConfig holds the per-channel black levels applied by the
// black-level-adjust block.
type BlackLevelConfig struct {
	LevelR      uint16
	LevelGR     uint16
	LevelGB     uint16
	LevelB      uint16
	OutputLevel uint16
	Pad         [2]uint8
}

// WhiteBalanceConfig holds the white-balance gains, in Q4.12.
type WhiteBalanceConfig struct {
	GainR uint16
	GainG uint16
	GainB uint16
	Pad   [2]uint8
}

// BayerOrder identifies the colour of the top-left pixel of the Bayer
// mosaic.
type BayerOrder uint8

// Bayer orders.
const (
	BayerOrderRGGB      BayerOrder = 0
	BayerOrderGBRG      BayerOrder = 1
	BayerOrderBGGR      BayerOrder = 2
	BayerOrderGRBG      BayerOrder = 3
	BayerOrderGreyscale BayerOrder = 128
)

// BufferAddr is one 64-bit physical buffer address split into two
// 32-bit words, low word first, as the hardware consumes it.
type BufferAddr [2]uint32

// Set stores a 64-bit address into the low/high pair.
func (a *BufferAddr) Set(addr uint64) {
	a[0] = uint32(addr)
	a[1] = uint32(addr >> 32)
}

// Addr reassembles the 64-bit address from the low/high pair.
func (a BufferAddr) Addr() uint64 {
	return uint64(a[0]) | uint64(a[1])<<32
}

// InputBuffer holds the input image base addresses, one per plane.
// Unused planes stay zero-filled.
type InputBuffer struct {
	Addr [3]BufferAddr
}

// OutputBuffer holds one output branch's base addresses, one per
// plane. Unused planes stay zero-filled.
type OutputBuffer struct {
	Addr [3]BufferAddr
}

// AuxBuffer holds the base address of a single-plane auxiliary buffer
// (temporal-denoise input/output, stitch input/output, HOG output).
type AuxBuffer struct {
	Addr BufferAddr
}
