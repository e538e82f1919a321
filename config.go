package ispbe

import "fmt"

// Config is the complete register image of the back end plus the
// non-register fields the tiling builder consumes. Field order matches
// the hardware layout; [Config.MarshalBinary] serializes the fields in
// declaration order.
//
// Config is value data. Copying it with = is a deep copy: every field
// is a fixed-size array or scalar.
type Config struct {
	// I/O configuration.
	InputBuffer        InputBuffer
	TDNInputBuffer     AuxBuffer
	StitchInputBuffer  AuxBuffer
	TDNOutputBuffer    AuxBuffer
	StitchOutputBuffer AuxBuffer
	OutputBuffer       [NumOutputBranches]OutputBuffer
	HOGBuffer          AuxBuffer

	// Processing configuration.
	Global             GlobalConfig
	InputFormat        ImageFormat
	Decompress         DecompressConfig
	DPC                DPCConfig
	GEQ                GEQConfig
	TDNInputFormat     ImageFormat
	TDNDecompress      DecompressConfig
	TDN                TDNConfig
	TDNCompress        CompressConfig
	TDNOutputFormat    ImageFormat
	SDN                SDNConfig
	BlackLevel         BlackLevelConfig
	StitchCompress     CompressConfig
	StitchOutputFormat ImageFormat
	StitchInputFormat  ImageFormat
	StitchDecompress   DecompressConfig
	Stitch             StitchConfig
	LSC                LSCConfig
	WhiteBalance       WhiteBalanceConfig
	CDN                CDNConfig
	CAC                CACConfig
	Debin              DebinConfig
	Tonemap            TonemapConfig
	Demosaic           DemosaicConfig
	CCM                CCMConfig
	SatControl         SatControlConfig
	YCbCr              CCMConfig
	Sharpen            SharpenConfig
	FalseColour        FalseColourConfig
	ShFcCombine        ShFcCombineConfig
	YCbCrInverse       CCMConfig
	Gamma              GammaConfig
	CSC                [NumOutputBranches]CCMConfig
	Downscale          [NumOutputBranches]DownscaleConfig
	Resample           [NumOutputBranches]ResampleConfig
	OutputFormat       [NumOutputBranches]OutputFormatConfig
	HOG                HOGConfig
	AXI                AXIConfig

	// Non-register fields, consumed by the tiling builder rather than
	// loaded into the device.
	LSCExtra       LSCExtra
	CACExtra       CACExtra
	DownscaleExtra [NumOutputBranches]DownscaleExtra
	ResampleExtra  [NumOutputBranches]ResampleExtra
	Crop           CropConfig
	HOGFormat      ImageFormat

	// Dirty masks. DirtyBayer and DirtyRGB reuse the enable bit
	// positions; DirtyExtra uses the Dirty bits.
	DirtyBayer BayerEnable
	DirtyRGB   RGBEnable
	DirtyExtra Dirty
}

// checkBranch panics unless branch addresses a valid output branch of
// the block: branched blocks accept [0, NumOutputBranches), all others
// only branch 0.
func checkBranch(b Block, branch int) {
	if branch == 0 {
		return
	}
	if !b.Branched() || branch < 0 || branch >= NumOutputBranches {
		panic(fmt.Sprintf("ispbe: block %v has no branch %d", b, branch))
	}
}

// SetEnabled sets or clears the enable bit of a block. For
// branch-indexed blocks it addresses branch 0; extra settings have no
// enable bit and are rejected as a programmer error.
//
// SetEnabled never modifies any dirty bit.
func (c *Config) SetEnabled(b Block, enabled bool) {
	c.SetBranchEnabled(b, 0, enabled)
}

// SetBranchEnabled sets or clears the enable bit of one branch of a
// branch-indexed block. The branch-i bit is the branch-0 bit shifted
// left by i.
func (c *Config) SetBranchEnabled(b Block, branch int, enabled bool) {
	checkBranch(b, branch)
	switch b.Domain() {
	case DomainBayer:
		bit := b.bayerBit()
		if enabled {
			c.Global.BayerEnables |= bit
		} else {
			c.Global.BayerEnables &^= bit
		}
	case DomainRGB:
		bit := b.rgbBit() << branch
		if enabled {
			c.Global.RGBEnables |= bit
		} else {
			c.Global.RGBEnables &^= bit
		}
	default:
		panic(fmt.Sprintf("ispbe: block %v has no enable bit", b))
	}
}

// Enabled reports whether a block (branch 0 for branch-indexed
// blocks) is enabled.
func (c *Config) Enabled(b Block) bool {
	return c.BranchEnabled(b, 0)
}

// BranchEnabled reports whether one branch of a block is enabled.
func (c *Config) BranchEnabled(b Block, branch int) bool {
	checkBranch(b, branch)
	switch b.Domain() {
	case DomainBayer:
		return c.Global.BayerEnables&b.bayerBit() != 0
	case DomainRGB:
		return c.Global.RGBEnables&(b.rgbBit()<<branch) != 0
	default:
		panic(fmt.Sprintf("ispbe: block %v has no enable bit", b))
	}
}

// MarkDirty records that a block's parameter record (branch 0 for
// branch-indexed blocks) or an extra setting changed and must be
// re-uploaded before the next frame.
//
// Dirtiness is never inferred from writes to the records: this call is
// the only source of truth. MarkDirty never modifies any enable bit.
func (c *Config) MarkDirty(b Block) {
	c.MarkBranchDirty(b, 0)
}

// MarkBranchDirty records that one branch of a branch-indexed block
// changed.
func (c *Config) MarkBranchDirty(b Block, branch int) {
	checkBranch(b, branch)
	switch b.Domain() {
	case DomainBayer:
		c.DirtyBayer |= b.bayerBit()
	case DomainRGB:
		c.DirtyRGB |= b.rgbBit() << branch
	default:
		c.DirtyExtra |= b.extraBit()
	}
}

// IsDirty reports whether a block (branch 0 for branch-indexed
// blocks) or extra setting is marked dirty.
func (c *Config) IsDirty(b Block) bool {
	return c.IsBranchDirty(b, 0)
}

// IsBranchDirty reports whether one branch of a block is marked dirty.
func (c *Config) IsBranchDirty(b Block, branch int) bool {
	checkBranch(b, branch)
	switch b.Domain() {
	case DomainBayer:
		return c.DirtyBayer&b.bayerBit() != 0
	case DomainRGB:
		return c.DirtyRGB&(b.rgbBit()<<branch) != 0
	default:
		return c.DirtyExtra&b.extraBit() != 0
	}
}

// ClearDirtyAll resets all three dirty masks. The submission layer
// calls this once the device has acknowledged a frame. Idempotent.
func (c *Config) ClearDirtyAll() {
	c.DirtyBayer = 0
	c.DirtyRGB = 0
	c.DirtyExtra = 0
}
