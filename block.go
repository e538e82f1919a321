package ispbe

import "fmt"

// Block identifies one configurable entity of the pipeline: a
// processing block in the Bayer or RGB domain, or one of the extra
// dirty-tracked settings (global config, sharpen/false-colour
// combiner, crop window).
//
// The enumeration is closed. Passing a value outside it to any Config
// method is a programmer error and panics.
type Block int

// Bayer-domain blocks.
const (
	BlockInput Block = iota
	BlockDecompress
	BlockDPC
	BlockGEQ
	BlockTDNInput
	BlockTDNDecompress
	BlockTDN
	BlockTDNCompress
	BlockTDNOutput
	BlockSDN
	BlockBLC
	BlockStitchInput
	BlockStitchDecompress
	BlockStitch
	BlockStitchCompress
	BlockStitchOutput
	BlockWBG
	BlockCDN
	BlockLSC
	BlockTonemap
	BlockCAC
	BlockDebin
	BlockDemosaic
)

// RGB-domain blocks. CSC, downscale, resample and output are
// branch-indexed: they have one enable/dirty bit per output branch,
// at base << branch.
const (
	BlockRGBInput Block = iota + 23
	BlockCCM
	BlockSatControl
	BlockYCbCr
	BlockFalseColour
	BlockSharpen
	BlockYCbCrInverse
	BlockGamma
	BlockCSC
	BlockDownscale
	BlockResample
	BlockOutput
	BlockHOG
)

// Extra dirty-tracked settings. These have no enable bit: they are
// targets for Config.MarkDirty only.
const (
	BlockGlobal Block = iota + 36
	BlockShFcCombine
	BlockCrop
)

const numBlocks = 39

// Domain classifies a Block into the half of the pipeline it belongs
// to, or DomainExtra for the non-block-indexed settings.
type Domain int

// Domains.
const (
	DomainBayer Domain = iota
	DomainRGB
	DomainExtra
)

// String returns the domain name.
func (d Domain) String() string {
	switch d {
	case DomainBayer:
		return "Bayer"
	case DomainRGB:
		return "RGB"
	case DomainExtra:
		return "Extra"
	default:
		return "Unknown"
	}
}

// Domain returns the domain the block belongs to.
func (b Block) Domain() Domain {
	switch {
	case b >= BlockInput && b <= BlockDemosaic:
		return DomainBayer
	case b >= BlockRGBInput && b <= BlockHOG:
		return DomainRGB
	case b >= BlockGlobal && b <= BlockCrop:
		return DomainExtra
	default:
		panic(fmt.Sprintf("ispbe: invalid block reference %d", int(b)))
	}
}

// Branched reports whether the block has one enable/dirty bit per
// output branch.
func (b Block) Branched() bool {
	switch b {
	case BlockCSC, BlockDownscale, BlockResample, BlockOutput:
		return true
	}
	return false
}

// bayerBit returns the enable/dirty bit for a Bayer-domain block.
func (b Block) bayerBit() BayerEnable {
	switch b {
	case BlockInput:
		return BayerEnableInput
	case BlockDecompress:
		return BayerEnableDecompress
	case BlockDPC:
		return BayerEnableDPC
	case BlockGEQ:
		return BayerEnableGEQ
	case BlockTDNInput:
		return BayerEnableTDNInput
	case BlockTDNDecompress:
		return BayerEnableTDNDecompress
	case BlockTDN:
		return BayerEnableTDN
	case BlockTDNCompress:
		return BayerEnableTDNCompress
	case BlockTDNOutput:
		return BayerEnableTDNOutput
	case BlockSDN:
		return BayerEnableSDN
	case BlockBLC:
		return BayerEnableBLC
	case BlockStitchInput:
		return BayerEnableStitchInput
	case BlockStitchDecompress:
		return BayerEnableStitchDecompress
	case BlockStitch:
		return BayerEnableStitch
	case BlockStitchCompress:
		return BayerEnableStitchCompress
	case BlockStitchOutput:
		return BayerEnableStitchOutput
	case BlockWBG:
		return BayerEnableWBG
	case BlockCDN:
		return BayerEnableCDN
	case BlockLSC:
		return BayerEnableLSC
	case BlockTonemap:
		return BayerEnableTonemap
	case BlockCAC:
		return BayerEnableCAC
	case BlockDebin:
		return BayerEnableDebin
	case BlockDemosaic:
		return BayerEnableDemosaic
	default:
		panic(fmt.Sprintf("ispbe: invalid Bayer block reference %d", int(b)))
	}
}

// rgbBit returns the branch-0 enable/dirty bit for an RGB-domain
// block.
func (b Block) rgbBit() RGBEnable {
	switch b {
	case BlockRGBInput:
		return RGBEnableInput
	case BlockCCM:
		return RGBEnableCCM
	case BlockSatControl:
		return RGBEnableSatControl
	case BlockYCbCr:
		return RGBEnableYCbCr
	case BlockFalseColour:
		return RGBEnableFalseColour
	case BlockSharpen:
		return RGBEnableSharpen
	case BlockYCbCrInverse:
		return RGBEnableYCbCrInverse
	case BlockGamma:
		return RGBEnableGamma
	case BlockCSC:
		return RGBEnableCSC0
	case BlockDownscale:
		return RGBEnableDownscale0
	case BlockResample:
		return RGBEnableResample0
	case BlockOutput:
		return RGBEnableOutput0
	case BlockHOG:
		return RGBEnableHOG
	default:
		panic(fmt.Sprintf("ispbe: invalid RGB block reference %d", int(b)))
	}
}

// extraBit returns the dirty bit for an extra setting.
func (b Block) extraBit() Dirty {
	switch b {
	case BlockGlobal:
		return DirtyGlobal
	case BlockShFcCombine:
		return DirtyShFcCombine
	case BlockCrop:
		return DirtyCrop
	default:
		panic(fmt.Sprintf("ispbe: invalid extra block reference %d", int(b)))
	}
}

var blockNames = [numBlocks]string{
	"Input", "Decompress", "DPC", "GEQ", "TDNInput", "TDNDecompress",
	"TDN", "TDNCompress", "TDNOutput", "SDN", "BLC", "StitchInput",
	"StitchDecompress", "Stitch", "StitchCompress", "StitchOutput",
	"WBG", "CDN", "LSC", "Tonemap", "CAC", "Debin", "Demosaic",
	"RGBInput", "CCM", "SatControl", "YCbCr", "FalseColour", "Sharpen",
	"YCbCrInverse", "Gamma", "CSC", "Downscale", "Resample", "Output",
	"HOG", "Global", "ShFcCombine", "Crop",
}

// String returns the block name.
func (b Block) String() string {
	if b < 0 || int(b) >= numBlocks {
		return "Unknown"
	}
	return blockNames[b]
}
