package ispbe

import "strings"

// BayerEnable is the Bayer-domain enable bitmask: bit i set means the
// corresponding block processes the current frame. The same bit
// positions are reused for the Bayer dirty mask.
type BayerEnable uint32

// Bayer-domain enable bits, in pipeline order.
const (
	BayerEnableInput            BayerEnable = 0x000001
	BayerEnableDecompress       BayerEnable = 0x000002
	BayerEnableDPC              BayerEnable = 0x000004
	BayerEnableGEQ              BayerEnable = 0x000008
	BayerEnableTDNInput         BayerEnable = 0x000010
	BayerEnableTDNDecompress    BayerEnable = 0x000020
	BayerEnableTDN              BayerEnable = 0x000040
	BayerEnableTDNCompress      BayerEnable = 0x000080
	BayerEnableTDNOutput        BayerEnable = 0x000100
	BayerEnableSDN              BayerEnable = 0x000200
	BayerEnableBLC              BayerEnable = 0x000400
	BayerEnableStitchInput      BayerEnable = 0x000800
	BayerEnableStitchDecompress BayerEnable = 0x001000
	BayerEnableStitch           BayerEnable = 0x002000
	BayerEnableStitchCompress   BayerEnable = 0x004000
	BayerEnableStitchOutput     BayerEnable = 0x008000
	BayerEnableWBG              BayerEnable = 0x010000
	BayerEnableCDN              BayerEnable = 0x020000
	BayerEnableLSC              BayerEnable = 0x040000
	BayerEnableTonemap          BayerEnable = 0x080000
	BayerEnableCAC              BayerEnable = 0x100000
	BayerEnableDebin            BayerEnable = 0x200000
	BayerEnableDemosaic         BayerEnable = 0x400000
)

// RGBEnable is the RGB-domain enable bitmask. The unassigned gaps in
// the bit layout are deliberate: they match the hardware register, and
// branch-indexed blocks occupy consecutive bits starting from their
// branch-0 value.
type RGBEnable uint32

// RGB-domain enable bits, in pipeline order. The skipped values
// (0x40, 0x800, 0x4000, 0x20000, 0x100000) are reserved in hardware.
const (
	RGBEnableInput        RGBEnable = 0x000001
	RGBEnableCCM          RGBEnable = 0x000002
	RGBEnableSatControl   RGBEnable = 0x000004
	RGBEnableYCbCr        RGBEnable = 0x000008
	RGBEnableFalseColour  RGBEnable = 0x000010
	RGBEnableSharpen      RGBEnable = 0x000020
	RGBEnableYCbCrInverse RGBEnable = 0x000080
	RGBEnableGamma        RGBEnable = 0x000100
	RGBEnableCSC0         RGBEnable = 0x000200
	RGBEnableCSC1         RGBEnable = 0x000400
	RGBEnableDownscale0   RGBEnable = 0x001000
	RGBEnableDownscale1   RGBEnable = 0x002000
	RGBEnableResample0    RGBEnable = 0x008000
	RGBEnableResample1    RGBEnable = 0x010000
	RGBEnableOutput0      RGBEnable = 0x040000
	RGBEnableOutput1      RGBEnable = 0x080000
	RGBEnableHOG          RGBEnable = 0x200000
)

// RGBEnableCSC returns the enable bit for the colour-space-convert
// block of the given output branch.
func RGBEnableCSC(branch int) RGBEnable { return RGBEnableCSC0 << branch }

// RGBEnableDownscale returns the enable bit for the downscale block of
// the given output branch.
func RGBEnableDownscale(branch int) RGBEnable { return RGBEnableDownscale0 << branch }

// RGBEnableResample returns the enable bit for the resample block of
// the given output branch.
func RGBEnableResample(branch int) RGBEnable { return RGBEnableResample0 << branch }

// RGBEnableOutput returns the enable bit for the output-format block
// of the given output branch.
func RGBEnableOutput(branch int) RGBEnable { return RGBEnableOutput0 << branch }

// Dirty is the "extra" dirty bitmask, covering settings that are not
// indexed by a block enable bit.
type Dirty uint32

// Extra dirty bits.
const (
	DirtyGlobal      Dirty = 0x0001
	DirtyShFcCombine Dirty = 0x0002
	DirtyCrop        Dirty = 0x0004
)

var bayerEnableNames = []struct {
	bit  BayerEnable
	name string
}{
	{BayerEnableInput, "Input"},
	{BayerEnableDecompress, "Decompress"},
	{BayerEnableDPC, "DPC"},
	{BayerEnableGEQ, "GEQ"},
	{BayerEnableTDNInput, "TDNInput"},
	{BayerEnableTDNDecompress, "TDNDecompress"},
	{BayerEnableTDN, "TDN"},
	{BayerEnableTDNCompress, "TDNCompress"},
	{BayerEnableTDNOutput, "TDNOutput"},
	{BayerEnableSDN, "SDN"},
	{BayerEnableBLC, "BLC"},
	{BayerEnableStitchInput, "StitchInput"},
	{BayerEnableStitchDecompress, "StitchDecompress"},
	{BayerEnableStitch, "Stitch"},
	{BayerEnableStitchCompress, "StitchCompress"},
	{BayerEnableStitchOutput, "StitchOutput"},
	{BayerEnableWBG, "WBG"},
	{BayerEnableCDN, "CDN"},
	{BayerEnableLSC, "LSC"},
	{BayerEnableTonemap, "Tonemap"},
	{BayerEnableCAC, "CAC"},
	{BayerEnableDebin, "Debin"},
	{BayerEnableDemosaic, "Demosaic"},
}

var rgbEnableNames = []struct {
	bit  RGBEnable
	name string
}{
	{RGBEnableInput, "Input"},
	{RGBEnableCCM, "CCM"},
	{RGBEnableSatControl, "SatControl"},
	{RGBEnableYCbCr, "YCbCr"},
	{RGBEnableFalseColour, "FalseColour"},
	{RGBEnableSharpen, "Sharpen"},
	{RGBEnableYCbCrInverse, "YCbCrInverse"},
	{RGBEnableGamma, "Gamma"},
	{RGBEnableCSC0, "CSC0"},
	{RGBEnableCSC1, "CSC1"},
	{RGBEnableDownscale0, "Downscale0"},
	{RGBEnableDownscale1, "Downscale1"},
	{RGBEnableResample0, "Resample0"},
	{RGBEnableResample1, "Resample1"},
	{RGBEnableOutput0, "Output0"},
	{RGBEnableOutput1, "Output1"},
	{RGBEnableHOG, "HOG"},
}

// String lists the names of the set bits, pipe-separated.
func (e BayerEnable) String() string {
	var b strings.Builder
	for _, n := range bayerEnableNames {
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

// String lists the names of the set bits, pipe-separated.
func (e RGBEnable) String() string {
	var b strings.Builder
	for _, n := range rgbEnableNames {
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

// String lists the names of the set bits, pipe-separated.
func (d Dirty) String() string {
	var b strings.Builder
	for _, n := range []struct {
		bit  Dirty
		name string
	}{
		{DirtyGlobal, "Global"},
		{DirtyShFcCombine, "ShFcCombine"},
		{DirtyCrop, "Crop"},
	} {
		if d&n.bit != 0 {
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
