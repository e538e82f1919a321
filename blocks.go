package ispbe

// GlobalConfig selects the active blocks for the frame and the Bayer
// order of the input mosaic.
type GlobalConfig struct {
	BayerEnables BayerEnable
	RGBEnables   RGBEnable
	BayerOrder   BayerOrder
	Pad          [3]uint8
}

// DPCConfig configures defective-pixel correction.
type DPCConfig struct {
	CoeffLevel uint8
	CoeffRange uint8
	Pad        uint8
	Flags      uint8
}

// DPCFlagFoldback enables foldback correction in DPCConfig.Flags.
const DPCFlagFoldback = 1

// GEQSlopeMax is the largest representable GEQ slope; the wire field
// keeps the slope in its low 10 bits.
const GEQSlopeMax = 1<<10 - 1

// GEQConfig configures the green-equalisation noise estimator.
//
// On the wire the Sharper flag occupies the top bit of the 16-bit
// slope field; in memory the pair is kept unpacked and packed only
// during serialization. Slope values above [GEQSlopeMax] are masked.
type GEQConfig struct {
	Offset  uint16
	Slope   uint16 // low 10 bits only
	Sharper bool
	Min     uint16
	Max     uint16
}

// TDNConfig configures temporal denoise.
type TDNConfig struct {
	BlackLevel    uint16
	Ratio         uint16
	NoiseConstant uint16
	NoiseSlope    uint16
	Threshold     uint16
	Reset         uint8
	Pad           uint8
}

// SDNConfig configures spatial denoise.
type SDNConfig struct {
	BlackLevel     uint16
	Leakage        uint8
	Pad            uint8
	NoiseConstant  uint16
	NoiseSlope     uint16
	NoiseConstant2 uint16
	NoiseSlope2    uint16
}

// StitchExposureRatioMax is the largest representable stitch exposure
// ratio; the wire field keeps the ratio in its low 15 bits.
const StitchExposureRatioMax = 1<<15 - 1

// StitchConfig configures HDR stitching of a long and a short
// exposure.
//
// On the wire the StreamingLong flag occupies the top bit of the
// 16-bit exposure-ratio field; in memory the pair is kept unpacked and
// packed only during serialization. Ratios above
// [StitchExposureRatioMax] are masked.
type StitchConfig struct {
	ThresholdLo          uint16
	ThresholdDiffPower   uint8
	Pad                  uint8
	ExposureRatio        uint16 // low 15 bits only
	StreamingLong        bool   // streamed input is the long exposure
	MotionThreshold256   uint8
	MotionThresholdRecip uint8
}

// CDNConfig configures colour denoise.
type CDNConfig struct {
	Thresh      uint16
	IIRStrength uint8
	GAdjust     uint8
}

// Lens-shading grid geometry.
const (
	// LSCLogGridSize is log2 of the correction grid cell count per axis.
	LSCLogGridSize = 5

	// LSCGridSize is the correction grid cell count per axis; the LUT
	// stores one more node than cells in each direction.
	LSCGridSize = 1 << LSCLogGridSize

	// LSCStepPrecision is the fixed-point precision of the grid step:
	// step = 2^LSCStepPrecision / cell size in pixels.
	LSCStepPrecision = 18
)

// LSCConfig configures lens-shading correction: a coarse grid of gains
// interpolated bilinearly across the frame.
type LSCConfig struct {
	GridStepX uint16 // (1 << LSCStepPrecision) / grid cell width
	GridStepY uint16 // (1 << LSCStepPrecision) / grid cell height
	// RGB gains jointly encoded in 32 bits per grid node.
	LUTPacked [LSCGridSize + 1][LSCGridSize + 1]uint32
}

// LSCExtra positions the lens-shading grid relative to the sensor
// window. Not a hardware register; consumed by the tiling builder.
type LSCExtra struct {
	OffsetX uint16
	OffsetY uint16
}

// Chromatic-aberration grid geometry.
const (
	// CACLogGridSize is log2 of the correction grid cell count per axis.
	CACLogGridSize = 3

	// CACGridSize is the correction grid cell count per axis.
	CACGridSize = 1 << CACLogGridSize

	// CACStepPrecision is the fixed-point precision of the grid step.
	CACStepPrecision = 20
)

// CACConfig configures chromatic-aberration correction.
type CACConfig struct {
	GridStepX uint16 // (1 << CACStepPrecision) / grid cell width
	GridStepY uint16 // (1 << CACStepPrecision) / grid cell height
	// Indexed [grid y][grid x][red/blue][x/y shift].
	LUT [CACGridSize + 1][CACGridSize + 1][2][2]int8
}

// CACExtra positions the chromatic-aberration grid relative to the
// sensor window. Not a hardware register; consumed by the tiling
// builder.
type CACExtra struct {
	OffsetX uint16
	OffsetY uint16
}

// DebinNumCoeffs is the debinning filter length.
const DebinNumCoeffs = 4

// DebinConfig configures the debinning filter.
type DebinConfig struct {
	Coeffs  [DebinNumCoeffs]int8
	HEnable int8
	VEnable int8
	Pad     [2]int8
}

// TonemapLUTSize is the tone-map lookup table length.
const TonemapLUTSize = 64

// TonemapConfig configures the Bayer-domain local tone mapper.
type TonemapConfig struct {
	DetailConstant uint16
	DetailSlope    uint16
	IIRStrength    uint16
	Strength       uint16
	LUT            [TonemapLUTSize]uint32
}

// DemosaicConfig configures colour reconstruction.
type DemosaicConfig struct {
	Sharper uint8
	FCMode  uint8
	Pad     [2]uint8
}

// CCMConfig is a 3x3 colour matrix with per-channel offsets, shared by
// the CCM, YCbCr conversion (forward and inverse) and per-branch CSC
// blocks. Coefficients are signed fixed point; this package stores
// them verbatim.
type CCMConfig struct {
	Coeffs  [9]int16
	Pad     [2]uint8
	Offsets [3]int32
}

// SatControlConfig configures saturation control shifts.
type SatControlConfig struct {
	ShiftR uint8
	ShiftG uint8
	ShiftB uint8
	Pad    uint8
}

// FalseColourConfig configures false-colour suppression.
type FalseColourConfig struct {
	Distance uint8
	Pad      [3]uint8
}

// Sharpen filter geometry.
const (
	// SharpenKernelSize is the side length of each sharpen kernel.
	SharpenKernelSize = 5

	// SharpenFuncPoints is the number of points in the piecewise
	// positive/negative response functions.
	SharpenFuncPoints = 9
)

// SharpenConfig configures the five-kernel sharpener and its
// piecewise response functions.
type SharpenConfig struct {
	Kernel0 [SharpenKernelSize * SharpenKernelSize]int8
	Pad0    [3]int8
	Kernel1 [SharpenKernelSize * SharpenKernelSize]int8
	Pad1    [3]int8
	Kernel2 [SharpenKernelSize * SharpenKernelSize]int8
	Pad2    [3]int8
	Kernel3 [SharpenKernelSize * SharpenKernelSize]int8
	Pad3    [3]int8
	Kernel4 [SharpenKernelSize * SharpenKernelSize]int8
	Pad4    [3]int8

	ThresholdOffset0 uint16
	ThresholdSlope0  uint16
	Scale0           uint16
	Pad5             uint16
	ThresholdOffset1 uint16
	ThresholdSlope1  uint16
	Scale1           uint16
	Pad6             uint16
	ThresholdOffset2 uint16
	ThresholdSlope2  uint16
	Scale2           uint16
	Pad7             uint16
	ThresholdOffset3 uint16
	ThresholdSlope3  uint16
	Scale3           uint16
	Pad8             uint16
	ThresholdOffset4 uint16
	ThresholdSlope4  uint16
	Scale4           uint16
	Pad9             uint16

	PositiveStrength uint16
	PositivePreLimit uint16
	PositiveFunc     [SharpenFuncPoints]uint16
	PositiveLimit    uint16
	NegativeStrength uint16
	NegativePreLimit uint16
	NegativeFunc     [SharpenFuncPoints]uint16
	NegativeLimit    uint16

	Enables uint8
	White   uint8
	Black   uint8
	Grey    uint8
}

// ShFcCombineConfig configures the sharpen/false-colour combiner.
type ShFcCombineConfig struct {
	YFactor  uint8
	C1Factor uint8
	C2Factor uint8
	Pad      uint8
}

// GammaLUTSize is the gamma lookup table length.
const GammaLUTSize = 64

// GammaConfig holds the gamma lookup table.
type GammaConfig struct {
	LUT [GammaLUTSize]uint32
}

// CropConfig is the crop window applied before the output branches,
// in input-image coordinates. A zero Width/Height disables cropping.
type CropConfig struct {
	OffsetX uint16
	OffsetY uint16
	Width   uint16
	Height  uint16
}

// ResampleFilterSize is the resample filter coefficient count.
const ResampleFilterSize = 96

// ScalePrecision is the fixed-point precision of downscale and
// resample scale factors and phases: a factor is
// (input size / output size) << ScalePrecision.
const ScalePrecision = 12

// ResampleConfig configures one branch's polyphase resampler.
type ResampleConfig struct {
	ScaleFactorH uint16 // Q4.12
	ScaleFactorV uint16 // Q4.12
	Coef         [ResampleFilterSize]int16
}

// ResampleExtra carries the resample geometry the tiling builder
// needs. Not a hardware register.
type ResampleExtra struct {
	ScaledWidth   uint16
	ScaledHeight  uint16
	InitialPhaseH [3]int16 // per plane, Q4.12
	InitialPhaseV [3]int16 // per plane, Q4.12
}

// DownscaleConfig configures one branch's box downscaler.
type DownscaleConfig struct {
	ScaleFactorH uint16 // Q4.12
	ScaleFactorV uint16 // Q4.12
	ScaleRecipH  uint16
	ScaleRecipV  uint16
}

// DownscaleExtra carries the downscale geometry the tiling builder
// needs. Not a hardware register.
type DownscaleExtra struct {
	ScaledWidth  uint16
	ScaledHeight uint16
}

// HOGCellSize is the edge length of one histogram-of-gradients cell.
const HOGCellSize = 8

// HOGConfig configures the histogram-of-gradients block, which
// consumes the [HOGOutputBranch] output.
type HOGConfig struct {
	ComputeSigned uint8
	ChannelMix    [3]uint8
	Stride        uint32 // output row stride in bytes
}

// AXIConfig sets bus quality-of-service and cache hints for the
// back end's read and write masters.
type AXIConfig struct {
	RQoS       uint8 // read QoS
	RCacheProt uint8 // read {prot[2:0], cache[3:0]}
	WQoS       uint8 // write QoS
	WCacheProt uint8 // write {prot[2:0], cache[3:0]}
}

// Transform is the output flip/rotate selector.
type Transform uint8

// Output transforms. Rot180 is the composition of both flips.
const (
	TransformNone   Transform = 0x0
	TransformHFlip  Transform = 0x1
	TransformVFlip  Transform = 0x2
	TransformRot180 Transform = TransformHFlip | TransformVFlip
)

// String returns the transform name.
func (t Transform) String() string {
	switch t {
	case TransformNone:
		return "None"
	case TransformHFlip:
		return "HFlip"
	case TransformVFlip:
		return "VFlip"
	case TransformRot180:
		return "Rot180"
	default:
		return "Unknown"
	}
}

// OutputFormatConfig configures one output branch's format conversion
// and value-range clipping.
type OutputFormatConfig struct {
	Image     ImageFormat
	Transform Transform
	Pad       [3]uint8
	Lo        uint16
	Hi        uint16
	Lo2       uint16
	Hi2       uint16
}
