package ispbe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ConfigBytes is the serialized size of a Config: the register image
// plus the trailing non-register fields and dirty masks.
const ConfigBytes = 6476

// ErrConfigSize reports a serialized config of the wrong length.
var ErrConfigSize = errors.New("ispbe: serialized config has wrong length")

// Wire packing of the GEQ sharper flag into the slope field.
const geqSharperBit = 0x8000

type geqWire struct {
	Offset       uint16
	SlopeSharper uint16
	Min          uint16
	Max          uint16
}

func (g *GEQConfig) wire() geqWire {
	w := geqWire{
		Offset:       g.Offset,
		SlopeSharper: g.Slope & GEQSlopeMax,
		Min:          g.Min,
		Max:          g.Max,
	}
	if g.Sharper {
		w.SlopeSharper |= geqSharperBit
	}
	return w
}

func (g *GEQConfig) fromWire(w geqWire) {
	g.Offset = w.Offset
	g.Slope = w.SlopeSharper & GEQSlopeMax
	g.Sharper = w.SlopeSharper&geqSharperBit != 0
	g.Min = w.Min
	g.Max = w.Max
}

// Wire packing of the stitch streaming-long flag into the
// exposure-ratio field.
const stitchStreamingLongBit = 0x8000

type stitchWire struct {
	ThresholdLo          uint16
	ThresholdDiffPower   uint8
	Pad                  uint8
	ExposureRatio        uint16
	MotionThreshold256   uint8
	MotionThresholdRecip uint8
}

func (s *StitchConfig) wire() stitchWire {
	w := stitchWire{
		ThresholdLo:          s.ThresholdLo,
		ThresholdDiffPower:   s.ThresholdDiffPower,
		Pad:                  s.Pad,
		ExposureRatio:        s.ExposureRatio & StitchExposureRatioMax,
		MotionThreshold256:   s.MotionThreshold256,
		MotionThresholdRecip: s.MotionThresholdRecip,
	}
	if s.StreamingLong {
		w.ExposureRatio |= stitchStreamingLongBit
	}
	return w
}

func (s *StitchConfig) fromWire(w stitchWire) {
	s.ThresholdLo = w.ThresholdLo
	s.ThresholdDiffPower = w.ThresholdDiffPower
	s.Pad = w.Pad
	s.ExposureRatio = w.ExposureRatio & StitchExposureRatioMax
	s.StreamingLong = w.ExposureRatio&stitchStreamingLongBit != 0
	s.MotionThreshold256 = w.MotionThreshold256
	s.MotionThresholdRecip = w.MotionThresholdRecip
}

// wireFields returns pointers to every serialized field of the config
// in wire order. The GEQ and stitch records go through the caller's
// wire mirrors so their packed flag bits are applied.
func (c *Config) wireFields(gw *geqWire, sw *stitchWire) []any {
	return []any{
		// I/O configuration.
		&c.InputBuffer,
		&c.TDNInputBuffer,
		&c.StitchInputBuffer,
		&c.TDNOutputBuffer,
		&c.StitchOutputBuffer,
		&c.OutputBuffer,
		&c.HOGBuffer,
		// Processing configuration.
		&c.Global,
		&c.InputFormat,
		&c.Decompress,
		&c.DPC,
		gw,
		&c.TDNInputFormat,
		&c.TDNDecompress,
		&c.TDN,
		&c.TDNCompress,
		&c.TDNOutputFormat,
		&c.SDN,
		&c.BlackLevel,
		&c.StitchCompress,
		&c.StitchOutputFormat,
		&c.StitchInputFormat,
		&c.StitchDecompress,
		sw,
		&c.LSC,
		&c.WhiteBalance,
		&c.CDN,
		&c.CAC,
		&c.Debin,
		&c.Tonemap,
		&c.Demosaic,
		&c.CCM,
		&c.SatControl,
		&c.YCbCr,
		&c.Sharpen,
		&c.FalseColour,
		&c.ShFcCombine,
		&c.YCbCrInverse,
		&c.Gamma,
		&c.CSC,
		&c.Downscale,
		&c.Resample,
		&c.OutputFormat,
		&c.HOG,
		&c.AXI,
		// Non-register fields.
		&c.LSCExtra,
		&c.CACExtra,
		&c.DownscaleExtra,
		&c.ResampleExtra,
		&c.Crop,
		&c.HOGFormat,
		&c.DirtyBayer,
		&c.DirtyRGB,
		&c.DirtyExtra,
	}
}

// MarshalBinary serializes the config to the little-endian register
// image the submission layer loads into the device. The result is
// always ConfigBytes long.
func (c *Config) MarshalBinary() ([]byte, error) {
	gw := c.GEQ.wire()
	sw := c.Stitch.wire()
	buf := bytes.NewBuffer(make([]byte, 0, ConfigBytes))
	for _, f := range c.wireFields(&gw, &sw) {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("ispbe: marshal config: %w", err)
		}
	}
	if buf.Len() != ConfigBytes {
		return nil, fmt.Errorf("%w: wrote %d, want %d", ErrConfigSize, buf.Len(), ConfigBytes)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary parses a serialized register image. The input must
// be exactly ConfigBytes long.
func (c *Config) UnmarshalBinary(data []byte) error {
	if len(data) != ConfigBytes {
		return fmt.Errorf("%w: got %d, want %d", ErrConfigSize, len(data), ConfigBytes)
	}
	var (
		gw geqWire
		sw stitchWire
	)
	r := bytes.NewReader(data)
	for _, f := range c.wireFields(&gw, &sw) {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("ispbe: unmarshal config: %w", err)
		}
	}
	c.GEQ.fromWire(gw)
	c.Stitch.fromWire(sw)
	return nil
}
