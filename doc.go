// Package ispbe models the configuration and tiling state of a hardware
// image-processing back end.
//
// # Overview
//
// The back end is a run-to-completion image pipeline of roughly thirty
// independently enableable processing blocks, split into a Bayer domain
// (decompression, defective-pixel correction, temporal and spatial
// denoise, HDR stitching, lens shading, chromatic aberration, demosaic)
// and an RGB domain (colour matrices, gamma, sharpening, per-branch
// scaling and output formatting). Its entire addressable state is one
// fixed-layout register image, reproduced here as [Config].
//
// Three ideas structure the package:
//
//   - Block parameter records. Every block has a fixed-shape record
//     ([DPCConfig], [LSCConfig], [SharpenConfig], ...) whose field
//     order, widths and explicit padding match the hardware layout
//     byte for byte. The records are plain storage: no validation is
//     applied to field values.
//
//   - Enable and dirty masks. [BayerEnable] and [RGBEnable] select the
//     blocks active for a frame. Three dirty masks record which records
//     must be re-uploaded before the next run. The two mask families
//     are fully independent: toggling an enable bit never touches a
//     dirty bit and vice versa. See [Config.SetEnabled],
//     [Config.MarkDirty] and [Config.ClearDirtyAll].
//
//   - Tiling. Frames are processed in up to 64 bounded-size tiles; the
//     tiling subpackage derives the per-tile geometry descriptors from
//     a Config and owns the stale/valid rebuild protocol.
//
// # Serialization
//
// [Config.MarshalBinary] produces the exact little-endian register
// image consumed by the submission layer ([ConfigBytes] bytes). Fields
// that keep a flag packed into the high bit of a value on the wire
// (GEQ slope, stitch exposure ratio) are held unpacked in memory and
// packed only at this boundary, so round trips are bit-identical.
//
// # Logging
//
// By default the package produces no log output. Call [SetLogger] to
// enable structured logging via log/slog; the tiling builder logs its
// partition decisions at [log/slog.LevelDebug].
//
// The package is value data: no goroutines, no blocking operations.
// A Config and its derived tile set belong to whichever component is
// about to submit a frame; concurrency discipline across frames is the
// submission layer's concern.
package ispbe
