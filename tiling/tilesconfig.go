package tiling

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/ispbe"
)

// TilesConfigBytes is the serialized size of a configuration plus its
// tile set: the unit the submission layer hands to the device.
const TilesConfigBytes = ispbe.ConfigBytes + MaxTiles*TileBytes + 4

// ErrTilesConfigSize reports a serialized submission image of the
// wrong length.
var ErrTilesConfigSize = errors.New("tiling: serialized tiles config has wrong length")

// ErrTileCount reports a tile count outside (0, MaxTiles].
var ErrTileCount = errors.New("tiling: tile count out of range")

// Marshal serializes a configuration and its tile set as one
// little-endian submission image: the register image, all MaxTiles
// descriptor slots (unused slots zero-filled), and the live count.
func Marshal(cfg *ispbe.Config, ts *TileSet) ([]byte, error) {
	if ts.count <= 0 || ts.count > MaxTiles {
		return nil, fmt.Errorf("%w: %d", ErrTileCount, ts.count)
	}
	cb, err := cfg.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, TilesConfigBytes))
	buf.Write(cb)
	if err := binary.Write(buf, binary.LittleEndian, &ts.tiles); err != nil {
		return nil, fmt.Errorf("tiling: marshal tiles: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, int32(ts.count)); err != nil {
		return nil, fmt.Errorf("tiling: marshal tile count: %w", err)
	}
	if buf.Len() != TilesConfigBytes {
		return nil, fmt.Errorf("%w: wrote %d, want %d", ErrTilesConfigSize, buf.Len(), TilesConfigBytes)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a submission image. The returned tile set is
// valid: a serialized image is by definition derived from the
// configuration it travels with.
func Unmarshal(data []byte) (*ispbe.Config, *TileSet, error) {
	if len(data) != TilesConfigBytes {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrTilesConfigSize, len(data), TilesConfigBytes)
	}
	cfg := new(ispbe.Config)
	if err := cfg.UnmarshalBinary(data[:ispbe.ConfigBytes]); err != nil {
		return nil, nil, err
	}
	ts := new(TileSet)
	r := bytes.NewReader(data[ispbe.ConfigBytes:])
	if err := binary.Read(r, binary.LittleEndian, &ts.tiles); err != nil {
		return nil, nil, fmt.Errorf("tiling: unmarshal tiles: %w", err)
	}
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, nil, fmt.Errorf("tiling: unmarshal tile count: %w", err)
	}
	if count <= 0 || count > MaxTiles {
		return nil, nil, fmt.Errorf("%w: %d", ErrTileCount, count)
	}
	ts.count = int(count)
	ts.valid = true
	return cfg, ts, nil
}
