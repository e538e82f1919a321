package tiling

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ispbe"
)

func TestTilesConfigRoundTrip(t *testing.T) {
	cfg := testBuildConfig()
	cfg.MarkDirty(ispbe.BlockDemosaic)
	ts, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	data, err := Marshal(cfg, ts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) != TilesConfigBytes {
		t.Fatalf("len = %d, want %d", len(data), TilesConfigBytes)
	}

	cfg2, ts2, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(cfg, cfg2); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if ts2.Count() != ts.Count() {
		t.Fatalf("Count = %d, want %d", ts2.Count(), ts.Count())
	}
	if !ts2.Valid() {
		t.Error("unmarshaled tile set not valid")
	}
	if diff := cmp.Diff(ts.Tiles(), ts2.Tiles()); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalRejectsEmptyTileSet(t *testing.T) {
	if _, err := Marshal(testBuildConfig(), &TileSet{}); !errors.Is(err, ErrTileCount) {
		t.Errorf("Marshal with empty set: %v, want ErrTileCount", err)
	}
}

func TestUnmarshalRejectsBadInput(t *testing.T) {
	if _, _, err := Unmarshal(make([]byte, TilesConfigBytes-1)); !errors.Is(err, ErrTilesConfigSize) {
		t.Errorf("short input: %v, want ErrTilesConfigSize", err)
	}

	// A zero tile count never comes out of Build.
	data := make([]byte, TilesConfigBytes)
	if _, _, err := Unmarshal(data); !errors.Is(err, ErrTileCount) {
		t.Errorf("zero count: %v, want ErrTileCount", err)
	}
}
