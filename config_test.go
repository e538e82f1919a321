package ispbe

import "testing"

func TestSetEnabledBits(t *testing.T) {
	tests := []struct {
		name      string
		block     Block
		branch    int
		wantBayer BayerEnable
		wantRGB   RGBEnable
	}{
		{name: "bayer input", block: BlockInput, wantBayer: BayerEnableInput},
		{name: "bayer demosaic", block: BlockDemosaic, wantBayer: BayerEnableDemosaic},
		{name: "bayer tonemap", block: BlockTonemap, wantBayer: BayerEnableTonemap},
		{name: "rgb gamma", block: BlockGamma, wantRGB: RGBEnableGamma},
		{name: "rgb output branch 0", block: BlockOutput, wantRGB: RGBEnableOutput0},
		{name: "rgb output branch 1", block: BlockOutput, branch: 1, wantRGB: RGBEnableOutput0 << 1},
		{name: "rgb downscale branch 1", block: BlockDownscale, branch: 1, wantRGB: RGBEnableDownscale1},
		{name: "rgb csc branch 1", block: BlockCSC, branch: 1, wantRGB: RGBEnableCSC1},
		{name: "rgb hog", block: BlockHOG, wantRGB: RGBEnableHOG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.SetBranchEnabled(tt.block, tt.branch, true)
			if c.Global.BayerEnables != tt.wantBayer {
				t.Errorf("BayerEnables = %#x, want %#x", uint32(c.Global.BayerEnables), uint32(tt.wantBayer))
			}
			if c.Global.RGBEnables != tt.wantRGB {
				t.Errorf("RGBEnables = %#x, want %#x", uint32(c.Global.RGBEnables), uint32(tt.wantRGB))
			}
			if !c.BranchEnabled(tt.block, tt.branch) {
				t.Error("BranchEnabled = false after enable")
			}
			c.SetBranchEnabled(tt.block, tt.branch, false)
			if c.Global.BayerEnables != 0 || c.Global.RGBEnables != 0 {
				t.Errorf("masks not clear after disable: bayer %#x rgb %#x",
					uint32(c.Global.BayerEnables), uint32(c.Global.RGBEnables))
			}
		})
	}
}

func TestEnableBranch1OnlyShiftsOutputBit(t *testing.T) {
	var c Config
	c.Global.RGBEnables = RGBEnableCCM | RGBEnableGamma
	c.SetBranchEnabled(BlockOutput, 1, true)
	want := RGBEnableCCM | RGBEnableGamma | RGBEnableOutput0<<1
	if c.Global.RGBEnables != want {
		t.Errorf("RGBEnables = %#x, want %#x", uint32(c.Global.RGBEnables), uint32(want))
	}
}

func TestEnableAndDirtyAreIndependent(t *testing.T) {
	var c Config

	c.SetEnabled(BlockLSC, true)
	c.SetBranchEnabled(BlockResample, 1, true)
	if c.DirtyBayer != 0 || c.DirtyRGB != 0 || c.DirtyExtra != 0 {
		t.Errorf("SetEnabled touched dirty masks: %v %v %v", c.DirtyBayer, c.DirtyRGB, c.DirtyExtra)
	}

	c2 := c
	c.MarkDirty(BlockLSC)
	c.MarkBranchDirty(BlockResample, 1)
	c.MarkDirty(BlockCrop)
	if c.Global.BayerEnables != c2.Global.BayerEnables || c.Global.RGBEnables != c2.Global.RGBEnables {
		t.Error("MarkDirty touched enable masks")
	}
	if c.DirtyBayer != BayerEnableLSC {
		t.Errorf("DirtyBayer = %#x, want %#x", uint32(c.DirtyBayer), uint32(BayerEnableLSC))
	}
	if c.DirtyRGB != RGBEnableResample1 {
		t.Errorf("DirtyRGB = %#x, want %#x", uint32(c.DirtyRGB), uint32(RGBEnableResample1))
	}
	if c.DirtyExtra != DirtyCrop {
		t.Errorf("DirtyExtra = %#x, want %#x", uint32(c.DirtyExtra), uint32(DirtyCrop))
	}
}

func TestMarkDirtyExtraTargets(t *testing.T) {
	tests := []struct {
		block Block
		want  Dirty
	}{
		{BlockGlobal, DirtyGlobal},
		{BlockShFcCombine, DirtyShFcCombine},
		{BlockCrop, DirtyCrop},
	}
	for _, tt := range tests {
		t.Run(tt.block.String(), func(t *testing.T) {
			var c Config
			c.MarkDirty(tt.block)
			if c.DirtyExtra != tt.want {
				t.Errorf("DirtyExtra = %#x, want %#x", uint32(c.DirtyExtra), uint32(tt.want))
			}
			if !c.IsDirty(tt.block) {
				t.Error("IsDirty = false after MarkDirty")
			}
		})
	}
}

func TestClearDirtyAll(t *testing.T) {
	var c Config
	c.MarkDirty(BlockDPC)
	c.MarkDirty(BlockSharpen)
	c.MarkDirty(BlockGlobal)
	c.SetEnabled(BlockDPC, true)

	c.ClearDirtyAll()
	if c.DirtyBayer != 0 || c.DirtyRGB != 0 || c.DirtyExtra != 0 {
		t.Errorf("dirty masks not clear: %v %v %v", c.DirtyBayer, c.DirtyRGB, c.DirtyExtra)
	}
	if !c.Enabled(BlockDPC) {
		t.Error("ClearDirtyAll touched enable masks")
	}

	// Idempotent.
	c.ClearDirtyAll()
	if c.DirtyBayer != 0 || c.DirtyRGB != 0 || c.DirtyExtra != 0 {
		t.Error("repeated ClearDirtyAll not idempotent")
	}
}

func TestInvalidBlockPanics(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Config)
	}{
		{"unknown block", func(c *Config) { c.SetEnabled(Block(99), true) }},
		{"negative block", func(c *Config) { c.MarkDirty(Block(-1)) }},
		{"extra has no enable bit", func(c *Config) { c.SetEnabled(BlockCrop, true) }},
		{"branch on unbranched block", func(c *Config) { c.SetBranchEnabled(BlockGamma, 1, true) }},
		{"branch out of range", func(c *Config) { c.SetBranchEnabled(BlockOutput, NumOutputBranches, true) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			var c Config
			tt.call(&c)
		})
	}
}

func TestBlockDomains(t *testing.T) {
	for b := BlockInput; b <= BlockDemosaic; b++ {
		if got := b.Domain(); got != DomainBayer {
			t.Errorf("%v.Domain() = %v, want Bayer", b, got)
		}
	}
	for b := BlockRGBInput; b <= BlockHOG; b++ {
		if got := b.Domain(); got != DomainRGB {
			t.Errorf("%v.Domain() = %v, want RGB", b, got)
		}
	}
	for b := BlockGlobal; b <= BlockCrop; b++ {
		if got := b.Domain(); got != DomainExtra {
			t.Errorf("%v.Domain() = %v, want Extra", b, got)
		}
	}
}

func TestEnableMaskStrings(t *testing.T) {
	if got := (BayerEnableInput | BayerEnableDemosaic).String(); got != "Input|Demosaic" {
		t.Errorf("String() = %q", got)
	}
	if got := (RGBEnableOutput0 << 1).String(); got != "Output1" {
		t.Errorf("String() = %q", got)
	}
	if got := BayerEnable(0).String(); got != "None" {
		t.Errorf("String() = %q", got)
	}
	if got := (DirtyGlobal | DirtyCrop).String(); got != "Global|Crop" {
		t.Errorf("String() = %q", got)
	}
}
