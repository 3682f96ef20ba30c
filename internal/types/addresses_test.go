package types

import "testing"

func TestRegions(t *testing.T) {
	regions := []Region{
		BankROM, VideoRAM, ExternalRAM, WorkRAM, EchoRAM,
		GraphicsRAM, Unusable, Registers, HighRAM,
	}
	// regions must be in order and never overlap
	for i := 1; i < len(regions); i++ {
		if regions[i].Start <= regions[i-1].End {
			t.Errorf("expected region %d to start after 0x%04X, got 0x%04X", i, regions[i-1].End, regions[i].Start)
		}
	}
	if BankROM.Size() != 0x8000 {
		t.Errorf("expected bank ROM size 0x8000, got 0x%X", BankROM.Size())
	}
	if EchoRAM.Size() > WorkRAM.Size() {
		t.Errorf("expected echo RAM to fit inside work RAM")
	}
	if !Registers.Contains(IF) || !Registers.Contains(BDIS) || HighRAM.Contains(IE) {
		t.Errorf("unexpected register placement")
	}
}
