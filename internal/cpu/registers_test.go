package cpu

import "testing"

func TestRegisters(t *testing.T) {
	var r Registers

	t.Run("pairs", func(t *testing.T) {
		r.SetRegister(B, 0x12)
		r.SetRegister(C, 0x34)
		if r.Pair(BC) != 0x1234 {
			t.Errorf("expected BC to be 0x1234, got 0x%04X", r.Pair(BC))
		}
		r.SetPair(HL, 0xABCD)
		if r.Register(H) != 0xAB || r.Register(L) != 0xCD {
			t.Errorf("expected H 0xAB and L 0xCD, got 0x%02X and 0x%02X", r.Register(H), r.Register(L))
		}
		r.SetRegister(L, 0x00)
		if r.Pair(HL) != 0xAB00 {
			t.Errorf("expected HL to be 0xAB00, got 0x%04X", r.Pair(HL))
		}
	})
	t.Run("flags", func(t *testing.T) {
		r.SetRegister(F, 0xFF)
		if r.Register(F) != 0xF0 {
			t.Errorf("expected F to be 0xF0, got 0x%02X", r.Register(F))
		}
		r.SetPair(AF, 0x12FF)
		if r.Pair(AF) != 0x12F0 || r.Register(A) != 0x12 {
			t.Errorf("expected AF to be 0x12F0, got 0x%04X", r.Pair(AF))
		}
	})
	t.Run("names", func(t *testing.T) {
		if A.String() != "A" || HL.String() != "HL" {
			t.Errorf("expected register names, got %s and %s", A, HL)
		}
	})
}
