package bits

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/errors"
)

func TestSplitMerge(t *testing.T) {
	if Lsb4(0xA7) != 0x7 || Msb4(0xA7) != 0xA {
		t.Errorf("expected nibbles 0xA/0x7 of 0xA7")
	}
	if Lsb8(0xBEEF) != 0xEF || Msb8(0xBEEF) != 0xBE {
		t.Errorf("expected bytes 0xBE/0xEF of 0xBEEF")
	}
	if v := Merge4(0xF3, 0x1C); v != 0xC3 {
		t.Errorf("expected out of range nibble bits to be dropped, got 0x%02X", v)
	}
	if v := Merge8(0xEF, 0xBE); v != 0xBEEF {
		t.Errorf("expected 0xBEEF, got 0x%04X", v)
	}
	for i := 0; i < 0x100; i++ {
		b := uint8(i)
		if Merge4(Lsb4(b), Msb4(b)) != b {
			t.Fatalf("nibble round trip failed for 0x%02X", b)
		}
	}
}

func TestBitIndex(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		v, err := Set(0, i)
		if err != nil || v != 1<<i {
			t.Errorf("expected Set(0, %d) = 0x%02X, got 0x%02X (%v)", i, 1<<i, v, err)
		}
		if ok, _ := Test(v, i); !ok {
			t.Errorf("expected bit %d to be set", i)
		}
		v, _ = Reset(0xFF, i)
		if v != ^uint8(1<<i) {
			t.Errorf("expected Reset(0xFF, %d) = 0x%02X, got 0x%02X", i, ^uint8(1<<i), v)
		}
		v, _ = Edit(v, i, true)
		if v != 0xFF {
			t.Errorf("expected Edit to restore bit %d", i)
		}
	}

	// indices are rejected rather than wrapped
	if _, err := Set(0, 8); !errors.Is(err, errors.BadParameter) {
		t.Errorf("expected bad parameter for index 8, got %v", err)
	}
	if _, err := Val(uint8(0), 200); !errors.Is(err, errors.BadParameter) {
		t.Errorf("expected bad parameter for index 200, got %v", err)
	}

	// 16-bit values accept indices up to 15
	if v, err := Val(uint16(0x0200), 9); err != nil || v != 1 {
		t.Errorf("expected bit 9 of 0x0200 to be 1, got %d (%v)", v, err)
	}
	if _, err := Test(uint16(0), 16); err == nil {
		t.Errorf("expected index 16 to fail for uint16")
	}
}

func TestRotate(t *testing.T) {
	for i := 0; i < 0x100; i++ {
		b := uint8(i)
		l, _ := Rotate(b, Left)
		r, _ := Rotate(l, Right)
		if r != b {
			t.Fatalf("expected rotate round trip of 0x%02X, got 0x%02X", b, r)
		}
	}
	if v, _ := Rotate(0x81, Left); v != 0x03 {
		t.Errorf("expected 0x03, got 0x%02X", v)
	}
	if v, _ := Rotate(0x81, Right); v != 0xC0 {
		t.Errorf("expected 0xC0, got 0x%02X", v)
	}
	if _, err := Rotate(1, Direction(7)); !errors.Is(err, errors.BadParameter) {
		t.Errorf("expected bad parameter for unknown direction, got %v", err)
	}
}
