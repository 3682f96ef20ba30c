package alu

import (
	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/pkg/bits"
)

func invalidDirection(d bits.Direction) error {
	return errors.New(errors.BadParameter, "invalid direction %d", d)
}

// Shift performs a logical shift of x by one bit. The ejected bit is
// moved into the carry flag.
//
//	SLA n, SRL n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains the ejected bit.
func Shift(x uint8, d bits.Direction) (Result, error) {
	var v uint8
	var carry bool
	switch d {
	case bits.Left:
		v, carry = x<<1, x&0x80 != 0
	case bits.Right:
		v, carry = x>>1, x&0x01 != 0
	default:
		return Result{}, invalidDirection(d)
	}
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, false, carry)}, nil
}

// ShiftRightArithmetic shifts x right by one bit, keeping bit 7.
//
//	SRA n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0.
func ShiftRightArithmetic(x uint8) Result {
	v := x>>1 | x&0x80
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, false, x&0x01 != 0)}
}

// Rotate circularly rotates x by one bit. The bit that wraps around is
// copied into the carry flag.
//
//	RLC n, RRC n, RLCA, RRCA
func Rotate(x uint8, d bits.Direction) (Result, error) {
	v, err := bits.Rotate(x, d)
	if err != nil {
		return Result{}, invalidDirection(d)
	}
	var carry bool
	if d == bits.Left {
		carry = x&0x80 != 0
	} else {
		carry = x&0x01 != 0
	}
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, false, carry)}, nil
}

// CarryRotate rotates x by one bit through the carry flag of f, as if
// x and the carry formed a single 9-bit value. The displaced bit of x
// becomes the new carry.
//
//	RL n, RR n, RLA, RRA
func CarryRotate(x uint8, d bits.Direction, f Flags) (Result, error) {
	in := b2u(f.Carry())
	var v uint8
	var carry bool
	switch d {
	case bits.Left:
		v, carry = x<<1|in, x&0x80 != 0
	case bits.Right:
		v, carry = x>>1|in<<7, x&0x01 != 0
	default:
		return Result{}, invalidDirection(d)
	}
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, false, carry)}, nil
}
