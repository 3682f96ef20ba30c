// Package alu implements the arithmetic and logic unit of the Game Boy
// CPU. Every operation is a pure function returning the result along
// with freshly computed flags, which the CPU then merges with its own
// flags according to the Rule of the instruction being executed.
package alu

import (
	"github.com/thelolagemann/gbcore/pkg/bits"
)

// Result is the output of an ALU operation.
type Result struct {
	Value uint16
	Flags Flags
}

// Uint8 returns the low byte of the result.
func (r Result) Uint8() uint8 {
	return uint8(r.Value)
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Add8 adds x, y and the carry-in.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add8(x, y uint8, carry bool) Result {
	c := b2u(carry)
	sum := uint16(x) + uint16(y) + uint16(c)
	half := bits.Lsb4(x) + bits.Lsb4(y) + c
	return Result{
		Value: uint16(uint8(sum)),
		Flags: newFlags(uint8(sum) == 0, false, half > 0xF, sum > 0xFF),
	}
}

// Sub8 subtracts y and the borrow-in from x.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow into bit 4.
//	C - Set if x < y + borrow.
func Sub8(x, y uint8, borrow bool) Result {
	b := int(b2u(borrow))
	diff := int(x) - int(y) - b
	return Result{
		Value: uint16(uint8(diff)),
		Flags: newFlags(uint8(diff) == 0, true,
			int(bits.Lsb4(x)) < int(bits.Lsb4(y))+b,
			int(x) < int(y)+b),
	}
}

// Add16Low adds two 16-bit values, taking the half carry and carry
// from the low byte (bits 3 and 7).
//
// Used by:
//
//	ADD SP, e8
//	LD HL, SP+e8
func Add16Low(x, y uint16) Result {
	low := uint16(bits.Lsb8(x)) + uint16(bits.Lsb8(y))
	sum := x + y
	return Result{
		Value: sum,
		Flags: newFlags(sum == 0, false, (x&0xF)+(y&0xF) > 0xF, low > 0xFF),
	}
}

// Add16High adds two 16-bit values, taking the half carry and carry
// from the high byte (bits 11 and 15).
//
// Used by:
//
//	ADD HL, nn
func Add16High(x, y uint16) Result {
	sum := uint32(x) + uint32(y)
	return Result{
		Value: uint16(sum),
		Flags: newFlags(uint16(sum) == 0, false, (x&0xFFF)+(y&0xFFF) > 0xFFF, sum > 0xFFFF),
	}
}

// And performs a bitwise AND of x and y.
func And(x, y uint8) Result {
	v := x & y
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, true, false)}
}

// Or performs a bitwise OR of x and y.
func Or(x, y uint8) Result {
	v := x | y
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, false, false)}
}

// Xor performs a bitwise XOR of x and y.
func Xor(x, y uint8) Result {
	v := x ^ y
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, false, false)}
}

// Swap exchanges the nibbles of x.
func Swap(x uint8) Result {
	v := bits.Merge4(bits.Msb4(x), bits.Lsb4(x))
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, false, false)}
}

// Bit tests bit i of x. The result value is the tested bit; Z is set
// when it is clear.
func Bit(x, i uint8) (Result, error) {
	v, err := bits.Val(x, i)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: uint16(v), Flags: newFlags(v == 0, false, true, false)}, nil
}

// DAA adjusts x to binary coded decimal after an addition or
// subtraction, using the N, H and C flags left by that operation.
func DAA(x uint8, f Flags) Result {
	carry := f.Carry()
	if !f.Subtract() {
		if carry || x > 0x99 {
			x += 0x60
			carry = true
		}
		if f.HalfCarry() || bits.Lsb4(x) > 0x09 {
			x += 0x06
		}
	} else {
		if carry {
			x -= 0x60
		}
		if f.HalfCarry() {
			x -= 0x06
		}
	}
	return Result{Value: uint16(x), Flags: newFlags(x == 0, f.Subtract(), false, carry)}
}

// ComplementCarry returns a result whose carry flag is the inverse of
// the carry in f.
func ComplementCarry(f Flags) Result {
	return Result{Flags: newFlags(false, false, false, !f.Carry())}
}
