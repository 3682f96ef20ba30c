// Package bits provides the bit manipulation primitives used by the
// ALU, the timer and the instruction decoder.
package bits

import (
	mathbits "math/bits"
	"unsafe"

	"github.com/thelolagemann/gbcore/internal/errors"
	"golang.org/x/exp/constraints"
)

// Direction is the direction of a shift or rotation.
type Direction uint8

const (
	// Left shifts/rotates towards bit 7.
	Left Direction = iota
	// Right shifts/rotates towards bit 0.
	Right
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

// Lsb4 returns the low nibble of b.
func Lsb4(b uint8) uint8 {
	return b & 0x0F
}

// Msb4 returns the high nibble of b.
func Msb4(b uint8) uint8 {
	return b >> 4
}

// Lsb8 returns the low byte of v.
func Lsb8(v uint16) uint8 {
	return uint8(v)
}

// Msb8 returns the high byte of v.
func Msb8(v uint16) uint8 {
	return uint8(v >> 8)
}

// Merge4 merges two nibbles into a byte. Bits above the nibble are
// discarded from both inputs.
func Merge4(low, high uint8) uint8 {
	return (high&0x0F)<<4 | low&0x0F
}

// Merge8 merges two bytes into a 16-bit value.
func Merge8(low, high uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// checkIndex ensures i addresses a bit of a T.
func checkIndex[T constraints.Unsigned](v T, i uint8) error {
	if width := uint8(unsafe.Sizeof(v)) * 8; i >= width {
		return errors.New(errors.BadParameter, "bit index %d out of range for %d-bit value", i, width)
	}
	return nil
}

// Val returns the value (0 or 1) of the bit at the given index.
func Val[T constraints.Unsigned](v T, i uint8) (T, error) {
	if err := checkIndex(v, i); err != nil {
		return 0, err
	}
	return (v >> i) & 1, nil
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](v T, i uint8) (bool, error) {
	b, err := Val(v, i)
	return b == 1, err
}

// Set sets the bit at the given index.
func Set(b, i uint8) (uint8, error) {
	if err := checkIndex(b, i); err != nil {
		return b, err
	}
	return b | (1 << i), nil
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) (uint8, error) {
	if err := checkIndex(b, i); err != nil {
		return b, err
	}
	return b &^ (1 << i), nil
}

// Edit sets or resets the bit at the given index.
func Edit(b, i uint8, on bool) (uint8, error) {
	if on {
		return Set(b, i)
	}
	return Reset(b, i)
}

// Rotate circularly rotates b by one bit.
func Rotate(b uint8, d Direction) (uint8, error) {
	switch d {
	case Left:
		return mathbits.RotateLeft8(b, 1), nil
	case Right:
		return mathbits.RotateLeft8(b, -1), nil
	}
	return b, errors.New(errors.BadParameter, "invalid rotation direction %d", d)
}
