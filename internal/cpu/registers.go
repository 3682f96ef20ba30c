package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/alu"
)

// Register is one of the eight 8-bit registers.
type Register uint8

const (
	A Register = iota
	F
	B
	C
	D
	E
	H
	L
)

// Pair is one of the four 16-bit register pairs.
type Pair uint8

const (
	BC Pair = iota
	DE
	HL
	AF
)

var registerNames = [...]string{A: "A", F: "F", B: "B", C: "C", D: "D", E: "E", H: "H", L: "L"}
var pairNames = [...]string{BC: "BC", DE: "DE", HL: "HL", AF: "AF"}

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return fmt.Sprintf("Register(%d)", uint8(r))
}

func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return fmt.Sprintf("Pair(%d)", uint8(p))
}

// slot locates an 8-bit register inside its pair.
type slot struct {
	pair  Pair
	shift uint
}

var slots = [...]slot{
	A: {AF, 8}, F: {AF, 0},
	B: {BC, 8}, C: {BC, 0},
	D: {DE, 8}, E: {DE, 0},
	H: {HL, 8}, L: {HL, 0},
}

// Registers is the register file. The eight 8-bit registers are stored
// as their four 16-bit pairs, and accessed by shifting and masking.
type Registers struct {
	pairs [4]uint16
}

// Register returns the value of r.
func (r *Registers) Register(reg Register) uint8 {
	s := slots[reg]
	return uint8(r.pairs[s.pair] >> s.shift)
}

// SetRegister sets r to v. Only the top nibble of F can be set.
func (r *Registers) SetRegister(reg Register, v uint8) {
	if reg == F {
		v &= 0xF0
	}
	s := slots[reg]
	r.pairs[s.pair] = r.pairs[s.pair]&^(0xFF<<s.shift) | uint16(v)<<s.shift
}

// Pair returns the value of p.
func (r *Registers) Pair(p Pair) uint16 {
	return r.pairs[p]
}

// SetPair sets p to v.
func (r *Registers) SetPair(p Pair, v uint16) {
	if p == AF {
		v &= 0xFFF0
	}
	r.pairs[p] = v
}

// Flags returns the flags held in F.
func (r *Registers) Flags() alu.Flags {
	return alu.Mask(r.Register(F))
}

func (r *Registers) setFlags(f alu.Flags) {
	r.SetRegister(F, uint8(f))
}
