package alu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Flags holds the condition codes of the CPU. Only the upper nibble is
// meaningful, the lower nibble always reads as 0.
type Flags uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flags = types.Bit7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flags = types.Bit6
	// FlagHalfCarry is set on a carry out of (or borrow into) bit 3.
	FlagHalfCarry Flags = types.Bit5
	// FlagCarry is set on a carry out of (or borrow beyond) bit 7.
	FlagCarry Flags = types.Bit4

	flagMask = FlagZero | FlagSubtract | FlagHalfCarry | FlagCarry
)

// newFlags builds a Flags value from scratch.
func newFlags(zero, subtract, halfCarry, carry bool) Flags {
	var f Flags
	if zero {
		f |= FlagZero
	}
	if subtract {
		f |= FlagSubtract
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	return f
}

// Mask drops the bits of f that are not flags.
func Mask(f uint8) Flags {
	return Flags(f) & flagMask
}

// Has reports whether all of the given flags are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

func (f Flags) Zero() bool      { return f.Has(FlagZero) }
func (f Flags) Subtract() bool  { return f.Has(FlagSubtract) }
func (f Flags) HalfCarry() bool { return f.Has(FlagHalfCarry) }
func (f Flags) Carry() bool     { return f.Has(FlagCarry) }

// String returns the flags as ZNHC, with a dash for each clear flag.
func (f Flags) String() string {
	b := []byte("----")
	for i, c := range []byte("ZNHC") {
		if f&(FlagZero>>i) != 0 {
			b[i] = c
		}
	}
	return string(b)
}

// Source selects where a flag of a combined result comes from.
type Source uint8

const (
	// SourceClear forces the flag to 0.
	SourceClear Source = iota
	// SourceSet forces the flag to 1.
	SourceSet
	// SourceALU takes the flag from the ALU result.
	SourceALU
	// SourceCPU keeps the flag from the current CPU flags.
	SourceCPU
)

func (s Source) valid() bool {
	return s <= SourceCPU
}

func (s Source) pick(flag, cpu, alu Flags) bool {
	switch s {
	case SourceSet:
		return true
	case SourceALU:
		return alu&flag != 0
	case SourceCPU:
		return cpu&flag != 0
	}
	return false
}

// Rule describes where each of the four flags of an instruction
// comes from.
type Rule struct {
	Z, N, H, C Source
}

// Common flag rules.
var (
	RuleNone    = Rule{SourceCPU, SourceCPU, SourceCPU, SourceCPU}
	RuleAdd     = Rule{SourceALU, SourceClear, SourceALU, SourceALU}
	RuleInc     = Rule{SourceALU, SourceClear, SourceALU, SourceCPU}
	RuleSub     = Rule{SourceALU, SourceSet, SourceALU, SourceALU}
	RuleDec     = Rule{SourceALU, SourceSet, SourceALU, SourceCPU}
	RuleAnd     = Rule{SourceALU, SourceClear, SourceSet, SourceClear}
	RuleOr      = Rule{SourceALU, SourceClear, SourceClear, SourceClear}
	RuleAddHL   = Rule{SourceCPU, SourceClear, SourceALU, SourceALU}
	RuleAddSP   = Rule{SourceClear, SourceClear, SourceALU, SourceALU}
	RuleShift   = Rule{SourceALU, SourceClear, SourceClear, SourceALU}
	RuleRotateA = Rule{SourceClear, SourceClear, SourceClear, SourceALU}
	RuleBit     = Rule{SourceALU, SourceClear, SourceSet, SourceCPU}
	RuleCPL     = Rule{SourceCPU, SourceSet, SourceSet, SourceCPU}
	RuleSCF     = Rule{SourceCPU, SourceClear, SourceClear, SourceSet}
	RuleCCF     = Rule{SourceCPU, SourceClear, SourceClear, SourceALU}
	RuleDAA     = Rule{SourceALU, SourceCPU, SourceClear, SourceALU}
)

// Combine composes a flags value from the current CPU flags and the
// flags of an ALU result, following r.
func (r Rule) Combine(cpu, alu Flags) (Flags, error) {
	for _, s := range [4]Source{r.Z, r.N, r.H, r.C} {
		if !s.valid() {
			return 0, errors.New(errors.BadParameter, "invalid flag source %d", s)
		}
	}

	var f Flags
	for i, s := range [4]Source{r.Z, r.N, r.H, r.C} {
		flag := FlagZero >> i
		if s.pick(flag, cpu, alu) {
			f |= flag
		}
	}
	return f, nil
}

func (r Rule) String() string {
	names := [...]string{"0", "1", "A", "C"}
	name := func(s Source) string {
		if s.valid() {
			return names[s]
		}
		return "?"
	}
	return fmt.Sprintf("%s%s%s%s", name(r.Z), name(r.N), name(r.H), name(r.C))
}
