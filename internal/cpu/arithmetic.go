package cpu

import (
	"github.com/thelolagemann/gbcore/internal/alu"
	"github.com/thelolagemann/gbcore/pkg/bits"
)

var arithmeticHandlers = map[Family]handler{
	FamilyADD:     (*CPU).add,
	FamilySUB:     (*CPU).sub,
	FamilyCP:      (*CPU).compare,
	FamilyAND:     (*CPU).and,
	FamilyOR:      (*CPU).or,
	FamilyXOR:     (*CPU).xor,
	FamilyINC:     (*CPU).increment,
	FamilyDEC:     (*CPU).decrement,
	FamilyINC16:   (*CPU).incrementNN,
	FamilyDEC16:   (*CPU).decrementNN,
	FamilyADDHL:   (*CPU).addHLRR,
	FamilyADDSP:   (*CPU).addSPE8,
	FamilyDAA:     (*CPU).decimalAdjust,
	FamilyCPL:     (*CPU).complement,
	FamilySCF:     (*CPU).setCarry,
	FamilyCCF:     (*CPU).complementCarry,
	FamilyRotateA: (*CPU).rotateAccumulator,
	FamilyRotate:  (*CPU).rotate,
	FamilyShift:   (*CPU).shift,
	FamilyBIT:     (*CPU).testBit,
	FamilyRES:     (*CPU).resetBit,
	FamilySET:     (*CPU).setBit,
}

// combine merges the flags of r into F following rule.
func (c *CPU) combine(rule alu.Rule, r alu.Result) error {
	f, err := rule.Combine(c.Flags(), r.Flags)
	if err != nil {
		return err
	}
	c.setFlags(f)
	return nil
}

// storeA stores r into A and merges its flags.
func (c *CPU) storeA(rule alu.Rule, r alu.Result) error {
	c.SetRegister(A, r.Uint8())
	return c.combine(rule, r)
}

// withCarry reports whether an ADC or SBC should consume the carry
// flag; bit 3 distinguishes them from ADD and SUB.
func (c *CPU) withCarry(i Instruction) bool {
	return i.Opcode&0x08 != 0 && c.Flags().Carry()
}

//	ADD A, n  ADC A, n
func (c *CPU) add(i Instruction) (bool, error) {
	return false, c.storeA(alu.RuleAdd, alu.Add8(c.Register(A), c.source(i), c.withCarry(i)))
}

//	SUB A, n  SBC A, n
func (c *CPU) sub(i Instruction) (bool, error) {
	return false, c.storeA(alu.RuleSub, alu.Sub8(c.Register(A), c.source(i), c.withCarry(i)))
}

// compare subtracts n from A, keeping only the flags.
//
//	CP A, n
func (c *CPU) compare(i Instruction) (bool, error) {
	return false, c.combine(alu.RuleSub, alu.Sub8(c.Register(A), c.source(i), false))
}

func (c *CPU) and(i Instruction) (bool, error) {
	return false, c.storeA(alu.RuleAnd, alu.And(c.Register(A), c.source(i)))
}

func (c *CPU) or(i Instruction) (bool, error) {
	return false, c.storeA(alu.RuleOr, alu.Or(c.Register(A), c.source(i)))
}

func (c *CPU) xor(i Instruction) (bool, error) {
	return false, c.storeA(alu.RuleOr, alu.Xor(c.Register(A), c.source(i)))
}

// modify applies op to the register or (HL) byte encoded by code,
// storing the result and merging its flags.
func (c *CPU) modify(code uint8, rule alu.Rule, op func(uint8) (alu.Result, error)) error {
	r, err := op(c.operand8(code))
	if err != nil {
		return err
	}
	if err := c.setOperand8(code, r.Uint8()); err != nil {
		return err
	}
	return c.combine(rule, r)
}

//	INC r  INC (HL)
func (c *CPU) increment(i Instruction) (bool, error) {
	return false, c.modify((i.Opcode>>3)&0x07, alu.RuleInc, func(v uint8) (alu.Result, error) {
		return alu.Add8(v, 1, false), nil
	})
}

//	DEC r  DEC (HL)
func (c *CPU) decrement(i Instruction) (bool, error) {
	return false, c.modify((i.Opcode>>3)&0x07, alu.RuleDec, func(v uint8) (alu.Result, error) {
		return alu.Sub8(v, 1, false), nil
	})
}

//	INC r16
func (c *CPU) incrementNN(i Instruction) (bool, error) {
	code := (i.Opcode >> 4) & 0x03
	c.setPair16(code, c.pair16(code)+1)
	return false, nil
}

//	DEC r16
func (c *CPU) decrementNN(i Instruction) (bool, error) {
	code := (i.Opcode >> 4) & 0x03
	c.setPair16(code, c.pair16(code)-1)
	return false, nil
}

//	ADD HL, r16
func (c *CPU) addHLRR(i Instruction) (bool, error) {
	r := alu.Add16High(c.Pair(HL), c.pair16((i.Opcode>>4)&0x03))
	c.SetPair(HL, r.Value)
	return false, c.combine(alu.RuleAddHL, r)
}

// addSP adds the signed immediate to SP. The flags come from the
// unsigned addition of the low bytes.
func (c *CPU) addSP() alu.Result {
	return alu.Add16Low(c.SP, uint16(int8(c.immediate8())))
}

//	ADD SP, e8
func (c *CPU) addSPE8(Instruction) (bool, error) {
	r := c.addSP()
	c.SP = r.Value
	return false, c.combine(alu.RuleAddSP, r)
}

//	DAA
func (c *CPU) decimalAdjust(Instruction) (bool, error) {
	return false, c.storeA(alu.RuleDAA, alu.DAA(c.Register(A), c.Flags()))
}

//	CPL
func (c *CPU) complement(Instruction) (bool, error) {
	c.SetRegister(A, ^c.Register(A))
	return false, c.combine(alu.RuleCPL, alu.Result{})
}

//	SCF
func (c *CPU) setCarry(Instruction) (bool, error) {
	return false, c.combine(alu.RuleSCF, alu.Result{})
}

//	CCF
func (c *CPU) complementCarry(Instruction) (bool, error) {
	return false, c.combine(alu.RuleCCF, alu.ComplementCarry(c.Flags()))
}

// rotateFunc returns the rotate selected by bit 4 of the opcode:
// circular when clear, through the carry when set.
func (c *CPU) rotateFunc(opcode uint8) func(uint8) (alu.Result, error) {
	d := direction(opcode)
	if opcode&0x10 != 0 {
		f := c.Flags()
		return func(v uint8) (alu.Result, error) { return alu.CarryRotate(v, d, f) }
	}
	return func(v uint8) (alu.Result, error) { return alu.Rotate(v, d) }
}

// rotateAccumulator rotates A. Unlike the prefixed rotates, Z is
// always cleared.
//
//	RLCA  RRCA  RLA  RRA
func (c *CPU) rotateAccumulator(i Instruction) (bool, error) {
	return false, c.modify(7, alu.RuleRotateA, c.rotateFunc(i.Opcode))
}

//	RLC n  RRC n  RL n  RR n
func (c *CPU) rotate(i Instruction) (bool, error) {
	return false, c.modify(i.Opcode&0x07, alu.RuleShift, c.rotateFunc(i.Opcode))
}

//	SLA n  SRA n  SWAP n  SRL n
func (c *CPU) shift(i Instruction) (bool, error) {
	var op func(uint8) (alu.Result, error)
	switch (i.Opcode >> 3) & 0x07 {
	case 4:
		op = func(v uint8) (alu.Result, error) { return alu.Shift(v, bits.Left) }
	case 5:
		op = func(v uint8) (alu.Result, error) { return alu.ShiftRightArithmetic(v), nil }
	case 6:
		op = func(v uint8) (alu.Result, error) { return alu.Swap(v), nil }
	default:
		op = func(v uint8) (alu.Result, error) { return alu.Shift(v, bits.Right) }
	}
	return false, c.modify(i.Opcode&0x07, alu.RuleShift, op)
}

//	BIT b, n
func (c *CPU) testBit(i Instruction) (bool, error) {
	r, err := alu.Bit(c.operand8(i.Opcode&0x07), (i.Opcode>>3)&0x07)
	if err != nil {
		return false, err
	}
	return false, c.combine(alu.RuleBit, r)
}

//	RES b, n
func (c *CPU) resetBit(i Instruction) (bool, error) {
	code := i.Opcode & 0x07
	v, err := bits.Reset(c.operand8(code), (i.Opcode>>3)&0x07)
	if err != nil {
		return false, err
	}
	return false, c.setOperand8(code, v)
}

//	SET b, n
func (c *CPU) setBit(i Instruction) (bool, error) {
	code := i.Opcode & 0x07
	v, err := bits.Set(c.operand8(code), (i.Opcode>>3)&0x07)
	if err != nil {
		return false, err
	}
	return false, c.setOperand8(code, v)
}
