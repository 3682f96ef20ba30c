package cpu

import (
	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/pkg/bits"
)

// handler executes an instruction. It reports whether it set PC
// itself, in which case PC is not advanced past the instruction and a
// conditional branch is charged its extra cycles.
type handler func(c *CPU, i Instruction) (jumped bool, err error)

// handlers maps every family to its handler. Each handler group
// (control, storage, arithmetic) contributes its own families.
var handlers = mergeHandlers(controlHandlers, storageHandlers, arithmeticHandlers)

func mergeHandlers(groups ...map[Family]handler) [familyCount]handler {
	var merged [familyCount]handler
	for _, group := range groups {
		for family, h := range group {
			merged[family] = h
		}
	}
	return merged
}

func (c *CPU) dispatch(i Instruction) (bool, error) {
	if int(i.Family) >= len(handlers) || handlers[i.Family] == nil {
		return false, errors.New(errors.NotImplemented, "%s", i)
	}
	return handlers[i.Family](c, i)
}

// operand codes, as encoded in the low 3 bits (source) or bits 3-5
// (destination) of an opcode
const codeHL = 6

var operandRegisters = [8]Register{B, C, D, E, H, L, 0, A}

// read reads a byte from the bus.
func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// read16 reads a little endian word from the bus.
func (c *CPU) read16(addr uint16) (uint16, error) {
	return c.bus.Read16(addr)
}

// write writes a byte to the bus, recording the address for the write
// listeners.
func (c *CPU) write(addr uint16, v uint8) error {
	if err := c.bus.Write(addr, v); err != nil {
		return err
	}
	c.writes = append(c.writes, addr)
	return nil
}

// write16 writes a little endian word to the bus.
func (c *CPU) write16(addr uint16, v uint16) error {
	if err := c.bus.Write16(addr, v); err != nil {
		return err
	}
	c.writes = append(c.writes, addr, addr+1)
	return nil
}

// immediate8 returns the byte following the opcode.
func (c *CPU) immediate8() uint8 {
	return c.read(c.PC + 1)
}

// immediate16 returns the word following the opcode.
func (c *CPU) immediate16() (uint16, error) {
	return c.read16(c.PC + 1)
}

// operand8 returns the register or (HL) byte encoded by code.
func (c *CPU) operand8(code uint8) uint8 {
	if code == codeHL {
		return c.read(c.Pair(HL))
	}
	return c.Register(operandRegisters[code])
}

// setOperand8 stores v into the register or (HL) byte encoded by code.
func (c *CPU) setOperand8(code uint8, v uint8) error {
	if code == codeHL {
		return c.write(c.Pair(HL), v)
	}
	c.SetRegister(operandRegisters[code], v)
	return nil
}

// pair16 returns the pair encoded by code, where 3 is SP.
func (c *CPU) pair16(code uint8) uint16 {
	if code == 3 {
		return c.SP
	}
	return c.Pair(Pair(code))
}

// setPair16 sets the pair encoded by code, where 3 is SP.
func (c *CPU) setPair16(code uint8, v uint16) {
	if code == 3 {
		c.SP = v
		return
	}
	c.SetPair(Pair(code), v)
}

// source returns the source operand of an 8-bit ALU instruction,
// either a register, (HL) or the immediate byte.
func (c *CPU) source(i Instruction) uint8 {
	if i.Opcode >= 0xC0 {
		return c.immediate8()
	}
	return c.operand8(i.Opcode & 0x07)
}

// direction returns the rotate direction encoded by bit 3.
func direction(opcode uint8) bits.Direction {
	if opcode&0x08 != 0 {
		return bits.Right
	}
	return bits.Left
}

// Condition is a branch condition.
type Condition uint8

const (
	ConditionNZ Condition = iota
	ConditionZ
	ConditionNC
	ConditionC
)

// condition evaluates cond against the flags.
func (c *CPU) condition(cond Condition) (bool, error) {
	f := c.Flags()
	switch cond {
	case ConditionNZ:
		return !f.Zero(), nil
	case ConditionZ:
		return f.Zero(), nil
	case ConditionNC:
		return !f.Carry(), nil
	case ConditionC:
		return f.Carry(), nil
	}
	return false, errors.New(errors.BadParameter, "invalid condition %d", cond)
}

// branch reports whether a branch instruction should be taken. The
// unconditional forms are always taken.
func (c *CPU) branch(i Instruction, unconditional uint8) (bool, error) {
	if i.Opcode == unconditional {
		return true, nil
	}
	return c.condition(Condition((i.Opcode >> 3) & 0x03))
}

// push writes v below the top of the stack and decrements SP by two.
// SP is left unchanged when the write fails.
func (c *CPU) push(v uint16) error {
	if err := c.write16(c.SP-2, v); err != nil {
		return err
	}
	c.SP -= 2
	return nil
}

// pop reads the top of the stack and increments SP by two.
func (c *CPU) pop() (uint16, error) {
	v, err := c.read16(c.SP)
	if err != nil {
		return 0, err
	}
	c.SP += 2
	return v, nil
}
