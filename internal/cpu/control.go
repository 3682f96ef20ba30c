package cpu

var controlHandlers = map[Family]handler{
	FamilyNOP:  (*CPU).nop,
	FamilySTOP: (*CPU).nop,
	FamilyHALT: (*CPU).halt,
	FamilyDI:   (*CPU).disableInterrupts,
	FamilyEI:   (*CPU).enableInterrupts,
	FamilyJP:   (*CPU).jumpAbsolute,
	FamilyJPHL: (*CPU).jumpHL,
	FamilyJR:   (*CPU).jumpRelative,
	FamilyCALL: (*CPU).call,
	FamilyRET:  (*CPU).ret,
	FamilyRETI: (*CPU).reti,
	FamilyRST:  (*CPU).restart,
}

func (c *CPU) nop(Instruction) (bool, error) {
	return false, nil
}

// halt suspends execution until an interrupt is pending.
func (c *CPU) halt(Instruction) (bool, error) {
	c.halted = true
	return false, nil
}

func (c *CPU) disableInterrupts(Instruction) (bool, error) {
	c.IME = false
	return false, nil
}

func (c *CPU) enableInterrupts(Instruction) (bool, error) {
	c.IME = true
	return false, nil
}

// jumpAbsolute jumps to the immediate address.
//
//	JP a16
//	JP cc, a16
func (c *CPU) jumpAbsolute(i Instruction) (bool, error) {
	taken, err := c.branch(i, 0xC3)
	if !taken || err != nil {
		return false, err
	}
	addr, err := c.immediate16()
	if err != nil {
		return false, err
	}
	c.PC = addr
	return true, nil
}

// jumpHL jumps to the address in HL.
//
//	JP HL
func (c *CPU) jumpHL(Instruction) (bool, error) {
	c.PC = c.Pair(HL)
	return true, nil
}

// jumpRelative adds the signed immediate to the address of the
// following instruction.
//
//	JR e8
//	JR cc, e8
func (c *CPU) jumpRelative(i Instruction) (bool, error) {
	taken, err := c.branch(i, 0x18)
	if !taken || err != nil {
		return false, err
	}
	offset := int8(c.immediate8())
	c.PC = c.PC + uint16(i.Bytes) + uint16(offset)
	return true, nil
}

// call pushes the address of the following instruction and jumps to
// the immediate address.
//
//	CALL a16
//	CALL cc, a16
func (c *CPU) call(i Instruction) (bool, error) {
	taken, err := c.branch(i, 0xCD)
	if !taken || err != nil {
		return false, err
	}
	addr, err := c.immediate16()
	if err != nil {
		return false, err
	}
	if err := c.push(c.PC + uint16(i.Bytes)); err != nil {
		return false, err
	}
	c.PC = addr
	return true, nil
}

// ret pops the return address from the stack.
//
//	RET
//	RET cc
func (c *CPU) ret(i Instruction) (bool, error) {
	taken, err := c.branch(i, 0xC9)
	if !taken || err != nil {
		return false, err
	}
	addr, err := c.pop()
	if err != nil {
		return false, err
	}
	c.PC = addr
	return true, nil
}

// reti returns and enables interrupts.
func (c *CPU) reti(Instruction) (bool, error) {
	addr, err := c.pop()
	if err != nil {
		return false, err
	}
	c.PC = addr
	c.IME = true
	return true, nil
}

// restart calls one of the eight fixed addresses encoded in bits 3-5.
//
//	RST n
func (c *CPU) restart(i Instruction) (bool, error) {
	if err := c.push(c.PC + uint16(i.Bytes)); err != nil {
		return false, err
	}
	c.PC = uint16(i.Opcode & 0x38)
	return true, nil
}
