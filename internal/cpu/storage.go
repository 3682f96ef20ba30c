package cpu

import "github.com/thelolagemann/gbcore/internal/alu"

var storageHandlers = map[Family]handler{
	FamilyLD:      (*CPU).load,
	FamilyLDImm8:  (*CPU).loadImmediate8,
	FamilyLDImm16: (*CPU).loadImmediate16,
	FamilyLDInd:   (*CPU).loadIndirect,
	FamilyLDHigh:  (*CPU).loadHigh,
	FamilyLDHighC: (*CPU).loadHighC,
	FamilyLDAbs:   (*CPU).loadAbsolute,
	FamilyLDAbsSP: (*CPU).storeSP,
	FamilyLDSPHL:  (*CPU).loadSPHL,
	FamilyLDHLSP:  (*CPU).loadHLSP,
	FamilyPUSH:    (*CPU).pushPair,
	FamilyPOP:     (*CPU).popPair,
}

// load copies one register or (HL) into another.
//
//	LD r, r
func (c *CPU) load(i Instruction) (bool, error) {
	return false, c.setOperand8((i.Opcode>>3)&0x07, c.operand8(i.Opcode&0x07))
}

//	LD r, n8
func (c *CPU) loadImmediate8(i Instruction) (bool, error) {
	return false, c.setOperand8((i.Opcode>>3)&0x07, c.immediate8())
}

//	LD r16, n16
func (c *CPU) loadImmediate16(i Instruction) (bool, error) {
	v, err := c.immediate16()
	if err != nil {
		return false, err
	}
	c.setPair16((i.Opcode>>4)&0x03, v)
	return false, nil
}

// loadIndirect moves A to or from the address held in BC, DE or HL,
// incrementing or decrementing HL afterwards for codes 2 and 3.
//
//	LD (BC), A   LD A, (BC)
//	LD (DE), A   LD A, (DE)
//	LD (HL+), A  LD A, (HL+)
//	LD (HL-), A  LD A, (HL-)
func (c *CPU) loadIndirect(i Instruction) (bool, error) {
	code := (i.Opcode >> 4) & 0x03
	var addr uint16
	switch code {
	case 0, 1:
		addr = c.Pair(Pair(code))
	case 2:
		addr = c.Pair(HL)
		c.SetPair(HL, addr+1)
	case 3:
		addr = c.Pair(HL)
		c.SetPair(HL, addr-1)
	}
	return false, c.transferA(addr, i.Opcode&0x08 != 0)
}

// transferA loads A from addr when toA is set, or stores A at addr.
func (c *CPU) transferA(addr uint16, toA bool) error {
	if toA {
		c.SetRegister(A, c.read(addr))
		return nil
	}
	return c.write(addr, c.Register(A))
}

//	LDH (a8), A  LDH A, (a8)
func (c *CPU) loadHigh(i Instruction) (bool, error) {
	return false, c.transferA(0xFF00|uint16(c.immediate8()), i.Opcode&0x10 != 0)
}

//	LD (C), A  LD A, (C)
func (c *CPU) loadHighC(i Instruction) (bool, error) {
	return false, c.transferA(0xFF00|uint16(c.Register(C)), i.Opcode&0x10 != 0)
}

//	LD (a16), A  LD A, (a16)
func (c *CPU) loadAbsolute(i Instruction) (bool, error) {
	addr, err := c.immediate16()
	if err != nil {
		return false, err
	}
	return false, c.transferA(addr, i.Opcode&0x10 != 0)
}

//	LD (a16), SP
func (c *CPU) storeSP(Instruction) (bool, error) {
	addr, err := c.immediate16()
	if err != nil {
		return false, err
	}
	return false, c.write16(addr, c.SP)
}

//	LD SP, HL
func (c *CPU) loadSPHL(Instruction) (bool, error) {
	c.SP = c.Pair(HL)
	return false, nil
}

// loadHLSP loads SP plus a signed immediate into HL, with the flags of
// ADD SP, e8.
//
//	LD HL, SP+e8
func (c *CPU) loadHLSP(Instruction) (bool, error) {
	r := c.addSP()
	c.SetPair(HL, r.Value)
	return false, c.combine(alu.RuleAddSP, r)
}

// pushPair pushes BC, DE, HL or AF.
//
//	PUSH r16
func (c *CPU) pushPair(i Instruction) (bool, error) {
	return false, c.push(c.Pair(Pair((i.Opcode >> 4) & 0x03)))
}

// popPair pops into BC, DE, HL or AF. The low nibble of F is dropped.
//
//	POP r16
func (c *CPU) popPair(i Instruction) (bool, error) {
	v, err := c.pop()
	if err != nil {
		return false, err
	}
	c.SetPair(Pair((i.Opcode>>4)&0x03), v)
	return false, nil
}
