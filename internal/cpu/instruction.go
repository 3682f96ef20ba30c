package cpu

import "fmt"

// Family groups the opcodes that share a handler. Operands (registers,
// conditions, bit indices) are decoded from the opcode by the handler.
type Family uint8

const (
	familyUndefined Family = iota

	// control flow
	FamilyNOP
	FamilySTOP
	FamilyHALT
	FamilyDI
	FamilyEI
	FamilyJP
	FamilyJPHL
	FamilyJR
	FamilyCALL
	FamilyRET
	FamilyRETI
	FamilyRST

	// storage
	FamilyLD       // LD r8, r8
	FamilyLDImm8   // LD r8, n8
	FamilyLDImm16  // LD r16, n16
	FamilyLDInd    // LD (r16), A and LD A, (r16)
	FamilyLDHigh   // LDH (a8), A and LDH A, (a8)
	FamilyLDHighC  // LD (C), A and LD A, (C)
	FamilyLDAbs    // LD (a16), A and LD A, (a16)
	FamilyLDAbsSP  // LD (a16), SP
	FamilyLDSPHL   // LD SP, HL
	FamilyLDHLSP   // LD HL, SP+e8
	FamilyPUSH
	FamilyPOP

	// arithmetic and logic
	FamilyADD // ADD and ADC
	FamilySUB // SUB and SBC
	FamilyCP
	FamilyAND
	FamilyOR
	FamilyXOR
	FamilyINC
	FamilyDEC
	FamilyINC16
	FamilyDEC16
	FamilyADDHL
	FamilyADDSP
	FamilyDAA
	FamilyCPL
	FamilySCF
	FamilyCCF
	FamilyRotateA // RLCA, RRCA, RLA, RRA
	FamilyRotate  // RLC, RRC, RL, RR
	FamilyShift   // SLA, SRA, SWAP, SRL
	FamilyBIT
	FamilyRES
	FamilySET

	familyCount
)

// Instruction describes an opcode. Cycles is the cost in machine
// cycles; a taken conditional branch costs Xtra more.
type Instruction struct {
	Opcode uint8
	Name   string
	Family Family
	Bytes  uint8
	Cycles uint8
	Xtra   uint8

	prefixed bool
}

// Defined reports whether i describes a real instruction.
func (i Instruction) Defined() bool {
	return i.Family != familyUndefined
}

func (i Instruction) String() string {
	if i.prefixed {
		return fmt.Sprintf("%s (0xCB%02X)", i.Name, i.Opcode)
	}
	return fmt.Sprintf("%s (0x%02X)", i.Name, i.Opcode)
}

// prefixCB selects InstructionSetCB for the following byte.
const prefixCB = 0xCB

var (
	// InstructionSet holds the unprefixed instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction with the provided opcode
// in the InstructionSet.
func DefineInstruction(opcode uint8, name string, family Family, bytes, cycles, xtra uint8) {
	InstructionSet[opcode] = Instruction{
		Opcode: opcode,
		Name:   name,
		Family: family,
		Bytes:  bytes,
		Cycles: cycles,
		Xtra:   xtra,
	}
}

// DefineInstructionCB defines the instruction with the provided opcode
// in the InstructionSetCB. Prefixed instructions are two bytes long.
func DefineInstructionCB(opcode uint8, name string, family Family, cycles uint8) {
	InstructionSetCB[opcode] = Instruction{
		Opcode:   opcode,
		Name:     name,
		Family:   family,
		Bytes:    2,
		Cycles:   cycles,
		prefixed: true,
	}
}

// disallowedOpcodes lock up the hardware and are left undefined.
var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// operandNames are the names of the 3-bit operand codes.
var operandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// pairOperandNames are the names of the 2-bit pair codes, as used by
// all instructions but PUSH and POP.
var pairOperandNames = [4]string{"BC", "DE", "HL", "SP"}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

func init() {
	defineControl()
	defineStorage()
	defineArithmetic()
	defineCB()

	// every opcode is either defined or disallowed
	disallowed := make(map[uint8]bool, len(disallowedOpcodes))
	for _, op := range disallowedOpcodes {
		disallowed[op] = true
	}
	for op, i := range InstructionSet {
		switch {
		case op == prefixCB || disallowed[uint8(op)]:
			if i.Defined() {
				panic(fmt.Sprintf("opcode 0x%02X must not be defined", op))
			}
		case !i.Defined():
			panic(fmt.Sprintf("opcode 0x%02X is not defined", op))
		case handlers[i.Family] == nil:
			panic(fmt.Sprintf("%s has no handler", i))
		}
	}
	for op, i := range InstructionSetCB {
		if !i.Defined() || handlers[i.Family] == nil {
			panic(fmt.Sprintf("prefixed opcode 0x%02X is not defined", op))
		}
	}
}

func defineControl() {
	DefineInstruction(0x00, "NOP", FamilyNOP, 1, 1, 0)
	DefineInstruction(0x10, "STOP", FamilySTOP, 2, 1, 0)
	DefineInstruction(0x76, "HALT", FamilyHALT, 1, 1, 0)
	DefineInstruction(0xF3, "DI", FamilyDI, 1, 1, 0)
	DefineInstruction(0xFB, "EI", FamilyEI, 1, 1, 0)

	DefineInstruction(0xC3, "JP a16", FamilyJP, 3, 4, 0)
	DefineInstruction(0xE9, "JP HL", FamilyJPHL, 1, 1, 0)
	DefineInstruction(0x18, "JR e8", FamilyJR, 2, 3, 0)
	DefineInstruction(0xCD, "CALL a16", FamilyCALL, 3, 6, 0)
	DefineInstruction(0xC9, "RET", FamilyRET, 1, 4, 0)
	DefineInstruction(0xD9, "RETI", FamilyRETI, 1, 4, 0)

	for cc := uint8(0); cc < 4; cc++ {
		name := conditionNames[cc]
		DefineInstruction(0xC2|cc<<3, "JP "+name+", a16", FamilyJP, 3, 3, 1)
		DefineInstruction(0x20|cc<<3, "JR "+name+", e8", FamilyJR, 2, 2, 1)
		DefineInstruction(0xC4|cc<<3, "CALL "+name+", a16", FamilyCALL, 3, 3, 3)
		DefineInstruction(0xC0|cc<<3, "RET "+name, FamilyRET, 1, 2, 3)
	}

	for i := uint8(0); i < 8; i++ {
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", i<<3), FamilyRST, 1, 4, 0)
	}
}

func defineStorage() {
	// 0x40 - 0x7F - LD r, r (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 | dst<<3 | src
			if op == 0x76 {
				continue
			}
			cycles := uint8(1)
			if dst == 6 || src == 6 {
				cycles = 2
			}
			DefineInstruction(op, fmt.Sprintf("LD %s, %s", operandNames[dst], operandNames[src]), FamilyLD, 1, cycles, 0)
		}

		cycles := uint8(2)
		if dst == 6 {
			cycles = 3
		}
		DefineInstruction(0x06|dst<<3, fmt.Sprintf("LD %s, n8", operandNames[dst]), FamilyLDImm8, 2, cycles, 0)
	}

	indirect := [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}
	for p := uint8(0); p < 4; p++ {
		DefineInstruction(0x01|p<<4, fmt.Sprintf("LD %s, n16", pairOperandNames[p]), FamilyLDImm16, 3, 3, 0)
		DefineInstruction(0x02|p<<4, fmt.Sprintf("LD %s, A", indirect[p]), FamilyLDInd, 1, 2, 0)
		DefineInstruction(0x0A|p<<4, fmt.Sprintf("LD A, %s", indirect[p]), FamilyLDInd, 1, 2, 0)

		stack := pairOperandNames[p]
		if p == 3 {
			stack = "AF"
		}
		DefineInstruction(0xC1|p<<4, "POP "+stack, FamilyPOP, 1, 3, 0)
		DefineInstruction(0xC5|p<<4, "PUSH "+stack, FamilyPUSH, 1, 4, 0)
	}

	DefineInstruction(0x08, "LD (a16), SP", FamilyLDAbsSP, 3, 5, 0)
	DefineInstruction(0xE0, "LDH (a8), A", FamilyLDHigh, 2, 3, 0)
	DefineInstruction(0xF0, "LDH A, (a8)", FamilyLDHigh, 2, 3, 0)
	DefineInstruction(0xE2, "LD (C), A", FamilyLDHighC, 1, 2, 0)
	DefineInstruction(0xF2, "LD A, (C)", FamilyLDHighC, 1, 2, 0)
	DefineInstruction(0xEA, "LD (a16), A", FamilyLDAbs, 3, 4, 0)
	DefineInstruction(0xFA, "LD A, (a16)", FamilyLDAbs, 3, 4, 0)
	DefineInstruction(0xF9, "LD SP, HL", FamilyLDSPHL, 1, 2, 0)
	DefineInstruction(0xF8, "LD HL, SP+e8", FamilyLDHLSP, 2, 3, 0)
}

func defineArithmetic() {
	// 0x80 - 0xBF - ALU A, r and 0xC6 - 0xFE - ALU A, n8
	ops := [8]struct {
		name   string
		family Family
	}{
		{"ADD", FamilyADD}, {"ADC", FamilyADD},
		{"SUB", FamilySUB}, {"SBC", FamilySUB},
		{"AND", FamilyAND}, {"XOR", FamilyXOR},
		{"OR", FamilyOR}, {"CP", FamilyCP},
	}
	for i, o := range ops {
		for src := uint8(0); src < 8; src++ {
			cycles := uint8(1)
			if src == 6 {
				cycles = 2
			}
			DefineInstruction(0x80|uint8(i)<<3|src, fmt.Sprintf("%s A, %s", o.name, operandNames[src]), o.family, 1, cycles, 0)
		}
		DefineInstruction(0xC6|uint8(i)<<3, o.name+" A, n8", o.family, 2, 2, 0)
	}

	for r := uint8(0); r < 8; r++ {
		cycles := uint8(1)
		if r == 6 {
			cycles = 3
		}
		DefineInstruction(0x04|r<<3, "INC "+operandNames[r], FamilyINC, 1, cycles, 0)
		DefineInstruction(0x05|r<<3, "DEC "+operandNames[r], FamilyDEC, 1, cycles, 0)
	}

	for p := uint8(0); p < 4; p++ {
		DefineInstruction(0x03|p<<4, "INC "+pairOperandNames[p], FamilyINC16, 1, 2, 0)
		DefineInstruction(0x0B|p<<4, "DEC "+pairOperandNames[p], FamilyDEC16, 1, 2, 0)
		DefineInstruction(0x09|p<<4, "ADD HL, "+pairOperandNames[p], FamilyADDHL, 1, 2, 0)
	}

	DefineInstruction(0xE8, "ADD SP, e8", FamilyADDSP, 2, 4, 0)
	DefineInstruction(0x27, "DAA", FamilyDAA, 1, 1, 0)
	DefineInstruction(0x2F, "CPL", FamilyCPL, 1, 1, 0)
	DefineInstruction(0x37, "SCF", FamilySCF, 1, 1, 0)
	DefineInstruction(0x3F, "CCF", FamilyCCF, 1, 1, 0)

	DefineInstruction(0x07, "RLCA", FamilyRotateA, 1, 1, 0)
	DefineInstruction(0x0F, "RRCA", FamilyRotateA, 1, 1, 0)
	DefineInstruction(0x17, "RLA", FamilyRotateA, 1, 1, 0)
	DefineInstruction(0x1F, "RRA", FamilyRotateA, 1, 1, 0)
}

func defineCB() {
	rotates := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	for r := uint8(0); r < 8; r++ {
		// (HL) costs an extra read and write, or just a read for BIT
		cycles, bitCycles := uint8(2), uint8(2)
		if r == 6 {
			cycles, bitCycles = 4, 3
		}

		for i, name := range rotates {
			family := FamilyRotate
			if i >= 4 {
				family = FamilyShift
			}
			DefineInstructionCB(uint8(i)<<3|r, name+" "+operandNames[r], family, cycles)
		}

		for b := uint8(0); b < 8; b++ {
			DefineInstructionCB(0x40|b<<3|r, fmt.Sprintf("BIT %d, %s", b, operandNames[r]), FamilyBIT, bitCycles)
			DefineInstructionCB(0x80|b<<3|r, fmt.Sprintf("RES %d, %s", b, operandNames[r]), FamilyRES, cycles)
			DefineInstructionCB(0xC0|b<<3|r, fmt.Sprintf("SET %d, %s", b, operandNames[r]), FamilySET, cycles)
		}
	}
}
