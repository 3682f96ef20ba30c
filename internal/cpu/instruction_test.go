package cpu

import "testing"

func TestInstructionSet(t *testing.T) {
	tests := []struct {
		opcode               uint8
		prefixed             bool
		name                 string
		family               Family
		bytes, cycles, extra uint8
	}{
		{0x00, false, "NOP", FamilyNOP, 1, 1, 0},
		{0x3E, false, "LD A, n8", FamilyLDImm8, 2, 2, 0},
		{0x36, false, "LD (HL), n8", FamilyLDImm8, 2, 3, 0},
		{0x46, false, "LD B, (HL)", FamilyLD, 1, 2, 0},
		{0x2A, false, "LD A, (HL+)", FamilyLDInd, 1, 2, 0},
		{0x20, false, "JR NZ, e8", FamilyJR, 2, 2, 1},
		{0xC2, false, "JP NZ, a16", FamilyJP, 3, 3, 1},
		{0xDC, false, "CALL C, a16", FamilyCALL, 3, 3, 3},
		{0xD0, false, "RET NC", FamilyRET, 1, 2, 3},
		{0xF1, false, "POP AF", FamilyPOP, 1, 3, 0},
		{0x31, false, "LD SP, n16", FamilyLDImm16, 3, 3, 0},
		{0x8E, false, "ADC A, (HL)", FamilyADD, 1, 2, 0},
		{0xFE, false, "CP A, n8", FamilyCP, 2, 2, 0},
		{0xEF, false, "RST 28H", FamilyRST, 1, 4, 0},
		{0x11, true, "RL C", FamilyRotate, 2, 2, 0},
		{0x3E, true, "SRL (HL)", FamilyShift, 2, 4, 0},
		{0x46, true, "BIT 0, (HL)", FamilyBIT, 2, 3, 0},
		{0xFF, true, "SET 7, A", FamilySET, 2, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := InstructionSet[tt.opcode]
			if tt.prefixed {
				i = InstructionSetCB[tt.opcode]
			}
			if i.Name != tt.name || i.Family != tt.family {
				t.Errorf("expected %s in family %d, got %s in family %d", tt.name, tt.family, i.Name, i.Family)
			}
			if i.Bytes != tt.bytes || i.Cycles != tt.cycles || i.Xtra != tt.extra {
				t.Errorf("expected %d/%d/%d, got %d/%d/%d", tt.bytes, tt.cycles, tt.extra, i.Bytes, i.Cycles, i.Xtra)
			}
		})
	}
}

func TestInstructionSet_Disallowed(t *testing.T) {
	for _, op := range append(disallowedOpcodes, prefixCB) {
		if InstructionSet[op].Defined() {
			t.Errorf("expected opcode 0x%02X to be undefined", op)
		}
	}

	defined := 0
	for _, i := range InstructionSet {
		if i.Defined() {
			defined++
		}
	}
	if defined != 244 {
		t.Errorf("expected 244 defined opcodes, got %d", defined)
	}
}
