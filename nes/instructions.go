package nes

// instruction binds an opcode to an operation, an addressing mode and its cycle cost.
type instruction struct {
	opcode byte
	op     *operation
	mode   addressingMode
	cycles int
	// pageCycle adds a cycle when indexing crosses a page.
	pageCycle bool
	official  bool
}

// size is the opcode plus its operand bytes.
func (i *instruction) size() uint16 {
	return 1 + i.mode.operandLength()
}

func (i *instruction) mnemonic() string {
	if i.official {
		return i.op.mnemonic
	}
	return "*" + i.op.mnemonic
}

// instructionSet is indexed by opcode, nil for opcodes the CPU does not know.
type instructionSet [256]*instruction

// newInstructionSet indexes the tables by opcode, rejecting any opcode defined twice.
func newInstructionSet(tables ...[]instruction) (*instructionSet, error) {
	set := &instructionSet{}
	for _, table := range tables {
		for i := range table {
			inst := &table[i]
			if prev := set[inst.opcode]; prev != nil {
				return nil, configErrorf("opcode 0x%02x is defined twice: %s %s and %s %s",
					inst.opcode, prev.op.mnemonic, prev.mode, inst.op.mnemonic, inst.mode)
			}
			set[inst.opcode] = inst
		}
	}
	return set, nil
}

// Cycle counts.
// Reference:
//   http://www.6502.org/tutorials/6502opcodes.html
//   https://www.nesdev.org/wiki/CPU_unofficial_opcodes
var officialInstructions = []instruction{
	{0x69, opADC, immediate, 2, false, true},
	{0x65, opADC, zeropage, 3, false, true},
	{0x75, opADC, zeropageX, 4, false, true},
	{0x6D, opADC, absolute, 4, false, true},
	{0x7D, opADC, absoluteX, 4, true, true},
	{0x79, opADC, absoluteY, 4, true, true},
	{0x61, opADC, indirectX, 6, false, true},
	{0x71, opADC, indirectY, 5, true, true},

	{0x29, opAND, immediate, 2, false, true},
	{0x25, opAND, zeropage, 3, false, true},
	{0x35, opAND, zeropageX, 4, false, true},
	{0x2D, opAND, absolute, 4, false, true},
	{0x3D, opAND, absoluteX, 4, true, true},
	{0x39, opAND, absoluteY, 4, true, true},
	{0x21, opAND, indirectX, 6, false, true},
	{0x31, opAND, indirectY, 5, true, true},

	{0x0A, opASL, accumulator, 2, false, true},
	{0x06, opASL, zeropage, 5, false, true},
	{0x16, opASL, zeropageX, 6, false, true},
	{0x0E, opASL, absolute, 6, false, true},
	{0x1E, opASL, absoluteX, 7, false, true},

	{0x90, opBCC, relative, 2, false, true},
	{0xB0, opBCS, relative, 2, false, true},
	{0xF0, opBEQ, relative, 2, false, true},
	{0x30, opBMI, relative, 2, false, true},
	{0xD0, opBNE, relative, 2, false, true},
	{0x10, opBPL, relative, 2, false, true},
	{0x50, opBVC, relative, 2, false, true},
	{0x70, opBVS, relative, 2, false, true},

	{0x24, opBIT, zeropage, 3, false, true},
	{0x2C, opBIT, absolute, 4, false, true},

	{0x00, opBRK, implied, 7, false, true},

	{0x18, opCLC, implied, 2, false, true},
	{0xD8, opCLD, implied, 2, false, true},
	{0x58, opCLI, implied, 2, false, true},
	{0xB8, opCLV, implied, 2, false, true},

	{0xC9, opCMP, immediate, 2, false, true},
	{0xC5, opCMP, zeropage, 3, false, true},
	{0xD5, opCMP, zeropageX, 4, false, true},
	{0xCD, opCMP, absolute, 4, false, true},
	{0xDD, opCMP, absoluteX, 4, true, true},
	{0xD9, opCMP, absoluteY, 4, true, true},
	{0xC1, opCMP, indirectX, 6, false, true},
	{0xD1, opCMP, indirectY, 5, true, true},

	{0xE0, opCPX, immediate, 2, false, true},
	{0xE4, opCPX, zeropage, 3, false, true},
	{0xEC, opCPX, absolute, 4, false, true},

	{0xC0, opCPY, immediate, 2, false, true},
	{0xC4, opCPY, zeropage, 3, false, true},
	{0xCC, opCPY, absolute, 4, false, true},

	{0xC6, opDEC, zeropage, 5, false, true},
	{0xD6, opDEC, zeropageX, 6, false, true},
	{0xCE, opDEC, absolute, 6, false, true},
	{0xDE, opDEC, absoluteX, 7, false, true},

	{0xCA, opDEX, implied, 2, false, true},
	{0x88, opDEY, implied, 2, false, true},

	{0x49, opEOR, immediate, 2, false, true},
	{0x45, opEOR, zeropage, 3, false, true},
	{0x55, opEOR, zeropageX, 4, false, true},
	{0x4D, opEOR, absolute, 4, false, true},
	{0x5D, opEOR, absoluteX, 4, true, true},
	{0x59, opEOR, absoluteY, 4, true, true},
	{0x41, opEOR, indirectX, 6, false, true},
	{0x51, opEOR, indirectY, 5, true, true},

	{0xE6, opINC, zeropage, 5, false, true},
	{0xF6, opINC, zeropageX, 6, false, true},
	{0xEE, opINC, absolute, 6, false, true},
	{0xFE, opINC, absoluteX, 7, false, true},

	{0xE8, opINX, implied, 2, false, true},
	{0xC8, opINY, implied, 2, false, true},

	{0x4C, opJMP, absolute, 3, false, true},
	{0x6C, opJMP, indirect, 5, false, true},
	{0x20, opJSR, absolute, 6, false, true},

	{0xA9, opLDA, immediate, 2, false, true},
	{0xA5, opLDA, zeropage, 3, false, true},
	{0xB5, opLDA, zeropageX, 4, false, true},
	{0xAD, opLDA, absolute, 4, false, true},
	{0xBD, opLDA, absoluteX, 4, true, true},
	{0xB9, opLDA, absoluteY, 4, true, true},
	{0xA1, opLDA, indirectX, 6, false, true},
	{0xB1, opLDA, indirectY, 5, true, true},

	{0xA2, opLDX, immediate, 2, false, true},
	{0xA6, opLDX, zeropage, 3, false, true},
	{0xB6, opLDX, zeropageY, 4, false, true},
	{0xAE, opLDX, absolute, 4, false, true},
	{0xBE, opLDX, absoluteY, 4, true, true},

	{0xA0, opLDY, immediate, 2, false, true},
	{0xA4, opLDY, zeropage, 3, false, true},
	{0xB4, opLDY, zeropageX, 4, false, true},
	{0xAC, opLDY, absolute, 4, false, true},
	{0xBC, opLDY, absoluteX, 4, true, true},

	{0x4A, opLSR, accumulator, 2, false, true},
	{0x46, opLSR, zeropage, 5, false, true},
	{0x56, opLSR, zeropageX, 6, false, true},
	{0x4E, opLSR, absolute, 6, false, true},
	{0x5E, opLSR, absoluteX, 7, false, true},

	{0xEA, opNOP, implied, 2, false, true},

	{0x09, opORA, immediate, 2, false, true},
	{0x05, opORA, zeropage, 3, false, true},
	{0x15, opORA, zeropageX, 4, false, true},
	{0x0D, opORA, absolute, 4, false, true},
	{0x1D, opORA, absoluteX, 4, true, true},
	{0x19, opORA, absoluteY, 4, true, true},
	{0x01, opORA, indirectX, 6, false, true},
	{0x11, opORA, indirectY, 5, true, true},

	{0x48, opPHA, implied, 3, false, true},
	{0x08, opPHP, implied, 3, false, true},
	{0x68, opPLA, implied, 4, false, true},
	{0x28, opPLP, implied, 4, false, true},

	{0x2A, opROL, accumulator, 2, false, true},
	{0x26, opROL, zeropage, 5, false, true},
	{0x36, opROL, zeropageX, 6, false, true},
	{0x2E, opROL, absolute, 6, false, true},
	{0x3E, opROL, absoluteX, 7, false, true},

	{0x6A, opROR, accumulator, 2, false, true},
	{0x66, opROR, zeropage, 5, false, true},
	{0x76, opROR, zeropageX, 6, false, true},
	{0x6E, opROR, absolute, 6, false, true},
	{0x7E, opROR, absoluteX, 7, false, true},

	{0x40, opRTI, implied, 6, false, true},
	{0x60, opRTS, implied, 6, false, true},

	{0xE9, opSBC, immediate, 2, false, true},
	{0xE5, opSBC, zeropage, 3, false, true},
	{0xF5, opSBC, zeropageX, 4, false, true},
	{0xED, opSBC, absolute, 4, false, true},
	{0xFD, opSBC, absoluteX, 4, true, true},
	{0xF9, opSBC, absoluteY, 4, true, true},
	{0xE1, opSBC, indirectX, 6, false, true},
	{0xF1, opSBC, indirectY, 5, true, true},

	{0x38, opSEC, implied, 2, false, true},
	{0xF8, opSED, implied, 2, false, true},
	{0x78, opSEI, implied, 2, false, true},

	{0x85, opSTA, zeropage, 3, false, true},
	{0x95, opSTA, zeropageX, 4, false, true},
	{0x8D, opSTA, absolute, 4, false, true},
	{0x9D, opSTA, absoluteX, 5, false, true},
	{0x99, opSTA, absoluteY, 5, false, true},
	{0x81, opSTA, indirectX, 6, false, true},
	{0x91, opSTA, indirectY, 6, false, true},

	{0x86, opSTX, zeropage, 3, false, true},
	{0x96, opSTX, zeropageY, 4, false, true},
	{0x8E, opSTX, absolute, 4, false, true},

	{0x84, opSTY, zeropage, 3, false, true},
	{0x94, opSTY, zeropageX, 4, false, true},
	{0x8C, opSTY, absolute, 4, false, true},

	{0xAA, opTAX, implied, 2, false, true},
	{0xA8, opTAY, implied, 2, false, true},
	{0xBA, opTSX, implied, 2, false, true},
	{0x8A, opTXA, implied, 2, false, true},
	{0x9A, opTXS, implied, 2, false, true},
	{0x98, opTYA, implied, 2, false, true},
}

var unofficialInstructions = []instruction{
	{0x1A, opNOP, implied, 2, false, false},
	{0x3A, opNOP, implied, 2, false, false},
	{0x5A, opNOP, implied, 2, false, false},
	{0x7A, opNOP, implied, 2, false, false},
	{0xDA, opNOP, implied, 2, false, false},
	{0xFA, opNOP, implied, 2, false, false},
	{0x80, opNOP, immediate, 2, false, false},
	{0x82, opNOP, immediate, 2, false, false},
	{0x89, opNOP, immediate, 2, false, false},
	{0xC2, opNOP, immediate, 2, false, false},
	{0xE2, opNOP, immediate, 2, false, false},
	{0x04, opNOP, zeropage, 3, false, false},
	{0x44, opNOP, zeropage, 3, false, false},
	{0x64, opNOP, zeropage, 3, false, false},
	{0x14, opNOP, zeropageX, 4, false, false},
	{0x34, opNOP, zeropageX, 4, false, false},
	{0x54, opNOP, zeropageX, 4, false, false},
	{0x74, opNOP, zeropageX, 4, false, false},
	{0xD4, opNOP, zeropageX, 4, false, false},
	{0xF4, opNOP, zeropageX, 4, false, false},
	{0x0C, opNOP, absolute, 4, false, false},
	{0x1C, opNOP, absoluteX, 4, true, false},
	{0x3C, opNOP, absoluteX, 4, true, false},
	{0x5C, opNOP, absoluteX, 4, true, false},
	{0x7C, opNOP, absoluteX, 4, true, false},
	{0xDC, opNOP, absoluteX, 4, true, false},
	{0xFC, opNOP, absoluteX, 4, true, false},

	{0xA7, opLAX, zeropage, 3, false, false},
	{0xB7, opLAX, zeropageY, 4, false, false},
	{0xAF, opLAX, absolute, 4, false, false},
	{0xBF, opLAX, absoluteY, 4, true, false},
	{0xA3, opLAX, indirectX, 6, false, false},
	{0xB3, opLAX, indirectY, 5, true, false},

	{0x87, opSAX, zeropage, 3, false, false},
	{0x97, opSAX, zeropageY, 4, false, false},
	{0x8F, opSAX, absolute, 4, false, false},
	{0x83, opSAX, indirectX, 6, false, false},

	{0xEB, opSBC, immediate, 2, false, false},

	{0xC7, opDCP, zeropage, 5, false, false},
	{0xD7, opDCP, zeropageX, 6, false, false},
	{0xCF, opDCP, absolute, 6, false, false},
	{0xDF, opDCP, absoluteX, 7, false, false},
	{0xDB, opDCP, absoluteY, 7, false, false},
	{0xC3, opDCP, indirectX, 8, false, false},
	{0xD3, opDCP, indirectY, 8, false, false},

	{0xE7, opISB, zeropage, 5, false, false},
	{0xF7, opISB, zeropageX, 6, false, false},
	{0xEF, opISB, absolute, 6, false, false},
	{0xFF, opISB, absoluteX, 7, false, false},
	{0xFB, opISB, absoluteY, 7, false, false},
	{0xE3, opISB, indirectX, 8, false, false},
	{0xF3, opISB, indirectY, 8, false, false},

	{0x07, opSLO, zeropage, 5, false, false},
	{0x17, opSLO, zeropageX, 6, false, false},
	{0x0F, opSLO, absolute, 6, false, false},
	{0x1F, opSLO, absoluteX, 7, false, false},
	{0x1B, opSLO, absoluteY, 7, false, false},
	{0x03, opSLO, indirectX, 8, false, false},
	{0x13, opSLO, indirectY, 8, false, false},

	{0x27, opRLA, zeropage, 5, false, false},
	{0x37, opRLA, zeropageX, 6, false, false},
	{0x2F, opRLA, absolute, 6, false, false},
	{0x3F, opRLA, absoluteX, 7, false, false},
	{0x3B, opRLA, absoluteY, 7, false, false},
	{0x23, opRLA, indirectX, 8, false, false},
	{0x33, opRLA, indirectY, 8, false, false},

	{0x47, opSRE, zeropage, 5, false, false},
	{0x57, opSRE, zeropageX, 6, false, false},
	{0x4F, opSRE, absolute, 6, false, false},
	{0x5F, opSRE, absoluteX, 7, false, false},
	{0x5B, opSRE, absoluteY, 7, false, false},
	{0x43, opSRE, indirectX, 8, false, false},
	{0x53, opSRE, indirectY, 8, false, false},

	{0x67, opRRA, zeropage, 5, false, false},
	{0x77, opRRA, zeropageX, 6, false, false},
	{0x6F, opRRA, absolute, 6, false, false},
	{0x7F, opRRA, absoluteX, 7, false, false},
	{0x7B, opRRA, absoluteY, 7, false, false},
	{0x63, opRRA, indirectX, 8, false, false},
	{0x73, opRRA, indirectY, 8, false, false},
}
