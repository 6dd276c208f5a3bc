package nes

import (
	"fmt"
	"strings"
)

// traceLine formats the instruction about to run like the nestest log:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD CYC:7
//
// Unofficial opcodes are prefixed with '*'. Memory operands are not annotated since
// reading them could have side effects on I/O registers.
func (c *CPU) traceLine(inst *instruction, operand []byte, address effectiveAddress) string {
	raw := make([]string, 0, 3)
	raw = append(raw, fmt.Sprintf("%02X", inst.opcode))
	for _, b := range operand {
		raw = append(raw, fmt.Sprintf("%02X", b))
	}
	return fmt.Sprintf("%04X  %-9s%4s %-27s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		c.pc, strings.Join(raw, " "), inst.mnemonic(), disassemble(inst.mode, operand, address),
		c.a, c.x, c.y, c.p.encode(), c.s, c.cycles)
}

func disassemble(mode addressingMode, operand []byte, address effectiveAddress) string {
	switch mode {
	case accumulator:
		return "A"
	case immediate:
		return fmt.Sprintf("#$%02X", operand[0])
	case zeropage:
		return fmt.Sprintf("$%02X", operand[0])
	case zeropageX:
		return fmt.Sprintf("$%02X,X", operand[0])
	case zeropageY:
		return fmt.Sprintf("$%02X,Y", operand[0])
	case relative:
		return fmt.Sprintf("$%04X", address.value)
	case absolute:
		return fmt.Sprintf("$%04X", le16(operand))
	case absoluteX:
		return fmt.Sprintf("$%04X,X", le16(operand))
	case absoluteY:
		return fmt.Sprintf("$%04X,Y", le16(operand))
	case indirect:
		return fmt.Sprintf("($%04X)", le16(operand))
	case indirectX:
		return fmt.Sprintf("($%02X,X)", operand[0])
	case indirectY:
		return fmt.Sprintf("($%02X),Y", operand[0])
	}
	return ""
}

// LastExecution returns the trace line of the last instruction, empty unless tracing.
func (c *CPU) LastExecution() string {
	return c.lastExecution
}
