package nes

// References:
//   https://www.nesdev.org/wiki/CPU_addressing_modes
//   http://www.6502.org/tutorials/6502opcodes.html

type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX // (zp,X), indexed indirect
	indirectY // (zp),Y, indirect indexed
)

var modes = [...]struct {
	name          string
	operandLength uint16
}{
	implied:     {"IMP", 0},
	accumulator: {"ACC", 0},
	immediate:   {"IMM", 1},
	zeropage:    {"ZP", 1},
	zeropageX:   {"ZPX", 1},
	zeropageY:   {"ZPY", 1},
	relative:    {"REL", 1},
	absolute:    {"ABS", 2},
	absoluteX:   {"ABX", 2},
	absoluteY:   {"ABY", 2},
	indirect:    {"IND", 2},
	indirectX:   {"IZX", 1},
	indirectY:   {"IZY", 1},
}

func (m addressingMode) String() string {
	return modes[m].name
}

func (m addressingMode) operandLength() uint16 {
	return modes[m].operandLength
}

// effectiveAddress is the outcome of resolving an addressing mode. valid is false for
// implied, accumulator and immediate modes, which have no memory operand.
type effectiveAddress struct {
	value   uint16
	valid   bool
	crossed bool // indexing or a branch target left the page of the base address
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// resolve computes the effective address of an operand. next is the address of the
// instruction following the one being decoded, operand holds the bytes after the opcode.
func (c *CPU) resolve(mode addressingMode, next uint16, operand []byte) (effectiveAddress, error) {
	switch mode {
	case implied, accumulator, immediate:
		return effectiveAddress{}, nil
	case zeropage:
		return effectiveAddress{value: uint16(operand[0]), valid: true}, nil
	case zeropageX:
		// Wraps within page zero.
		return effectiveAddress{value: uint16(operand[0] + c.x), valid: true}, nil
	case zeropageY:
		return effectiveAddress{value: uint16(operand[0] + c.y), valid: true}, nil
	case relative:
		offset := uint16(operand[0])
		if offset >= 0x80 {
			offset -= 0x100
		}
		target := next + offset
		return effectiveAddress{value: target, valid: true, crossed: pageCrossed(next, target)}, nil
	case absolute:
		return effectiveAddress{value: le16(operand), valid: true}, nil
	case absoluteX:
		base := le16(operand)
		address := base + uint16(c.x)
		return effectiveAddress{value: address, valid: true, crossed: pageCrossed(base, address)}, nil
	case absoluteY:
		base := le16(operand)
		address := base + uint16(c.y)
		return effectiveAddress{value: address, valid: true, crossed: pageCrossed(base, address)}, nil
	case indirect:
		// The high byte is fetched from the start of the same page when the pointer sits
		// on a page's last byte. JMP ($30FF) reads $30FF and $3000.
		pointer := le16(operand)
		address, err := c.bus.read16Bug(pointer)
		if err != nil {
			return effectiveAddress{}, err
		}
		return effectiveAddress{value: address, valid: true}, nil
	case indirectX:
		address, err := c.bus.read16ZeroPage(operand[0] + c.x)
		if err != nil {
			return effectiveAddress{}, err
		}
		return effectiveAddress{value: address, valid: true}, nil
	case indirectY:
		base, err := c.bus.read16ZeroPage(operand[0])
		if err != nil {
			return effectiveAddress{}, err
		}
		address := base + uint16(c.y)
		return effectiveAddress{value: address, valid: true, crossed: pageCrossed(base, address)}, nil
	}
	return effectiveAddress{}, configErrorf("unknown addressing mode %d", mode)
}

func le16(b []byte) uint16 {
	return uint16(b[1])<<8 | uint16(b[0])
}
