package nes

import "testing"

func TestResolve(t *testing.T) {
	c := newTestConsole(t, newTestCart())
	// Pointers in page zero and a JMP pointer on a page's last byte.
	mustWrite(t, c, 0x0024, 0x74)
	mustWrite(t, c, 0x0025, 0x20)
	mustWrite(t, c, 0x00FF, 0x34)
	mustWrite(t, c, 0x0000, 0x12)
	mustWrite(t, c, 0x0086, 0x28)
	mustWrite(t, c, 0x0087, 0x40)
	mustWrite(t, c, 0x02FF, 0x80)
	mustWrite(t, c, 0x0200, 0x50)
	mustWrite(t, c, 0x0300, 0x40)
	mustWrite(t, c, 0x0210, 0xCD)
	mustWrite(t, c, 0x0211, 0xAB)

	tests := []struct {
		name    string
		mode    addressingMode
		x, y    byte
		next    uint16
		operand []byte
		want    effectiveAddress
	}{
		{"implied", implied, 0, 0, 0x8001, nil, effectiveAddress{}},
		{"immediate", immediate, 0, 0, 0x8002, []byte{0x10}, effectiveAddress{}},
		{"zeropage", zeropage, 0, 0, 0x8002, []byte{0x10}, effectiveAddress{value: 0x10, valid: true}},
		{"zeropage,X wraps", zeropageX, 0x02, 0, 0x8002, []byte{0xFF}, effectiveAddress{value: 0x01, valid: true}},
		{"zeropage,Y wraps", zeropageY, 0, 0x81, 0x8002, []byte{0x80}, effectiveAddress{value: 0x01, valid: true}},
		{"absolute", absolute, 0, 0, 0x8003, []byte{0x34, 0x12}, effectiveAddress{value: 0x1234, valid: true}},
		{"absolute,X", absoluteX, 0x10, 0, 0x8003, []byte{0x00, 0x02}, effectiveAddress{value: 0x0210, valid: true}},
		{"absolute,X crossing", absoluteX, 0x01, 0, 0x8003, []byte{0xFF, 0x02}, effectiveAddress{value: 0x0300, valid: true, crossed: true}},
		{"absolute,Y crossing", absoluteY, 0, 0x02, 0x8003, []byte{0xFF, 0xFF}, effectiveAddress{value: 0x0001, valid: true, crossed: true}},
		{"indirect", indirect, 0, 0, 0x8003, []byte{0x10, 0x02}, effectiveAddress{value: 0xABCD, valid: true}},
		{"indirect page bug", indirect, 0, 0, 0x8003, []byte{0xFF, 0x02}, effectiveAddress{value: 0x5080, valid: true}},
		{"(zp,X)", indirectX, 0x04, 0, 0x8002, []byte{0x20}, effectiveAddress{value: 0x2074, valid: true}},
		{"(zp,X) pointer wraps", indirectX, 0x01, 0, 0x8002, []byte{0xFE}, effectiveAddress{value: 0x1234, valid: true}},
		{"(zp),Y", indirectY, 0, 0x10, 0x8002, []byte{0x86}, effectiveAddress{value: 0x4038, valid: true}},
		{"(zp),Y crossing", indirectY, 0, 0xE0, 0x8002, []byte{0x86}, effectiveAddress{value: 0x4108, valid: true, crossed: true}},
		{"relative forward", relative, 0, 0, 0x8002, []byte{0x10}, effectiveAddress{value: 0x8012, valid: true}},
		{"relative backward", relative, 0, 0, 0x8002, []byte{0xFE}, effectiveAddress{value: 0x8000, valid: true}},
		{"relative crossing", relative, 0, 0, 0x80FF, []byte{0x01}, effectiveAddress{value: 0x8100, valid: true, crossed: true}},
	}
	for _, tt := range tests {
		c.cpu.x, c.cpu.y = tt.x, tt.y
		got, err := c.cpu.resolve(tt.mode, tt.next, tt.operand)
		if err != nil {
			t.Fatalf("%s: resolve() failed: %+v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got=%+v, want=%+v", tt.name, got, tt.want)
		}
	}
}

func TestZeroPageIndexWraps(t *testing.T) {
	c := newTestConsole(t, newTestCart())
	for base := 0; base < 256; base++ {
		for _, x := range []byte{0x00, 0x01, 0x7F, 0x80, 0xFF} {
			c.cpu.x = x
			got, err := c.cpu.resolve(zeropageX, 0x8002, []byte{byte(base)})
			if err != nil {
				t.Fatalf("resolve() failed: %+v", err)
			}
			if got.value > 0xFF || got.value != uint16(byte(base)+x) {
				t.Fatalf("zeropage,X base=0x%02x x=0x%02x: got=0x%04x", base, x, got.value)
			}
		}
	}
}

func TestOperandLength(t *testing.T) {
	tests := []struct {
		mode addressingMode
		want uint16
	}{
		{implied, 0}, {accumulator, 0}, {immediate, 1}, {zeropage, 1}, {zeropageX, 1},
		{zeropageY, 1}, {relative, 1}, {absolute, 2}, {absoluteX, 2}, {absoluteY, 2},
		{indirect, 2}, {indirectX, 1}, {indirectY, 1},
	}
	for _, tt := range tests {
		if got := tt.mode.operandLength(); got != tt.want {
			t.Errorf("%s.operandLength(): got=%d, want=%d", tt.mode, got, tt.want)
		}
	}
}
