package nes

import "testing"

// testCart builds NROM-128 images. Programs start at 0x8000, NMI and IRQ point at an
// RTI at 0x9000.
type testCart struct {
	prg    [0x4000]byte
	chr    []byte // nil for CHR RAM
	flags6 byte
}

func newTestCart(program ...byte) *testCart {
	c := &testCart{}
	c.at(0x8000, program...)
	c.at(0x9000, 0x40) // RTI
	c.vector(nmiVector, 0x9000)
	c.vector(resetVector, 0x8000)
	c.vector(irqVector, 0x9000)
	return c
}

// at places code at a CPU address in 0x8000-0xFFFF.
func (c *testCart) at(address uint16, code ...byte) *testCart {
	copy(c.prg[int(address-romStart)%len(c.prg):], code)
	return c
}

func (c *testCart) vector(vector, target uint16) *testCart {
	return c.at(vector, byte(target), byte(target>>8))
}

func (c *testCart) image() []byte {
	buf := []byte{'N', 'E', 'S', 0x1A, 1, byte(len(c.chr) / chrROMSizeUnit), c.flags6, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	buf = append(buf, c.prg[:]...)
	return append(buf, c.chr...)
}

func newTestConsole(t *testing.T, cart *testCart, options ...Option) *Console {
	t.Helper()
	c, err := NewConsole(cart.image(), options...)
	if err != nil {
		t.Fatalf("NewConsole() failed: %+v", err)
	}
	return c
}

func mustWrite(t *testing.T, c *Console, address uint16, data byte) {
	t.Helper()
	if err := c.bus.Write(address, data); err != nil {
		t.Fatalf("Write(0x%04x, 0x%02x) failed: %+v", address, data, err)
	}
}

func mustRead(t *testing.T, c *Console, address uint16) byte {
	t.Helper()
	data, err := c.bus.Read(address)
	if err != nil {
		t.Fatalf("Read(0x%04x) failed: %+v", address, err)
	}
	return data
}

func mustStep(t *testing.T, c *Console) int {
	t.Helper()
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() failed: %+v", err)
	}
	return cycles
}
