package nes

import (
	"image/color"
	"testing"
)

// newRenderPPU sets up CHR RAM tiles and palettes:
//
//	tile 1: every pixel color 1
//	tile 2: every pixel color 2
//	tile 3: only the leftmost column, color 1
func newRenderPPU(t *testing.T, mirror tableMirrorMode) *PPU {
	t.Helper()
	p := newTestPPU(mirror)
	write := func(address uint16, data byte) {
		if err := p.bus.write(address, data); err != nil {
			t.Fatalf("write(0x%04x) failed: %+v", address, err)
		}
	}
	for row := uint16(0); row < 8; row++ {
		write(0x0010+row, 0xFF)
		write(0x0028+row, 0xFF)
		write(0x0030+row, 0x80)
	}
	write(0x3F00, 0x0F) // backdrop
	write(0x3F01, 0x30)
	write(0x3F05, 0x2A)
	write(0x3F11, 0x21)
	write(0x3F12, 0x16)
	return p
}

func render(t *testing.T, p *PPU) {
	t.Helper()
	if _, err := p.Render(); err != nil {
		t.Fatalf("Render() failed: %+v", err)
	}
}

func checkPixel(t *testing.T, p *PPU, x, y int, want color.RGBA) {
	t.Helper()
	if got := p.Frame().RGBAAt(x, y); got != want {
		t.Errorf("pixel (%d, %d): got=%v, want=%v", x, y, got, want)
	}
}

func TestRenderBackground(t *testing.T) {
	p := newRenderPPU(t, horizontal)
	p.bus.write(0x2000, 1)    // tile (0, 0)
	p.bus.write(0x2002, 1)    // tile (2, 0)
	p.bus.write(0x23C0, 0x04) // top right quadrant of the first attribute block uses palette 1
	p.mask = maskBackground | maskBackgroundLeft
	render(t, p)
	checkPixel(t, p, 0, 0, colors[0x30])
	checkPixel(t, p, 7, 7, colors[0x30])
	checkPixel(t, p, 8, 0, colors[0x0F])
	checkPixel(t, p, 16, 0, colors[0x2A])
	checkPixel(t, p, 0, 8, colors[0x0F])
}

func TestRenderMaskEffects(t *testing.T) {
	p := newRenderPPU(t, horizontal)
	p.bus.write(0x2000, 1)
	p.bus.write(0x2001, 1)

	p.mask = maskBackground
	render(t, p)
	checkPixel(t, p, 0, 0, colors[0x0F]) // clipped
	checkPixel(t, p, 8, 0, colors[0x30])

	p.mask = 0
	render(t, p)
	checkPixel(t, p, 8, 0, colors[0x0F])

	p.mask = maskBackground | maskBackgroundLeft | maskGreyscale
	render(t, p)
	checkPixel(t, p, 8, 0, colors[0x30])
	checkPixel(t, p, 8, 8, colors[0x0F&0x30])
}

func TestRenderScroll(t *testing.T) {
	p := newRenderPPU(t, vertical)
	p.bus.write(0x2400, 1) // first tile of the right nametable
	p.mask = maskBackground | maskBackgroundLeft
	render(t, p)
	checkPixel(t, p, 0, 0, colors[0x0F])

	p.scroll = [2]byte{8, 0}
	render(t, p)
	checkPixel(t, p, 248, 0, colors[0x30])
	checkPixel(t, p, 247, 0, colors[0x0F])

	// Base nametable 1 with no scroll shows it at the origin.
	p.scroll = [2]byte{}
	p.ctrl = 0x01
	render(t, p)
	checkPixel(t, p, 0, 0, colors[0x30])
}

func TestRenderSprites(t *testing.T) {
	p := newRenderPPU(t, horizontal)
	p.bus.write(0x2000, 1)
	p.mask = maskBackground | maskBackgroundLeft | maskSprites | maskSpritesLeft
	copy(p.oam[0:], []byte{19, 2, 0x00, 40})   // front, color 2
	copy(p.oam[4:], []byte{0, 2, 0x20, 0})     // behind the opaque tile (0, 0)
	copy(p.oam[8:], []byte{99, 3, 0x40, 100})  // flipped horizontally
	copy(p.oam[12:], []byte{0, 1, 0x00, 4})    // in front of the tile, overlaps sprite 1
	copy(p.oam[16:], []byte{149, 3, 0x00, 60}) // not flipped
	render(t, p)
	checkPixel(t, p, 40, 20, colors[0x16])
	checkPixel(t, p, 47, 27, colors[0x16])
	checkPixel(t, p, 40, 19, colors[0x0F])
	checkPixel(t, p, 1, 1, colors[0x30])
	checkPixel(t, p, 107, 100, colors[0x21])
	checkPixel(t, p, 100, 100, colors[0x0F])
	checkPixel(t, p, 60, 150, colors[0x21])
	checkPixel(t, p, 61, 150, colors[0x0F])
	checkPixel(t, p, 5, 1, colors[0x21])
}

func TestRenderTallSprites(t *testing.T) {
	p := newRenderPPU(t, horizontal)
	p.mask = maskSprites | maskSpritesLeft
	p.ctrl = ctrlSpriteSize
	// Tile 2 (even) on top, tile 3 below, from pattern table 0.
	copy(p.oam[0:], []byte{49, 2, 0x00, 80})
	render(t, p)
	checkPixel(t, p, 87, 50, colors[0x16])
	checkPixel(t, p, 80, 58, colors[0x21])
	checkPixel(t, p, 81, 58, colors[0x0F])

	// Flipped vertically the halves swap.
	p.oam[2] = 0x80
	render(t, p)
	checkPixel(t, p, 80, 50, colors[0x21])
	checkPixel(t, p, 87, 58, colors[0x16])
}
