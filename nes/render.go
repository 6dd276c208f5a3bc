package nes

import (
	"image"
	"image/color"
)

// tileRow is one 8-pixel row of a pattern table tile.
type tileRow struct {
	lo, hi byte
}

// pixel returns the 2-bit color index of column x, 0 being the leftmost pixel.
func (t tileRow) pixel(x int) byte {
	bit := uint(7 - x)
	return (t.lo>>bit)&1 | ((t.hi>>bit)&1)<<1
}

func (p *PPU) fetchTileRow(table uint16, tile byte, row int) (tileRow, error) {
	address := table + uint16(tile)*16 + uint16(row)
	lo, err := p.bus.read(address)
	if err != nil {
		return tileRow{}, err
	}
	hi, err := p.bus.read(address + 8)
	if err != nil {
		return tileRow{}, err
	}
	return tileRow{lo: lo, hi: hi}, nil
}

// color converts a palette RAM entry into RGB, honoring greyscale.
func (p *PPU) color(index uint16) color.RGBA {
	entry := p.bus.palette[paletteIndex(0x3F00+index)] & 0x3F
	if p.mask.greyscale() {
		entry &= 0x30
	}
	return colors[entry]
}

// Render draws the whole frame from the current PPU state: background first, then the
// 64 sprites back to front. It is called once per frame, on entering vblank.
func (p *PPU) Render() (*image.RGBA, error) {
	var opaque [width * height]bool
	if err := p.renderBackground(&opaque); err != nil {
		return nil, err
	}
	if p.mask.showSprites() {
		if err := p.renderSprites(&opaque); err != nil {
			return nil, err
		}
	}
	return p.frame, nil
}

// Frame returns the last rendered frame.
func (p *PPU) Frame() *image.RGBA {
	return p.frame
}

// renderBackground walks the four logical nametables as a 512x480 plane scrolled by
// PPUSCROLL and the base nametable bits of PPUCTRL. Mirroring maps those onto the
// physical tables.
// Reference:
//   https://www.nesdev.org/wiki/PPU_nametables
//   https://www.nesdev.org/wiki/PPU_attribute_tables
func (p *PPU) renderBackground(opaque *[width * height]bool) error {
	backdrop := p.color(0)
	if !p.mask.showBackground() {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				p.frame.SetRGBA(x, y, backdrop)
			}
		}
		return nil
	}
	table := p.ctrl.backgroundPatternTable()
	baseX := (p.ctrl.nameTable()&1)*width + int(p.scroll[0])
	baseY := (p.ctrl.nameTable()>>1)*height + int(p.scroll[1])

	var (
		cached    = -1
		row       tileRow
		paletteNo byte
	)
	for y := 0; y < height; y++ {
		wy := (baseY + y) % (2 * height)
		ty := wy % height
		for x := 0; x < width; x++ {
			wx := (baseX + x) % (2 * width)
			tx := wx % width
			nameTable := 0x2000 + uint16(wy/height*2+wx/width)*0x400
			tileX, tileY := tx/8, ty/8
			key := int(nameTable)<<16 | ty<<8 | tileX
			if key != cached {
				tile, err := p.bus.read(nameTable + uint16(tileY*32+tileX))
				if err != nil {
					return err
				}
				attribute, err := p.bus.read(nameTable + 0x3C0 + uint16(tileY/4*8+tileX/4))
				if err != nil {
					return err
				}
				// Each attribute byte covers 4x4 tiles, 2 bits per 2x2 quadrant.
				shift := uint((tileY%4)/2*4 + (tileX%4)/2*2)
				paletteNo = (attribute >> shift) & 0x03
				if row, err = p.fetchTileRow(table, tile, ty%8); err != nil {
					return err
				}
				cached = key
			}
			v := row.pixel(tx % 8)
			if v == 0 || (x < 8 && !p.mask.showBackgroundLeft()) {
				p.frame.SetRGBA(x, y, backdrop)
				continue
			}
			opaque[y*width+x] = true
			p.frame.SetRGBA(x, y, p.color(uint16(paletteNo)*4+uint16(v)))
		}
	}
	return nil
}

// renderSprites draws OAM entries from 63 down to 0 so that lower indices win.
//
//	byte 0: y - 1
//	byte 1: tile index, bit 0 picks the pattern table for 8x16 sprites
//	byte 2: VHP. ..PP, flips, behind background, palette
//	byte 3: x
//
// Reference: https://www.nesdev.org/wiki/PPU_OAM
func (p *PPU) renderSprites(opaque *[width * height]bool) error {
	h := p.ctrl.spriteHeight()
	for i := 63; i >= 0; i-- {
		sy := int(p.oam[i*4]) + 1
		tile := p.oam[i*4+1]
		attribute := p.oam[i*4+2]
		sx := int(p.oam[i*4+3])
		flipH := attribute&0x40 != 0
		flipV := attribute&0x80 != 0
		behind := attribute&0x20 != 0
		paletteNo := uint16(attribute & 0x03)

		table := p.ctrl.spritePatternTable()
		if h == 16 {
			table = uint16(tile&0x01) * 0x1000
			tile &= 0xFE
		}
		for r := 0; r < h; r++ {
			py := sy + r
			if py >= height {
				break
			}
			fy := r
			if flipV {
				fy = h - 1 - r
			}
			t := tile
			if fy >= 8 {
				t++
				fy -= 8
			}
			row, err := p.fetchTileRow(table, t, fy)
			if err != nil {
				return err
			}
			for c := 0; c < 8; c++ {
				px := sx + c
				if px >= width {
					break
				}
				fx := c
				if flipH {
					fx = 7 - c
				}
				v := row.pixel(fx)
				if v == 0 {
					continue
				}
				if px < 8 && !p.mask.showSpritesLeft() {
					continue
				}
				if behind && opaque[py*width+px] {
					continue
				}
				p.frame.SetRGBA(px, py, p.color(0x10+paletteNo*4+uint16(v)))
			}
		}
	}
	return nil
}
