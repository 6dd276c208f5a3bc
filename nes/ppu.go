package nes

import (
	"image"

	"github.com/golang/glog"
)

// NES PPU generates 256x240 pixels.
const (
	width  = 256
	height = 240
)

const (
	ppuStart uint16 = 0x2000
	ppuEnd   uint16 = 0x3FFF

	dotsPerLine   = 341
	linesPerFrame = 262
	vblankLine    = 241
	preRenderLine = 261
)

// PPU stands for Picture Processing Unit, renders 256px x 240px image for a screen.
// PPU is 3x faster than CPU and rendering 1 frame requires 341x262=89342 cycles (Each cycles writes a dot).
//
// This PPU implementation includes PPU regsters as well, it owns 0x2000-0x3FFF of the
// CPU bus where the eight registers are mirrored every 8 bytes.
// References:
//   https://www.nesdev.org/wiki/PPU
//   https://pgate1.at-ninja.jp/NES_on_FPGA/nes_ppu.htm (In Japanese)
type PPU struct {
	bus *PPUBus

	frame *image.RGBA

	// Registers for PPU.
	// Reference:
	//   https://www.nesdev.org/wiki/PPU_registers
	//   https://www.nesdev.org/wiki/PPU_scrolling
	ctrl   ppuCtrl
	mask   ppuMask
	status ppuStatus
	// OAMADDR $2003 and the 64 sprites it indexes.
	oamAddr byte
	oam     [256]byte
	// Current VRAM address (14bit), for PPUADDR $2006
	v uint16
	// w indicates whether the next PPUADDR write is the low byte.
	w bool
	// scroll holds PPUSCROLL $2005 as (x, y), scrollW is its own write toggle.
	scroll  [2]byte
	scrollW bool
	// buffer for PPUDATA $2007
	buffer byte

	// cycle, scanline indicates which pixel is processing.
	cycle    int
	scanline int

	// nmiPending is the interrupt output, raised on entering vblank with NMI enabled.
	nmiPending bool
}

// NewPPU creates a PPU.
func NewPPU(bus *PPUBus) *PPU {
	p := &PPU{
		bus:   bus,
		frame: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	p.Reset()
	return p
}

// Reset starts from the top left dot of the first visible line with every register
// cleared. Memory is kept.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.v, p.w = 0, false
	p.scroll, p.scrollW = [2]byte{}, false
	p.buffer = 0
	p.cycle = 0
	p.scanline = 0
	p.nmiPending = false
}

func (p *PPU) Bounds() (uint16, uint16) {
	return ppuStart, ppuEnd
}

// Read reads a PPU register, reading a write-only port is an error.
func (p *PPU) Read(address uint16) (byte, error) {
	if !inBounds(p, address) {
		return 0, readError(address, "outside the PPU registers")
	}
	switch ppuStart + address&0x07 {
	case 0x2002:
		return p.readPPUSTATUS(), nil
	case 0x2004:
		return p.oam[p.oamAddr], nil
	case 0x2007:
		return p.readPPUDATA()
	}
	return 0, readError(address, "PPU register is write-only")
}

func (p *PPU) ReadBytes(address uint16, n int) ([]byte, error) {
	return readBytes(p, address, n)
}

// Write writes a PPU register.
func (p *PPU) Write(address uint16, data byte) error {
	if !inBounds(p, address) {
		return writeError(address, data, "outside the PPU registers")
	}
	switch ppuStart + address&0x07 {
	case 0x2000:
		p.writePPUCTRL(data)
	case 0x2001:
		p.mask = ppuMask(data)
	case 0x2002:
		glog.V(1).Infof("Ignored write to PPUSTATUS: data=0x%02x", data)
	case 0x2003:
		p.oamAddr = data
	case 0x2004:
		p.writeOAMDATA(data)
	case 0x2005:
		p.writePPUSCROLL(data)
	case 0x2006:
		p.writePPUADDR(data)
	case 0x2007:
		return p.writePPUDATA(data)
	}
	return nil
}

// writePPUCTRL writes PPUCTRL ($2000). Turning NMI on while vblank is already set
// raises the interrupt immediately.
func (p *PPU) writePPUCTRL(data byte) {
	enabled := p.ctrl.generateNMI()
	p.ctrl = ppuCtrl(data)
	if !enabled && p.ctrl.generateNMI() && p.status.has(statusVBlank) {
		p.nmiPending = true
	}
}

// readPPUSTATUS reads PPUSTATUS ($2002), it clears vblank and both write toggles.
func (p *PPU) readPPUSTATUS() byte {
	data := byte(p.status)
	p.status.clear(statusVBlank)
	p.w = false
	p.scrollW = false
	return data
}

// writeOAMDATA writes OAMDATA ($2004), OAM DMA lands here as well.
func (p *PPU) writeOAMDATA(data byte) {
	p.oam[p.oamAddr] = data
	p.oamAddr++
}

// writePPUSCROLL writes PPUSCROLL ($2005), x first then y.
func (p *PPU) writePPUSCROLL(data byte) {
	if p.scrollW {
		p.scroll[1] = data
	} else {
		p.scroll[0] = data
	}
	p.scrollW = !p.scrollW
}

// writePPUADDR writes PPUADDR ($2006).
func (p *PPU) writePPUADDR(data byte) {
	if p.w { // low
		p.w = false
		p.v = p.v&0xFF00 | uint16(data)
	} else { // high
		p.v = uint16(data&0x3F) << 8
		p.w = true
	}
}

func (p *PPU) incrementAddress() {
	p.v = (p.v + p.ctrl.increment()) & 0x3FFF
}

// writePPUDATA writes PPUDATA ($2007).
func (p *PPU) writePPUDATA(data byte) error {
	if err := p.bus.write(p.v, data); err != nil {
		return err
	}
	p.incrementAddress()
	return nil
}

// readPPUDATA reads PPUDATA ($2007).
func (p *PPU) readPPUDATA() (byte, error) {
	data, err := p.bus.read(p.v)
	if err != nil {
		return 0, err
	}
	// Here buffers if the address is not paletteRAM.
	if p.v < 0x3F00 {
		data, p.buffer = p.buffer, data
	} else {
		// The buffer picks up the nametable byte hidden under the palette.
		if p.buffer, err = p.bus.read(p.v - 0x1000); err != nil {
			return 0, err
		}
	}
	p.incrementAddress()
	return data, nil
}

func (p *PPU) renderingEnabled() bool {
	return p.mask.showBackground() || p.mask.showSprites()
}

// Tick emulates PPU dots and each dot renders a pixel for NTSC,
// so PPU renders a pixel (left to right, top to bottom) respectively.
// PPU renders 256x240 pixels but it actually processes 341x262 area.
// Reference:
//   https://www.nesdev.org/wiki/PPU_rendering
//   https://www.nesdev.org/wiki/File:Ntsc_timing.png
func (p *PPU) Tick(dots int) {
	for i := 0; i < dots; i++ {
		p.step()
	}
}

func (p *PPU) step() {
	p.cycle++
	if p.cycle == dotsPerLine { // rendered a line
		p.checkSpriteZeroHit()
		p.cycle = 0
		p.scanline++
		if p.scanline == linesPerFrame { // rendered a frame
			p.scanline = 0
		}
	}
	switch {
	case p.scanline == vblankLine && p.cycle == 1:
		p.status.set(statusVBlank)
		if p.ctrl.generateNMI() {
			p.nmiPending = true
		}
	case p.scanline == preRenderLine && p.cycle == 1:
		p.status.clear(statusVBlank | statusSpriteZeroHit | statusSpriteOverflow)
		p.nmiPending = false
	}
	// OAMADDR is reset during sprite tile loading of every rendering line.
	if p.renderingEnabled() && (p.scanline < height || p.scanline == preRenderLine) &&
		257 <= p.cycle && p.cycle <= 320 {
		p.oamAddr = 0
	}
}

// checkSpriteZeroHit approximates the hit flag at the end of a line: it is set once
// sprite 0 sits on the finished line and both layers are shown.
func (p *PPU) checkSpriteZeroHit() {
	if !p.mask.showBackground() || !p.mask.showSprites() {
		return
	}
	y, x := int(p.oam[0]), int(p.oam[3])
	if y == p.scanline && x <= p.cycle {
		p.status.set(statusSpriteZeroHit)
	}
}
