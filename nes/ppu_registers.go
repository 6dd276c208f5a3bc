package nes

// PPU register bitfields.
// Reference: https://www.nesdev.org/wiki/PPU_registers

// ppuCtrl is PPUCTRL ($2000).
//
//	VPHB SINN
type ppuCtrl byte

const (
	ctrlNameTable       ppuCtrl = 0x03
	ctrlIncrement32     ppuCtrl = 0x04
	ctrlSpriteTable     ppuCtrl = 0x08
	ctrlBackgroundTable ppuCtrl = 0x10
	ctrlSpriteSize      ppuCtrl = 0x20
	ctrlMasterSlave     ppuCtrl = 0x40
	ctrlGenerateNMI     ppuCtrl = 0x80
)

func (c ppuCtrl) nameTable() int {
	return int(c & ctrlNameTable)
}

// increment is the VRAM address step after a PPUDATA access, across (1) or down (32).
func (c ppuCtrl) increment() uint16 {
	if c&ctrlIncrement32 != 0 {
		return 32
	}
	return 1
}

func (c ppuCtrl) spritePatternTable() uint16 {
	if c&ctrlSpriteTable != 0 {
		return 0x1000
	}
	return 0
}

func (c ppuCtrl) backgroundPatternTable() uint16 {
	if c&ctrlBackgroundTable != 0 {
		return 0x1000
	}
	return 0
}

func (c ppuCtrl) spriteHeight() int {
	if c&ctrlSpriteSize != 0 {
		return 16
	}
	return 8
}

func (c ppuCtrl) generateNMI() bool {
	return c&ctrlGenerateNMI != 0
}

// ppuMask is PPUMASK ($2001).
//
//	BGRs bMmG
type ppuMask byte

const (
	maskGreyscale      ppuMask = 0x01
	maskBackgroundLeft ppuMask = 0x02
	maskSpritesLeft    ppuMask = 0x04
	maskBackground     ppuMask = 0x08
	maskSprites        ppuMask = 0x10
	maskEmphasizeRed   ppuMask = 0x20
	maskEmphasizeGreen ppuMask = 0x40
	maskEmphasizeBlue  ppuMask = 0x80
)

func (m ppuMask) greyscale() bool          { return m&maskGreyscale != 0 }
func (m ppuMask) showBackgroundLeft() bool { return m&maskBackgroundLeft != 0 }
func (m ppuMask) showSpritesLeft() bool    { return m&maskSpritesLeft != 0 }
func (m ppuMask) showBackground() bool     { return m&maskBackground != 0 }
func (m ppuMask) showSprites() bool        { return m&maskSprites != 0 }

// ppuStatus is PPUSTATUS ($2002).
//
//	VSO. ....
type ppuStatus byte

const (
	statusSpriteOverflow ppuStatus = 0x20
	statusSpriteZeroHit  ppuStatus = 0x40
	statusVBlank         ppuStatus = 0x80
)

func (s ppuStatus) has(f ppuStatus) bool { return s&f != 0 }
func (s *ppuStatus) set(f ppuStatus)     { *s |= f }
func (s *ppuStatus) clear(f ppuStatus)   { *s &^= f }
