package nes

// PPUBus is the PPU's own 16KB address space.
type PPUBus struct {
	mapper  Mapper
	mirror  tableMirrorMode
	vram    [0x1000]byte // 2KB on the console, 4KB with four-screen boards
	palette [32]byte
}

// NewPPUBus creates a new Bus for PPU
func NewPPUBus(mapper Mapper, mirror tableMirrorMode) *PPUBus {
	return &PPUBus{mapper: mapper, mirror: mirror}
}

// mirrorAddress folds a nametable address into nametable RAM.
//
//	horizontal: $2000=$2400=A, $2800=$2C00=B
//	vertical:   $2000=$2800=A, $2400=$2C00=B
func (b *PPUBus) mirrorAddress(address uint16) uint16 {
	index := (address - 0x2000) & 0x0FFF // $3000-$3EFF mirrors $2000-$2EFF
	table := index / 0x400
	offset := index % 0x400
	switch b.mirror {
	case horizontal:
		table /= 2
	case vertical:
		table %= 2
	}
	return table*0x400 + offset
}

// paletteIndex folds $3F00-$3FFF into the 32 palette entries. $3F10/$3F14/$3F18/$3F1C
// are the background entries $3F00/$3F04/$3F08/$3F0C.
func paletteIndex(address uint16) uint16 {
	i := address & 0x1F
	if i >= 0x10 && i&0x03 == 0 {
		i -= 0x10
	}
	return i
}

// read reads data.
// Address        Size	  Description
// -------------------------------------
// $0000-$0FFF	  $1000	  Pattern table 0
// $1000-$1FFF	  $1000	  Pattern table 1
// $2000-$23FF	  $0400	  Nametable 0
// $2400-$27FF	  $0400	  Nametable 1
// $2800-$2BFF	  $0400	  Nametable 2
// $2C00-$2FFF	  $0400	  Nametable 3
// $3000-$3EFF	  $0F00	  Mirrors of $2000-$2EFF
// $3F00-$3F1F	  $0020	  Palette RAM indexes
// $3F20-$3FFF	  $00E0	  Mirrors of $3F00-$3F1F
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) read(address uint16) (byte, error) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		return b.mapper.ReadFromPPU(address)
	case address < 0x3F00:
		return b.vram[b.mirrorAddress(address)], nil
	default:
		return b.palette[paletteIndex(address)], nil
	}
}

// write writes data.
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) write(address uint16, data byte) error {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		return b.mapper.WriteFromPPU(address, data)
	case address < 0x3F00:
		b.vram[b.mirrorAddress(address)] = data
	default:
		b.palette[paletteIndex(address)] = data
	}
	return nil
}
