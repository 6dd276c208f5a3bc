package nes

// Mapper is the cartridge board as seen from both buses.
type Mapper interface {
	ReadFromCPU(uint16) (byte, error)
	WriteFromCPU(uint16, byte) error
	ReadFromPPU(uint16) (byte, error)
	WriteFromPPU(uint16, byte) error
}

// NewMapper creates the board logic for the cartridge's mapper number.
func NewMapper(c *Cartridge) (Mapper, error) {
	switch c.mapper {
	case 0:
		return &mapper0{prgROM: c.prgROM, chrROM: c.chrROM, chrRAM: c.chrRAM}, nil
	}
	return nil, configErrorf("unsupported mapper %d", c.mapper)
}
