package nes

// Mapper0: https://www.nesdev.org/wiki/NROM
type mapper0 struct {
	prgROM []byte
	chrROM []byte
	chrRAM bool
}

func (m *mapper0) ReadFromCPU(address uint16) (byte, error) {
	if 0x8000 <= address {
		// CPU $C000-$FFFF: Last 16 KB of ROM (NROM-256) or mirror of $8000-$BFFF (NROM-128).
		mod := uint16(len(m.prgROM))
		return m.prgROM[(address-0x8000)%mod], nil
	}
	return 0, readError(address, "NROM has no PRG data below 0x8000")
}

func (m *mapper0) WriteFromCPU(address uint16, data byte) error {
	return writeError(address, data, "PRG ROM is read-only")
}

func (m *mapper0) ReadFromPPU(address uint16) (byte, error) {
	return m.chrROM[int(address)%len(m.chrROM)], nil
}

func (m *mapper0) WriteFromPPU(address uint16, data byte) error {
	if !m.chrRAM {
		return writeError(address, data, "pattern tables are CHR ROM")
	}
	m.chrROM[int(address)%len(m.chrROM)] = data
	return nil
}
