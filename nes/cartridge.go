package nes

import "github.com/golang/glog"

const (
	chrROMSizeUnit      int  = 0x2000 // 8KB
	prgROMSizeUnit      int  = 0x4000 // 16KB
	inesHeaderSizeBytes int  = 16     // The valid INES header has 16 bytes
	trainerSizeBytes    int  = 512
	msDOSEOF            byte = 0x1A
)

type tableMirrorMode int

const (
	horizontal tableMirrorMode = iota
	vertical
	fourScreen
)

func (m tableMirrorMode) String() string {
	switch m {
	case horizontal:
		return "horizontal"
	case vertical:
		return "vertical"
	default:
		return "four-screen"
	}
}

// https://www.nesdev.org/wiki/INES
type Cartridge struct {
	prgROM []byte
	chrROM []byte
	// chrRAM is set when the header declares no CHR banks, the board then carries
	// 8KB of writable pattern memory instead.
	chrRAM     bool
	mirror     tableMirrorMode
	battery    bool
	trainer    bool
	mapper     byte
	inesFormat byte // flags 7 bits 2-3: 0 for iNES 1.0, 2 for NES 2.0
	flags6     byte // https://www.nesdev.org/wiki/INES#Flags_6
	flags7     byte // https://www.nesdev.org/wiki/INES#Flags_7
}

// isValid checks whether the data starts with the INES magic.
func isValid(data []byte) bool {
	return len(data) >= inesHeaderSizeBytes &&
		data[0] == byte('N') &&
		data[1] == byte('E') &&
		data[2] == byte('S') &&
		data[3] == msDOSEOF
}

// NewCartridge parses an iNES image.
func NewCartridge(data []byte) (*Cartridge, error) {
	if !isValid(data) {
		return nil, configErrorf("the buffer is not a valid NES format")
	}
	c := &Cartridge{flags6: data[6], flags7: data[7]}
	c.mirror = horizontal
	if c.flags6&0x01 != 0 {
		c.mirror = vertical
	}
	c.battery = c.flags6&0x02 != 0
	c.trainer = c.flags6&0x04 != 0
	if c.flags6&0x08 != 0 {
		c.mirror = fourScreen
	}
	c.mapper = c.flags7&0xF0 | c.flags6>>4
	c.inesFormat = (c.flags7 >> 2) & 0x03
	// 0: iNES 1.0, 2: NES 2.0 which keeps the same layout for bytes 4-7.
	if c.inesFormat != 0 && c.inesFormat != 2 {
		return nil, configErrorf("unsupported iNES version bits 0x%02x in flags 7", c.flags7&0x0C)
	}
	if c.mapper != 0 {
		return nil, configErrorf("unsupported mapper %d, only NROM (mapper 0) is available", c.mapper)
	}

	prgBanks := int(data[4])
	chrBanks := int(data[5])
	if prgBanks == 0 {
		return nil, configErrorf("the cartridge has no PRG ROM")
	}
	l := inesHeaderSizeBytes
	if c.trainer {
		l += trainerSizeBytes
	}
	r := l + prgBanks*prgROMSizeUnit
	if len(data) < r {
		return nil, configErrorf("PRG ROM truncated: want %d bytes, got %d", r-l, len(data)-l)
	}
	c.prgROM = data[l:r]
	if chrBanks == 0 {
		c.chrRAM = true
		c.chrROM = make([]byte, chrROMSizeUnit)
	} else {
		l, r = r, r+chrBanks*chrROMSizeUnit
		if len(data) < r {
			return nil, configErrorf("CHR ROM truncated: want %d bytes, got %d", r-l, len(data)-l)
		}
		c.chrROM = data[l:r]
	}
	glog.Infof("Cartridge: PRG=%dKB, CHR=%dKB (ram=%t), mapper=%d, mirroring=%s, battery=%t, trainer=%t",
		len(c.prgROM)/1024, len(c.chrROM)/1024, c.chrRAM, c.mapper, c.mirror, c.battery, c.trainer)
	return c, nil
}

func (c *Cartridge) getTableMirrorMode() tableMirrorMode {
	return c.mirror
}
