package nes

const (
	romStart uint16 = 0x8000
	romEnd   uint16 = 0xFFFF
)

// ROM is the PRG ROM window of the cartridge.
// 0x8000 - 0xBFFF	ProgramROM Low
// 0xC000 - 0xFFFF	ProgramROM High (mirror of Low for a single 16KB bank)
type ROM struct {
	mapper Mapper
}

// NewROM creates the PRG ROM device on top of the cartridge board.
func NewROM(mapper Mapper) *ROM {
	return &ROM{mapper: mapper}
}

func (r *ROM) Bounds() (uint16, uint16) {
	return romStart, romEnd
}

func (r *ROM) Read(address uint16) (byte, error) {
	return r.mapper.ReadFromCPU(address)
}

func (r *ROM) ReadBytes(address uint16, n int) ([]byte, error) {
	return readBytes(r, address, n)
}

func (r *ROM) Write(address uint16, data byte) error {
	return r.mapper.WriteFromCPU(address, data)
}
