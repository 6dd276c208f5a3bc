package nes

const (
	ramStart  uint16 = 0x0000
	ramEnd    uint16 = 0x1FFF
	ramMirror uint16 = 0x07FF // 2KB mirrored every 0x800 bytes
)

// RAM is the 2KB work RAM of the console.
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
type RAM struct {
	data [2048]byte
}

// NewRAM creates a work RAM.
func NewRAM() *RAM {
	return &RAM{}
}

func (r *RAM) Bounds() (uint16, uint16) {
	return ramStart, ramEnd
}

// Read reads data.
func (r *RAM) Read(address uint16) (byte, error) {
	if !inBounds(r, address) {
		return 0, readError(address, "outside WRAM")
	}
	return r.data[address&ramMirror], nil
}

// ReadBytes reads n bytes, following the mirror.
func (r *RAM) ReadBytes(address uint16, n int) ([]byte, error) {
	return readBytes(r, address, n)
}

// Write writes data.
func (r *RAM) Write(address uint16, x byte) error {
	if !inBounds(r, address) {
		return writeError(address, x, "outside WRAM")
	}
	r.data[address&ramMirror] = x
	return nil
}
