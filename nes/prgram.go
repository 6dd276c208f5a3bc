package nes

import "github.com/golang/glog"

const (
	expansionStart uint16 = 0x4020
	expansionEnd   uint16 = 0x7FFF
	prgRAMStart    uint16 = 0x6000
)

// expansion covers the cartridge space below the PRG ROM.
// 0x4020 - 0x5FFF	Expansion ROM, absent on NROM boards
// 0x6000 - 0x7FFF	PRG RAM (battery backed on some boards)
type expansion struct {
	prgRAM [0x2000]byte
}

func newExpansion() *expansion {
	return &expansion{}
}

func (e *expansion) Bounds() (uint16, uint16) {
	return expansionStart, expansionEnd
}

func (e *expansion) Read(address uint16) (byte, error) {
	if !inBounds(e, address) {
		return 0, readError(address, "outside the expansion area")
	}
	if address < prgRAMStart {
		glog.V(2).Infof("Open bus read: address=0x%04x", address)
		return 0, nil
	}
	return e.prgRAM[address-prgRAMStart], nil
}

func (e *expansion) ReadBytes(address uint16, n int) ([]byte, error) {
	return readBytes(e, address, n)
}

func (e *expansion) Write(address uint16, data byte) error {
	if !inBounds(e, address) {
		return writeError(address, data, "outside the expansion area")
	}
	if address < prgRAMStart {
		glog.V(2).Infof("Open bus write ignored: address=0x%04x, data=0x%02x", address, data)
		return nil
	}
	e.prgRAM[address-prgRAMStart] = data
	return nil
}
