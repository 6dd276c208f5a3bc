package nes

import "github.com/golang/glog"

const (
	ioStart uint16 = 0x4000
	ioEnd   uint16 = 0x401F
	oamDMA  uint16 = 0x4014
	joypad1 uint16 = 0x4016
	joypad2 uint16 = 0x4017
)

// IORegisters is the APU and I/O port window.
// 0x4000 - 0x4013	APU channels (stored, not emulated)
// 0x4014         	OAMDMA, the transfer itself is run by the bus
// 0x4015         	APU status
// 0x4016         	Joypad strobe (write), joypad 1 (read)
// 0x4017         	APU frame counter (write), joypad 2 (read)
type IORegisters struct {
	controllers [2]*Controller
	registers   [32]byte
	warned      map[uint16]bool
}

// NewIORegisters creates the I/O window with two controller ports.
func NewIORegisters(p1, p2 *Controller) *IORegisters {
	return &IORegisters{
		controllers: [2]*Controller{p1, p2},
		warned:      make(map[uint16]bool),
	}
}

func (r *IORegisters) Bounds() (uint16, uint16) {
	return ioStart, ioEnd
}

func (r *IORegisters) Read(address uint16) (byte, error) {
	if !inBounds(r, address) {
		return 0, readError(address, "outside the I/O registers")
	}
	switch address {
	case joypad1:
		return r.controllers[0].read(), nil
	case joypad2:
		return r.controllers[1].read(), nil
	case oamDMA:
		return 0, readError(address, "OAMDMA is write-only")
	}
	r.warnOnce(address)
	return r.registers[address-ioStart], nil
}

func (r *IORegisters) ReadBytes(address uint16, n int) ([]byte, error) {
	return readBytes(r, address, n)
}

func (r *IORegisters) Write(address uint16, data byte) error {
	if !inBounds(r, address) {
		return writeError(address, data, "outside the I/O registers")
	}
	r.registers[address-ioStart] = data
	switch address {
	case joypad1:
		// One strobe line is shared by both ports.
		r.controllers[0].write(data)
		r.controllers[1].write(data)
	case oamDMA:
	default:
		r.warnOnce(address)
	}
	return nil
}

func (r *IORegisters) warnOnce(address uint16) {
	if r.warned[address] {
		return
	}
	r.warned[address] = true
	glog.Warningf("Unimplemented I/O register access: address=0x%04x", address)
}
