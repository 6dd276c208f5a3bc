package nes

import (
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// oamDMACycles is the CPU stall of an OAM DMA transfer, one more on an odd CPU cycle.
const oamDMACycles = 513

// Bus routes CPU accesses to the owning device and keeps the PPU in lockstep with the
// CPU clock.
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x401F	I/O Port
// 0x4020 - 0x5FFF	Extended RAM
// 0x6000 - 0x7FFF	Battery Backup RAM
// 0x8000 - 0xBFFF	ProgramROM Low
// 0xC000 - 0xFFFF	ProgramROM High
type Bus struct {
	devices []Device
	ppu     *PPU

	cycles uint64 // CPU cycles ticked so far
	dma    bool   // the current instruction started an OAM DMA
	nmi    bool   // latched rising edge of the PPU interrupt output

	// onInput and onFrame run once per video frame, on the NMI rising edge.
	onInput func()
	onFrame func()
}

// NewBus creates the CPU bus of a console.
func NewBus(wram *RAM, ppu *PPU, io *IORegisters, rom *ROM) (*Bus, error) {
	return newBus(ppu, wram, ppu, io, newExpansion(), rom)
}

// newBus checks that the devices tile the whole 64KB space without overlapping.
func newBus(ppu *PPU, devices ...Device) (*Bus, error) {
	sorted := make([]Device, len(devices))
	copy(sorted, devices)
	sort.Slice(sorted, func(i, j int) bool {
		a, _ := sorted[i].Bounds()
		b, _ := sorted[j].Bounds()
		return a < b
	})
	next := 0
	for _, d := range sorted {
		start, end := d.Bounds()
		if start > end {
			return nil, configErrorf("device %T has inverted bounds 0x%04x-0x%04x", d, start, end)
		}
		if int(start) < next {
			return nil, configErrorf("device %T at 0x%04x-0x%04x overlaps another device", d, start, end)
		}
		if int(start) > next {
			return nil, configErrorf("no device owns 0x%04x-0x%04x", next, start-1)
		}
		next = int(end) + 1
	}
	if next != 0x10000 {
		return nil, configErrorf("no device owns 0x%04x-0xffff", next)
	}
	return &Bus{devices: devices, ppu: ppu}, nil
}

// owner finds the device whose range contains the address.
func (b *Bus) owner(address uint16) (Device, error) {
	for _, d := range b.devices {
		start, end := d.Bounds()
		if start <= address && address <= end {
			return d, nil
		}
	}
	return nil, readError(address, "no device owns the address")
}

// Read reads a byte.
func (b *Bus) Read(address uint16) (byte, error) {
	d, err := b.owner(address)
	if err != nil {
		return 0, err
	}
	return d.Read(address)
}

// ReadBytes reads n consecutive bytes, wrapping at 0xFFFF. The range is split at device
// boundaries so every byte is read by its own owner.
func (b *Bus) ReadBytes(address uint16, n int) ([]byte, error) {
	buf := make([]byte, 0, n)
	for len(buf) < n {
		d, err := b.owner(address)
		if err != nil {
			return nil, err
		}
		_, end := d.Bounds()
		count := int(end-address) + 1
		if rest := n - len(buf); count > rest {
			count = rest
		}
		data, err := d.ReadBytes(address, count)
		if err != nil {
			return nil, err
		}
		buf = append(buf, data...)
		address += uint16(count)
	}
	return buf, nil
}

// Read16 reads 2 bytes, little endian.
func (b *Bus) Read16(address uint16) (uint16, error) {
	l, err := b.Read(address)
	if err != nil {
		return 0, err
	}
	h, err := b.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// read16Bug reads a pointer the way JMP (indirect) does: the high byte never crosses
// into the next page.
func (b *Bus) read16Bug(address uint16) (uint16, error) {
	l, err := b.Read(address)
	if err != nil {
		return 0, err
	}
	h, err := b.Read(address&0xFF00 | uint16(byte(address)+1))
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// read16ZeroPage reads a pointer stored in page zero, wrapping from 0xFF to 0x00.
func (b *Bus) read16ZeroPage(address byte) (uint16, error) {
	l, err := b.Read(uint16(address))
	if err != nil {
		return 0, err
	}
	h, err := b.Read(uint16(address + 1))
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// Write writes a byte. Writing the OAMDMA port copies a whole page into sprite memory.
func (b *Bus) Write(address uint16, data byte) error {
	d, err := b.owner(address)
	if err != nil {
		return errors.WithStack(&AccessError{Address: address, Value: data, Write: true, Reason: "no device owns the address"})
	}
	if address == oamDMA {
		if err := b.writeOAMDMA(data); err != nil {
			return err
		}
	}
	before := b.ppu.nmiPending
	if err := d.Write(address, data); err != nil {
		return err
	}
	// Enabling NMI in PPUCTRL during vblank raises the line immediately.
	if !before && b.ppu.nmiPending {
		b.nmi = true
	}
	return nil
}

// Write16 writes 2 bytes, little endian.
func (b *Bus) Write16(address uint16, data uint16) error {
	if err := b.Write(address, byte(data)); err != nil {
		return err
	}
	return b.Write(address+1, byte(data>>8))
}

// writeOAMDMA copies 0xXX00-0xXXFF through the bus into OAM, in ascending order.
func (b *Bus) writeOAMDMA(page byte) error {
	offset := uint16(page) << 8
	for i := 0; i < 256; i++ {
		data, err := b.Read(offset + uint16(i))
		if err != nil {
			return errors.Wrapf(err, "OAM DMA from page 0x%02x", page)
		}
		b.ppu.writeOAMDATA(data)
	}
	b.dma = true
	return nil
}

// takeStall returns and clears the DMA cycles owed by the current instruction, which
// takes inFlight cycles and has not been ticked yet. The transfer waits one more cycle
// when it starts on an odd cycle.
func (b *Bus) takeStall(inFlight int) int {
	if !b.dma {
		return 0
	}
	b.dma = false
	return oamDMACycles + int((b.cycles+uint64(inFlight))&1)
}

// takeNMI reports whether an NMI edge is waiting to be serviced and acknowledges it.
func (b *Bus) takeNMI() bool {
	if !b.nmi {
		return false
	}
	b.nmi = false
	b.ppu.nmiPending = false
	return true
}

// Tick advances the PPU by three dots per CPU cycle. On the rising edge of the PPU
// interrupt output the NMI is latched for the CPU, then input is polled and the frame
// is handed over.
func (b *Bus) Tick(cycles int) {
	before := b.ppu.nmiPending
	b.ppu.Tick(3 * cycles)
	b.cycles += uint64(cycles)
	if before || !b.ppu.nmiPending {
		return
	}
	b.nmi = true
	glog.V(3).Infof("NMI edge at CPU cycle %d", b.cycles)
	if b.onInput != nil {
		b.onInput()
	}
	if b.onFrame != nil {
		b.onFrame()
	}
}
