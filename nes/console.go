package nes

import (
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Console is a whole NES: the CPU, the PPU and everything on the CPU bus.
type Console struct {
	cpu         *CPU
	ppu         *PPU
	bus         *Bus
	cartridge   *Cartridge
	wram        *RAM
	controllers [2]*Controller

	trace        bool
	haltOnBreak  bool
	frameHandler func(*image.RGBA)
	inputHandler func()

	frames uint64
	err    error // a failure inside the per-frame hooks, it stops the CPU
}

// NewConsole assembles a console around an iNES image and resets it.
func NewConsole(buf []byte, options ...Option) (*Console, error) {
	cartridge, err := NewCartridge(buf)
	if err != nil {
		return nil, err
	}
	mapper, err := NewMapper(cartridge)
	if err != nil {
		return nil, err
	}
	ppu := NewPPU(NewPPUBus(mapper, cartridge.getTableMirrorMode()))
	p1, p2 := NewController(), NewController()
	wram := NewRAM()
	bus, err := NewBus(wram, ppu, NewIORegisters(p1, p2), NewROM(mapper))
	if err != nil {
		return nil, err
	}
	c := &Console{
		ppu:         ppu,
		bus:         bus,
		cartridge:   cartridge,
		wram:        wram,
		controllers: [2]*Controller{p1, p2},
	}
	if err := c.setOptions(options...); err != nil {
		return nil, err
	}
	bus.onInput = c.pollInput
	bus.onFrame = c.renderFrame
	cpu, err := NewCPU(bus)
	if err != nil {
		return nil, err
	}
	cpu.trace = c.trace
	cpu.haltOnBreak = c.haltOnBreak
	c.cpu = cpu
	return c, nil
}

func (c *Console) pollInput() {
	if c.inputHandler != nil {
		c.inputHandler()
	}
}

func (c *Console) renderFrame() {
	frame, err := c.ppu.Render()
	if err != nil {
		if c.err == nil {
			c.err = errors.Wrapf(err, "rendering frame %d", c.frames+1)
		}
		c.cpu.Stop()
		return
	}
	c.frames++
	glog.V(1).Infof("Rendered frame %d", c.frames)
	if c.frameHandler != nil {
		c.frameHandler(frame)
	}
}

// takeErr returns and clears a failure raised by the frame hooks.
func (c *Console) takeErr() error {
	err := c.err
	c.err = nil
	return err
}

// Run executes until Stop is called, a BRK halts the CPU (WithHaltOnBreak) or an error.
func (c *Console) Run() error {
	if err := c.cpu.Run(); err != nil {
		return err
	}
	return c.takeErr()
}

// Step executes a single instruction, servicing a pending NMI first.
func (c *Console) Step() (int, error) {
	cycles, err := c.cpu.Step()
	if err != nil {
		return cycles, err
	}
	return cycles, c.takeErr()
}

// frameCycles is the number of CPU cycles of one video frame, rounded up.
const frameCycles = (dotsPerLine*linesPerFrame + 2) / 3

// StepFrame executes until the next frame has been rendered, the CPU halts or Stop is
// called. A program that keeps NMI disabled renders nothing, StepFrame then returns
// after two frame periods.
func (c *Console) StepFrame() error {
	frames := c.frames
	c.cpu.running = !c.cpu.halted
	defer c.cpu.Stop()
	for spent := 0; c.cpu.running && c.frames == frames && spent < 2*frameCycles; {
		cycles, err := c.Step()
		if err != nil {
			return err
		}
		spent += cycles
	}
	return nil
}

// Stop makes Run return after the current instruction.
func (c *Console) Stop() {
	c.cpu.Stop()
}

// Reset resets the PPU and the CPU. Memory is kept like the reset button does.
func (c *Console) Reset() error {
	c.ppu.Reset()
	if err := c.cpu.Reset(); err != nil {
		return err
	}
	glog.Infof("Console reset")
	return nil
}

// Frame returns the last rendered frame.
func (c *Console) Frame() *image.RGBA {
	return c.ppu.Frame()
}

// Frames returns how many frames have been rendered.
func (c *Console) Frames() uint64 {
	return c.frames
}

// SetButtonMask sets the pressed buttons of controller port 0 or 1, bit 0 is A and
// bit 7 is Right.
func (c *Console) SetButtonMask(port int, mask byte) {
	if port < 0 || port >= len(c.controllers) {
		glog.Warningf("No controller port %d", port)
		return
	}
	c.controllers[port].SetMask(mask)
}

// Registers returns the CPU registers.
func (c *Console) Registers() Registers {
	return c.cpu.Registers()
}

// Halted reports whether a BRK stopped the CPU.
func (c *Console) Halted() bool {
	return c.cpu.Halted()
}

