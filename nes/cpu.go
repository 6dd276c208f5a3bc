package nes

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// CPU emulates NES CPU - is custom 6502 made by RICOH.
// References:
//   https://en.wikipedia.org/wiki/MOS_Technology_6502
//   http://www.6502.org/tutorials/6502opcodes.html
//   http://hp.vector.co.jp/authors/VA042397/nes/6502.html (In Japanese)

const CPUFrequency = 1789773

const (
	nmiVector   uint16 = 0xFFFA
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE
	stackPage   uint16 = 0x0100
)

type CPU struct {
	p             *status // Processor status flag bits
	a             byte    // Accumulator register
	x             byte    // Index register
	y             byte    // Index register
	pc            uint16  // Program counter
	s             byte    // Stack pointer
	bus           *Bus
	instructions  *instructionSet
	cycles        uint64 // CPU cycles since power on
	running       bool
	halted        bool   // a BRK stopped the CPU, cleared by Reset
	haltOnBreak   bool   // BRK stops the run loop instead of vectoring through IRQ
	trace         bool   // keep a nestest style line of every instruction
	lastExecution string // For debug
}

// Registers is a snapshot of the CPU registers.
type Registers struct {
	A, X, Y, P, S byte
	PC            uint16
}

func (r Registers) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X", r.PC, r.A, r.X, r.Y, r.P, r.S)
}

// NewCPU creates a new NES CPU.
func NewCPU(bus *Bus) (*CPU, error) {
	set, err := newInstructionSet(officialInstructions, unofficialInstructions)
	if err != nil {
		return nil, err
	}
	c := &CPU{
		p:            &status{},
		bus:          bus,
		instructions: set,
	}
	if err := c.Reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reset does Reset: PC from the reset vector, SP=0xFD, P=0x24. The 7 cycles of the
// reset sequence are ticked.
func (c *CPU) Reset() error {
	data, err := c.bus.Read16(resetVector)
	if err != nil {
		return errors.Wrap(err, "reading the reset vector")
	}
	c.a, c.x, c.y = 0, 0, 0
	c.pc = data
	c.s = 0xFD
	c.p.decodeFrom(0x24)
	c.cycles = 0
	c.halted = false
	c.bus.Tick(7)
	c.cycles += 7
	glog.Infof("CPU reset: PC=0x%04x", c.pc)
	return nil
}

// Registers returns the current register values.
func (c *CPU) Registers() Registers {
	return Registers{A: c.a, X: c.x, Y: c.y, P: c.p.encode(), S: c.s, PC: c.pc}
}

// Running reports whether Run is still looping.
func (c *CPU) Running() bool {
	return c.running
}

// Halted reports whether a BRK stopped the CPU.
func (c *CPU) Halted() bool {
	return c.halted
}

// Stop makes Run return after the current instruction.
func (c *CPU) Stop() {
	c.running = false
}

// push pushes data to stack.
// "With the 6502, the stack is always on page one ($100-$1FF) and works top down."
func (c *CPU) push(x byte) error {
	if err := c.bus.Write(stackPage|uint16(c.s), x); err != nil {
		return err
	}
	c.s--
	return nil
}

// pop pops data from stack.
func (c *CPU) pop() (byte, error) {
	c.s++
	return c.bus.Read(stackPage | uint16(c.s))
}

// push16 pushes the high byte first so the value sits little endian in memory.
func (c *CPU) push16(x uint16) error {
	if err := c.push(byte(x >> 8)); err != nil {
		return err
	}
	return c.push(byte(x))
}

func (c *CPU) pop16() (uint16, error) {
	l, err := c.pop()
	if err != nil {
		return 0, err
	}
	h, err := c.pop()
	if err != nil {
		return 0, err
	}
	return uint16(h)<<8 | uint16(l), nil
}

// pullStatus restores the status from the stack except bits 4 and 5, which only exist
// in pushed copies.
func (c *CPU) pullStatus() error {
	data, err := c.pop()
	if err != nil {
		return err
	}
	b1, b2 := c.p.b1, c.p.b2
	c.p.decodeFrom(data)
	c.p.b1, c.p.b2 = b1, b2
	return nil
}

// NMI is non-maskable interrupt, this will be trigered by PPU.
func (c *CPU) nmi() error {
	if err := c.push16(c.pc); err != nil {
		return err
	}
	pushed := *c.p
	pushed.b1 = false
	pushed.b2 = true
	if err := c.push(pushed.encode()); err != nil {
		return err
	}
	c.p.i = true
	c.bus.Tick(2)
	c.cycles += 2
	data, err := c.bus.Read16(nmiVector)
	if err != nil {
		return err
	}
	c.pc = data
	return nil
}

// Run executes instructions until Stop, a halting BRK, or an error.
func (c *CPU) Run() error {
	c.running = !c.halted
	for c.running {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs the instruction cycle - fetch, decode, execute - after servicing a
// pending NMI, and returns the CPU cycles it took. Any failure stops the CPU and is
// returned as an *ExecutionError.
func (c *CPU) Step() (int, error) {
	if c.halted {
		return 0, nil
	}
	before := c.Registers()
	var opcode byte
	cycles, err := c.step(&opcode)
	if err != nil {
		c.running = false
		return 0, errors.WithStack(&ExecutionError{Registers: before, Opcode: opcode, Cycles: c.cycles, Err: err})
	}
	return cycles, nil
}

func (c *CPU) step(opcode *byte) (int, error) {
	if c.bus.takeNMI() {
		if err := c.nmi(); err != nil {
			return 0, errors.Wrap(err, "servicing NMI")
		}
	}
	data, err := c.bus.Read(c.pc)
	if err != nil {
		return 0, err
	}
	*opcode = data
	inst := c.instructions[data]
	if inst == nil {
		return 0, errors.Errorf("tried to execute unknown instruction: opcode=0x%02x", data)
	}
	var operand []byte
	if n := inst.mode.operandLength(); n > 0 {
		if operand, err = c.bus.ReadBytes(c.pc+1, int(n)); err != nil {
			return 0, err
		}
	}
	next := c.pc + inst.size()
	e := &execution{mode: inst.mode, operand: operand}
	if e.address, err = c.resolve(inst.mode, next, operand); err != nil {
		return 0, err
	}
	if c.trace {
		c.lastExecution = c.traceLine(inst, operand, e.address)
		glog.V(2).Info(c.lastExecution)
	}
	c.pc = next
	if err := inst.op.run(c, e); err != nil {
		return 0, err
	}
	cycles := inst.cycles + e.extra
	if inst.pageCycle && e.address.crossed {
		cycles++
	}
	cycles += c.bus.takeStall(cycles)
	c.bus.Tick(cycles)
	c.cycles += uint64(cycles)
	return cycles, nil
}
