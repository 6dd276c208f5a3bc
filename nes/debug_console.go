package nes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

var stepArg = regexp.MustCompile(`^([0-9]+)([sd]?)$`)

// DebugConsole a NES console for debugging, you can execute some commands through stdio.
// commands:
//   s [n|Ns|Nd]:
//     execute step(s). Ns runs N seconds worth of cycles, Nd prints the state after each step.
//   p [cpu|ppu|cartridge|controller|wram|vram|stack]:
//     print.
//   br 0xADDR:
//     set a break point.
//   r:
//     reset.
//   shot FILE [SCALE]:
//     write the last frame as PNG.
//   q:
//     quit.
type DebugConsole struct {
	*Console
	in          *bufio.Scanner
	out         io.Writer
	prompt      bool
	cycles      uint64
	breakpoints []uint16
}

// NewDebugConsole reads commands from in and prints to out. The prompt is only shown
// when in is a terminal.
func NewDebugConsole(console *Console, in io.Reader, out io.Writer) *DebugConsole {
	c := &DebugConsole{
		Console: console,
		in:      bufio.NewScanner(in),
		out:     out,
	}
	if f, ok := in.(*os.File); ok {
		c.prompt = term.IsTerminal(int(f.Fd()))
	}
	console.cpu.trace = true
	return c
}

func (c *DebugConsole) step() (int, error) {
	cycles, err := c.Console.Step()
	c.cycles += uint64(cycles)
	return cycles, err
}

func (c *DebugConsole) printStack() {
	for i := 0; i < 256; i++ {
		address := stackPage | uint16(i)
		data, _ := c.wram.Read(address)
		if i%16 == 0 {
			fmt.Fprintf(c.out, "\n0x%04x:", address)
		}
		fmt.Fprintf(c.out, " %02x", data)
	}
	fmt.Fprintln(c.out)
}

func (c *DebugConsole) basePrint() {
	fmt.Fprintln(c.out, "--------------------------------------------------")
	fmt.Fprintf(c.out, "Executed cycles: %d\n", c.cycles)
	fmt.Fprintf(c.out, "Rendered frame: %d\n", c.frames)
	fmt.Fprintln(c.out, "Last: "+c.cpu.lastExecution)
	fmt.Fprintf(c.out, "CPU: %s CYC:%d\n", c.cpu.Registers(), c.cpu.cycles)
	fmt.Fprintf(c.out, "PPU: cycle=%d, scanline=%d, v=0x%04x, ctrl=0x%02x, mask=0x%02x, status=0x%02x\n",
		c.ppu.cycle, c.ppu.scanline, c.ppu.v, byte(c.ppu.ctrl), byte(c.ppu.mask), byte(c.ppu.status))
}

func (c *DebugConsole) printCommand(args []string) {
	if len(args) < 2 {
		c.basePrint()
		return
	}
	switch args[1] {
	case "c", "cpu":
		fmt.Fprintf(c.out, "%s status=%+v\n", c.cpu.Registers(), *c.cpu.p)
	case "p", "ppu":
		fmt.Fprintf(c.out, "ctrl=0x%02x mask=0x%02x status=0x%02x oamaddr=0x%02x v=0x%04x scroll=%v\n",
			byte(c.ppu.ctrl), byte(c.ppu.mask), byte(c.ppu.status), c.ppu.oamAddr, c.ppu.v, c.ppu.scroll)
	case "ca", "cartridge":
		fmt.Fprintf(c.out, "PRG=%dKB CHR=%dKB chrRAM=%t mapper=%d mirror=%s battery=%t\n",
			len(c.cartridge.prgROM)/1024, len(c.cartridge.chrROM)/1024, c.cartridge.chrRAM,
			c.cartridge.mapper, c.cartridge.mirror, c.cartridge.battery)
	case "ct", "controller":
		for i, ct := range c.controllers {
			fmt.Fprintf(c.out, "%d: %+v\n", i, *ct)
		}
	case "wr", "wram":
		fmt.Fprintf(c.out, "% x\n", c.wram.data[:])
	case "vr", "vram":
		fmt.Fprintf(c.out, "% x\n", c.ppu.bus.vram[:])
	case "st", "stack":
		c.printStack()
	default:
		fmt.Fprintf(c.out, "Unknown target %q\n", args[1])
	}
}

func (c *DebugConsole) checkBreak() bool {
	for _, b := range c.breakpoints {
		if b == c.cpu.pc {
			fmt.Fprintf(c.out, "Break at: 0x%04x\n", b)
			return true
		}
	}
	return false
}

func (c *DebugConsole) stepCommand(args []string) (int, error) {
	if len(args) < 2 {
		return c.step()
	}
	m := stepArg.FindStringSubmatch(args[1])
	if m == nil {
		fmt.Fprintf(c.out, "Invalid step count %q\n", args[1])
		return 0, nil
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, errors.Wrapf(err, "invalid step count %q", args[1])
	}
	cycles := 0
	switch m[2] {
	case "s":
		// s means seconds of emulated time, CPUFrequency * num cycles.
		for steps := CPUFrequency * num; cycles < steps && !c.cpu.Halted(); {
			v, err := c.step()
			cycles += v
			if err != nil {
				return cycles, err
			}
			if c.checkBreak() {
				return cycles, nil
			}
		}
	default:
		for i := 0; i < num && !c.cpu.Halted(); i++ {
			v, err := c.step()
			cycles += v
			if m[2] == "d" {
				// debug -> steps with debug messages.
				c.basePrint()
			}
			if err != nil {
				return cycles, err
			}
			if c.checkBreak() {
				return cycles, nil
			}
		}
	}
	return cycles, nil
}

func (c *DebugConsole) breakPointCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: br 0xADDR")
	}
	address, err := strconv.ParseUint(strings.TrimPrefix(args[1], "0x"), 16, 16)
	if err != nil {
		return errors.Wrapf(err, "invalid breakpoint %q", args[1])
	}
	c.breakpoints = append(c.breakpoints, uint16(address))
	fmt.Fprintf(c.out, "Breakpoint set at 0x%04x\n", address)
	return nil
}

func (c *DebugConsole) shotCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: shot FILE [SCALE]")
	}
	scale := 1
	if len(args) > 2 {
		s, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.Wrapf(err, "invalid scale %q", args[2])
		}
		scale = s
	}
	f, err := os.Create(args[1])
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	if err := WriteScreenshot(f, c.Frame(), scale); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Wrote %s\n", args[1])
	return nil
}

// Command runs one command line. It reports false once the debugger should quit.
// Emulation errors are returned, mistyped commands are only reported to out.
func (c *DebugConsole) Command(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return true, nil
	}
	switch args[0] {
	case "p", "print":
		c.printCommand(args)
	case "s", "step":
		cycles, err := c.stepCommand(args)
		c.basePrint() // Print data before it die.
		if err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "Executed %d CPU cycles, %d PPU cycles.\n", cycles, 3*cycles)
	case "br", "breakpoint":
		if err := c.breakPointCommand(args); err != nil {
			fmt.Fprintln(c.out, err)
		}
	case "r", "reset":
		c.cycles = 0
		if err := c.Reset(); err != nil {
			return false, err
		}
	case "shot", "screenshot":
		if err := c.shotCommand(args); err != nil {
			fmt.Fprintln(c.out, err)
		}
	case "q", "quit":
		fmt.Fprintln(c.out, "Quitting.")
		return false, nil
	default:
		fmt.Fprintf(c.out, "Unknown command %q\n", line)
	}
	return true, nil
}

// Run reads commands until quit or the end of input.
func (c *DebugConsole) Run() error {
	for {
		if c.prompt {
			fmt.Fprint(c.out, "Debugger mode, 'q' to quit \n>> ")
		}
		if !c.in.Scan() {
			return errors.WithStack(c.in.Err())
		}
		more, err := c.Command(c.in.Text())
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}
