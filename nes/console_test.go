package nes

import (
	"image"
	"testing"

	"github.com/pkg/errors"
)

// nmiLoop enables NMI and spins.
var nmiLoop = []byte{
	0xA9, 0x80,       // LDA #$80
	0x8D, 0x00, 0x20, // STA $2000
	0x4C, 0x05, 0x80, // JMP $8005
}

func TestStepFrameRunsHooks(t *testing.T) {
	var calls []string
	var got *image.RGBA
	c := newTestConsole(t, newTestCart(nmiLoop...),
		WithInputHandler(func() { calls = append(calls, "input") }),
		WithFrameHandler(func(frame *image.RGBA) {
			calls = append(calls, "frame")
			got = frame
		}),
	)
	if err := c.StepFrame(); err != nil {
		t.Fatalf("StepFrame() failed: %+v", err)
	}
	if len(calls) != 2 || calls[0] != "input" || calls[1] != "frame" {
		t.Fatalf("hooks got=%v, want=[input frame]", calls)
	}
	if c.Frames() != 1 {
		t.Errorf("Frames() got=%d, want=1", c.Frames())
	}
	if got != c.Frame() {
		t.Errorf("frame handler got a different image than Frame()")
	}
	if b := got.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Errorf("frame size got=%dx%d, want=%dx%d", b.Dx(), b.Dy(), width, height)
	}
	// The frame is rendered at the start of vblank.
	if got := c.ppu.scanline; got != vblankLine {
		t.Errorf("scanline after StepFrame got=%d, want=%d", got, vblankLine)
	}
}

func TestRunStopsFromFrameHandler(t *testing.T) {
	var c *Console
	c = newTestConsole(t, newTestCart(nmiLoop...),
		WithFrameHandler(func(*image.RGBA) {
			if c.Frames() == 3 {
				c.Stop()
			}
		}),
	)
	if err := c.Run(); err != nil {
		t.Fatalf("Run() failed: %+v", err)
	}
	if c.Frames() != 3 {
		t.Errorf("Frames() got=%d, want=3", c.Frames())
	}
}

func TestRunHaltsOnBreak(t *testing.T) {
	c := newTestConsole(t, newTestCart(
		0xA2, 0x05, // LDX #$05
		0x00,       // BRK
	), WithHaltOnBreak(true))
	if err := c.Run(); err != nil {
		t.Fatalf("Run() failed: %+v", err)
	}
	if !c.Halted() {
		t.Fatalf("Halted() got=false, want=true")
	}
	if got := c.Registers().X; got != 0x05 {
		t.Errorf("X got=0x%02x, want=0x05", got)
	}
	// A halted console neither runs nor steps.
	if err := c.StepFrame(); err != nil {
		t.Fatalf("StepFrame() failed: %+v", err)
	}
	if cycles := mustStep(t, c); cycles != 0 {
		t.Errorf("Step() on a halted CPU got=%d cycles, want=0", cycles)
	}
}

func TestRunReturnsExecutionError(t *testing.T) {
	c := newTestConsole(t, newTestCart(0xEA, 0x02)) // NOP, then a jam opcode
	err := c.Run()
	var eerr *ExecutionError
	if !errors.As(err, &eerr) {
		t.Fatalf("Run() got err=%v, want an *ExecutionError", err)
	}
	if eerr.Registers.PC != 0x8001 || eerr.Opcode != 0x02 {
		t.Errorf("got PC=0x%04x opcode=0x%02x, want PC=0x8001 opcode=0x02", eerr.Registers.PC, eerr.Opcode)
	}
}

func TestNilHandlerOptions(t *testing.T) {
	for _, option := range []Option{WithFrameHandler(nil), WithInputHandler(nil)} {
		_, err := NewConsole(newTestCart(0xEA).image(), WithTrace(false), option)
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("NewConsole() got err=%v, want a *ConfigError", err)
		}
	}
}

func TestConsoleResetKeepsMemory(t *testing.T) {
	c := newTestConsole(t, newTestCart(
		0xA9, 0x42, // LDA #$42
		0x85, 0x10, // STA $10
	))
	mustStep(t, c)
	mustStep(t, c)
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset() failed: %+v", err)
	}
	if got := c.Registers(); got.PC != 0x8000 || got.A != 0 {
		t.Errorf("Registers() after reset got=%s, want PC=0x8000 A=0x00", got)
	}
	if got := mustRead(t, c, 0x0010); got != 0x42 {
		t.Errorf("Read(0x0010) after reset got=0x%02x, want=0x42", got)
	}
}

func TestStepFrameWithoutNMI(t *testing.T) {
	c := newTestConsole(t, newTestCart(0x4C, 0x00, 0x80)) // JMP $8000
	before := c.cpu.cycles
	if err := c.StepFrame(); err != nil {
		t.Fatalf("StepFrame() failed: %+v", err)
	}
	if c.Frames() != 0 {
		t.Errorf("Frames() got=%d, want=0", c.Frames())
	}
	spent := int(c.cpu.cycles - before)
	if spent < 2*frameCycles || spent > 2*frameCycles+3 {
		t.Errorf("cycles spent got=%d, want two frame periods (%d)", spent, 2*frameCycles)
	}
	if c.cpu.Running() {
		t.Errorf("Running() after StepFrame got=true, want=false")
	}
}
