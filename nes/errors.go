package nes

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigError means the console could not be assembled, it is always reported before
// the first instruction runs.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

func configErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&ConfigError{Reason: fmt.Sprintf(format, args...)})
}

// AccessError is an illegal memory access, e.g. writing to PRG ROM or reading a
// write-only PPU port.
type AccessError struct {
	Address uint16
	Value   byte
	Write   bool
	Reason  string
}

func (e *AccessError) Error() string {
	if e.Write {
		return fmt.Sprintf("illegal write: address=0x%04x, data=0x%02x: %s", e.Address, e.Value, e.Reason)
	}
	return fmt.Sprintf("illegal read: address=0x%04x: %s", e.Address, e.Reason)
}

func readError(address uint16, reason string) error {
	return errors.WithStack(&AccessError{Address: address, Reason: reason})
}

func writeError(address uint16, data byte, reason string) error {
	return errors.WithStack(&AccessError{Address: address, Value: data, Write: true, Reason: reason})
}

// ExecutionError wraps any failure raised while the CPU executes an instruction.
// Registers holds the state at the start of the failing instruction.
type ExecutionError struct {
	Registers Registers
	Opcode    byte
	Cycles    uint64
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution stopped at %s opcode=0x%02x CYC:%d: %v", e.Registers, e.Opcode, e.Cycles, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Cause lets errors.Cause see through to the underlying failure.
func (e *ExecutionError) Cause() error { return e.Err }
