package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalInstruction is returned for an opcode that is not part of the CHIP-8 instruction set.
	ErrIllegalInstruction = errors.New("illegal instruction")
	// ErrStackOverflow is returned when a call exceeds the 16 available stack frames.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrOutOfBounds is returned for any memory access outside of the 4KB address space.
	ErrOutOfBounds = errors.New("memory access out of bounds")
	// ErrProgramTooLarge is returned when a program does not fit into the program area.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrInvalidKey is returned for key numbers outside of 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key")
)

// StepError describes a failure while executing a single cycle.
// Address is the location of the instruction that failed.
type StepError struct {
	Address uint16
	Opcode  uint16
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("executing opcode %04X at address %03X: %s", e.Opcode, e.Address, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func outOfBounds(address uint16, length int) error {
	return fmt.Errorf("%w: %d bytes at address %04X", ErrOutOfBounds, length, address)
}
