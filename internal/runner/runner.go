// Package runner drives a CHIP-8 machine in real time. Every cycle it
// samples the frontend keypad, executes a single instruction and publishes
// the display when it changed.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Reason describes why a run ended.
type Reason int

// Reasons for a run to end.
const (
	Cancelled Reason = iota
	CycleLimit
	Halted
	Failed
)

func (r Reason) String() string {
	switch r {
	case Cancelled:
		return "cancelled"
	case CycleLimit:
		return "cycle limit reached"
	case Halted:
		return "program halted"
	case Failed:
		return "execution failed"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a run.
type Result struct {
	Cycles  uint64
	Skipped int // number of skipped illegal instructions
	Reason  Reason
	Frame   chip8.Frame
}

// Runner executes a machine and exchanges frames and keys with a frontend.
type Runner struct {
	logger  *log.Logger
	machine *chip8.Machine
	io      frontend.IO
	opts    options.Runner
}

// New returns a new runner. The runner is the only user of the machine
// while Run executes.
func New(logger *log.Logger, machine *chip8.Machine, io frontend.IO, opts options.Runner) *Runner {
	return &Runner{
		logger:  logger,
		machine: machine,
		io:      io,
		opts:    opts,
	}
}

// Run executes cycles until the cycle limit is reached, the program halts,
// an error occurs or the context is cancelled. On cancellation the context
// error is returned together with the result so far.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	var ticks <-chan time.Time
	if r.opts.Period > 0 {
		ticker := time.NewTicker(r.opts.Period)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		if err := ctx.Err(); err != nil {
			return r.finish(result, Cancelled), fmt.Errorf("running: %w", err)
		}

		if err := r.cycle(&result); err != nil {
			return r.finish(result, Failed), err
		}

		if r.opts.MaxCycles > 0 && result.Cycles >= r.opts.MaxCycles {
			return r.finish(result, CycleLimit), nil
		}
		if r.opts.StopOnHalt && r.machine.Halted() {
			return r.finish(result, Halted), nil
		}

		if ticks != nil {
			select {
			case <-ctx.Done():
			case <-ticks:
			}
		}
	}
}

// cycle executes a single machine step including the keypad and display
// exchange with the frontend.
func (r *Runner) cycle(result *Result) error {
	r.machine.SetKeypad(r.io.Keypad())

	_, err := r.machine.Step()
	result.Cycles++
	if err != nil {
		if !r.opts.SkipIllegal || !errors.Is(err, chip8.ErrIllegalInstruction) {
			return fmt.Errorf("running: %w", err)
		}
		result.Skipped++
		address, opcode := r.machine.LastOpcode()
		r.logger.Warn("Skipping illegal instruction",
			log.Hex("address", address),
			log.Hex("opcode", opcode))
	}

	if r.machine.ConsumeRedraw() {
		r.io.Present(r.machine.Frame())
	}
	return nil
}

func (r *Runner) finish(result Result, reason Reason) Result {
	result.Reason = reason
	result.Frame = r.machine.Frame()
	r.logger.Debug("Run finished",
		log.Stringer("reason", reason),
		log.Int("cycles", int(result.Cycles)),
		log.Hex("pc", r.machine.PC()))
	return result
}
