// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachine creates a virtual machine configured by the machine options.
// Instruction tracing is enabled if requested by the program options.
func CreateMachine(logger *log.Logger, opts options.Program, machineOpts options.Machine) *chip8.Machine {
	cfg := chip8.Config{
		Logger: logger,
		Trace:  opts.Trace,
		Quirks: CreateQuirks(machineOpts),
	}
	if machineOpts.Seed != 0 {
		cfg.RNG = chip8.NewRandom(machineOpts.Seed)
	}
	return chip8.New(cfg)
}

// CreateQuirks converts the machine options to the quirks of the machine.
func CreateQuirks(machineOpts options.Machine) chip8.Quirks {
	quirks := chip8.Quirks{
		ShiftUsesVX:              machineOpts.ShiftUsesVX,
		LoadStoreIncrementsIndex: machineOpts.IndexIncrement,
		IndexPolicy:              chip8.IndexWrap,
	}
	if machineOpts.StrictIndex {
		quirks.IndexPolicy = chip8.IndexStrict
	}
	return quirks
}

// CreateFrontend creates the frontend with the given name.
func CreateFrontend(logger *log.Logger, name string, runnerOpts options.Runner) (frontend.Frontend, error) {
	switch name {
	case options.FrontendHeadless:
		return headless.New(), nil
	case options.FrontendTerminal:
		return terminal.New(logger), nil
	case options.FrontendWindow:
		return createWindow(runnerOpts.Scale)
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}
