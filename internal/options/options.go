// Package options contains the program options.
package options

import "time"

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists all valid frontend names.
var Frontends = []string{FrontendWindow, FrontendTerminal, FrontendHeadless}

// Default option values.
const (
	DefaultPeriod      = 2 * time.Millisecond
	DefaultScale       = 10
	DefaultBatchCycles = 10000
)

// Parameters contains file path options.
type Parameters struct {
	Input      string `flag:"i" usage:"input ROM file"`
	Batch      string `flag:"batch" usage:"run all ROMs matching pattern headless and save a screenshot of each (e.g. *.ch8)"`
	Screenshot string `flag:"screenshot" usage:"PNG file to save the final display to"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"frontend" usage:"frontend: window, terminal, headless (default: auto-detect)"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Machine contains the options that configure the virtual machine.
type Machine struct {
	Seed           uint64 // random generator seed, 0 uses the current time
	ShiftUsesVX    bool   // 8xy6 and 8xyE shift Vx in place
	StrictIndex    bool   // Fx1E fails instead of wrapping the index register
	IndexIncrement bool   // Fx55 and Fx65 advance the index register
}

// Runner defines options to control the execution loop.
type Runner struct {
	Period      time.Duration // time between two cycles, 0 runs unthrottled
	MaxCycles   uint64        // stop after this many cycles, 0 runs until cancelled
	Scale       int           // pixel size of window and screenshot output
	SkipIllegal bool          // log illegal instructions and continue
	StopOnHalt  bool          // stop when the program jumps to itself
}

// NewRunner returns a new options instance with default options.
func NewRunner() Runner {
	return Runner{
		Period: DefaultPeriod,
		Scale:  DefaultScale,
	}
}
