// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns program, machine and runner options
func ParseFlags() (options.Program, options.Machine, options.Runner, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	var machineOpts options.Machine
	runnerOpts := options.NewRunner()
	readOptionFlags(flags, &opts)
	readMachineOptionFlags(flags, &machineOpts)
	readRunnerOptionFlags(flags, &runnerOpts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, machineOpts, runnerOpts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, machineOpts, runnerOpts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts, &runnerOpts); err != nil {
		return opts, machineOpts, runnerOpts, err
	}

	return opts, machineOpts, runnerOpts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program, runnerOpts *options.Runner) error {
	if opts.Trace {
		opts.Debug = true
	}

	opts.Frontend = strings.ToLower(opts.Frontend)
	if opts.Frontend != "" && !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if runnerOpts.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", runnerOpts.Scale)
	}
	if runnerOpts.Period < 0 {
		return errors.New("cycle period can not be negative")
	}

	// batch runs are unattended and need an end condition
	if opts.Batch != "" {
		if opts.Frontend != "" && opts.Frontend != options.FrontendHeadless {
			return fmt.Errorf("batch mode only supports the %s frontend", options.FrontendHeadless)
		}
		opts.Frontend = options.FrontendHeadless
		runnerOpts.Period = 0
		if runnerOpts.MaxCycles == 0 {
			runnerOpts.MaxCycles = options.DefaultBatchCycles
		}
	}

	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Batch, "batch", "", "run a batch of ROMs matching the given path and file mask headless and save a .png screenshot of each, for example *.ch8")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of a .png file to save the final display content to")
	flags.StringVar(&opts.Frontend, "frontend", "", "frontend to use (window/terminal/headless) - auto-detected if not given")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readMachineOptionFlags(flags *flag.FlagSet, opts *options.Machine) {
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
	flags.BoolVar(&opts.ShiftUsesVX, "shift-vx", false, "shift instructions shift Vx in place instead of Vy")
	flags.BoolVar(&opts.StrictIndex, "strict-index", false, "treat an index register overflow as error instead of wrapping it")
	flags.BoolVar(&opts.IndexIncrement, "index-increment", false, "register store and load instructions increment the index register")
}

func readRunnerOptionFlags(flags *flag.FlagSet, opts *options.Runner) {
	flags.DurationVar(&opts.Period, "period", opts.Period, "time between two executed instructions, 0 runs as fast as possible")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after the given number of cycles, 0 runs until stopped")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "pixel scale of the window and screenshot output")
	flags.BoolVar(&opts.SkipIllegal, "skip-illegal", false, "log illegal instructions and continue instead of stopping")
	flags.BoolVar(&opts.StopOnHalt, "stop-on-halt", false, "stop when the program jumps to itself")
}
