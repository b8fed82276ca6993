// Package session orchestrates running a single ROM: frontend detection,
// loading, machine setup and the concurrent execution of runner and
// frontend.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// Session orchestrates the complete emulation workflow.
type Session struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new session.
func New(logger *log.Logger, env detector.Environment) *Session {
	return &Session{
		logger:   logger,
		detector: detector.New(logger, env),
		loader:   loader.New(),
	}
}

// Execute loads the ROM of the program options and runs it until the run
// ends, the frontend is closed or the context is cancelled.
func (s *Session) Execute(ctx context.Context, opts options.Program,
	machineOpts options.Machine, runnerOpts options.Runner) (runner.Result, error) {

	name := s.detector.Detect(opts, runnerOpts)
	fe, err := config.CreateFrontend(s.logger, name, runnerOpts)
	if err != nil {
		return runner.Result{}, fmt.Errorf("creating frontend: %w", err)
	}

	rom, err := s.loader.Load(opts.Input)
	if err != nil {
		return runner.Result{}, fmt.Errorf("loading ROM: %w", err)
	}

	return s.ExecuteWithFrontend(ctx, rom, fe, opts, machineOpts, runnerOpts)
}

// ExecuteWithFrontend runs a ROM that is already in memory using the given
// frontend. This is useful for testing and programmatic usage.
func (s *Session) ExecuteWithFrontend(ctx context.Context, rom []byte, fe frontend.Frontend,
	opts options.Program, machineOpts options.Machine, runnerOpts options.Runner) (runner.Result, error) {

	machine := config.CreateMachine(s.logger, opts, machineOpts)
	if err := machine.LoadProgram(rom); err != nil {
		return runner.Result{}, fmt.Errorf("loading program: %w", err)
	}

	s.printInfo(opts, len(rom), runnerOpts)

	result, err := s.run(ctx, runner.New(s.logger, machine, fe, runnerOpts), fe)
	if err != nil {
		return result, err
	}

	s.logger.Debug("Execution ended",
		log.Stringer("reason", result.Reason),
		log.Int("cycles", int(result.Cycles)))

	if opts.Screenshot != "" {
		if err := screenshot.Save(opts.Screenshot, result.Frame, runnerOpts.Scale); err != nil {
			return result, fmt.Errorf("saving screenshot: %w", err)
		}
		s.logger.Info("Screenshot saved", log.String("file", opts.Screenshot))
	}
	return result, nil
}

// run executes runner and frontend concurrently. Whichever of both ends
// first stops the other one. The frontend runs on the calling goroutine.
func (s *Session) run(ctx context.Context, r *runner.Runner, fe frontend.Frontend) (runner.Result, error) {
	g, groupCtx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(groupCtx)
	defer cancel()

	var result runner.Result
	g.Go(func() error {
		defer cancel()
		var err error
		result, err = r.Run(runCtx)
		// a stop that was not requested by the caller came from the frontend
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return err
	})

	// window toolkits require their event loop on the calling goroutine,
	// which is the main goroutine when started from the command line.
	feErr := fe.Run(runCtx)
	cancel()

	if err := g.Wait(); err != nil {
		return result, err
	}
	if feErr != nil && !errors.Is(feErr, frontend.ErrClosed) {
		return result, fmt.Errorf("running frontend: %w", feErr)
	}
	return result, nil
}

// printInfo prints information about the ROM being run.
func (s *Session) printInfo(opts options.Program, size int, runnerOpts options.Runner) {
	if opts.Quiet {
		return
	}

	s.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("period", runnerOpts.Period.String()))
}
