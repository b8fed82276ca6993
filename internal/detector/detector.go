// Package detector handles frontend detection.
package detector

import (
	"os"
	"runtime"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Environment provides the system properties that the detection is based on.
type Environment struct {
	Getenv        func(key string) string
	IsTerminal    func() bool
	GOOS          string
	WindowSupport bool // binary was built with the window frontend
}

// SystemEnvironment returns the environment of the running process.
func SystemEnvironment(windowSupport bool) Environment {
	return Environment{
		Getenv:        os.Getenv,
		IsTerminal:    func() bool { return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) },
		GOOS:          runtime.GOOS,
		WindowSupport: windowSupport,
	}
}

// Detector handles frontend detection from options and the environment.
type Detector struct {
	logger *log.Logger
	env    Environment
}

// New creates a new frontend detector.
func New(logger *log.Logger, env Environment) *Detector {
	return &Detector{
		logger: logger,
		env:    env,
	}
}

// Detect determines the frontend to use. An explicitly requested frontend
// is always used, otherwise unattended runs use the headless frontend and
// interactive runs prefer a window over the terminal.
func (d *Detector) Detect(opts options.Program, runnerOpts options.Runner) string {
	if opts.Frontend != "" {
		return opts.Frontend
	}

	frontend := d.detectFromEnvironment(opts, runnerOpts)
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend),
		log.String("file", opts.Input))
	return frontend
}

func (d *Detector) detectFromEnvironment(opts options.Program, runnerOpts options.Runner) string {
	switch {
	case opts.Batch != "":
		return options.FrontendHeadless
	case opts.Screenshot != "" && runnerOpts.MaxCycles > 0:
		return options.FrontendHeadless
	case d.hasDisplay():
		return options.FrontendWindow
	case d.env.IsTerminal != nil && d.env.IsTerminal():
		return options.FrontendTerminal
	default:
		return options.FrontendHeadless
	}
}

// hasDisplay returns whether a graphical desktop is available.
func (d *Detector) hasDisplay() bool {
	if !d.env.WindowSupport {
		return false
	}
	switch d.env.GOOS {
	case "darwin", "windows":
		return true
	}
	if d.env.Getenv == nil {
		return false
	}
	return d.env.Getenv("DISPLAY") != "" || d.env.Getenv("WAYLAND_DISPLAY") != ""
}
