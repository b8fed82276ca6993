package detector

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testEnvironment(goos string, vars map[string]string, terminal, windowSupport bool) Environment {
	return Environment{
		Getenv:        func(key string) string { return vars[key] },
		IsTerminal:    func() bool { return terminal },
		GOOS:          goos,
		WindowSupport: windowSupport,
	}
}

//nolint:funlen // table driven test
func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	x11 := map[string]string{"DISPLAY": ":0"}
	wayland := map[string]string{"WAYLAND_DISPLAY": "wayland-0"}

	tests := []struct {
		name         string
		env          Environment
		opts         options.Program
		runnerOpts   options.Runner
		wantFrontend string
	}{
		{
			name:         "explicit frontend option",
			env:          testEnvironment("linux", x11, true, true),
			opts:         options.Program{Flags: options.Flags{Frontend: options.FrontendTerminal}},
			wantFrontend: options.FrontendTerminal,
		},
		{
			name:         "batch mode",
			env:          testEnvironment("linux", x11, true, true),
			opts:         options.Program{Parameters: options.Parameters{Batch: "*.ch8"}},
			wantFrontend: options.FrontendHeadless,
		},
		{
			name:         "screenshot with cycle limit",
			env:          testEnvironment("linux", x11, true, true),
			opts:         options.Program{Parameters: options.Parameters{Screenshot: "out.png"}},
			runnerOpts:   options.Runner{MaxCycles: 100},
			wantFrontend: options.FrontendHeadless,
		},
		{
			name:         "screenshot without cycle limit",
			env:          testEnvironment("linux", x11, true, true),
			opts:         options.Program{Parameters: options.Parameters{Screenshot: "out.png"}},
			wantFrontend: options.FrontendWindow,
		},
		{
			name:         "x11 display",
			env:          testEnvironment("linux", x11, false, true),
			wantFrontend: options.FrontendWindow,
		},
		{
			name:         "wayland display",
			env:          testEnvironment("linux", wayland, false, true),
			wantFrontend: options.FrontendWindow,
		},
		{
			name:         "macos",
			env:          testEnvironment("darwin", nil, true, true),
			wantFrontend: options.FrontendWindow,
		},
		{
			name:         "headless build with display",
			env:          testEnvironment("linux", x11, true, false),
			wantFrontend: options.FrontendTerminal,
		},
		{
			name:         "terminal without display",
			env:          testEnvironment("linux", nil, true, true),
			wantFrontend: options.FrontendTerminal,
		},
		{
			name:         "no display and no terminal",
			env:          testEnvironment("linux", nil, false, true),
			wantFrontend: options.FrontendHeadless,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(logger, tt.env)
			got := d.Detect(tt.opts, tt.runnerOpts)
			assert.Equal(t, tt.wantFrontend, got)
		})
	}
}
