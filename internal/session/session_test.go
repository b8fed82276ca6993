package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawProgram draws the font glyph 0 at the top left and halts.
var drawProgram = []byte{0xA0, 0x50, 0xD0, 0x05, 0x12, 0x04}

func headlessEnvironment() detector.Environment {
	return detector.Environment{
		Getenv:     func(string) string { return "" },
		IsTerminal: func() bool { return false },
		GOOS:       "linux",
	}
}

func TestExecuteWithFrontend(t *testing.T) {
	logger := log.NewTestLogger(t)
	s := New(logger, headlessEnvironment())
	display := headless.New()

	opts := options.Program{Flags: options.Flags{Quiet: true}}
	runnerOpts := options.Runner{Scale: 1, StopOnHalt: true}

	result, err := s.ExecuteWithFrontend(context.Background(), drawProgram, display, opts, options.Machine{}, runnerOpts)
	assert.NoError(t, err)
	assert.Equal(t, runner.Halted, result.Reason)
	assert.Equal(t, 14, result.Frame.Lit())
	assert.Equal(t, 14, display.Frame().Lit())
}

func TestExecuteWritesScreenshot(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "draw.ch8")
	assert.NoError(t, os.WriteFile(input, drawProgram, 0600))

	s := New(log.NewTestLogger(t), headlessEnvironment())
	opts := options.Program{
		Parameters: options.Parameters{
			Input:      input,
			Screenshot: GenerateOutputFilename(input),
		},
	}
	runnerOpts := options.Runner{MaxCycles: 10, Scale: 2}

	result, err := s.Execute(context.Background(), opts, options.Machine{}, runnerOpts)
	assert.NoError(t, err)
	assert.Equal(t, runner.CycleLimit, result.Reason)

	info, err := os.Stat(filepath.Join(tmpDir, "draw.png"))
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestExecuteMissingROM(t *testing.T) {
	s := New(log.NewTestLogger(t), headlessEnvironment())
	opts := options.Program{Parameters: options.Parameters{Input: "/nonexistent/game.ch8"}}

	_, err := s.Execute(context.Background(), opts, options.Machine{}, options.NewRunner())
	assert.Error(t, err)
	assert.ErrorContains(t, err, "loading ROM")
}

func TestExecuteRunnerError(t *testing.T) {
	s := New(log.NewTestLogger(t), headlessEnvironment())
	opts := options.Program{Flags: options.Flags{Quiet: true}}

	_, err := s.ExecuteWithFrontend(context.Background(), []byte{0x00, 0xEE}, headless.New(),
		opts, options.Machine{}, options.Runner{Scale: 1})
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
}

func TestExecuteCancelled(t *testing.T) {
	s := New(log.NewTestLogger(t), headlessEnvironment())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{Flags: options.Flags{Quiet: true}}
	_, err := s.ExecuteWithFrontend(ctx, []byte{0x12, 0x00}, headless.New(),
		opts, options.Machine{}, options.Runner{Scale: 1})
	assert.True(t, errors.Is(err, context.Canceled))
}

// closingFrontend simulates a user closing the frontend right away.
type closingFrontend struct {
	*headless.Headless
}

func (c closingFrontend) Run(context.Context) error {
	return frontend.ErrClosed
}

func TestExecuteFrontendClosed(t *testing.T) {
	s := New(log.NewTestLogger(t), headlessEnvironment())
	opts := options.Program{Flags: options.Flags{Quiet: true}}

	result, err := s.ExecuteWithFrontend(context.Background(), []byte{0x12, 0x00}, closingFrontend{headless.New()},
		opts, options.Machine{}, options.Runner{Scale: 1})
	assert.NoError(t, err)
	assert.Equal(t, runner.Cancelled, result.Reason)
}

// goroutineID returns the id of the calling goroutine as printed in its
// stack trace header "goroutine N [running]:".
func goroutineID(t *testing.T) uint64 {
	t.Helper()
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	buf = buf[:bytes.IndexByte(buf, ' ')]
	id, err := strconv.ParseUint(string(buf), 10, 64)
	assert.NoError(t, err)
	return id
}

// goroutineFrontend records the goroutine that its event loop runs on.
type goroutineFrontend struct {
	*headless.Headless

	t  *testing.T
	id uint64
}

func (g *goroutineFrontend) Run(ctx context.Context) error {
	g.id = goroutineID(g.t)
	return g.Headless.Run(ctx)
}

func TestExecuteFrontendOnCallingGoroutine(t *testing.T) {
	s := New(log.NewTestLogger(t), headlessEnvironment())
	opts := options.Program{Flags: options.Flags{Quiet: true}}
	fe := &goroutineFrontend{Headless: headless.New(), t: t}

	result, err := s.ExecuteWithFrontend(context.Background(), drawProgram, fe,
		opts, options.Machine{}, options.Runner{Scale: 1, StopOnHalt: true})
	assert.NoError(t, err)
	assert.Equal(t, runner.Halted, result.Reason)
	assert.Equal(t, goroutineID(t), fe.id)
}

func TestGetFilesToProcess(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), drawProgram, 0600))
	}

	opts := options.Program{Parameters: options.Parameters{Batch: filepath.Join(tmpDir, "*.ch8")}}
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "a.ch8"), filepath.Join(tmpDir, "b.ch8")}, files)

	opts = options.Program{Parameters: options.Parameters{Input: "pong.ch8"}}
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pong.ch8"}, files)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "roms/pong.png", GenerateOutputFilename("roms/pong.ch8"))
	assert.Equal(t, "maze.png", GenerateOutputFilename("maze"))
}
