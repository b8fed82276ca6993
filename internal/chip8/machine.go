// Package chip8 implements the CHIP-8 virtual machine.
//
// A Machine owns its complete state: registers, memory, program counter,
// call stack, timers, keypad and display. The driver calls Step to execute
// a single cycle and decides itself how often to do that; the machine has
// no notion of wall clock time.
package chip8

import (
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x04F: unused interpreter area
//	0x050-0x09F: font sprites, 16 glyphs of 5 bytes
//	0x0A0-0x1FF: unused interpreter area
//	0x200-0xFFF: program space
const (
	MemorySize     = 4096
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	FontStart      = 0x050
	FontGlyphSize  = 5

	RegisterCount = 16
	StackSize     = 16

	// opcodeSize is the size of CHIP-8 instructions in bytes.
	opcodeSize = 2

	flagRegister = 0xF
)

// State describes whether the machine executes instructions or waits for a key press.
type State int

const (
	// Running is the normal execution state.
	Running State = iota
	// AwaitingKey is entered by Fx0A while no key is pressed.
	AwaitingKey
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return "unknown"
	}
}

// fontset contains the standard 4x5 hexadecimal digit sprites 0-F.
var fontset = [16 * FontGlyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Font returns a copy of the font sprite table that is stored at FontStart.
func Font() [16 * FontGlyphSize]uint8 {
	return fontset
}

// Config contains the dependencies and interpretation options of a machine.
// The zero value is usable: a time seeded random generator, default quirks
// and no logging.
type Config struct {
	RNG    RNG
	Quirks Quirks
	Logger *log.Logger
	Trace  bool // log every executed instruction at debug level
}

// Machine is a single CHIP-8 virtual machine instance.
type Machine struct {
	registers  [RegisterCount]uint8
	memory     [MemorySize]uint8
	index      uint16
	pc         uint16
	stack      [StackSize]uint16
	sp         uint8
	delayTimer uint8
	soundTimer uint8
	keypad     Keypad
	display    Frame

	state       State
	waitingReg  uint8 // register that receives the key while awaiting one
	redraw      bool
	opcode      uint16 // last fetched opcode
	instruction uint16 // address of the last fetched opcode

	rng    RNG
	quirks Quirks
	logger *log.Logger
	trace  bool
}

// New returns a new machine with the font loaded and the program counter
// pointing to the program start.
func New(cfg Config) *Machine {
	m := &Machine{
		rng:    cfg.RNG,
		quirks: cfg.Quirks,
		logger: cfg.Logger,
		trace:  cfg.Trace && cfg.Logger != nil,
	}
	if m.rng == nil {
		m.rng = NewRandom(uint64(time.Now().UnixNano()))
	}
	m.Reset()
	return m
}

// Reset clears all machine state including the loaded program.
// The configuration of the machine is kept.
func (m *Machine) Reset() {
	m.registers = [RegisterCount]uint8{}
	m.memory = [MemorySize]uint8{}
	m.index = 0
	m.pc = ProgramStart
	m.stack = [StackSize]uint16{}
	m.sp = 0
	m.delayTimer = 0
	m.soundTimer = 0
	m.keypad = Keypad{}
	m.display = Frame{}
	m.state = Running
	m.waitingReg = 0
	m.redraw = true
	m.opcode = 0
	m.instruction = 0

	copy(m.memory[FontStart:], fontset[:])
}

// LoadProgram copies the program into memory at the program start address.
// Memory is left unchanged if the program does not fit.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.memory[ProgramStart:], program)
	return nil
}

// Step executes a single fetch, decode and execute cycle followed by the
// timer decrement. An illegal opcode also decrements the timers as the
// program counter already moved past it. The returned state tells whether the machine is blocked
// waiting for a key press.
func (m *Machine) Step() (State, error) {
	if m.state == AwaitingKey {
		m.pollKeypad()
		m.tickTimers()
		return m.state, nil
	}

	m.instruction = m.pc
	opcode, err := m.fetch()
	if err != nil {
		return m.state, &StepError{Address: m.instruction, Opcode: opcode, Err: err}
	}
	m.opcode = opcode

	ins := decodeInstruction(opcode)
	op, err := decode(ins)
	if err != nil {
		// the illegal opcode consumed a cycle, a caller may skip it and resume
		m.tickTimers()
		return m.state, &StepError{Address: m.instruction, Opcode: opcode, Err: err}
	}

	if m.trace {
		m.logger.Debug("Executing instruction",
			log.Hex("address", m.instruction),
			log.Hex("opcode", opcode),
			log.String("code", op.format(ins)))
	}

	if err := op.exec(m, ins); err != nil {
		return m.state, &StepError{Address: m.instruction, Opcode: opcode, Err: err}
	}
	if m.trace && op.conditional() && m.pc == m.instruction+2*opcodeSize {
		m.logger.Debug("Skipped instruction", log.Hex("address", m.instruction+opcodeSize))
	}

	m.tickTimers()
	return m.state, nil
}

// fetch reads the big endian opcode at the program counter and advances it.
func (m *Machine) fetch() (uint16, error) {
	if int(m.pc)+opcodeSize > MemorySize {
		return 0, outOfBounds(m.pc, opcodeSize)
	}
	opcode := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += opcodeSize
	return opcode, nil
}

func (m *Machine) tickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// Halted returns whether the instruction at the program counter is a jump
// to itself, the common way for CHIP-8 programs to end.
func (m *Machine) Halted() bool {
	if m.state != Running || int(m.pc)+opcodeSize > MemorySize {
		return false
	}
	opcode := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	return opcode&0xF000 == 0x1000 && opcode&0x0FFF == m.pc
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// SP returns the stack pointer, the number of active call frames.
func (m *Machine) SP() uint8 {
	return m.sp
}

// Register returns the value of register Vx, x is taken modulo 16.
func (m *Machine) Register(x uint8) uint8 {
	return m.registers[x&0xF]
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SoundActive returns whether the buzzer would currently sound.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}

// State returns the current execution state.
func (m *Machine) State() State {
	return m.state
}

// LastOpcode returns the most recently fetched opcode and its address.
func (m *Machine) LastOpcode() (address, opcode uint16) {
	return m.instruction, m.opcode
}

// ReadMemory returns a copy of length bytes of memory starting at address.
func (m *Machine) ReadMemory(address uint16, length int) ([]byte, error) {
	if err := checkRange(address, length); err != nil {
		return nil, err
	}
	data := make([]byte, length)
	copy(data, m.memory[address:])
	return data, nil
}

// checkRange verifies that length bytes starting at address are inside memory.
func checkRange(address uint16, length int) error {
	if length < 0 || int(address)+length > MemorySize {
		return outOfBounds(address, length)
	}
	return nil
}
