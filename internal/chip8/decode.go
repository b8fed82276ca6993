package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction contains the decoded fields of a 16 bit opcode.
type Instruction struct {
	Opcode uint16
	Family uint8  // high nibble, selects the opcode family
	X      uint8  // bits 8-11
	Y      uint8  // bits 4-7
	N      uint8  // bits 0-3
	NN     uint8  // bits 0-7
	NNN    uint16 // bits 0-11
}

// decodeInstruction extracts all operand fields of an opcode.
func decodeInstruction(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Family: uint8(opcode >> 12),
		X:      uint8(opcode>>8) & 0xF,
		Y:      uint8(opcode>>4) & 0xF,
		N:      uint8(opcode) & 0xF,
		NN:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}
}

// operation is a single entry of the decode table. An opcode matches the
// entry if opcode&mask == value.
type operation struct {
	mask  uint16
	value uint16
	ins   *chip8.Instruction
	exec  func(m *Machine, in Instruction) error
}

// mnemonic returns the instruction name of the operation.
func (o operation) mnemonic() string {
	if o.ins == nil {
		return ""
	}
	return o.ins.Name
}

// conditional returns whether the operation may skip the next instruction.
func (o operation) conditional() bool {
	return o.ins != nil && chip8.SkipInstructions.Contains(o.ins.Name)
}

// handler executes an instruction. The selector mask lists the opcode bits
// that have to match the table value exactly, it is combined with the mask
// of the instruction set table so that reserved sub-selectors stay illegal.
type handler struct {
	selector uint16
	exec     func(m *Machine, in Instruction) error
}

// handlers maps the opcode values of the CHIP-8 instruction set table to
// their implementation. Table entries without a handler, like extensions of
// later interpreters, decode as illegal instructions.
var handlers = map[uint16]handler{
	0x00E0: {0xFFFF, (*Machine).opCLS},
	0x00EE: {0xFFFF, (*Machine).opRET},
	0x1000: {0xF000, (*Machine).opJP},
	0x2000: {0xF000, (*Machine).opCALL},
	0x3000: {0xF000, (*Machine).opSEByte},
	0x4000: {0xF000, (*Machine).opSNEByte},
	0x5000: {0xF00F, (*Machine).opSERegister},
	0x6000: {0xF000, (*Machine).opLDByte},
	0x7000: {0xF000, (*Machine).opADDByte},
	0x8000: {0xF00F, (*Machine).opLDRegister},
	0x8001: {0xF00F, (*Machine).opOR},
	0x8002: {0xF00F, (*Machine).opAND},
	0x8003: {0xF00F, (*Machine).opXOR},
	0x8004: {0xF00F, (*Machine).opADDRegister},
	0x8005: {0xF00F, (*Machine).opSUB},
	0x8006: {0xF00F, (*Machine).opSHR},
	0x8007: {0xF00F, (*Machine).opSUBN},
	0x800E: {0xF00F, (*Machine).opSHL},
	0x9000: {0xF00F, (*Machine).opSNERegister},
	0xA000: {0xF000, (*Machine).opLDIndex},
	0xB000: {0xF000, (*Machine).opJPV0},
	0xC000: {0xF000, (*Machine).opRND},
	0xD000: {0xF000, (*Machine).opDRW},
	0xE09E: {0xF0FF, (*Machine).opSKP},
	0xE0A1: {0xF0FF, (*Machine).opSKNP},
	0xF007: {0xF0FF, (*Machine).opLDVxDT},
	0xF00A: {0xF0FF, (*Machine).opLDVxK},
	0xF015: {0xF0FF, (*Machine).opLDDTVx},
	0xF018: {0xF0FF, (*Machine).opLDSTVx},
	0xF01E: {0xF0FF, (*Machine).opADDIndex},
	0xF029: {0xF0FF, (*Machine).opLDFont},
	0xF033: {0xF0FF, (*Machine).opLDBCD},
	0xF055: {0xF0FF, (*Machine).opLDStore},
	0xF065: {0xF0FF, (*Machine).opLDLoad},
}

// operations is the decode table indexed by opcode family.
var operations = buildOperations()

// buildOperations creates the decode table from the CHIP-8 instruction set
// table, keeping only the entries that have a handler.
func buildOperations() [16][]operation {
	var table [16][]operation
	for family := range 16 {
		for _, op := range chip8.Opcodes[family] {
			h, ok := handlers[op.Info.Value]
			if !ok {
				continue
			}
			table[family] = append(table[family], operation{
				mask:  op.Info.Mask | h.selector,
				value: op.Info.Value,
				ins:   op.Instruction,
				exec:  h.exec,
			})
		}
	}
	return table
}

// decode looks up the operation for an instruction in the decode table.
func decode(in Instruction) (operation, error) {
	for _, op := range operations[in.Family] {
		if in.Opcode&op.mask == op.value {
			return op, nil
		}
	}
	return operation{}, fmt.Errorf("%w: %04X", ErrIllegalInstruction, in.Opcode)
}

// FormatOpcode returns the assembly representation of an opcode, for
// example "drw V0, V1, $5". Illegal opcodes return an error.
func FormatOpcode(opcode uint16) (string, error) {
	in := decodeInstruction(opcode)
	op, err := decode(in)
	if err != nil {
		return "", err
	}
	return op.format(in), nil
}
