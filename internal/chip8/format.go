package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// format returns the instruction with its formatted parameters.
func (o operation) format(in Instruction) string {
	name := o.mnemonic()
	if params := formatParams(o.ins, in); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the parameters of a CHIP-8 instruction.
func formatParams(ins *chip8.Instruction, in Instruction) string {
	switch ins {
	case chip8.Cls, chip8.Ret:
		return ""
	case chip8.Jp:
		if in.Family == 0xB {
			return fmt.Sprintf("V0, $%03X", in.NNN)
		}
		return fmt.Sprintf("$%03X", in.NNN)
	case chip8.Call:
		return fmt.Sprintf("$%03X", in.NNN)
	case chip8.Se, chip8.Sne:
		if in.Family == 0x3 || in.Family == 0x4 {
			return fmt.Sprintf("V%X, $%02X", in.X, in.NN)
		}
		return fmt.Sprintf("V%X, V%X", in.X, in.Y)
	case chip8.Ld:
		return formatLoadParams(in)
	case chip8.Add:
		return formatAddParams(in)
	case chip8.Or, chip8.And, chip8.Xor, chip8.Sub, chip8.Subn, chip8.Shr, chip8.Shl:
		return fmt.Sprintf("V%X, V%X", in.X, in.Y)
	case chip8.Rnd:
		return fmt.Sprintf("V%X, $%02X", in.X, in.NN)
	case chip8.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", in.X, in.Y, in.N)
	case chip8.Skp, chip8.Sknp:
		return fmt.Sprintf("V%X", in.X)
	}
	return ""
}

// formatLoadParams formats the many variants of the load instruction.
func formatLoadParams(in Instruction) string {
	switch in.Family {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", in.X, in.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", in.X, in.Y)
	case 0xA:
		return fmt.Sprintf("I, $%03X", in.NNN)
	case 0xF:
		switch in.NN {
		case 0x07:
			return fmt.Sprintf("V%X, DT", in.X)
		case 0x0A:
			return fmt.Sprintf("V%X, K", in.X)
		case 0x15:
			return fmt.Sprintf("DT, V%X", in.X)
		case 0x18:
			return fmt.Sprintf("ST, V%X", in.X)
		case 0x29:
			return fmt.Sprintf("F, V%X", in.X)
		case 0x33:
			return fmt.Sprintf("B, V%X", in.X)
		case 0x55:
			return fmt.Sprintf("[I], V%X", in.X)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", in.X)
		}
	}
	return ""
}

// formatAddParams formats the variants of the add instruction.
func formatAddParams(in Instruction) string {
	switch in.Family {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", in.X, in.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", in.X, in.Y)
	case 0xF:
		return fmt.Sprintf("I, V%X", in.X)
	}
	return ""
}
