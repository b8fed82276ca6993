package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeInstruction(t *testing.T) {
	in := decodeInstruction(0xD1A5)
	assert.Equal(t, uint8(0xD), in.Family)
	assert.Equal(t, uint8(0x1), in.X)
	assert.Equal(t, uint8(0xA), in.Y)
	assert.Equal(t, uint8(0x5), in.N)
	assert.Equal(t, uint8(0xA5), in.NN)
	assert.Equal(t, uint16(0x1A5), in.NNN)
}

func TestDecodeTableFamilies(t *testing.T) {
	for family, ops := range operations {
		assert.NotEmpty(t, ops)
		for _, op := range ops {
			assert.Equal(t, uint16(family), op.value>>12)
			assert.Equal(t, op.value, op.value&op.mask)
			assert.NotNil(t, op.ins)
			assert.NotNil(t, op.exec)
		}
	}
}

// TestDecodeHandlersReachable verifies that every handler is bound to an
// entry of the instruction set table and decodes with its own value.
func TestDecodeHandlersReachable(t *testing.T) {
	bound := 0
	for _, ops := range operations {
		bound += len(ops)
	}
	assert.Equal(t, len(handlers), bound)

	for value := range handlers {
		op, err := decode(decodeInstruction(value))
		assert.NoError(t, err)
		assert.Equal(t, value, op.value)
		assert.NotEmpty(t, op.mnemonic())
	}
}

// TestDecodeUnambiguous verifies that every opcode matches at most one
// table entry.
func TestDecodeUnambiguous(t *testing.T) {
	for opcode := range 0x10000 {
		in := decodeInstruction(uint16(opcode))
		matches := 0
		for _, op := range operations[in.Family] {
			if in.Opcode&op.mask == op.value {
				matches++
			}
		}
		if matches > 1 {
			t.Fatalf("opcode %04X matches %d operations", opcode, matches)
		}
	}
}

func TestDecodeIllegal(t *testing.T) {
	for _, opcode := range []uint16{0x0000, 0x0123, 0x00E1, 0x5001, 0x8008, 0x800F, 0x9001, 0xE000, 0xF000, 0xF0FF} {
		_, err := decode(decodeInstruction(opcode))
		assert.True(t, errors.Is(err, ErrIllegalInstruction))
	}
}

func TestFormatOpcode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x1ABC, "jp $ABC"},
		{0xB300, "jp V0, $300"},
		{0x2206, "call $206"},
		{0x3A12, "se VA, $12"},
		{0x4B34, "sne VB, $34"},
		{0x5120, "se V1, V2"},
		{0x9120, "sne V1, V2"},
		{0x6F0A, "ld VF, $0A"},
		{0x7005, "add V0, $05"},
		{0x8120, "ld V1, V2"},
		{0x8121, "or V1, V2"},
		{0x8124, "add V1, V2"},
		{0x8127, "subn V1, V2"},
		{0x812E, "shl V1, V2"},
		{0xA234, "ld I, $234"},
		{0xC3FF, "rnd V3, $FF"},
		{0xD015, "drw V0, V1, $5"},
		{0xE49E, "skp V4"},
		{0xE5A1, "sknp V5"},
		{0xF607, "ld V6, DT"},
		{0xF70A, "ld V7, K"},
		{0xF815, "ld DT, V8"},
		{0xF918, "ld ST, V9"},
		{0xFA1E, "add I, VA"},
		{0xFB29, "ld F, VB"},
		{0xFC33, "ld B, VC"},
		{0xFD55, "ld [I], VD"},
		{0xFE65, "ld VE, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			s, err := FormatOpcode(tt.opcode)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}

	_, err := FormatOpcode(0xFFFF)
	assert.True(t, errors.Is(err, ErrIllegalInstruction))
}
