package chip8

import "fmt"

// All operations are called after the fetch advanced the program counter
// past the executed instruction.

// 00E0 - clear the display.
func (m *Machine) opCLS(_ Instruction) error {
	m.display.clear()
	m.redraw = true
	return nil
}

// 00EE - return from a subroutine.
func (m *Machine) opRET(_ Instruction) error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// 1nnn - jump to address nnn.
func (m *Machine) opJP(in Instruction) error {
	m.pc = in.NNN
	return nil
}

// 2nnn - call the subroutine at address nnn.
func (m *Machine) opCALL(in Instruction) error {
	if int(m.sp) == StackSize {
		return fmt.Errorf("%w: %d nested calls", ErrStackOverflow, StackSize)
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = in.NNN
	return nil
}

// skipIf skips the next instruction if the condition is met.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

// 3xnn - skip if Vx == nn.
func (m *Machine) opSEByte(in Instruction) error {
	m.skipIf(m.registers[in.X] == in.NN)
	return nil
}

// 4xnn - skip if Vx != nn.
func (m *Machine) opSNEByte(in Instruction) error {
	m.skipIf(m.registers[in.X] != in.NN)
	return nil
}

// 5xy0 - skip if Vx == Vy.
func (m *Machine) opSERegister(in Instruction) error {
	m.skipIf(m.registers[in.X] == m.registers[in.Y])
	return nil
}

// 9xy0 - skip if Vx != Vy.
func (m *Machine) opSNERegister(in Instruction) error {
	m.skipIf(m.registers[in.X] != m.registers[in.Y])
	return nil
}

// 6xnn - Vx = nn.
func (m *Machine) opLDByte(in Instruction) error {
	m.registers[in.X] = in.NN
	return nil
}

// 7xnn - Vx += nn without changing the carry flag.
func (m *Machine) opADDByte(in Instruction) error {
	m.registers[in.X] += in.NN
	return nil
}

// 8xy0 - Vx = Vy.
func (m *Machine) opLDRegister(in Instruction) error {
	m.registers[in.X] = m.registers[in.Y]
	return nil
}

// 8xy1 - Vx |= Vy.
func (m *Machine) opOR(in Instruction) error {
	m.registers[in.X] |= m.registers[in.Y]
	return nil
}

// 8xy2 - Vx &= Vy.
func (m *Machine) opAND(in Instruction) error {
	m.registers[in.X] &= m.registers[in.Y]
	return nil
}

// 8xy3 - Vx ^= Vy.
func (m *Machine) opXOR(in Instruction) error {
	m.registers[in.X] ^= m.registers[in.Y]
	return nil
}

// 8xy4 - Vx += Vy, VF is the carry. The flag is written after the result.
func (m *Machine) opADDRegister(in Instruction) error {
	sum := uint16(m.registers[in.X]) + uint16(m.registers[in.Y])
	m.registers[in.X] = uint8(sum)
	m.registers[flagRegister] = boolToFlag(sum > 0xFF)
	return nil
}

// 8xy5 - Vx -= Vy, VF is 1 if Vx > Vy. The result is written after the flag.
func (m *Machine) opSUB(in Instruction) error {
	vx, vy := m.registers[in.X], m.registers[in.Y]
	m.registers[flagRegister] = boolToFlag(vx > vy)
	m.registers[in.X] = vx - vy
	return nil
}

// 8xy7 - Vx = Vy - Vx, VF is 1 if Vy > Vx. The result is written after the flag.
func (m *Machine) opSUBN(in Instruction) error {
	vx, vy := m.registers[in.X], m.registers[in.Y]
	m.registers[flagRegister] = boolToFlag(vy > vx)
	m.registers[in.X] = vy - vx
	return nil
}

// 8xy6 - shift right, VF is the bit shifted out.
func (m *Machine) opSHR(in Instruction) error {
	source := m.shiftSource(in)
	m.registers[flagRegister] = source & 0x01
	m.registers[in.X] = source >> 1
	return nil
}

// 8xyE - shift left, VF is the bit shifted out.
func (m *Machine) opSHL(in Instruction) error {
	source := m.shiftSource(in)
	m.registers[flagRegister] = source >> 7
	m.registers[in.X] = source << 1
	return nil
}

// shiftSource returns the register value that 8xy6 and 8xyE shift.
func (m *Machine) shiftSource(in Instruction) uint8 {
	if m.quirks.ShiftUsesVX {
		return m.registers[in.X]
	}
	return m.registers[in.Y]
}

// Annn - I = nnn.
func (m *Machine) opLDIndex(in Instruction) error {
	m.index = in.NNN
	return nil
}

// Bnnn - jump to V0 + nnn.
func (m *Machine) opJPV0(in Instruction) error {
	m.pc = uint16(m.registers[0]) + in.NNN
	return nil
}

// Cxnn - Vx = random byte & nn.
func (m *Machine) opRND(in Instruction) error {
	m.registers[in.X] = m.rng.Byte() & in.NN
	return nil
}

// Dxyn - draw an n byte sprite from memory at I to (Vx, Vy), VF is the collision flag.
func (m *Machine) opDRW(in Instruction) error {
	if err := checkRange(m.index, int(in.N)); err != nil {
		return err
	}
	sprite := m.memory[m.index : int(m.index)+int(in.N)]
	collision := m.display.drawSprite(m.registers[in.X], m.registers[in.Y], sprite)
	m.registers[flagRegister] = boolToFlag(collision)
	m.redraw = true
	return nil
}

// Ex9E - skip if the key in Vx is pressed.
func (m *Machine) opSKP(in Instruction) error {
	m.skipIf(m.keypad.pressed(m.registers[in.X]))
	return nil
}

// ExA1 - skip if the key in Vx is not pressed.
func (m *Machine) opSKNP(in Instruction) error {
	m.skipIf(!m.keypad.pressed(m.registers[in.X]))
	return nil
}

// Fx07 - Vx = delay timer.
func (m *Machine) opLDVxDT(in Instruction) error {
	m.registers[in.X] = m.delayTimer
	return nil
}

// Fx0A - wait for a key press and store the key in Vx. While no key is
// pressed the machine stays on this instruction in the AwaitingKey state.
func (m *Machine) opLDVxK(in Instruction) error {
	if key, ok := m.keypad.lowestPressed(); ok {
		m.registers[in.X] = key
		return nil
	}
	m.pc -= opcodeSize
	m.state = AwaitingKey
	m.waitingReg = in.X
	return nil
}

// pollKeypad completes a pending Fx0A once a key is pressed.
func (m *Machine) pollKeypad() {
	key, ok := m.keypad.lowestPressed()
	if !ok {
		return
	}
	m.registers[m.waitingReg] = key
	m.pc += opcodeSize
	m.state = Running
}

// Fx15 - delay timer = Vx.
func (m *Machine) opLDDTVx(in Instruction) error {
	m.delayTimer = m.registers[in.X]
	return nil
}

// Fx18 - sound timer = Vx.
func (m *Machine) opLDSTVx(in Instruction) error {
	m.soundTimer = m.registers[in.X]
	return nil
}

// Fx1E - I += Vx without changing VF.
func (m *Machine) opADDIndex(in Instruction) error {
	return m.setIndex(uint32(m.index) + uint32(m.registers[in.X]))
}

// Fx29 - I = address of the font glyph for the value of Vx.
func (m *Machine) opLDFont(in Instruction) error {
	m.index = FontStart + uint16(m.registers[in.X])*FontGlyphSize
	return nil
}

// Fx33 - store the decimal digits of Vx at I, I+1 and I+2.
func (m *Machine) opLDBCD(in Instruction) error {
	if err := checkRange(m.index, 3); err != nil {
		return err
	}
	value := m.registers[in.X]
	m.memory[m.index] = value / 100
	m.memory[m.index+1] = value / 10 % 10
	m.memory[m.index+2] = value % 10
	return nil
}

// Fx55 - store V0 to Vx inclusive in memory starting at I.
func (m *Machine) opLDStore(in Instruction) error {
	count := int(in.X) + 1
	if err := checkRange(m.index, count); err != nil {
		return err
	}
	copy(m.memory[m.index:], m.registers[:count])
	return m.advanceIndex(count)
}

// Fx65 - load V0 to Vx inclusive from memory starting at I.
func (m *Machine) opLDLoad(in Instruction) error {
	count := int(in.X) + 1
	if err := checkRange(m.index, count); err != nil {
		return err
	}
	copy(m.registers[:count], m.memory[m.index:])
	return m.advanceIndex(count)
}

func (m *Machine) advanceIndex(count int) error {
	if !m.quirks.LoadStoreIncrementsIndex {
		return nil
	}
	return m.setIndex(uint32(m.index) + uint32(count))
}

// setIndex applies the index overflow policy to a new index value.
func (m *Machine) setIndex(value uint32) error {
	if value < MemorySize {
		m.index = uint16(value)
		return nil
	}
	if m.quirks.IndexPolicy == IndexStrict {
		return fmt.Errorf("%w: index register %04X exceeds address space", ErrOutOfBounds, value)
	}
	m.index = uint16(value) & (MemorySize - 1)
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
