package chip8

import "math/rand/v2"

// RNG produces uniformly distributed random bytes for the Cxnn instruction.
type RNG interface {
	Byte() uint8
}

// Random is a seeded pseudo random generator.
type Random struct {
	rnd *rand.Rand
}

// NewRandom returns a pseudo random generator, the same seed always
// produces the same sequence.
func NewRandom(seed uint64) *Random {
	return &Random{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Byte returns the next random byte.
func (r *Random) Byte() uint8 {
	return uint8(r.rnd.UintN(256))
}

// Sequence returns a fixed list of values and restarts at the beginning
// once all values were returned.
type Sequence struct {
	values []uint8
	pos    int
}

// NewSequence returns a generator that replays the given values.
// Without values it always returns 0.
func NewSequence(values ...uint8) *Sequence {
	return &Sequence{values: values}
}

// Byte returns the next value of the sequence.
func (s *Sequence) Byte() uint8 {
	if len(s.values) == 0 {
		return 0
	}
	b := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return b
}
