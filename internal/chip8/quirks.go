package chip8

// IndexPolicy defines how the index register behaves when Fx1E moves it
// beyond the 12 bit address space.
type IndexPolicy int

const (
	// IndexWrap masks the index register to 12 bits.
	IndexWrap IndexPolicy = iota
	// IndexStrict reports an out of bounds error.
	IndexStrict
)

func (p IndexPolicy) String() string {
	switch p {
	case IndexWrap:
		return "wrap"
	case IndexStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Quirks selects between documented behavior differences of historical
// CHIP-8 interpreters.
type Quirks struct {
	// ShiftUsesVX shifts Vx in place for 8xy6 and 8xyE. When false, Vy is
	// shifted and the result stored in Vx like the COSMAC VIP interpreter does.
	ShiftUsesVX bool

	// LoadStoreIncrementsIndex advances I by x+1 after Fx55 and Fx65 like
	// the COSMAC VIP interpreter does.
	LoadStoreIncrementsIndex bool

	// IndexPolicy defines the overflow behavior of Fx1E.
	IndexPolicy IndexPolicy
}
