package r1cs

import "github.com/arkzk/r1cs-core/field"

// AllocationMode selects how a value becomes a Variable.
type AllocationMode int

const (
	// Constant embeds the value as a literal field constant; no variable
	// is allocated and the arena is not touched. AllocateElement does not
	// accept this mode: gadgets' Constant constructors build constants
	// directly.
	Constant AllocationMode = iota
	// Input allocates a fresh public-input variable and assigns it from
	// the value thunk.
	Input
	// Witness allocates a fresh private-witness variable and assigns it
	// from the value thunk.
	Witness
)

// AllocateElement allocates one field element under mode, through h.
// Constant mode panics: constants never become a Variable, and gadgets'
// Constant constructors embed them without calling this.
//
// Composite types (extension-field elements, curve points) allocate
// each coordinate in turn through the same handle, in the current
// namespace; no sub-namespace is opened for the coordinates.
func AllocateElement(h Handle, mode AllocationMode, thunk func() (field.Element, error)) (Variable, error) {
	switch mode {
	case Input:
		return h.NewInputVariable(thunk)
	case Witness:
		return h.NewWitnessVariable(thunk)
	default:
		panic("r1cs: AllocateElement called with Constant mode; constants do not allocate a Variable")
	}
}
