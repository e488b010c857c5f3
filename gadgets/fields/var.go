// Package fields declares the field-variable capability interface
// required by spec §4.5/§9: a gadget representing an element of some
// field K over a constraint field F, built from R1CS primitives. fp.Var
// implements Var; the extension types (fp2.Var, fp3.Var, fp4.Var) have
// Handle and IsConstantVar and expose their coordinates through typed
// accessors, but have no Value method and so do not implement it.
package fields

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/r1cs"
)

// Boolean is the minimal capability this package needs from the bits
// gadget package, kept here to avoid an import cycle (gadgets/bits does
// not need to know about field extensions, but extension equality
// gadgets need to produce/consume booleans).
type Boolean interface {
	Value() (bool, error)
}

// Var is the capability interface every field-variable gadget
// implements. Methods that "introduce no new constraints" are pure
// linear-combination algebra; methods documented as introducing
// constraints allocate a witness and call MulEquals exactly as spec
// §4.5 describes.
type Var interface {
	// Handle returns the arena this variable is bound to. A constant
	// Var (no witnesses/inputs involved) may return the None handle.
	Handle() r1cs.Handle

	// Value recovers the assigned value, or ErrAssignmentMissing-wrapped
	// error in Setup mode or if an input is missing.
	Value() (field.Element, error)

	// IsConstantVar reports whether this Var was built via a Constant
	// constructor (no arena entries at all).
	IsConstantVar() bool
}
