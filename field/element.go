// Package field declares the capability interface this core requires of
// its finite-field collaborator. Per spec, the concrete field/curve
// arithmetic library is out of scope — this package only fixes the
// contract the synthesis core and gadget layer are written against.
package field

import "math/big"

// Element is one value of some finite field F. Implementations are
// expected to be small value types (or pointers to them) supplied by an
// external arithmetic library; this core never constructs field
// arithmetic itself, it only calls through this interface.
type Element interface {
	// IsZero and IsOne report whether the receiver is the additive or
	// multiplicative identity.
	IsZero() bool
	IsOne() bool

	// Add, Sub, Mul, Neg return freshly allocated results; receivers are
	// never mutated by these methods from the caller's point of view.
	Add(other Element) Element
	Sub(other Element) Element
	Mul(other Element) Element
	Neg() Element
	Square() Element

	// Inverse returns (1/x, true), or (undefined, false) if the receiver
	// is zero. Implementations must not panic on zero input.
	Inverse() (Element, bool)

	// Equal reports field equality, not representation equality.
	Equal(other Element) bool

	// BigInt returns the canonical representative in [0, modulus).
	BigInt() *big.Int

	// String renders a short debug form; used only in error messages and
	// logging, never on the constraint-satisfaction hot path.
	String() string
}

// Factory produces field elements for one fixed field F: a zero value,
// a one value, and a value built from a big.Int and/or int64. The gadget
// layer is parameterised over a Factory rather than over a concrete
// element type, so it never needs to know how to construct an Element
// from scratch.
type Factory interface {
	Zero() Element
	One() Element
	FromBigInt(v *big.Int) Element
	FromInt64(v int64) Element
	// Modulus returns the field's characteristic.
	Modulus() *big.Int
}
