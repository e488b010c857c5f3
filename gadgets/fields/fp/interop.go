package fp

import (
	"github.com/arkzk/r1cs-core/r1cs"
)

// FromVariable wraps an already-allocated r1cs.Variable as a Var, for
// gadgets (like lookup tables) that hand back a raw Variable rather
// than a Var.
func FromVariable(h r1cs.Handle, v r1cs.Variable) Var {
	lc := h.LinearCombination()
	lc.Add(h.Factory().One(), v)
	return fromLC(h, lc)
}

// booleanLike is the minimal capability FromBoolean needs from a
// gadgets/bits.Boolean, expressed locally to avoid importing
// gadgets/bits (which must not depend back on fp).
type booleanLike interface {
	LC(h r1cs.Handle) *r1cs.LinearCombination
}

// FromBoolean lifts a {0,1}-valued boolean gadget into a Var over the
// same handle, reusing its existing linear combination with no new
// constraint.
func FromBoolean(h r1cs.Handle, b booleanLike) Var {
	return fromLC(h, b.LC(h))
}
