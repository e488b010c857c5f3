package r1cs

import "github.com/arkzk/r1cs-core/field"

// Handle is the shared, interior-mutable reference circuits and gadgets
// pass around. The zero Handle is the "None" variant: every allocation
// through it fails with ErrMissingCS, and every query returns empty
// defaults. NoneHandle names that variant explicitly for readability at
// call sites that build constant-only subcomputations.
//
// Cloning a Handle (it is a plain value type wrapping a pointer) shares
// the underlying System; all mutating operations are routed through
// System.BorrowMut, which fails loudly on re-entrant mutation. The
// handle is not thread-safe — see System's doc comment and spec §5.
type Handle struct {
	sys *System
}

// NoneHandle returns the constant-only sentinel handle.
func NoneHandle() Handle { return Handle{} }

// NewHandle wraps sys in a Handle.
func NewHandle(sys *System) Handle { return Handle{sys: sys} }

// IsNone reports whether h is the None variant.
func (h Handle) IsNone() bool { return h.sys == nil }

// Factory returns the field.Factory backing h's System, or nil on the
// None handle.
func (h Handle) Factory() field.Factory {
	if h.sys == nil {
		return nil
	}
	return h.sys.Factory()
}

// Merge returns whichever of a, b is not None, preferring a. It panics
// if both are bound to different, non-nil Systems, since a gadget
// combining two live variables must have them share one arena. Use this
// when combining a constant (None-bound) operand with a live one.
func Merge(a, b Handle) Handle {
	if a.sys == nil {
		return b
	}
	if b.sys == nil {
		return a
	}
	if a.sys != b.sys {
		panic("r1cs: operands are bound to different constraint systems")
	}
	return a
}

// System returns the underlying *System, or ErrMissingCS if h is None.
func (h Handle) System() (*System, error) {
	if h.sys == nil {
		return nil, ErrMissingCS
	}
	return h.sys, nil
}

// NewInputVariable allocates a fresh public-input variable through h. On
// the None handle it fails with ErrMissingCS.
func (h Handle) NewInputVariable(f func() (field.Element, error)) (Variable, error) {
	if h.sys == nil {
		return Variable{}, ErrMissingCS
	}
	return h.sys.NewInputVariable(f)
}

// NewWitnessVariable allocates a fresh private-witness variable through
// h. On the None handle it fails with ErrMissingCS.
func (h Handle) NewWitnessVariable(f func() (field.Element, error)) (Variable, error) {
	if h.sys == nil {
		return Variable{}, ErrMissingCS
	}
	return h.sys.NewWitnessVariable(f)
}

// EnforceConstraint enforces a*b == c through h. On the None handle it
// fails with ErrMissingCS, since there is no arena to record it in.
func (h Handle) EnforceConstraint(a, b, c *LinearCombination) error {
	if h.sys == nil {
		return ErrMissingCS
	}
	return h.sys.EnforceConstraint(a, b, c)
}

// EnforceNamedConstraint is EnforceConstraint with an explicit local
// name.
func (h Handle) EnforceNamedConstraint(name string, a, b, c *LinearCombination) error {
	if h.sys == nil {
		return ErrMissingCS
	}
	return h.sys.EnforceNamedConstraint(name, a, b, c)
}

// NewLC registers lc through h and returns its SymbolicLC variable. On
// the None handle it returns the Zero variable without registering
// anything, matching the "queries return empty defaults" contract.
func (h Handle) NewLC(lc *LinearCombination) Variable {
	if h.sys == nil {
		return ZeroVar
	}
	return h.sys.NewLC(lc)
}

// AssignedValue resolves v's field value through h. On the None handle
// it fails with ErrMissingCS for every variable, One and Zero included.
func (h Handle) AssignedValue(v Variable) (field.Element, error) {
	if h.sys == nil {
		if v.IsOne() {
			return nil, ErrMissingCS
		}
		if v.IsZero() {
			return nil, ErrMissingCS
		}
		return nil, ErrMissingCS
	}
	return h.sys.AssignedValue(v)
}

// EvalLinearCombination evaluates lc under h's current assignment. On
// the None handle it fails with ErrMissingCS.
func (h Handle) EvalLinearCombination(lc *LinearCombination) (field.Element, error) {
	if h.sys == nil {
		return nil, ErrMissingCS
	}
	return h.sys.EvalLinearCombination(lc)
}

// LinearCombination returns a new, empty LinearCombination over h's
// field. It panics on the None handle, since there is no field to
// construct values in; constant-only gadgets should not need to build
// LCs in the first place.
func (h Handle) LinearCombination() *LinearCombination {
	if h.sys == nil {
		panic("r1cs: LinearCombination called on the None handle")
	}
	return NewLinearCombination(h.sys.Factory())
}
