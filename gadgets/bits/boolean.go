// Package bits implements the support gadgets of spec §4.7: Boolean (a
// witness bit known to be 0/1, its negation, or a constant) and UInt8
// (eight packed Booleans), plus the lookup gadgets of spec §4.5
// (two_bit_lookup, three_bit_cond_neg_lookup) used by the twisted-Edwards
// windowed scalar multiplication in gadgets/twistededwards.
//
// This is adapted directly from the teacher's
// std/math/uints/uint8.go — the table-driven byte-operation style and
// hint-based decomposition survive, rewritten against this repo's
// r1cs.Handle instead of gnark's frontend.API.
package bits

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/r1cs"
)

// kind tags how a Boolean was produced.
type kind uint8

const (
	kindConstant kind = iota
	kindIs
	kindNot
)

// Boolean is the sum type of spec §4.7: a compile-time-known constant, a
// witness bit known to be 0/1 ("Is"), or the logical negation of one
// ("Not" — represented without an extra constraint, as 1 - b).
type Boolean struct {
	h       r1cs.Handle
	k       kind
	constv  bool
	witness r1cs.Variable // valid when k == kindIs or kindNot
}

// NewConstant returns a Boolean with no arena entry.
func NewConstant(v bool) Boolean { return Boolean{k: kindConstant, constv: v} }

// NewWitness allocates a fresh witness bit through h and enforces
// booleanness (b*(1-b) == 0), the one constraint every witness Boolean
// costs.
func NewWitness(h r1cs.Handle, value func() (bool, error)) (Boolean, error) {
	f := h.Factory()
	v, err := h.NewWitnessVariable(func() (field.Element, error) {
		b, err := value()
		if err != nil {
			return nil, err
		}
		if b {
			return f.One(), nil
		}
		return f.Zero(), nil
	})
	if err != nil {
		return Boolean{}, err
	}
	one := h.LinearCombination()
	one.Add(f.One(), r1cs.One)
	bLC := h.LinearCombination()
	bLC.Add(f.One(), v)
	notB := h.LinearCombination()
	notB.Add(f.One(), r1cs.One)
	notB.Add(f.FromInt64(-1), v)
	zero := h.LinearCombination()
	if err := h.EnforceConstraint(bLC, notB, zero); err != nil {
		return Boolean{}, err
	}
	return Boolean{h: h, k: kindIs, witness: v}, nil
}

// Value reports the Boolean's current assignment.
func (b Boolean) Value() (bool, error) {
	switch b.k {
	case kindConstant:
		return b.constv, nil
	case kindIs, kindNot:
		val, err := b.h.AssignedValue(b.witness)
		if err != nil {
			return false, err
		}
		v := !val.IsZero()
		if b.k == kindNot {
			v = !v
		}
		return v, nil
	default:
		return false, r1cs.ErrUnsatisfiable
	}
}

// Not returns the logical negation, without allocating a new witness.
func (b Boolean) Not() Boolean {
	switch b.k {
	case kindConstant:
		return NewConstant(!b.constv)
	case kindIs:
		return Boolean{h: b.h, k: kindNot, witness: b.witness}
	case kindNot:
		return Boolean{h: b.h, k: kindIs, witness: b.witness}
	default:
		return b
	}
}

// lc returns the {0,1}-valued linear combination this Boolean denotes.
func (b Boolean) lc(h r1cs.Handle) *r1cs.LinearCombination {
	f := h.Factory()
	out := h.LinearCombination()
	switch b.k {
	case kindConstant:
		if b.constv {
			out.Add(f.One(), r1cs.One)
		}
	case kindIs:
		out.Add(f.One(), b.witness)
	case kindNot:
		out.Add(f.One(), r1cs.One)
		out.Add(f.FromInt64(-1), b.witness)
	}
	return out
}

func resolveHandle(a, b Boolean) r1cs.Handle { return r1cs.Merge(a.h, b.h) }

// And returns a&&b, with one multiplication constraint unless either
// operand is constant (in which case the result folds without a new
// constraint).
func And(a, b Boolean) (Boolean, error) {
	if a.k == kindConstant {
		if !a.constv {
			return NewConstant(false), nil
		}
		return b, nil
	}
	if b.k == kindConstant {
		return And(b, a)
	}
	h := resolveHandle(a, b)
	f := h.Factory()
	av, err := a.Value()
	if err != nil {
		return Boolean{}, err
	}
	bv, err := b.Value()
	if err != nil {
		return Boolean{}, err
	}
	w, err := h.NewWitnessVariable(func() (field.Element, error) {
		if av && bv {
			return f.One(), nil
		}
		return f.Zero(), nil
	})
	if err != nil {
		return Boolean{}, err
	}
	out := Boolean{h: h, k: kindIs, witness: w}
	if err := h.EnforceConstraint(a.lc(h), b.lc(h), out.lc(h)); err != nil {
		return Boolean{}, err
	}
	return out, nil
}

// Or returns a||b via De Morgan (no extra witness beyond And's one
// constraint): a||b = !(!a && !b).
func Or(a, b Boolean) (Boolean, error) {
	r, err := And(a.Not(), b.Not())
	if err != nil {
		return Boolean{}, err
	}
	return r.Not(), nil
}

// Xor returns a XOR b as pure linear combination a+b-2ab, reusing And's
// one multiplication constraint; the final linear combine introduces no
// further constraints.
func Xor(a, b Boolean) (Boolean, error) {
	h := resolveHandle(a, b)
	f := h.Factory()
	prod, err := And(a, b)
	if err != nil {
		return Boolean{}, err
	}
	if _, err := h.System(); err != nil {
		return Boolean{}, err
	}
	lhs := a.lc(h).Clone().Concat(b.lc(h))
	rhsProd := prod.lc(h).Scale(f.FromInt64(-2))
	lhs.Concat(rhsProd).Compactify()
	return Boolean{h: h, k: kindIs, witness: h.NewLC(lhs)}, nil
}

// Select returns a if cond else b. One multiplication constraint:
// w = cond*(a-b) + b, unless cond is constant.
func Select(cond Boolean, a, b Boolean) (Boolean, error) {
	if cond.k == kindConstant {
		if cond.constv {
			return a, nil
		}
		return b, nil
	}
	h := r1cs.Merge(resolveHandle(a, b), cond.h)
	f := h.Factory()
	cv, _ := cond.Value()
	av, _ := a.Value()
	bv, _ := b.Value()
	w, err := h.NewWitnessVariable(func() (field.Element, error) {
		if (cv && av) || (!cv && bv) {
			return f.One(), nil
		}
		return f.Zero(), nil
	})
	if err != nil {
		return Boolean{}, err
	}
	out := Boolean{h: h, k: kindIs, witness: w}
	diff := a.lc(h).Clone().Concat(b.lc(h).Scale(f.FromInt64(-1))).Compactify()
	rhs := out.lc(h).Clone().Concat(b.lc(h).Scale(f.FromInt64(-1))).Compactify()
	if err := h.EnforceConstraint(cond.lc(h), diff, rhs); err != nil {
		return Boolean{}, err
	}
	return out, nil
}

// EnforceEqual enforces a == b.
func EnforceEqual(a, b Boolean) error {
	if a.k == kindConstant && b.k == kindConstant {
		if a.constv != b.constv {
			return r1cs.ErrUnsatisfiable
		}
		return nil
	}
	h := resolveHandle(a, b)
	f := h.Factory()
	diff := a.lc(h).Clone().Concat(b.lc(h).Scale(f.FromInt64(-1))).Compactify()
	one := h.LinearCombination()
	one.Add(f.One(), r1cs.One)
	zero := h.LinearCombination()
	return h.EnforceConstraint(diff, one, zero)
}

// ConditionalEnforceEqual enforces a == b whenever cond holds:
// cond*(a-b) == 0.
func ConditionalEnforceEqual(a, b, cond Boolean) error {
	h := r1cs.Merge(resolveHandle(a, b), cond.h)
	f := h.Factory()
	diff := a.lc(h).Clone().Concat(b.lc(h).Scale(f.FromInt64(-1))).Compactify()
	zero := h.LinearCombination()
	return h.EnforceConstraint(cond.lc(h), diff, zero)
}

// LC exposes the Boolean's {0,1}-valued linear combination for use by
// other gadget packages (e.g. twistededwards' scalar multiplication).
func (b Boolean) LC(h r1cs.Handle) *r1cs.LinearCombination { return b.lc(h) }

// IsConstant reports whether b carries no arena entry.
func (b Boolean) IsConstant() bool { return b.k == kindConstant }
