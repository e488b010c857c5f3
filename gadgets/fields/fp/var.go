// Package fp implements the prime field variable: the base case of
// spec §4.5's field-variable gadget family, where the variable's field
// K equals the constraint field F.
package fp

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/r1cs"
)

// Var is an element of the constraint field F, represented as a linear
// combination over allocated variables. Add/Sub/Double/Negate are pure
// LC algebra (no constraints); Mul/Square allocate a witness and enforce
// it via MulEquals (one constraint each).
type Var struct {
	h        r1cs.Handle
	lc       *r1cs.LinearCombination
	isConst  bool
	constVal field.Element
}

// Constant returns a Var embedding k as a literal coefficient on One; no
// arena entry is created.
func Constant(k field.Element) Var {
	return Var{isConst: true, constVal: k}
}

// Zero and One are the additive and multiplicative identities, as
// constants.
func Zero(f field.Factory) Var { return Constant(f.Zero()) }
func One(f field.Factory) Var  { return Constant(f.One()) }

// NewWitness allocates k as a fresh witness variable through h.
func NewWitness(h r1cs.Handle, k func() (field.Element, error)) (Var, error) {
	v, err := h.NewWitnessVariable(k)
	if err != nil {
		return Var{}, err
	}
	lc := h.LinearCombination()
	lc.Add(h.Factory().One(), v)
	return Var{h: h, lc: lc}, nil
}

// NewInput allocates k as a fresh public-input variable through h.
func NewInput(h r1cs.Handle, k func() (field.Element, error)) (Var, error) {
	v, err := h.NewInputVariable(k)
	if err != nil {
		return Var{}, err
	}
	lc := h.LinearCombination()
	lc.Add(h.Factory().One(), v)
	return Var{h: h, lc: lc}, nil
}

// fromLC wraps an already-built LinearCombination as a non-constant Var.
func fromLC(h r1cs.Handle, lc *r1cs.LinearCombination) Var {
	return Var{h: h, lc: lc}
}

func (v Var) Handle() r1cs.Handle   { return v.h }
func (v Var) IsConstantVar() bool   { return v.isConst }
func (v Var) constant() field.Element { return v.constVal }

// Value recovers the assigned value.
func (v Var) Value() (field.Element, error) {
	if v.isConst {
		return v.constVal, nil
	}
	return v.h.EvalLinearCombination(v.lc)
}

// asLC returns the LinearCombination representing v, synthesizing
// `k * One` on the fly for constants in a LinearCombination from h.
func (v Var) asLC(h r1cs.Handle) *r1cs.LinearCombination {
	if !v.isConst {
		return v.lc
	}
	lc := h.LinearCombination()
	lc.Add(v.constVal, r1cs.One)
	return lc
}

// Add returns v+w. Pure LC algebra: no new constraints.
func (v Var) Add(w Var) Var {
	if v.isConst && w.isConst {
		return Constant(v.constVal.Add(w.constVal))
	}
	h := r1cs.Merge(v.h, w.h)
	lc := v.asLC(h).Clone().Concat(w.asLC(h)).Compactify()
	return fromLC(h, lc)
}

// Sub returns v-w.
func (v Var) Sub(w Var) Var { return v.Add(w.Negate()) }

// Negate returns -v.
func (v Var) Negate() Var {
	if v.isConst {
		return Constant(v.constVal.Neg())
	}
	lc := r1cs.NewLinearCombination(v.h.Factory())
	minusOne := v.h.Factory().FromInt64(-1)
	for _, t := range v.lc.Terms() {
		lc.Add(t.Coeff.Mul(minusOne), t.Variable)
	}
	return fromLC(v.h, lc)
}

// Double returns v+v.
func (v Var) Double() Var { return v.Add(v) }

// MulConstant returns v scaled by the constant k; pure LC algebra.
func (v Var) MulConstant(k field.Element) Var {
	if v.isConst {
		return Constant(v.constVal.Mul(k))
	}
	return fromLC(v.h, v.lc.Scale(k))
}

// MulEquals enforces a*b == c as a single R1CS constraint.
func MulEquals(h r1cs.Handle, a, b, c Var) error {
	return h.EnforceConstraint(a.asLC(h), b.asLC(h), c.asLC(h))
}

// Mul returns a fresh Var constrained to equal v*w. If both operands are
// constant, the product is computed natively with no constraint, per
// spec §4.6's "when both operands are constants ... compute natively"
// pattern (stated there for curve points, applied uniformly here to
// field variables too).
func Mul(v, w Var) (Var, error) {
	if v.isConst && w.isConst {
		return Constant(v.constVal.Mul(w.constVal)), nil
	}
	h := r1cs.Merge(v.h, w.h)
	vv, err := v.Value()
	if err != nil {
		return Var{}, err
	}
	wv, err := w.Value()
	if err != nil {
		return Var{}, err
	}
	out, err := NewWitness(h, func() (field.Element, error) { return vv.Mul(wv), nil })
	if err != nil {
		return Var{}, err
	}
	if err := MulEquals(h, v, w, out); err != nil {
		return Var{}, err
	}
	return out, nil
}

// Square returns v*v, via Mul.
func (v Var) Square() (Var, error) { return Mul(v, v) }

// Inverse allocates a fresh witness inv and enforces v*inv == one. It
// fails with r1cs.ErrDivisionByZero if v's value is zero at witness
// time.
func (v Var) Inverse() (Var, error) {
	h := v.h
	if v.isConst {
		inv, ok := v.constVal.Inverse()
		if !ok {
			return Var{}, r1cs.ErrDivisionByZero
		}
		return Constant(inv), nil
	}
	val, err := v.Value()
	if err != nil {
		return Var{}, err
	}
	inv, ok := val.Inverse()
	if !ok {
		return Var{}, r1cs.ErrDivisionByZero
	}
	invVar, err := NewWitness(h, func() (field.Element, error) { return inv, nil })
	if err != nil {
		return Var{}, err
	}
	oneVar := One(h.Factory())
	if err := MulEquals(h, v, invVar, oneVar); err != nil {
		return Var{}, err
	}
	return invVar, nil
}

// FrobeniusMap on a prime field variable is the identity: the Frobenius
// endomorphism x -> x^p fixes the prime field itself.
func (v Var) FrobeniusMap(power int) Var { return v }

// ConditionalSelect returns a if cond else b, built from one MulEquals
// constraint: w = cond*(a-b) + b.
func ConditionalSelect(h r1cs.Handle, cond Var, a, b Var) (Var, error) {
	diff := a.Sub(b)
	prod, err := Mul(cond, diff)
	if err != nil {
		return Var{}, err
	}
	return prod.Add(b), nil
}

// ConditionalEnforceEqual enforces v == w whenever cond is 1: it computes
// cond*(v-w) with Mul (one constraint) and then enforces that product
// equals zero (a second constraint).
func ConditionalEnforceEqual(h r1cs.Handle, v, w Var, cond Var) error {
	diff := v.Sub(w)
	zero := Zero(h.Factory())
	masked, err := Mul(cond, diff)
	if err != nil {
		return err
	}
	return h.EnforceConstraint(masked.asLC(h), One(h.Factory()).asLC(h), zero.asLC(h))
}

// ConditionalEnforceNotEqual enforces v != w whenever cond holds (spec
// §4.5: "enforces is_eq(other) AND cond = false"). It allocates a
// witness multiplier with diff*multiplier == cond: when cond is 1 this
// forces diff to be invertible (hence nonzero); when cond is 0, any
// multiplier (0 in particular) satisfies it regardless of diff. If v==w
// while cond is asserted true at witness time, the multiplier has no
// valid value and this fails with r1cs.ErrDivisionByZero.
func ConditionalEnforceNotEqual(h r1cs.Handle, v, w Var, cond Var) error {
	diff := v.Sub(w)
	condVal, err := cond.Value()
	if err != nil {
		return err
	}
	diffVal, err := diff.Value()
	if err != nil {
		return err
	}

	var multiplierVal field.Element
	if diffVal.IsZero() {
		if !condVal.IsZero() {
			return r1cs.ErrDivisionByZero
		}
		multiplierVal = h.Factory().Zero()
	} else {
		inv, _ := diffVal.Inverse()
		multiplierVal = condVal.Mul(inv)
	}

	multiplier, err := NewWitness(h, func() (field.Element, error) { return multiplierVal, nil })
	if err != nil {
		return err
	}
	return MulEquals(h, diff, multiplier, cond)
}
