// Package fp2 implements the quadratic extension field variable of spec
// §4.5: K = F[u]/(u^2 - nonresidue) for a constraint field F and a
// fixed non-residue. Grounded on the Karatsuba multiplication and
// complex-squaring formulas of original_source/r1cs-std/src/fields/
// cubic_extension.rs, specialised from three coordinates to two.
package fp2

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/bits"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/r1cs"
)

// Params fixes the extension: u^2 == NonResidue, a field element of the
// base (constraint) field that is not itself a quadratic residue.
type Params struct {
	NonResidue field.Element
}

// Var is an element c0 + c1*u of the quadratic extension, represented
// as two fp.Var coordinates.
type Var struct {
	p      *Params
	c0, c1 fp.Var
}

// Constant embeds two base-field constants with no arena entries.
func Constant(p *Params, c0, c1 field.Element) Var {
	return Var{p: p, c0: fp.Constant(c0), c1: fp.Constant(c1)}
}

// Zero and One are the additive and multiplicative identities.
func Zero(p *Params, f field.Factory) Var { return Constant(p, f.Zero(), f.Zero()) }
func One(p *Params, f field.Factory) Var  { return Constant(p, f.One(), f.Zero()) }

// NewWitness allocates both coordinates as fresh witnesses through h.
func NewWitness(h r1cs.Handle, p *Params, k func() (c0, c1 field.Element, err error)) (Var, error) {
	var c0v, c1v field.Element
	var kerr error
	c0Var, err := fp.NewWitness(h, func() (field.Element, error) {
		c0v, c1v, kerr = k()
		return c0v, kerr
	})
	if err != nil {
		return Var{}, err
	}
	c1Var, err := fp.NewWitness(h, func() (field.Element, error) { return c1v, kerr })
	if err != nil {
		return Var{}, err
	}
	return Var{p: p, c0: c0Var, c1: c1Var}, nil
}

func (v Var) Handle() r1cs.Handle {
	return r1cs.Merge(v.c0.Handle(), v.c1.Handle())
}

func (v Var) IsConstantVar() bool { return v.c0.IsConstantVar() && v.c1.IsConstantVar() }

// C0 and C1 return the two coordinates. Var has no Value method: the
// fields.Var interface requires a single field.Element, so extension
// variables are consumed through this typed API rather than through
// fields.Var.
func (v Var) C0() fp.Var { return v.c0 }
func (v Var) C1() fp.Var { return v.c1 }

// Add, Sub, Negate, Double are coordinate-wise: no new constraints.
func (v Var) Add(w Var) Var { return Var{p: v.p, c0: v.c0.Add(w.c0), c1: v.c1.Add(w.c1)} }
func (v Var) Sub(w Var) Var { return Var{p: v.p, c0: v.c0.Sub(w.c0), c1: v.c1.Sub(w.c1)} }
func (v Var) Negate() Var   { return Var{p: v.p, c0: v.c0.Negate(), c1: v.c1.Negate()} }
func (v Var) Double() Var   { return Var{p: v.p, c0: v.c0.Double(), c1: v.c1.Double()} }

// MulConstant scales both coordinates by a base-field constant.
func (v Var) MulConstant(k field.Element) Var {
	return Var{p: v.p, c0: v.c0.MulConstant(k), c1: v.c1.MulConstant(k)}
}

// Mul returns v*w via Karatsuba: three base-field multiplications
// (v0=a0*b0, v1=a1*b1, and (a0+a1)*(b0+b1)) folded into
// c0 = v0 + nonresidue*v1, c1 = cross - v0 - v1.
func Mul(v, w Var) (Var, error) {
	p := v.p
	v0, err := fp.Mul(v.c0, w.c0)
	if err != nil {
		return Var{}, err
	}
	v1, err := fp.Mul(v.c1, w.c1)
	if err != nil {
		return Var{}, err
	}
	cross, err := fp.Mul(v.c0.Add(v.c1), w.c0.Add(w.c1))
	if err != nil {
		return Var{}, err
	}
	c0 := v0.Add(v1.MulConstant(p.NonResidue))
	c1 := cross.Sub(v0).Sub(v1)
	return Var{p: p, c0: c0, c1: c1}, nil
}

// Square uses the complex-squaring formula (2 multiplications):
// v0 = a0*a1; c1 = 2*v0; c0 = (a0+a1)*(a0+nonresidue*a1) - v0*(1+nonresidue).
func (v Var) Square() (Var, error) {
	p := v.p
	v0, err := fp.Mul(v.c0, v.c1)
	if err != nil {
		return Var{}, err
	}
	t, err := fp.Mul(v.c0.Add(v.c1), v.c0.Add(v.c1.MulConstant(p.NonResidue)))
	if err != nil {
		return Var{}, err
	}
	one := v0.Handle().Factory().One()
	c0 := t.Sub(v0.MulConstant(one.Add(p.NonResidue)))
	c1 := v0.Double()
	return Var{p: p, c0: c0, c1: c1}, nil
}

// Inverse returns 1/v using the norm formula: conj(v) / (a0^2 -
// nonresidue*a1^2), where conj(v) = a0 - a1*u.
func (v Var) Inverse() (Var, error) {
	a0, err := v.c0.Value()
	if err != nil {
		return Var{}, err
	}
	a1, err := v.c1.Value()
	if err != nil {
		return Var{}, err
	}
	norm := a0.Mul(a0).Sub(v.p.NonResidue.Mul(a1.Mul(a1)))
	normInv, ok := norm.Inverse()
	if !ok {
		return Var{}, r1cs.ErrDivisionByZero
	}
	invC0, err := fp.NewWitness(v.Handle(), func() (field.Element, error) { return a0.Mul(normInv), nil })
	if err != nil {
		return Var{}, err
	}
	invC1, err := fp.NewWitness(v.Handle(), func() (field.Element, error) { return a1.Neg().Mul(normInv), nil })
	if err != nil {
		return Var{}, err
	}
	out := Var{p: v.p, c0: invC0, c1: invC1}
	prod, err := Mul(v, out)
	if err != nil {
		return Var{}, err
	}
	one := One(v.p, v.Handle().Factory())
	if err := fp.MulEquals(v.Handle(), fp.One(v.Handle().Factory()), prod.c0, one.c0); err != nil {
		return Var{}, err
	}
	if err := fp.MulEquals(v.Handle(), fp.One(v.Handle().Factory()), prod.c1, one.c1); err != nil {
		return Var{}, err
	}
	return out, nil
}

// FrobeniusMap applies x -> x^(p^power): on the quadratic extension this
// negates c1 when power is odd and leaves v unchanged when power is
// even, since u^p == -u for the non-residue extensions used here.
func (v Var) FrobeniusMap(power int) Var {
	if power%2 == 0 {
		return v
	}
	return Var{p: v.p, c0: v.c0, c1: v.c1.Negate()}
}

// ConditionalSelect returns a if cond else b, coordinate-wise.
func ConditionalSelect(h r1cs.Handle, cond fp.Var, a, b Var) (Var, error) {
	c0, err := fp.ConditionalSelect(h, cond, a.c0, b.c0)
	if err != nil {
		return Var{}, err
	}
	c1, err := fp.ConditionalSelect(h, cond, a.c1, b.c1)
	if err != nil {
		return Var{}, err
	}
	return Var{p: a.p, c0: c0, c1: c1}, nil
}

// ConditionalEnforceEqual enforces a==b coordinate-wise whenever cond
// holds.
func ConditionalEnforceEqual(h r1cs.Handle, a, b Var, cond fp.Var) error {
	if err := fp.ConditionalEnforceEqual(h, a.c0, b.c0, cond); err != nil {
		return err
	}
	return fp.ConditionalEnforceEqual(h, a.c1, b.c1, cond)
}

// ConditionalEnforceNotEqual enforces a!=b whenever cond holds, matching
// cubic_extension.rs's (and fp3's) approach:
// is_eq(a,b).and(cond).enforce_equal(false). A linear fold of the two
// coordinate differences (e.g. diff0 + nonresidue*diff1) is unsound here:
// that map has a nontrivial kernel, so distinct (a,b) pairs can still
// fold to zero and spuriously pass.
func ConditionalEnforceNotEqual(h r1cs.Handle, a, b Var, cond fp.Var) error {
	eq, err := IsEqual(a, b)
	if err != nil {
		return err
	}
	condBool, err := asBoolean(h, cond)
	if err != nil {
		return err
	}
	both, err := bits.And(eq, condBool)
	if err != nil {
		return err
	}
	return bits.EnforceEqual(both, bits.NewConstant(false))
}

func asBoolean(h r1cs.Handle, cond fp.Var) (bits.Boolean, error) {
	v, err := cond.Value()
	if err != nil {
		return bits.Boolean{}, err
	}
	return bits.NewWitness(h, func() (bool, error) { return !v.IsZero(), nil })
}

// IsEqual reports whether a==b as a bits.Boolean, via coordinate-wise
// equality conjoined with And.
func IsEqual(a, b Var) (bits.Boolean, error) {
	e0, err := fp.IsEqual(a.c0, b.c0)
	if err != nil {
		return bits.Boolean{}, err
	}
	e1, err := fp.IsEqual(a.c1, b.c1)
	if err != nil {
		return bits.Boolean{}, err
	}
	return bits.And(e0, e1)
}
