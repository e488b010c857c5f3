// Package fp4 implements the quartic extension field variable of spec
// §4.5A: K = F2[v]/(v^2 - nonresidue2), a degree-2 tower over fp2 itself
// a degree-2 extension of the constraint field. Reuses fp2's Karatsuba
// multiplication one level up; with the multiplication by the fp2
// non-residue that is four fp2 products, 4*3=12 constraints per
// multiplication.
package fp4

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/bits"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp2"
	"github.com/arkzk/r1cs-core/r1cs"
)

// Params fixes the tower: Base is the fp2 extension's own Params, and
// NonResidue2 is the fp2 element with v^2 == NonResidue2.
type Params struct {
	Base        *fp2.Params
	NonResidue2 fp2.Var
}

// Var is an element c0 + c1*v of the quartic extension, each ci an
// fp2.Var.
type Var struct {
	p      *Params
	c0, c1 fp2.Var
}

func Constant(p *Params, c0, c1 fp2.Var) Var { return Var{p: p, c0: c0, c1: c1} }

func Zero(p *Params, f field.Factory) Var {
	z := fp2.Zero(p.Base, f)
	return Var{p: p, c0: z, c1: z}
}
func One(p *Params, f field.Factory) Var {
	return Var{p: p, c0: fp2.One(p.Base, f), c1: fp2.Zero(p.Base, f)}
}

func (v Var) Handle() r1cs.Handle { return r1cs.Merge(v.c0.Handle(), v.c1.Handle()) }

func (v Var) IsConstantVar() bool { return v.c0.IsConstantVar() && v.c1.IsConstantVar() }

func (v Var) C0() fp2.Var { return v.c0 }
func (v Var) C1() fp2.Var { return v.c1 }

func (v Var) Add(w Var) Var { return Var{p: v.p, c0: v.c0.Add(w.c0), c1: v.c1.Add(w.c1)} }
func (v Var) Sub(w Var) Var { return Var{p: v.p, c0: v.c0.Sub(w.c0), c1: v.c1.Sub(w.c1)} }
func (v Var) Negate() Var   { return Var{p: v.p, c0: v.c0.Negate(), c1: v.c1.Negate()} }
func (v Var) Double() Var   { return Var{p: v.p, c0: v.c0.Double(), c1: v.c1.Double()} }

// Mul applies fp2's own Karatsuba formula one level up: three fp2
// multiplications (v0, v1, and the cross term) plus a fourth for
// v1*NonResidue2 (an fp2.Var), each itself costing three fp.Mul
// constraints, for twelve constraints total.
func Mul(v, w Var) (Var, error) {
	p := v.p
	v0, err := fp2.Mul(v.c0, w.c0)
	if err != nil {
		return Var{}, err
	}
	v1, err := fp2.Mul(v.c1, w.c1)
	if err != nil {
		return Var{}, err
	}
	cross, err := fp2.Mul(v.c0.Add(v.c1), w.c0.Add(w.c1))
	if err != nil {
		return Var{}, err
	}
	nrV1, err := fp2.Mul(v1, p.NonResidue2)
	if err != nil {
		return Var{}, err
	}
	c0 := v0.Add(nrV1)
	c1 := cross.Sub(v0).Sub(v1)
	return Var{p: p, c0: c0, c1: c1}, nil
}

// Square reuses fp2's complex-squaring trick one level up.
func (v Var) Square() (Var, error) {
	p := v.p
	v0, err := fp2.Mul(v.c0, v.c1)
	if err != nil {
		return Var{}, err
	}
	nrC1, err := fp2.Mul(v.c1, p.NonResidue2)
	if err != nil {
		return Var{}, err
	}
	t, err := fp2.Mul(v.c0.Add(v.c1), v.c0.Add(nrC1))
	if err != nil {
		return Var{}, err
	}
	nrV0, err := fp2.Mul(v0, p.NonResidue2)
	if err != nil {
		return Var{}, err
	}
	c0 := t.Sub(v0).Sub(nrV0)
	c1 := v0.Double()
	return Var{p: p, c0: c0, c1: c1}, nil
}

// Inverse mirrors fp2's norm-based inverse, one tower level up: the
// norm a0^2 - nonresidue2*a1^2 is itself an fp2 element, inverted via
// fp2.Var.Inverse.
func (v Var) Inverse() (Var, error) {
	h := v.Handle()
	a0sq, err := v.c0.Square()
	if err != nil {
		return Var{}, err
	}
	a1sq, err := v.c1.Square()
	if err != nil {
		return Var{}, err
	}
	nrA1sq, err := fp2.Mul(a1sq, v.p.NonResidue2)
	if err != nil {
		return Var{}, err
	}
	norm := a0sq.Sub(nrA1sq)
	normInv, err := norm.Inverse()
	if err != nil {
		return Var{}, err
	}
	invC0, err := fp2.Mul(v.c0, normInv)
	if err != nil {
		return Var{}, err
	}
	negC1, err := fp2.Mul(v.c1.Negate(), normInv)
	if err != nil {
		return Var{}, err
	}
	out := Var{p: v.p, c0: invC0, c1: negC1}
	prod, err := Mul(v, out)
	if err != nil {
		return Var{}, err
	}
	one := One(v.p, h.Factory())
	if err := ConditionalEnforceEqual(h, prod, one, fp.One(h.Factory())); err != nil {
		return Var{}, err
	}
	return out, nil
}

// ConditionalSelect returns a if cond else b, coordinate-wise.
func ConditionalSelect(h r1cs.Handle, cond fp.Var, a, b Var) (Var, error) {
	c0, err := fp2.ConditionalSelect(h, cond, a.c0, b.c0)
	if err != nil {
		return Var{}, err
	}
	c1, err := fp2.ConditionalSelect(h, cond, a.c1, b.c1)
	if err != nil {
		return Var{}, err
	}
	return Var{p: a.p, c0: c0, c1: c1}, nil
}

func ConditionalEnforceEqual(h r1cs.Handle, a, b Var, cond fp.Var) error {
	if err := fp2.ConditionalEnforceEqual(h, a.c0, b.c0, cond); err != nil {
		return err
	}
	return fp2.ConditionalEnforceEqual(h, a.c1, b.c1, cond)
}

// IsEqual conjoins coordinate-wise fp2 equality.
func IsEqual(a, b Var) (bits.Boolean, error) {
	e0, err := fp2.IsEqual(a.c0, b.c0)
	if err != nil {
		return bits.Boolean{}, err
	}
	e1, err := fp2.IsEqual(a.c1, b.c1)
	if err != nil {
		return bits.Boolean{}, err
	}
	return bits.And(e0, e1)
}
