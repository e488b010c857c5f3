package twistededwards

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/bits"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/r1cs"
)

// AffineVar is a point (x, y) on a·x²+y² = 1+d·x²·y², represented as
// two fp.Var coordinates over the constraint field.
type AffineVar struct {
	p    *Params
	X, Y fp.Var
}

// Zero is the affine identity (0, 1); no arena entries.
func Zero(p *Params, f field.Factory) AffineVar {
	return AffineVar{p: p, X: fp.Zero(f), Y: fp.One(f)}
}

// Constant embeds a point with no arena entries.
func Constant(p *Params, x, y field.Element) AffineVar {
	return AffineVar{p: p, X: fp.Constant(x), Y: fp.Constant(y)}
}

// NewVariableOmitOnCurveCheck allocates (x, y) as fresh witnesses with
// no on-curve enforcement at all — the caller vouches for the point.
func NewVariableOmitOnCurveCheck(h r1cs.Handle, p *Params, k func() (x, y field.Element, err error)) (AffineVar, error) {
	var xv, yv field.Element
	var kerr error
	xVar, err := fp.NewWitness(h, func() (field.Element, error) {
		xv, yv, kerr = k()
		return xv, kerr
	})
	if err != nil {
		return AffineVar{}, err
	}
	yVar, err := fp.NewWitness(h, func() (field.Element, error) { return yv, kerr })
	if err != nil {
		return AffineVar{}, err
	}
	return AffineVar{p: p, X: xVar, Y: yVar}, nil
}

// NewVariableOmitPrimeOrderCheck allocates (x, y) and additionally
// enforces the curve equation (d·x²−1)·y² = a·x²−1 via one mul_equals,
// but does not enforce prime-order-subgroup membership.
func NewVariableOmitPrimeOrderCheck(h r1cs.Handle, p *Params, k func() (x, y field.Element, err error)) (AffineVar, error) {
	pt, err := NewVariableOmitOnCurveCheck(h, p, k)
	if err != nil {
		return AffineVar{}, err
	}
	if err := pt.enforceOnCurve(); err != nil {
		return AffineVar{}, err
	}
	return pt, nil
}

// enforceOnCurve enforces (d·x²−1)·y² = a·x²−1.
func (pt AffineVar) enforceOnCurve() error {
	h := pt.X.Handle()
	x2, err := pt.X.Square()
	if err != nil {
		return err
	}
	y2, err := pt.Y.Square()
	if err != nil {
		return err
	}
	one := fp.One(h.Factory())
	lhs := x2.MulConstant(pt.p.D).Sub(one)
	rhs := x2.MulConstant(pt.p.A).Sub(one)
	return fp.MulEquals(h, lhs, y2, rhs)
}

func (pt AffineVar) Handle() r1cs.Handle { return r1cs.Merge(pt.X.Handle(), pt.Y.Handle()) }

// IsConstantVar reports whether both coordinates are constants.
func (pt AffineVar) IsConstantVar() bool { return pt.X.IsConstantVar() && pt.Y.IsConstantVar() }

// Negate returns (-x, y); no constraints.
func (pt AffineVar) Negate() AffineVar {
	return AffineVar{p: pt.p, X: pt.X.Negate(), Y: pt.Y}
}

// Add implements spec §4.6's unified complete-addition formula:
// u = (-a·x1+y1)·(x2+y2); v0=x1·y2; v1=x2·y1; v2=d·v0·v1;
// x3=(v0+v1)/(1+v2); y3=(u+a·v0-v1)/(1-v2). Six constraints total
// (u, v0, v1, v2, x3, y3), each a single mul_equals.
//
// When both operands are constant, the sum is computed natively with
// no constraint, per spec §4.6's constant-folding rule.
func Add(pt1, pt2 AffineVar) (AffineVar, error) {
	p := pt1.p
	if pt1.IsConstantVar() && pt2.IsConstantVar() {
		x1, _ := pt1.X.Value()
		y1, _ := pt1.Y.Value()
		x2, _ := pt2.X.Value()
		y2, _ := pt2.Y.Value()
		x3, y3 := addNative(p, x1, y1, x2, y2)
		return Constant(p, x3, y3), nil
	}
	h := r1cs.Merge(pt1.Handle(), pt2.Handle())

	u, err := fp.Mul(pt1.Y.Sub(pt1.X.MulConstant(p.A)), pt2.X.Add(pt2.Y))
	if err != nil {
		return AffineVar{}, err
	}
	v0, err := fp.Mul(pt1.X, pt2.Y)
	if err != nil {
		return AffineVar{}, err
	}
	v1, err := fp.Mul(pt2.X, pt1.Y)
	if err != nil {
		return AffineVar{}, err
	}
	v0v1, err := fp.Mul(v0, v1)
	if err != nil {
		return AffineVar{}, err
	}
	v2 := v0v1.MulConstant(p.D)

	one := fp.One(h.Factory())

	v0Val, err := v0.Value()
	if err != nil {
		return AffineVar{}, err
	}
	v1Val, err := v1.Value()
	if err != nil {
		return AffineVar{}, err
	}
	v2Val, err := v2.Value()
	if err != nil {
		return AffineVar{}, err
	}
	uVal, err := u.Value()
	if err != nil {
		return AffineVar{}, err
	}

	numX := v0Val.Add(v1Val)
	denX := h.Factory().One().Add(v2Val)
	denXInv, ok := denX.Inverse()
	if !ok {
		return AffineVar{}, r1cs.ErrDivisionByZero
	}
	x3Val := numX.Mul(denXInv)
	x3, err := fp.NewWitness(h, func() (field.Element, error) { return x3Val, nil })
	if err != nil {
		return AffineVar{}, err
	}
	if err := fp.MulEquals(h, one.Add(v2), x3, v0.Add(v1)); err != nil {
		return AffineVar{}, err
	}

	numY := uVal.Add(p.A.Mul(v0Val)).Sub(v1Val)
	denY := h.Factory().One().Sub(v2Val)
	denYInv, ok := denY.Inverse()
	if !ok {
		return AffineVar{}, r1cs.ErrDivisionByZero
	}
	y3Val := numY.Mul(denYInv)
	y3, err := fp.NewWitness(h, func() (field.Element, error) { return y3Val, nil })
	if err != nil {
		return AffineVar{}, err
	}
	if err := fp.MulEquals(h, one.Sub(v2), y3, u.Add(v0.MulConstant(p.A)).Sub(v1)); err != nil {
		return AffineVar{}, err
	}

	return AffineVar{p: p, X: x3, Y: y3}, nil
}

func addNative(p *Params, x1, y1, x2, y2 field.Element) (field.Element, field.Element) {
	u := y1.Sub(p.A.Mul(x1)).Mul(x2.Add(y2))
	v0 := x1.Mul(y2)
	v1 := x2.Mul(y1)
	v2 := p.D.Mul(v0).Mul(v1)
	one := p.F.One()
	denXInv, _ := one.Add(v2).Inverse()
	x3 := v0.Add(v1).Mul(denXInv)
	denYInv, _ := one.Sub(v2).Inverse()
	y3 := u.Add(p.A.Mul(v0)).Sub(v1).Mul(denYInv)
	return x3, y3
}

// Double implements spec §4.6's doubling formula: xy, x², y² each one
// constraint; x3=2xy/(a·x²+y²), y3=(y²−a·x²)/(2−a·x²−y²) each a fresh
// witness plus one mul_equals — five constraints total.
func Double(pt AffineVar) (AffineVar, error) {
	p := pt.p
	if pt.IsConstantVar() {
		x, _ := pt.X.Value()
		y, _ := pt.Y.Value()
		x3, y3 := doubleNative(p, x, y)
		return Constant(p, x3, y3), nil
	}
	h := pt.Handle()
	xy, err := fp.Mul(pt.X, pt.Y)
	if err != nil {
		return AffineVar{}, err
	}
	x2, err := pt.X.Square()
	if err != nil {
		return AffineVar{}, err
	}
	y2, err := pt.Y.Square()
	if err != nil {
		return AffineVar{}, err
	}

	xyV, _ := xy.Value()
	x2V, _ := x2.Value()
	y2V, _ := y2.Value()

	denX := p.A.Mul(x2V).Add(y2V)
	denXInv, ok := denX.Inverse()
	if !ok {
		return AffineVar{}, r1cs.ErrDivisionByZero
	}
	x3Val := xyV.Add(xyV).Mul(denXInv)
	x3, err := fp.NewWitness(h, func() (field.Element, error) { return x3Val, nil })
	if err != nil {
		return AffineVar{}, err
	}
	if err := fp.MulEquals(h, x2.MulConstant(p.A).Add(y2), x3, xy.Double()); err != nil {
		return AffineVar{}, err
	}

	two := h.Factory().One().Add(h.Factory().One())
	denY := two.Sub(p.A.Mul(x2V)).Sub(y2V)
	denYInv, ok := denY.Inverse()
	if !ok {
		return AffineVar{}, r1cs.ErrDivisionByZero
	}
	y3Val := y2V.Sub(p.A.Mul(x2V)).Mul(denYInv)
	y3, err := fp.NewWitness(h, func() (field.Element, error) { return y3Val, nil })
	if err != nil {
		return AffineVar{}, err
	}
	twoConst := fp.Constant(two)
	if err := fp.MulEquals(h, twoConst.Sub(x2.MulConstant(p.A)).Sub(y2), y3, y2.Sub(x2.MulConstant(p.A))); err != nil {
		return AffineVar{}, err
	}

	return AffineVar{p: p, X: x3, Y: y3}, nil
}

func doubleNative(p *Params, x, y field.Element) (field.Element, field.Element) {
	xy := x.Mul(y)
	x2 := x.Mul(x)
	y2 := y.Mul(y)
	denX := p.A.Mul(x2).Add(y2)
	denXInv, _ := denX.Inverse()
	x3 := xy.Add(xy).Mul(denXInv)
	two := p.F.One().Add(p.F.One())
	denY := two.Sub(p.A.Mul(x2)).Sub(y2)
	denYInv, _ := denY.Inverse()
	y3 := y2.Sub(p.A.Mul(x2)).Mul(denYInv)
	return x3, y3
}

// ConditionalSelect returns a if cond else b, coordinate-wise.
func ConditionalSelect(h r1cs.Handle, cond fp.Var, a, b AffineVar) (AffineVar, error) {
	x, err := fp.ConditionalSelect(h, cond, a.X, b.X)
	if err != nil {
		return AffineVar{}, err
	}
	y, err := fp.ConditionalSelect(h, cond, a.Y, b.Y)
	if err != nil {
		return AffineVar{}, err
	}
	return AffineVar{p: a.p, X: x, Y: y}, nil
}

// IsZero enforces and reports x==0 AND y==1, the corrected identity
// check of SPEC_FULL.md §4.6A (original_source checks x twice; this
// core checks the actual identity coordinates).
func IsZero(pt AffineVar) (bits.Boolean, error) {
	h := pt.Handle()
	xEq, err := fp.IsEqual(pt.X, fp.Zero(h.Factory()))
	if err != nil {
		return bits.Boolean{}, err
	}
	yEq, err := fp.IsEqual(pt.Y, fp.One(h.Factory()))
	if err != nil {
		return bits.Boolean{}, err
	}
	return bits.And(xEq, yEq)
}
