package twistededwards

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/bits"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/r1cs"
)

// MontgomeryAffineVar is a point (u, v) on B·v² = u³+A·u²+u, the
// birational companion curve used as a cheaper intermediate
// representation during 3-bit signed-digit windowed scalar
// multiplication (spec §4.6).
type MontgomeryAffineVar struct {
	p    *Params
	U, V fp.Var
}

// ToMontgomery converts an Edwards point via the standard birational
// map: u=(1+y)/(1−y), v=u/x. Each division is one witness allocation
// plus one mul_equals. Degenerate input y=1 maps to the Montgomery
// identity (represented here as U=0, V=0, matching spec's "Montgomery
// identity" for that branch).
func ToMontgomery(pt AffineVar) (MontgomeryAffineVar, error) {
	h := pt.Handle()
	yVal, err := pt.Y.Value()
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	if yVal.IsOne() {
		return MontgomeryAffineVar{p: pt.p, U: fp.Zero(pt.p.F), V: fp.Zero(pt.p.F)}, nil
	}
	xVal, err := pt.X.Value()
	if err != nil {
		return MontgomeryAffineVar{}, err
	}

	one := h.Factory().One()
	denUInv, ok := one.Sub(yVal).Inverse()
	if !ok {
		return MontgomeryAffineVar{}, r1cs.ErrDivisionByZero
	}
	uVal := one.Add(yVal).Mul(denUInv)
	uVar, err := fp.NewWitness(h, func() (field.Element, error) { return uVal, nil })
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	// Enforce u*(1-y) == 1+y.
	oneVar := fp.Constant(one)
	if err := fp.MulEquals(h, uVar, oneVar.Sub(pt.Y), oneVar.Add(pt.Y)); err != nil {
		return MontgomeryAffineVar{}, err
	}

	if xVal.IsZero() {
		return MontgomeryAffineVar{p: pt.p, U: uVar, V: fp.Zero(h.Factory())}, nil
	}
	denVInv, ok := xVal.Inverse()
	if !ok {
		return MontgomeryAffineVar{}, r1cs.ErrDivisionByZero
	}
	vVal := uVal.Mul(denVInv)
	vVar, err := fp.NewWitness(h, func() (field.Element, error) { return vVal, nil })
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	// Enforce v*x == u.
	if err := fp.MulEquals(h, vVar, pt.X, uVar); err != nil {
		return MontgomeryAffineVar{}, err
	}
	return MontgomeryAffineVar{p: pt.p, U: uVar, V: vVar}, nil
}

// FromMontgomery converts back via x=u/v, y=(u−1)/(u+1). Degenerate
// input u=0 maps to (0, 0) per spec (the Montgomery identity's inverse
// image under this map is the curve's 2-torsion point at (0,0) in the
// conventions this core follows).
func FromMontgomery(p *Params, mpt MontgomeryAffineVar) (AffineVar, error) {
	h := mpt.U.Handle()
	uVal, err := mpt.U.Value()
	if err != nil {
		return AffineVar{}, err
	}
	if uVal.IsZero() {
		return AffineVar{p: p, X: fp.Zero(h.Factory()), Y: fp.Zero(h.Factory())}, nil
	}
	vVal, err := mpt.V.Value()
	if err != nil {
		return AffineVar{}, err
	}

	vInv, ok := vVal.Inverse()
	if !ok {
		return AffineVar{}, r1cs.ErrDivisionByZero
	}
	xVal := uVal.Mul(vInv)
	xVar, err := fp.NewWitness(h, func() (field.Element, error) { return xVal, nil })
	if err != nil {
		return AffineVar{}, err
	}
	if err := fp.MulEquals(h, xVar, mpt.V, mpt.U); err != nil {
		return AffineVar{}, err
	}

	one := h.Factory().One()
	denInv, ok := uVal.Add(one).Inverse()
	if !ok {
		return AffineVar{}, r1cs.ErrDivisionByZero
	}
	yVal := uVal.Sub(one).Mul(denInv)
	yVar, err := fp.NewWitness(h, func() (field.Element, error) { return yVal, nil })
	if err != nil {
		return AffineVar{}, err
	}
	oneVar := fp.Constant(one)
	if err := fp.MulEquals(h, yVar, mpt.U.Add(oneVar), mpt.U.Sub(oneVar)); err != nil {
		return AffineVar{}, err
	}
	return AffineVar{p: p, X: xVar, Y: yVar}, nil
}

// AddMontgomery implements spec §4.6's Montgomery addition:
// λ=(y2−y1)/(x2−x1); x3=B·λ²−A−x1−x2; y3=−(y1+λ·(x3−x1)). Three
// constraints (λ, x3, y3), each a single mul_equals.
func AddMontgomery(pt1, pt2 MontgomeryAffineVar) (MontgomeryAffineVar, error) {
	p := pt1.p
	h := r1cs.Merge(pt1.U.Handle(), pt2.U.Handle())

	u1, err := pt1.U.Value()
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	v1, err := pt1.V.Value()
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	u2, err := pt2.U.Value()
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	v2, err := pt2.V.Value()
	if err != nil {
		return MontgomeryAffineVar{}, err
	}

	denInv, ok := u2.Sub(u1).Inverse()
	if !ok {
		return MontgomeryAffineVar{}, r1cs.ErrDivisionByZero
	}
	lambdaVal := v2.Sub(v1).Mul(denInv)
	lambda, err := fp.NewWitness(h, func() (field.Element, error) { return lambdaVal, nil })
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	if err := fp.MulEquals(h, lambda, pt2.U.Sub(pt1.U), pt2.V.Sub(pt1.V)); err != nil {
		return MontgomeryAffineVar{}, err
	}

	lambdaSqVal := lambdaVal.Mul(lambdaVal)
	x3Val := p.MontgomeryB.Mul(lambdaSqVal).Sub(p.MontgomeryA).Sub(u1).Sub(u2)
	x3, err := fp.NewWitness(h, func() (field.Element, error) { return x3Val, nil })
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	if err := fp.MulEquals(h, lambda.MulConstant(p.MontgomeryB), lambda, x3.Add(pt1.U).Add(pt2.U).Add(fp.Constant(p.MontgomeryA))); err != nil {
		return MontgomeryAffineVar{}, err
	}

	y3Val := v1.Add(lambdaVal.Mul(x3Val.Sub(u1))).Neg()
	y3, err := fp.NewWitness(h, func() (field.Element, error) { return y3Val, nil })
	if err != nil {
		return MontgomeryAffineVar{}, err
	}
	if err := fp.MulEquals(h, lambda, x3.Sub(pt1.U), pt1.V.Add(y3).Negate()); err != nil {
		return MontgomeryAffineVar{}, err
	}

	return MontgomeryAffineVar{p: p, U: x3, V: y3}, nil
}

// PrecomputedMontgomeryTable holds, for a fixed base, the four
// Montgomery-coordinate multiples indexed by a two-bit magnitude,
// consumed by the 3-bit signed-digit method's sign-conditional lookup.
type PrecomputedMontgomeryTable struct {
	U, V [4]field.Element
}

// PrecomputedScalarMulSigned3Bit implements spec §4.6's 3-bit
// signed-digit method: each window of three bits (two magnitude bits
// plus a sign bit) selects a Montgomery table entry, U via
// bits.TwoBitLookup and V via bits.ThreeBitCondNegLookup, so a set sign
// bit yields the negated point (u, −v). Each selected segment is
// converted back to Edwards and added to the Edwards accumulator.
func PrecomputedScalarMulSigned3Bit(h r1cs.Handle, p *Params, windows [][3]bits.Boolean, tables []PrecomputedMontgomeryTable) (AffineVar, error) {
	acc := Zero(p, h.Factory())
	for i, w := range windows {
		t := tables[i]
		uVar, err := bits.TwoBitLookup(h, [2]bits.Boolean{w[0], w[1]}, t.U)
		if err != nil {
			return AffineVar{}, err
		}
		vVar, err := bits.ThreeBitCondNegLookup(h, w, t.V)
		if err != nil {
			return AffineVar{}, err
		}
		segment := MontgomeryAffineVar{p: p, U: fp.FromVariable(h, uVar), V: fp.FromVariable(h, vVar)}
		segmentEdwards, err := FromMontgomery(p, segment)
		if err != nil {
			return AffineVar{}, err
		}
		acc, err = Add(acc, segmentEdwards)
		if err != nil {
			return AffineVar{}, err
		}
	}
	return acc, nil
}
