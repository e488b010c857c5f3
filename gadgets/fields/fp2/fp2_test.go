package fp2_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp2"
	"github.com/arkzk/r1cs-core/r1cs"
)

func newHandle(t *testing.T) r1cs.Handle {
	t.Helper()
	sys := r1cs.New(field.BN254Factory, r1cs.Config{})
	return r1cs.NewHandle(sys)
}

func params() *fp2.Params {
	// Any non-square in the base field works as a quadratic nonresidue
	// for this test; the precise curve tower coefficient is irrelevant
	// to checking Mul/Inverse/IsEqual satisfy the constraint system.
	return &fp2.Params{NonResidue: field.BN254Factory.FromInt64(5)}
}

func TestMulAgreesWithNativeAndSatisfies(t *testing.T) {
	h := newHandle(t)
	p := params()

	a, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(3), field.BN254Factory.FromInt64(4), nil
	})
	require.NoError(t, err)
	b, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(7), field.BN254Factory.FromInt64(2), nil
	})
	require.NoError(t, err)

	prod, err := fp2.Mul(a, b)
	require.NoError(t, err)

	c0, err := prod.C0().Value()
	require.NoError(t, err)
	c1, err := prod.C1().Value()
	require.NoError(t, err)

	// (3+4u)(7+2u) = 21 + 6u + 28u + 8u^2 = (21+8*5) + 34u = 61 + 34u
	require.True(t, c0.Equal(field.BN254Factory.FromInt64(61)))
	require.True(t, c1.Equal(field.BN254Factory.FromInt64(34)))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestInverseRoundTrip(t *testing.T) {
	h := newHandle(t)
	p := params()

	x, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(9), field.BN254Factory.FromInt64(2), nil
	})
	require.NoError(t, err)

	inv, err := x.Inverse()
	require.NoError(t, err)
	y, err := fp2.Mul(x, inv)
	require.NoError(t, err)

	one := fp2.One(p, field.BN254Factory)
	cond := fp.One(field.BN254Factory)
	require.NoError(t, fp2.ConditionalEnforceEqual(h, y, one, cond))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSquareAgreesWithNativeAndSatisfies(t *testing.T) {
	h := newHandle(t)
	p := params()

	x, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(3), field.BN254Factory.FromInt64(4), nil
	})
	require.NoError(t, err)

	sq, err := x.Square()
	require.NoError(t, err)
	prod, err := fp2.Mul(x, x)
	require.NoError(t, err)

	cond := fp.One(field.BN254Factory)
	require.NoError(t, fp2.ConditionalEnforceEqual(h, sq, prod, cond))

	// (3+4u)^2 = 9 + 24u + 16u^2 = (9+16*5) + 24u = 89 + 24u
	c0, err := sq.C0().Value()
	require.NoError(t, err)
	c1, err := sq.C1().Value()
	require.NoError(t, err)
	require.True(t, c0.Equal(field.BN254Factory.FromInt64(89)))
	require.True(t, c1.Equal(field.BN254Factory.FromInt64(24)))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

// TestSquareExpansionLaw checks (x+y)^2 == x^2 + 2xy + y^2 for witnessed
// fp2 operands, the universal field-var law spec §8 states for every
// field-variable type including extensions.
func TestSquareExpansionLaw(t *testing.T) {
	h := newHandle(t)
	p := params()

	x, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(5), field.BN254Factory.FromInt64(-2), nil
	})
	require.NoError(t, err)
	y, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(-7), field.BN254Factory.FromInt64(8), nil
	})
	require.NoError(t, err)

	lhs, err := x.Add(y).Square()
	require.NoError(t, err)

	x2, err := x.Square()
	require.NoError(t, err)
	xy, err := fp2.Mul(x, y)
	require.NoError(t, err)
	y2, err := y.Square()
	require.NoError(t, err)
	rhs := x2.Add(xy.Double()).Add(y2)

	cond := fp.One(field.BN254Factory)
	require.NoError(t, fp2.ConditionalEnforceEqual(h, lhs, rhs, cond))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConditionalEnforceNotEqualAcceptsCoordinatewiseDistinctPair(t *testing.T) {
	h := newHandle(t)
	p := params()

	// diff0 = -nonresidue*diff1 for a nonzero diff1: the linear fold
	// diff0 + nonresidue*diff1 cancels to zero even though a != b, the
	// exact case the coordinate-wise IsEqual-based gadget must still
	// accept as not equal.
	a, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(0), field.BN254Factory.FromInt64(0), nil
	})
	require.NoError(t, err)
	nonResidue := p.NonResidue
	diff1 := field.BN254Factory.FromInt64(1)
	diff0 := field.BN254Factory.Zero().Sub(nonResidue.Mul(diff1))
	b, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.Zero().Sub(diff0), field.BN254Factory.Zero().Sub(diff1), nil
	})
	require.NoError(t, err)

	cond := fp.One(field.BN254Factory)
	require.NoError(t, fp2.ConditionalEnforceNotEqual(h, a, b, cond))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsEqual(t *testing.T) {
	h := newHandle(t)
	p := params()

	a, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(11), field.BN254Factory.FromInt64(13), nil
	})
	require.NoError(t, err)
	b, err := fp2.NewWitness(h, p, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(11), field.BN254Factory.FromInt64(13), nil
	})
	require.NoError(t, err)

	eq, err := fp2.IsEqual(a, b)
	require.NoError(t, err)
	eqVal, err := eq.Value()
	require.NoError(t, err)
	require.True(t, eqVal)

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}
