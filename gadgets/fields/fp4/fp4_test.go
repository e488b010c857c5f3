package fp4_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp2"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp4"
	"github.com/arkzk/r1cs-core/r1cs"
)

func newHandle(t *testing.T) r1cs.Handle {
	t.Helper()
	sys := r1cs.New(field.BN254Factory, r1cs.Config{})
	return r1cs.NewHandle(sys)
}

func params() *fp2.Params {
	return &fp2.Params{NonResidue: field.BN254Factory.FromInt64(5)}
}

func towerParams(h r1cs.Handle, base *fp2.Params) (*fp4.Params, error) {
	// The quartic tower's own nonresidue is an fp2 element; a witnessed
	// value keeps it bound to the live circuit handle used by the test.
	nr2, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(1), field.BN254Factory.FromInt64(1), nil
	})
	if err != nil {
		return nil, err
	}
	return &fp4.Params{Base: base, NonResidue2: nr2}, nil
}

func TestMulAndInverseSatisfy(t *testing.T) {
	h := newHandle(t)
	base := params()
	p, err := towerParams(h, base)
	require.NoError(t, err)

	c0, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(3), field.BN254Factory.FromInt64(1), nil
	})
	require.NoError(t, err)
	c1, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(2), field.BN254Factory.FromInt64(0), nil
	})
	require.NoError(t, err)
	x := fp4.Constant(p, c0, c1)

	inv, err := x.Inverse()
	require.NoError(t, err)
	prod, err := fp4.Mul(x, inv)
	require.NoError(t, err)

	one := fp4.One(p, field.BN254Factory)
	cond := fp.One(field.BN254Factory)
	require.NoError(t, fp4.ConditionalEnforceEqual(h, prod, one, cond))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

// TestSquareAgreesWithMul checks that Square(x) matches Mul(x,x) for
// the quartic tower built one level up over fp2.
func TestSquareAgreesWithMul(t *testing.T) {
	h := newHandle(t)
	base := params()
	p, err := towerParams(h, base)
	require.NoError(t, err)

	c0, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(3), field.BN254Factory.FromInt64(1), nil
	})
	require.NoError(t, err)
	c1, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
		return field.BN254Factory.FromInt64(2), field.BN254Factory.FromInt64(0), nil
	})
	require.NoError(t, err)
	x := fp4.Constant(p, c0, c1)

	sq, err := x.Square()
	require.NoError(t, err)
	prod, err := fp4.Mul(x, x)
	require.NoError(t, err)

	cond := fp.One(field.BN254Factory)
	require.NoError(t, fp4.ConditionalEnforceEqual(h, sq, prod, cond))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

// TestSquareExpansionLaw checks (x+y)^2 == x^2 + 2xy + y^2, spec §8's
// universal field-var law, for the quartic tower.
func TestSquareExpansionLaw(t *testing.T) {
	h := newHandle(t)
	base := params()
	p, err := towerParams(h, base)
	require.NoError(t, err)

	mkVar := func(a, b, c, d int64) fp4.Var {
		c0, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
			return field.BN254Factory.FromInt64(a), field.BN254Factory.FromInt64(b), nil
		})
		require.NoError(t, err)
		c1, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
			return field.BN254Factory.FromInt64(c), field.BN254Factory.FromInt64(d), nil
		})
		require.NoError(t, err)
		return fp4.Constant(p, c0, c1)
	}
	x := mkVar(4, -3, 7, 2)
	y := mkVar(-9, 2, 6, -5)

	lhs, err := x.Add(y).Square()
	require.NoError(t, err)

	x2, err := x.Square()
	require.NoError(t, err)
	xy, err := fp4.Mul(x, y)
	require.NoError(t, err)
	y2, err := y.Square()
	require.NoError(t, err)
	rhs := x2.Add(xy.Double()).Add(y2)

	cond := fp.One(field.BN254Factory)
	require.NoError(t, fp4.ConditionalEnforceEqual(h, lhs, rhs, cond))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsEqual(t *testing.T) {
	h := newHandle(t)
	base := params()
	p, err := towerParams(h, base)
	require.NoError(t, err)

	mk := func() fp4.Var {
		c0, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
			return field.BN254Factory.FromInt64(6), field.BN254Factory.FromInt64(7), nil
		})
		require.NoError(t, err)
		c1, err := fp2.NewWitness(h, base, func() (field.Element, field.Element, error) {
			return field.BN254Factory.FromInt64(8), field.BN254Factory.FromInt64(9), nil
		})
		require.NoError(t, err)
		return fp4.Constant(p, c0, c1)
	}
	a, b := mk(), mk()

	eq, err := fp4.IsEqual(a, b)
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
