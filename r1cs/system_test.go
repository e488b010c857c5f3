package r1cs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/r1cs"
)

func lcOf(h r1cs.Handle, terms ...r1cs.Term) *r1cs.LinearCombination {
	lc := h.LinearCombination()
	for _, t := range terms {
		lc.Add(t.Coeff, t.Variable)
	}
	return lc
}

func term(c field.Element, v r1cs.Variable) r1cs.Term { return r1cs.Term{Coeff: c, Variable: v} }

func TestEmptySystemMatrices(t *testing.T) {
	sys := r1cs.New(field.BN254Factory, r1cs.Config{})
	h := r1cs.NewHandle(sys)
	_ = h

	m, err := sys.ToMatrices()
	require.NoError(t, err)
	require.Equal(t, 0, m.NumConstraints)
	require.Equal(t, 1, m.NumInstanceVariables)
	require.Empty(t, m.A)
	require.Empty(t, m.B)
	require.Empty(t, m.C)
	require.Equal(t, 0, m.ANumNonZero)
	require.Equal(t, 0, m.BNumNonZero)
	require.Equal(t, 0, m.CNumNonZero)
}

func TestSingleMultiplication(t *testing.T) {
	f := field.BN254Factory
	sys := r1cs.New(f, r1cs.Config{})
	h := r1cs.NewHandle(sys)

	x, err := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(3), nil })
	require.NoError(t, err)
	y, err := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(5), nil })
	require.NoError(t, err)
	z, err := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(15), nil })
	require.NoError(t, err)

	a := lcOf(h, term(f.One(), x))
	b := lcOf(h, term(f.One(), y))
	c := lcOf(h, term(f.One(), z))
	require.NoError(t, h.EnforceConstraint(a, b, c))

	require.Equal(t, 1, sys.NumConstraints())
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)

	name, unsat, err := sys.WhichIsUnsatisfied()
	require.NoError(t, err)
	require.False(t, unsat)
	require.Empty(t, name)
}

func TestSingleMultiplicationUnsatisfied(t *testing.T) {
	f := field.BN254Factory
	sys := r1cs.New(f, r1cs.Config{})
	h := r1cs.NewHandle(sys)

	x, _ := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(3), nil })
	y, _ := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(5), nil })
	z, _ := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(16), nil })

	a := lcOf(h, term(f.One(), x))
	b := lcOf(h, term(f.One(), y))
	c := lcOf(h, term(f.One(), z))
	require.NoError(t, h.EnforceConstraint(a, b, c))

	name, unsat, err := sys.WhichIsUnsatisfied()
	require.NoError(t, err)
	require.True(t, unsat)
	require.Equal(t, "0", name)
}

func TestSymbolicLCInlining(t *testing.T) {
	f := field.BN254Factory
	sys := r1cs.New(f, r1cs.Config{})
	h := r1cs.NewHandle(sys)

	a, _ := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(2), nil })
	b, _ := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(3), nil })
	c, _ := h.NewWitnessVariable(func() (field.Element, error) { return f.FromInt64(4), nil })

	lcL := lcOf(h, term(f.One(), a), term(f.One(), b))
	lVar := h.NewLC(lcL)

	lcM := lcOf(h, term(f.One(), lVar), term(f.One(), c))
	mVar := h.NewLC(lcM)
	require.True(t, lcM.IsSymbolic())

	rhs := lcOf(h, term(f.One(), a), term(f.One(), b), term(f.One(), c))
	one := lcOf(h, term(f.One(), r1cs.One))
	mLC := lcOf(h, term(f.One(), mVar))
	require.NoError(t, h.EnforceConstraint(mLC, one, rhs))

	require.NoError(t, sys.InlineAllLCs())

	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNamespacedConstraints(t *testing.T) {
	f := field.BN254Factory
	sys := r1cs.New(f, r1cs.Config{})
	h := r1cs.NewHandle(sys)

	outer := h.Namespace("outer")
	inner := h.Namespace("inner")

	one := lcOf(h, term(f.One(), r1cs.One))
	require.NoError(t, h.EnforceConstraint(one, one, one))

	require.Equal(t, "outer/inner/0", sys.ConstraintName(0))

	inner.Leave()
	outer.Leave()

	require.Equal(t, "", sys.CurrentNamespacePath())
	m, err := sys.ToMatrices()
	require.NoError(t, err)
	_ = m
}

func TestReentrantMutationPanics(t *testing.T) {
	f := field.BN254Factory
	sys := r1cs.New(f, r1cs.Config{})

	release := sys.BorrowMut()
	defer release()

	require.Panics(t, func() {
		_ = sys.BorrowMut()
	})
}

func TestOutlineLCsNotImplemented(t *testing.T) {
	sys := r1cs.New(field.BN254Factory, r1cs.Config{})
	require.ErrorIs(t, sys.OutlineLCs(), r1cs.ErrNotImplemented)
}

func TestNoneHandleFailsLoudly(t *testing.T) {
	h := r1cs.NoneHandle()
	require.True(t, h.IsNone())
	_, err := h.NewWitnessVariable(func() (field.Element, error) { return nil, nil })
	require.ErrorIs(t, err, r1cs.ErrMissingCS)
}
