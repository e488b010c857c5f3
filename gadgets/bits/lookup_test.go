package bits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/bits"
)

func tableOf(vs [4]int64) [4]field.Element {
	f := field.BN254Factory
	var out [4]field.Element
	for i, v := range vs {
		out[i] = f.FromInt64(v)
	}
	return out
}

// TestTwoBitLookupSelectsEveryEntry checks table[sel1*2+sel0] for all
// four selector combinations.
func TestTwoBitLookupSelectsEveryEntry(t *testing.T) {
	table := tableOf([4]int64{10, 20, 30, 40})

	for idx := 0; idx < 4; idx++ {
		s0v := idx&1 == 1
		s1v := idx&2 == 2

		h := newHandle(t)
		s0, err := bits.NewWitness(h, func() (bool, error) { return s0v, nil })
		require.NoError(t, err)
		s1, err := bits.NewWitness(h, func() (bool, error) { return s1v, nil })
		require.NoError(t, err)

		out, err := bits.TwoBitLookup(h, [2]bits.Boolean{s0, s1}, table)
		require.NoError(t, err)

		got, err := h.AssignedValue(out)
		require.NoError(t, err)
		want := field.BN254Factory.FromInt64([]int64{10, 20, 30, 40}[idx])
		require.True(t, got.Equal(want))

		sys, err := h.System()
		require.NoError(t, err)
		ok, err := sys.IsSatisfied()
		require.NoError(t, err)
		require.True(t, ok)
	}
}

// TestTwoBitLookupCostsOneConstraint checks the doc comment's claim: the
// only nonlinear term is the sel0*sel1 cross product inside And, so the
// whole gadget costs exactly one constraint (And's), none from folding
// the result back into an LC via h.NewLC.
func TestTwoBitLookupCostsOneConstraint(t *testing.T) {
	table := tableOf([4]int64{1, 2, 3, 4})
	h := newHandle(t)
	s0, err := bits.NewWitness(h, func() (bool, error) { return true, nil })
	require.NoError(t, err)
	s1, err := bits.NewWitness(h, func() (bool, error) { return false, nil })
	require.NoError(t, err)

	sysBefore, err := h.System()
	require.NoError(t, err)
	before := sysBefore.NumConstraints()

	_, err = bits.TwoBitLookup(h, [2]bits.Boolean{s0, s1}, table)
	require.NoError(t, err)

	sysAfter, err := h.System()
	require.NoError(t, err)
	require.Equal(t, 1, sysAfter.NumConstraints()-before)
}

func TestThreeBitCondNegLookupNegatesOnSignBit(t *testing.T) {
	table := tableOf([4]int64{5, 6, 7, 8})
	h := newHandle(t)
	s0, err := bits.NewWitness(h, func() (bool, error) { return false, nil })
	require.NoError(t, err)
	s1, err := bits.NewWitness(h, func() (bool, error) { return true, nil })
	require.NoError(t, err)
	sign, err := bits.NewWitness(h, func() (bool, error) { return true, nil })
	require.NoError(t, err)

	out, err := bits.ThreeBitCondNegLookup(h, [3]bits.Boolean{s0, s1, sign}, table)
	require.NoError(t, err)

	got, err := h.AssignedValue(out)
	require.NoError(t, err)
	want := field.BN254Factory.FromInt64(7).Neg()
	require.True(t, got.Equal(want))

	sys, err := h.System()
	require.NoError(t, err)
	ok, err := sys.IsSatisfied()
	require.NoError(t, err)
	require.True(t, ok)
}
