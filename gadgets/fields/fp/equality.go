package fp

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/bits"
	"github.com/arkzk/r1cs-core/r1cs"
)

// IsEqual returns a bits.Boolean that is true exactly when v==w, via the
// standard is-zero-of-a-difference gadget applied to diff := v-w: a
// witness z claims diff==0, a second witness multiplier m backs that
// claim up with diff*m == 1-z, and diff*z == 0 rules out m and z both
// being inconsistent (z=1 with diff nonzero). Three constraints total:
// one for z's booleanness (inside bits.NewWitness) and one each for the
// two enforced products.
func IsEqual(v, w Var) (bits.Boolean, error) {
	h := r1cs.Merge(v.h, w.h)
	f := h.Factory()
	diff := v.Sub(w)

	diffVal, err := diff.Value()
	if err != nil {
		return bits.Boolean{}, err
	}
	isZero := diffVal.IsZero()

	z, err := bits.NewWitness(h, func() (bool, error) { return isZero, nil })
	if err != nil {
		return bits.Boolean{}, err
	}

	var multVal field.Element
	if isZero {
		multVal = f.Zero()
	} else {
		inv, _ := diffVal.Inverse()
		multVal = inv
	}
	multiplier, err := NewWitness(h, func() (field.Element, error) { return multVal, nil })
	if err != nil {
		return bits.Boolean{}, err
	}

	// diff * z == 0
	zeroLC := h.LinearCombination()
	if err := h.EnforceConstraint(diff.asLC(h), z.LC(h), zeroLC); err != nil {
		return bits.Boolean{}, err
	}

	// diff * multiplier == 1 - z
	oneMinusZ := h.LinearCombination()
	oneMinusZ.Add(f.One(), r1cs.One)
	oneMinusZ.Concat(z.LC(h).Scale(f.FromInt64(-1)))
	oneMinusZ.Compactify()
	if err := h.EnforceConstraint(diff.asLC(h), multiplier.asLC(h), oneMinusZ); err != nil {
		return bits.Boolean{}, err
	}

	return z, nil
}
