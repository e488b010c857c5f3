// Package twistededwards implements the group-variable gadget of spec
// §4.6: AffineVar over a·x²+y² = 1+d·x²·y², plus a Montgomery
// intermediate representation used by the windowed scalar-multiplication
// strategies. Grounded on
// original_source/r1cs-std/src/groups/curves/twisted_edwards/mod.rs.
package twistededwards

import "github.com/arkzk/r1cs-core/field"

// Params fixes one twisted-Edwards curve over the constraint field: the
// curve coefficients a, d, its Montgomery-model coefficients A, B (used
// by the birational map), the cofactor, and the prime subgroup order r.
// Concrete curves (e.g. bn254params) supply one of these.
type Params struct {
	F            field.Factory
	A, D         field.Element
	MontgomeryA  field.Element
	MontgomeryB  field.Element
	Cofactor     uint64
	CofactorBits []bool // little-endian bits of Cofactor
	Order        []bool // little-endian bits of the prime subgroup order r
	GeneratorX   field.Element
	GeneratorY   field.Element
}
