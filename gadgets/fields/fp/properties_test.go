package fp_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/r1cs"
)

// TestSquareMatchesExpansionLaw checks spec §8's universal field-var
// law (x+y)^2 == x^2 + 2xy + y^2 for arbitrary witnessed x, y, the way
// r1cs/properties_test.go checks the inlining-idempotence property for
// the core itself.
func TestSquareMatchesExpansionLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("(x+y)^2 == x^2 + 2xy + y^2", prop.ForAll(
		func(xi, yi int64) bool {
			f := field.BN254Factory
			sys := r1cs.New(f, r1cs.Config{})
			h := r1cs.NewHandle(sys)

			x, err := fp.NewWitness(h, func() (field.Element, error) { return f.FromInt64(xi), nil })
			if err != nil {
				return false
			}
			y, err := fp.NewWitness(h, func() (field.Element, error) { return f.FromInt64(yi), nil })
			if err != nil {
				return false
			}

			lhs, err := x.Add(y).Square()
			if err != nil {
				return false
			}

			x2, err := x.Square()
			if err != nil {
				return false
			}
			xy, err := fp.Mul(x, y)
			if err != nil {
				return false
			}
			y2, err := y.Square()
			if err != nil {
				return false
			}
			rhs := x2.Add(xy.Double()).Add(y2)

			if err := fp.ConditionalEnforceEqual(h, lhs, rhs, fp.One(f)); err != nil {
				return false
			}

			satisfied, err := sys.IsSatisfied()
			return err == nil && satisfied
		},
		gen.Int64Range(-1000, 1000),
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

// TestMulIsCommutative checks x*y == y*x for arbitrary witnessed x, y.
func TestMulIsCommutative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("x*y == y*x", prop.ForAll(
		func(xi, yi int64) bool {
			f := field.BN254Factory
			sys := r1cs.New(f, r1cs.Config{})
			h := r1cs.NewHandle(sys)

			x, err := fp.NewWitness(h, func() (field.Element, error) { return f.FromInt64(xi), nil })
			if err != nil {
				return false
			}
			y, err := fp.NewWitness(h, func() (field.Element, error) { return f.FromInt64(yi), nil })
			if err != nil {
				return false
			}

			xy, err := fp.Mul(x, y)
			if err != nil {
				return false
			}
			yx, err := fp.Mul(y, x)
			if err != nil {
				return false
			}
			if err := fp.ConditionalEnforceEqual(h, xy, yx, fp.One(f)); err != nil {
				return false
			}

			satisfied, err := sys.IsSatisfied()
			return err == nil && satisfied
		},
		gen.Int64Range(-1000, 1000),
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
