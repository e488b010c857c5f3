package r1cs

import (
	"golang.org/x/exp/slices"

	"github.com/arkzk/r1cs-core/field"
)

// LcIndex is a dense, monotonically increasing identifier assigned to a
// LinearCombination on registration via System.NewLC.
type LcIndex int

// Term is one (coefficient, Variable) pair of a LinearCombination.
type Term struct {
	Coeff    field.Element
	Variable Variable
}

// LinearCombination is a sparse sum of (coefficient, Variable) pairs
// over a field F. It may reference other LinearCombinations through
// SymbolicLC variables, making it "symbolic"; System.InlineAllLCs
// removes every such reference.
type LinearCombination struct {
	factory field.Factory
	terms   []Term
}

// NewLinearCombination returns an empty linear combination over the
// field produced by factory.
func NewLinearCombination(factory field.Factory) *LinearCombination {
	return &LinearCombination{factory: factory}
}

// Add appends coeff*variable as a new term. It does not compactify; call
// Compactify explicitly (System.NewLC does this for you).
func (lc *LinearCombination) Add(coeff field.Element, v Variable) *LinearCombination {
	lc.terms = append(lc.terms, Term{Coeff: coeff, Variable: v})
	return lc
}

// Concat appends every term of other to lc, without compactifying.
func (lc *LinearCombination) Concat(other *LinearCombination) *LinearCombination {
	lc.terms = append(lc.terms, other.terms...)
	return lc
}

// Scale returns a new LinearCombination with every coefficient
// multiplied by s; lc is left unmodified.
func (lc *LinearCombination) Scale(s field.Element) *LinearCombination {
	out := &LinearCombination{factory: lc.factory, terms: make([]Term, len(lc.terms))}
	for i, t := range lc.terms {
		out.terms[i] = Term{Coeff: t.Coeff.Mul(s), Variable: t.Variable}
	}
	return out
}

// Terms returns the current term list. Callers must not mutate the
// returned slice.
func (lc *LinearCombination) Terms() []Term { return lc.terms }

// IsSymbolic reports whether lc still contains a SymbolicLC term.
func (lc *LinearCombination) IsSymbolic() bool {
	for _, t := range lc.terms {
		if t.Variable.IsSymbolic() {
			return true
		}
	}
	return false
}

// variableKey orders variables for compactify's sort: constants first,
// then instances, then witnesses, then symbolic references, each
// grouped by index. This only needs to be a total order, not any
// particular one — it exists so that equal variables sort adjacent.
func variableKey(v Variable) (int, int) {
	return int(v.kind), v.index
}

// Compactify sorts terms by variable identity and sums duplicate
// coefficients, dropping any term whose summed coefficient is zero. It
// returns lc for chaining.
func (lc *LinearCombination) Compactify() *LinearCombination {
	if len(lc.terms) == 0 {
		return lc
	}
	slices.SortStableFunc(lc.terms, func(a, b Term) int {
		ak1, ak2 := variableKey(a.Variable)
		bk1, bk2 := variableKey(b.Variable)
		if ak1 != bk1 {
			return ak1 - bk1
		}
		return ak2 - bk2
	})

	out := make([]Term, 0, len(lc.terms))
	i := 0
	for i < len(lc.terms) {
		j := i + 1
		sum := lc.terms[i].Coeff
		for j < len(lc.terms) && lc.terms[j].Variable == lc.terms[i].Variable {
			sum = sum.Add(lc.terms[j].Coeff)
			j++
		}
		if !sum.IsZero() {
			out = append(out, Term{Coeff: sum, Variable: lc.terms[i].Variable})
		}
		i = j
	}
	lc.terms = out
	return lc
}

// Clone returns a deep-enough copy (the term slice is copied; Element
// values are treated as immutable and shared).
func (lc *LinearCombination) Clone() *LinearCombination {
	out := &LinearCombination{factory: lc.factory, terms: make([]Term, len(lc.terms))}
	copy(out.terms, lc.terms)
	return out
}
