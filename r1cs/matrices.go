package r1cs

import (
	"sort"

	"github.com/blang/semver/v4"
	"github.com/ronanh/intcomp"

	"github.com/arkzk/r1cs-core/field"
)

// FormatVersion is stamped on every ConstraintMatrices this core emits,
// so a consuming backend can reject matrices produced by an
// incompatible version of the core.
var FormatVersion = semver.MustParse("1.0.0")

// Entry is one non-zero (coefficient, column) pair of a sparse row.
// Column 0 is reserved for the constant One; columns
// [1, num_instance_variables) hold public inputs; columns
// [num_instance_variables, num_instance_variables+num_witness_variables)
// hold witnesses.
type Entry struct {
	Coeff  field.Element
	Column int
}

// Row is a sparse matrix row: a sequence of non-zero entries. Ordering
// within a row matches the underlying LC's insertion order after
// inlining and compactification; rows across the matrix are not sorted
// relative to each other.
type Row []Entry

// ConstraintMatrices is the immutable record this core emits for a
// backend to consume.
type ConstraintMatrices struct {
	FormatVersion semver.Version

	NumInstanceVariables int
	NumWitnessVariables  int
	NumConstraints       int

	ANumNonZero int
	BNumNonZero int
	CNumNonZero int

	A, B, C []Row
}

// CompressedColumns packs row's column indices (sorted ascending) using
// ronanh/intcomp's integer compression, for a backend that wants to
// transmit ConstraintMatrices out-of-process. This is the matrices' wire
// representation, not constraint-system-state persistence (which spec's
// Non-goals exclude).
func (r Row) CompressedColumns() []uint32 {
	cols := make([]uint32, len(r))
	for i, e := range r {
		cols[i] = uint32(e.Column)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	return intcomp.CompressUint32(cols, nil)
}

// columnOf maps a Variable to its dense matrix column. Zero and any
// remaining SymbolicLc are programmer errors: ToMatrices must only run
// after InlineAllLCs, which removes every symbolic term, and Zero never
// legitimately appears as a nonzero-coefficient term (its value is
// always 0, so compactify already drops it).
func (s *System) columnOf(v Variable) int {
	switch {
	case v.IsOne():
		return 0
	case v.IsInstance():
		return v.Index()
	case v.IsWitness():
		return s.numInstanceVariables + v.Index()
	default:
		panic("r1cs: ToMatrices: term references " + v.String() + " after inlining; this is a programmer error")
	}
}

func (s *System) lcToRow(idx LcIndex) Row {
	lc := s.lcMap[idx]
	row := make(Row, 0, len(lc.Terms()))
	for _, t := range lc.Terms() {
		if t.Coeff.IsZero() {
			continue
		}
		row = append(row, Entry{Coeff: t.Coeff, Column: s.columnOf(t.Variable)})
	}
	return row
}

// ToMatrices emits the sparse A/B/C matrices. Defined only when the
// System's mode constructs matrices (true in Setup, and in
// Prove{ConstructMatrices:true}).
//
// The source this core was distilled from gated this on
// mode==Prove{ConstructMatrices:false} — the opposite of what its own
// surrounding comments implied. This is a fixed bug, not a faithful
// reproduction: emission is gated on ShouldConstructMatrices() here.
func (s *System) ToMatrices() (*ConstraintMatrices, error) {
	if !s.mode.ShouldConstructMatrices() {
		return nil, errConstructMatricesDisabled
	}
	m := &ConstraintMatrices{
		FormatVersion:        FormatVersion,
		NumInstanceVariables: s.numInstanceVariables,
		NumWitnessVariables:  s.numWitnessVariables,
		NumConstraints:       s.numConstraints,
		A:                    make([]Row, len(s.aConstraints)),
		B:                    make([]Row, len(s.bConstraints)),
		C:                    make([]Row, len(s.cConstraints)),
	}
	for i := range s.aConstraints {
		m.A[i] = s.lcToRow(s.aConstraints[i])
		m.B[i] = s.lcToRow(s.bConstraints[i])
		m.C[i] = s.lcToRow(s.cConstraints[i])
		m.ANumNonZero += len(m.A[i])
		m.BNumNonZero += len(m.B[i])
		m.CNumNonZero += len(m.C[i])
	}
	return m, nil
}
