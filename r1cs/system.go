package r1cs

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/internal/obslog"
)

// System is the mutable arena a circuit and its gadgets write into: it
// accumulates variables, symbolic linear combinations, and constraints,
// tracks nested naming scopes, and — once synthesis is complete — can
// emit sparse A/B/C matrices or report satisfaction.
//
// A System is driven from one goroutine at a time (see Handle); it is
// not safe to share across threads without external synchronization.
type System struct {
	factory field.Factory
	mode    Mode

	numInstanceVariables int
	numWitnessVariables  int
	numConstraints       int

	instanceAssignment []field.Element
	witnessAssignment  []field.Element

	// lcMap is indexed directly by LcIndex: LcIndex is dense and
	// monotonically increasing, so a slice is both the simplest and the
	// fastest representation — no hashing, and insertion order falls out
	// of the index for free.
	lcMap []*LinearCombination

	aConstraints []LcIndex
	bConstraints []LcIndex
	cConstraints []LcIndex

	constraintNames []string

	namespaceStack       []string
	currentNamespacePath string

	lcAssignmentCache map[LcIndex]field.Element

	log zerolog.Logger

	// exclusive and sharedN implement the runtime-checked borrow
	// discipline of §4.2/§5: at most one exclusive (mutating) borrow may
	// be outstanding, it excludes every shared borrow and vice versa,
	// and attempting to violate this is a programmer error that must
	// fail loudly rather than silently corrupt state.
	exclusive bool
	sharedN   int
}

// BorrowMut acquires the exclusive borrow used by every mutating
// operation. It panics if any borrow (exclusive or shared) is already
// outstanding. The returned func releases the borrow; callers should
// defer it.
func (s *System) BorrowMut() func() {
	if s.exclusive {
		panic("r1cs: re-entrant exclusive borrow of System")
	}
	if s.sharedN > 0 {
		panic("r1cs: exclusive borrow of System while a shared borrow is outstanding")
	}
	s.exclusive = true
	return func() { s.exclusive = false }
}

// Borrow acquires a shared (read-only) borrow. Concurrent shared borrows
// are permitted; it panics if an exclusive borrow is outstanding.
func (s *System) Borrow() func() {
	if s.exclusive {
		panic("r1cs: shared borrow of System while an exclusive borrow is outstanding")
	}
	s.sharedN++
	return func() { s.sharedN-- }
}

// New constructs an empty System. instance_assignment[0] is reserved for
// the constant One and, in proving mode, immediately set to the field
// one, per spec's invariant that instance_assignment[0] == 1 whenever
// assignments are populated.
func New(factory field.Factory, cfg Config) *System {
	s := &System{
		factory:              factory,
		mode:                 cfg.resolveMode(),
		numInstanceVariables: 1,
	}
	if !s.mode.IsSetup() {
		s.instanceAssignment = append(s.instanceAssignment, factory.One())
	}
	if cfg.Log {
		s.log = obslog.SessionLogger()
	}
	return s
}

// Mode reports the System's current synthesis mode.
func (s *System) Mode() Mode { return s.mode }

// ShouldConstructMatrices delegates to the current Mode.
func (s *System) ShouldConstructMatrices() bool { return s.mode.ShouldConstructMatrices() }

// NumInstanceVariables, NumWitnessVariables, NumConstraints, and
// NumLinearCombinations report the arena's monotonically increasing
// counters.
func (s *System) NumInstanceVariables() int  { return s.numInstanceVariables }
func (s *System) NumWitnessVariables() int   { return s.numWitnessVariables }
func (s *System) NumConstraints() int        { return s.numConstraints }
func (s *System) NumLinearCombinations() int { return len(s.lcMap) }

// CurrentNamespacePath returns the "/"-joined namespace stack.
func (s *System) CurrentNamespacePath() string { return s.currentNamespacePath }

// ConstraintName returns the fully qualified name recorded for the i-th
// enforced constraint, in insertion order.
func (s *System) ConstraintName(i int) string { return s.constraintNames[i] }

func (s *System) withMutation(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			panic(fmt.Sprintf("r1cs: %v (during %s)", r, op))
		}
	}()
	release := s.BorrowMut()
	defer release()
	return fn()
}

// NewInputVariable allocates a fresh public-input variable. f is
// evaluated only outside Setup mode; if it fails there, the failure is
// wrapped in ErrAssignmentMissing.
func (s *System) NewInputVariable(f func() (field.Element, error)) (Variable, error) {
	var v Variable
	err := s.withMutation("NewInputVariable", func() error {
		idx := s.numInstanceVariables
		s.numInstanceVariables++
		if !s.mode.IsSetup() {
			val, err := f()
			if err != nil {
				return fmt.Errorf("%w: input %d: %v", ErrAssignmentMissing, idx, err)
			}
			s.instanceAssignment = append(s.instanceAssignment, val)
		}
		v = Instance(idx)
		return nil
	})
	return v, err
}

// NewWitnessVariable allocates a fresh private-witness variable,
// analogous to NewInputVariable.
func (s *System) NewWitnessVariable(f func() (field.Element, error)) (Variable, error) {
	var v Variable
	err := s.withMutation("NewWitnessVariable", func() error {
		idx := s.numWitnessVariables
		s.numWitnessVariables++
		if !s.mode.IsSetup() {
			val, err := f()
			if err != nil {
				return fmt.Errorf("%w: witness %d: %v", ErrAssignmentMissing, idx, err)
			}
			s.witnessAssignment = append(s.witnessAssignment, val)
		}
		v = Witness(idx)
		return nil
	})
	return v, err
}

// NewLC registers lc under a fresh LcIndex and returns the SymbolicLC
// variable referencing it. Registration happens unconditionally, in
// every mode.
func (s *System) NewLC(lc *LinearCombination) Variable {
	var v Variable
	_ = s.withMutation("NewLC", func() error {
		idx := LcIndex(len(s.lcMap))
		s.lcMap = append(s.lcMap, lc)
		v = SymbolicLC(idx)
		return nil
	})
	return v
}

// EnforceConstraint enforces a*b == c under an automatically generated
// local name (the decimal string of the constraint's index).
func (s *System) EnforceConstraint(a, b, c *LinearCombination) error {
	return s.EnforceNamedConstraint(strconv.Itoa(s.numConstraints), a, b, c)
}

// EnforceNamedConstraint enforces a*b == c, recording it under
// CurrentNamespacePath() + "/" + name. If the current mode constructs
// matrices, a, b, c are appended to the LC map (as NewLC does, but
// inside this call's own borrow) and their indices recorded;
// num_constraints and constraint_names always advance regardless.
func (s *System) EnforceNamedConstraint(name string, a, b, c *LinearCombination) error {
	return s.withMutation("EnforceNamedConstraint", func() error {
		if s.mode.ShouldConstructMatrices() {
			aIdx := LcIndex(len(s.lcMap))
			s.lcMap = append(s.lcMap, a, b, c)
			s.aConstraints = append(s.aConstraints, aIdx)
			s.bConstraints = append(s.bConstraints, aIdx+1)
			s.cConstraints = append(s.cConstraints, aIdx+2)
		}
		full := name
		if s.currentNamespacePath != "" {
			full = s.currentNamespacePath + "/" + name
		}
		s.constraintNames = append(s.constraintNames, full)
		s.numConstraints++
		if s.log.GetLevel() != zerolog.Disabled {
			s.log.Trace().Str("constraint", full).Int("index", s.numConstraints-1).Msg("enforced")
		}
		return nil
	})
}

func (s *System) pushNamespace(name string) {
	s.namespaceStack = append(s.namespaceStack, name)
	s.recomputeNamespacePath()
}

func (s *System) popNamespace() {
	if len(s.namespaceStack) == 0 {
		return
	}
	s.namespaceStack = s.namespaceStack[:len(s.namespaceStack)-1]
	s.recomputeNamespacePath()
}

func (s *System) recomputeNamespacePath() {
	path := ""
	for i, seg := range s.namespaceStack {
		if i > 0 {
			path += "/"
		}
		path += seg
	}
	s.currentNamespacePath = path
}

// InlineAllLCs performs a single forward pass over lcMap, substituting
// every SymbolicLC term with its already-inlined referent scaled by the
// term's coefficient. This relies on the DAG invariant (every LC only
// references previously registered indices) rather than a topological
// sort. After this call no LC in lcMap contains a symbolic term, and
// running it again is a no-op.
func (s *System) InlineAllLCs() error {
	return s.withMutation("InlineAllLCs", func() error {
		inlined := make([]*LinearCombination, len(s.lcMap))
		for i, lc := range s.lcMap {
			out := NewLinearCombination(s.factory)
			for _, t := range lc.Terms() {
				if t.Variable.IsSymbolic() {
					ref := t.Variable.LcIndex()
					if int(ref) >= i {
						return fmt.Errorf("%w: LC %d references LC %d out of order", ErrUnsatisfiable, i, ref)
					}
					out.Concat(inlined[ref].Scale(t.Coeff))
				} else {
					out.Add(t.Coeff, t.Variable)
				}
			}
			out.Compactify()
			inlined[i] = out
		}
		s.lcMap = inlined
		return nil
	})
}

// OutlineLCs is left unimplemented, per spec §9's explicit allowance:
// materializing each multiply-referenced symbolic LC as a fresh witness
// plus an equality constraint is optional, and no other operation in
// this core depends on it.
func (s *System) OutlineLCs() error {
	return ErrNotImplemented
}

// AssignedValue resolves v to its field value. SymbolicLC values consult
// lcAssignmentCache, populating it on miss; the cache is the only
// interior-mutable state touched by an otherwise read-only traversal.
func (s *System) AssignedValue(v Variable) (field.Element, error) {
	switch {
	case v.IsOne():
		return s.factory.One(), nil
	case v.IsZero():
		return s.factory.Zero(), nil
	case v.IsInstance():
		idx := v.Index()
		if idx >= len(s.instanceAssignment) {
			return nil, fmt.Errorf("%w: instance %d", ErrAssignmentMissing, idx)
		}
		return s.instanceAssignment[idx], nil
	case v.IsWitness():
		idx := v.Index()
		if idx >= len(s.witnessAssignment) {
			return nil, fmt.Errorf("%w: witness %d", ErrAssignmentMissing, idx)
		}
		return s.witnessAssignment[idx], nil
	case v.IsSymbolic():
		k := v.LcIndex()
		if s.lcAssignmentCache == nil {
			s.lcAssignmentCache = make(map[LcIndex]field.Element)
		}
		if cached, ok := s.lcAssignmentCache[k]; ok {
			return cached, nil
		}
		if int(k) >= len(s.lcMap) {
			return nil, fmt.Errorf("%w: LC %d", ErrAssignmentMissing, k)
		}
		sum := s.factory.Zero()
		for _, t := range s.lcMap[k].Terms() {
			val, err := s.AssignedValue(t.Variable)
			if err != nil {
				return nil, err
			}
			sum = sum.Add(t.Coeff.Mul(val))
		}
		s.lcAssignmentCache[k] = sum
		return sum, nil
	default:
		return nil, fmt.Errorf("%w: invalid variable", ErrUnsatisfiable)
	}
}

func (s *System) evalLC(idx LcIndex) (field.Element, error) {
	return s.AssignedValue(SymbolicLC(idx))
}

// EvalLinearCombination evaluates an arbitrary, possibly unregistered
// LinearCombination directly, without interning it via NewLC. Gadgets
// use this to recover a Var's current value without polluting lc_map
// with bookkeeping entries that exist only for local evaluation.
func (s *System) EvalLinearCombination(lc *LinearCombination) (field.Element, error) {
	sum := s.factory.Zero()
	for _, t := range lc.Terms() {
		val, err := s.AssignedValue(t.Variable)
		if err != nil {
			return nil, err
		}
		sum = sum.Add(t.Coeff.Mul(val))
	}
	return sum, nil
}

// IsSatisfied reports whether every constraint holds under the current
// assignment. It is undefined (returns an error) in Setup mode, where
// there is no assignment to check.
func (s *System) IsSatisfied() (bool, error) {
	name, unsatisfied, err := s.WhichIsUnsatisfied()
	if err != nil {
		return false, err
	}
	_ = name
	return !unsatisfied, nil
}

// WhichIsUnsatisfied returns the fully qualified name of the first
// (lowest index) unsatisfied constraint, by insertion order, along with
// whether any constraint failed. It is undefined in Setup mode.
func (s *System) WhichIsUnsatisfied() (name string, unsatisfied bool, err error) {
	if s.mode.IsSetup() {
		return "", false, fmt.Errorf("%w: IsSatisfied is undefined in Setup mode", ErrAssignmentMissing)
	}
	for i := 0; i < len(s.aConstraints); i++ {
		av, err := s.evalLC(s.aConstraints[i])
		if err != nil {
			return "", false, err
		}
		bv, err := s.evalLC(s.bConstraints[i])
		if err != nil {
			return "", false, err
		}
		cv, err := s.evalLC(s.cConstraints[i])
		if err != nil {
			return "", false, err
		}
		if !av.Mul(bv).Equal(cv) {
			return s.constraintNames[i], true, nil
		}
	}
	return "", false, nil
}

// Factory returns the field.Factory this System was constructed with,
// so gadgets can build new Elements without capturing it separately.
func (s *System) Factory() field.Factory { return s.factory }
