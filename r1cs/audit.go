package r1cs

import "github.com/bits-and-blooms/bitset"

// UnconstrainedVariables scans every A/B/C constraint (after inlining)
// and reports every Instance/Witness index that never appears in any
// constraint's flattened term list. This is purely diagnostic — it does
// not change satisfiability — and mirrors the unconstrained-wire audit
// gnark's own compiler performs (checkVariables) before handing a
// circuit to a backend.
//
// Callers should run InlineAllLCs first: until symbolic references are
// flattened, a variable used only inside a not-yet-inlined LC reference
// would be reported as unconstrained even though it is reachable.
func (s *System) UnconstrainedVariables() []Variable {
	seenInstance := bitset.New(uint(max(s.numInstanceVariables, 1)))
	seenWitness := bitset.New(uint(max(s.numWitnessVariables, 1)))

	mark := func(v Variable) {
		switch {
		case v.IsInstance():
			seenInstance.Set(uint(v.Index()))
		case v.IsWitness():
			seenWitness.Set(uint(v.Index()))
		}
	}

	for _, idx := range s.aConstraints {
		for _, t := range s.lcMap[idx].Terms() {
			mark(t.Variable)
		}
	}
	for _, idx := range s.bConstraints {
		for _, t := range s.lcMap[idx].Terms() {
			mark(t.Variable)
		}
	}
	for _, idx := range s.cConstraints {
		for _, t := range s.lcMap[idx].Terms() {
			mark(t.Variable)
		}
	}

	var out []Variable
	// Index 0 of instance variables is always One, not a real allocated
	// input, so the scan starts at 1.
	for i := 1; i < s.numInstanceVariables; i++ {
		if !seenInstance.Test(uint(i)) {
			out = append(out, Instance(i))
		}
	}
	for i := 0; i < s.numWitnessVariables; i++ {
		if !seenWitness.Test(uint(i)) {
			out = append(out, Witness(i))
		}
	}
	return out
}
