package r1cs

import "fmt"

// Kind tags a Variable's role. The zero value is not a valid Kind; use
// the exported constructors (One, Zero, Instance, Witness, SymbolicLC)
// rather than building a Variable literal.
type Kind uint8

const (
	kindInvalid Kind = iota
	kindOne
	kindZero
	kindInstance
	kindWitness
	kindSymbolicLC
)

// Variable is a tagged identifier: the universal constants One and Zero,
// the i-th public input, the i-th private witness, or a reference to an
// already-registered LinearCombination. Variables are cheap, comparable
// values; they carry no field data themselves.
type Variable struct {
	kind  Kind
	index int
}

// One is the constant 1. It is a universal constant, not an arena entry:
// allocating it never touches instance_assignment.
var One = Variable{kind: kindOne}

// ZeroVar is the constant 0. Like One it is universal and never touches
// the arena.
var ZeroVar = Variable{kind: kindZero}

// Instance returns the variable identifying the i-th public input.
// Index 0 is reserved for One and is always assigned the field one; the
// arena itself never hands out Instance(0) through NewInputVariable.
func Instance(i int) Variable { return Variable{kind: kindInstance, index: i} }

// Witness returns the variable identifying the i-th private input.
func Witness(i int) Variable { return Variable{kind: kindWitness, index: i} }

// SymbolicLC returns the variable referencing the linear combination
// registered under LcIndex k.
func SymbolicLC(k LcIndex) Variable { return Variable{kind: kindSymbolicLC, index: int(k)} }

func (v Variable) IsOne() bool      { return v.kind == kindOne }
func (v Variable) IsZero() bool     { return v.kind == kindZero }
func (v Variable) IsInstance() bool { return v.kind == kindInstance }
func (v Variable) IsWitness() bool  { return v.kind == kindWitness }
func (v Variable) IsSymbolic() bool { return v.kind == kindSymbolicLC }

// Index returns the underlying instance/witness/symbolic-LC index. It
// panics if called on One or Zero, which carry no index.
func (v Variable) Index() int {
	if v.kind == kindOne || v.kind == kindZero {
		panic("r1cs: Variable.Index called on a constant variable")
	}
	return v.index
}

// LcIndex returns the LcIndex a SymbolicLC variable refers to. It panics
// if v is not symbolic.
func (v Variable) LcIndex() LcIndex {
	if v.kind != kindSymbolicLC {
		panic("r1cs: Variable.LcIndex called on a non-symbolic variable")
	}
	return LcIndex(v.index)
}

func (v Variable) String() string {
	switch v.kind {
	case kindOne:
		return "One"
	case kindZero:
		return "Zero"
	case kindInstance:
		return fmt.Sprintf("Instance(%d)", v.index)
	case kindWitness:
		return fmt.Sprintf("Witness(%d)", v.index)
	case kindSymbolicLC:
		return fmt.Sprintf("SymbolicLc(%d)", v.index)
	default:
		return "Variable(invalid)"
	}
}
