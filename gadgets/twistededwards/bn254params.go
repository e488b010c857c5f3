package twistededwards

import (
	"math/big"

	"github.com/arkzk/r1cs-core/field"
)

// BN254Params is the concrete curve parameter set of SPEC_FULL.md
// §4.6B: the Baby Jubjub twisted-Edwards curve, defined over BN254's
// scalar field — the conventional "embedded curve" used for in-SNARK
// signature verification — giving every group-gadget law in spec §8 a
// curve to actually run against.
//
//	a·x²+y² = 1 + d·x²·y²,  a = 168700,  d = 168696
//	Montgomery form: B·v² = u³+A·u²+u,  A = 168698,  B = 1
//	cofactor = 8,  prime subgroup order r (251 bits)
//	generator: a point of order r (eight times the full group's generator)
func BN254Params(f field.Factory) *Params {
	bi := func(s string) field.Element {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			panic("twistededwards: malformed BN254Params constant: " + s)
		}
		return f.FromBigInt(v)
	}

	order := "2736030358979909402780800718157159386076813972158567259200215660948447373041"
	return &Params{
		F:           f,
		A:           bi("168700"),
		D:           bi("168696"),
		MontgomeryA: bi("168698"),
		MontgomeryB: f.One(),
		Cofactor:    8,
		CofactorBits: []bool{
			false, false, false, true, // 8 little-endian
		},
		Order:      bigIntBitsLE(order),
		GeneratorX: bi("5299619240641551281634865583518297030282874472190772894086521144482721001553"),
		GeneratorY: bi("16950150798460657717958625567821834550301663161624707787222815936182638968203"),
	}
}

func bigIntBitsLE(decimal string) []bool {
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		panic("twistededwards: malformed BN254Params order constant")
	}
	out := make([]bool, v.BitLen())
	for i := range out {
		out[i] = v.Bit(i) == 1
	}
	return out
}
