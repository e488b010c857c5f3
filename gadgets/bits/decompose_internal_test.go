package bits

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/r1cs"
)

// TestAssertLessThanModulusRejectsTheModulusItself directly exercises
// assertLessThanModulus (decompose.go's range-check branch) against a
// hand-built bit vector equal to the modulus: the modulus itself is not
// a valid canonical field element, so this must be rejected even though
// every individual bit is well-formed.
func TestAssertLessThanModulusRejectsTheModulusItself(t *testing.T) {
	f := field.BN254Factory
	sys := r1cs.New(f, r1cs.Config{})
	h := r1cs.NewHandle(sys)

	modulus := f.Modulus()
	numBits := modulus.BitLen()
	bs := make([]Boolean, numBits)
	for i := 0; i < numBits; i++ {
		bs[i] = NewConstant(modulus.Bit(i) == 1)
	}

	err := assertLessThanModulus(h, bs)
	require.Error(t, err)
}

// TestAssertLessThanModulusAcceptsModulusMinusOne checks the boundary
// case directly succeeds: modulus-1 is the largest canonical value.
func TestAssertLessThanModulusAcceptsModulusMinusOne(t *testing.T) {
	f := field.BN254Factory
	sys := r1cs.New(f, r1cs.Config{})
	h := r1cs.NewHandle(sys)

	modulus := f.Modulus()
	numBits := modulus.BitLen()
	value := new(big.Int).Sub(modulus, big.NewInt(1))
	bs := make([]Boolean, numBits)
	for i := 0; i < numBits; i++ {
		bs[i] = NewConstant(value.Bit(i) == 1)
	}

	require.NoError(t, assertLessThanModulus(h, bs))
}
