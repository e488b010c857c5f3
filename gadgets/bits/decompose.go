package bits

import (
	"math/big"

	"github.com/arkzk/r1cs-core/r1cs"
)

// ToNonUniqueBits decomposes valueLC into numBits little-endian
// Booleans, enforcing booleanness (one constraint per bit, inside
// NewWitness) and correct reconstruction (one further constraint:
// Σ bit_i·2^i == valueLC). It does not guard against a bit pattern that
// wraps past the field modulus back to the same value — two distinct
// bit patterns may denote the same field element when numBits is at
// least the modulus' bit length.
func ToNonUniqueBits(h r1cs.Handle, valueLC *r1cs.LinearCombination, numBits int) ([]Boolean, error) {
	f := h.Factory()
	value, err := h.EvalLinearCombination(valueLC)
	if err != nil {
		return nil, err
	}
	bi := value.BigInt()

	out := make([]Boolean, numBits)
	reconstruction := h.LinearCombination()
	pow := big.NewInt(1)
	for i := 0; i < numBits; i++ {
		bitIdx := i
		bit, err := NewWitness(h, func() (bool, error) { return bi.Bit(bitIdx) == 1, nil })
		if err != nil {
			return nil, err
		}
		out[i] = bit
		coeff := f.FromBigInt(new(big.Int).Set(pow))
		reconstruction.Concat(bit.lc(h).Scale(coeff))
		pow.Lsh(pow, 1)
	}
	reconstruction.Compactify()

	one := h.LinearCombination()
	one.Add(f.One(), r1cs.One)
	if err := h.EnforceConstraint(reconstruction, one, valueLC); err != nil {
		return nil, err
	}
	return out, nil
}

// ToBits is ToNonUniqueBits plus the canonical-representation guarantee
// spec §4.5 calls the "range check into [0, field_modulus)": when
// numBits is at least the modulus' bit length, 2^numBits exceeds the
// modulus, so distinct witnessed bit patterns can denote the same field
// element mod p (ToNonUniqueBits' reconstruction constraint is a field
// equation, automatically reduced mod p). ToBits additionally enforces
// that the witnessed bit pattern's unreduced integer value is strictly
// less than the modulus, via assertLessThanModulus, so the decomposition
// is unique. When numBits is strictly below the modulus' bit length,
// every bit pattern is already canonical and the check is skipped.
func ToBits(h r1cs.Handle, valueLC *r1cs.LinearCombination, numBits int) ([]Boolean, error) {
	bs, err := ToNonUniqueBits(h, valueLC, numBits)
	if err != nil {
		return nil, err
	}
	modBits := h.Factory().Modulus().BitLen()
	if numBits >= modBits {
		if err := assertLessThanModulus(h, bs); err != nil {
			return nil, err
		}
	}
	return bs, nil
}

// assertLessThanModulus enforces that the little-endian bit vector bs,
// read as an unreduced integer, is strictly less than h's field modulus.
// It walks the bits from most to least significant alongside the
// modulus' own bits, tracking two running Booleans: eq ("every bit seen
// so far matches the modulus' bit") and lt ("bs is already known to be
// strictly less than the modulus at a higher bit"). At a modulus bit of
// 0, bs's bit must also be 0 while eq still holds (else bs's prefix
// would already exceed the modulus); at a modulus bit of 1, bs going 0
// there while eq holds is exactly the position where bs first falls
// below the modulus. lt must end true: bs equalling the modulus exactly
// is out of range too, since the modulus itself is not a valid element.
func assertLessThanModulus(h r1cs.Handle, bs []Boolean) error {
	numBits := len(bs)
	modulus := h.Factory().Modulus()

	lt := NewConstant(false)
	eq := NewConstant(true)
	for i := numBits - 1; i >= 0; i-- {
		boundBit := modulus.Bit(i) == 1
		bit := bs[i]

		if boundBit {
			notBit := bit.Not()
			eqAndNotBit, err := And(eq, notBit)
			if err != nil {
				return err
			}
			newLt, err := Or(lt, eqAndNotBit)
			if err != nil {
				return err
			}
			newEq, err := And(eq, bit)
			if err != nil {
				return err
			}
			lt, eq = newLt, newEq
		} else {
			eqAndBit, err := And(eq, bit)
			if err != nil {
				return err
			}
			if err := EnforceEqual(eqAndBit, NewConstant(false)); err != nil {
				return err
			}
			newEq, err := And(eq, bit.Not())
			if err != nil {
				return err
			}
			eq = newEq
		}
	}
	return EnforceEqual(lt, NewConstant(true))
}

// ToBytes groups a little-endian bit vector into little-endian bytes,
// panicking if len(bs) is not a multiple of 8 (a structural/programmer
// error, not a runtime data error).
func ToBytes(bs []Boolean) []UInt8 {
	if len(bs)%8 != 0 {
		panic("r1cs/bits: ToBytes requires a bit count that is a multiple of 8")
	}
	out := make([]UInt8, len(bs)/8)
	for i := range out {
		var u UInt8
		copy(u.bits[:], bs[i*8:i*8+8])
		out[i] = u
	}
	return out
}

// UInt8 packs eight Booleans, least-significant bit first.
type UInt8 struct {
	bits [8]Boolean
}

// PackLSB returns the 8-bit value packed from bits, least-significant
// first.
func PackLSB(bits [8]Boolean) UInt8 { return UInt8{bits: bits} }

// UnpackLSB returns the underlying bits, least-significant first.
func (u UInt8) UnpackLSB() [8]Boolean { return u.bits }

// Value reconstructs the native byte value.
func (u UInt8) Value() (byte, error) {
	var out byte
	for i := 7; i >= 0; i-- {
		v, err := u.bits[i].Value()
		if err != nil {
			return 0, err
		}
		out <<= 1
		if v {
			out |= 1
		}
	}
	return out, nil
}

// AssertEqual enforces bytewise equality between u and w.
func AssertEqual(u, w UInt8) error {
	for i := 0; i < 8; i++ {
		if err := EnforceEqual(u.bits[i], w.bits[i]); err != nil {
			return err
		}
	}
	return nil
}
