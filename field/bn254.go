package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// bn254Element wraps gnark-crypto's bn254 scalar field element so the
// gadget layer has one concrete, testable Element instantiation. This is
// the out-of-scope "external collaborator" field/curve arithmetic
// library named in spec §1/§6 — nothing here re-implements field
// arithmetic, it only adapts fr.Element's API to the Element interface.
type bn254Element struct {
	v fr.Element
}

// BN254Factory constructs Elements backed by gnark-crypto's bn254 scalar
// field.
var BN254Factory Factory = bn254Factory{}

type bn254Factory struct{}

func (bn254Factory) Zero() Element {
	var e bn254Element
	e.v.SetZero()
	return &e
}

func (bn254Factory) One() Element {
	var e bn254Element
	e.v.SetOne()
	return &e
}

func (bn254Factory) FromBigInt(v *big.Int) Element {
	var e bn254Element
	e.v.SetBigInt(v)
	return &e
}

func (bn254Factory) FromInt64(v int64) Element {
	var e bn254Element
	if v < 0 {
		e.v.SetUint64(uint64(-v))
		e.v.Neg(&e.v)
	} else {
		e.v.SetUint64(uint64(v))
	}
	return &e
}

func (bn254Factory) Modulus() *big.Int {
	m := fr.Modulus()
	return new(big.Int).Set(m)
}

func (e *bn254Element) IsZero() bool { return e.v.IsZero() }
func (e *bn254Element) IsOne() bool  { return e.v.IsOne() }

func (e *bn254Element) Add(other Element) Element {
	var out bn254Element
	out.v.Add(&e.v, &other.(*bn254Element).v)
	return &out
}

func (e *bn254Element) Sub(other Element) Element {
	var out bn254Element
	out.v.Sub(&e.v, &other.(*bn254Element).v)
	return &out
}

func (e *bn254Element) Mul(other Element) Element {
	var out bn254Element
	out.v.Mul(&e.v, &other.(*bn254Element).v)
	return &out
}

func (e *bn254Element) Neg() Element {
	var out bn254Element
	out.v.Neg(&e.v)
	return &out
}

func (e *bn254Element) Square() Element {
	var out bn254Element
	out.v.Square(&e.v)
	return &out
}

func (e *bn254Element) Inverse() (Element, bool) {
	if e.v.IsZero() {
		return nil, false
	}
	var out bn254Element
	out.v.Inverse(&e.v)
	return &out, true
}

func (e *bn254Element) Equal(other Element) bool {
	o, ok := other.(*bn254Element)
	if !ok {
		return false
	}
	return e.v.Equal(&o.v)
}

func (e *bn254Element) BigInt() *big.Int {
	var out big.Int
	e.v.BigInt(&out)
	return &out
}

func (e *bn254Element) String() string { return e.v.String() }
