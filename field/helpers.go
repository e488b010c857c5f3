package field

// ModInverseUint64 returns the multiplicative inverse of v, reduced
// modulo f's characteristic, as an Element. Panics if v is a multiple
// of the characteristic.
func ModInverseUint64(f Factory, v uint64) Element {
	e := f.FromInt64(int64(v))
	inv, ok := e.Inverse()
	if !ok {
		panic("field: ModInverseUint64 called on a multiple of the field characteristic")
	}
	return inv
}
