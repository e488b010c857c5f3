package twistededwards

import (
	"github.com/arkzk/r1cs-core/field"
	"github.com/arkzk/r1cs-core/gadgets/bits"
	"github.com/arkzk/r1cs-core/gadgets/fields/fp"
	"github.com/arkzk/r1cs-core/r1cs"
)

// ScalarMulBitByBit computes scalar·base via standard double-and-add
// over the little-endian bit vector scalarBits, using Add and Double
// above. This is the baseline method spec §4.6 calls for; the windowed
// and 3-bit-signed-digit methods below trade constraint count for
// precomputed tables over a fixed base.
func ScalarMulBitByBit(base AffineVar, scalarBits []bits.Boolean) (AffineVar, error) {
	p := base.p
	h := base.Handle()
	acc := Zero(p, h.Factory())
	addend := base
	for _, bit := range scalarBits {
		sum, err := Add(acc, addend)
		if err != nil {
			return AffineVar{}, err
		}
		acc, err = ConditionalSelect(h, fp.FromBoolean(h, bit), sum, acc)
		if err != nil {
			return AffineVar{}, err
		}
		addend, err = Double(addend)
		if err != nil {
			return AffineVar{}, err
		}
	}
	return acc, nil
}

// PrecomputedWindowTable holds, for a fixed base point, the four
// normalized (x, y) pairs that cover a two-bit window: table[i] =
// i·base for i in 0..4, each component supplied as a plain
// field.Element (no witness) since the base and its multiples are
// public parameters fixed at circuit-construction time.
type PrecomputedWindowTable struct {
	X, Y [4]field.Element
}

// PrecomputedScalarMulWindowed consumes bits grouped into windows of
// two and uses two_bit_lookup on the corresponding precomputed table to
// select the window's contribution, accumulating via Add. len(bitPairs)
// must equal len(tables).
func PrecomputedScalarMulWindowed(h r1cs.Handle, p *Params, bitPairs [][2]bits.Boolean, tables []PrecomputedWindowTable) (AffineVar, error) {
	acc := Zero(p, h.Factory())
	for i, pair := range bitPairs {
		t := tables[i]
		x, err := bits.TwoBitLookup(h, pair, t.X)
		if err != nil {
			return AffineVar{}, err
		}
		y, err := bits.TwoBitLookup(h, pair, t.Y)
		if err != nil {
			return AffineVar{}, err
		}
		xVar := fp.FromVariable(h, x)
		yVar := fp.FromVariable(h, y)
		contribution := AffineVar{p: p, X: xVar, Y: yVar}
		var err2 error
		acc, err2 = Add(acc, contribution)
		if err2 != nil {
			return AffineVar{}, err2
		}
	}
	return acc, nil
}
