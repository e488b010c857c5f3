package r1cs

import (
	"io"
	"math/big"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/arkzk/r1cs-core/field"
)

// wireEntry and wireMatrices are cbor-friendly mirrors of Entry and
// ConstraintMatrices: field.Element is an opaque interface, so it
// cannot be cbor-encoded directly, and is instead carried as the
// big-endian bytes of its canonical representative (field.Element.BigInt).
type wireEntry struct {
	Coeff  []byte
	Column int
}

type wireMatrices struct {
	FormatVersion string

	NumInstanceVariables int
	NumWitnessVariables  int
	NumConstraints       int

	ANumNonZero int
	BNumNonZero int
	CNumNonZero int

	A, B, C [][]wireEntry
}

func toWireRows(rows []Row) [][]wireEntry {
	out := make([][]wireEntry, len(rows))
	for i, row := range rows {
		wrow := make([]wireEntry, len(row))
		for j, e := range row {
			wrow[j] = wireEntry{Coeff: e.Coeff.BigInt().Bytes(), Column: e.Column}
		}
		out[i] = wrow
	}
	return out
}

func fromWireRows(f field.Factory, rows [][]wireEntry) []Row {
	out := make([]Row, len(rows))
	for i, wrow := range rows {
		row := make(Row, len(wrow))
		for j, we := range wrow {
			row[j] = Entry{Coeff: f.FromBigInt(new(big.Int).SetBytes(we.Coeff)), Column: we.Column}
		}
		out[i] = row
	}
	return out
}

// writeCounter wraps an io.Writer to report the number of bytes
// written, the way WriteTo's ReaderFrom/WriterTo contract requires.
type writeCounter struct {
	w io.Writer
	n int64
}

func (c *writeCounter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo cbor-encodes m to w, so a backend can receive the matrices
// out-of-process instead of linking against this core. This is the
// same role CompressedColumns documents for a single Row, extended to
// the whole matrix set.
func (m *ConstraintMatrices) WriteTo(w io.Writer) (int64, error) {
	wc := &writeCounter{w: w}
	wm := wireMatrices{
		FormatVersion:        m.FormatVersion.String(),
		NumInstanceVariables: m.NumInstanceVariables,
		NumWitnessVariables:  m.NumWitnessVariables,
		NumConstraints:       m.NumConstraints,
		ANumNonZero:          m.ANumNonZero,
		BNumNonZero:          m.BNumNonZero,
		CNumNonZero:          m.CNumNonZero,
		A:                    toWireRows(m.A),
		B:                    toWireRows(m.B),
		C:                    toWireRows(m.C),
	}
	err := cbor.NewEncoder(wc).Encode(wm)
	return wc.n, err
}

// ReadMatricesFrom decodes a ConstraintMatrices previously produced by
// WriteTo. f reconstructs each coefficient's field.Element from its
// wire bytes, so the caller must pass the same field the matrices were
// built over.
func ReadMatricesFrom(r io.Reader, f field.Factory) (*ConstraintMatrices, error) {
	dm, err := cbor.DecOptions{MaxArrayElements: 134217728}.DecMode()
	if err != nil {
		return nil, err
	}
	var wm wireMatrices
	if err := dm.NewDecoder(r).Decode(&wm); err != nil {
		return nil, err
	}
	version, err := semver.Parse(wm.FormatVersion)
	if err != nil {
		return nil, err
	}
	return &ConstraintMatrices{
		FormatVersion:        version,
		NumInstanceVariables: wm.NumInstanceVariables,
		NumWitnessVariables:  wm.NumWitnessVariables,
		NumConstraints:       wm.NumConstraints,
		ANumNonZero:          wm.ANumNonZero,
		BNumNonZero:          wm.BNumNonZero,
		CNumNonZero:          wm.CNumNonZero,
		A:                    fromWireRows(f, wm.A),
		B:                    fromWireRows(f, wm.B),
		C:                    fromWireRows(f, wm.C),
	}, nil
}
