package bits

import (
	"bytes"

	"github.com/icza/bitio"
)

// DebugBytes renders a little-endian bit vector's current assignment as
// a byte slice, for log/trace output only — never called on the
// constraint-satisfaction hot path. Built on icza/bitio's bit writer
// rather than hand-rolled shifting, matching the teacher's pack's use of
// a dedicated bit-level I/O library wherever one is available.
func DebugBytes(bs []Boolean) ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for _, b := range bs {
		v, err := b.Value()
		if err != nil {
			return nil, err
		}
		if err := w.WriteBool(v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
