package layout

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// le serializes values little-endian with no padding.
func le(t *testing.T, vals ...any) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, v := range vals {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	return buf.Bytes()
}

// decoder fetches a descriptor from the default catalog by name.
func decoder(t *testing.T, name string) DecodeFunc {
	t.Helper()
	d, ok := Default().Lookup(name)
	require.True(t, ok, "descriptor %q missing", name)
	return d.Decode
}

// scaledMatrix4x4 is a row-major 4x4 matrix with identity rotation, uniform
// scale s and translation (x, y, z) in the last row.
func scaledMatrix4x4(s, x, y, z float32) []float32 {
	return []float32{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		x, y, z, 1,
	}
}
