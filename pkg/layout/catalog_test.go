package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lpmtscan/pkg/math"
)

func TestDefaultCatalogOrder(t *testing.T) {
	names := Default().Names()
	require.Len(t, names, 56)

	// Spot-check positions that decide ambiguous matches.
	assert.Equal(t, "4x4_matrix", names[0])
	assert.Equal(t, "3x4_matrix", names[1])
	assert.Equal(t, "pos_quat_scale", names[2])
	assert.Equal(t, "var_header+16f", names[29])
	assert.Equal(t, "var_header+12f", names[30])
	assert.Equal(t, "var_header+10f", names[31])
	assert.Equal(t, "mixed_precision", names[47])
	assert.Equal(t, "pos3f+quat4h+scale3f", names[48])
	assert.Equal(t, "bitpacked", names[54])
	assert.Equal(t, "morton_encoded", names[55])

	seen := make(map[string]bool)
	for _, n := range names {
		assert.False(t, seen[n], "duplicate descriptor %q", n)
		seen[n] = true
	}
}

func TestCatalogDescriptorsIsCopy(t *testing.T) {
	ds := Default().Descriptors()
	ds[0].Name = "mutated"
	assert.Equal(t, "4x4_matrix", Default().Names()[0])
}

func TestCatalogMatchFirstWins(t *testing.T) {
	buf := le(t, scaledMatrix4x4(2, 10, 20, 30))

	m, ok := Default().Match(buf, 0)
	require.True(t, ok)
	assert.Equal(t, 0, m.Priority)
	assert.Equal(t, "4x4_matrix", m.Name)
	assert.Equal(t, 64, m.Size)
	assert.Equal(t, math.Vec3{X: 10, Y: 20, Z: 30}, m.Transform.Position)
	assert.Equal(t, math.Vec3{X: 2, Y: 2, Z: 2}, m.Transform.Scale)
	assert.Equal(t, math.QuatIdentity(), m.Transform.Rotation)
}

func TestCatalogMatchShortTail(t *testing.T) {
	// 20 bytes is too short for every float layout, the all-int16
	// fixed-point layout is the first to fit.
	buf := le(t, []int16{10, 20, 30, 0, 0, 0, 32767, 10, 10, 10})

	m, ok := Default().Match(buf, 0)
	require.True(t, ok)
	assert.Equal(t, "fixed_all_i16", m.Name)
	assert.Equal(t, 20, m.Size)

	// Below 20 bytes only the 8-byte packed layout remains.
	m, ok = Default().Match(buf[:12], 0)
	require.True(t, ok)
	assert.Equal(t, "bitpacked", m.Name)
	assert.Equal(t, 8, m.Size)

	_, ok = Default().Match(buf[:7], 0)
	assert.False(t, ok)
}

func TestCatalogProbe(t *testing.T) {
	buf := le(t, scaledMatrix4x4(1, 1, 2, 3))

	matches := Default().Probe(buf, 0)
	require.NotEmpty(t, matches)
	assert.Equal(t, "4x4_matrix", matches[0].Name)

	for i := 1; i < len(matches); i++ {
		assert.Greater(t, matches[i].Priority, matches[i-1].Priority)
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	assert.Contains(t, names, "aligned_64")
	assert.NotContains(t, names, "aligned_80")
	assert.NotContains(t, names, "nested_structure")
}

func TestCatalogRejectsNonPositiveSize(t *testing.T) {
	c := NewCatalog(
		Descriptor{Name: "zero", Decode: func([]byte, int) (Transform, int, bool) { return Transform{}, 0, true }},
		Descriptor{Name: "one", Decode: func([]byte, int) (Transform, int, bool) { return Transform{}, 1, true }},
	)
	m, ok := c.Match(nil, 0)
	require.True(t, ok)
	assert.Equal(t, "one", m.Name)
	assert.Equal(t, 1, m.Priority)
}

func TestCatalogLookup(t *testing.T) {
	d, ok := Default().Lookup("half_precision")
	require.True(t, ok)
	assert.Equal(t, FamilyPrecision, d.Family)

	_, ok = Default().Lookup("no_such_layout")
	assert.False(t, ok)
}

func TestDecodersRejectShortAndNegativeOffsets(t *testing.T) {
	buf := make([]byte, 4)
	for _, d := range Default().Descriptors() {
		_, _, ok := d.Decode(buf, 0)
		assert.False(t, ok, "%s decoded a 4-byte buffer", d.Name)

		_, _, ok = d.Decode(make([]byte, 256), -1)
		assert.False(t, ok, "%s accepted a negative offset", d.Name)

		_, _, ok = d.Decode(buf, 10)
		assert.False(t, ok, "%s accepted an offset past the end", d.Name)
	}
}
