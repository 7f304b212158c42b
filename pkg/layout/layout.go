// Package layout holds the catalog of candidate binary layouts for transform
// records and the plausibility checks used to choose between them.
//
// Every decoder is a pure function of (buffer, offset). A decoder either
// returns a Transform together with the number of bytes it consumed, or
// reports no match. Decoders never return errors: a short buffer, a failed
// structural check and an arithmetic dead end all look the same to callers.
package layout

import (
	"github.com/Faultbox/lpmtscan/pkg/math"
)

// Transform is one decoded record.
type Transform struct {
	Position math.Vec3
	Scale    math.Vec3
	Rotation math.Quat
}

// QuatNorm returns the norm of the rotation quaternion.
func (t Transform) QuatNorm() float64 {
	return t.Rotation.Length()
}

// Valid reports whether the transform passes Validate.
func (t Transform) Valid() bool {
	return Validate(t.Position, t.Scale, t.Rotation)
}

// DecodeFunc decodes one record at off. On success it returns the transform
// and the number of bytes consumed, which is always positive.
type DecodeFunc func(buf []byte, off int) (Transform, int, bool)

// Descriptor names one layout hypothesis.
type Descriptor struct {
	Name   string
	Family Family
	Decode DecodeFunc
}

// Match is a successful decode produced by a catalog lookup.
type Match struct {
	Priority  int    // Position in the catalog, 0 is tried first
	Name      string // Descriptor name
	Transform Transform
	Size      int // Bytes consumed
}

// Catalog is an ordered, immutable list of descriptors.
// The first descriptor that decodes successfully wins.
type Catalog struct {
	descriptors []Descriptor
}

// NewCatalog builds a catalog that tries descriptors in the given order.
func NewCatalog(descriptors ...Descriptor) *Catalog {
	ds := make([]Descriptor, len(descriptors))
	copy(ds, descriptors)
	return &Catalog{descriptors: ds}
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int {
	return len(c.descriptors)
}

// Descriptors returns a copy of the descriptors in priority order.
func (c *Catalog) Descriptors() []Descriptor {
	ds := make([]Descriptor, len(c.descriptors))
	copy(ds, c.descriptors)
	return ds
}

// Names returns the descriptor names in priority order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.descriptors))
	for i, d := range c.descriptors {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the descriptor with the given name.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	for _, d := range c.descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Match tries every descriptor in order at off and returns the first success.
func (c *Catalog) Match(buf []byte, off int) (Match, bool) {
	for i, d := range c.descriptors {
		if m, ok := try(i, d, buf, off); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Probe returns every descriptor that decodes at off, in catalog order.
func (c *Catalog) Probe(buf []byte, off int) []Match {
	var matches []Match
	for i, d := range c.descriptors {
		if m, ok := try(i, d, buf, off); ok {
			matches = append(matches, m)
		}
	}
	return matches
}

func try(priority int, d Descriptor, buf []byte, off int) (Match, bool) {
	t, size, ok := d.Decode(buf, off)
	if !ok || size <= 0 {
		return Match{}, false
	}
	return Match{Priority: priority, Name: d.Name, Transform: t, Size: size}, true
}
