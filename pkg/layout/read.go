package layout

import (
	"encoding/binary"
	gomath "math"
)

// All record fields are little-endian and unaligned.

// fits reports whether n bytes are available at off.
func fits(buf []byte, off, n int) bool {
	return off >= 0 && n >= 0 && off <= len(buf) && len(buf)-off >= n
}

func readF32(buf []byte, off int) float64 {
	return float64(gomath.Float32frombits(binary.LittleEndian.Uint32(buf[off:])))
}

func readF64(buf []byte, off int) float64 {
	return gomath.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
}

func readU16(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off:])
}

func readI16(buf []byte, off int) int16 {
	return int16(binary.LittleEndian.Uint16(buf[off:]))
}

func readU32(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off:])
}

func readI32(buf []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[off:]))
}

func readU64(buf []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(buf[off:])
}

// floats reads n consecutive float32 values starting at off.
func floats(buf []byte, off, n int) ([]float64, bool) {
	if !fits(buf, off, n*4) {
		return nil, false
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = readF32(buf, off+i*4)
	}
	return v, true
}

// doubles reads n consecutive float64 values starting at off.
func doubles(buf []byte, off, n int) ([]float64, bool) {
	if !fits(buf, off, n*8) {
		return nil, false
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = readF64(buf, off+i*8)
	}
	return v, true
}
