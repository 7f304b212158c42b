package layout

// HeaderWidths is the ordered set of header sizes, in bytes, tried by the
// variable-header layouts. The order decides which width wins when more
// than one produces a plausible transform.
var HeaderWidths = [...]int{1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 24, 28, 32}

// variableHeader tries every header width in order, decoding the payload
// that follows it, and returns the first result that validates. The
// consumed size is the header width plus advance, which is not necessarily
// the number of bytes read.
func variableHeader(payload DecodeFunc, advance int) DecodeFunc {
	return func(buf []byte, off int) (Transform, int, bool) {
		if off < 0 {
			return Transform{}, 0, false
		}
		for _, width := range HeaderWidths {
			t, _, ok := payload(buf, off+width)
			if !ok || !t.Valid() {
				continue
			}
			return t, width + advance, true
		}
		return Transform{}, 0, false
	}
}

var (
	// 16 floats are read, 48 bytes past the header are consumed.
	decodeVarHeader16 = variableHeader(matrixLayout(0, 16, shapeVar16), 48)
	decodeVarHeader12 = variableHeader(matrixLayout(0, 12, shapeVar12), 48)
	decodeVarHeader10 = variableHeader(trsLayout(0, orderPosQuatScale), 40)
)
