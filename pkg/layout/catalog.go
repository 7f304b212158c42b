package layout

// Family groups descriptors by decoding strategy.
type Family string

const (
	FamilyMatrix     Family = "matrix"
	FamilyTRS        Family = "trs"
	FamilyHeader     Family = "header"
	FamilyVariable   Family = "variable"
	FamilyAngle      Family = "angle"
	FamilyQuantized  Family = "quantized"
	FamilyPacked     Family = "packed"
	FamilyPrecision  Family = "precision"
	FamilyStructural Family = "structural"
	FamilyAligned    Family = "aligned"
)

// defaultDescriptors is the catalog in priority order. Reordering changes
// which layout wins for ambiguous bytes.
var defaultDescriptors = []Descriptor{
	{"4x4_matrix", FamilyMatrix, matrixLayout(0, 16, shape4x4)},
	{"3x4_matrix", FamilyMatrix, matrixLayout(0, 12, shape3x4)},
	{"pos_quat_scale", FamilyTRS, trsLayout(0, orderPosQuatScale)},
	{"quat_pos_scale", FamilyTRS, trsLayout(0, orderQuatPosScale)},
	{"scale_pos_quat", FamilyTRS, trsLayout(0, orderScalePosQuat)},
	{"1int+16f", FamilyHeader, matrixLayout(4, 16, shape4x4)},
	{"2int+16f", FamilyHeader, matrixLayout(8, 16, shape4x4)},
	{"1int+12f", FamilyHeader, matrixLayout(4, 12, shape3x4)},
	{"2int+12f", FamilyHeader, matrixLayout(8, 12, shape3x4)},
	{"4byte_pad+16f", FamilyHeader, matrixLayout(4, 16, shape4x4)},
	{"8byte_pad+12f", FamilyHeader, matrixLayout(8, 12, shape3x4)},
	{"1short+16f", FamilyHeader, matrixLayout(2, 16, shape4x4)},
	{"2short+16f", FamilyHeader, matrixLayout(4, 16, shape4x4)},
	{"1byte+16f", FamilyHeader, matrixLayout(1, 16, shape4x4)},
	{"4byte+16f", FamilyHeader, matrixLayout(4, 16, shape4x4)},
	{"transposed_4x4", FamilyMatrix, decodeTransposed4x4},
	{"transposed_3x4", FamilyMatrix, decodeTransposed3x4},
	{"1int+10f", FamilyHeader, trsLayout(4, orderPosQuatScale)},
	{"2int+10f", FamilyHeader, trsLayout(8, orderPosQuatScale)},
	{"16byte_pad+16f", FamilyHeader, matrixLayout(16, 16, shape4x4)},
	{"12byte_pad+12f", FamilyHeader, matrixLayout(12, 12, shape3x4)},
	{"3int+16f", FamilyHeader, matrixLayout(12, 16, shape4x4)},
	{"4int+12f", FamilyHeader, matrixLayout(16, 12, shape3x4)},
	{"euler_angles", FamilyAngle, decodeEuler},
	{"axis_angle", FamilyAngle, decodeAxisAngle},
	{"dual_quaternion", FamilyAngle, decodeDualQuat},
	{"compact_quat", FamilyAngle, decodeCompactQuat},
	{"1int+3f+4f+3f", FamilyHeader, trsLayout(4, orderPosQuatScale)},
	{"2int+3f+4f+3f", FamilyHeader, trsLayout(8, orderPosQuatScale)},
	{"var_header+16f", FamilyVariable, decodeVarHeader16},
	{"var_header+12f", FamilyVariable, decodeVarHeader12},
	{"var_header+10f", FamilyVariable, decodeVarHeader10},
	{"row_3x3+pos+scale", FamilyMatrix, rotationBlockLayout(false)},
	{"col_3x3+pos+scale", FamilyMatrix, rotationBlockLayout(true)},
	{"split_matrix", FamilyTRS, rotationBlockLayout(false)},
	{"packed_transform", FamilyTRS, trsLayout(0, orderPosScaleQuat)},
	{"inverted_4x4", FamilyMatrix, decodeInverted4x4},
	{"decomposed_trans", FamilyTRS, decodeDecomposed},
	{"trs_with_pivot", FamilyTRS, decodePivot},
	{"half_precision", FamilyPrecision, decodeHalf},
	{"aligned_64", FamilyAligned, matrixLayout(0, 16, shape4x4)},
	{"aligned_80", FamilyAligned, matrixLayout(0, 20, shape4x4)},
	{"aligned_96", FamilyAligned, matrixLayout(0, 24, shape4x4)},
	{"compressed_quat", FamilyAngle, decodeCompressedQuat},
	{"nested_structure", FamilyStructural, decodeTagged},
	{"string_prefixed", FamilyStructural, decodeLengthPrefixed},
	{"double_precision", FamilyPrecision, decodeDouble},
	{"mixed_precision", FamilyPrecision, decodeMixed},
	{"pos3f+quat4h+scale3f", FamilyQuantized, shortQuatLayout(0, snorm16Quat)},
	{"pos3f+quat4H+scale3f", FamilyQuantized, shortQuatLayout(0, unorm16Quat)},
	{"fixed_i32pos+i16quat+i16scale", FamilyQuantized, decodeFixedI32},
	{"fixed_all_i16", FamilyQuantized, decodeFixedI16},
	{"1int+3f+4h+3f", FamilyQuantized, shortQuatLayout(4, snorm16Quat)},
	{"2int+3f+4h+3f", FamilyQuantized, shortQuatLayout(8, snorm16Quat)},
	{"bitpacked", FamilyPacked, decodeBitPacked},
	{"morton_encoded", FamilyPacked, decodeMorton},
}

var defaultCatalog = NewCatalog(defaultDescriptors...)

// Default returns the built-in catalog. It is shared and must not be
// modified.
func Default() *Catalog {
	return defaultCatalog
}
