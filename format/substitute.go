package format

// Substitute returns a generic format with the same block byte size as f,
// for use in offset and pitch arithmetic when f has no native rasterizer
// representation. The substitution never changes the logical format exposed
// to callers; it only standardizes the addressing math.
//
// Compressed sources map to a compressed stand-in so block granularity is
// preserved; plain sources map to a plain one.
func Substitute(f Format) Format {
	switch f.BlockBytes() {
	case 1:
		return R8Uint
	case 2:
		return R16Uint
	case 4:
		return R32Uint
	case 8:
		if f.Compressed() {
			return BC4Unorm
		}
		return RG32Uint
	case 16:
		if f.Compressed() {
			return BC5Unorm
		}
		return RGBA32Uint
	default:
		return FormatUndefined
	}
}

// Effective returns the format the layout engine should use for offset math:
// f itself when the rasterizer knows it natively, its substitute otherwise.
func Effective(f Format) Format {
	if f.Renderable() {
		return f
	}
	return Substitute(f)
}
