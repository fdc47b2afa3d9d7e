package format

import "github.com/gogpu/gputypes"

// FromTexture maps a WebGPU texture format to the screen-layer format.
// The bool result is false when the format has no mapping; callers should
// treat that as an unsupported resource template.
func FromTexture(tf gputypes.TextureFormat) (Format, bool) {
	switch tf {
	case gputypes.TextureFormatR8Unorm:
		return R8Unorm, true
	case gputypes.TextureFormatRGBA8Unorm:
		return RGBA8Unorm, true
	case gputypes.TextureFormatBGRA8Unorm:
		return BGRA8Unorm, true
	case gputypes.TextureFormatDepth24PlusStencil8:
		return Z24S8Uint, true
	default:
		return FormatUndefined, false
	}
}

// ToTexture maps a screen-layer format to its WebGPU equivalent, or
// TextureFormatUndefined when the format is not expressible on the GPU
// transfer path.
func ToTexture(f Format) gputypes.TextureFormat {
	switch f {
	case R8Unorm, R8Uint, S8Uint:
		return gputypes.TextureFormatR8Unorm
	case RGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case BGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case Z24S8Uint:
		return gputypes.TextureFormatDepth24PlusStencil8
	default:
		return gputypes.TextureFormatUndefined
	}
}
